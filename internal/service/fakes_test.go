package service

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"questionnaire-api/internal/model"
)

// In-memory repository implementations for service tests.

type fakeTemplateRepo struct {
	templates []*model.Template
	getCalls  int
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *model.Template) (string, error) {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	cp := *t
	r.templates = append(r.templates, &cp)
	return t.ID.Hex(), nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id string) (*model.Template, error) {
	r.getCalls++
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	for _, t := range r.templates {
		if t.ID == oid {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) GetAll(_ context.Context) ([]*model.Template, error) {
	return append([]*model.Template(nil), r.templates...), nil
}

func (r *fakeTemplateRepo) FindByName(_ context.Context, name string) (*model.Template, error) {
	for _, t := range r.templates {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, t *model.Template) error {
	for i, existing := range r.templates {
		if existing.ID == t.ID {
			cp := *t
			r.templates[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	for i, t := range r.templates {
		if t.ID == oid {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return nil
		}
	}
	return nil
}

func templateMatches(t *model.Template, value string) bool {
	v := strings.ToLower(value)
	if strings.Contains(strings.ToLower(t.Name), v) {
		return true
	}
	for _, cat := range t.Categories {
		if strings.Contains(strings.ToLower(cat.Name), v) {
			return true
		}
		for _, sub := range cat.SubCategories {
			if strings.Contains(strings.ToLower(sub.Name), v) {
				return true
			}
			for _, topic := range sub.Topics {
				if strings.Contains(strings.ToLower(topic.Name), v) {
					return true
				}
			}
		}
	}
	return false
}

func (r *fakeTemplateRepo) Search(_ context.Context, value string, page, pageSize int) ([]*model.Template, int64, error) {
	var matched []*model.Template
	for _, t := range r.templates {
		if templateMatches(t, value) {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeTemplateRepo) EnsureIndexes(context.Context) error { return nil }

type fakeColRepo struct {
	cols []*model.QuestionsCol
}

func (r *fakeColRepo) Create(_ context.Context, col *model.QuestionsCol) (string, error) {
	if col.ID.IsZero() {
		col.ID = primitive.NewObjectID()
	}
	r.cols = append(r.cols, col)
	return col.ID.Hex(), nil
}

func (r *fakeColRepo) GetByID(_ context.Context, id string) (*model.QuestionsCol, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	for _, col := range r.cols {
		if col.ID == oid {
			return col, nil
		}
	}
	return nil, nil
}

func (r *fakeColRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.QuestionsCol, error) {
	var out []*model.QuestionsCol
	for _, col := range r.cols {
		for _, id := range ids {
			if col.ID == id {
				out = append(out, col)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeColRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]*model.QuestionsCol, error) {
	var out []*model.QuestionsCol
	for _, col := range r.cols {
		if col.User == userID {
			out = append(out, col)
		}
	}
	return out, nil
}

func (r *fakeColRepo) FindByName(_ context.Context, name string) (*model.QuestionsCol, error) {
	for _, col := range r.cols {
		if col.Name == name {
			return col, nil
		}
	}
	return nil, nil
}

func (r *fakeColRepo) SearchByName(_ context.Context, value string) ([]*model.QuestionsColRef, error) {
	var refs []*model.QuestionsColRef
	for _, col := range r.cols {
		if strings.Contains(strings.ToLower(col.Name), strings.ToLower(value)) {
			refs = append(refs, &model.QuestionsColRef{ID: col.ID, Name: col.Name})
		}
	}
	return refs, nil
}

func (r *fakeColRepo) Update(_ context.Context, col *model.QuestionsCol) error {
	for i, existing := range r.cols {
		if existing.ID == col.ID {
			r.cols[i] = col
			return nil
		}
	}
	return nil
}

func (r *fakeColRepo) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	for i, col := range r.cols {
		if col.ID == oid {
			r.cols = append(r.cols[:i], r.cols[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeColRepo) EnsureIndexes(context.Context) error { return nil }

type fakeQuestionnaireRepo struct {
	items []*model.Questionnaire
}

func (r *fakeQuestionnaireRepo) Create(_ context.Context, q *model.Questionnaire) (string, error) {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	cp := *q
	r.items = append(r.items, &cp)
	return q.ID.Hex(), nil
}

func (r *fakeQuestionnaireRepo) GetByID(_ context.Context, id string) (*model.Questionnaire, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	for _, q := range r.items {
		if q.ID == oid {
			cp := *q
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeQuestionnaireRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]*model.Questionnaire, error) {
	var out []*model.Questionnaire
	for _, q := range r.items {
		if q.User != nil && *q.User == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionnaireRepo) Update(_ context.Context, q *model.Questionnaire) error {
	for i, existing := range r.items {
		if existing.ID == q.ID {
			cp := *q
			r.items[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeQuestionnaireRepo) EnsureIndexes(context.Context) error { return nil }

type fakeUserRepo struct {
	users []*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) (string, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	r.users = append(r.users, &cp)
	return u.ID.Hex(), nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	for _, u := range r.users {
		if u.ID == oid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EnsureIndexes(context.Context) error { return nil }

type fakeTemplateCache struct {
	entries map[string]*model.ResolvedTemplate
}

func newFakeTemplateCache() *fakeTemplateCache {
	return &fakeTemplateCache{entries: make(map[string]*model.ResolvedTemplate)}
}

func (c *fakeTemplateCache) Set(_ context.Context, id string, view *model.ResolvedTemplate) error {
	c.entries[id] = view
	return nil
}

func (c *fakeTemplateCache) Get(_ context.Context, id string) (*model.ResolvedTemplate, error) {
	return c.entries[id], nil
}

func (c *fakeTemplateCache) Delete(_ context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

func (c *fakeTemplateCache) Flush(context.Context) error {
	c.entries = make(map[string]*model.ResolvedTemplate)
	return nil
}
