package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"questionnaire-api/internal/model"
	"questionnaire-api/internal/service"
	"questionnaire-api/internal/validation"
)

// In-memory repositories backing the full router for end-to-end tests.

type memTemplateRepo struct {
	templates []*model.Template
}

func (r *memTemplateRepo) Create(_ context.Context, t *model.Template) (string, error) {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	cp := *t
	r.templates = append(r.templates, &cp)
	return t.ID.Hex(), nil
}

func (r *memTemplateRepo) GetByID(_ context.Context, id string) (*model.Template, error) {
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

func (r *memTemplateRepo) GetAll(_ context.Context) ([]*model.Template, error) {
	return append([]*model.Template(nil), r.templates...), nil
}

func (r *memTemplateRepo) FindByName(_ context.Context, name string) (*model.Template, error) {
	for _, t := range r.templates {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTemplateRepo) Update(_ context.Context, t *model.Template) error {
	for i, existing := range r.templates {
		if existing.ID == t.ID {
			cp := *t
			r.templates[i] = &cp
		}
	}
	return nil
}

func (r *memTemplateRepo) Delete(_ context.Context, id string) error {
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

func (r *memTemplateRepo) Search(_ context.Context, value string, page, pageSize int) ([]*model.Template, int64, error) {
	var matched []*model.Template
	for _, t := range r.templates {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(value)) {
			matched = append(matched, t)
		}
	}
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

func (r *memTemplateRepo) EnsureIndexes(context.Context) error { return nil }

type memColRepo struct {
	cols []*model.QuestionsCol
}

func (r *memColRepo) Create(_ context.Context, col *model.QuestionsCol) (string, error) {
	if col.ID.IsZero() {
		col.ID = primitive.NewObjectID()
	}
	r.cols = append(r.cols, col)
	return col.ID.Hex(), nil
}

func (r *memColRepo) GetByID(_ context.Context, id string) (*model.QuestionsCol, error) {
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

func (r *memColRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.QuestionsCol, error) {
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

func (r *memColRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]*model.QuestionsCol, error) {
	var out []*model.QuestionsCol
	for _, col := range r.cols {
		if col.User == userID {
			out = append(out, col)
		}
	}
	return out, nil
}

func (r *memColRepo) FindByName(_ context.Context, name string) (*model.QuestionsCol, error) {
	for _, col := range r.cols {
		if col.Name == name {
			return col, nil
		}
	}
	return nil, nil
}

func (r *memColRepo) SearchByName(_ context.Context, value string) ([]*model.QuestionsColRef, error) {
	var refs []*model.QuestionsColRef
	for _, col := range r.cols {
		if strings.Contains(strings.ToLower(col.Name), strings.ToLower(value)) {
			refs = append(refs, &model.QuestionsColRef{ID: col.ID, Name: col.Name})
		}
	}
	return refs, nil
}

func (r *memColRepo) Update(_ context.Context, col *model.QuestionsCol) error {
	for i, existing := range r.cols {
		if existing.ID == col.ID {
			r.cols[i] = col
		}
	}
	return nil
}

func (r *memColRepo) Delete(_ context.Context, id string) error {
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

func (r *memColRepo) EnsureIndexes(context.Context) error { return nil }

type memQuestionnaireRepo struct {
	items []*model.Questionnaire
}

func (r *memQuestionnaireRepo) Create(_ context.Context, q *model.Questionnaire) (string, error) {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	cp := *q
	r.items = append(r.items, &cp)
	return q.ID.Hex(), nil
}

func (r *memQuestionnaireRepo) GetByID(_ context.Context, id string) (*model.Questionnaire, error) {
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

func (r *memQuestionnaireRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]*model.Questionnaire, error) {
	var out []*model.Questionnaire
	for _, q := range r.items {
		if q.User != nil && *q.User == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *memQuestionnaireRepo) Update(_ context.Context, q *model.Questionnaire) error {
	for i, existing := range r.items {
		if existing.ID == q.ID {
			cp := *q
			r.items[i] = &cp
		}
	}
	return nil
}

func (r *memQuestionnaireRepo) EnsureIndexes(context.Context) error { return nil }

type memUserRepo struct {
	users []*model.User
}

func (r *memUserRepo) Create(_ context.Context, u *model.User) (string, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	r.users = append(r.users, &cp)
	return u.ID.Hex(), nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
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

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) EnsureIndexes(context.Context) error { return nil }

type memTemplateCache struct {
	entries map[string][]byte
}

func (c *memTemplateCache) Set(_ context.Context, id string, view *model.ResolvedTemplate) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	c.entries[id] = data
	return nil
}

func (c *memTemplateCache) Get(_ context.Context, id string) (*model.ResolvedTemplate, error) {
	data, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	var view model.ResolvedTemplate
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *memTemplateCache) Delete(_ context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

func (c *memTemplateCache) Flush(context.Context) error {
	c.entries = map[string][]byte{}
	return nil
}

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!"
	userEmail     = "user@example.com"
	userPassword  = "User1234!"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	users := &memUserRepo{}
	for _, u := range []struct {
		name     string
		email    string
		password string
		isAdmin  bool
	}{
		{"מנהל", adminEmail, adminPassword, true},
		{"משתמש", userEmail, userPassword, false},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.MinCost)
		require.NoError(t, err)
		_, err = users.Create(context.Background(), &model.User{
			Name:     u.name,
			Email:    u.email,
			Password: string(hash),
			Phone:    "0501234567",
			IsAdmin:  u.isAdmin,
		})
		require.NoError(t, err)
	}

	templates := &memTemplateRepo{}
	cols := &memColRepo{}
	questionnaires := &memQuestionnaireRepo{}
	templateCache := &memTemplateCache{entries: map[string][]byte{}}

	authSvc := service.NewAuthService(users, "test-secret")
	validator := validation.NewTemplateValidator()

	srv := httptest.NewServer(NewRouter(&Container{
		AuthService:          authSvc,
		TemplateService:      service.NewTemplateService(templates, cols, validator, templateCache),
		QuestionsColService:  service.NewQuestionsColService(cols, templateCache),
		QuestionnaireService: service.NewQuestionnaireService(questionnaires, templates, cols),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func login(t *testing.T, client *http.Client, base, email, password string) {
	t.Helper()
	status, body := doJSON(t, client, http.MethodPost, base+"/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, "login failed: %s", body)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, newClient(t), http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestAuthoringRequiresAdminSession(t *testing.T) {
	srv := newTestServer(t)

	// no session
	status, body := doJSON(t, newClient(t), http.MethodPost, srv.URL+"/api/template", map[string]interface{}{
		"template": map[string]interface{}{"name": "סקר"},
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"No authorized, please login"}`, string(body))

	// a session without the admin flag
	client := newClient(t)
	login(t, client, srv.URL, userEmail, userPassword)
	status, body = doJSON(t, client, http.MethodPost, srv.URL+"/api/template", map[string]interface{}{
		"template": map[string]interface{}{"name": "סקר"},
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"No authorized as an admin"}`, string(body))
}

func TestAuthoringAndAnswerFlow(t *testing.T) {
	srv := newTestServer(t)
	admin := newClient(t)
	login(t, admin, srv.URL, adminEmail, adminPassword)

	// author a question collection
	status, body := doJSON(t, admin, http.MethodPost, srv.URL+"/api/questions", map[string]interface{}{
		"colName": "שאלות שירות",
		"questions": []map[string]interface{}{
			{"q": "איך היית מדרג את השירות?", "choice": []string{"מצוין", "טוב", "גרוע"}, "qType": "Single", "required": true},
			{"q": "מה אפשר לשפר?", "choice": []string{}, "qType": "Text", "required": false},
		},
	})
	require.Equal(t, http.StatusCreated, status, "create collection: %s", body)
	var col model.QuestionsCol
	require.NoError(t, json.Unmarshal(body, &col))

	// author a template referencing it
	status, body = doJSON(t, admin, http.MethodPost, srv.URL+"/api/template", map[string]interface{}{
		"template": map[string]interface{}{
			"name": "סקר שביעות רצון",
			"categories": []map[string]interface{}{
				{"name": "שירות", "questions": []string{col.ID.Hex()}},
			},
		},
	})
	require.Equal(t, http.StatusCreated, status, "create template: %s", body)
	var tpl model.Template
	require.NoError(t, json.Unmarshal(body, &tpl))
	require.False(t, tpl.ID.IsZero())

	// anyone may instantiate it, no session needed
	anon := newClient(t)
	status, body = doJSON(t, anon, http.MethodPost, srv.URL+"/api/questionnaire", map[string]string{
		"templateId": tpl.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, status, "instantiate: %s", body)
	var q model.Questionnaire
	require.NoError(t, json.Unmarshal(body, &q))
	assert.False(t, q.IsComplete)
	assert.NotEmpty(t, q.Token)
	require.Len(t, q.Template.Categories, 1)
	require.Len(t, q.Template.Categories[0].Questions, 2)
	assert.Equal(t, "איך היית מדרג את השירות?", q.Template.Categories[0].Questions[0].Q)

	// answer anonymously
	answered := q.Template
	ans := "מצוין"
	answered.Categories[0].Questions[0].Answer = &ans
	status, body = doJSON(t, anon, http.MethodPut, srv.URL+"/api/questionnaire/"+q.ID.Hex()+"/answer", map[string]interface{}{
		"ansTemplate": answered,
		"uName":       "ישראל",
		"uPhone":      "0501234567",
		"isComplete":  true,
	})
	require.Equal(t, http.StatusOK, status, "answer: %s", body)
	var updated model.Questionnaire
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.True(t, updated.IsComplete)
	assert.Equal(t, "ישראל", *updated.UserName)
	require.NotNil(t, updated.Template.Categories[0].Questions[0].Answer)
	assert.Equal(t, "מצוין", *updated.Template.Categories[0].Questions[0].Answer)

	// the merge is persisted
	status, body = doJSON(t, anon, http.MethodGet, srv.URL+"/api/questionnaire/"+q.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, status)
	var stored model.Questionnaire
	require.NoError(t, json.Unmarshal(body, &stored))
	assert.True(t, stored.IsComplete)
}

func TestDuplicateTemplateNameRejected(t *testing.T) {
	srv := newTestServer(t)
	admin := newClient(t)
	login(t, admin, srv.URL, adminEmail, adminPassword)

	payload := map[string]interface{}{
		"template": map[string]interface{}{"name": "סקר שביעות רצון"},
	}
	status, _ := doJSON(t, admin, http.MethodPost, srv.URL+"/api/template", payload)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, admin, http.MethodPost, srv.URL+"/api/template", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"שם השאלון כבר קיים"}`, string(body))
}

func TestAnswerUnknownQuestionnaire(t *testing.T) {
	srv := newTestServer(t)

	for _, id := range []string{"not-a-hex-id", primitive.NewObjectID().Hex()} {
		status, body := doJSON(t, newClient(t), http.MethodPut,
			srv.URL+"/api/questionnaire/"+id+"/answer", map[string]interface{}{})
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, `{"message":"שאלון לא קיים"}`, string(body))
	}
}

func TestResolvedTemplateReadIsStable(t *testing.T) {
	srv := newTestServer(t)
	admin := newClient(t)
	login(t, admin, srv.URL, adminEmail, adminPassword)

	status, body := doJSON(t, admin, http.MethodPost, srv.URL+"/api/questions", map[string]interface{}{
		"colName":   "שאלות שירות",
		"questions": []map[string]interface{}{{"q": "שאלה", "choice": []string{}, "qType": "Text"}},
	})
	require.Equal(t, http.StatusCreated, status)
	var col model.QuestionsCol
	require.NoError(t, json.Unmarshal(body, &col))

	status, body = doJSON(t, admin, http.MethodPost, srv.URL+"/api/template", map[string]interface{}{
		"template": map[string]interface{}{
			"name":       "סקר",
			"categories": []map[string]interface{}{{"name": "שירות", "questions": []string{col.ID.Hex()}}},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	var tpl model.Template
	require.NoError(t, json.Unmarshal(body, &tpl))

	// two consecutive reads return byte-identical bodies
	status, first := doJSON(t, admin, http.MethodGet, srv.URL+"/api/template/"+tpl.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, status)
	status, second := doJSON(t, admin, http.MethodGet, srv.URL+"/api/template/"+tpl.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), "שאלות שירות")
}

func TestQuestionnaireUserRouteNotShadowedByID(t *testing.T) {
	srv := newTestServer(t)

	// unauthenticated: the literal "user" segment needs a session
	status, body := doJSON(t, newClient(t), http.MethodGet, srv.URL+"/api/questionnaire/user", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"No authorized, please login"}`, string(body))

	client := newClient(t)
	login(t, client, srv.URL, userEmail, userPassword)
	status, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/questionnaire/user", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestTemplateSearchEndpoint(t *testing.T) {
	srv := newTestServer(t)
	admin := newClient(t)
	login(t, admin, srv.URL, adminEmail, adminPassword)

	for _, name := range []string{"סקר ראשון", "סקר שני", "משוב עובדים"} {
		status, body := doJSON(t, admin, http.MethodPost, srv.URL+"/api/template", map[string]interface{}{
			"template": map[string]interface{}{"name": name},
		})
		require.Equal(t, http.StatusCreated, status, "create %q: %s", name, body)
	}

	status, body := doJSON(t, admin, http.MethodGet,
		fmt.Sprintf("%s/api/template/search?value=%s&page=1&pageSize=10", srv.URL, url.QueryEscape("סקר")), nil)
	require.Equal(t, http.StatusOK, status)

	var result model.TemplateSearchResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, int64(1), result.TotalPages)
	assert.Len(t, result.Templates, 2)
}
