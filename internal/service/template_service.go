package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"questionnaire-api/internal/cache"
	"questionnaire-api/internal/errs"
	"questionnaire-api/internal/model"
	"questionnaire-api/internal/repository"
	"questionnaire-api/internal/validation"
)

// TemplateService handles authoring of questionnaire templates
type TemplateService struct {
	templates repository.TemplateRepo
	cols      repository.QuestionsColRepo
	validator *validation.TemplateValidator
	cache     cache.TemplateCache
}

// NewTemplateService creates a new template service
func NewTemplateService(templates repository.TemplateRepo, cols repository.QuestionsColRepo, validator *validation.TemplateValidator, templateCache cache.TemplateCache) *TemplateService {
	return &TemplateService{
		templates: templates,
		cols:      cols,
		validator: validator,
		cache:     templateCache,
	}
}

// assignNodeIDs gives every node without an id a fresh one, so snapshots and
// resolved views can carry stable node identities.
func assignNodeIDs(t *model.Template) {
	for i := range t.Categories {
		cat := &t.Categories[i]
		if cat.ID.IsZero() {
			cat.ID = primitive.NewObjectID()
		}
		for j := range cat.SubCategories {
			sub := &cat.SubCategories[j]
			if sub.ID.IsZero() {
				sub.ID = primitive.NewObjectID()
			}
			for k := range sub.Topics {
				if sub.Topics[k].ID.IsZero() {
					sub.Topics[k].ID = primitive.NewObjectID()
				}
			}
		}
	}
}

// Create validates and persists a new template. Validation is all-or-nothing:
// no document is written unless the whole tree passes. A duplicate name that
// slips past the pre-check races into the unique index and comes back as a
// conflict, not a crash.
func (s *TemplateService) Create(ctx context.Context, t *model.Template) (*model.Template, error) {
	validation.TrimNames(t)
	if err := s.validator.Validate(t); err != nil {
		return nil, err
	}

	existing, err := s.templates.FindByName(ctx, t.Name)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing != nil {
		return nil, errs.Conflict("שם השאלון כבר קיים")
	}

	assignNodeIDs(t)
	if _, err := s.templates.Create(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.Conflict("שם השאלון כבר קיים במערכת")
		}
		return nil, errs.Internal(err)
	}
	return t, nil
}

// GetResolved returns the template with every question-collection reference
// replaced by the referenced documents, served from cache when possible.
func (s *TemplateService) GetResolved(ctx context.Context, id string) (*model.ResolvedTemplate, error) {
	if view, err := s.cache.Get(ctx, id); err == nil && view != nil {
		return view, nil
	}

	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if t == nil {
		return nil, errs.NotFound("Template not found")
	}

	cols, err := s.cols.GetByIDs(ctx, collectRefs(t))
	if err != nil {
		return nil, errs.Internal(err)
	}

	view := resolveTemplate(t, colsByID(cols))
	// best effort; a cache failure never fails the read
	_ = s.cache.Set(ctx, id, view)
	return view, nil
}

// List returns all templates in stored (reference) form.
func (s *TemplateService) List(ctx context.Context) ([]*model.Template, error) {
	templates, err := s.templates.GetAll(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if templates == nil {
		templates = []*model.Template{}
	}
	return templates, nil
}

// Update replaces the whole template tree after re-validation. The template's
// own id is excluded from the name-conflict check.
func (s *TemplateService) Update(ctx context.Context, id string, t *model.Template) (*model.Template, error) {
	validation.TrimNames(t)
	if err := s.validator.Validate(t); err != nil {
		return nil, err
	}

	existing, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing == nil {
		return nil, errs.NotFound("Template not found")
	}

	byName, err := s.templates.FindByName(ctx, t.Name)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if byName != nil && byName.ID != existing.ID {
		return nil, errs.Conflict("שם השאלון כבר קיים")
	}

	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	assignNodeIDs(t)
	if err := s.templates.Update(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.Conflict("שם השאלון כבר קיים במערכת")
		}
		return nil, errs.Internal(err)
	}

	_ = s.cache.Delete(ctx, id)
	return t, nil
}

// Delete removes a template. Deleting an unknown id is not an error.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return errs.Internal(err)
	}
	_ = s.cache.Delete(ctx, id)
	return nil
}

// Search pages through templates whose name, or any nested node name, contains
// the value (case-insensitive).
func (s *TemplateService) Search(ctx context.Context, value string, page, pageSize int) (*model.TemplateSearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	templates, total, err := s.templates.Search(ctx, value, page, pageSize)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if templates == nil {
		templates = []*model.Template{}
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &model.TemplateSearchResult{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Templates:  templates,
	}, nil
}
