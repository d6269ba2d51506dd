package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"questionnaire-api/internal/cache"
	"questionnaire-api/internal/errs"
	"questionnaire-api/internal/model"
	"questionnaire-api/internal/repository"
	"questionnaire-api/internal/validation"
)

// QuestionsColService handles CRUD for question collections
type QuestionsColService struct {
	cols  repository.QuestionsColRepo
	cache cache.TemplateCache
}

// NewQuestionsColService creates a new question-collection service
func NewQuestionsColService(cols repository.QuestionsColRepo, templateCache cache.TemplateCache) *QuestionsColService {
	return &QuestionsColService{cols: cols, cache: templateCache}
}

// Create stores a new collection owned by the given user.
func (s *QuestionsColService) Create(ctx context.Context, userID primitive.ObjectID, name, description string, questions []model.Question) (*model.QuestionsCol, error) {
	name = strings.TrimSpace(name)
	if msgs := validation.CollectionName(name); len(msgs) > 0 {
		return nil, errs.Validation(msgs...)
	}

	existing, err := s.cols.FindByName(ctx, name)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing != nil {
		return nil, errs.Conflict("שם אסופת השאלות כבר קיים")
	}

	if questions == nil {
		questions = []model.Question{}
	}
	col := &model.QuestionsCol{
		Name:        name,
		Description: description,
		User:        userID,
		Questions:   questions,
	}
	if _, err := s.cols.Create(ctx, col); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.Conflict("שם אסופת השאלות כבר קיים")
		}
		return nil, errs.Internal(err)
	}
	return col, nil
}

// GetByID returns a single collection.
func (s *QuestionsColService) GetByID(ctx context.Context, id string) (*model.QuestionsCol, error) {
	col, err := s.cols.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if col == nil {
		return nil, errs.NotFound("האסופה לא נמצאה")
	}
	return col, nil
}

// GetByUser lists the caller's collections.
func (s *QuestionsColService) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.QuestionsCol, error) {
	cols, err := s.cols.GetByUser(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if cols == nil {
		cols = []*model.QuestionsCol{}
	}
	return cols, nil
}

// Search returns id+name of collections matching the value by case-insensitive
// substring.
func (s *QuestionsColService) Search(ctx context.Context, value string) ([]*model.QuestionsColRef, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errs.Validation("ערך לא תקין")
	}

	refs, err := s.cols.SearchByName(ctx, value)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if refs == nil {
		refs = []*model.QuestionsColRef{}
	}
	return refs, nil
}

// Update patches name and/or questions of an existing collection. Note that
// templates hold only a reference, so an edit here is visible on the next
// template resolve but never on questionnaires already instantiated.
func (s *QuestionsColService) Update(ctx context.Context, id string, name *string, questions []model.Question) (*model.QuestionsCol, error) {
	existing, err := s.cols.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing == nil {
		return nil, errs.NotFound("אסופת שאלות זו לא קיימת")
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if msgs := validation.CollectionName(trimmed); len(msgs) > 0 {
			return nil, errs.Validation(msgs...)
		}
		if trimmed != existing.Name {
			byName, err := s.cols.FindByName(ctx, trimmed)
			if err != nil {
				return nil, errs.Internal(err)
			}
			if byName != nil {
				return nil, errs.Conflict("שם אסופת השאלות כבר קיים")
			}
		}
		existing.Name = trimmed
	}
	if questions != nil {
		existing.Questions = questions
	}

	if err := s.cols.Update(ctx, existing); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.Conflict("שם אסופת השאלות כבר קיים")
		}
		return nil, errs.Internal(err)
	}

	// resolved-template views may embed this collection
	_ = s.cache.Flush(ctx)
	return existing, nil
}

// Delete removes a collection. Templates referencing it keep the dangling ref;
// instantiation skips refs it cannot resolve.
func (s *QuestionsColService) Delete(ctx context.Context, id string) error {
	if err := s.cols.Delete(ctx, id); err != nil {
		return errs.Internal(err)
	}
	_ = s.cache.Flush(ctx)
	return nil
}
