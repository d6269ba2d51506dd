package service

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questionnaire-api/internal/errs"
	"questionnaire-api/internal/model"
	"questionnaire-api/internal/repository"
	"questionnaire-api/internal/validation"
)

// AnswerSubmission is a respondent's (possibly partial) answer merge. Nil
// fields were absent from the request and leave the stored value untouched,
// except identity fields on the anonymous path, which are taken as-is.
type AnswerSubmission struct {
	Template   *model.TemplateSnapshot
	UserName   *string
	UserEmail  *string
	UserPhone  *string
	IsComplete *bool
}

// QuestionnaireService materializes answerable instances from templates and
// merges respondent answers back onto them.
type QuestionnaireService struct {
	questionnaires repository.QuestionnaireRepo
	templates      repository.TemplateRepo
	cols           repository.QuestionsColRepo
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(questionnaires repository.QuestionnaireRepo, templates repository.TemplateRepo, cols repository.QuestionsColRepo) *QuestionnaireService {
	return &QuestionnaireService{
		questionnaires: questionnaires,
		templates:      templates,
		cols:           cols,
	}
}

// Instantiate creates a new questionnaire instance from a template: loads the
// template, resolves every referenced collection in one query, flattens the
// references into plain question arrays and persists the result as an
// independent snapshot. The template and collections are never mutated.
func (s *QuestionnaireService) Instantiate(ctx context.Context, templateID string) (*model.Questionnaire, error) {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if t == nil {
		return nil, errs.NotFound("השאלון לא קיים")
	}

	cols, err := s.cols.GetByIDs(ctx, collectRefs(t))
	if err != nil {
		return nil, errs.Internal(err)
	}

	q := &model.Questionnaire{
		TemplateID: t.ID,
		Template:   *snapshotTemplate(t, colsByID(cols)),
		IsComplete: false,
		Token:      uuid.NewString(),
	}
	if _, err := s.questionnaires.Create(ctx, q); err != nil {
		return nil, errs.Internal(err)
	}
	return q, nil
}

// GetByID returns a single instance.
func (s *QuestionnaireService) GetByID(ctx context.Context, id string) (*model.Questionnaire, error) {
	q, err := s.questionnaires.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if q == nil {
		return nil, errs.NotFound("שאלון לא קיים")
	}
	return q, nil
}

// GetByUser lists the instances linked to an account.
func (s *QuestionnaireService) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Questionnaire, error) {
	questionnaires, err := s.questionnaires.GetByUser(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if questionnaires == nil {
		questionnaires = []*model.Questionnaire{}
	}
	return questionnaires, nil
}

// Answer merges an anonymous submission. Identity fields come from the request
// body as-is, defaulting to null when absent. The snapshot is replaced
// wholesale; the caller resubmits the full tree. IsComplete only changes when
// the request carries an explicit value.
func (s *QuestionnaireService) Answer(ctx context.Context, id string, sub AnswerSubmission) (*model.Questionnaire, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.UserPhone != nil {
		if msgs := validation.Phone(*sub.UserPhone); len(msgs) > 0 {
			return nil, errs.Validation(msgs...)
		}
	}

	if sub.Template != nil {
		q.Template = *sub.Template
	}
	q.UserName = sub.UserName
	q.UserEmail = sub.UserEmail
	q.UserPhone = sub.UserPhone
	if sub.IsComplete != nil {
		q.IsComplete = *sub.IsComplete
	}

	if err := s.questionnaires.Update(ctx, q); err != nil {
		return nil, errs.Internal(err)
	}
	return q, nil
}

// AnswerAuth merges a submission from an authenticated respondent. Name and
// email always come from the session identity; client-supplied identity fields
// are ignored.
func (s *QuestionnaireService) AnswerAuth(ctx context.Context, id string, user *model.User, sub AnswerSubmission) (*model.Questionnaire, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.UserPhone != nil {
		if msgs := validation.Phone(*sub.UserPhone); len(msgs) > 0 {
			return nil, errs.Validation(msgs...)
		}
	}

	if sub.Template != nil {
		q.Template = *sub.Template
	}
	q.User = &user.ID
	q.UserName = &user.Name
	q.UserEmail = &user.Email
	q.UserPhone = sub.UserPhone
	if sub.IsComplete != nil {
		q.IsComplete = *sub.IsComplete
	}

	if err := s.questionnaires.Update(ctx, q); err != nil {
		return nil, errs.Internal(err)
	}
	return q, nil
}
