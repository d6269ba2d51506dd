package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"questionnaire-api/internal/model"
	"questionnaire-api/internal/service"
	"questionnaire-api/internal/transport/rest/middleware"
)

// QuestionnaireHandler handles questionnaire instance endpoints
type QuestionnaireHandler struct {
	questionnaireSvc *service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(questionnaireSvc *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireSvc: questionnaireSvc}
}

// CreateQuestionnaireRequest is the request body for POST /api/questionnaire
type CreateQuestionnaireRequest struct {
	TemplateID string `json:"templateId"`
}

// AnswerRequest is the request body of both answer-merge variants. Pointer
// fields distinguish "absent" from explicit values.
type AnswerRequest struct {
	AnsTemplate *model.TemplateSnapshot `json:"ansTemplate"`
	UName       *string                 `json:"uName"`
	UEmail      *string                 `json:"uEmail"`
	UPhone      *string                 `json:"uPhone"`
	IsComplete  *bool                   `json:"isComplete"`
}

// Create handles POST /api/questionnaire — materializes an answerable instance
// from a template.
func (h *QuestionnaireHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionnaireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	q, err := h.questionnaireSvc.Instantiate(r.Context(), req.TemplateID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, q)
}

// Get handles GET /api/questionnaire/{id}
func (h *QuestionnaireHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	q, err := h.questionnaireSvc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// ByUser handles GET /api/questionnaire/user
func (h *QuestionnaireHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	questionnaires, err := h.questionnaireSvc.GetByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questionnaires)
}

// Answer handles PUT /api/questionnaire/{id}/answer — the anonymous merge.
func (h *QuestionnaireHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	q, err := h.questionnaireSvc.Answer(r.Context(), id, service.AnswerSubmission{
		Template:   req.AnsTemplate,
		UserName:   req.UName,
		UserEmail:  req.UEmail,
		UserPhone:  req.UPhone,
		IsComplete: req.IsComplete,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// AnswerAuth handles PUT /api/questionnaire/{id}/answer/auth — identity is
// taken from the session, not the body.
func (h *QuestionnaireHandler) AnswerAuth(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	user := middleware.GetUser(r.Context())

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	q, err := h.questionnaireSvc.AnswerAuth(r.Context(), id, user, service.AnswerSubmission{
		Template:   req.AnsTemplate,
		UserPhone:  req.UPhone,
		IsComplete: req.IsComplete,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}
