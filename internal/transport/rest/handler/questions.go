package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"questionnaire-api/internal/model"
	"questionnaire-api/internal/service"
	"questionnaire-api/internal/transport/rest/middleware"
)

// QuestionsHandler handles question-collection endpoints
type QuestionsHandler struct {
	colSvc *service.QuestionsColService
}

// NewQuestionsHandler creates a new question-collection handler
func NewQuestionsHandler(colSvc *service.QuestionsColService) *QuestionsHandler {
	return &QuestionsHandler{colSvc: colSvc}
}

// CreateQuestionsColRequest is the request body for POST /api/questions
type CreateQuestionsColRequest struct {
	ColName     string           `json:"colName"`
	Description string           `json:"description"`
	Questions   []model.Question `json:"questions"`
}

// UpdateQuestionsColRequest is the request body for PUT /api/questions/{id}.
// Absent fields keep their stored value.
type UpdateQuestionsColRequest struct {
	ColName   *string          `json:"colName"`
	Questions []model.Question `json:"questions"`
}

// Create handles POST /api/questions
func (h *QuestionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req CreateQuestionsColRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	col, err := h.colSvc.Create(r.Context(), user.ID, req.ColName, req.Description, req.Questions)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, col)
}

// Get handles GET /api/questions/{id}
func (h *QuestionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	col, err := h.colSvc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, col)
}

// ByUser handles GET /api/questions/user
func (h *QuestionsHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	cols, err := h.colSvc.GetByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cols)
}

// Search handles GET /api/questions/search?value=
func (h *QuestionsHandler) Search(w http.ResponseWriter, r *http.Request) {
	refs, err := h.colSvc.Search(r.Context(), r.URL.Query().Get("value"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refs)
}

// Update handles PUT /api/questions/{id}
func (h *QuestionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateQuestionsColRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	col, err := h.colSvc.Update(r.Context(), id, req.ColName, req.Questions)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, col)
}

// Delete handles DELETE /api/questions/{id}
func (h *QuestionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.colSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "אסופת השאלות נמחקה בהצלחה"})
}
