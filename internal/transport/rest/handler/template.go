package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"questionnaire-api/internal/model"
	"questionnaire-api/internal/service"
)

// TemplateHandler handles template authoring endpoints
type TemplateHandler struct {
	templateSvc *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateSvc *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateSvc: templateSvc}
}

// TemplateRequest wraps the template payload of create and update requests
type TemplateRequest struct {
	Template *model.Template `json:"template"`
}

// Create handles POST /api/template
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Template == nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	created, err := h.templateSvc.Create(r.Context(), req.Template)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Get handles GET /api/template/{id}, returning the template with every
// question-collection reference resolved.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	view, err := h.templateSvc.GetResolved(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*model.ResolvedTemplate{"template": view})
}

// List handles GET /api/template
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateSvc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]*model.Template{"templates": templates})
}

// Update handles PUT /api/template/{id}
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Template == nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := h.templateSvc.Update(r.Context(), id, req.Template)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/template/{id}
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.templateSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Template deleted successfully"})
}

// Search handles GET /api/template/search?value=&page=&pageSize=
func (h *TemplateHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	value := query.Get("value")

	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))

	result, err := h.templateSvc.Search(r.Context(), value, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
