package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"questionnaire-api/internal/errs"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps the error kind to an HTTP status 1:1 and renders
// {"message": string | []string}. Internal causes are logged, never leaked.
func writeError(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	if kind == errs.KindInternal {
		log.Printf("internal error: %v", err)
	}

	msgs := errs.MessagesOf(err)
	if len(msgs) == 1 {
		writeJSON(w, statusOf(kind), map[string]string{"message": msgs[0]})
		return
	}
	writeJSON(w, statusOf(kind), map[string][]string{"message": msgs})
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation, errs.KindConflict:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": message})
}
