package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/propdash/portfolio-service/internal/middleware"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/utils"
)

var validate = validator.New()

// requireRole reads the role RoleMiddleware stored on the request. It writes
// the 401 itself, so callers just return when ok is false.
func requireRole(w http.ResponseWriter, r *http.Request) (models.Role, bool) {
	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing role in context", nil)
		return "", false
	}
	return role, true
}

// respondValidation maps validator errors to a 400 listing the failed fields.
func respondValidation(w http.ResponseWriter, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fe.Field()+": "+fe.Tag())
		}
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", fields, err)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
}

// splitList parses a comma-separated query value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
