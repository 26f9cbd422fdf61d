package controllers

import (
	"net/http"

	"github.com/propdash/portfolio-service/internal/dtos"
	"github.com/propdash/portfolio-service/internal/utils"
)

type SessionController struct{}

func NewSessionController() *SessionController {
	return &SessionController{}
}

// GET /api/v1/session
func (c *SessionController) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SessionResponse{
		Role:               role,
		Label:              role.Label(),
		Views:              role.AvailableViews(),
		HasFinancialAccess: role.HasFinancialAccess(),
	})
}
