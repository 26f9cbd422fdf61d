package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/propdash/portfolio-service/internal/dtos"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/services"
	"github.com/propdash/portfolio-service/internal/utils"
)

type AssistantController struct {
	assistant *services.AssistantService
}

func NewAssistantController(a *services.AssistantService) *AssistantController {
	return &AssistantController{assistant: a}
}

// GET /api/v1/assistant?view=
func (c *AssistantController) GreetingHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r); !ok {
		return
	}
	view := models.View(r.URL.Query().Get("view"))
	if view == "" {
		view = models.ViewDashboard
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.AssistantGreetingResponse{
		Greeting:     c.assistant.Greeting(),
		View:         view,
		QuickPrompts: services.QuickPrompts(view),
	})
}

// POST /api/v1/assistant/chat
func (c *AssistantController) ChatHandler(w http.ResponseWriter, r *http.Request) {
	role, ok := requireRole(w, r)
	if !ok {
		return
	}

	var req dtos.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.StructCtx(r.Context(), req); err != nil {
		respondValidation(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, c.assistant.Reply(role, req.Message))
}
