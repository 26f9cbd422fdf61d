package dtos

import (
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/services"
)

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type AssistantGreetingResponse struct {
	Greeting     services.AssistantReply `json:"greeting"`
	View         models.View             `json:"view"`
	QuickPrompts []string                `json:"quickPrompts"`
}
