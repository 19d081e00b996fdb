package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beacon-dev/beacon/internal/services"
)

// PublicHandler serves the unauthenticated status page.
type PublicHandler struct {
	svc    *services.StatusPageService
	logger *zap.Logger
}

func NewPublicHandler(svc *services.StatusPageService, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{svc: svc, logger: logger}
}

type PublicPageResponse struct {
	Page               StatusPageResponse    `json:"page"`
	Components         []ComponentResponse   `json:"components"`
	Incidents          []PublicIncident      `json:"incidents"`
	MaintenanceWindows []MaintenanceResponse `json:"maintenance_windows"`
}

type PublicIncident struct {
	IncidentResponse
	Updates []IncidentUpdateResponse `json:"updates"`
}

func (h *PublicHandler) GetPage(ctx *gin.Context) {
	slug := ctx.Param("slug")

	view, err := h.svc.GetPublicView(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Status page not found"})
			return
		}
		respondError(ctx, h.logger, err)
		return
	}

	response := PublicPageResponse{
		Page:               toStatusPageResponse(&view.Page),
		Components:         make([]ComponentResponse, 0, len(view.Components)),
		Incidents:          make([]PublicIncident, 0, len(view.Incidents)),
		MaintenanceWindows: make([]MaintenanceResponse, 0, len(view.MaintenanceWindows)),
	}

	for i := range view.Components {
		response.Components = append(response.Components, toComponentResponse(&view.Components[i]))
	}

	for i := range view.Incidents {
		incident := PublicIncident{
			IncidentResponse: toIncidentResponse(&view.Incidents[i]),
			Updates:          make([]IncidentUpdateResponse, 0, len(view.Incidents[i].Updates)),
		}
		for j := range view.Incidents[i].Updates {
			incident.Updates = append(incident.Updates, toIncidentUpdateResponse(&view.Incidents[i].Updates[j]))
		}
		response.Incidents = append(response.Incidents, incident)
	}

	for i := range view.MaintenanceWindows {
		response.MaintenanceWindows = append(response.MaintenanceWindows, toMaintenanceResponse(&view.MaintenanceWindows[i]))
	}

	ctx.JSON(http.StatusOK, response)
}
