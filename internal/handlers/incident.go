package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beacon-dev/beacon/internal/models"
	"github.com/beacon-dev/beacon/internal/services"
	"github.com/beacon-dev/beacon/internal/utils"
)

type IncidentHandler struct {
	svc    *services.IncidentService
	logger *zap.Logger
}

func NewIncidentHandler(svc *services.IncidentService, logger *zap.Logger) *IncidentHandler {
	return &IncidentHandler{svc: svc, logger: logger}
}

type CreateIncidentRequest struct {
	Title                string `json:"title" binding:"required"`
	Description          string `json:"description"`
	Status               string `json:"status" binding:"omitempty,oneof=investigating identified monitoring resolved"`
	AffectedComponentIDs []uint `json:"affected_component_ids"`
}

type UpdateIncidentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=investigating identified monitoring resolved"`
}

type CreateIncidentUpdateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,oneof=investigating identified monitoring resolved"`
}

type IncidentResponse struct {
	ID           uint       `json:"id"`
	StatusPageID uint       `json:"status_page_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	CreatedByID  uint       `json:"created_by_id"`
	ResolvedAt   *time.Time `json:"resolved_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type IncidentUpdateResponse struct {
	ID          uint      `json:"id"`
	IncidentID  uint      `json:"incident_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func toIncidentResponse(incident *models.Incident) IncidentResponse {
	return IncidentResponse{
		ID:           incident.ID,
		StatusPageID: incident.StatusPageID,
		Title:        incident.Title,
		Description:  incident.Description,
		Status:       incident.Status,
		CreatedByID:  incident.CreatedByID,
		ResolvedAt:   incident.ResolvedAt,
		CreatedAt:    incident.CreatedAt,
		UpdatedAt:    incident.UpdatedAt,
	}
}

func toIncidentUpdateResponse(update *models.IncidentUpdate) IncidentUpdateResponse {
	return IncidentUpdateResponse{
		ID:          update.ID,
		IncidentID:  update.IncidentID,
		Title:       update.Title,
		Description: update.Description,
		Status:      update.Status,
		CreatedByID: update.CreatedByID,
		CreatedAt:   update.CreatedAt,
	}
}

func (h *IncidentHandler) Create(ctx *gin.Context) {
	pageID, err := utils.GetIDParam(ctx, "page_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateIncidentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.svc.Create(ctx.Request.Context(), pageID, userID, services.CreateIncidentInput{
		Title:                req.Title,
		Description:          req.Description,
		Status:               req.Status,
		AffectedComponentIDs: req.AffectedComponentIDs,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, toIncidentResponse(incident))
}

func (h *IncidentHandler) List(ctx *gin.Context) {
	pageID, err := utils.GetIDParam(ctx, "page_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidents, err := h.svc.List(ctx.Request.Context(), pageID)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	response := make([]IncidentResponse, 0, len(incidents))
	for i := range incidents {
		response = append(response, toIncidentResponse(&incidents[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *IncidentHandler) Update(ctx *gin.Context) {
	incidentID, err := utils.GetIDParam(ctx, "incident_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateIncidentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.svc.Update(ctx.Request.Context(), incidentID, services.UpdateIncidentInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, toIncidentResponse(incident))
}

func (h *IncidentHandler) CreateUpdate(ctx *gin.Context) {
	incidentID, err := utils.GetIDParam(ctx, "incident_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateIncidentUpdateRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update, err := h.svc.CreateUpdate(ctx.Request.Context(), incidentID, userID, services.CreateIncidentUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, toIncidentUpdateResponse(update))
}

func (h *IncidentHandler) ListUpdates(ctx *gin.Context) {
	incidentID, err := utils.GetIDParam(ctx, "incident_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates, err := h.svc.ListUpdates(ctx.Request.Context(), incidentID)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	response := make([]IncidentUpdateResponse, 0, len(updates))
	for i := range updates {
		response = append(response, toIncidentUpdateResponse(&updates[i]))
	}

	ctx.JSON(http.StatusOK, response)
}
