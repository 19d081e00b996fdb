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

type MaintenanceHandler struct {
	svc    *services.MaintenanceService
	logger *zap.Logger
}

func NewMaintenanceHandler(svc *services.MaintenanceService, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc, logger: logger}
}

type CreateMaintenanceRequest struct {
	Title                string    `json:"title" binding:"required"`
	Description          string    `json:"description"`
	Status               string    `json:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	ScheduledStart       time.Time `json:"scheduled_start" binding:"required"`
	ScheduledEnd         time.Time `json:"scheduled_end" binding:"required"`
	AffectedComponentIDs []uint    `json:"affected_component_ids"`
}

type UpdateMaintenanceRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	ActualStart    *time.Time `json:"actual_start"`
	ActualEnd      *time.Time `json:"actual_end"`
}

type MaintenanceResponse struct {
	ID             uint       `json:"id"`
	StatusPageID   uint       `json:"status_page_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   time.Time  `json:"scheduled_end"`
	ActualStart    *time.Time `json:"actual_start"`
	ActualEnd      *time.Time `json:"actual_end"`
	CreatedByID    uint       `json:"created_by_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toMaintenanceResponse(window *models.MaintenanceWindow) MaintenanceResponse {
	return MaintenanceResponse{
		ID:             window.ID,
		StatusPageID:   window.StatusPageID,
		Title:          window.Title,
		Description:    window.Description,
		Status:         window.Status,
		ScheduledStart: window.ScheduledStart,
		ScheduledEnd:   window.ScheduledEnd,
		ActualStart:    window.ActualStart,
		ActualEnd:      window.ActualEnd,
		CreatedByID:    window.CreatedByID,
		CreatedAt:      window.CreatedAt,
		UpdatedAt:      window.UpdatedAt,
	}
}

func (h *MaintenanceHandler) Create(ctx *gin.Context) {
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

	var req CreateMaintenanceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, err := h.svc.Create(ctx.Request.Context(), pageID, userID, services.CreateMaintenanceInput{
		Title:                req.Title,
		Description:          req.Description,
		Status:               req.Status,
		ScheduledStart:       req.ScheduledStart,
		ScheduledEnd:         req.ScheduledEnd,
		AffectedComponentIDs: req.AffectedComponentIDs,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, toMaintenanceResponse(window))
}

func (h *MaintenanceHandler) List(ctx *gin.Context) {
	pageID, err := utils.GetIDParam(ctx, "page_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	windows, err := h.svc.List(ctx.Request.Context(), pageID)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	response := make([]MaintenanceResponse, 0, len(windows))
	for i := range windows {
		response = append(response, toMaintenanceResponse(&windows[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *MaintenanceHandler) Update(ctx *gin.Context) {
	windowID, err := utils.GetIDParam(ctx, "window_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateMaintenanceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, err := h.svc.Update(ctx.Request.Context(), windowID, services.UpdateMaintenanceInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		ActualStart:    req.ActualStart,
		ActualEnd:      req.ActualEnd,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, toMaintenanceResponse(window))
}
