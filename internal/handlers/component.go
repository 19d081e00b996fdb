package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beacon-dev/beacon/internal/models"
	"github.com/beacon-dev/beacon/internal/services"
	"github.com/beacon-dev/beacon/internal/utils"
)

type ComponentHandler struct {
	svc    *services.ComponentService
	logger *zap.Logger
}

func NewComponentHandler(svc *services.ComponentService, logger *zap.Logger) *ComponentHandler {
	return &ComponentHandler{svc: svc, logger: logger}
}

type CreateComponentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=operational performance_issues partial_outage major_outage under_maintenance"`
	Position    int     `json:"position"`
}

type UpdateComponentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=operational performance_issues partial_outage major_outage under_maintenance"`
	Position    *int    `json:"position"`
}

type ComponentResponse struct {
	ID           uint    `json:"id"`
	StatusPageID uint    `json:"status_page_id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Status       string  `json:"status"`
	Position     int     `json:"position"`
}

func toComponentResponse(component *models.Component) ComponentResponse {
	return ComponentResponse{
		ID:           component.ID,
		StatusPageID: component.StatusPageID,
		Name:         component.Name,
		Description:  component.Description,
		Status:       component.Status,
		Position:     component.Position,
	}
}

func (h *ComponentHandler) Create(ctx *gin.Context) {
	pageID, err := utils.GetIDParam(ctx, "page_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreateComponentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	component, err := h.svc.Create(ctx.Request.Context(), pageID, services.CreateComponentInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Position:    req.Position,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, toComponentResponse(component))
}

func (h *ComponentHandler) List(ctx *gin.Context) {
	pageID, err := utils.GetIDParam(ctx, "page_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	components, err := h.svc.List(ctx.Request.Context(), pageID)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	response := make([]ComponentResponse, 0, len(components))
	for i := range components {
		response = append(response, toComponentResponse(&components[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *ComponentHandler) Update(ctx *gin.Context) {
	componentID, err := utils.GetIDParam(ctx, "component_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateComponentRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	component, err := h.svc.Update(ctx.Request.Context(), componentID, services.UpdateComponentInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Position:    req.Position,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, toComponentResponse(component))
}

func (h *ComponentHandler) Delete(ctx *gin.Context) {
	componentID, err := utils.GetIDParam(ctx, "component_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := h.svc.Delete(ctx.Request.Context(), componentID)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
