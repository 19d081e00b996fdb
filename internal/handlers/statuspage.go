package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/beacon-dev/beacon/internal/models"
	"github.com/beacon-dev/beacon/internal/services"
	"github.com/beacon-dev/beacon/internal/utils"
)

type StatusPageHandler struct {
	svc    *services.StatusPageService
	logger *zap.Logger
}

func NewStatusPageHandler(svc *services.StatusPageService, logger *zap.Logger) *StatusPageHandler {
	return &StatusPageHandler{svc: svc, logger: logger}
}

type CreateStatusPageRequest struct {
	Name         string         `json:"name" binding:"required"`
	Slug         string         `json:"slug" binding:"required"`
	LogoURL      *string        `json:"logo_url"`
	PrimaryColor *string        `json:"primary_color"`
	HeaderHTML   *string        `json:"header_html"`
	Branding     datatypes.JSON `json:"branding"`
	IsPublic     *bool          `json:"is_public"`
}

type UpdateStatusPageRequest struct {
	Name         *string        `json:"name"`
	Slug         *string        `json:"slug"`
	LogoURL      *string        `json:"logo_url"`
	PrimaryColor *string        `json:"primary_color"`
	HeaderHTML   *string        `json:"header_html"`
	Branding     datatypes.JSON `json:"branding"`
	IsPublic     *bool          `json:"is_public"`
}

type StatusPageResponse struct {
	ID             uint           `json:"id"`
	OrganizationID uint           `json:"organization_id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	LogoURL        *string        `json:"logo_url"`
	PrimaryColor   *string        `json:"primary_color"`
	HeaderHTML     *string        `json:"header_html"`
	Branding       datatypes.JSON `json:"branding,omitempty"`
	IsPublic       bool           `json:"is_public"`
}

func toStatusPageResponse(page *models.StatusPage) StatusPageResponse {
	return StatusPageResponse{
		ID:             page.ID,
		OrganizationID: page.OrganizationID,
		Name:           page.Name,
		Slug:           page.Slug,
		LogoURL:        page.LogoURL,
		PrimaryColor:   page.PrimaryColor,
		HeaderHTML:     page.HeaderHTML,
		Branding:       page.Branding,
		IsPublic:       page.IsPublic,
	}
}

func (h *StatusPageHandler) Create(ctx *gin.Context) {
	orgID, err := utils.GetIDParam(ctx, "org_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreateStatusPageRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.svc.Create(ctx.Request.Context(), orgID, services.CreateStatusPageInput{
		Name:         req.Name,
		Slug:         req.Slug,
		LogoURL:      req.LogoURL,
		PrimaryColor: req.PrimaryColor,
		HeaderHTML:   req.HeaderHTML,
		Branding:     req.Branding,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, toStatusPageResponse(page))
}

func (h *StatusPageHandler) List(ctx *gin.Context) {
	orgID, err := utils.GetIDParam(ctx, "org_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pages, err := h.svc.List(ctx.Request.Context(), orgID)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	response := make([]StatusPageResponse, 0, len(pages))
	for i := range pages {
		response = append(response, toStatusPageResponse(&pages[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *StatusPageHandler) Get(ctx *gin.Context) {
	pageID, err := utils.GetIDParam(ctx, "page_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.svc.Get(ctx.Request.Context(), pageID)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, toStatusPageResponse(page))
}

func (h *StatusPageHandler) Update(ctx *gin.Context) {
	pageID, err := utils.GetIDParam(ctx, "page_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateStatusPageRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.svc.Update(ctx.Request.Context(), pageID, services.UpdateStatusPageInput{
		Name:         req.Name,
		Slug:         req.Slug,
		LogoURL:      req.LogoURL,
		PrimaryColor: req.PrimaryColor,
		HeaderHTML:   req.HeaderHTML,
		Branding:     req.Branding,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, toStatusPageResponse(page))
}

func (h *StatusPageHandler) Delete(ctx *gin.Context) {
	pageID, err := utils.GetIDParam(ctx, "page_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := h.svc.Delete(ctx.Request.Context(), pageID)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
