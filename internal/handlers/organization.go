package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beacon-dev/beacon/internal/models"
	"github.com/beacon-dev/beacon/internal/services"
	"github.com/beacon-dev/beacon/internal/utils"
)

type OrganizationHandler struct {
	svc    *services.OrganizationService
	logger *zap.Logger
}

func NewOrganizationHandler(svc *services.OrganizationService, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{svc: svc, logger: logger}
}

type CreateOrganizationRequest struct {
	Name           string `json:"name" binding:"required"`
	Slug           string `json:"slug" binding:"required"`
	PlanTier       string `json:"plan_tier" binding:"omitempty,oneof=free pro plus enterprise"`
	DiscordWebhook string `json:"discord_webhook" binding:"omitempty,url"`
	SlackWebhook   string `json:"slack_webhook" binding:"omitempty,url"`
}

type OrganizationResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	PlanTier string `json:"plan_tier"`
	OwnerID  uint   `json:"owner_id"`
}

func toOrganizationResponse(org *models.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:       org.ID,
		Name:     org.Name,
		Slug:     org.Slug,
		PlanTier: org.PlanTier,
		OwnerID:  org.OwnerID,
	}
}

func (h *OrganizationHandler) Create(ctx *gin.Context) {
	var req CreateOrganizationRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	org, err := h.svc.Create(ctx.Request.Context(), services.CreateOrganizationInput{
		Name:           req.Name,
		Slug:           req.Slug,
		PlanTier:       req.PlanTier,
		OwnerID:        userID,
		DiscordWebhook: req.DiscordWebhook,
		SlackWebhook:   req.SlackWebhook,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, toOrganizationResponse(org))
}

func (h *OrganizationHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orgs, err := h.svc.List(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	response := make([]OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		response = append(response, toOrganizationResponse(&orgs[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=owner admin member"`
}

type MemberResponse struct {
	ID             uint   `json:"id"`
	OrganizationID uint   `json:"organization_id"`
	UserID         uint   `json:"user_id"`
	Role           string `json:"role"`
}

func (h *OrganizationHandler) AddMember(ctx *gin.Context) {
	orgID, err := utils.GetIDParam(ctx, "org_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req AddMemberRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.svc.AddMember(ctx.Request.Context(), orgID, services.AddMemberInput{
		UserID: req.UserID,
		Role:   req.Role,
	})
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, MemberResponse{
		ID:             member.ID,
		OrganizationID: member.OrganizationID,
		UserID:         member.UserID,
		Role:           member.Role,
	})
}
