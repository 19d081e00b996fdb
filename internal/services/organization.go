package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beacon-dev/beacon/internal/apperrors"
	"github.com/beacon-dev/beacon/internal/models"
	"github.com/beacon-dev/beacon/internal/quota"
)

type OrganizationService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewOrganizationService(db *gorm.DB, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{db: db, logger: logger}
}

type CreateOrganizationInput struct {
	Name           string
	Slug           string
	PlanTier       string
	OwnerID        uint
	DiscordWebhook string
	SlackWebhook   string
}

func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*models.Organization, error) {
	planTier := input.PlanTier
	if planTier == "" {
		planTier = models.PlanFree
	}

	org := models.Organization{
		Name:           input.Name,
		Slug:           input.Slug,
		PlanTier:       planTier,
		OwnerID:        input.OwnerID,
		DiscordWebhook: input.DiscordWebhook,
		SlackWebhook:   input.SlackWebhook,
	}

	err := s.db.WithContext(ctx).Create(&org).Error
	if err != nil {
		return nil, translateDBError(err,
			apperrors.NewConflict("organization slug %s is already taken", input.Slug),
			apperrors.NewReferentialViolation("owner %d does not exist", input.OwnerID))
	}

	s.logger.Info("organization created",
		zap.Uint("organization_id", org.ID),
		zap.String("slug", org.Slug),
		zap.String("plan_tier", org.PlanTier))

	return &org, nil
}

func (s *OrganizationService) List(ctx context.Context, userID uint) ([]models.Organization, error) {
	var orgs []models.Organization

	memberOrgs := s.db.Model(&models.OrganizationMember{}).
		Select("organization_id").
		Where("user_id = ?", userID)

	err := s.db.WithContext(ctx).
		Where("owner_id = ? OR id IN (?)", userID, memberOrgs).
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}

	return orgs, nil
}

type AddMemberInput struct {
	UserID uint
	Role   string
}

// AddMember adds a user to an organization. The member count check and
// the insert share one transaction so concurrent adds cannot slip past
// the plan limit.
func (s *OrganizationService) AddMember(ctx context.Context, orgID uint, input AddMemberInput) (*models.OrganizationMember, error) {
	role := input.Role
	if role == "" {
		role = models.MemberRoleMember
	}

	var member models.OrganizationMember

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var org models.Organization
		if err := tx.First(&org, orgID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("organization", orgID)
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.OrganizationMember{}).
			Where("organization_id = ?", orgID).
			Count(&count).Error; err != nil {
			return err
		}

		if err := quota.Check(org.PlanTier, quota.ResourceMembers, count); err != nil {
			return err
		}

		member = models.OrganizationMember{
			OrganizationID: orgID,
			UserID:         input.UserID,
			Role:           role,
		}

		if err := tx.Create(&member).Error; err != nil {
			return translateDBError(err,
				apperrors.NewConflict("user %d is already a member of organization %d", input.UserID, orgID),
				apperrors.NewReferentialViolation("user %d does not exist", input.UserID))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &member, nil
}
