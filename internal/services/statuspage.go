package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/beacon-dev/beacon/internal/apperrors"
	"github.com/beacon-dev/beacon/internal/models"
	"github.com/beacon-dev/beacon/internal/quota"
)

type StatusPageService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewStatusPageService(db *gorm.DB, logger *zap.Logger) *StatusPageService {
	return &StatusPageService{db: db, logger: logger}
}

type CreateStatusPageInput struct {
	Name         string
	Slug         string
	LogoURL      *string
	PrimaryColor *string
	HeaderHTML   *string
	Branding     datatypes.JSON
	IsPublic     *bool
}

// Create adds a status page under an organization, counting existing
// pages against the plan tier inside the insert transaction.
func (s *StatusPageService) Create(ctx context.Context, orgID uint, input CreateStatusPageInput) (*models.StatusPage, error) {
	var page models.StatusPage

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var org models.Organization
		if err := tx.First(&org, orgID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("organization", orgID)
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.StatusPage{}).
			Where("organization_id = ?", orgID).
			Count(&count).Error; err != nil {
			return err
		}

		if err := quota.Check(org.PlanTier, quota.ResourceStatusPages, count); err != nil {
			return err
		}

		isPublic := true
		if input.IsPublic != nil {
			isPublic = *input.IsPublic
		}

		page = models.StatusPage{
			OrganizationID: orgID,
			Name:           input.Name,
			Slug:           input.Slug,
			LogoURL:        input.LogoURL,
			PrimaryColor:   input.PrimaryColor,
			HeaderHTML:     input.HeaderHTML,
			Branding:       input.Branding,
			IsPublic:       isPublic,
		}

		if err := tx.Create(&page).Error; err != nil {
			return translateDBError(err,
				apperrors.NewConflict("status page slug %s is already taken", input.Slug),
				apperrors.NewReferentialViolation("organization %d does not exist", orgID))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &page, nil
}

type UpdateStatusPageInput struct {
	Name         *string
	Slug         *string
	LogoURL      *string
	PrimaryColor *string
	HeaderHTML   *string
	Branding     datatypes.JSON
	IsPublic     *bool
}

// Update applies a sparse patch: absent fields stay untouched, and an
// empty patch still refreshes updated_at.
func (s *StatusPageService) Update(ctx context.Context, id uint, input UpdateStatusPageInput) (*models.StatusPage, error) {
	var page models.StatusPage

	if err := s.db.WithContext(ctx).First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("status page", id)
		}
		return nil, err
	}

	patch := map[string]interface{}{"updated_at": now()}

	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Slug != nil {
		patch["slug"] = *input.Slug
	}
	if input.LogoURL != nil {
		patch["logo_url"] = *input.LogoURL
	}
	if input.PrimaryColor != nil {
		patch["primary_color"] = *input.PrimaryColor
	}
	if input.HeaderHTML != nil {
		patch["header_html"] = *input.HeaderHTML
	}
	if input.Branding != nil {
		patch["branding"] = input.Branding
	}
	if input.IsPublic != nil {
		patch["is_public"] = *input.IsPublic
	}

	if err := s.db.WithContext(ctx).Model(&page).Updates(patch).Error; err != nil {
		slug := page.Slug
		if input.Slug != nil {
			slug = *input.Slug
		}
		return nil, translateDBError(err,
			apperrors.NewConflict("status page slug %s is already taken", slug), nil)
	}

	if err := s.db.WithContext(ctx).First(&page, id).Error; err != nil {
		return nil, err
	}

	return &page, nil
}

func (s *StatusPageService) List(ctx context.Context, orgID uint) ([]models.StatusPage, error) {
	var pages []models.StatusPage

	err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Find(&pages).Error
	if err != nil {
		return nil, err
	}

	return pages, nil
}

func (s *StatusPageService) Get(ctx context.Context, id uint) (*models.StatusPage, error) {
	var page models.StatusPage

	if err := s.db.WithContext(ctx).First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("status page", id)
		}
		return nil, err
	}

	return &page, nil
}

// PublicView assembles what the public page renders: components in
// display order, recent incidents with their update log, and maintenance
// windows that are still relevant. Private and unknown slugs both come
// back as gorm.ErrRecordNotFound so callers cannot distinguish them.
type PublicView struct {
	Page               models.StatusPage
	Components         []models.Component
	Incidents          []models.Incident
	MaintenanceWindows []models.MaintenanceWindow
}

func (s *StatusPageService) GetPublicView(ctx context.Context, slug string) (*PublicView, error) {
	var view PublicView

	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_public = ?", slug, true).
		First(&view.Page).Error
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Where("status_page_id = ?", view.Page.ID).
		Order("position ASC").
		Find(&view.Components).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("Updates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("status_page_id = ?", view.Page.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&view.Incidents).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Where("status_page_id = ? AND status <> ?", view.Page.ID, models.MaintenanceCancelled).
		Order("scheduled_start ASC").
		Find(&view.MaintenanceWindows).Error; err != nil {
		return nil, err
	}

	return &view, nil
}

// Delete removes a status page and every dependent row. It reports false
// for an unknown id rather than an error, so deletes are idempotent-safe.
//
// The fan-out runs in one transaction, ordered so that no delete crosses
// a foreign-key edge before its dependents are gone: incident updates and
// both junction tables first, then incidents and maintenance windows,
// then components, then the page.
func (s *StatusPageService) Delete(ctx context.Context, id uint) (bool, error) {
	var page models.StatusPage

	if err := s.db.WithContext(ctx).First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		incidentIDs := func() *gorm.DB {
			return tx.Model(&models.Incident{}).Select("id").Where("status_page_id = ?", id)
		}
		maintenanceIDs := func() *gorm.DB {
			return tx.Model(&models.MaintenanceWindow{}).Select("id").Where("status_page_id = ?", id)
		}

		if err := tx.Unscoped().
			Where("incident_id IN (?)", incidentIDs()).
			Delete(&models.IncidentUpdate{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("incident_id IN (?)", incidentIDs()).
			Delete(&models.IncidentComponent{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("maintenance_window_id IN (?)", maintenanceIDs()).
			Delete(&models.MaintenanceComponent{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("status_page_id = ?", id).
			Delete(&models.Incident{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("status_page_id = ?", id).
			Delete(&models.MaintenanceWindow{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("status_page_id = ?", id).
			Delete(&models.Component{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.StatusPage{}, id).Error
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("status page deleted", zap.Uint("status_page_id", id))

	return true, nil
}
