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

type ComponentService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewComponentService(db *gorm.DB, logger *zap.Logger) *ComponentService {
	return &ComponentService{db: db, logger: logger}
}

type CreateComponentInput struct {
	Name        string
	Description *string
	Status      string
	Position    int
}

// Create adds a component to a status page. The component limit comes
// from the owning organization's plan tier but is counted per page.
func (s *ComponentService) Create(ctx context.Context, pageID uint, input CreateComponentInput) (*models.Component, error) {
	var component models.Component

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var page models.StatusPage
		if err := tx.First(&page, pageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("status page", pageID)
			}
			return err
		}

		var org models.Organization
		if err := tx.First(&org, page.OrganizationID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Component{}).
			Where("status_page_id = ?", pageID).
			Count(&count).Error; err != nil {
			return err
		}

		if err := quota.Check(org.PlanTier, quota.ResourceComponents, count); err != nil {
			return err
		}

		status := input.Status
		if status == "" {
			status = models.ComponentOperational
		}

		component = models.Component{
			StatusPageID: pageID,
			Name:         input.Name,
			Description:  input.Description,
			Status:       status,
			Position:     input.Position,
		}

		return tx.Create(&component).Error
	})
	if err != nil {
		return nil, err
	}

	return &component, nil
}

type UpdateComponentInput struct {
	Name        *string
	Description *string
	Status      *string
	Position    *int
}

func (s *ComponentService) Update(ctx context.Context, id uint, input UpdateComponentInput) (*models.Component, error) {
	var component models.Component

	if err := s.db.WithContext(ctx).First(&component, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("component", id)
		}
		return nil, err
	}

	patch := map[string]interface{}{"updated_at": now()}

	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Status != nil {
		patch["status"] = *input.Status
	}
	if input.Position != nil {
		patch["position"] = *input.Position
	}

	if err := s.db.WithContext(ctx).Model(&component).Updates(patch).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&component, id).Error; err != nil {
		return nil, err
	}

	return &component, nil
}

func (s *ComponentService) List(ctx context.Context, pageID uint) ([]models.Component, error) {
	var components []models.Component

	err := s.db.WithContext(ctx).
		Where("status_page_id = ?", pageID).
		Order("position ASC").
		Find(&components).Error
	if err != nil {
		return nil, err
	}

	return components, nil
}

// Delete removes a component and its junction rows only. Incidents and
// maintenance windows that referenced it survive.
func (s *ComponentService) Delete(ctx context.Context, id uint) (bool, error) {
	var component models.Component

	if err := s.db.WithContext(ctx).First(&component, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("component_id = ?", id).
			Delete(&models.IncidentComponent{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("component_id = ?", id).
			Delete(&models.MaintenanceComponent{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.Component{}, id).Error
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
