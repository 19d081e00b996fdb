package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beacon-dev/beacon/internal/apperrors"
	"github.com/beacon-dev/beacon/internal/lifecycle"
	"github.com/beacon-dev/beacon/internal/models"
)

type MaintenanceService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewMaintenanceService(db *gorm.DB, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{db: db, logger: logger}
}

type CreateMaintenanceInput struct {
	Title                string
	Description          string
	Status               string
	ScheduledStart       time.Time
	ScheduledEnd         time.Time
	AffectedComponentIDs []uint
}

// Create schedules a maintenance window. Every listed component must
// already exist and belong to the same status page; otherwise the create
// fails with all offending ids before anything is written.
func (s *MaintenanceService) Create(ctx context.Context, pageID, userID uint, input CreateMaintenanceInput) (*models.MaintenanceWindow, error) {
	var page models.StatusPage

	if err := s.db.WithContext(ctx).First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("status page", pageID)
		}
		return nil, err
	}

	if len(input.AffectedComponentIDs) > 0 {
		var found []uint
		err := s.db.WithContext(ctx).Model(&models.Component{}).
			Where("id IN ? AND status_page_id = ?", input.AffectedComponentIDs, pageID).
			Pluck("id", &found).Error
		if err != nil {
			return nil, err
		}

		foundSet := make(map[uint]struct{}, len(found))
		for _, id := range found {
			foundSet[id] = struct{}{}
		}

		var offending []uint
		for _, id := range input.AffectedComponentIDs {
			if _, ok := foundSet[id]; !ok {
				offending = append(offending, id)
			}
		}

		if len(offending) > 0 {
			return nil, apperrors.NewComponentMismatch(pageID, offending)
		}
	}

	status := input.Status
	if status == "" {
		status = models.MaintenanceScheduled
	}

	window := models.MaintenanceWindow{
		StatusPageID:   pageID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         status,
		ScheduledStart: input.ScheduledStart,
		ScheduledEnd:   input.ScheduledEnd,
		CreatedByID:    userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&window).Error; err != nil {
			return translateDBError(err, nil,
				apperrors.NewReferentialViolation("creator %d does not exist", userID))
		}

		for _, componentID := range input.AffectedComponentIDs {
			link := models.MaintenanceComponent{
				MaintenanceWindowID: window.ID,
				ComponentID:         componentID,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &window, nil
}

type UpdateMaintenanceInput struct {
	Title          *string
	Description    *string
	Status         *string
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
}

// Update applies a sparse patch. A status change merges the derived
// actual_start/actual_end patch on top: explicit values supplied in the
// same request win, except that a reset to scheduled clears both fields
// no matter what was supplied.
func (s *MaintenanceService) Update(ctx context.Context, id uint, input UpdateMaintenanceInput) (*models.MaintenanceWindow, error) {
	var window models.MaintenanceWindow

	if err := s.db.WithContext(ctx).First(&window, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("maintenance window", id)
		}
		return nil, err
	}

	patch := map[string]interface{}{"updated_at": now()}

	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.ScheduledStart != nil {
		patch["scheduled_start"] = *input.ScheduledStart
	}
	if input.ScheduledEnd != nil {
		patch["scheduled_end"] = *input.ScheduledEnd
	}
	if input.ActualStart != nil {
		patch["actual_start"] = *input.ActualStart
	}
	if input.ActualEnd != nil {
		patch["actual_end"] = *input.ActualEnd
	}

	if input.Status != nil {
		patch["status"] = *input.Status
		overrides := lifecycle.MaintenanceOverrides{
			ActualStart: input.ActualStart,
			ActualEnd:   input.ActualEnd,
		}
		for column, value := range lifecycle.MaintenanceTransition(window.Status, *input.Status, overrides, now()) {
			patch[column] = value
		}
	}

	if err := s.db.WithContext(ctx).Model(&window).Updates(patch).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&window, id).Error; err != nil {
		return nil, err
	}

	return &window, nil
}

func (s *MaintenanceService) List(ctx context.Context, pageID uint) ([]models.MaintenanceWindow, error) {
	var windows []models.MaintenanceWindow

	err := s.db.WithContext(ctx).
		Where("status_page_id = ?", pageID).
		Order("scheduled_start ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}

	return windows, nil
}
