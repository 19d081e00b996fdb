package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beacon-dev/beacon/internal/apperrors"
	"github.com/beacon-dev/beacon/internal/lifecycle"
	"github.com/beacon-dev/beacon/internal/models"
)

type IncidentService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewIncidentService(db *gorm.DB, logger *zap.Logger) *IncidentService {
	return &IncidentService{db: db, logger: logger}
}

type CreateIncidentInput struct {
	Title                string
	Description          string
	Status               string
	AffectedComponentIDs []uint
}

// Create opens an incident on a status page and links its affected
// components. Component ids are not pre-validated here: a bad id fails
// the insert on the foreign-key constraint and rolls the whole create
// back. (Maintenance windows pre-validate instead; the asymmetry is
// kept deliberately.)
func (s *IncidentService) Create(ctx context.Context, pageID, userID uint, input CreateIncidentInput) (*models.Incident, error) {
	var page models.StatusPage

	if err := s.db.WithContext(ctx).First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("status page", pageID)
		}
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.IncidentInvestigating
	}

	incident := models.Incident{
		StatusPageID: pageID,
		Title:        input.Title,
		Description:  input.Description,
		Status:       status,
		CreatedByID:  userID,
	}

	if status == models.IncidentResolved {
		resolvedAt := now()
		incident.ResolvedAt = &resolvedAt
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&incident).Error; err != nil {
			return translateDBError(err, nil,
				apperrors.NewReferentialViolation("creator %d does not exist", userID))
		}

		for _, componentID := range input.AffectedComponentIDs {
			link := models.IncidentComponent{
				IncidentID:  incident.ID,
				ComponentID: componentID,
			}
			if err := tx.Create(&link).Error; err != nil {
				return translateDBError(err,
					apperrors.NewConflict("component %d is already linked to incident %d", componentID, incident.ID),
					apperrors.NewReferentialViolation("component %d does not exist", componentID))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(page, incident, false)

	return &incident, nil
}

type UpdateIncidentInput struct {
	Title       *string
	Description *string
	Status      *string
}

func (s *IncidentService) Update(ctx context.Context, id uint, input UpdateIncidentInput) (*models.Incident, error) {
	var incident models.Incident

	if err := s.db.WithContext(ctx).First(&incident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("incident", id)
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

	resolvedNow := false
	if input.Status != nil {
		patch["status"] = *input.Status
		for column, value := range lifecycle.IncidentTransition(incident.Status, *input.Status, now()) {
			patch[column] = value
		}
		resolvedNow = *input.Status == models.IncidentResolved && incident.Status != models.IncidentResolved
	}

	if err := s.db.WithContext(ctx).Model(&incident).Updates(patch).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).First(&incident, id).Error; err != nil {
		return nil, err
	}

	if resolvedNow {
		var page models.StatusPage
		if err := s.db.WithContext(ctx).First(&page, incident.StatusPageID).Error; err == nil {
			s.notify(page, incident, true)
		}
	}

	return &incident, nil
}

func (s *IncidentService) List(ctx context.Context, pageID uint) ([]models.Incident, error) {
	var incidents []models.Incident

	err := s.db.WithContext(ctx).
		Where("status_page_id = ?", pageID).
		Order("created_at DESC").
		Find(&incidents).Error
	if err != nil {
		return nil, err
	}

	return incidents, nil
}

type CreateIncidentUpdateInput struct {
	Title       string
	Description string
	Status      string
}

// CreateUpdate appends an update to the incident's log and propagates
// its status (with the resolved_at side effect) to the parent, in one
// transaction. The parent's updated_at always moves forward, so the
// public page reflects the latest narrative entry.
func (s *IncidentService) CreateUpdate(ctx context.Context, incidentID, userID uint, input CreateIncidentUpdateInput) (*models.IncidentUpdate, error) {
	var update models.IncidentUpdate
	var incident models.Incident
	resolvedNow := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&incident, incidentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("incident", incidentID)
			}
			return err
		}

		update = models.IncidentUpdate{
			IncidentID:  incidentID,
			Title:       input.Title,
			Description: input.Description,
			Status:      input.Status,
			CreatedByID: userID,
		}

		if err := tx.Create(&update).Error; err != nil {
			return translateDBError(err, nil,
				apperrors.NewReferentialViolation("creator %d does not exist", userID))
		}

		patch := map[string]interface{}{
			"status":     input.Status,
			"updated_at": now(),
		}
		for column, value := range lifecycle.IncidentTransition(incident.Status, input.Status, now()) {
			patch[column] = value
		}
		resolvedNow = input.Status == models.IncidentResolved && incident.Status != models.IncidentResolved

		return tx.Model(&incident).Updates(patch).Error
	})
	if err != nil {
		return nil, err
	}

	if resolvedNow {
		var page models.StatusPage
		if err := s.db.WithContext(ctx).First(&page, incident.StatusPageID).Error; err == nil {
			s.notify(page, incident, true)
		}
	}

	return &update, nil
}

func (s *IncidentService) ListUpdates(ctx context.Context, incidentID uint) ([]models.IncidentUpdate, error) {
	var updates []models.IncidentUpdate

	err := s.db.WithContext(ctx).
		Where("incident_id = ?", incidentID).
		Order("created_at DESC").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}

	return updates, nil
}

// notify fires organization webhooks in the background. Delivery
// failures are logged and never fail the request.
func (s *IncidentService) notify(page models.StatusPage, incident models.Incident, resolved bool) {
	var org models.Organization
	if err := s.db.First(&org, page.OrganizationID).Error; err != nil {
		return
	}

	if org.DiscordWebhook == "" && org.SlackWebhook == "" {
		return
	}

	go func() {
		var err error
		if resolved {
			err = SendIncidentResolvedNotification(org, page, incident)
		} else {
			err = SendIncidentCreatedNotification(org, page, incident)
		}
		if err != nil {
			s.logger.Warn("webhook notification failed",
				zap.Uint("incident_id", incident.ID),
				zap.Error(err))
		}
	}()
}
