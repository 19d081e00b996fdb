package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MaintenanceScheduled  = "scheduled"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
)

type MaintenanceWindow struct {
	gorm.Model

	StatusPageID   uint   `gorm:"not null;index"`
	Title          string `gorm:"not null"`
	Description    string
	Status         string    `gorm:"not null;default:scheduled"`
	ScheduledStart time.Time `gorm:"not null"`
	ScheduledEnd   time.Time `gorm:"not null"`
	ActualStart    *time.Time
	ActualEnd      *time.Time
	CreatedByID    uint `gorm:"not null;index"`

	// Relationships
	StatusPage         StatusPage             `gorm:"foreignKey:StatusPageID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedBy          User                   `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AffectedComponents []MaintenanceComponent `gorm:"foreignKey:MaintenanceWindowID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
