package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	IncidentInvestigating = "investigating"
	IncidentIdentified    = "identified"
	IncidentMonitoring    = "monitoring"
	IncidentResolved      = "resolved"
)

type Incident struct {
	gorm.Model

	StatusPageID uint   `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string
	Status       string `gorm:"not null;default:investigating"`
	CreatedByID  uint   `gorm:"not null;index"`
	ResolvedAt   *time.Time

	// Relationships
	StatusPage         StatusPage          `gorm:"foreignKey:StatusPageID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedBy          User                `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Updates            []IncidentUpdate    `gorm:"foreignKey:IncidentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AffectedComponents []IncidentComponent `gorm:"foreignKey:IncidentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
