package models

import "gorm.io/gorm"

// IncidentUpdate is an append-only log entry; posting one advances the
// parent incident's status.
type IncidentUpdate struct {
	gorm.Model

	IncidentID  uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null"`
	CreatedByID uint   `gorm:"not null;index"`

	// Relationships
	Incident  Incident `gorm:"foreignKey:IncidentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedBy User     `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
