package models

import "gorm.io/gorm"

const (
	ComponentOperational       = "operational"
	ComponentPerformanceIssues = "performance_issues"
	ComponentPartialOutage     = "partial_outage"
	ComponentMajorOutage       = "major_outage"
	ComponentUnderMaintenance  = "under_maintenance"
)

type Component struct {
	gorm.Model

	StatusPageID uint   `gorm:"not null;index"`
	Name         string `gorm:"not null"`
	Description  *string
	Status       string `gorm:"not null;default:operational"`
	Position     int    `gorm:"not null;default:0"`

	// Relationships
	StatusPage StatusPage `gorm:"foreignKey:StatusPageID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
