package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StatusPage struct {
	gorm.Model

	OrganizationID uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Slug           string `gorm:"uniqueIndex;not null"`
	LogoURL        *string
	PrimaryColor   *string
	HeaderHTML     *string
	Branding       datatypes.JSON `gorm:"type:jsonb"`
	// No column default: false is a meaningful value and GORM skips
	// zero-value fields that carry one.
	IsPublic bool `gorm:"not null"`

	// Relationships
	Organization       Organization        `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Components         []Component         `gorm:"foreignKey:StatusPageID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Incidents          []Incident          `gorm:"foreignKey:StatusPageID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	MaintenanceWindows []MaintenanceWindow `gorm:"foreignKey:StatusPageID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
