package models

import "gorm.io/gorm"

// IncidentComponent links an incident to a component it affects. The
// component must belong to the same status page as the incident.
type IncidentComponent struct {
	gorm.Model

	IncidentID  uint `gorm:"not null;uniqueIndex:idx_incident_component"`
	ComponentID uint `gorm:"not null;uniqueIndex:idx_incident_component"`

	// Relationships
	Incident  Incident  `gorm:"foreignKey:IncidentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Component Component `gorm:"foreignKey:ComponentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// MaintenanceComponent links a maintenance window to a component it covers.
type MaintenanceComponent struct {
	gorm.Model

	MaintenanceWindowID uint `gorm:"not null;uniqueIndex:idx_maintenance_component"`
	ComponentID         uint `gorm:"not null;uniqueIndex:idx_maintenance_component"`

	// Relationships
	MaintenanceWindow MaintenanceWindow `gorm:"foreignKey:MaintenanceWindowID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Component         Component         `gorm:"foreignKey:ComponentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
