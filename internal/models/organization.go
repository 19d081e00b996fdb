package models

import "gorm.io/gorm"

const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanPlus       = "plus"
	PlanEnterprise = "enterprise"
)

type Organization struct {
	gorm.Model

	Name           string `gorm:"not null"`
	Slug           string `gorm:"uniqueIndex;not null"`
	PlanTier       string `gorm:"not null;default:free"`
	OwnerID        uint   `gorm:"not null;index"`
	DiscordWebhook string
	SlackWebhook   string

	// Relationships
	Owner       User                 `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members     []OrganizationMember `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	StatusPages []StatusPage         `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
