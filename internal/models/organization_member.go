package models

import "gorm.io/gorm"

const (
	MemberRoleOwner  = "owner"
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
)

type OrganizationMember struct {
	gorm.Model

	OrganizationID uint   `gorm:"not null;uniqueIndex:idx_org_user"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_org_user"`
	Role           string `gorm:"not null;default:member"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User         User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
