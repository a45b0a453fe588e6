// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserTier string
type Capability string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserTierT1    UserTier = "T1"
	UserTierT2    UserTier = "T2"
	UserTierT3    UserTier = "T3"
	UserTierT4    UserTier = "T4"
	UserTierAdmin UserTier = "admin"

	CapProcessCancellations Capability = "process_cancellations"
	CapViewAllOrders        Capability = "view_all_orders"
	CapManageOrders         Capability = "manage_orders"
	CapManageUsers          Capability = "manage_users"
	CapAdjustBalance        Capability = "adjust_balance"
	CapManageCatalog        Capability = "manage_catalog"
	CapPostAsAdmin          Capability = "post_as_admin"
)

var roleCapabilities = map[UserRole]map[Capability]bool{
	UserRoleUser: {},
	UserRoleAdmin: {
		CapProcessCancellations: true,
		CapViewAllOrders:        true,
		CapManageOrders:         true,
		CapManageUsers:          true,
		CapAdjustBalance:        true,
		CapManageCatalog:        true,
		CapPostAsAdmin:          true,
	},
}

// Can reports whether the role grants the capability.
func (r UserRole) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

func (t UserTier) Valid() bool {
	switch t {
	case UserTierT1, UserTierT2, UserTierT3, UserTierT4, UserTierAdmin:
		return true
	}
	return false
}

// Role maps a pricing tier onto a security role. Only the admin tier is privileged.
func (t UserTier) Role() UserRole {
	if t == UserTierAdmin {
		return UserRoleAdmin
	}
	return UserRoleUser
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID uuid.UUID
	Tier   UserTier
}

func (p Principal) Role() UserRole {
	return p.Tier.Role()
}

func (p Principal) Can(c Capability) bool {
	return p.Role().Can(c)
}

func (p Principal) IsAdmin() bool {
	return p.Role() == UserRoleAdmin
}

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	DisplayName  string
	CompanyName  string
	AccountCode  string
	Tier         UserTier
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
