// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package models

import "time"

type UserRole string

const (
	RolePlanner      UserRole = "Planner"
	RoleTechnician   UserRole = "Technician"
	RoleAdmin        UserRole = "Admin"
	RoleSupportAgent UserRole = "SupportAgent"
)

// User is a system login for role-based access control. Mutations are
// attributed to users via AuditEntry.UserID.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string     `gorm:"size:256;not null" json:"-"`
	Role         UserRole   `gorm:"size:20;not null" json:"role"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
