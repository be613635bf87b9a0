// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package models

import (
	"time"

	"gorm.io/gorm"
)

// Audit action tags. Kept short and human-readable; the description column
// carries the field-level diff.
const (
	ActionHeadendCreated  = "Headend Created"
	ActionFDHCreated      = "FDH Created"
	ActionFDHUpdate       = "FDH Update"
	ActionSplitterCreated = "Splitter Created"
	ActionSplitterUpdate  = "Splitter Update"
	ActionSplitterMoved   = "Splitter Moved"
	ActionCustomerCreated = "Customer Created"
	ActionCustomerUpdate  = "Customer Update"
	ActionCustomerAssign  = "Customer Assigned"
	ActionPortReleased    = "Port Released"
	ActionAssetCreated    = "Asset Created"
	ActionAssetUpdate     = "Asset Update"
	ActionAssetRetired    = "Asset Retired"
	ActionAssetAssigned   = "Asset Assignment"
	ActionAssetFault      = "Asset Fault"
	ActionTaskCreated     = "Task Created"
	ActionTaskUpdate      = "Task Update"
)

// AuditEntry is an append-only record of a structural mutation. Rows are
// written inside the same transaction as the mutation they describe and are
// never updated or deleted. UserID is nil for system-originated mutations.
type AuditEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ActionType  string    `gorm:"index;size:50" json:"action_type"`
	Description string    `gorm:"type:text" json:"description"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
	UserID      *uint     `gorm:"index" json:"user_id"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

func (a *AuditEntry) BeforeCreate(tx *gorm.DB) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	return nil
}
