// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

// FieldChange is one field of a mutation diff, in the order the caller
// applied it. Ordering matters: the rendered description must be stable.
type FieldChange struct {
	Field string
	Value interface{}
}

// changeSummary renders "status: Faulty, location: Warehouse B".
func changeSummary(changes []FieldChange) string {
	parts := make([]string, 0, len(changes))
	for _, ch := range changes {
		parts = append(parts, fmt.Sprintf("%s: %v", ch.Field, ch.Value))
	}
	return strings.Join(parts, ", ")
}

// AuditRecorder appends immutable audit entries. Every Record call must run
// on the same *gorm.DB transaction as the mutation it describes so the two
// commit or roll back together.
type AuditRecorder struct{}

// Audit is the shared recorder instance.
var Audit = &AuditRecorder{}

// Record appends one entry on tx. userID is nil for system-originated
// mutations.
func (r *AuditRecorder) Record(tx *gorm.DB, actionType, description string, userID *uint) error {
	entry := models.AuditEntry{
		ActionType:  actionType,
		Description: description,
		UserID:      userID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// RecordUpdate renders the standard update description and appends it:
// "Updated asset NK123456. Changes: status: Faulty".
func (r *AuditRecorder) RecordUpdate(tx *gorm.DB, actionType, subject string, changes []FieldChange, userID *uint) error {
	desc := fmt.Sprintf("Updated %s. Changes: %s", subject, changeSummary(changes))
	return r.Record(tx, actionType, desc, userID)
}

// AuditFilter narrows List. Zero values mean "no filter".
type AuditFilter struct {
	ActionType string
	UserID     *uint
	From       time.Time
	To         time.Time
	Offset     int
	Limit      int
}

// List returns entries newest-first. It is the only read path the ledger
// exposes.
func (r *AuditRecorder) List(db *gorm.DB, filter AuditFilter) ([]models.AuditEntry, int64, error) {
	query := db.Model(&models.AuditEntry{})

	if filter.ActionType != "" {
		query = query.Where("action_type = ?", filter.ActionType)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if !filter.From.IsZero() {
		query = query.Where("timestamp >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("timestamp < ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var entries []models.AuditEntry
	err := query.Order("timestamp DESC, id DESC").
		Offset(filter.Offset).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}
