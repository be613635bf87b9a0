// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package models

import "time"

// Technician is a field technician profile (distinct from the User login).
type Technician struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Contact   string    `gorm:"size:50" json:"contact"`
	Region    string    `gorm:"size:100" json:"region"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaskStatus string

const (
	TaskScheduled  TaskStatus = "Scheduled"
	TaskInProgress TaskStatus = "InProgress"
	TaskCompleted  TaskStatus = "Completed" // terminal
	TaskFailed     TaskStatus = "Failed"    // terminal
)

// DeploymentTask is a work order for installation or maintenance at a
// customer premises.
type DeploymentTask struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Status        TaskStatus `gorm:"size:20;default:Scheduled" json:"status"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	Notes         string     `gorm:"type:text" json:"notes"`
	CustomerID    uint       `gorm:"index" json:"customer_id"`
	TechnicianID  *uint      `gorm:"index" json:"technician_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
