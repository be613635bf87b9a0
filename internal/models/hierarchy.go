// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package models

import "time"

// Headend is the central office at the top of the access network.
// Every distribution hub hangs off exactly one headend.
type Headend struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Location  string    `gorm:"size:255" json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FDH is a fiber distribution hub (neighborhood cabinet) under a headend.
type FDH struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Location  string    `gorm:"size:255" json:"location"`
	Region    string    `gorm:"size:100" json:"region"`
	MaxPorts  int       `json:"max_ports"`
	HeadendID uint      `gorm:"index" json:"headend_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FDH) TableName() string {
	return "fdhs"
}

// Splitter is a passive optical splitter inside an FDH. UsedPorts is only
// ever touched by the capacity service; 0 <= UsedPorts <= PortCapacity.
type Splitter struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Model        string    `gorm:"size:50" json:"model"`
	PortCapacity int       `gorm:"not null" json:"port_capacity"`
	UsedPorts    int       `gorm:"default:0" json:"used_ports"`
	Location     string    `gorm:"size:100" json:"location"` // e.g. "Slot 3, Shelf 1"
	FdhID        uint      `gorm:"index" json:"fdh_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
