// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package models

import "time"

type AssetType string

const (
	AssetONT       AssetType = "ONT"
	AssetRouter    AssetType = "Router"
	AssetSplitter  AssetType = "Splitter"
	AssetFDH       AssetType = "FDH"
	AssetSwitch    AssetType = "Switch"
	AssetCPE       AssetType = "CPE"
	AssetFiberRoll AssetType = "FiberRoll"
)

type AssetStatus string

const (
	AssetAvailable AssetStatus = "Available"
	AssetAssigned  AssetStatus = "Assigned"
	AssetFaulty    AssetStatus = "Faulty"
	AssetRetired   AssetStatus = "Retired" // terminal
)

// Asset is a physical piece of hardware in inventory, tracked by serial
// number. "Deletion" is a status flip to Retired; the row stays.
type Asset struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Type         AssetType   `gorm:"column:asset_type;size:20;not null" json:"asset_type"`
	Model        string      `gorm:"size:100" json:"model"`
	SerialNumber string      `gorm:"uniqueIndex;size:100" json:"serial_number"`
	Status       AssetStatus `gorm:"size:20;default:Available" json:"status"`
	Location     string      `gorm:"size:100" json:"location"` // e.g. "Warehouse A", "Tech Van 3"
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// AssetAssignment links a customer to a specific asset (ONT, router). Rows
// are historical; an asset has at most one current holder, enforced by the
// asset service through the asset's status.
type AssetAssignment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index" json:"customer_id"`
	AssetID    uint      `gorm:"index" json:"asset_id"`
	AssignedOn time.Time `json:"assigned_on"`
}
