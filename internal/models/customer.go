// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package models

import "time"

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "Active"
	CustomerInactive CustomerStatus = "Inactive"
	CustomerPending  CustomerStatus = "Pending"
)

type ConnectionType string

const (
	ConnectionWired    ConnectionType = "Wired"
	ConnectionWireless ConnectionType = "Wireless"
)

// Customer is an end-user premises. SplitterID/AssignedPort are nil until a
// planner provisions the customer onto a splitter port.
type Customer struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Address        string         `gorm:"type:text" json:"address"`
	Neighborhood   string         `gorm:"size:100" json:"neighborhood"`
	Plan           string         `gorm:"size:50" json:"plan"`
	ConnectionType ConnectionType `gorm:"size:20;default:Wired" json:"connection_type"`
	Status         CustomerStatus `gorm:"size:20;default:Pending" json:"status"`
	AssignedPort   *int           `json:"assigned_port"`
	SplitterID     *uint          `gorm:"index" json:"splitter_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type DropLineStatus string

const (
	DropLineActive       DropLineStatus = "Active"
	DropLineDisconnected DropLineStatus = "Disconnected"
)

// FiberDropLine is the physical fiber segment from a splitter port to a
// customer premises. One line per customer.
type FiberDropLine struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	LengthMeters   float64        `json:"length_meters"`
	Status         DropLineStatus `gorm:"size:20;default:Active" json:"status"`
	FromSplitterID uint           `gorm:"index" json:"from_splitter_id"`
	ToCustomerID   uint           `gorm:"uniqueIndex" json:"to_customer_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
