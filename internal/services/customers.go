// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

// CustomerService handles subscriber records. Port assignment itself lives
// in CapacityService; this layer wires deactivation to port release so a
// customer that goes Inactive never keeps a splitter port occupied.
type CustomerService struct {
	db       *gorm.DB
	capacity *CapacityService
}

func NewCustomerService(db *gorm.DB, capacity *CapacityService) *CustomerService {
	return &CustomerService{db: db, capacity: capacity}
}

func (s *CustomerService) CreateCustomer(customer *models.Customer, actorID *uint) error {
	if customer.Status == "" {
		customer.Status = models.CustomerPending
	}
	// Splitter linkage is established via the assignment operation, not at
	// create time.
	customer.SplitterID = nil
	customer.AssignedPort = nil
	return withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(customer).Error; err != nil {
				return err
			}
			desc := fmt.Sprintf("Created customer %s (ID: %d)", customer.Name, customer.ID)
			return Audit.Record(tx, models.ActionCustomerCreated, desc, actorID)
		})
	})
}

func (s *CustomerService) GetCustomer(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &customer, nil
}

type CustomerFilter struct {
	Status     models.CustomerStatus
	SplitterID *uint
	Offset     int
	Limit      int
}

func (s *CustomerService) ListCustomers(filter CustomerFilter) ([]models.Customer, int64, error) {
	query := s.db.Model(&models.Customer{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SplitterID != nil {
		query = query.Where("splitter_id = ?", *filter.SplitterID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var customers []models.Customer
	err := query.Order("id").Offset(filter.Offset).Limit(limit).Find(&customers).Error
	return customers, total, err
}

// CustomerUpdate carries a partial update; nil fields are untouched.
// Splitter and port fields are deliberately absent: those move only through
// CapacityService.
type CustomerUpdate struct {
	Name           *string                `json:"name"`
	Address        *string                `json:"address"`
	Plan           *string                `json:"plan"`
	ConnectionType *models.ConnectionType `json:"connection_type"`
	Status         *models.CustomerStatus `json:"status"`
}

func (s *CustomerService) UpdateCustomer(id uint, upd CustomerUpdate, actorID *uint) (*models.Customer, error) {
	var customer models.Customer
	err := withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&customer, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("customer %d: %w", id, ErrNotFound)
				}
				return err
			}

			fields := map[string]interface{}{}
			changes := []FieldChange{}
			if upd.Name != nil {
				fields["name"] = *upd.Name
				changes = append(changes, FieldChange{"name", *upd.Name})
			}
			if upd.Address != nil {
				fields["address"] = *upd.Address
				changes = append(changes, FieldChange{"address", *upd.Address})
			}
			if upd.Plan != nil {
				fields["plan"] = *upd.Plan
				changes = append(changes, FieldChange{"plan", *upd.Plan})
			}
			if upd.ConnectionType != nil {
				fields["connection_type"] = *upd.ConnectionType
				changes = append(changes, FieldChange{"connection_type", *upd.ConnectionType})
			}
			deactivating := false
			if upd.Status != nil && *upd.Status != customer.Status {
				fields["status"] = *upd.Status
				changes = append(changes, FieldChange{"status", *upd.Status})
				deactivating = *upd.Status == models.CustomerInactive
			}
			if len(fields) == 0 {
				return nil
			}

			if err := tx.Model(&customer).Updates(fields).Error; err != nil {
				return err
			}

			// An inactive customer must not hold a splitter port.
			if deactivating && customer.SplitterID != nil {
				if err := s.capacity.releasePortTx(tx, customer.ID, actorID); err != nil {
					return err
				}
			}

			if err := tx.First(&customer, id).Error; err != nil {
				return err
			}
			subject := fmt.Sprintf("customer %s", customer.Name)
			return Audit.RecordUpdate(tx, models.ActionCustomerUpdate, subject, changes, actorID)
		})
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Assignments returns the asset assignment history for a customer, newest
// first.
func (s *CustomerService) Assignments(customerID uint) ([]models.AssetAssignment, error) {
	if _, err := s.GetCustomer(customerID); err != nil {
		return nil, err
	}
	var assignments []models.AssetAssignment
	err := s.db.Where("customer_id = ?", customerID).Order("id DESC").Find(&assignments).Error
	return assignments, err
}
