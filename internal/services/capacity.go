// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

// CapacityService is the only component allowed to touch a splitter's
// used_ports counter. Every mutation here runs in one transaction with its
// audit entry.
type CapacityService struct {
	db *gorm.DB
}

func NewCapacityService(db *gorm.DB) *CapacityService {
	return &CapacityService{db: db}
}

// AssignCustomerToSplitter provisions a customer onto a splitter port.
// The port counter is bumped with a guarded UPDATE so two concurrent
// assignments can never push used_ports past port_capacity.
func (s *CapacityService) AssignCustomerToSplitter(customerID, splitterID uint, port int, actorID *uint) error {
	return withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var customer models.Customer
			if err := tx.First(&customer, customerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
				}
				return err
			}
			if customer.SplitterID != nil {
				return businessRule("customer %d is already assigned to splitter %d; release the port first", customerID, *customer.SplitterID)
			}

			var splitter models.Splitter
			if err := tx.First(&splitter, splitterID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("splitter %d: %w", splitterID, ErrNotFound)
				}
				return err
			}
			if splitter.UsedPorts >= splitter.PortCapacity {
				return fmt.Errorf("splitter %d: %w", splitterID, ErrCapacityExceeded)
			}
			if port < 1 || port > splitter.PortCapacity {
				return businessRule("port %d is out of range for splitter %d (capacity %d)", port, splitterID, splitter.PortCapacity)
			}

			var occupied int64
			if err := tx.Model(&models.Customer{}).
				Where("splitter_id = ? AND assigned_port = ?", splitterID, port).
				Count(&occupied).Error; err != nil {
				return err
			}
			if occupied > 0 {
				return fmt.Errorf("port %d on splitter %d: %w", port, splitterID, ErrPortConflict)
			}

			// Guarded increment: no row is touched once the splitter is full.
			res := tx.Model(&models.Splitter{}).
				Where("id = ? AND used_ports < port_capacity", splitterID).
				UpdateColumn("used_ports", gorm.Expr("used_ports + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("splitter %d: %w", splitterID, ErrCapacityExceeded)
			}

			if err := tx.Model(&customer).Updates(map[string]interface{}{
				"splitter_id":   splitterID,
				"assigned_port": port,
			}).Error; err != nil {
				return err
			}

			// Re-point an existing drop line at the new splitter.
			if err := tx.Model(&models.FiberDropLine{}).
				Where("to_customer_id = ?", customerID).
				Updates(map[string]interface{}{
					"from_splitter_id": splitterID,
					"status":           models.DropLineActive,
				}).Error; err != nil {
				return err
			}

			desc := fmt.Sprintf("Assigned customer %s (ID: %d) to splitter %d, port %d", customer.Name, customer.ID, splitterID, port)
			return Audit.Record(tx, models.ActionCustomerAssign, desc, actorID)
		})
	})
}

// MoveSplitter reparents a splitter to another FDH. A splitter with live
// customers can never be moved; that is a hard precondition, not a
// retryable condition.
func (s *CapacityService) MoveSplitter(splitterID, newFdhID uint, actorID *uint) error {
	return withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			splitter, err := s.checkMovable(tx, splitterID)
			if err != nil {
				return err
			}

			var fdh models.FDH
			if err := tx.First(&fdh, newFdhID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("fdh %d: %w", newFdhID, ErrNotFound)
				}
				return err
			}

			oldFdhID := splitter.FdhID
			if err := tx.Model(splitter).Update("fdh_id", newFdhID).Error; err != nil {
				return err
			}

			desc := fmt.Sprintf("Moved splitter %d from FDH %d to FDH %d", splitterID, oldFdhID, newFdhID)
			return Audit.Record(tx, models.ActionSplitterMoved, desc, actorID)
		})
	})
}

// checkMovable loads the splitter and enforces the reparenting rule. Shared
// with the hierarchy service's splitter update path.
func (s *CapacityService) checkMovable(tx *gorm.DB, splitterID uint) (*models.Splitter, error) {
	var splitter models.Splitter
	if err := tx.First(&splitter, splitterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("splitter %d: %w", splitterID, ErrNotFound)
		}
		return nil, err
	}
	if splitter.UsedPorts > 0 {
		return nil, businessRule("cannot move a splitter that has active customers; reassign customers first")
	}
	return &splitter, nil
}

// ReleasePort frees the customer's splitter port: decrements used_ports,
// clears the customer linkage and disconnects the drop line.
func (s *CapacityService) ReleasePort(customerID uint, actorID *uint) error {
	return withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			return s.releasePortTx(tx, customerID, actorID)
		})
	})
}

// releasePortTx is the transaction body, reused by the customer service
// when a deactivation implies a release.
func (s *CapacityService) releasePortTx(tx *gorm.DB, customerID uint, actorID *uint) error {
	var customer models.Customer
	if err := tx.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
		}
		return err
	}
	if customer.SplitterID == nil {
		return fmt.Errorf("customer %d has no splitter assignment: %w", customerID, ErrNotAssigned)
	}
	splitterID := *customer.SplitterID

	// Guarded decrement mirrors the assignment increment; used_ports can
	// never go negative even if state drifted.
	res := tx.Model(&models.Splitter{}).
		Where("id = ? AND used_ports > 0", splitterID).
		UpdateColumn("used_ports", gorm.Expr("used_ports - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		log.Printf("[Capacity] splitter %d used_ports already 0 while releasing customer %d", splitterID, customerID)
	}

	if err := tx.Model(&customer).Updates(map[string]interface{}{
		"splitter_id":   nil,
		"assigned_port": nil,
	}).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.FiberDropLine{}).
		Where("to_customer_id = ?", customerID).
		Update("status", models.DropLineDisconnected).Error; err != nil {
		return err
	}

	desc := fmt.Sprintf("Released splitter %d port for customer %s (ID: %d)", splitterID, customer.Name, customer.ID)
	return Audit.Record(tx, models.ActionPortReleased, desc, actorID)
}
