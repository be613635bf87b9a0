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

// HierarchyService owns create/update for the infrastructure levels:
// headend, FDH and splitter. Capacity-relevant changes are delegated to the
// capacity service; every mutation commits together with its audit entry.
type HierarchyService struct {
	db       *gorm.DB
	capacity *CapacityService
}

func NewHierarchyService(db *gorm.DB, capacity *CapacityService) *HierarchyService {
	return &HierarchyService{db: db, capacity: capacity}
}

// ---- Headends ----

func (s *HierarchyService) CreateHeadend(headend *models.Headend, actorID *uint) error {
	return withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var count int64
			tx.Model(&models.Headend{}).Where("name = ?", headend.Name).Count(&count)
			if count > 0 {
				return fmt.Errorf("headend name %q: %w", headend.Name, ErrConflict)
			}
			if err := tx.Create(headend).Error; err != nil {
				return err
			}
			desc := fmt.Sprintf("Created headend %s (ID: %d)", headend.Name, headend.ID)
			return Audit.Record(tx, models.ActionHeadendCreated, desc, actorID)
		})
	})
}

func (s *HierarchyService) GetHeadend(id uint) (*models.Headend, error) {
	var headend models.Headend
	if err := s.db.First(&headend, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("headend %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &headend, nil
}

func (s *HierarchyService) ListHeadends() ([]models.Headend, error) {
	var headends []models.Headend
	err := s.db.Order("id").Find(&headends).Error
	return headends, err
}

// ---- FDHs ----

func (s *HierarchyService) CreateFDH(fdh *models.FDH, actorID *uint) error {
	return withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&models.Headend{}, fdh.HeadendID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("headend %d: %w", fdh.HeadendID, ErrNotFound)
				}
				return err
			}
			var count int64
			tx.Model(&models.FDH{}).Where("name = ?", fdh.Name).Count(&count)
			if count > 0 {
				return fmt.Errorf("fdh name %q: %w", fdh.Name, ErrConflict)
			}
			if err := tx.Create(fdh).Error; err != nil {
				return err
			}
			desc := fmt.Sprintf("Created FDH %s (ID: %d) under headend %d", fdh.Name, fdh.ID, fdh.HeadendID)
			return Audit.Record(tx, models.ActionFDHCreated, desc, actorID)
		})
	})
}

func (s *HierarchyService) GetFDH(id uint) (*models.FDH, error) {
	var fdh models.FDH
	if err := s.db.First(&fdh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fdh %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &fdh, nil
}

func (s *HierarchyService) ListFDHs() ([]models.FDH, error) {
	var fdhs []models.FDH
	err := s.db.Order("id").Find(&fdhs).Error
	return fdhs, err
}

// FDHUpdate carries a partial update. Nil fields are left untouched
// (exclude-unset semantics).
type FDHUpdate struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Region   *string `json:"region"`
	MaxPorts *int    `json:"max_ports"`
}

func (s *HierarchyService) UpdateFDH(id uint, upd FDHUpdate, actorID *uint) (*models.FDH, error) {
	var fdh models.FDH
	err := withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&fdh, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("fdh %d: %w", id, ErrNotFound)
				}
				return err
			}

			fields := map[string]interface{}{}
			changes := []FieldChange{}
			if upd.Name != nil && *upd.Name != fdh.Name {
				var count int64
				tx.Model(&models.FDH{}).Where("name = ? AND id <> ?", *upd.Name, id).Count(&count)
				if count > 0 {
					return fmt.Errorf("fdh name %q: %w", *upd.Name, ErrConflict)
				}
				fields["name"] = *upd.Name
				changes = append(changes, FieldChange{"name", *upd.Name})
			}
			if upd.Location != nil {
				fields["location"] = *upd.Location
				changes = append(changes, FieldChange{"location", *upd.Location})
			}
			if upd.Region != nil {
				fields["region"] = *upd.Region
				changes = append(changes, FieldChange{"region", *upd.Region})
			}
			if upd.MaxPorts != nil {
				fields["max_ports"] = *upd.MaxPorts
				changes = append(changes, FieldChange{"max_ports", *upd.MaxPorts})
			}
			if len(fields) == 0 {
				return nil
			}

			if err := tx.Model(&fdh).Updates(fields).Error; err != nil {
				return err
			}
			if err := tx.First(&fdh, id).Error; err != nil {
				return err
			}
			subject := fmt.Sprintf("FDH %s", fdh.Name)
			return Audit.RecordUpdate(tx, models.ActionFDHUpdate, subject, changes, actorID)
		})
	})
	if err != nil {
		return nil, err
	}
	return &fdh, nil
}

// ---- Splitters ----

func (s *HierarchyService) CreateSplitter(splitter *models.Splitter, actorID *uint) error {
	if splitter.PortCapacity <= 0 {
		return businessRule("splitter port capacity must be positive")
	}
	return withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&models.FDH{}, splitter.FdhID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("fdh %d: %w", splitter.FdhID, ErrNotFound)
				}
				return err
			}
			splitter.UsedPorts = 0
			if err := tx.Create(splitter).Error; err != nil {
				return err
			}
			desc := fmt.Sprintf("Created splitter %s (ID: %d) in FDH %d, capacity %d", splitter.Model, splitter.ID, splitter.FdhID, splitter.PortCapacity)
			return Audit.Record(tx, models.ActionSplitterCreated, desc, actorID)
		})
	})
}

func (s *HierarchyService) GetSplitter(id uint) (*models.Splitter, error) {
	var splitter models.Splitter
	if err := s.db.First(&splitter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("splitter %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &splitter, nil
}

func (s *HierarchyService) ListSplitters() ([]models.Splitter, error) {
	var splitters []models.Splitter
	err := s.db.Order("id").Find(&splitters).Error
	return splitters, err
}

// SplitterUpdate carries the only mutable splitter fields. Model and
// port_capacity are immutable after creation.
type SplitterUpdate struct {
	Location *string `json:"location"`
	FdhID    *uint   `json:"fdh_id"`
}

// UpdateSplitter applies a partial update. A hub reassignment goes through
// the capacity service's movability check inside the same transaction.
func (s *HierarchyService) UpdateSplitter(id uint, upd SplitterUpdate, actorID *uint) (*models.Splitter, error) {
	var splitter models.Splitter
	err := withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&splitter, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("splitter %d: %w", id, ErrNotFound)
				}
				return err
			}

			fields := map[string]interface{}{}
			changes := []FieldChange{}
			if upd.FdhID != nil && *upd.FdhID != splitter.FdhID {
				if _, err := s.capacity.checkMovable(tx, id); err != nil {
					return err
				}
				if err := tx.First(&models.FDH{}, *upd.FdhID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("fdh %d: %w", *upd.FdhID, ErrNotFound)
					}
					return err
				}
				fields["fdh_id"] = *upd.FdhID
				changes = append(changes, FieldChange{"fdh_id", *upd.FdhID})
			}
			if upd.Location != nil {
				fields["location"] = *upd.Location
				changes = append(changes, FieldChange{"location", *upd.Location})
			}
			if len(fields) == 0 {
				return nil
			}

			if err := tx.Model(&splitter).Updates(fields).Error; err != nil {
				return err
			}
			if err := tx.First(&splitter, id).Error; err != nil {
				return err
			}
			subject := fmt.Sprintf("Splitter %d", splitter.ID)
			return Audit.RecordUpdate(tx, models.ActionSplitterUpdate, subject, changes, actorID)
		})
	})
	if err != nil {
		return nil, err
	}
	return &splitter, nil
}
