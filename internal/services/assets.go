// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

// AssetService owns inventory hardware: create, list, partial update,
// assignment to customers, fault reporting and retirement. Retired is
// terminal; a retired asset only supports reads.
type AssetService struct {
	db *gorm.DB
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{db: db}
}

func (s *AssetService) CreateAsset(asset *models.Asset, actorID *uint) error {
	if asset.Status == "" {
		asset.Status = models.AssetAvailable
	}
	return withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var count int64
			tx.Model(&models.Asset{}).Where("serial_number = ?", asset.SerialNumber).Count(&count)
			if count > 0 {
				return fmt.Errorf("serial number %q: %w", asset.SerialNumber, ErrConflict)
			}
			if err := tx.Create(asset).Error; err != nil {
				return err
			}
			desc := fmt.Sprintf("Created %s asset %s (ID: %d)", asset.Type, asset.SerialNumber, asset.ID)
			return Audit.Record(tx, models.ActionAssetCreated, desc, actorID)
		})
	})
}

func (s *AssetService) GetAsset(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("asset %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &asset, nil
}

// AssetFilter narrows ListAssets. Location matches case-insensitively on a
// substring; zero values mean "no filter".
type AssetFilter struct {
	Type     models.AssetType
	Status   models.AssetStatus
	Location string
	Offset   int
	Limit    int
}

func (s *AssetService) ListAssets(filter AssetFilter) ([]models.Asset, int64, error) {
	query := s.db.Model(&models.Asset{})

	if filter.Type != "" {
		query = query.Where("asset_type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var assets []models.Asset
	err := query.Order("id").Offset(filter.Offset).Limit(limit).Find(&assets).Error
	return assets, total, err
}

// AssetUpdate carries a partial update; nil fields are left untouched.
// Status transitions to Assigned are rejected here: assignment happens only
// through AssignToCustomer.
type AssetUpdate struct {
	Model    *string             `json:"model"`
	Location *string             `json:"location"`
	Status   *models.AssetStatus `json:"status"`
}

func (s *AssetService) UpdateAsset(id uint, upd AssetUpdate, actorID *uint) (*models.Asset, error) {
	var asset models.Asset
	err := withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&asset, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("asset %d: %w", id, ErrNotFound)
				}
				return err
			}
			if asset.Status == models.AssetRetired {
				return businessRule("asset %s is retired and can no longer be modified", asset.SerialNumber)
			}

			fields := map[string]interface{}{}
			changes := []FieldChange{}
			if upd.Model != nil {
				fields["model"] = *upd.Model
				changes = append(changes, FieldChange{"model", *upd.Model})
			}
			if upd.Location != nil {
				fields["location"] = *upd.Location
				changes = append(changes, FieldChange{"location", *upd.Location})
			}
			if upd.Status != nil && *upd.Status != asset.Status {
				if err := validateAssetTransition(asset.Status, *upd.Status); err != nil {
					return err
				}
				fields["status"] = *upd.Status
				changes = append(changes, FieldChange{"status", *upd.Status})
			}
			if len(fields) == 0 {
				return nil
			}

			if err := tx.Model(&asset).Updates(fields).Error; err != nil {
				return err
			}
			if err := tx.First(&asset, id).Error; err != nil {
				return err
			}
			subject := fmt.Sprintf("asset %s", asset.SerialNumber)
			return Audit.RecordUpdate(tx, models.ActionAssetUpdate, subject, changes, actorID)
		})
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// validateAssetTransition enforces the asset state machine. Assigned is
// reachable only through AssignToCustomer; Retired only through
// RetireAsset.
func validateAssetTransition(from, to models.AssetStatus) error {
	switch to {
	case models.AssetAssigned:
		return businessRule("asset status cannot be set to Assigned directly; create an assignment instead")
	case models.AssetRetired:
		return businessRule("asset status cannot be set to Retired directly; use the retire operation")
	case models.AssetAvailable, models.AssetFaulty:
		return nil
	default:
		return businessRule("unknown asset status %q", to)
	}
}

// RetireAsset is the only defined "delete": a one-way flip to Retired.
func (s *AssetService) RetireAsset(id uint, actorID *uint) (*models.Asset, error) {
	var asset models.Asset
	err := withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&asset, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("asset %d: %w", id, ErrNotFound)
				}
				return err
			}
			if asset.Status == models.AssetRetired {
				return businessRule("asset %s is already retired", asset.SerialNumber)
			}
			if err := tx.Model(&asset).Update("status", models.AssetRetired).Error; err != nil {
				return err
			}
			desc := fmt.Sprintf("Retired asset %s (ID: %d)", asset.SerialNumber, asset.ID)
			return Audit.Record(tx, models.ActionAssetRetired, desc, actorID)
		})
	})
	if err != nil {
		return nil, err
	}
	asset.Status = models.AssetRetired
	return &asset, nil
}

// AssignToCustomer creates an assignment row and flips the asset to
// Assigned. An asset that is not Available cannot be handed out, which
// keeps one physical unit from being held by two customers.
func (s *AssetService) AssignToCustomer(assetID, customerID uint, actorID *uint) (*models.AssetAssignment, error) {
	var assignment models.AssetAssignment
	err := withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var asset models.Asset
			if err := tx.First(&asset, assetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("asset %d: %w", assetID, ErrNotFound)
				}
				return err
			}
			if asset.Status != models.AssetAvailable {
				return fmt.Errorf("asset %s is %s, not Available: %w", asset.SerialNumber, asset.Status, ErrConflict)
			}

			var customer models.Customer
			if err := tx.First(&customer, customerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
				}
				return err
			}

			assignment = models.AssetAssignment{
				CustomerID: customerID,
				AssetID:    assetID,
				AssignedOn: time.Now(),
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
			if err := tx.Model(&asset).Update("status", models.AssetAssigned).Error; err != nil {
				return err
			}

			desc := fmt.Sprintf("Assigned asset %s (ID: %d) to customer %s (ID: %d)", asset.SerialNumber, asset.ID, customer.Name, customer.ID)
			return Audit.Record(tx, models.ActionAssetAssigned, desc, actorID)
		})
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ReportFault marks an asset Faulty, e.g. after a failed field visit.
func (s *AssetService) ReportFault(id uint, actorID *uint) (*models.Asset, error) {
	var asset models.Asset
	err := withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&asset, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("asset %d: %w", id, ErrNotFound)
				}
				return err
			}
			if asset.Status == models.AssetRetired {
				return businessRule("asset %s is retired and can no longer be modified", asset.SerialNumber)
			}
			if err := tx.Model(&asset).Update("status", models.AssetFaulty).Error; err != nil {
				return err
			}
			desc := fmt.Sprintf("Reported fault on asset %s (ID: %d)", asset.SerialNumber, asset.ID)
			return Audit.Record(tx, models.ActionAssetFault, desc, actorID)
		})
	})
	if err != nil {
		return nil, err
	}
	asset.Status = models.AssetFaulty
	return &asset, nil
}
