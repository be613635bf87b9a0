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

// WorkforceService manages field technicians and their deployment tasks.
type WorkforceService struct {
	db *gorm.DB
}

func NewWorkforceService(db *gorm.DB) *WorkforceService {
	return &WorkforceService{db: db}
}

func (s *WorkforceService) CreateTechnician(tech *models.Technician) error {
	return s.db.Create(tech).Error
}

func (s *WorkforceService) ListTechnicians() ([]models.Technician, error) {
	var techs []models.Technician
	err := s.db.Order("id").Find(&techs).Error
	return techs, err
}

func (s *WorkforceService) GetTechnician(id uint) (*models.Technician, error) {
	var tech models.Technician
	if err := s.db.First(&tech, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("technician %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &tech, nil
}

func (s *WorkforceService) CreateTask(task *models.DeploymentTask, actorID *uint) error {
	if task.Status == "" {
		task.Status = models.TaskScheduled
	}
	return withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var customer models.Customer
			if err := tx.First(&customer, task.CustomerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("customer %d: %w", task.CustomerID, ErrNotFound)
				}
				return err
			}
			if task.TechnicianID != nil {
				var count int64
				tx.Model(&models.Technician{}).Where("id = ?", *task.TechnicianID).Count(&count)
				if count == 0 {
					return fmt.Errorf("technician %d: %w", *task.TechnicianID, ErrNotFound)
				}
			}
			if err := tx.Create(task).Error; err != nil {
				return err
			}
			desc := fmt.Sprintf("Created task %d for customer %s (ID: %d)", task.ID, customer.Name, customer.ID)
			return Audit.Record(tx, models.ActionTaskCreated, desc, actorID)
		})
	})
}

type TaskFilter struct {
	Status       models.TaskStatus
	TechnicianID *uint
	CustomerID   *uint
}

func (s *WorkforceService) ListTasks(filter TaskFilter) ([]models.DeploymentTask, error) {
	query := s.db.Model(&models.DeploymentTask{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TechnicianID != nil {
		query = query.Where("technician_id = ?", *filter.TechnicianID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	var tasks []models.DeploymentTask
	err := query.Order("scheduled_date").Find(&tasks).Error
	return tasks, err
}

// TaskUpdate carries a partial update; nil fields are untouched.
type TaskUpdate struct {
	Status       *models.TaskStatus `json:"status"`
	Notes        *string            `json:"notes"`
	TechnicianID *uint              `json:"technician_id"`
}

// UpdateTask applies changes and enforces the task lifecycle: Completed and
// Failed are terminal.
func (s *WorkforceService) UpdateTask(id uint, upd TaskUpdate, actorID *uint) (*models.DeploymentTask, error) {
	var task models.DeploymentTask
	err := withRetry(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&task, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("task %d: %w", id, ErrNotFound)
				}
				return err
			}
			if task.Status == models.TaskCompleted || task.Status == models.TaskFailed {
				return businessRule("task %d is %s and can no longer be modified", task.ID, task.Status)
			}

			fields := map[string]interface{}{}
			changes := []FieldChange{}
			if upd.Status != nil && *upd.Status != task.Status {
				fields["status"] = *upd.Status
				changes = append(changes, FieldChange{"status", *upd.Status})
			}
			if upd.Notes != nil {
				fields["notes"] = *upd.Notes
				changes = append(changes, FieldChange{"notes", *upd.Notes})
			}
			if upd.TechnicianID != nil {
				var count int64
				tx.Model(&models.Technician{}).Where("id = ?", *upd.TechnicianID).Count(&count)
				if count == 0 {
					return fmt.Errorf("technician %d: %w", *upd.TechnicianID, ErrNotFound)
				}
				fields["technician_id"] = *upd.TechnicianID
				changes = append(changes, FieldChange{"technician_id", *upd.TechnicianID})
			}
			if len(fields) == 0 {
				return nil
			}

			if err := tx.Model(&task).Updates(fields).Error; err != nil {
				return err
			}
			if err := tx.First(&task, id).Error; err != nil {
				return err
			}
			subject := fmt.Sprintf("task %d", task.ID)
			return Audit.RecordUpdate(tx, models.ActionTaskUpdate, subject, changes, actorID)
		})
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}
