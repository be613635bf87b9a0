package services

import (
	"errors"
	"testing"
	"time"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

func TestDeploymentTasks(t *testing.T) {
	t.Run("create validates customer and technician", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewWorkforceService(db)
		customer := newTestCustomer(t, db, "Alice")

		task := &models.DeploymentTask{CustomerID: 99, ScheduledDate: time.Now()}
		if err := svc.CreateTask(task, nil); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}

		missing := uint(42)
		task = &models.DeploymentTask{CustomerID: customer.ID, TechnicianID: &missing}
		if err := svc.CreateTask(task, nil); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}

		task = &models.DeploymentTask{CustomerID: customer.ID, ScheduledDate: time.Now()}
		if err := svc.CreateTask(task, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
		if task.Status != models.TaskScheduled {
			t.Fatalf("status = %s, want Scheduled", task.Status)
		}
	})

	t.Run("completed task is terminal", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewWorkforceService(db)
		customer := newTestCustomer(t, db, "Alice")

		task := &models.DeploymentTask{CustomerID: customer.ID}
		if err := svc.CreateTask(task, nil); err != nil {
			t.Fatalf("create: %v", err)
		}

		done := models.TaskCompleted
		if _, err := svc.UpdateTask(task.ID, TaskUpdate{Status: &done}, nil); err != nil {
			t.Fatalf("complete: %v", err)
		}

		notes := "follow-up"
		if _, err := svc.UpdateTask(task.ID, TaskUpdate{Notes: &notes}, nil); !IsBusinessRule(err) {
			t.Fatalf("err = %v, want business rule violation", err)
		}
	})

	t.Run("list filters by status and technician", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewWorkforceService(db)
		customer := newTestCustomer(t, db, "Alice")

		tech := &models.Technician{Name: "Bob The Builder"}
		if err := svc.CreateTechnician(tech); err != nil {
			t.Fatalf("create tech: %v", err)
		}

		assigned := &models.DeploymentTask{CustomerID: customer.ID, TechnicianID: &tech.ID}
		if err := svc.CreateTask(assigned, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
		unassigned := &models.DeploymentTask{CustomerID: customer.ID}
		if err := svc.CreateTask(unassigned, nil); err != nil {
			t.Fatalf("create: %v", err)
		}

		byTech, err := svc.ListTasks(TaskFilter{TechnicianID: &tech.ID})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(byTech) != 1 || byTech[0].ID != assigned.ID {
			t.Fatalf("byTech = %+v", byTech)
		}

		scheduled, err := svc.ListTasks(TaskFilter{Status: models.TaskScheduled})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(scheduled) != 2 {
			t.Fatalf("scheduled = %d, want 2", len(scheduled))
		}
	})
}
