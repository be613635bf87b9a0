package services

import (
	"errors"
	"testing"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

func TestCustomerLifecycle(t *testing.T) {
	t.Run("create defaults to Pending and strips linkage", func(t *testing.T) {
		db := newTestDB(t)
		capacity := NewCapacityService(db)
		svc := NewCustomerService(db, capacity)

		splitterID := uint(3)
		port := 2
		customer := &models.Customer{Name: "Alice", SplitterID: &splitterID, AssignedPort: &port}
		if err := svc.CreateCustomer(customer, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
		if customer.Status != models.CustomerPending {
			t.Fatalf("status = %s, want Pending", customer.Status)
		}
		if customer.SplitterID != nil || customer.AssignedPort != nil {
			t.Fatal("linkage must not be settable at creation")
		}
	})

	t.Run("get missing returns not found", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewCustomerService(db, NewCapacityService(db))

		if _, err := svc.GetCustomer(99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("list filters by status", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewCustomerService(db, NewCapacityService(db))

		for _, c := range []models.Customer{
			{Name: "A", Status: models.CustomerActive},
			{Name: "B", Status: models.CustomerActive},
			{Name: "C", Status: models.CustomerPending},
		} {
			cc := c
			if err := svc.CreateCustomer(&cc, nil); err != nil {
				t.Fatalf("create: %v", err)
			}
		}

		active, total, err := svc.ListCustomers(CustomerFilter{Status: models.CustomerActive})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 2 || len(active) != 2 {
			t.Fatalf("total = %d len = %d, want 2", total, len(active))
		}
	})
}

func TestUpdateCustomer(t *testing.T) {
	t.Run("partial update leaves other fields", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewCustomerService(db, NewCapacityService(db))
		customer := newTestCustomer(t, db, "Alice")

		plan := "1 GIG Fiber"
		got, err := svc.UpdateCustomer(customer.ID, CustomerUpdate{Plan: &plan}, nil)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Plan != plan {
			t.Fatalf("plan = %s, want %s", got.Plan, plan)
		}
		if got.Name != "Alice" {
			t.Fatalf("name changed to %s", got.Name)
		}
	})

	t.Run("deactivation releases held port", func(t *testing.T) {
		db := newTestDB(t)
		capacity := NewCapacityService(db)
		svc := NewCustomerService(db, capacity)
		_, _, splitter := newTestNetwork(t, db, 4)
		customer := newTestCustomer(t, db, "Alice")

		if err := capacity.AssignCustomerToSplitter(customer.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("assign: %v", err)
		}

		status := models.CustomerInactive
		got, err := svc.UpdateCustomer(customer.ID, CustomerUpdate{Status: &status}, nil)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Status != models.CustomerInactive {
			t.Fatalf("status = %s, want Inactive", got.Status)
		}
		if got.SplitterID != nil || got.AssignedPort != nil {
			t.Fatalf("port not released: splitter_id=%v port=%v", got.SplitterID, got.AssignedPort)
		}

		var gotSplitter models.Splitter
		db.First(&gotSplitter, splitter.ID)
		if gotSplitter.UsedPorts != 0 {
			t.Fatalf("used_ports = %d, want 0", gotSplitter.UsedPorts)
		}
		if n := auditCount(t, db, models.ActionPortReleased); n != 1 {
			t.Fatalf("release audit entries = %d, want 1", n)
		}
	})

	t.Run("deactivation without assignment is plain update", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewCustomerService(db, NewCapacityService(db))
		customer := newTestCustomer(t, db, "Alice")

		status := models.CustomerInactive
		if _, err := svc.UpdateCustomer(customer.ID, CustomerUpdate{Status: &status}, nil); err != nil {
			t.Fatalf("update: %v", err)
		}
		if n := auditCount(t, db, models.ActionPortReleased); n != 0 {
			t.Fatalf("release audit entries = %d, want 0", n)
		}
	})
}
