package services

import (
	"errors"
	"testing"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

func TestCreateHierarchy(t *testing.T) {
	t.Run("rejects duplicate names", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewHierarchyService(db, NewCapacityService(db))

		if err := svc.CreateHeadend(&models.Headend{Name: "Main"}, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := svc.CreateHeadend(&models.Headend{Name: "Main"}, nil); !errors.Is(err, ErrConflict) {
			t.Fatalf("err = %v, want ErrConflict", err)
		}
	})

	t.Run("fdh requires existing headend", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewHierarchyService(db, NewCapacityService(db))

		err := svc.CreateFDH(&models.FDH{Name: "FDH-01", HeadendID: 42}, nil)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("splitter requires positive capacity and zero used ports", func(t *testing.T) {
		db := newTestDB(t)
		_, fdh, _ := newTestNetwork(t, db, 4)
		svc := NewHierarchyService(db, NewCapacityService(db))

		if err := svc.CreateSplitter(&models.Splitter{PortCapacity: 0, FdhID: fdh.ID}, nil); !IsBusinessRule(err) {
			t.Fatalf("err = %v, want business rule violation", err)
		}

		splitter := &models.Splitter{Model: "1:16", PortCapacity: 16, UsedPorts: 7, FdhID: fdh.ID}
		if err := svc.CreateSplitter(splitter, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
		if splitter.UsedPorts != 0 {
			t.Fatalf("used_ports = %d, want 0 at creation", splitter.UsedPorts)
		}
	})
}

func TestUpdateFDH(t *testing.T) {
	t.Run("applies only set fields", func(t *testing.T) {
		db := newTestDB(t)
		_, fdh, _ := newTestNetwork(t, db, 4)
		svc := NewHierarchyService(db, NewCapacityService(db))

		region := "South"
		got, err := svc.UpdateFDH(fdh.ID, FDHUpdate{Region: &region}, nil)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Region != "South" {
			t.Fatalf("region = %s, want South", got.Region)
		}
		if got.Name != fdh.Name {
			t.Fatalf("name changed to %s", got.Name)
		}
	})

	t.Run("empty update writes no audit entry", func(t *testing.T) {
		db := newTestDB(t)
		_, fdh, _ := newTestNetwork(t, db, 4)
		svc := NewHierarchyService(db, NewCapacityService(db))

		if _, err := svc.UpdateFDH(fdh.ID, FDHUpdate{}, nil); err != nil {
			t.Fatalf("update: %v", err)
		}
		if n := auditCount(t, db, models.ActionFDHUpdate); n != 0 {
			t.Fatalf("audit entries = %d, want 0", n)
		}
	})

	t.Run("rename collision rolls back without audit", func(t *testing.T) {
		db := newTestDB(t)
		headend, fdh, _ := newTestNetwork(t, db, 4)
		svc := NewHierarchyService(db, NewCapacityService(db))

		other := &models.FDH{Name: "FDH-taken", HeadendID: headend.ID}
		if err := db.Create(other).Error; err != nil {
			t.Fatalf("create: %v", err)
		}

		name := "FDH-taken"
		if _, err := svc.UpdateFDH(fdh.ID, FDHUpdate{Name: &name}, nil); !errors.Is(err, ErrConflict) {
			t.Fatalf("err = %v, want ErrConflict", err)
		}
		if n := auditCount(t, db, models.ActionFDHUpdate); n != 0 {
			t.Fatalf("audit entries = %d, want 0 after rollback", n)
		}
	})
}

func TestUpdateSplitter(t *testing.T) {
	t.Run("moves empty splitter between hubs", func(t *testing.T) {
		db := newTestDB(t)
		headend, _, splitter := newTestNetwork(t, db, 4)
		other := &models.FDH{Name: "FDH-other", HeadendID: headend.ID}
		if err := db.Create(other).Error; err != nil {
			t.Fatalf("create: %v", err)
		}
		svc := NewHierarchyService(db, NewCapacityService(db))

		got, err := svc.UpdateSplitter(splitter.ID, SplitterUpdate{FdhID: &other.ID}, nil)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.FdhID != other.ID {
			t.Fatalf("fdh_id = %d, want %d", got.FdhID, other.ID)
		}
	})

	t.Run("rejects hub change while ports used", func(t *testing.T) {
		db := newTestDB(t)
		headend, _, splitter := newTestNetwork(t, db, 4)
		other := &models.FDH{Name: "FDH-other", HeadendID: headend.ID}
		if err := db.Create(other).Error; err != nil {
			t.Fatalf("create: %v", err)
		}
		capacity := NewCapacityService(db)
		svc := NewHierarchyService(db, capacity)

		customer := newTestCustomer(t, db, "Alice")
		if err := capacity.AssignCustomerToSplitter(customer.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("assign: %v", err)
		}

		if _, err := svc.UpdateSplitter(splitter.ID, SplitterUpdate{FdhID: &other.ID}, nil); !IsBusinessRule(err) {
			t.Fatalf("err = %v, want business rule violation", err)
		}

		// Location-only update stays allowed.
		loc := "Slot 9"
		if _, err := svc.UpdateSplitter(splitter.ID, SplitterUpdate{Location: &loc}, nil); err != nil {
			t.Fatalf("location update: %v", err)
		}
	})
}

func TestAuditActorAttribution(t *testing.T) {
	db := newTestDB(t)
	svc := NewHierarchyService(db, NewCapacityService(db))

	actor := uint(7)
	if err := svc.CreateHeadend(&models.Headend{Name: "Main"}, &actor); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.CreateHeadend(&models.Headend{Name: "Backup"}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	var entries []models.AuditEntry
	if err := db.Order("id").Find(&entries).Error; err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].UserID == nil || *entries[0].UserID != actor {
		t.Fatalf("first entry user = %v, want %d", entries[0].UserID, actor)
	}
	if entries[1].UserID != nil {
		t.Fatalf("second entry user = %v, want nil (system)", entries[1].UserID)
	}
}
