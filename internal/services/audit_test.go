package services

import (
	"testing"
	"time"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

func TestAuditList(t *testing.T) {
	db := newTestDB(t)
	actor := uint(3)

	entries := []struct {
		action string
		user   *uint
	}{
		{models.ActionCustomerCreated, &actor},
		{models.ActionCustomerAssign, &actor},
		{models.ActionAssetFault, nil},
	}
	for _, e := range entries {
		if err := Audit.Record(db, e.action, "test entry", e.user); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		got, total, err := Audit.List(db, AuditFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 3 {
			t.Fatalf("total = %d, want 3", total)
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].ID < got[i].ID {
				t.Fatalf("entries not newest-first at %d", i)
			}
		}
	})

	t.Run("filter by action type", func(t *testing.T) {
		got, total, err := Audit.List(db, AuditFilter{ActionType: models.ActionAssetFault})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 1 || len(got) != 1 {
			t.Fatalf("total = %d len = %d, want 1", total, len(got))
		}
		if got[0].UserID != nil {
			t.Fatalf("user = %v, want nil", got[0].UserID)
		}
	})

	t.Run("filter by user", func(t *testing.T) {
		_, total, err := Audit.List(db, AuditFilter{UserID: &actor})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 2 {
			t.Fatalf("total = %d, want 2", total)
		}
	})

	t.Run("time window excludes future", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		_, total, err := Audit.List(db, AuditFilter{From: future})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 0 {
			t.Fatalf("total = %d, want 0", total)
		}
	})
}

func TestChangeSummary(t *testing.T) {
	changes := []FieldChange{
		{"status", models.AssetFaulty},
		{"location", "Warehouse B"},
	}
	got := changeSummary(changes)
	want := "status: Faulty, location: Warehouse B"
	if got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}
