package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

func TestAssignCustomerToSplitter(t *testing.T) {
	t.Run("assigns and increments used ports", func(t *testing.T) {
		db := newTestDB(t)
		_, _, splitter := newTestNetwork(t, db, 4)
		customer := newTestCustomer(t, db, "Alice")
		svc := NewCapacityService(db)

		if err := svc.AssignCustomerToSplitter(customer.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("assign: %v", err)
		}

		var got models.Customer
		db.First(&got, customer.ID)
		if got.SplitterID == nil || *got.SplitterID != splitter.ID {
			t.Fatalf("customer splitter_id = %v, want %d", got.SplitterID, splitter.ID)
		}
		if got.AssignedPort == nil || *got.AssignedPort != 1 {
			t.Fatalf("customer assigned_port = %v, want 1", got.AssignedPort)
		}

		var gotSplitter models.Splitter
		db.First(&gotSplitter, splitter.ID)
		if gotSplitter.UsedPorts != 1 {
			t.Fatalf("used_ports = %d, want 1", gotSplitter.UsedPorts)
		}

		if n := auditCount(t, db, models.ActionCustomerAssign); n != 1 {
			t.Fatalf("audit entries = %d, want 1", n)
		}
	})

	t.Run("rejects occupied port", func(t *testing.T) {
		db := newTestDB(t)
		_, _, splitter := newTestNetwork(t, db, 4)
		first := newTestCustomer(t, db, "Alice")
		second := newTestCustomer(t, db, "Bob")
		svc := NewCapacityService(db)

		if err := svc.AssignCustomerToSplitter(first.ID, splitter.ID, 2, nil); err != nil {
			t.Fatalf("assign first: %v", err)
		}
		err := svc.AssignCustomerToSplitter(second.ID, splitter.ID, 2, nil)
		if !errors.Is(err, ErrPortConflict) {
			t.Fatalf("err = %v, want ErrPortConflict", err)
		}
	})

	t.Run("rejects out of range port", func(t *testing.T) {
		db := newTestDB(t)
		_, _, splitter := newTestNetwork(t, db, 4)
		customer := newTestCustomer(t, db, "Alice")
		svc := NewCapacityService(db)

		if err := svc.AssignCustomerToSplitter(customer.ID, splitter.ID, 5, nil); !IsBusinessRule(err) {
			t.Fatalf("err = %v, want business rule violation", err)
		}
		if err := svc.AssignCustomerToSplitter(customer.ID, splitter.ID, 0, nil); !IsBusinessRule(err) {
			t.Fatalf("err = %v, want business rule violation", err)
		}
	})

	t.Run("rejects double assignment", func(t *testing.T) {
		db := newTestDB(t)
		_, _, splitter := newTestNetwork(t, db, 4)
		customer := newTestCustomer(t, db, "Alice")
		svc := NewCapacityService(db)

		if err := svc.AssignCustomerToSplitter(customer.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("assign: %v", err)
		}
		if err := svc.AssignCustomerToSplitter(customer.ID, splitter.ID, 3, nil); !IsBusinessRule(err) {
			t.Fatalf("err = %v, want business rule violation", err)
		}
	})

	t.Run("rejects assignment once splitter is full", func(t *testing.T) {
		db := newTestDB(t)
		_, _, splitter := newTestNetwork(t, db, 2)
		svc := NewCapacityService(db)

		for i, port := range []int{1, 2} {
			customer := newTestCustomer(t, db, string(rune('A'+i)))
			if err := svc.AssignCustomerToSplitter(customer.ID, splitter.ID, port, nil); err != nil {
				t.Fatalf("assign port %d: %v", port, err)
			}
		}

		// A full splitter means capacity exhaustion, regardless of which
		// port the request names.
		extra := newTestCustomer(t, db, "Overflow")
		if err := svc.AssignCustomerToSplitter(extra.ID, splitter.ID, 1, nil); !errors.Is(err, ErrCapacityExceeded) {
			t.Fatalf("err = %v, want ErrCapacityExceeded", err)
		}

		var got models.Splitter
		db.First(&got, splitter.ID)
		if got.UsedPorts != 2 {
			t.Fatalf("used_ports = %d, want 2", got.UsedPorts)
		}

		// Freeing a port clears the exhaustion and the freed port is
		// assignable again.
		var first models.Customer
		db.Where("assigned_port = ?", 1).First(&first)
		if err := svc.ReleasePort(first.ID, nil); err != nil {
			t.Fatalf("release: %v", err)
		}
		if err := svc.AssignCustomerToSplitter(extra.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("assign after release: %v", err)
		}
	})

	t.Run("missing customer and splitter", func(t *testing.T) {
		db := newTestDB(t)
		_, _, splitter := newTestNetwork(t, db, 4)
		customer := newTestCustomer(t, db, "Alice")
		svc := NewCapacityService(db)

		if err := svc.AssignCustomerToSplitter(9999, splitter.ID, 1, nil); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		if err := svc.AssignCustomerToSplitter(customer.ID, 9999, 1, nil); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestAssignConcurrent(t *testing.T) {
	db := newTestDB(t)
	_, _, splitter := newTestNetwork(t, db, 4)
	svc := NewCapacityService(db)

	const workers = 8
	customers := make([]*models.Customer, workers)
	for i := range customers {
		customers[i] = newTestCustomer(t, db, string(rune('A'+i)))
	}

	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Distinct in-range ports; only capacity should limit.
			port := i%4 + 1
			if err := svc.AssignCustomerToSplitter(customers[i].ID, splitter.ID, port, nil); err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}(i)
	}
	wg.Wait()

	var got models.Splitter
	db.First(&got, splitter.ID)
	if got.UsedPorts > got.PortCapacity {
		t.Fatalf("used_ports %d exceeds capacity %d", got.UsedPorts, got.PortCapacity)
	}
	if int64(got.UsedPorts) != successes {
		t.Fatalf("used_ports = %d but %d assignments succeeded", got.UsedPorts, successes)
	}
	if successes > 4 {
		t.Fatalf("%d successes, capacity is 4", successes)
	}
}

func TestMoveSplitter(t *testing.T) {
	t.Run("rejects move with active customers", func(t *testing.T) {
		db := newTestDB(t)
		headend, _, splitter := newTestNetwork(t, db, 4)
		other := &models.FDH{Name: "FDH-other", HeadendID: headend.ID}
		if err := db.Create(other).Error; err != nil {
			t.Fatalf("create fdh: %v", err)
		}
		customer := newTestCustomer(t, db, "Alice")
		svc := NewCapacityService(db)

		if err := svc.AssignCustomerToSplitter(customer.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("assign: %v", err)
		}
		if err := svc.MoveSplitter(splitter.ID, other.ID, nil); !IsBusinessRule(err) {
			t.Fatalf("err = %v, want business rule violation", err)
		}
	})

	t.Run("moves after ports released", func(t *testing.T) {
		db := newTestDB(t)
		headend, _, splitter := newTestNetwork(t, db, 4)
		other := &models.FDH{Name: "FDH-other", HeadendID: headend.ID}
		if err := db.Create(other).Error; err != nil {
			t.Fatalf("create fdh: %v", err)
		}
		customer := newTestCustomer(t, db, "Alice")
		svc := NewCapacityService(db)

		if err := svc.AssignCustomerToSplitter(customer.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("assign: %v", err)
		}
		if err := svc.ReleasePort(customer.ID, nil); err != nil {
			t.Fatalf("release: %v", err)
		}
		if err := svc.MoveSplitter(splitter.ID, other.ID, nil); err != nil {
			t.Fatalf("move: %v", err)
		}

		var got models.Splitter
		db.First(&got, splitter.ID)
		if got.FdhID != other.ID {
			t.Fatalf("fdh_id = %d, want %d", got.FdhID, other.ID)
		}
		if n := auditCount(t, db, models.ActionSplitterMoved); n != 1 {
			t.Fatalf("audit entries = %d, want 1", n)
		}
	})

	t.Run("rejects unknown target hub", func(t *testing.T) {
		db := newTestDB(t)
		_, _, splitter := newTestNetwork(t, db, 4)
		svc := NewCapacityService(db)

		if err := svc.MoveSplitter(splitter.ID, 9999, nil); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestReleasePort(t *testing.T) {
	t.Run("releases and disconnects drop line", func(t *testing.T) {
		db := newTestDB(t)
		_, _, splitter := newTestNetwork(t, db, 4)
		customer := newTestCustomer(t, db, "Alice")
		svc := NewCapacityService(db)

		if err := svc.AssignCustomerToSplitter(customer.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("assign: %v", err)
		}
		drop := models.FiberDropLine{LengthMeters: 40, FromSplitterID: splitter.ID, ToCustomerID: customer.ID, Status: models.DropLineActive}
		if err := db.Create(&drop).Error; err != nil {
			t.Fatalf("create drop line: %v", err)
		}

		if err := svc.ReleasePort(customer.ID, nil); err != nil {
			t.Fatalf("release: %v", err)
		}

		var got models.Customer
		db.First(&got, customer.ID)
		if got.SplitterID != nil || got.AssignedPort != nil {
			t.Fatalf("customer still assigned: splitter_id=%v port=%v", got.SplitterID, got.AssignedPort)
		}

		var gotSplitter models.Splitter
		db.First(&gotSplitter, splitter.ID)
		if gotSplitter.UsedPorts != 0 {
			t.Fatalf("used_ports = %d, want 0", gotSplitter.UsedPorts)
		}

		var gotDrop models.FiberDropLine
		db.First(&gotDrop, drop.ID)
		if gotDrop.Status != models.DropLineDisconnected {
			t.Fatalf("drop line status = %s, want Disconnected", gotDrop.Status)
		}
	})

	t.Run("rejects unassigned customer", func(t *testing.T) {
		db := newTestDB(t)
		customer := newTestCustomer(t, db, "Alice")
		svc := NewCapacityService(db)

		if err := svc.ReleasePort(customer.ID, nil); !errors.Is(err, ErrNotAssigned) {
			t.Fatalf("err = %v, want ErrNotAssigned", err)
		}
	})

	t.Run("frees port for reassignment", func(t *testing.T) {
		db := newTestDB(t)
		_, _, splitter := newTestNetwork(t, db, 1)
		first := newTestCustomer(t, db, "Alice")
		second := newTestCustomer(t, db, "Bob")
		svc := NewCapacityService(db)

		if err := svc.AssignCustomerToSplitter(first.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("assign first: %v", err)
		}
		if err := svc.AssignCustomerToSplitter(second.ID, splitter.ID, 1, nil); err == nil {
			t.Fatal("expected failure while port held")
		}
		if err := svc.ReleasePort(first.ID, nil); err != nil {
			t.Fatalf("release: %v", err)
		}
		if err := svc.AssignCustomerToSplitter(second.ID, splitter.ID, 1, nil); err != nil {
			t.Fatalf("reassign: %v", err)
		}
	})
}
