package models

import "testing"

func TestNewTopologyNode(t *testing.T) {
	t.Run("derives faulty flag from status", func(t *testing.T) {
		cases := []struct {
			status string
			faulty bool
		}{
			{string(AssetFaulty), true},
			{string(AssetRetired), true},
			{string(CustomerInactive), true},
			{string(DropLineDisconnected), true},
			{string(CustomerActive), false},
			{"Online", false},
		}
		for _, tc := range cases {
			node := NewTopologyNode("n1", "label", "customer", tc.status, 0, 0)
			if node.Data.IsFaulty != tc.faulty {
				t.Errorf("status %s: faulty = %v, want %v", tc.status, node.Data.IsFaulty, tc.faulty)
			}
		}
	})

	t.Run("uses the custom renderer type", func(t *testing.T) {
		node := NewTopologyNode("n1", "label", "fdh", "Online", 5, 7)
		if node.Type != "custom" {
			t.Fatalf("type = %s, want custom", node.Type)
		}
		if node.Position.X != 5 || node.Position.Y != 7 {
			t.Fatalf("position = %+v", node.Position)
		}
	})
}

func TestNewTopologyEdge(t *testing.T) {
	edge := NewTopologyEdge("cust-1", "split-2")
	if edge.ID != "e-cust-1-to-split-2" {
		t.Fatalf("id = %s", edge.ID)
	}
	if edge.Source != "cust-1" || edge.Target != "split-2" {
		t.Fatalf("edge = %+v", edge)
	}
}

func TestGraphAppend(t *testing.T) {
	g := NewTopologyGraph()
	if g.Nodes == nil || g.Edges == nil {
		t.Fatal("slices must be non-nil so JSON renders [] not null")
	}
	g.AddNode(NewTopologyNode("a", "A", "headend", "Online", 0, 0))
	g.AddEdge(NewTopologyEdge("a", "b"))
	if len(g.Nodes) != 1 || len(g.Edges) != 1 {
		t.Fatalf("nodes = %d edges = %d", len(g.Nodes), len(g.Edges))
	}
}
