// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package models

import "fmt"

// TopologyGraph is the derived node/edge view consumed by the React Flow
// visualization client.
type TopologyGraph struct {
	Nodes []TopologyNode `json:"nodes"`
	Edges []TopologyEdge `json:"edges"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type NodeData struct {
	Label    string `json:"label"`
	Type     string `json:"type"` // customer, splitter, fdh, headend
	Status   string `json:"status"`
	IsFaulty bool   `json:"isFaulty"`
}

type TopologyNode struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
	Type     string   `json:"type"` // matches the client's custom node renderer
}

type TopologyEdge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated"`
}

// The statuses that render a node as faulty. Infrastructure nodes are
// always reported "Online"; only customers and assets carry fault states.
var faultyStatuses = map[string]bool{
	string(AssetFaulty):          true,
	string(AssetRetired):         true,
	string(CustomerInactive):     true,
	string(DropLineDisconnected): true,
}

func NewTopologyGraph() *TopologyGraph {
	return &TopologyGraph{
		Nodes: make([]TopologyNode, 0),
		Edges: make([]TopologyEdge, 0),
	}
}

func (g *TopologyGraph) AddNode(n TopologyNode) {
	g.Nodes = append(g.Nodes, n)
}

func (g *TopologyGraph) AddEdge(e TopologyEdge) {
	g.Edges = append(g.Edges, e)
}

// NewTopologyNode builds a render node; the faulty flag is derived from the
// status so the client never has to know the status vocabulary.
func NewTopologyNode(id, label, nodeType, status string, x, y int) TopologyNode {
	return TopologyNode{
		ID:       id,
		Position: Position{X: x, Y: y},
		Data: NodeData{
			Label:    label,
			Type:     nodeType,
			Status:   status,
			IsFaulty: faultyStatuses[status],
		},
		Type: "custom",
	}
}

func NewTopologyEdge(source, target string) TopologyEdge {
	return TopologyEdge{
		ID:     fmt.Sprintf("e-%s-to-%s", source, target),
		Source: source,
		Target: target,
	}
}
