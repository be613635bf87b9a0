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

// TopologyService materializes node/edge graphs from the relational
// hierarchy. Graphs are computed per request; nothing is cached, so the view
// always reflects the current rows.
type TopologyService struct {
	db *gorm.DB
}

func NewTopologyService(db *gorm.DB) *TopologyService {
	return &TopologyService{db: db}
}

func customerNodeID(id uint) string { return fmt.Sprintf("cust-%d", id) }
func splitterNodeID(id uint) string { return fmt.Sprintf("split-%d", id) }
func fdhNodeID(id uint) string      { return fmt.Sprintf("fdh-%d", id) }
func headendNodeID(id uint) string  { return fmt.Sprintf("headend-%d", id) }

// BuildCustomerTopology walks the chain customer -> splitter -> FDH ->
// headend and lays the nodes out vertically. Edges point from child to
// parent, which is the direction signal travels upstream. An unprovisioned
// customer yields a single-node graph.
func (s *TopologyService) BuildCustomerTopology(customerID uint) (*models.TopologyGraph, error) {
	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
		}
		return nil, err
	}

	graph := models.NewTopologyGraph()

	x, y := 250, 0
	custID := customerNodeID(customer.ID)
	graph.AddNode(models.NewTopologyNode(custID, customer.Name, "customer", string(customer.Status), x, y))

	if customer.SplitterID == nil {
		return graph, nil
	}

	var splitter models.Splitter
	if err := s.db.First(&splitter, *customer.SplitterID).Error; err != nil {
		return nil, err
	}
	y += 150
	splitID := splitterNodeID(splitter.ID)
	label := fmt.Sprintf("Splitter %s (%s)", splitter.Model, splitter.Location)
	graph.AddNode(models.NewTopologyNode(splitID, label, "splitter", "Online", x, y))
	graph.AddEdge(models.NewTopologyEdge(custID, splitID))

	var fdh models.FDH
	if err := s.db.First(&fdh, splitter.FdhID).Error; err != nil {
		return nil, err
	}
	y += 150
	fdhID := fdhNodeID(fdh.ID)
	graph.AddNode(models.NewTopologyNode(fdhID, fmt.Sprintf("FDH %s", fdh.Name), "fdh", "Online", x, y))
	graph.AddEdge(models.NewTopologyEdge(splitID, fdhID))

	var headend models.Headend
	if err := s.db.First(&headend, fdh.HeadendID).Error; err != nil {
		return nil, err
	}
	y += 150
	headID := headendNodeID(headend.ID)
	graph.AddNode(models.NewTopologyNode(headID, fmt.Sprintf("Headend %s", headend.Name), "headend", "Online", x, y))
	graph.AddEdge(models.NewTopologyEdge(fdhID, headID))

	return graph, nil
}

// BuildHubTopology renders a single FDH with its parent headend, the
// splitters under it, and the customers on each splitter. Children are
// ordered by id so the layout is deterministic.
func (s *TopologyService) BuildHubTopology(fdhID uint) (*models.TopologyGraph, error) {
	var fdh models.FDH
	if err := s.db.First(&fdh, fdhID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fdh %d: %w", fdhID, ErrNotFound)
		}
		return nil, err
	}

	graph := models.NewTopologyGraph()

	hubID := fdhNodeID(fdh.ID)
	graph.AddNode(models.NewTopologyNode(hubID, fmt.Sprintf("FDH %s", fdh.Name), "fdh", "Online", 400, 50))

	var headend models.Headend
	if err := s.db.First(&headend, fdh.HeadendID).Error; err != nil {
		return nil, err
	}
	headID := headendNodeID(headend.ID)
	graph.AddNode(models.NewTopologyNode(headID, fmt.Sprintf("Headend %s", headend.Name), "headend", "Online", 400, 250))
	graph.AddEdge(models.NewTopologyEdge(hubID, headID))

	var splitters []models.Splitter
	if err := s.db.Where("fdh_id = ?", fdh.ID).Order("id").Find(&splitters).Error; err != nil {
		return nil, err
	}

	for i, splitter := range splitters {
		splitID := splitterNodeID(splitter.ID)
		splitX := i * 200
		label := fmt.Sprintf("Splitter %s (%s)", splitter.Model, splitter.Location)
		graph.AddNode(models.NewTopologyNode(splitID, label, "splitter", "Online", splitX, -150))
		graph.AddEdge(models.NewTopologyEdge(splitID, hubID))

		var customers []models.Customer
		if err := s.db.Where("splitter_id = ?", splitter.ID).Order("id").Find(&customers).Error; err != nil {
			return nil, err
		}
		for j, customer := range customers {
			custID := customerNodeID(customer.ID)
			graph.AddNode(models.NewTopologyNode(custID, customer.Name, "customer", string(customer.Status), splitX+j*50, -250))
			graph.AddEdge(models.NewTopologyEdge(custID, splitID))
		}
	}

	return graph, nil
}

// ResolveBySerial locates the customer currently holding an asset and
// returns that customer's service chain. The newest assignment wins when an
// asset has moved between customers over time.
func (s *TopologyService) ResolveBySerial(serial string) (*models.TopologyGraph, error) {
	var asset models.Asset
	if err := s.db.Where("serial_number = ?", serial).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("asset serial %q: %w", serial, ErrNotFound)
		}
		return nil, err
	}
	// A faulty asset is still installed at its customer; only retirement
	// ends service. Whether an assignment exists is answered by the
	// assignment rows, not the status.
	if asset.Status == models.AssetRetired {
		return nil, fmt.Errorf("asset %s: %w", serial, ErrNotAssigned)
	}

	var assignment models.AssetAssignment
	err := s.db.Where("asset_id = ?", asset.ID).Order("id DESC").First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("asset %s: %w", serial, ErrNotAssigned)
		}
		return nil, err
	}

	return s.BuildCustomerTopology(assignment.CustomerID)
}
