// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetCustomerTopology returns the customer's upstream service chain as a
// node/edge graph.
func GetCustomerTopology(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	graph, err := topologySvc.BuildCustomerTopology(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(graph)
}

// GetHubTopology returns one FDH with its headend, splitters and customers.
func GetHubTopology(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	graph, err := topologySvc.BuildHubTopology(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(graph)
}

// ResolveTopologyBySerial finds the customer holding an asset by serial
// number and returns that customer's service chain.
func ResolveTopologyBySerial(c *fiber.Ctx) error {
	serial := c.Params("serial")
	if serial == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "serial is required"})
	}
	graph, err := topologySvc.ResolveBySerial(serial)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(graph)
}
