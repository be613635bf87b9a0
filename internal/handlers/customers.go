// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
	"github.com/23himanshusingh/network-inventory-manager/internal/reactive"
	"github.com/23himanshusingh/network-inventory-manager/internal/services"
)

type CreateCustomerRequest struct {
	Name           string                `json:"name"`
	Address        string                `json:"address"`
	Neighborhood   string                `json:"neighborhood"`
	Plan           string                `json:"plan"`
	ConnectionType models.ConnectionType `json:"connection_type"`
}

func CreateCustomer(c *fiber.Ctx) error {
	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	customer := models.Customer{
		Name:           req.Name,
		Address:        req.Address,
		Neighborhood:   req.Neighborhood,
		Plan:           req.Plan,
		ConnectionType: req.ConnectionType,
	}
	if err := customerSvc.CreateCustomer(&customer, actorID(c)); err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventCustomerCreated, customer, actorID(c))
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func GetCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	customer, err := customerSvc.GetCustomer(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

func ListCustomers(c *fiber.Ctx) error {
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	filter := services.CustomerFilter{
		Status: models.CustomerStatus(c.Query("status", "")),
		Offset: offset,
		Limit:  limit,
	}
	if raw := c.Query("splitter_id", ""); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			sid := uint(id)
			filter.SplitterID = &sid
		}
	}

	customers, total, err := customerSvc.ListCustomers(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": customers, "count": total})
}

func UpdateCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var upd services.CustomerUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	customer, err := customerSvc.UpdateCustomer(id, upd, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

type AssignSplitterRequest struct {
	SplitterID uint `json:"splitter_id"`
	Port       int  `json:"port"`
}

// AssignCustomerToSplitter provisions a customer onto a splitter port.
func AssignCustomerToSplitter(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var req AssignSplitterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SplitterID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "splitter_id is required"})
	}

	if err := capacitySvc.AssignCustomerToSplitter(id, req.SplitterID, req.Port, actorID(c)); err != nil {
		return respondError(c, err)
	}

	customer, err := customerSvc.GetCustomer(id)
	if err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventCustomerAssigned, customer, actorID(c))
	return c.JSON(customer)
}

// ReleaseCustomerPort frees the customer's splitter port.
func ReleaseCustomerPort(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := capacitySvc.ReleasePort(id, actorID(c)); err != nil {
		return respondError(c, err)
	}

	customer, err := customerSvc.GetCustomer(id)
	if err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventPortReleased, customer, actorID(c))
	return c.JSON(customer)
}

// ListCustomerAssignments returns the asset assignment history for a
// customer, newest first.
func ListCustomerAssignments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	assignments, err := customerSvc.Assignments(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": assignments, "count": len(assignments)})
}
