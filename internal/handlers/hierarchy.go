// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
	"github.com/23himanshusingh/network-inventory-manager/internal/reactive"
	"github.com/23himanshusingh/network-inventory-manager/internal/services"
)

type CreateHeadendRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func CreateHeadend(c *fiber.Ctx) error {
	var req CreateHeadendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	headend := models.Headend{Name: req.Name, Location: req.Location}
	if err := hierarchySvc.CreateHeadend(&headend, actorID(c)); err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventHeadendCreated, headend, actorID(c))
	return c.Status(fiber.StatusCreated).JSON(headend)
}

func GetHeadend(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	headend, err := hierarchySvc.GetHeadend(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(headend)
}

func ListHeadends(c *fiber.Ctx) error {
	headends, err := hierarchySvc.ListHeadends()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": headends, "count": len(headends)})
}

type CreateFDHRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Region    string `json:"region"`
	MaxPorts  int    `json:"max_ports"`
	HeadendID uint   `json:"headend_id"`
}

func CreateFDH(c *fiber.Ctx) error {
	var req CreateFDHRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.HeadendID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and headend_id are required"})
	}

	fdh := models.FDH{
		Name:      req.Name,
		Location:  req.Location,
		Region:    req.Region,
		MaxPorts:  req.MaxPorts,
		HeadendID: req.HeadendID,
	}
	if err := hierarchySvc.CreateFDH(&fdh, actorID(c)); err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventFDHCreated, fdh, actorID(c))
	return c.Status(fiber.StatusCreated).JSON(fdh)
}

func GetFDH(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	fdh, err := hierarchySvc.GetFDH(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fdh)
}

func ListFDHs(c *fiber.Ctx) error {
	fdhs, err := hierarchySvc.ListFDHs()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": fdhs, "count": len(fdhs)})
}

func UpdateFDH(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var upd services.FDHUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	fdh, err := hierarchySvc.UpdateFDH(id, upd, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fdh)
}

type CreateSplitterRequest struct {
	Model        string `json:"model"`
	PortCapacity int    `json:"port_capacity"`
	Location     string `json:"location"`
	FdhID        uint   `json:"fdh_id"`
}

func CreateSplitter(c *fiber.Ctx) error {
	var req CreateSplitterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.FdhID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fdh_id is required"})
	}

	splitter := models.Splitter{
		Model:        req.Model,
		PortCapacity: req.PortCapacity,
		Location:     req.Location,
		FdhID:        req.FdhID,
	}
	if err := hierarchySvc.CreateSplitter(&splitter, actorID(c)); err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventSplitterCreated, splitter, actorID(c))
	return c.Status(fiber.StatusCreated).JSON(splitter)
}

func GetSplitter(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	splitter, err := hierarchySvc.GetSplitter(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(splitter)
}

func ListSplitters(c *fiber.Ctx) error {
	splitters, err := hierarchySvc.ListSplitters()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": splitters, "count": len(splitters)})
}

func UpdateSplitter(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var upd services.SplitterUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	splitter, err := hierarchySvc.UpdateSplitter(id, upd, actorID(c))
	if err != nil {
		return respondError(c, err)
	}

	if upd.FdhID != nil {
		EmitEvent(reactive.EventSplitterMoved, splitter, actorID(c))
	}
	return c.JSON(splitter)
}
