// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
	"github.com/23himanshusingh/network-inventory-manager/internal/reactive"
	"github.com/23himanshusingh/network-inventory-manager/internal/services"
)

type CreateAssetRequest struct {
	Type         models.AssetType `json:"asset_type"`
	Model        string           `json:"model"`
	SerialNumber string           `json:"serial_number"`
	Location     string           `json:"location"`
	RequestID    string           `json:"request_id,omitempty"`
}

func CreateAsset(c *fiber.Ctx) error {
	var req CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Type == "" || req.SerialNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "asset_type and serial_number are required"})
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	asset := models.Asset{
		Type:         req.Type,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Location:     req.Location,
	}
	if err := assetSvc.CreateAsset(&asset, actorID(c)); err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventAssetCreated, asset, actorID(c))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":       asset,
		"request_id": req.RequestID,
	})
}

func GetAsset(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	asset, err := assetSvc.GetAsset(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(asset)
}

func ListAssets(c *fiber.Ctx) error {
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	filter := services.AssetFilter{
		Type:     models.AssetType(c.Query("type", "")),
		Status:   models.AssetStatus(c.Query("status", "")),
		Location: c.Query("location", ""),
		Offset:   offset,
		Limit:    limit,
	}

	assets, total, err := assetSvc.ListAssets(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": assets, "count": total})
}

func UpdateAsset(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var upd services.AssetUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	asset, err := assetSvc.UpdateAsset(id, upd, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(asset)
}

// RetireAsset flips an asset to its terminal Retired state; the row is kept
// for history.
func RetireAsset(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	asset, err := assetSvc.RetireAsset(id, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	EmitEvent(reactive.EventAssetRetired, asset, actorID(c))
	return c.JSON(asset)
}

type AssignAssetRequest struct {
	CustomerID uint `json:"customer_id"`
}

func AssignAsset(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var req AssignAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.CustomerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "customer_id is required"})
	}

	assignment, err := assetSvc.AssignToCustomer(id, req.CustomerID, actorID(c))
	if err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventAssetAssigned, assignment, actorID(c))
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

func ReportAssetFault(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	asset, err := assetSvc.ReportFault(id, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	EmitEvent(reactive.EventAssetFault, asset, actorID(c))
	return c.JSON(asset)
}
