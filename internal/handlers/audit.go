// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/23himanshusingh/network-inventory-manager/internal/database"
	"github.com/23himanshusingh/network-inventory-manager/internal/services"
)

// GetAuditLog returns audit entries, newest first.
// GET /api/v1/audit
func GetAuditLog(c *fiber.Ctx) error {
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	filter := services.AuditFilter{
		ActionType: c.Query("action_type", ""),
		Offset:     offset,
		Limit:      limit,
	}
	if raw := c.Query("user_id", ""); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			uid := uint(id)
			filter.UserID = &uid
		}
	}
	if raw := c.Query("from", ""); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.From = t
		}
	}
	if raw := c.Query("to", ""); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.To = t
		}
	}

	entries, total, err := services.Audit.List(database.DB, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": entries, "count": total})
}
