// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/23himanshusingh/network-inventory-manager/internal/models"
	"github.com/23himanshusingh/network-inventory-manager/internal/reactive"
	"github.com/23himanshusingh/network-inventory-manager/internal/services"
)

type CreateTechnicianRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Region  string `json:"region"`
}

func CreateTechnician(c *fiber.Ctx) error {
	var req CreateTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	tech := models.Technician{Name: req.Name, Contact: req.Contact, Region: req.Region}
	if err := workforceSvc.CreateTechnician(&tech); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tech)
}

func ListTechnicians(c *fiber.Ctx) error {
	techs, err := workforceSvc.ListTechnicians()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": techs, "count": len(techs)})
}

func GetTechnician(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	tech, err := workforceSvc.GetTechnician(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tech)
}

type CreateTaskRequest struct {
	CustomerID    uint      `json:"customer_id"`
	TechnicianID  *uint     `json:"technician_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Notes         string    `json:"notes"`
}

func CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.CustomerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "customer_id is required"})
	}

	task := models.DeploymentTask{
		CustomerID:    req.CustomerID,
		TechnicianID:  req.TechnicianID,
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
	}
	if err := workforceSvc.CreateTask(&task, actorID(c)); err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventTaskCreated, task, actorID(c))
	return c.Status(fiber.StatusCreated).JSON(task)
}

func ListTasks(c *fiber.Ctx) error {
	filter := services.TaskFilter{
		Status: models.TaskStatus(c.Query("status", "")),
	}
	if raw := c.Query("technician_id", ""); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			tid := uint(id)
			filter.TechnicianID = &tid
		}
	}
	if raw := c.Query("customer_id", ""); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			cid := uint(id)
			filter.CustomerID = &cid
		}
	}

	tasks, err := workforceSvc.ListTasks(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": tasks, "count": len(tasks)})
}

func UpdateTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var upd services.TaskUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	task, err := workforceSvc.UpdateTask(id, upd, actorID(c))
	if err != nil {
		return respondError(c, err)
	}

	EmitEvent(reactive.EventTaskUpdated, task, actorID(c))
	return c.JSON(task)
}
