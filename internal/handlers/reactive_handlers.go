// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager - Reactive Handlers

package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reactivex/rxgo/v2"
	"github.com/valyala/fasthttp"

	"github.com/23himanshusingh/network-inventory-manager/internal/reactive"
)

var (
	eventBroadcaster *reactive.EventBroadcaster
	assetRepository  *reactive.AssetRepository
)

func init() {
	eventBroadcaster = reactive.NewEventBroadcaster()
	assetRepository = reactive.NewAssetRepository()

	// Start event logging
	go eventBroadcaster.LogEvents(context.Background())
}

// EventsHandler establishes a reactive SSE connection
func EventsHandler(c *fiber.Ctx) error {
	typeFilter := c.Query("type", "")

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		log.Println("[SSE] Client connected")
		defer log.Println("[SSE] Client disconnected")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Send welcome event
		welcomeData, _ := json.Marshal(map[string]interface{}{
			"message": "SSE connection established",
			"time":    time.Now(),
		})
		fmt.Fprintf(w, "data: %s\n\n", welcomeData)
		w.Flush()

		// Create SSE stream with filters
		var sseStream *reactive.Stream
		if typeFilter != "" {
			sseStream = eventBroadcaster.ToSSE(ctx, func(s *reactive.Stream) *reactive.Stream {
				return s.Filter(func(item interface{}) bool {
					event, ok := item.(reactive.Event)
					if !ok {
						return false
					}
					return string(event.Type) == typeFilter
				})
			})
		} else {
			sseStream = eventBroadcaster.ToSSE(ctx)
		}

		// Keep-alive ticker
		keepAliveTicker := time.NewTicker(15 * time.Second)
		defer keepAliveTicker.Stop()

		// Subscribe to events
		eventCh := sseStream.ToChannel()

		for {
			select {
			case <-ctx.Done():
				return

			case item, ok := <-eventCh:
				if !ok {
					return
				}

				if item.Error() {
					log.Printf("[SSE] Error: %v", item.E)
					continue
				}

				jsonData, ok := item.V.([]byte)
				if !ok {
					continue
				}

				fmt.Fprintf(w, "data: %s\n\n", jsonData)
				if err := w.Flush(); err != nil {
					log.Printf("[SSE] Flush error: %v", err)
					return
				}

			case <-keepAliveTicker.C:
				fmt.Fprintf(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

// AssetStreamHandler returns all assets collected from a reactive stream
func AssetStreamHandler(c *fiber.Ctx) error {
	ctx := context.Background()

	var assets []interface{}

	assetStream := assetRepository.GetAllAsStream(ctx)

	for item := range assetStream.ToChannel() {
		if item.Error() {
			return c.Status(500).JSON(fiber.Map{
				"error": item.E.Error(),
			})
		}
		assets = append(assets, item.V)
	}

	return c.JSON(fiber.Map{
		"assets": assets,
		"count":  len(assets),
	})
}

// AssetSearchHandler performs debounced search over serial/model/location
func AssetSearchHandler(c *fiber.Ctx) error {
	query := c.Query("q", "")

	if query == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	searchCh := make(chan rxgo.Item, 1)
	searchCh <- rxgo.Of(query)
	close(searchCh)

	var results []interface{}

	resultStream := assetRepository.SearchStream(ctx, searchCh)

	for item := range resultStream.ToChannel() {
		if item.Error() {
			return c.Status(500).JSON(fiber.Map{
				"error": item.E.Error(),
			})
		}
		results = append(results, item.V)
	}

	return c.JSON(fiber.Map{
		"results": results,
		"count":   len(results),
		"query":   query,
	})
}

// EventStatsHandler returns aggregated event statistics
func EventStatsHandler(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	statsStream := eventBroadcaster.AggregateStats(ctx, 5*time.Second)

	select {
	case item := <-statsStream.ToChannel():
		if item.Error() {
			return c.Status(500).JSON(fiber.Map{
				"error": item.E.Error(),
			})
		}
		return c.JSON(item.V)

	case <-time.After(6 * time.Second):
		return c.Status(408).JSON(fiber.Map{
			"error": "Timeout waiting for stats",
		})
	}
}

// EmitEvent publishes a domain event to all SSE subscribers.
func EmitEvent(eventType reactive.EventType, data interface{}, userID *uint) {
	eventBroadcaster.Emit(eventType, data, userID)
}
