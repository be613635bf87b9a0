// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager - Reactive Repository

package reactive

import (
	"context"
	"time"

	"github.com/reactivex/rxgo/v2"

	"github.com/23himanshusingh/network-inventory-manager/internal/database"
	"github.com/23himanshusingh/network-inventory-manager/internal/models"
)

// AssetRepository provides reactive operations over the asset inventory
type AssetRepository struct {
	config StreamConfig
}

// NewAssetRepository creates a new reactive asset repository
func NewAssetRepository() *AssetRepository {
	return &AssetRepository{
		config: DefaultStreamConfig(),
	}
}

// GetAllAsStream returns all assets as a reactive stream
func (r *AssetRepository) GetAllAsStream(ctx context.Context) *Stream {
	ch := make(chan rxgo.Item)

	go func() {
		defer close(ch)

		var assets []models.Asset
		if err := database.DB.Find(&assets).Error; err != nil {
			ch <- rxgo.Error(err)
			return
		}

		for _, asset := range assets {
			select {
			case <-ctx.Done():
				return
			case ch <- rxgo.Of(asset):
			}
		}
	}()

	return NewStream(ctx, ch, r.config)
}

// WatchChanges creates a stream that emits on asset changes
func (r *AssetRepository) WatchChanges(ctx context.Context, pollInterval time.Duration) *Stream {
	ch := make(chan rxgo.Item)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		var lastUpdate time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var assets []models.Asset
				if err := database.DB.Where("updated_at > ?", lastUpdate).Find(&assets).Error; err != nil {
					ch <- rxgo.Error(err)
					continue
				}

				for _, asset := range assets {
					ch <- rxgo.Of(asset)
					if asset.UpdatedAt.After(lastUpdate) {
						lastUpdate = asset.UpdatedAt
					}
				}
			}
		}
	}()

	return NewStream(ctx, ch, r.config)
}

// FindByStatusStream returns assets filtered by status as a stream
func (r *AssetRepository) FindByStatusStream(ctx context.Context, status models.AssetStatus) *Stream {
	ch := make(chan rxgo.Item)

	go func() {
		defer close(ch)

		var assets []models.Asset
		if err := database.DB.Where("status = ?", status).Find(&assets).Error; err != nil {
			ch <- rxgo.Error(err)
			return
		}

		for _, asset := range assets {
			select {
			case <-ctx.Done():
				return
			case ch <- rxgo.Of(asset):
			}
		}
	}()

	return NewStream(ctx, ch, r.config)
}

// SearchStream performs reactive serial/model search with debouncing
func (r *AssetRepository) SearchStream(ctx context.Context, searchTerms <-chan rxgo.Item) *Stream {
	resultCh := make(chan rxgo.Item, r.config.BufferSize)

	go func() {
		defer close(resultCh)

		stream := NewStream(ctx, searchTerms, r.config)

		// Debounce search requests so each keystroke does not hit the db
		stream.Debounce(300*time.Millisecond).
			Distinct(func(term interface{}) interface{} {
				return term
			}).
			Subscribe(ctx,
				func(term interface{}) {
					searchTerm, ok := term.(string)
					if !ok || searchTerm == "" {
						return
					}

					var assets []models.Asset
					query := "%" + searchTerm + "%"
					if err := database.DB.Where(
						"serial_number LIKE ? OR model LIKE ? OR location LIKE ?",
						query, query, query,
					).Find(&assets).Error; err != nil {
						resultCh <- rxgo.Error(err)
						return
					}

					for _, asset := range assets {
						resultCh <- rxgo.Of(asset)
					}
				},
				func(err error) {
					resultCh <- rxgo.Error(err)
				},
				nil,
			)
	}()

	return NewStream(ctx, resultCh, r.config)
}
