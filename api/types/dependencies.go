package types

import (
	"github.com/killallgit/player-core/internal/cache"
	"github.com/killallgit/player-core/internal/store"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Store   store.Store
	Cache   *cache.TTLCache
	Catalog CatalogService
	Player  PlayerService
}
