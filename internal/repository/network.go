package repository

import (
	"context"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/storage"
)

// NetworkRepo persists the social graph snapshot and the aggregate stats.
type NetworkRepo struct {
	store storage.Store
}

// NewNetworkRepo returns a NetworkRepo bound to the given storage backend.
func NewNetworkRepo(store storage.Store) *NetworkRepo { return &NetworkRepo{store: store} }

func connectionsKey(userID string) string { return "network:" + userID }
func statsKey(userID string) string       { return "network_stats:" + userID }

// LoadConnections returns the user's connections, empty on missing or
// unreadable state.
func (r *NetworkRepo) LoadConnections(ctx context.Context, userID string) []model.Connection {
	var conns []model.Connection
	loadState(ctx, r.store, connectionsKey(userID), &conns)
	return conns
}

// SaveConnections writes the full connection list.
func (r *NetworkRepo) SaveConnections(ctx context.Context, userID string, conns []model.Connection) error {
	return saveState(ctx, r.store, connectionsKey(userID), conns)
}

// LoadStats returns the user's network stats. The second return value is
// false when no stats have been stored yet.
func (r *NetworkRepo) LoadStats(ctx context.Context, userID string) (model.NetworkStats, bool) {
	var stats model.NetworkStats
	ok := loadState(ctx, r.store, statsKey(userID), &stats)
	return stats, ok
}

// SaveStats writes the aggregate stats.
func (r *NetworkRepo) SaveStats(ctx context.Context, userID string, stats model.NetworkStats) error {
	return saveState(ctx, r.store, statsKey(userID), stats)
}
