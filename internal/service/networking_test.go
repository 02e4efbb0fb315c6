package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusotown/community-platform/internal/repository"
	"github.com/lusotown/community-platform/internal/storage"
)

func newNetworkingService() *NetworkingService {
	return NewNetworkingService(repository.NewNetworkRepo(storage.NewMemoryStore()))
}

func TestNetworkingService_Connections_SeededOnFirstAccess(t *testing.T) {
	svc := newNetworkingService()
	ctx := context.Background()

	conns := svc.Connections(ctx, "u1", SortRecent)
	require.Len(t, conns, 3)

	// the seed is written through, not rebuilt per call
	again := svc.Connections(ctx, "u1", SortRecent)
	assert.Equal(t, conns, again)
}

func TestNetworkingService_Connections_SortOrders(t *testing.T) {
	svc := newNetworkingService()
	ctx := context.Background()

	recent := svc.Connections(ctx, "u1", SortRecent)
	require.Len(t, recent, 3)
	assert.Equal(t, "João", recent[0].Profile.FirstName)

	byEvents := svc.Connections(ctx, "u1", SortSharedEvents)
	assert.Equal(t, "Ana", byEvents[0].Profile.FirstName)
	assert.Equal(t, 6, byEvents[0].SharedEventsCount)

	alpha := svc.Connections(ctx, "u1", SortAlphabetical)
	assert.Equal(t, "Ana", alpha[0].Profile.FirstName)
	assert.Equal(t, "Maria", alpha[2].Profile.FirstName)

	// unknown sort falls back to most recent
	fallback := svc.Connections(ctx, "u1", "bogus")
	assert.Equal(t, recent, fallback)
}

func TestNetworkingService_SearchConnections(t *testing.T) {
	svc := newNetworkingService()
	ctx := context.Background()

	byName := svc.SearchConnections(ctx, "u1", "maria")
	require.Len(t, byName, 1)
	assert.Equal(t, "Santos", byName[0].Profile.LastName)

	byLocation := svc.SearchConnections(ctx, "u1", "VAUXHALL")
	require.Len(t, byLocation, 1)
	assert.Equal(t, "João", byLocation[0].Profile.FirstName)

	byEvent := svc.SearchConnections(ctx, "u1", "santos populares")
	require.Len(t, byEvent, 1)
	assert.Equal(t, "Ana", byEvent[0].Profile.FirstName)

	assert.Empty(t, svc.SearchConnections(ctx, "u1", "nobody"))
	assert.Len(t, svc.SearchConnections(ctx, "u1", "  "), 3)
}

func TestNetworkingService_Stats(t *testing.T) {
	svc := newNetworkingService()
	ctx := context.Background()

	stats := svc.Stats(ctx, "u1")
	assert.Equal(t, 3, stats.TotalConnections)
	assert.Equal(t, 5, stats.EventsAttended)
	assert.Len(t, stats.Achievements, 2)
}

func TestNetworkingService_ConversationStarters(t *testing.T) {
	svc := newNetworkingService()

	all := svc.ConversationStarters("")
	assert.Len(t, all, 5)

	events := svc.ConversationStarters("events")
	require.Len(t, events, 2)
	for _, cs := range events {
		assert.Equal(t, "events", cs.Category)
		assert.NotEmpty(t, cs.Prompt.PT)
	}

	assert.Empty(t, svc.ConversationStarters("sports"))
}
