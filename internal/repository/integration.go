package repository

import (
	"context"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/storage"
)

// IntegrationRepo persists the user journey, the ecosystem analytics and
// the current recommendation set.
type IntegrationRepo struct {
	store storage.Store
}

// NewIntegrationRepo returns an IntegrationRepo bound to the given storage
// backend.
func NewIntegrationRepo(store storage.Store) *IntegrationRepo {
	return &IntegrationRepo{store: store}
}

func journeyKey(userID string) string         { return "journey:" + userID }
func analyticsKey(userID string) string       { return "analytics:" + userID }
func recommendationsKey(userID string) string { return "recommendations:" + userID }

// LoadJourney returns the stored journey, or nil when none was initialized.
func (r *IntegrationRepo) LoadJourney(ctx context.Context, userID string) *model.UserJourney {
	var j model.UserJourney
	if !loadState(ctx, r.store, journeyKey(userID), &j) {
		return nil
	}
	return &j
}

// SaveJourney writes the journey.
func (r *IntegrationRepo) SaveJourney(ctx context.Context, userID string, j *model.UserJourney) error {
	return saveState(ctx, r.store, journeyKey(userID), j)
}

// LoadAnalytics returns the stored analytics, zeroed when none exist yet.
func (r *IntegrationRepo) LoadAnalytics(ctx context.Context, userID string) model.Analytics {
	a := model.Analytics{UserID: userID}
	loadState(ctx, r.store, analyticsKey(userID), &a)
	return a
}

// SaveAnalytics writes the analytics counters.
func (r *IntegrationRepo) SaveAnalytics(ctx context.Context, userID string, a model.Analytics) error {
	return saveState(ctx, r.store, analyticsKey(userID), a)
}

// LoadRecommendations returns the last generated recommendation set.
func (r *IntegrationRepo) LoadRecommendations(ctx context.Context, userID string) []model.Recommendation {
	var recs []model.Recommendation
	loadState(ctx, r.store, recommendationsKey(userID), &recs)
	return recs
}

// SaveRecommendations writes the recommendation set.
func (r *IntegrationRepo) SaveRecommendations(ctx context.Context, userID string, recs []model.Recommendation) error {
	return saveState(ctx, r.store, recommendationsKey(userID), recs)
}
