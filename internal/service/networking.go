package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/repository"
)

// Connection sort orders accepted by Connections.
const (
	SortRecent       = "recent"       // most recent interaction first
	SortSharedEvents = "events"       // most shared events first
	SortAlphabetical = "alphabetical" // by first name
)

// NetworkingService exposes the social graph. The graph itself is seeded;
// connection formation happens outside this system, so reads dominate and
// the event hooks below only log.
type NetworkingService struct {
	repo *repository.NetworkRepo
}

// NewNetworkingService constructs a NetworkingService.
func NewNetworkingService(repo *repository.NetworkRepo) *NetworkingService {
	return &NetworkingService{repo: repo}
}

// Connections returns the user's connections in the requested order.
// Unknown sort values fall back to most-recent-interaction.
func (s *NetworkingService) Connections(ctx context.Context, userID, sortBy string) []model.Connection {
	conns := s.load(ctx, userID)
	switch sortBy {
	case SortSharedEvents:
		sort.SliceStable(conns, func(i, j int) bool {
			return conns[i].SharedEventsCount > conns[j].SharedEventsCount
		})
	case SortAlphabetical:
		sort.SliceStable(conns, func(i, j int) bool {
			return strings.ToLower(conns[i].Profile.FirstName) < strings.ToLower(conns[j].Profile.FirstName)
		})
	default:
		sort.SliceStable(conns, func(i, j int) bool {
			return conns[i].LastInteractionAt.After(conns[j].LastInteractionAt)
		})
	}
	return conns
}

// SearchConnections does a case-insensitive substring match across the
// counterparty's name, location and the first-met event title.
func (s *NetworkingService) SearchConnections(ctx context.Context, userID, query string) []model.Connection {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.load(ctx, userID)
	}
	var out []model.Connection
	for _, c := range s.load(ctx, userID) {
		name := strings.ToLower(c.Profile.FirstName + " " + c.Profile.LastName)
		if strings.Contains(name, q) ||
			strings.Contains(strings.ToLower(c.Profile.Location), q) ||
			strings.Contains(strings.ToLower(c.FirstMetEvent), q) {
			out = append(out, c)
		}
	}
	return out
}

// Stats returns the aggregate networking counters and achievements.
func (s *NetworkingService) Stats(ctx context.Context, userID string) model.NetworkStats {
	stats, ok := s.repo.LoadStats(ctx, userID)
	if !ok {
		stats = seedStats()
		stats.TotalConnections = len(s.load(ctx, userID))
		persist("network stats", s.repo.SaveStats(ctx, userID, stats))
	}
	return stats
}

// CheckInToEvent records nothing yet: connection formation from check-ins
// lives outside this system. Kept so callers have a stable hook.
func (s *NetworkingService) CheckInToEvent(_ context.Context, userID, eventID string) {
	log.Printf("networking: user %s checked in to event %s", userID, eventID)
}

// MarkEventAttended records nothing yet, same as CheckInToEvent.
func (s *NetworkingService) MarkEventAttended(_ context.Context, userID, eventID string) {
	log.Printf("networking: user %s attended event %s", userID, eventID)
}

// ConversationStarters returns the bilingual prompt list, filtered by
// category when one is given.
func (s *NetworkingService) ConversationStarters(category string) []model.ConversationStarter {
	if category == "" {
		return conversationStarters
	}
	var out []model.ConversationStarter
	for _, cs := range conversationStarters {
		if cs.Category == category {
			out = append(out, cs)
		}
	}
	return out
}

// load returns the stored graph, seeding it on first access.
func (s *NetworkingService) load(ctx context.Context, userID string) []model.Connection {
	conns := s.repo.LoadConnections(ctx, userID)
	if len(conns) == 0 {
		conns = seedConnections(userID)
		persist("network", s.repo.SaveConnections(ctx, userID, conns))
	}
	return conns
}

// seedConnections builds the mock graph a new user starts with.
func seedConnections(userID string) []model.Connection {
	now := time.Now().UTC()
	return []model.Connection{
		{
			ID:              "conn-1",
			UserID:          userID,
			ConnectedUserID: "member-maria",
			Profile: model.ConnectionProfile{
				FirstName: "Maria", LastName: "Santos",
				Location: "Stockwell, London", Headline: "Teacher and fado lover",
			},
			Origin:            model.OriginEventBased,
			FirstMetEvent:     "Fado Night at A Toca",
			SharedEventsCount: 4,
			Strength:          8.2,
			LastInteractionAt: now.Add(-48 * time.Hour),
			Privacy:           "community",
			CreatedAt:         now.Add(-90 * 24 * time.Hour),
		},
		{
			ID:              "conn-2",
			UserID:          userID,
			ConnectedUserID: "member-joao",
			Profile: model.ConnectionProfile{
				FirstName: "João", LastName: "Ferreira",
				Location: "Vauxhall, London", Headline: "Software engineer from Porto",
			},
			Origin:            model.OriginMutualMatch,
			FirstMetEvent:     "Portuguese Tech Meetup",
			SharedEventsCount: 2,
			Strength:          6.5,
			LastInteractionAt: now.Add(-6 * time.Hour),
			Privacy:           "public",
			CreatedAt:         now.Add(-30 * 24 * time.Hour),
		},
		{
			ID:              "conn-3",
			UserID:          userID,
			ConnectedUserID: "member-ana",
			Profile: model.ConnectionProfile{
				FirstName: "Ana", LastName: "Oliveira",
				Location: "Camden, London", Headline: "Student at UCL",
			},
			Origin:            model.OriginGroupMember,
			FirstMetEvent:     "Santos Populares Celebration",
			SharedEventsCount: 6,
			Strength:          9.1,
			LastInteractionAt: now.Add(-7 * 24 * time.Hour),
			Privacy:           "community",
			CreatedAt:         now.Add(-120 * 24 * time.Hour),
		},
	}
}

func seedStats() model.NetworkStats {
	now := time.Now().UTC()
	return model.NetworkStats{
		EventsAttended:    5,
		MessagesExchanged: 12,
		Achievements: []model.Achievement{
			{
				ID:       "first-connection",
				Name:     model.Bilingual{EN: "First Connection", PT: "Primeira Ligação"},
				Icon:     "handshake",
				EarnedAt: now.Add(-90 * 24 * time.Hour),
			},
			{
				ID:       "event-regular",
				Name:     model.Bilingual{EN: "Event Regular", PT: "Habitué de Eventos"},
				Icon:     "calendar",
				EarnedAt: now.Add(-20 * 24 * time.Hour),
			},
		},
	}
}

// conversationStarters is the fixed bilingual prompt list.
var conversationStarters = []model.ConversationStarter{
	{
		ID: "cs-1", Category: "events",
		Prompt: model.Bilingual{
			EN: "Which Portuguese event in London would you recommend?",
			PT: "Que evento português em Londres recomendarias?",
		},
	},
	{
		ID: "cs-2", Category: "food",
		Prompt: model.Bilingual{
			EN: "Where do you find the best pastéis de nata here?",
			PT: "Onde encontras os melhores pastéis de nata por aqui?",
		},
	},
	{
		ID: "cs-3", Category: "culture",
		Prompt: model.Bilingual{
			EN: "Do you follow fado or prefer modern Portuguese music?",
			PT: "Acompanhas o fado ou preferes música portuguesa moderna?",
		},
	},
	{
		ID: "cs-4", Category: "life",
		Prompt: model.Bilingual{
			EN: "What do you miss most about home?",
			PT: "Do que sentes mais falta de casa?",
		},
	},
	{
		ID: "cs-5", Category: "events",
		Prompt: model.Bilingual{
			EN: "Are you going to the Santos Populares this June?",
			PT: "Vais aos Santos Populares este junho?",
		},
	},
}
