package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lusotown/community-platform/internal/model"
	"github.com/lusotown/community-platform/internal/queue"
	"github.com/lusotown/community-platform/internal/repository"
)

// DeliveryPublisher pushes a delivery event onto the broker. Satisfied by
// queue.Publisher.
type DeliveryPublisher interface {
	PublishDelivery(ctx context.Context, event queue.DeliveryEvent) error
}

// NotificationService manages the notification list, the channel
// preference matrix and template-driven sends. High and urgent priority
// notifications additionally go out immediately through every channel the
// preference matrix allows.
type NotificationService struct {
	repo      *repository.NotificationRepo
	prefs     *repository.PreferenceRepo
	publisher DeliveryPublisher

	// Now is the clock used for timestamps and expiry. Overridable in tests.
	Now func() time.Time
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo *repository.NotificationRepo, prefs *repository.PreferenceRepo, publisher DeliveryPublisher) *NotificationService {
	return &NotificationService{
		repo:      repo,
		prefs:     prefs,
		publisher: publisher,
		Now:       time.Now,
	}
}

// Notifications returns the user's notification list, newest first.
func (s *NotificationService) Notifications(ctx context.Context, userID string) []model.Notification {
	return s.repo.LoadNotifications(ctx, userID)
}

// Add stores a new notification at the head of the list. High and urgent
// priorities are also delivered immediately through the eligible channels,
// in the user's active language.
func (s *NotificationService) Add(ctx context.Context, userID string, n model.Notification) model.Notification {
	n.ID = uuid.New().String()
	n.UserID = userID
	n.Read = false
	n.CreatedAt = s.Now().UTC()
	if n.Priority == "" {
		n.Priority = model.PriorityMedium
	}

	list := s.repo.LoadNotifications(ctx, userID)
	list = append([]model.Notification{n}, list...)
	persist("notifications", s.repo.SaveNotifications(ctx, userID, list))

	if n.Priority.Immediate() {
		s.deliverNow(ctx, userID, n)
	}
	return n
}

// deliverNow publishes a delivery event for every channel whose preference
// allows this notification right now. Publish failures are already logged
// by the publisher; a dead broker must not fail the add.
func (s *NotificationService) deliverNow(ctx context.Context, userID string, n model.Notification) {
	if s.publisher == nil {
		return
	}
	lang := s.prefs.Language(ctx, userID)
	prefs := s.repo.LoadPreferences(ctx, userID)
	for _, ch := range model.AllChannels {
		cp, ok := prefs.Channels[ch]
		if !ok || !cp.Enabled || !cp.Categories[n.Category] || !cp.Priorities[n.Priority] {
			continue
		}
		if cp.Frequency != model.FreqImmediate {
			continue
		}
		_ = s.publisher.PublishDelivery(ctx, queue.DeliveryEvent{
			NotificationID: n.ID,
			UserID:         userID,
			Channel:        string(ch),
			Priority:       string(n.Priority),
			Title:          n.Title.In(lang),
			Message:        n.Message.In(lang),
			Language:       lang,
			SentAt:         s.Now().UTC().Format(time.RFC3339),
		})
	}
}

// SendPersonalized renders a template with {{variable}} substitution and
// adds the result. Placeholders without a value in vars stay literal.
func (s *NotificationService) SendPersonalized(ctx context.Context, userID, templateID string, vars map[string]string) (model.Notification, error) {
	tpl, ok := notificationTemplates[templateID]
	if !ok {
		return model.Notification{}, model.ErrUnknownTemplate
	}
	n := model.Notification{
		Type:     tpl.Type,
		Category: tpl.Category,
		Priority: tpl.Priority,
		Title:    renderTemplate(tpl.Title, tpl.Variables, vars),
		Message:  renderTemplate(tpl.Message, tpl.Variables, vars),
		Data:     vars,
	}
	return s.Add(ctx, userID, n), nil
}

// Schedule adds the notification after the delay elapses, the one-shot
// deferred send. The timer is not persisted; a restart drops it.
func (s *NotificationService) Schedule(userID string, n model.Notification, delay time.Duration) *time.Timer {
	return time.AfterFunc(delay, func() {
		s.Add(context.Background(), userID, n)
	})
}

// ByCategory filters the list by category.
func (s *NotificationService) ByCategory(ctx context.Context, userID string, cat model.NotificationCategory) []model.Notification {
	var out []model.Notification
	for _, n := range s.repo.LoadNotifications(ctx, userID) {
		if n.Category == cat {
			out = append(out, n)
		}
	}
	return out
}

// ByType filters the list by type.
func (s *NotificationService) ByType(ctx context.Context, userID string, typ model.NotificationType) []model.Notification {
	var out []model.Notification
	for _, n := range s.repo.LoadNotifications(ctx, userID) {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

// Unread returns the unread notifications.
func (s *NotificationService) Unread(ctx context.Context, userID string) []model.Notification {
	var out []model.Notification
	for _, n := range s.repo.LoadNotifications(ctx, userID) {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// Search matches the query case-insensitively against title and message in
// both languages.
func (s *NotificationService) Search(ctx context.Context, userID, query string) []model.Notification {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.repo.LoadNotifications(ctx, userID)
	}
	var out []model.Notification
	for _, n := range s.repo.LoadNotifications(ctx, userID) {
		haystack := strings.ToLower(n.Title.EN + " " + n.Title.PT + " " + n.Message.EN + " " + n.Message.PT)
		if strings.Contains(haystack, q) {
			out = append(out, n)
		}
	}
	return out
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	list := s.repo.LoadNotifications(ctx, userID)
	for i, n := range list {
		if n.ID == id {
			if !list[i].Read {
				list[i].Read = true
				persist("notifications", s.repo.SaveNotifications(ctx, userID, list))
			}
			return nil
		}
	}
	return model.ErrNotificationNotFound
}

// MarkAllRead flags every notification as read. Calling it again is a
// no-op.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) {
	list := s.repo.LoadNotifications(ctx, userID)
	changed := false
	for i := range list {
		if !list[i].Read {
			list[i].Read = true
			changed = true
		}
	}
	if changed {
		persist("notifications", s.repo.SaveNotifications(ctx, userID, list))
	}
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	list := s.repo.LoadNotifications(ctx, userID)
	for i, n := range list {
		if n.ID == id {
			list = append(list[:i], list[i+1:]...)
			persist("notifications", s.repo.SaveNotifications(ctx, userID, list))
			return nil
		}
	}
	return model.ErrNotificationNotFound
}

// SweepExpired drops notifications past their expiry and returns how many
// were removed.
func (s *NotificationService) SweepExpired(ctx context.Context, userID string) int {
	now := s.Now().UTC()
	list := s.repo.LoadNotifications(ctx, userID)
	kept := list[:0]
	removed := 0
	for _, n := range list {
		if n.Expired(now) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	if removed > 0 {
		persist("notifications", s.repo.SaveNotifications(ctx, userID, kept))
	}
	return removed
}

// Preferences returns the user's channel preference matrix.
func (s *NotificationService) Preferences(ctx context.Context, userID string) model.Preferences {
	return s.repo.LoadPreferences(ctx, userID)
}

// ChannelPatch is a partial update to one channel's preference. Nil fields
// are left as they are; category and priority entries are merged in.
type ChannelPatch struct {
	Enabled    *bool                               `json:"enabled,omitempty"`
	Categories map[model.NotificationCategory]bool `json:"categories,omitempty"`
	Priorities map[model.Priority]bool             `json:"priorities,omitempty"`
	Frequency  *model.Frequency                    `json:"frequency,omitempty"`
}

// UpdateChannel shallow-merges a patch into one channel's preference.
func (s *NotificationService) UpdateChannel(ctx context.Context, userID string, channel model.Channel, patch ChannelPatch) (model.Preferences, error) {
	prefs := s.repo.LoadPreferences(ctx, userID)
	cp, ok := prefs.Channels[channel]
	if !ok {
		return model.Preferences{}, model.ErrUnknownChannel
	}
	if patch.Enabled != nil {
		cp.Enabled = *patch.Enabled
	}
	for cat, v := range patch.Categories {
		cp.Categories[cat] = v
	}
	for prio, v := range patch.Priorities {
		cp.Priorities[prio] = v
	}
	if patch.Frequency != nil {
		cp.Frequency = *patch.Frequency
	}
	prefs.Channels[channel] = cp
	persist("notification prefs", s.repo.SavePreferences(ctx, userID, prefs))
	return prefs, nil
}

// PreferencesPatch is a partial update to the matrix-wide settings: quiet
// hours and interest tags. Nil fields are left as they are.
type PreferencesPatch struct {
	QuietHoursStart *string  `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd   *string  `json:"quiet_hours_end,omitempty"`
	Interests       []string `json:"interests,omitempty"`
}

// UpdatePreferences merges a patch into the user's quiet hours and
// interests. Quiet hour bounds must be "HH:MM" clock times.
func (s *NotificationService) UpdatePreferences(ctx context.Context, userID string, patch PreferencesPatch) (model.Preferences, error) {
	prefs := s.repo.LoadPreferences(ctx, userID)
	if patch.QuietHoursStart != nil {
		if *patch.QuietHoursStart != "" {
			if _, err := time.Parse("15:04", *patch.QuietHoursStart); err != nil {
				return model.Preferences{}, model.ErrInvalidQuietHours
			}
		}
		prefs.QuietHoursStart = *patch.QuietHoursStart
	}
	if patch.QuietHoursEnd != nil {
		if *patch.QuietHoursEnd != "" {
			if _, err := time.Parse("15:04", *patch.QuietHoursEnd); err != nil {
				return model.Preferences{}, model.ErrInvalidQuietHours
			}
		}
		prefs.QuietHoursEnd = *patch.QuietHoursEnd
	}
	if patch.Interests != nil {
		prefs.Interests = patch.Interests
	}
	persist("notification prefs", s.repo.SavePreferences(ctx, userID, prefs))
	return prefs, nil
}

// Insights recomputes read-rate and per-category counts from the live
// list. Only measured values are reported.
func (s *NotificationService) Insights(ctx context.Context, userID string) model.Insights {
	list := s.repo.LoadNotifications(ctx, userID)
	ins := model.Insights{
		Total:      len(list),
		ByCategory: make(map[model.NotificationCategory]int),
	}
	read := 0
	for _, n := range list {
		if n.Read {
			read++
		} else {
			ins.Unread++
		}
		ins.ByCategory[n.Category]++
	}
	if ins.Total > 0 {
		ins.ReadRate = float64(read) / float64(ins.Total)
	}
	return ins
}

// renderTemplate substitutes each declared variable that has a value;
// placeholders without one stay literal.
func renderTemplate(text model.Bilingual, declared []string, vars map[string]string) model.Bilingual {
	for _, name := range declared {
		value, ok := vars[name]
		if !ok {
			continue
		}
		placeholder := "{{" + name + "}}"
		text.EN = strings.ReplaceAll(text.EN, placeholder, value)
		text.PT = strings.ReplaceAll(text.PT, placeholder, value)
	}
	return text
}
