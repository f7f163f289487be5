package users

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"shopng/internal/gateway"
	"shopng/internal/models"
	"shopng/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stats are the dashboard aggregates over the account collection.
type Stats struct {
	TotalUsers  int `json:"total_users"`
	ActiveUsers int `json:"active_users"`
	AdminCount  int `json:"admin_count"`
}

type eventPublisher interface {
	PublishUserStatusChanged(ctx context.Context, event *models.UserStatusChangedEvent) error
}

// Directory holds the account collection for the admin panel. Stats are
// recomputed after every load and every status toggle.
type Directory struct {
	gw        gateway.Gateway
	publisher eventPublisher
	logger    *zap.Logger

	mu      sync.RWMutex
	users   []models.AdminUser
	stats   Stats
	loading bool
	loadErr string
}

// NewDirectory creates an empty directory. The publisher may be nil.
func NewDirectory(gw gateway.Gateway, publisher eventPublisher) *Directory {
	return &Directory{
		gw:        gw,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// Load replaces the collection with the gateway's current one, keeping
// the previous collection on failure.
func (d *Directory) Load(ctx context.Context) error {
	ctx, span := util.StartSpan(ctx, "users.Directory.Load")
	defer span.End()

	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()

	loaded, err := d.gw.GetAllUsers(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false

	if err != nil {
		d.loadErr = "Failed to load users."
		d.logger.Error("User load failed", zap.Error(err))
		return fmt.Errorf("load users: %w", err)
	}

	d.users = loaded
	d.loadErr = ""
	d.recomputeStatsLocked()
	util.UsersLoadedTotal.Inc()
	d.logger.Info("Users loaded", zap.Int("count", len(loaded)))
	return nil
}

// ToggleStatus flips the account between active and suspended. The
// self-lock guard is the caller's job (the panel never offers the toggle
// on the viewer's own row); the directory only enforces existence.
func (d *Directory) ToggleStatus(ctx context.Context, id int64) (*models.AdminUser, error) {
	ctx, span := util.StartSpan(ctx, "users.Directory.ToggleStatus")
	defer span.End()

	updated, err := d.gw.ToggleUserStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle user status: %w", err)
	}

	d.mu.Lock()
	for i := range d.users {
		if d.users[i].ID == id {
			d.users[i] = *updated
			break
		}
	}
	d.recomputeStatsLocked()
	d.mu.Unlock()

	util.UserStatusTogglesTotal.Inc()
	d.logger.Info("User status toggled",
		zap.Int64("user_id", id),
		zap.String("status", updated.Status))

	if d.publisher != nil {
		event := &models.UserStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeUserStatusChanged,
				Timestamp: time.Now().UTC(),
			},
			UserID:    updated.ID,
			Email:     updated.Email,
			NewStatus: updated.Status,
		}
		if err := d.publisher.PublishUserStatusChanged(ctx, event); err != nil {
			d.logger.Error("Failed to publish UserStatusChanged event", zap.Error(err))
		}
	}

	result := *updated
	return &result, nil
}

// Users returns a copy of the full collection.
func (d *Directory) Users() []models.AdminUser {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.AdminUser, len(d.users))
	copy(out, d.users)
	return out
}

// User returns the account with the given id.
func (d *Directory) User(id int64) (*models.AdminUser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
}

// Filtered applies the role filter first, then a case-insensitive
// substring match against email, first name, and last name. A blank term
// disables text filtering.
func (d *Directory) Filtered(roleFilter, term string) []models.AdminUser {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]models.AdminUser, 0, len(d.users))
	for _, u := range d.users {
		if roleFilter != "all" && u.Role != roleFilter {
			continue
		}
		result = append(result, u)
	}

	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return result
	}

	lower := strings.ToLower(trimmed)
	matched := make([]models.AdminUser, 0, len(result))
	for _, u := range result {
		if strings.Contains(strings.ToLower(u.Email), lower) ||
			strings.Contains(strings.ToLower(u.FirstName), lower) ||
			strings.Contains(strings.ToLower(u.LastName), lower) {
			matched = append(matched, u)
		}
	}
	return matched
}

// Stats returns the aggregates computed at the last load or toggle.
func (d *Directory) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// Loading reports whether a load is in flight.
func (d *Directory) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

// LastError returns the user-visible message of the last failed load, or "".
func (d *Directory) LastError() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadErr
}

func (d *Directory) recomputeStatsLocked() {
	stats := Stats{TotalUsers: len(d.users)}
	for _, u := range d.users {
		if u.Status == models.UserStatusActive {
			stats.ActiveUsers++
		}
		if u.Role == models.RoleAdmin {
			stats.AdminCount++
		}
	}
	d.stats = stats
}
