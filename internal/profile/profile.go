package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shopng/internal/kvstore"
	"shopng/internal/models"
	"shopng/internal/session"
	"shopng/internal/util"

	"go.uber.org/zap"
)

// adminDefaults is the profile synthesized for admin accounts that have
// never saved one, pre-filled so checkout works immediately.
var adminDefaults = models.UserProfile{
	FirstName:       "Admin",
	LastName:        "User",
	Email:           "admin@shopng.com",
	ShippingAddress: "100 Commerce Blvd",
	ShippingCity:    "San Francisco",
	ShippingState:   "CA",
	ShippingZip:     "94102",
	CardName:        "Admin User",
	CardNumber:      "4111111111111111",
	CardExpiry:      "12/28",
	CardCvv:         "999",
}

// Store keeps at most one live profile, the one belonging to the active
// session. It reacts to identity changes: login loads or synthesizes the
// profile, logout clears only the live value. Persisted records are keyed
// by user id and outlive sessions.
type Store struct {
	kv     kvstore.Store
	logger *zap.Logger

	mu   sync.RWMutex
	live *models.UserProfile
}

// NewStore creates a profile store over the given scoped persistent store
// and subscribes it to identity changes.
func NewStore(kv kvstore.Store, sessions *session.Provider) *Store {
	s := &Store{kv: kv, logger: util.GetLogger()}
	sessions.Subscribe(func(user *models.User) {
		if user == nil {
			s.clear()
			return
		}
		s.load(context.Background(), *user)
	})
	return s
}

// Live returns a copy of the active session's profile, or nil when the
// session has none.
func (s *Store) Live() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.live == nil {
		return nil
	}
	cp := *s.live
	return &cp
}

// HasProfile reports whether the active session has a live profile.
func (s *Store) HasProfile() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live != nil
}

// Save overwrites both the live value and the persisted record for the
// profile's owning identity.
func (s *Store) Save(ctx context.Context, p models.UserProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.kv.Set(ctx, Key(p.UserID), string(raw)); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}

	s.mu.Lock()
	cp := p
	s.live = &cp
	s.mu.Unlock()

	s.logger.Info("Profile saved", zap.Int64("user_id", p.UserID))
	return nil
}

// ByID returns the persisted profile for the given user id, independent
// of who is logged in. Absent and unparseable records both yield
// models.ErrNotFound; unparseable ones are deleted on the way.
func (s *Store) ByID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	raw, err := s.kv.Get(ctx, Key(userID))
	if err != nil {
		return nil, fmt.Errorf("profile for user %d: %w", userID, models.ErrNotFound)
	}

	var p models.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		_ = s.kv.Delete(ctx, Key(userID))
		s.logger.Warn("Dropped unparseable profile record", zap.Int64("user_id", userID))
		return nil, fmt.Errorf("profile for user %d: %w", userID, models.ErrNotFound)
	}
	return &p, nil
}

// Key returns the scoped-store key for a user's profile record.
func Key(userID int64) string {
	return fmt.Sprintf("user_profile_%d", userID)
}

func (s *Store) load(ctx context.Context, user models.User) {
	if stored, err := s.ByID(ctx, user.ID); err == nil {
		s.mu.Lock()
		s.live = stored
		s.mu.Unlock()
		util.ProfileLoadsTotal.WithLabelValues("stored").Inc()
		return
	}

	if user.Role == models.RoleAdmin {
		p := adminDefaults
		p.UserID = user.ID
		// Persist the defaults so the next load finds them instead of
		// synthesizing again.
		if err := s.Save(ctx, p); err != nil {
			s.logger.Error("Failed to persist default admin profile",
				zap.Int64("user_id", user.ID), zap.Error(err))
		}
		util.ProfileLoadsTotal.WithLabelValues("default").Inc()
		return
	}

	s.mu.Lock()
	s.live = nil
	s.mu.Unlock()
	util.ProfileLoadsTotal.WithLabelValues("none").Inc()
}

func (s *Store) clear() {
	s.mu.Lock()
	s.live = nil
	s.mu.Unlock()
}
