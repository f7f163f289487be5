package session

import (
	"sync"

	"shopng/internal/models"
)

// Listener is invoked synchronously whenever the authenticated identity
// changes. A nil user means logged out.
type Listener func(user *models.User)

// Provider holds the current authenticated identity as an observable
// value. There is at most one identity at a time; a new login supersedes
// the previous one.
type Provider struct {
	mu        sync.RWMutex
	current   *models.User
	listeners []Listener
}

// NewProvider creates a provider with no authenticated identity.
func NewProvider() *Provider {
	return &Provider{}
}

// Subscribe registers a listener for identity changes. Listeners are
// expected to be registered once at startup, before any login happens.
func (p *Provider) Subscribe(l Listener) {
	p.mu.Lock()
	p.listeners = append(p.listeners, l)
	p.mu.Unlock()
}

// Login sets the current identity and notifies listeners.
func (p *Provider) Login(user models.User) {
	p.mu.Lock()
	u := user
	p.current = &u
	listeners := append([]Listener(nil), p.listeners...)
	p.mu.Unlock()

	for _, l := range listeners {
		cp := user
		l(&cp)
	}
}

// Logout clears the current identity and notifies listeners with nil.
func (p *Provider) Logout() {
	p.mu.Lock()
	p.current = nil
	listeners := append([]Listener(nil), p.listeners...)
	p.mu.Unlock()

	for _, l := range listeners {
		l(nil)
	}
}

// Current returns a copy of the authenticated identity, or nil.
func (p *Provider) Current() *models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

// IsSelf reports whether id is the authenticated identity. The admin
// panel uses this to withhold the suspend control on the viewer's own row.
func (p *Provider) IsSelf(id int64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.current != nil && p.current.ID == id
}
