package admin

import (
	"context"
	"errors"

	"shopng/internal/models"
	"shopng/internal/profile"
	"shopng/internal/session"
	"shopng/internal/users"
)

// ShippingInfo is the only slice of a profile the admin panel may see.
// It is built field by field from the stored profile; the card fields are
// never read into it.
type ShippingInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// UserDetail is the composed projection the admin panel renders for a
// single account: directory record, shipping info when a profile exists,
// and the self-lock flag that disables the suspend control on the
// viewer's own row.
type UserDetail struct {
	Account  models.AdminUser `json:"account"`
	Shipping *ShippingInfo    `json:"shipping,omitempty"`
	IsSelf   bool             `json:"is_self"`
}

// View composes the account directory with persisted profiles. It is a
// pure read-time composition and never mutates either source.
type View struct {
	users    *users.Directory
	profiles *profile.Store
	sessions *session.Provider
}

// NewView creates the composition over the given sources.
func NewView(users *users.Directory, profiles *profile.Store, sessions *session.Provider) *View {
	return &View{users: users, profiles: profiles, sessions: sessions}
}

// UserDetail builds the projection for the viewed user id. The profile
// lookup is an explicit keyed read for that id, not the live session
// profile. A missing profile is not an error; a missing account is.
func (v *View) UserDetail(ctx context.Context, id int64) (*UserDetail, error) {
	account, err := v.users.User(id)
	if err != nil {
		return nil, err
	}

	detail := &UserDetail{
		Account: *account,
		IsSelf:  v.sessions.IsSelf(id),
	}

	stored, err := v.profiles.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return detail, nil
		}
		return nil, err
	}

	detail.Shipping = &ShippingInfo{
		FirstName: stored.FirstName,
		LastName:  stored.LastName,
		Email:     stored.Email,
		Address:   stored.ShippingAddress,
		City:      stored.ShippingCity,
		State:     stored.ShippingState,
		Zip:       stored.ShippingZip,
	}
	return detail, nil
}
