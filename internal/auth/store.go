package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/tair/storefront-state/pkg/persist"
	"github.com/tair/storefront-state/pkg/statestore"
)

// Store is the session and address-book state container.
type Store struct {
	state *statestore.Store[State]
}

// NewStore creates a signed-out store backed by repo.
func NewStore(repo persist.Repository) *Store {
	return &Store{state: statestore.New(Namespace, State{Addresses: []Address{}}, repo)}
}

// NewAddressID returns a fresh id for an address about to be added.
func NewAddressID() string {
	return uuid.NewString()
}

// Hydrate restores the persisted session.
func (s *Store) Hydrate(ctx context.Context) error {
	return s.state.Hydrate(ctx)
}

// Subscribe calls fn with every new auth state.
func (s *Store) Subscribe(fn func(State)) func() {
	return s.state.Subscribe(fn)
}

// User returns the signed-in user.
func (s *Store) User() (User, bool) {
	u := s.state.Get().User
	if u == nil {
		return User{}, false
	}
	return *u, true
}

// Token returns the session token.
func (s *Store) Token() (string, bool) {
	t := s.state.Get().Token
	if t == nil {
		return "", false
	}
	return *t, true
}

// IsLoading reports whether a session request is in flight.
func (s *Store) IsLoading() bool {
	return s.state.Get().IsLoading
}

// Addresses returns a copy of the address book.
func (s *Store) Addresses() []Address {
	return append([]Address(nil), s.state.Get().Addresses...)
}

// Address looks up an address by id.
func (s *Store) Address(id string) (Address, bool) {
	for _, a := range s.state.Get().Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

// SetUser replaces the current user; nil signs the user out without
// touching the token.
func (s *Store) SetUser(ctx context.Context, user *User) error {
	return s.state.Update(ctx, "setUser", func(st State) (State, error) {
		if user != nil {
			u := *user
			st.User = &u
		} else {
			st.User = nil
		}
		return st, nil
	})
}

// SetToken replaces the session token; an empty token clears it.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.state.Update(ctx, "setToken", func(st State) (State, error) {
		if token == "" {
			st.Token = nil
		} else {
			t := token
			st.Token = &t
		}
		return st, nil
	})
}

// SetLoading flags an in-flight session request.
func (s *Store) SetLoading(ctx context.Context, loading bool) error {
	return s.state.Update(ctx, "setLoading", func(st State) (State, error) {
		st.IsLoading = loading
		return st, nil
	})
}

// Logout clears user and token. Saved addresses stay.
func (s *Store) Logout(ctx context.Context) error {
	return s.state.Update(ctx, "logout", func(st State) (State, error) {
		st.User = nil
		st.Token = nil
		st.IsLoading = false
		return st, nil
	})
}

// IsAuthenticated holds iff both a user and a token are present.
func (s *Store) IsAuthenticated() bool {
	st := s.state.Get()
	return st.User != nil && st.Token != nil
}

// AddAddress appends addr. The first address, or one marked default,
// becomes the only default. An empty id is generated; an id already in the
// book is rejected with ErrDuplicateAddress and the book is left unchanged.
func (s *Store) AddAddress(ctx context.Context, addr Address) error {
	if addr.ID == "" {
		addr.ID = NewAddressID()
	}
	return s.state.Update(ctx, "addAddress", func(st State) (State, error) {
		if indexOf(st.Addresses, addr.ID) >= 0 {
			return st, ErrDuplicateAddress
		}
		makeDefault := addr.IsDefault || len(st.Addresses) == 0
		addresses := make([]Address, 0, len(st.Addresses)+1)
		for _, a := range st.Addresses {
			if makeDefault {
				a.IsDefault = false
			}
			addresses = append(addresses, a)
		}
		addr.IsDefault = makeDefault
		addresses = append(addresses, addr)
		st.Addresses = addresses
		return st, nil
	})
}

// UpdateAddress merges patch into the address with the given id. Setting
// IsDefault to true moves the default there; setting it to false is
// ignored, since a non-empty book always keeps one default. Unknown ids
// are ignored.
func (s *Store) UpdateAddress(ctx context.Context, id string, patch AddressPatch) error {
	return s.state.Update(ctx, "updateAddress", func(st State) (State, error) {
		idx := indexOf(st.Addresses, id)
		if idx < 0 {
			return st, nil
		}
		promote := patch.IsDefault != nil && *patch.IsDefault
		addresses := make([]Address, len(st.Addresses))
		for i, a := range st.Addresses {
			if i == idx {
				a = patch.apply(a)
			}
			if promote {
				a.IsDefault = i == idx
			}
			addresses[i] = a
		}
		st.Addresses = addresses
		return st, nil
	})
}

// RemoveAddress drops the address with the given id. When the default is
// removed the first remaining address takes over.
func (s *Store) RemoveAddress(ctx context.Context, id string) error {
	return s.state.Update(ctx, "removeAddress", func(st State) (State, error) {
		idx := indexOf(st.Addresses, id)
		if idx < 0 {
			return st, nil
		}
		wasDefault := st.Addresses[idx].IsDefault
		addresses := make([]Address, 0, len(st.Addresses)-1)
		addresses = append(addresses, st.Addresses[:idx]...)
		addresses = append(addresses, st.Addresses[idx+1:]...)
		if wasDefault && len(addresses) > 0 {
			addresses[0].IsDefault = true
		}
		st.Addresses = addresses
		return st, nil
	})
}

// SetDefaultAddress makes id the only default address. An unknown id keeps
// the current default.
func (s *Store) SetDefaultAddress(ctx context.Context, id string) error {
	return s.state.Update(ctx, "setDefaultAddress", func(st State) (State, error) {
		if indexOf(st.Addresses, id) < 0 {
			return st, nil
		}
		addresses := make([]Address, len(st.Addresses))
		for i, a := range st.Addresses {
			a.IsDefault = a.ID == id
			addresses[i] = a
		}
		st.Addresses = addresses
		return st, nil
	})
}

// GetDefaultAddress returns the default address, if any.
func (s *Store) GetDefaultAddress() (Address, bool) {
	for _, a := range s.state.Get().Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}

func indexOf(addresses []Address, id string) int {
	for i, a := range addresses {
		if a.ID == id {
			return i
		}
	}
	return -1
}
