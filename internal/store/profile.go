package store

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/apperr"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/notify"
)

const (
	FieldAuth    = "auth"
	FieldUser    = "user"
	FieldProfile = "profile"
)

// MsgInvalidCredentials replaces the generic sign-in prompt when a login itself is rejected.
const MsgInvalidCredentials = "Invalid email or password"

const minPasswordLength = 8

// Resetter drops per-user state on sign out.
type Resetter interface {
	Reset()
}

// Profile is the signed-in user with their library aggregates.
type Profile struct {
	User  api.User `json:"user"`
	Stats Stats    `json:"stats"`
}

// ProfileStore owns the session: sign in, sign out and the current user.
type ProfileStore struct {
	base
	api       AuthAPI
	tokens    TokenStore
	library   *LibraryStore
	resetters []Resetter

	mu   sync.Mutex
	user *api.User
	gen  generation
}

// NewProfileStore creates a profile store. library supplies Profile stats and,
// with resetters, is reset on Logout.
func NewProfileStore(client AuthAPI, tokens TokenStore, library *LibraryStore, d Deps, resetters ...Resetter) *ProfileStore {
	if d.Auth == nil {
		d.Auth = tokens
	}
	return &ProfileStore{
		base:      newBase(d, "profile"),
		api:       client,
		tokens:    tokens,
		library:   library,
		resetters: resetters,
	}
}

// Login signs in and stores the token. The returned error is the classified
// failure, also recorded in Status under FieldAuth.
func (s *ProfileStore) Login(ctx context.Context, creds api.Credentials) (*api.User, error) {
	const op = "sign in"
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, s.rejectInput(op, "Email and password are required")
	}
	return s.authenticate(ctx, op, func(ctx context.Context) (*api.AuthResponse, error) {
		return s.api.Login(ctx, creds)
	})
}

// Register creates an account and signs in.
func (s *ProfileStore) Register(ctx context.Context, reg api.Registration) (*api.User, error) {
	const op = "create your account"
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Username = strings.TrimSpace(reg.Username)
	if reg.Username == "" {
		return nil, s.rejectInput(op, "Username is required")
	}
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		return nil, s.rejectInput(op, "Please enter a valid email address")
	}
	if len(reg.Password) < minPasswordLength {
		return nil, s.rejectInput(op, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	return s.authenticate(ctx, op, func(ctx context.Context) (*api.AuthResponse, error) {
		return s.api.Register(ctx, reg)
	})
}

// UpdateUser saves profile changes and returns the updated user.
func (s *ProfileStore) UpdateUser(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
	const op = "update your profile"
	if err := s.requireAuth(op); err != nil {
		return nil, err
	}
	gen := s.currentGen()
	r := apicall.Call(ctx, s.caller, &s.Status, "profile:update", func(ctx context.Context) (*api.User, error) {
		return s.api.UpdateProfile(ctx, update)
	}, apicall.Options[*api.User]{
		ShowToast:      true,
		LoadingField:   FieldProfile,
		ErrorField:     FieldProfile,
		Op:             op,
		SuccessMessage: "Profile updated",
		OnSuccess:      s.setUserSince(gen),
	})
	if !r.Success {
		return nil, r.Err
	}
	return r.Data, nil
}

// LoadCurrentUser fetches the signed-in user. A rejected token is cleared.
func (s *ProfileStore) LoadCurrentUser(ctx context.Context) apicall.Result[api.User] {
	const op = "load your profile"
	if err := s.requireAuth(op); err != nil {
		return apicall.Fail[api.User](err)
	}
	gen := s.currentGen()
	r := apicall.Call(ctx, s.caller, &s.Status, "profile:me", s.api.CurrentUser, apicall.Options[*api.User]{
		UseCache:     true,
		LoadingField: FieldUser,
		ErrorField:   FieldUser,
		Op:           op,
		OnSuccess:    s.setUserSince(gen),
		OnError: func(err *apperr.Error) {
			if err.Kind != apperr.KindAuthRequired {
				return
			}
			if cerr := s.tokens.Clear(); cerr != nil {
				s.log.Warn("failed to clear rejected token", "error", cerr)
			}
			s.clearUser()
		},
	})
	if !r.Success {
		return apicall.Fail[api.User](r.Err)
	}
	return apicall.Ok(*r.Data)
}

// Logout clears the token, every per-user store, the result cache and every
// in-flight request, so nothing loaded for the previous user can reach the next.
func (s *ProfileStore) Logout() apicall.Result[struct{}] {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("failed to clear credentials", "error", err)
		failed := &apperr.Error{Kind: apperr.KindUnknown, Op: "sign out", Message: "Could not clear saved credentials", Action: apperr.ActionRetry, Err: err}
		s.caller.Notify(notify.KindError, failed.Message)
		return apicall.Fail[struct{}](failed)
	}
	s.mu.Lock()
	s.gen.bump()
	s.mu.Unlock()
	s.clearUser()
	s.caller.ClearInFlight()
	if s.library != nil {
		s.library.Reset()
	}
	for _, r := range s.resetters {
		r.Reset()
	}
	s.results.Clear()
	s.Status.Reset()
	s.caller.Notify(notify.KindSuccess, "Signed out")
	return apicall.Ok(struct{}{})
}

// IsAuthenticated reports whether a usable token is stored.
func (s *ProfileStore) IsAuthenticated() bool {
	return s.tokens.IsAuthenticated()
}

// User returns the signed-in user, if loaded.
func (s *ProfileStore) User() (api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// Profile returns the user together with the current library Stats.
func (s *ProfileStore) Profile() (Profile, bool) {
	u, ok := s.User()
	if !ok {
		return Profile{}, false
	}
	p := Profile{User: u}
	if s.library != nil {
		p.Stats = s.library.Stats()
	}
	return p, true
}

func (s *ProfileStore) authenticate(ctx context.Context, op string, fn func(context.Context) (*api.AuthResponse, error)) (*api.User, error) {
	s.SetLoading(FieldAuth, true)
	s.SetError(FieldAuth, nil)
	defer s.SetLoading(FieldAuth, false)

	resp, err := fn(ctx)
	if err == nil {
		if terr := s.tokens.SetToken(resp.Token); terr != nil {
			err = fmt.Errorf("save credentials: %w", terr)
		}
	}
	if err != nil {
		classified := apperr.Classify(err, op)
		if classified.Kind == apperr.KindAuthRequired {
			classified.Message = MsgInvalidCredentials
		}
		s.log.Warn("operation failed", "op", op, "kind", classified.Kind, "error", err)
		s.SetError(FieldAuth, classified)
		s.caller.Notify(notify.KindError, classified.Message)
		return nil, classified
	}

	user := resp.User
	s.setUser(&user)
	s.caller.Notify(notify.KindSuccess, "Signed in as "+displayName(user))
	return &user, nil
}

func (s *ProfileStore) rejectInput(op, message string) error {
	err := invalid(op, message)
	s.SetError(FieldAuth, err)
	s.caller.Notify(notify.KindError, message)
	return err
}

func (s *ProfileStore) setUser(u *api.User) {
	if u == nil {
		return
	}
	cp := *u
	s.mu.Lock()
	s.user = &cp
	s.mu.Unlock()
	s.publish(events.EventProfileChanged, "user", cp.ID, events.PhaseLoaded)
}

// setUserSince returns an OnSuccess that ignores users loaded before a sign out.
func (s *ProfileStore) setUserSince(gen generation) func(*api.User) {
	return func(u *api.User) {
		if u == nil {
			return
		}
		cp := *u
		s.mu.Lock()
		if s.gen.stale(gen) {
			s.mu.Unlock()
			return
		}
		s.user = &cp
		s.mu.Unlock()
		s.publish(events.EventProfileChanged, "user", cp.ID, events.PhaseLoaded)
	}
}

func (s *ProfileStore) currentGen() generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *ProfileStore) clearUser() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.publish(events.EventProfileChanged, "user", "", events.PhaseCleared)
}

func displayName(u api.User) string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}
