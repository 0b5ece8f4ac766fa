package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baha1115/restau-suria-frontend/internal/upstream"
)

// ErrSessionInvalid is returned when the upstream rejects the stored bearer
// token; the session has already been destroyed when this is returned.
var ErrSessionInvalid = errors.New("session invalid")

// AuthAPI is the slice of the upstream client the manager depends on
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*upstream.AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*upstream.AuthResult, error)
	Me(ctx context.Context, token string) (*upstream.User, error)
}

// Manager drives the session lifecycle: unauthenticated -> authenticated on
// login/register, back on logout or a rejected token. It is constructed and
// injected explicitly; there is no package-level instance.
type Manager struct {
	store Store
	auth  AuthAPI
}

// NewManager creates a session manager over the given store and auth API
func NewManager(store Store, auth AuthAPI) *Manager {
	return &Manager{store: store, auth: auth}
}

// Login exchanges credentials for a new session. On failure no session is
// created and the upstream error propagates unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	result, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.create(ctx, result)
}

// Register creates an account upstream and opens a session, mirroring Login
func (m *Manager) Register(ctx context.Context, name, email, password string) (*Session, error) {
	result, err := m.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return m.create(ctx, result)
}

func (m *Manager) create(ctx context.Context, result *upstream.AuthResult) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		Token:     result.Token,
		User:      result.User,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// Resolve returns the session for a cookie ID without any network call.
// ErrNotFound means unauthenticated.
func (m *Manager) Resolve(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(ctx, id)
}

// Refresh re-fetches the profile for the session's token. An upstream auth
// rejection destroys the session and returns ErrSessionInvalid; any other
// failure leaves the session untouched.
func (m *Manager) Refresh(ctx context.Context, sess *Session) (*Session, error) {
	user, err := m.auth.Me(ctx, sess.Token)
	if err != nil {
		if upstream.IsAuthError(err) {
			_ = m.Logout(ctx, sess.ID)
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	sess.User = *user
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// Logout destroys the session. It never contacts the upstream and is
// idempotent.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}

// RememberSlug stores the last resolved restaurant slug on the session, the
// convenience value the owner dashboard reads on its next visit
func (m *Manager) RememberSlug(ctx context.Context, sess *Session, slug string) error {
	if sess.LastSlug == slug {
		return nil
	}
	sess.LastSlug = slug
	return m.store.Save(ctx, sess)
}
