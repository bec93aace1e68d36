// Package session owns the signed-in identity for one client process. The
// identity is the only state that survives a restart.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"docspot/internal/backend"
	"docspot/internal/inflight"
	"docspot/internal/model"
	"docspot/internal/store"
)

// Key is the durable storage key of the persisted identity.
const Key = "docspot_user"

var (
	ErrLoginFailed        = errors.New("login failed")
	ErrRegistrationFailed = errors.New("registration failed")
)

type Authenticator interface {
	Authenticate(ctx context.Context, c backend.Credentials) (model.Identity, error)
}

// Listener receives the new identity; ok is false after logout.
type Listener func(id model.Identity, ok bool)

type Store struct {
	storage store.Storage
	auth    Authenticator
	guard   *inflight.Guard
	log     *logrus.Logger

	mu      sync.RWMutex
	current *model.Identity

	subMu sync.Mutex
	subs  map[int]Listener
	next  int
}

func New(st store.Storage, auth Authenticator, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{
		storage: st,
		auth:    auth,
		guard:   inflight.New(),
		log:     log,
		subs:    make(map[int]Listener),
	}
}

// Current returns the signed-in identity, if any.
func (s *Store) Current() (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.Identity{}, false
	}
	return *s.current, true
}

// Loading reports whether a login or registration is waiting on the backend.
func (s *Store) Loading() bool { return s.guard.Busy() }

// Subscribe registers fn for identity changes and returns its cancel func.
// fn runs on the goroutine that changed the identity, before that call returns.
func (s *Store) Subscribe(fn Listener) func() {
	s.subMu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(id *model.Identity) {
	s.subMu.Lock()
	fns := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		if id == nil {
			fn(model.Identity{}, false)
		} else {
			fn(*id, true)
		}
	}
}

func (s *Store) set(id *model.Identity) {
	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
	s.notify(id)
}

// Restore loads the persisted identity. Missing or malformed data leaves the
// session signed out; it never fails.
func (s *Store) Restore(ctx context.Context) (model.Identity, bool) {
	raw, err := s.storage.Get(ctx, Key)
	if errors.Is(err, store.ErrNotFound) {
		return model.Identity{}, false
	}
	if err != nil {
		s.log.WithError(err).Warn("session: read stored identity")
		return model.Identity{}, false
	}

	var id model.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		s.log.WithError(err).Warn("session: stored identity is not valid json")
		return model.Identity{}, false
	}
	if id.ID == "" || !id.Role.Valid() {
		s.log.WithFields(logrus.Fields{"id": id.ID, "role": id.Role}).Warn("session: stored identity rejected")
		return model.Identity{}, false
	}

	s.set(&id)
	s.log.WithFields(logrus.Fields{"user": id.ID, "role": id.Role}).Debug("session restored")
	return id, true
}

func (s *Store) Login(ctx context.Context, email, secret string, role model.Role) (model.Identity, error) {
	return s.authenticate(ctx, backend.Credentials{
		Email:  email,
		Secret: secret,
		Role:   role,
	}, ErrLoginFailed)
}

func (s *Store) Register(ctx context.Context, name, email, secret string, role model.Role) (model.Identity, error) {
	return s.authenticate(ctx, backend.Credentials{
		Name:     name,
		Email:    email,
		Secret:   secret,
		Role:     role,
		Register: true,
	}, ErrRegistrationFailed)
}

func (s *Store) authenticate(ctx context.Context, c backend.Credentials, failed error) (model.Identity, error) {
	if !c.Role.Valid() {
		return model.Identity{}, fmt.Errorf("%w: %w: %q", failed, model.ErrUnknownRole, c.Role)
	}

	var id model.Identity
	err := s.guard.Do(func() error {
		got, err := s.auth.Authenticate(ctx, c)
		if err != nil {
			return fmt.Errorf("%w: %w", failed, err)
		}
		raw, err := json.Marshal(got)
		if err != nil {
			return fmt.Errorf("%w: %w", failed, err)
		}
		if err := s.storage.Set(ctx, Key, raw); err != nil {
			return fmt.Errorf("%w: persist identity: %w", failed, err)
		}
		id = got
		return nil
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{"email": c.Email, "role": c.Role, "error": err}).Warn("session: sign-in failed")
		return model.Identity{}, err
	}

	s.set(&id)
	s.log.WithFields(logrus.Fields{"user": id.ID, "role": id.Role}).Info("signed in")
	return id, nil
}

// Logout clears the identity from memory and storage. Safe to call repeatedly.
// The in-memory identity is cleared even when storage removal fails.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	was := s.current
	s.current = nil
	s.mu.Unlock()

	if was != nil {
		s.notify(nil)
		s.log.WithField("user", was.ID).Info("signed out")
	}
	if err := s.storage.Delete(ctx, Key); err != nil {
		return fmt.Errorf("remove stored identity: %w", err)
	}
	return nil
}
