package session_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/backend"
	"docspot/internal/inflight"
	"docspot/internal/model"
	"docspot/internal/session"
	"docspot/internal/store"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func setup(t *testing.T) (*session.Store, store.Storage) {
	t.Helper()
	st := store.NewMemory()
	return session.New(st, backend.NewSimulated(backend.WithLatency(0)), quietLogger()), st
}

// reload simulates a process restart over the same durable storage.
func reload(st store.Storage) *session.Store {
	return session.New(st, backend.NewSimulated(backend.WithLatency(0)), quietLogger())
}

func TestLoginRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, role := range []model.Role{model.RolePatient, model.RoleDoctor, model.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			s, st := setup(t)
			id, err := s.Login(ctx, "john.smith@email.com", "pw", role)
			require.NoError(t, err)
			assert.Equal(t, "john.smith", id.Name)

			got, ok := reload(st).Restore(ctx)
			require.True(t, ok)
			assert.Equal(t, id, got)
		})
	}
}

func TestRegisterRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, st := setup(t)
	id, err := s.Register(ctx, "John Smith", "john@email.com", "pw", model.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", id.Name)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, id, cur)

	r := reload(st)
	got, ok := r.Restore(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
	cur, ok = r.Current()
	require.True(t, ok)
	assert.Equal(t, id, cur)
}

func TestLogoutThenRestore(t *testing.T) {
	ctx := context.Background()
	s, st := setup(t)
	_, err := s.Login(ctx, "a@b.c", "pw", model.RolePatient)
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	_, ok := s.Current()
	assert.False(t, ok)

	_, ok = reload(st).Restore(ctx)
	assert.False(t, ok)

	_, err = st.Get(ctx, session.Key)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLogoutIdempotent(t *testing.T) {
	s, _ := setup(t)
	calls := 0
	s.Subscribe(func(model.Identity, bool) { calls++ })
	require.NoError(t, s.Logout(context.Background()))
	require.NoError(t, s.Logout(context.Background()))
	assert.Zero(t, calls)
}

func TestRestoreMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"id":`},
		{"unknown role", `{"id":"1","name":"x","email":"x@y","role":"nurse"}`},
		{"missing id", `{"name":"x","email":"x@y","role":"patient"}`},
		{"wrong shape", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemory()
			require.NoError(t, st.Set(context.Background(), session.Key, []byte(tt.raw)))
			s := reload(st)
			_, ok := s.Restore(context.Background())
			assert.False(t, ok)
			_, ok = s.Current()
			assert.False(t, ok)
		})
	}
}

func TestRestoreOptionalAvatar(t *testing.T) {
	st := store.NewMemory()
	raw := `{"id":"abc","name":"Ann","email":"ann@x.io","role":"admin"}`
	require.NoError(t, st.Set(context.Background(), session.Key, []byte(raw)))
	id, ok := reload(st).Restore(context.Background())
	require.True(t, ok)
	assert.Equal(t, model.Identity{ID: "abc", Name: "Ann", Email: "ann@x.io", Role: model.RoleAdmin}, id)
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t)

	type event struct {
		id model.Identity
		ok bool
	}
	var a, b []event
	s.Subscribe(func(id model.Identity, ok bool) { a = append(a, event{id, ok}) })
	cancel := s.Subscribe(func(id model.Identity, ok bool) {
		// the store already reports the new state to listeners
		cur, curOK := s.Current()
		assert.Equal(t, ok, curOK)
		assert.Equal(t, id, cur)
		b = append(b, event{id, ok})
	})

	id, err := s.Login(ctx, "a@b.c", "pw", model.RolePatient)
	require.NoError(t, err)
	require.Len(t, a, 1)
	assert.Equal(t, event{id, true}, a[0])
	require.Len(t, b, 1)

	cancel()
	require.NoError(t, s.Logout(ctx))
	require.Len(t, a, 2)
	assert.False(t, a[1].ok)
	assert.Len(t, b, 1)
}

type failingAuth struct{ err error }

func (f failingAuth) Authenticate(context.Context, backend.Credentials) (model.Identity, error) {
	return model.Identity{}, f.err
}

func TestLoginFailureLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	s := session.New(st, failingAuth{errors.New("upstream 503")}, quietLogger())

	_, err := s.Login(ctx, "a@b.c", "pw", model.RolePatient)
	assert.ErrorIs(t, err, session.ErrLoginFailed)
	_, ok := s.Current()
	assert.False(t, ok)
	_, err = st.Get(ctx, session.Key)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Register(ctx, "A", "a@b.c", "pw", model.RolePatient)
	assert.ErrorIs(t, err, session.ErrRegistrationFailed)
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	s, _ := setup(t)
	_, err := s.Login(context.Background(), "a@b.c", "pw", model.Role("nurse"))
	assert.ErrorIs(t, err, session.ErrLoginFailed)
	assert.ErrorIs(t, err, model.ErrUnknownRole)
}

type blockingAuth struct {
	started chan struct{}
	release chan struct{}
}

func (b blockingAuth) Authenticate(_ context.Context, c backend.Credentials) (model.Identity, error) {
	close(b.started)
	<-b.release
	return model.Identity{ID: "1", Name: "a", Email: c.Email, Role: c.Role}, nil
}

func TestDuplicateLoginRejectedWhileLoading(t *testing.T) {
	ctx := context.Background()
	auth := blockingAuth{started: make(chan struct{}), release: make(chan struct{})}
	s := session.New(store.NewMemory(), auth, quietLogger())

	done := make(chan error, 1)
	go func() {
		_, err := s.Login(ctx, "a@b.c", "pw", model.RolePatient)
		done <- err
	}()
	<-auth.started

	assert.True(t, s.Loading())
	_, err := s.Login(ctx, "a@b.c", "pw", model.RolePatient)
	assert.ErrorIs(t, err, inflight.ErrBusy)
	_, err = s.Register(ctx, "A", "a@b.c", "pw", model.RolePatient)
	assert.ErrorIs(t, err, inflight.ErrBusy)

	close(auth.release)
	require.NoError(t, <-done)
	assert.False(t, s.Loading())
	_, ok := s.Current()
	assert.True(t, ok)
}

type brokenStorage struct{ store.Storage }

func (brokenStorage) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (brokenStorage) Delete(context.Context, string) error        { return errors.New("disk on fire") }

func TestStorageErrorsAreSoft(t *testing.T) {
	ctx := context.Background()
	s := session.New(brokenStorage{store.NewMemory()}, backend.NewSimulated(backend.WithLatency(0)), quietLogger())

	_, ok := s.Restore(ctx)
	assert.False(t, ok)

	_, err := s.Login(ctx, "a@b.c", "pw", model.RolePatient)
	require.NoError(t, err)

	assert.Error(t, s.Logout(ctx))
	_, ok = s.Current()
	assert.False(t, ok)
}
