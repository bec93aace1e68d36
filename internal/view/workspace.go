// Package view holds the per-role screens of the booking client. Screens read
// from the session, the doctor directory and the appointment registry owned by
// a Workspace and never keep copies of their own.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"docspot/internal/appointment"
	"docspot/internal/backend"
	"docspot/internal/directory"
	"docspot/internal/inflight"
	"docspot/internal/model"
	"docspot/internal/session"
)

var (
	ErrUnauthenticated = errors.New("please log in first")
	ErrForbidden       = errors.New("not available for your role")
	ErrRemote          = errors.New("request failed, please try again")
)

// Workspace is the composition root of one client session. Any identity change
// drops the registry and admin review state so no screen can show data that
// belongs to the previous viewer.
type Workspace struct {
	session *session.Store
	backend backend.Service
	log     *logrus.Logger

	booking *inflight.Guard
	fetches atomic.Int32

	mu          sync.Mutex
	dir         *directory.Directory
	registry    *appointment.Registry
	registryFor string // viewer the registry was loaded for
	review      *adminState
	reviewFor   string
	unsub       func()
}

func NewWorkspace(s *session.Store, b backend.Service, log *logrus.Logger) *Workspace {
	if log == nil {
		log = logrus.New()
	}
	w := &Workspace{
		session: s,
		backend: b,
		log:     log,
		booking: inflight.New(),
	}
	w.unsub = s.Subscribe(w.reset)
	return w
}

// Close detaches the workspace from the session.
func (w *Workspace) Close() { w.unsub() }

func (w *Workspace) Session() *session.Store { return w.session }

// Loading reports whether any backend exchange started by this workspace or
// its session is still pending.
func (w *Workspace) Loading() bool {
	return w.fetches.Load() > 0 || w.session.Loading() || w.booking.Busy()
}

func (w *Workspace) reset(id model.Identity, ok bool) {
	w.mu.Lock()
	w.registry = nil
	w.registryFor = ""
	w.review = nil
	w.reviewFor = ""
	w.mu.Unlock()
	w.log.WithFields(logrus.Fields{"user": id.ID, "signed_in": ok}).Debug("workspace reset")
}

// fetch wraps one backend exchange: it counts toward Loading and turns
// transport failures into ErrRemote.
func (w *Workspace) fetch(op string, fn func() error) error {
	w.fetches.Add(1)
	defer w.fetches.Add(-1)
	if err := fn(); err != nil {
		w.log.WithFields(logrus.Fields{"op": op, "error": err}).Warn("backend call failed")
		if errors.Is(err, backend.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}
	return nil
}

// viewer returns the signed-in identity, checking it holds one of roles when
// any are given.
func (w *Workspace) viewer(roles ...model.Role) (model.Identity, error) {
	id, ok := w.session.Current()
	if !ok {
		return model.Identity{}, ErrUnauthenticated
	}
	if len(roles) == 0 {
		return id, nil
	}
	for _, r := range roles {
		if id.Role == r {
			return id, nil
		}
	}
	return model.Identity{}, fmt.Errorf("%w: %s", ErrForbidden, id.Role)
}

func (w *Workspace) directory(ctx context.Context) (*directory.Directory, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dir != nil {
		return w.dir, nil
	}
	var docs []model.Doctor
	if err := w.fetch("doctors", func() (err error) {
		docs, err = w.backend.Doctors(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	w.dir = directory.New(docs)
	return w.dir, nil
}

// appointments returns the registry for viewer, loading it on first use or
// when it was loaded for someone else.
func (w *Workspace) appointments(ctx context.Context, viewer model.Identity) (*appointment.Registry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.registry != nil && w.registryFor == viewer.ID {
		return w.registry, nil
	}
	var seed []model.Appointment
	if err := w.fetch("appointments", func() (err error) {
		seed, err = w.backend.Appointments(ctx, viewer)
		return err
	}); err != nil {
		return nil, err
	}
	// the backend is not trusted to scope records; ListFor filters again
	w.registry = appointment.New(seed)
	w.registryFor = viewer.ID
	return w.registry, nil
}

// owned loads the registry and checks that id is visible to viewer.
func (w *Workspace) owned(ctx context.Context, viewer model.Identity, id string) (*appointment.Registry, error) {
	reg, err := w.appointments(ctx, viewer)
	if err != nil {
		return nil, err
	}
	a, ok := reg.Get(id)
	if !ok || !appointment.Visible(viewer, a) {
		return nil, fmt.Errorf("%w: %s", appointment.ErrNotFound, id)
	}
	return reg, nil
}

func (w *Workspace) transition(ctx context.Context, viewer model.Identity, id string, to model.Status) (model.Appointment, error) {
	reg, err := w.owned(ctx, viewer, id)
	if err != nil {
		return model.Appointment{}, err
	}
	a, err := reg.Transition(id, to)
	if err != nil {
		return model.Appointment{}, err
	}
	w.log.WithFields(logrus.Fields{"appointment": id, "status": to, "user": viewer.ID}).Info("appointment updated")
	return a, nil
}

func (w *Workspace) PatientDashboard() PatientDashboard { return PatientDashboard{w} }
func (w *Workspace) DoctorProfile() DoctorProfile       { return DoctorProfile{w} }
func (w *Workspace) Booking() Booking                   { return Booking{w} }
func (w *Workspace) History() History                   { return History{w} }
func (w *Workspace) DoctorDashboard() DoctorDashboard   { return DoctorDashboard{w} }
func (w *Workspace) AdminDashboard() AdminDashboard     { return AdminDashboard{w} }
func (w *Workspace) Profile() Profile                   { return Profile{w} }
