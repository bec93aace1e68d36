package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docspot/internal/model"
)

const (
	DefaultLatency = time.Second
	DefaultAvatar  = "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&dpr=1"
)

// Simulated answers every call from static reference data after a fixed delay.
// The delay is not cancellable once a call has started.
type Simulated struct {
	latency time.Duration
	now     func() time.Time
	fail    func(op string) error
	log     *logrus.Logger
}

type Option func(*Simulated)

func WithLatency(d time.Duration) Option { return func(s *Simulated) { s.latency = d } }

func WithClock(now func() time.Time) Option { return func(s *Simulated) { s.now = now } }

// WithFailure makes op fail with the returned error when it is non-nil.
func WithFailure(fn func(op string) error) Option { return func(s *Simulated) { s.fail = fn } }

func WithLogger(l *logrus.Logger) Option { return func(s *Simulated) { s.log = l } }

func NewSimulated(opts ...Option) *Simulated {
	s := &Simulated{latency: DefaultLatency, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logrus.New()
	}
	return s
}

var _ Service = (*Simulated)(nil)

func (s *Simulated) exchange(op string, d time.Duration) error {
	s.log.WithFields(logrus.Fields{"op": op, "latency": d}).Debug("simulated call")
	time.Sleep(d)
	if s.fail != nil {
		if err := s.fail(op); err != nil {
			s.log.WithFields(logrus.Fields{"op": op, "error": err}).Warn("simulated call failed")
			return err
		}
	}
	return nil
}

func (s *Simulated) Authenticate(_ context.Context, c Credentials) (model.Identity, error) {
	if err := s.exchange("authenticate", s.latency); err != nil {
		return model.Identity{}, err
	}
	if !c.Role.Valid() {
		return model.Identity{}, fmt.Errorf("%w: %q", model.ErrUnknownRole, c.Role)
	}
	name := c.Name
	if !c.Register {
		name, _, _ = strings.Cut(c.Email, "@")
	}
	return model.Identity{
		ID:     uuid.New().String(),
		Name:   name,
		Email:  c.Email,
		Role:   c.Role,
		Avatar: DefaultAvatar,
	}, nil
}

func (s *Simulated) Doctors(context.Context) ([]model.Doctor, error) {
	if err := s.exchange("doctors", s.latency); err != nil {
		return nil, err
	}
	return catalog(), nil
}

func (s *Simulated) Doctor(_ context.Context, id string) (model.Doctor, error) {
	if err := s.exchange("doctor", s.latency); err != nil {
		return model.Doctor{}, err
	}
	for _, d := range catalog() {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Doctor{}, fmt.Errorf("doctor %s: %w", id, ErrNotFound)
}

func (s *Simulated) Slots(_ context.Context, doctorID, _ string) ([]model.Slot, error) {
	if err := s.exchange("slots", 0); err != nil {
		return nil, err
	}
	for _, d := range catalog() {
		if d.ID == doctorID {
			return slots(), nil
		}
	}
	return nil, fmt.Errorf("doctor %s: %w", doctorID, ErrNotFound)
}

func (s *Simulated) Appointments(_ context.Context, viewer model.Identity) ([]model.Appointment, error) {
	if err := s.exchange("appointments", s.latency); err != nil {
		return nil, err
	}
	switch viewer.Role {
	case model.RolePatient:
		return patientHistory(viewer), nil
	case model.RoleDoctor:
		return doctorSchedule(viewer, s.now()), nil
	}
	return nil, nil
}

// booking submission takes twice the usual round trip
func (s *Simulated) SubmitBooking(_ context.Context, a model.Appointment) error {
	if err := s.exchange("submit_booking", 2*s.latency); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"appointment": a.ID,
		"doctor":      a.DoctorID,
		"date":        a.Date,
		"time":        a.Time,
	}).Info("booking accepted")
	return nil
}

func (s *Simulated) DoctorStats(context.Context, model.Identity) (model.DoctorStats, error) {
	if err := s.exchange("doctor_stats", s.latency); err != nil {
		return model.DoctorStats{}, err
	}
	return model.DoctorStats{
		TotalPatients:         245,
		TodayAppointments:     8,
		MonthlyEarnings:       18500,
		CompletedAppointments: 189,
	}, nil
}

func (s *Simulated) AdminOverview(context.Context, model.Identity) (model.AdminStats, []model.Application, error) {
	if err := s.exchange("admin_overview", s.latency); err != nil {
		return model.AdminStats{}, nil, err
	}
	apps := applications()
	return model.AdminStats{
		TotalPatients:         1250,
		TotalDoctors:          45,
		TotalAppointments:     3420,
		PendingApprovals:      len(apps),
		MonthlyRevenue:        125000,
		CompletedAppointments: 2890,
	}, apps, nil
}

func (s *Simulated) ReviewApplication(_ context.Context, _ model.Identity, id string, approve bool) error {
	if err := s.exchange("review_application", 0); err != nil {
		return err
	}
	for _, a := range applications() {
		if a.ID == id {
			s.log.WithFields(logrus.Fields{"application": id, "approved": approve}).Info("application reviewed")
			return nil
		}
	}
	return fmt.Errorf("application %s: %w", id, ErrNotFound)
}
