// Package backend is the boundary every remote call of the booking client goes
// through. Simulated stands in for the real API; remote.Client speaks to a
// server over gRPC. Callers depend only on Service.
package backend

import (
	"context"
	"errors"

	"docspot/internal/model"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("service unavailable")
)

// Credentials carry a login or registration. Secret is accepted but not
// verified by the simulated backend.
type Credentials struct {
	Name     string
	Email    string
	Secret   string
	Role     model.Role
	Register bool
}

type Service interface {
	Authenticate(ctx context.Context, c Credentials) (model.Identity, error)
	Doctors(ctx context.Context) ([]model.Doctor, error)
	Doctor(ctx context.Context, id string) (model.Doctor, error)
	Slots(ctx context.Context, doctorID, date string) ([]model.Slot, error)
	Appointments(ctx context.Context, viewer model.Identity) ([]model.Appointment, error)
	SubmitBooking(ctx context.Context, a model.Appointment) error
	DoctorStats(ctx context.Context, viewer model.Identity) (model.DoctorStats, error)
	AdminOverview(ctx context.Context, viewer model.Identity) (model.AdminStats, []model.Application, error)
	ReviewApplication(ctx context.Context, viewer model.Identity, id string, approve bool) error
}
