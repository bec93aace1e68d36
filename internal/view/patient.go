package view

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docspot/internal/appointment"
	"docspot/internal/backend"
	"docspot/internal/directory"
	"docspot/internal/model"
)

type PatientDashboard struct{ ws *Workspace }

type PatientDashboardView struct {
	Welcome     string
	Query       string
	Specialty   string
	Specialties []string
	Doctors     []model.Doctor
}

// Render searches the directory for any signed-in user.
func (p PatientDashboard) Render(ctx context.Context, query, specialty string) (PatientDashboardView, error) {
	viewer, err := p.ws.viewer()
	if err != nil {
		return PatientDashboardView{}, err
	}
	dir, err := p.ws.directory(ctx)
	if err != nil {
		return PatientDashboardView{}, err
	}
	if specialty == "" {
		specialty = directory.AllSpecialties
	}
	return PatientDashboardView{
		Welcome:     fmt.Sprintf("Welcome back, %s!", viewer.Name),
		Query:       query,
		Specialty:   specialty,
		Specialties: directory.Specialties(),
		Doctors:     dir.Search(query, specialty),
	}, nil
}

type DoctorProfile struct{ ws *Workspace }

// Render is public; no sign-in is needed to read a profile.
func (d DoctorProfile) Render(ctx context.Context, id string) (model.Doctor, error) {
	var doc model.Doctor
	err := d.ws.fetch("doctor", func() (err error) {
		doc, err = d.ws.backend.Doctor(ctx, id)
		return err
	})
	return doc, err
}

type Booking struct{ ws *Workspace }

type BookingForm struct {
	DoctorID  string
	Date      string
	Time      string
	Reason    string
	Documents []string
}

type BookingView struct {
	Doctor     model.Doctor
	Date       string
	Slots      []model.Slot
	Submitting bool
}

// Form loads the doctor and the slots for date, today when empty.
func (b Booking) Form(ctx context.Context, doctorID, date string) (BookingView, error) {
	if _, err := b.ws.viewer(); err != nil {
		return BookingView{}, err
	}
	if date == "" {
		date = time.Now().Format(model.DateLayout)
	}
	v := BookingView{Date: date, Submitting: b.ws.booking.Busy()}
	if err := b.ws.fetch("doctor", func() (err error) {
		v.Doctor, err = b.ws.backend.Doctor(ctx, doctorID)
		return err
	}); err != nil {
		return BookingView{}, err
	}
	if err := b.ws.fetch("slots", func() (err error) {
		v.Slots, err = b.ws.backend.Slots(ctx, doctorID, date)
		return err
	}); err != nil {
		return BookingView{}, err
	}
	return v, nil
}

// Submit books f for the signed-in patient. A second Submit while one is
// pending fails with inflight.ErrBusy.
func (b Booking) Submit(ctx context.Context, f BookingForm) (model.Appointment, error) {
	viewer, err := b.ws.viewer(model.RolePatient)
	if err != nil {
		return model.Appointment{}, err
	}

	var out model.Appointment
	err = b.ws.booking.Do(func() error {
		dir, err := b.ws.directory(ctx)
		if err != nil {
			return err
		}
		doc, ok := dir.Get(f.DoctorID)
		if !ok {
			return fmt.Errorf("doctor %s: %w", f.DoctorID, backend.ErrNotFound)
		}
		var slots []model.Slot
		if err := b.ws.fetch("slots", func() (err error) {
			slots, err = b.ws.backend.Slots(ctx, f.DoctorID, f.Date)
			return err
		}); err != nil {
			return err
		}

		req := appointment.Booking{
			ID:        uuid.New().String(),
			Patient:   viewer,
			Doctor:    doc,
			Date:      f.Date,
			Time:      f.Time,
			Reason:    f.Reason,
			Documents: f.Documents,
			Slots:     slots,
		}
		if err := req.Validate(); err != nil {
			return err
		}
		reg, err := b.ws.appointments(ctx, viewer)
		if err != nil {
			return err
		}
		if err := b.ws.fetch("submit_booking", func() error {
			return b.ws.backend.SubmitBooking(ctx, req.Record(req.ID, time.Now()))
		}); err != nil {
			return err
		}
		id, err := reg.Create(req)
		if err != nil {
			return err
		}
		out, _ = reg.Get(id)
		return nil
	})
	return out, err
}

type History struct{ ws *Workspace }

// StatusAll is the history filter value that shows every status.
const StatusAll = "all"

type HistoryView struct {
	Status       string
	Query        string
	Options      []string
	Appointments []model.Appointment
}

func (h History) Render(ctx context.Context, status, query string) (HistoryView, error) {
	viewer, err := h.ws.viewer(model.RolePatient, model.RoleDoctor)
	if err != nil {
		return HistoryView{}, err
	}
	f := appointment.Filter{Text: query}
	if status == "" {
		status = StatusAll
	}
	if status != StatusAll {
		if f.Status, err = model.ParseStatus(status); err != nil {
			return HistoryView{}, err
		}
	}
	reg, err := h.ws.appointments(ctx, viewer)
	if err != nil {
		return HistoryView{}, err
	}

	opts := []string{StatusAll}
	for _, s := range model.Statuses {
		opts = append(opts, string(s))
	}
	return HistoryView{
		Status:       status,
		Query:        query,
		Options:      opts,
		Appointments: reg.ListFor(viewer, f),
	}, nil
}

func (h History) Cancel(ctx context.Context, id string) (model.Appointment, error) {
	viewer, err := h.ws.viewer(model.RolePatient, model.RoleDoctor)
	if err != nil {
		return model.Appointment{}, err
	}
	return h.ws.transition(ctx, viewer, id, model.StatusCancelled)
}
