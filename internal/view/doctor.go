package view

import (
	"context"
	"time"

	"docspot/internal/appointment"
	"docspot/internal/model"
)

type DoctorDashboard struct{ ws *Workspace }

type DoctorDashboardView struct {
	Stats        model.DoctorStats
	Date         string
	Appointments []model.Appointment
}

// Render shows the stats and the appointments on date, today when empty.
func (d DoctorDashboard) Render(ctx context.Context, date string) (DoctorDashboardView, error) {
	viewer, err := d.ws.viewer(model.RoleDoctor)
	if err != nil {
		return DoctorDashboardView{}, err
	}
	if date == "" {
		date = time.Now().Format(model.DateLayout)
	}
	v := DoctorDashboardView{Date: date}
	if err := d.ws.fetch("doctor_stats", func() (err error) {
		v.Stats, err = d.ws.backend.DoctorStats(ctx, viewer)
		return err
	}); err != nil {
		return DoctorDashboardView{}, err
	}
	reg, err := d.ws.appointments(ctx, viewer)
	if err != nil {
		return DoctorDashboardView{}, err
	}
	v.Appointments = reg.ListFor(viewer, appointment.Filter{Date: date})
	return v, nil
}

// Confirm accepts a pending request.
func (d DoctorDashboard) Confirm(ctx context.Context, id string) (model.Appointment, error) {
	return d.move(ctx, id, model.StatusScheduled)
}

func (d DoctorDashboard) Complete(ctx context.Context, id string) (model.Appointment, error) {
	return d.move(ctx, id, model.StatusCompleted)
}

func (d DoctorDashboard) Cancel(ctx context.Context, id string) (model.Appointment, error) {
	return d.move(ctx, id, model.StatusCancelled)
}

func (d DoctorDashboard) move(ctx context.Context, id string, to model.Status) (model.Appointment, error) {
	viewer, err := d.ws.viewer(model.RoleDoctor)
	if err != nil {
		return model.Appointment{}, err
	}
	return d.ws.transition(ctx, viewer, id, to)
}
