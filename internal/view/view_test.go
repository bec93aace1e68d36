package view_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/appointment"
	"docspot/internal/backend"
	"docspot/internal/inflight"
	"docspot/internal/model"
	"docspot/internal/session"
	"docspot/internal/store"
	"docspot/internal/view"
)

func setup(t *testing.T, opts ...backend.Option) (*view.Workspace, *session.Store) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	be := backend.NewSimulated(append([]backend.Option{backend.WithLatency(0), backend.WithLogger(log)}, opts...)...)
	s := session.New(store.NewMemory(), be, log)
	ws := view.NewWorkspace(s, be, log)
	t.Cleanup(ws.Close)
	return ws, s
}

func login(t *testing.T, s *session.Store, role model.Role) model.Identity {
	t.Helper()
	id, err := s.Login(context.Background(), "user@docspot.io", "pw", role)
	require.NoError(t, err)
	return id
}

func TestScreensRequireLogin(t *testing.T) {
	ws, _ := setup(t)
	ctx := context.Background()

	_, err := ws.PatientDashboard().Render(ctx, "", "")
	assert.ErrorIs(t, err, view.ErrUnauthenticated)
	_, err = ws.History().Render(ctx, "", "")
	assert.ErrorIs(t, err, view.ErrUnauthenticated)
	_, err = ws.Booking().Form(ctx, "1", "")
	assert.ErrorIs(t, err, view.ErrUnauthenticated)
	_, err = ws.Profile().Render()
	assert.ErrorIs(t, err, view.ErrUnauthenticated)

	// profiles are public
	doc, err := ws.DoctorProfile().Render(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Johnson", doc.Name)
}

func TestRoleGates(t *testing.T) {
	ws, s := setup(t)
	ctx := context.Background()
	login(t, s, model.RolePatient)

	_, err := ws.DoctorDashboard().Render(ctx, "")
	assert.ErrorIs(t, err, view.ErrForbidden)
	_, err = ws.AdminDashboard().Render(ctx)
	assert.ErrorIs(t, err, view.ErrForbidden)
}

func TestPatientDashboardSearch(t *testing.T) {
	ws, s := setup(t)
	login(t, s, model.RolePatient)

	v, err := ws.PatientDashboard().Render(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "Welcome back, user!", v.Welcome)
	assert.Len(t, v.Doctors, 6)
	assert.Equal(t, "All Specialties", v.Specialty)

	v, err = ws.PatientDashboard().Render(context.Background(), "", "Neurology")
	require.NoError(t, err)
	require.Len(t, v.Doctors, 1)
	assert.Equal(t, "Dr. Emily Rodriguez", v.Doctors[0].Name)
}

func TestBookingFlow(t *testing.T) {
	ws, s := setup(t)
	ctx := context.Background()
	me := login(t, s, model.RolePatient)

	form, err := ws.Booking().Form(ctx, "1", "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, 150.0, form.Doctor.Fee)
	assert.Len(t, form.Slots, 12)
	assert.False(t, form.Submitting)

	a, err := ws.Booking().Submit(ctx, view.BookingForm{
		DoctorID: "1", Date: "2024-02-01", Time: "10:00 AM", Reason: "checkup",
		Documents: []string{"referral.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, a.Status)
	assert.Equal(t, 150.0, a.Fee)
	assert.Equal(t, me.ID, a.PatientID)
	assert.Equal(t, []string{"referral.pdf"}, a.Documents)

	h, err := ws.History().Render(ctx, "pending", "checkup")
	require.NoError(t, err)
	require.Len(t, h.Appointments, 1)
	assert.Equal(t, a.ID, h.Appointments[0].ID)

	all, err := ws.History().Render(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all.Appointments, 5)
	assert.Equal(t, a.ID, all.Appointments[4].ID)
}

func TestBookingValidation(t *testing.T) {
	ws, s := setup(t)
	ctx := context.Background()
	login(t, s, model.RolePatient)

	_, err := ws.Booking().Submit(ctx, view.BookingForm{DoctorID: "1", Date: "2024-02-01", Time: "09:30 AM", Reason: "x"})
	assert.ErrorIs(t, err, appointment.ErrSlotUnavailable)
	_, err = ws.Booking().Submit(ctx, view.BookingForm{DoctorID: "1", Date: "2024-02-01", Time: "10:00 AM", Reason: "  "})
	assert.ErrorIs(t, err, appointment.ErrReasonRequired)
	_, err = ws.Booking().Submit(ctx, view.BookingForm{DoctorID: "42", Date: "2024-02-01", Time: "10:00 AM", Reason: "x"})
	assert.ErrorIs(t, err, backend.ErrNotFound)

	h, err := ws.History().Render(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, h.Appointments, 4)
}

func TestBookingOnlyForPatients(t *testing.T) {
	ws, s := setup(t)
	login(t, s, model.RoleDoctor)
	_, err := ws.Booking().Submit(context.Background(), view.BookingForm{DoctorID: "1", Date: "2024-02-01", Time: "10:00 AM", Reason: "x"})
	assert.ErrorIs(t, err, view.ErrForbidden)
}

func TestBookingSubmitFailureAddsNothing(t *testing.T) {
	ws, s := setup(t, backend.WithFailure(func(op string) error {
		if op == "submit_booking" {
			return errors.New("gateway timeout")
		}
		return nil
	}))
	ctx := context.Background()
	login(t, s, model.RolePatient)

	_, err := ws.Booking().Submit(ctx, view.BookingForm{DoctorID: "1", Date: "2024-02-01", Time: "10:00 AM", Reason: "checkup"})
	assert.ErrorIs(t, err, view.ErrRemote)

	h, err := ws.History().Render(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, h.Appointments, 4)
}

func TestDoubleSubmitRejected(t *testing.T) {
	slow, s := setup(t, backend.WithLatency(50*time.Millisecond))
	ctx := context.Background()
	login(t, s, model.RolePatient)

	form := view.BookingForm{DoctorID: "1", Date: "2024-02-01", Time: "10:00 AM", Reason: "checkup"}
	done := make(chan error, 1)
	go func() {
		_, err := slow.Booking().Submit(ctx, form)
		done <- err
	}()
	require.Eventually(t, slow.Loading, time.Second, time.Millisecond)

	_, err := slow.Booking().Submit(ctx, form)
	assert.ErrorIs(t, err, inflight.ErrBusy)
	require.NoError(t, <-done)

	h, err := slow.History().Render(ctx, "pending", "checkup")
	require.NoError(t, err)
	assert.Len(t, h.Appointments, 1)
}

func TestHistoryFilters(t *testing.T) {
	ws, s := setup(t)
	ctx := context.Background()
	login(t, s, model.RolePatient)

	v, err := ws.History().Render(ctx, "all", "")
	require.NoError(t, err)
	assert.Len(t, v.Appointments, 4)
	assert.Equal(t, []string{"all", "scheduled", "completed", "cancelled", "pending"}, v.Options)

	v, err = ws.History().Render(ctx, "completed", "")
	require.NoError(t, err)
	require.Len(t, v.Appointments, 1)
	assert.Equal(t, "Dr. Michael Chen", v.Appointments[0].DoctorName)

	v, err = ws.History().Render(ctx, "", "cardio")
	require.NoError(t, err)
	assert.Len(t, v.Appointments, 2)

	_, err = ws.History().Render(ctx, "lost", "")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}

func TestHistoryCancel(t *testing.T) {
	ws, s := setup(t)
	ctx := context.Background()
	login(t, s, model.RolePatient)

	a, err := ws.History().Cancel(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, a.Status)

	_, err = ws.History().Cancel(ctx, "1")
	assert.ErrorIs(t, err, appointment.ErrInvalidTransition)

	_, err = ws.History().Cancel(ctx, "2")
	assert.ErrorIs(t, err, appointment.ErrInvalidTransition)

	_, err = ws.History().Cancel(ctx, "nope")
	assert.ErrorIs(t, err, appointment.ErrNotFound)
}

func TestDoctorDashboard(t *testing.T) {
	ws, s := setup(t)
	ctx := context.Background()
	me := login(t, s, model.RoleDoctor)

	v, err := ws.DoctorDashboard().Render(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 245, v.Stats.TotalPatients)
	require.Len(t, v.Appointments, 4)
	for _, a := range v.Appointments {
		assert.Equal(t, me.ID, a.DoctorID)
	}

	// seed 2 is pending
	_, err = ws.DoctorDashboard().Complete(ctx, "2")
	assert.ErrorIs(t, err, appointment.ErrInvalidTransition)
	a, err := ws.DoctorDashboard().Confirm(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusScheduled, a.Status)
	a, err = ws.DoctorDashboard().Complete(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, a.Status)

	a, err = ws.DoctorDashboard().Cancel(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, a.Status)

	v, err = ws.DoctorDashboard().Render(ctx, "1999-01-01")
	require.NoError(t, err)
	assert.Empty(t, v.Appointments)
}

func TestAdminDashboard(t *testing.T) {
	ws, s := setup(t)
	ctx := context.Background()
	login(t, s, model.RoleAdmin)

	v, err := ws.AdminDashboard().Render(ctx)
	require.NoError(t, err)
	require.Len(t, v.Pending, 3)
	assert.Equal(t, 3, v.Stats.PendingApprovals)

	require.NoError(t, ws.AdminDashboard().Approve(ctx, "1"))
	require.NoError(t, ws.AdminDashboard().Reject(ctx, "3"))
	assert.ErrorIs(t, ws.AdminDashboard().Approve(ctx, "1"), backend.ErrNotFound)

	v, err = ws.AdminDashboard().Render(ctx)
	require.NoError(t, err)
	require.Len(t, v.Pending, 1)
	assert.Equal(t, "2", v.Pending[0].ID)
	assert.Equal(t, 1, v.Stats.PendingApprovals)

	_, err = ws.History().Render(ctx, "", "")
	assert.ErrorIs(t, err, view.ErrForbidden)
}

func TestIdentityChangeDropsState(t *testing.T) {
	ws, s := setup(t)
	ctx := context.Background()

	first := login(t, s, model.RolePatient)
	_, err := ws.History().Cancel(ctx, "1")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	_, err = ws.History().Render(ctx, "", "")
	assert.ErrorIs(t, err, view.ErrUnauthenticated)

	second := login(t, s, model.RolePatient)
	require.NotEqual(t, first.ID, second.ID)
	v, err := ws.History().Render(ctx, "scheduled", "")
	require.NoError(t, err)
	require.Len(t, v.Appointments, 1)
	assert.Equal(t, second.ID, v.Appointments[0].PatientID)

	// switching role re-gates immediately
	_, err = s.Login(ctx, "doc@docspot.io", "pw", model.RoleDoctor)
	require.NoError(t, err)
	_, err = ws.Booking().Submit(ctx, view.BookingForm{DoctorID: "1", Date: "2024-02-01", Time: "10:00 AM", Reason: "x"})
	assert.ErrorIs(t, err, view.ErrForbidden)
	d, err := ws.DoctorDashboard().Render(ctx, "")
	require.NoError(t, err)
	assert.Len(t, d.Appointments, 4)
}

func TestProfile(t *testing.T) {
	tests := []struct {
		role model.Role
		want string
	}{
		{model.RolePatient, "/dashboard"},
		{model.RoleDoctor, "/doctor-dashboard"},
		{model.RoleAdmin, "/admin"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			ws, s := setup(t)
			id := login(t, s, tt.role)
			p, err := ws.Profile().Render()
			require.NoError(t, err)
			assert.Equal(t, id, p.Identity)
			assert.Equal(t, tt.want, p.Dashboard)
			assert.Equal(t, backend.DefaultAvatar, p.Avatar)
		})
	}
}

func TestRemoteFailureIsGeneric(t *testing.T) {
	ws, s := setup(t, backend.WithFailure(func(op string) error {
		if op == "doctors" {
			return errors.New("connection reset")
		}
		return nil
	}))
	login(t, s, model.RolePatient)
	_, err := ws.PatientDashboard().Render(context.Background(), "", "")
	assert.ErrorIs(t, err, view.ErrRemote)
}
