package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apiv1 "docspot/internal/api/v1"
	"docspot/internal/appointment"
	"docspot/internal/model"
)

func (h *Handler) Appointments(ctx context.Context, _ *apiv1.AppointmentsRequest) (*apiv1.AppointmentsResponse, error) {
	viewer, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	all, err := h.svc.Appointments(ctx, viewer)
	if err != nil {
		return nil, h.toStatus("appointments", err)
	}
	// never hand out records the caller is not part of
	out := make([]model.Appointment, 0, len(all))
	for _, a := range all {
		if appointment.Visible(viewer, a) {
			out = append(out, a)
		}
	}
	return &apiv1.AppointmentsResponse{Appointments: out}, nil
}

func (h *Handler) SubmitBooking(ctx context.Context, req *apiv1.SubmitBookingRequest) (*apiv1.SubmitBookingResponse, error) {
	patient, err := caller(ctx, model.RolePatient)
	if err != nil {
		return nil, err
	}

	a := req.Appointment
	if a.DoctorID == "" || a.Time == "" {
		return nil, status.Error(codes.InvalidArgument, "doctor and time required")
	}
	if _, err := time.Parse(model.DateLayout, a.Date); err != nil {
		return nil, status.Error(codes.InvalidArgument, "date must be YYYY-MM-DD")
	}

	doc, err := h.svc.Doctor(ctx, a.DoctorID)
	if err != nil {
		return nil, h.toStatus("doctor", err)
	}
	slots, err := h.svc.Slots(ctx, a.DoctorID, a.Date)
	if err != nil {
		return nil, h.toStatus("slots", err)
	}

	// patient, fee and location come from the caller and the catalog, never the request
	b := appointment.Booking{
		ID:        a.ID,
		Patient:   patient,
		Doctor:    doc,
		Date:      a.Date,
		Time:      a.Time,
		Reason:    a.Reason,
		Documents: a.Documents,
		Slots:     slots,
	}
	if err := b.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	a = b.Record(b.ID, time.Now())

	if err := h.svc.SubmitBooking(ctx, a); err != nil {
		return nil, h.toStatus("submit_booking", err)
	}
	h.log.WithFields(logrus.Fields{"appointment": a.ID, "patient": patient.ID, "doctor": a.DoctorID}).Info("booking submitted")
	return &apiv1.SubmitBookingResponse{}, nil
}

func (h *Handler) DoctorStats(ctx context.Context, _ *apiv1.DoctorStatsRequest) (*apiv1.DoctorStatsResponse, error) {
	viewer, err := caller(ctx, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	st, err := h.svc.DoctorStats(ctx, viewer)
	if err != nil {
		return nil, h.toStatus("doctor_stats", err)
	}
	return &apiv1.DoctorStatsResponse{Stats: st}, nil
}

func (h *Handler) AdminOverview(ctx context.Context, _ *apiv1.AdminOverviewRequest) (*apiv1.AdminOverviewResponse, error) {
	viewer, err := caller(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	st, apps, err := h.svc.AdminOverview(ctx, viewer)
	if err != nil {
		return nil, h.toStatus("admin_overview", err)
	}
	return &apiv1.AdminOverviewResponse{Stats: st, Applications: apps}, nil
}

func (h *Handler) ReviewApplication(ctx context.Context, req *apiv1.ReviewApplicationRequest) (*apiv1.ReviewApplicationResponse, error) {
	viewer, err := caller(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	if err := h.svc.ReviewApplication(ctx, viewer, req.ID, req.Approve); err != nil {
		return nil, h.toStatus("review_application", err)
	}
	return &apiv1.ReviewApplicationResponse{}, nil
}
