package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apiv1 "docspot/internal/api/v1"
	"docspot/internal/model"
)

func (h *Handler) Doctors(ctx context.Context, _ *apiv1.DoctorsRequest) (*apiv1.DoctorsResponse, error) {
	docs, err := h.svc.Doctors(ctx)
	if err != nil {
		return nil, h.toStatus("doctors", err)
	}
	return &apiv1.DoctorsResponse{Doctors: docs}, nil
}

func (h *Handler) Doctor(ctx context.Context, req *apiv1.DoctorRequest) (*apiv1.DoctorResponse, error) {
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	d, err := h.svc.Doctor(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus("doctor", err)
	}
	return &apiv1.DoctorResponse{Doctor: d}, nil
}

func (h *Handler) Slots(ctx context.Context, req *apiv1.SlotsRequest) (*apiv1.SlotsResponse, error) {
	if req.DoctorID == "" {
		return nil, status.Error(codes.InvalidArgument, "doctorId required")
	}
	if req.Date != "" {
		if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
			return nil, status.Error(codes.InvalidArgument, "date must be YYYY-MM-DD")
		}
	}
	slots, err := h.svc.Slots(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, h.toStatus("slots", err)
	}
	return &apiv1.SlotsResponse{Slots: slots}, nil
}
