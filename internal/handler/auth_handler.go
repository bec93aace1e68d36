package handler

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apiv1 "docspot/internal/api/v1"
	"docspot/internal/auth"
	"docspot/internal/backend"
	"docspot/internal/model"
)

func (h *Handler) Authenticate(ctx context.Context, req *apiv1.AuthenticateRequest) (*apiv1.AuthenticateResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, status.Error(codes.InvalidArgument, "email required")
	}
	if req.Register && strings.TrimSpace(req.Name) == "" {
		return nil, status.Error(codes.InvalidArgument, "name required")
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	id, err := h.svc.Authenticate(ctx, backend.Credentials{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Secret:   req.Secret,
		Role:     role,
		Register: req.Register,
	})
	if err != nil {
		return nil, h.toStatus("authenticate", err)
	}

	tok, err := auth.MakeToken(id, h.secret, h.ttl)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &apiv1.AuthenticateResponse{Identity: id, Token: tok}, nil
}

// Resume issues a token for an identity the client restored from its own
// storage. Any role can be claimed here, so the role checks in caller are
// advisory until credentials are verified.
func (h *Handler) Resume(_ context.Context, req *apiv1.ResumeRequest) (*apiv1.ResumeResponse, error) {
	id := req.Identity
	if id.ID == "" || !id.Role.Valid() {
		return nil, status.Error(codes.InvalidArgument, "identity with id and role required")
	}
	tok, err := auth.MakeToken(id, h.secret, h.ttl)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &apiv1.ResumeResponse{Token: tok}, nil
}
