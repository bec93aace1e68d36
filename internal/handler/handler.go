// Package handler serves docspot.v1.Backend on top of a backend.Service.
package handler

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apiv1 "docspot/internal/api/v1"
	"docspot/internal/backend"
	"docspot/internal/middleware"
	"docspot/internal/model"
)

type Handler struct {
	apiv1.UnimplementedBackendServer
	svc    backend.Service
	secret string
	ttl    time.Duration
	log    *logrus.Logger
}

func New(svc backend.Service, secret string, ttl time.Duration, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{svc: svc, secret: secret, ttl: ttl, log: log}
}

var _ apiv1.BackendServer = (*Handler)(nil)

// caller returns the authenticated identity, requiring one of roles when given.
func caller(ctx context.Context, roles ...model.Role) (model.Identity, error) {
	id, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return model.Identity{}, status.Error(codes.Unauthenticated, "not signed in")
	}
	if len(roles) == 0 {
		return id, nil
	}
	for _, r := range roles {
		if id.Role == r {
			return id, nil
		}
	}
	return model.Identity{}, status.Error(codes.PermissionDenied, "not allowed for role "+string(id.Role))
}

// toStatus maps backend failures onto gRPC codes.
func (h *Handler) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, backend.ErrUnavailable):
		return status.Error(codes.Unavailable, "backend unavailable")
	case errors.Is(err, model.ErrUnknownRole):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	}
	h.log.WithFields(logrus.Fields{"op": op, "error": err}).Error("backend call failed")
	return status.Error(codes.Internal, "internal error")
}
