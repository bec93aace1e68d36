package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	apiv1 "docspot/internal/api/v1"
	"docspot/internal/auth"
	"docspot/internal/model"
)

type ctxKey string

const IdentityKey ctxKey = "identity"

// skip auth for these
var open = map[string]bool{
	apiv1.FullMethod(apiv1.MethodAuthenticate): true,
	apiv1.FullMethod(apiv1.MethodResume):       true,
	apiv1.FullMethod(apiv1.MethodDoctors):      true,
	apiv1.FullMethod(apiv1.MethodDoctor):       true,
	apiv1.FullMethod(apiv1.MethodSlots):        true,
}

// IdentityFrom returns the caller attached by Auth.
func IdentityFrom(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(model.Identity)
	return id, ok
}

func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

func Auth(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		// token from Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = strings.TrimPrefix(vals[0], "Bearer ")
		}
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}

		return next(WithIdentity(ctx, claims.Identity()), req)
	}
}
