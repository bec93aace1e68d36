// Package remote implements backend.Service against a docspot gRPC server.
package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	apiv1 "docspot/internal/api/v1"
	"docspot/internal/backend"
	"docspot/internal/model"
)

// Client keeps one bearer token per identity it has seen. Identities
// restored from local storage get a token through Resume on first use.
type Client struct {
	api  *apiv1.BackendClient
	conn *grpc.ClientConn
	log  *logrus.Logger

	mu     sync.Mutex
	tokens map[string]string
}

var _ backend.Service = (*Client)(nil)

// Dial connects to addr. Without options the connection is plaintext.
func Dial(addr string, log *logrus.Logger, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	c := New(conn, log)
	c.conn = conn
	return c, nil
}

// New wraps an existing connection; Close leaves it open.
func New(cc grpc.ClientConnInterface, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
	}
	return &Client{api: apiv1.NewBackendClient(cc), log: log, tokens: make(map[string]string)}
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) token(ctx context.Context, viewer model.Identity) (string, error) {
	c.mu.Lock()
	tok, ok := c.tokens[viewer.ID]
	c.mu.Unlock()
	if ok {
		return tok, nil
	}
	resp, err := c.api.Resume(ctx, &apiv1.ResumeRequest{Identity: viewer})
	if err != nil {
		return "", translate(err)
	}
	c.remember(viewer.ID, resp.Token)
	return resp.Token, nil
}

func (c *Client) remember(id, tok string) {
	c.mu.Lock()
	c.tokens[id] = tok
	c.mu.Unlock()
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	delete(c.tokens, id)
	c.mu.Unlock()
}

// authed runs call with the viewer's bearer token and retries once with a
// fresh token when the server rejects the cached one.
func authed[T any](ctx context.Context, c *Client, viewer model.Identity, call func(context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		tok, err := c.token(ctx, viewer)
		if err != nil {
			return zero, err
		}
		out, err := call(metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+tok))
		if status.Code(err) == codes.Unauthenticated && attempt == 0 {
			c.log.WithField("user", viewer.ID).Debug("token rejected, resuming")
			c.forget(viewer.ID)
			continue
		}
		if err != nil {
			return zero, translate(err)
		}
		return out, nil
	}
}

// translate maps gRPC codes back onto backend errors.
func translate(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", st.Message(), backend.ErrNotFound)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return fmt.Errorf("%s: %w", st.Message(), backend.ErrUnavailable)
	}
	return err
}

func (c *Client) Authenticate(ctx context.Context, cr backend.Credentials) (model.Identity, error) {
	resp, err := c.api.Authenticate(ctx, &apiv1.AuthenticateRequest{
		Name:     cr.Name,
		Email:    cr.Email,
		Secret:   cr.Secret,
		Role:     string(cr.Role),
		Register: cr.Register,
	})
	if err != nil {
		return model.Identity{}, translate(err)
	}
	c.remember(resp.Identity.ID, resp.Token)
	return resp.Identity, nil
}

func (c *Client) Doctors(ctx context.Context) ([]model.Doctor, error) {
	resp, err := c.api.Doctors(ctx, &apiv1.DoctorsRequest{})
	if err != nil {
		return nil, translate(err)
	}
	return resp.Doctors, nil
}

func (c *Client) Doctor(ctx context.Context, id string) (model.Doctor, error) {
	resp, err := c.api.Doctor(ctx, &apiv1.DoctorRequest{ID: id})
	if err != nil {
		return model.Doctor{}, translate(err)
	}
	return resp.Doctor, nil
}

func (c *Client) Slots(ctx context.Context, doctorID, date string) ([]model.Slot, error) {
	resp, err := c.api.Slots(ctx, &apiv1.SlotsRequest{DoctorID: doctorID, Date: date})
	if err != nil {
		return nil, translate(err)
	}
	return resp.Slots, nil
}

func (c *Client) Appointments(ctx context.Context, viewer model.Identity) ([]model.Appointment, error) {
	return authed(ctx, c, viewer, func(ctx context.Context) ([]model.Appointment, error) {
		resp, err := c.api.Appointments(ctx, &apiv1.AppointmentsRequest{})
		if err != nil {
			return nil, err
		}
		return resp.Appointments, nil
	})
}

// SubmitBooking authenticates as the appointment's patient.
func (c *Client) SubmitBooking(ctx context.Context, a model.Appointment) error {
	patient := model.Identity{ID: a.PatientID, Name: a.PatientName, Email: a.PatientEmail, Role: model.RolePatient}
	_, err := authed(ctx, c, patient, func(ctx context.Context) (struct{}, error) {
		_, err := c.api.SubmitBooking(ctx, &apiv1.SubmitBookingRequest{Appointment: a})
		return struct{}{}, err
	})
	return err
}

func (c *Client) DoctorStats(ctx context.Context, viewer model.Identity) (model.DoctorStats, error) {
	return authed(ctx, c, viewer, func(ctx context.Context) (model.DoctorStats, error) {
		resp, err := c.api.DoctorStats(ctx, &apiv1.DoctorStatsRequest{})
		if err != nil {
			return model.DoctorStats{}, err
		}
		return resp.Stats, nil
	})
}

func (c *Client) AdminOverview(ctx context.Context, viewer model.Identity) (model.AdminStats, []model.Application, error) {
	resp, err := authed(ctx, c, viewer, func(ctx context.Context) (*apiv1.AdminOverviewResponse, error) {
		return c.api.AdminOverview(ctx, &apiv1.AdminOverviewRequest{})
	})
	if err != nil {
		return model.AdminStats{}, nil, err
	}
	return resp.Stats, resp.Applications, nil
}

func (c *Client) ReviewApplication(ctx context.Context, viewer model.Identity, id string, approve bool) error {
	_, err := authed(ctx, c, viewer, func(ctx context.Context) (*apiv1.ReviewApplicationResponse, error) {
		return c.api.ReviewApplication(ctx, &apiv1.ReviewApplicationRequest{ID: id, Approve: approve})
	})
	return err
}
