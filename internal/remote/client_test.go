package remote_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	apiv1 "docspot/internal/api/v1"
	"docspot/internal/backend"
	"docspot/internal/handler"
	"docspot/internal/middleware"
	"docspot/internal/model"
	"docspot/internal/remote"
	"docspot/internal/session"
	"docspot/internal/store"
	"docspot/internal/view"
)

const secret = "test-secret"

func serve(t *testing.T) (*grpc.ClientConn, *logrus.Logger) {
	t.Helper()
	log, _ := test.NewNullLogger()
	sim := backend.NewSimulated(backend.WithLatency(0), backend.WithLogger(log))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(middleware.Auth(secret)))
	apiv1.RegisterBackendServer(srv, handler.New(sim, secret, time.Minute, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, log
}

func TestAuthenticateAndAppointments(t *testing.T) {
	conn, log := serve(t)
	c := remote.New(conn, log)
	ctx := context.Background()

	id, err := c.Authenticate(ctx, backend.Credentials{Email: "mary@example.com", Secret: "x", Role: model.RolePatient})
	require.NoError(t, err)
	assert.Equal(t, "mary", id.Name)

	appts, err := c.Appointments(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, appts)
	for _, a := range appts {
		assert.Equal(t, id.ID, a.PatientID)
	}
}

func TestRestoredIdentityResumes(t *testing.T) {
	conn, log := serve(t)
	c := remote.New(conn, log)

	doc := model.Identity{ID: "1", Name: "Dr. Sarah Johnson", Role: model.RoleDoctor}
	stats, err := c.DoctorStats(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 245, stats.TotalPatients)
}

func TestStaleTokenIsReplaced(t *testing.T) {
	conn, log := serve(t)
	c := remote.New(conn, log)

	admin := model.Identity{ID: "a1", Name: "root", Role: model.RoleAdmin}
	c.SetToken(admin.ID, "stale")

	stats, apps, err := c.AdminOverview(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, len(apps), stats.PendingApprovals)
}

func TestErrorsTranslate(t *testing.T) {
	conn, log := serve(t)
	c := remote.New(conn, log)
	ctx := context.Background()

	_, err := c.Doctor(ctx, "missing")
	assert.ErrorIs(t, err, backend.ErrNotFound)

	admin := model.Identity{ID: "a1", Role: model.RoleAdmin}
	err = c.ReviewApplication(ctx, admin, "missing", true)
	assert.ErrorIs(t, err, backend.ErrNotFound)

	patient := model.Identity{ID: "p1", Role: model.RolePatient}
	_, _, err = c.AdminOverview(ctx, patient)
	assert.Error(t, err)
}

func TestWorkspaceOverGRPC(t *testing.T) {
	conn, log := serve(t)
	c := remote.New(conn, log)
	ctx := context.Background()

	sess := session.New(store.NewMemory(), c, log)
	ws := view.NewWorkspace(sess, c, log)
	t.Cleanup(ws.Close)

	_, err := sess.Login(ctx, "pat@example.com", "x", model.RolePatient)
	require.NoError(t, err)

	form, err := ws.Booking().Form(ctx, "2", "2030-01-02")
	require.NoError(t, err)
	var free string
	for _, s := range form.Slots {
		if s.Available {
			free = s.Time
			break
		}
	}
	require.NotEmpty(t, free)

	booked, err := ws.Booking().Submit(ctx, view.BookingForm{DoctorID: "2", Date: "2030-01-02", Time: free, Reason: "rash"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, booked.Status)

	hist, err := ws.History().Render(ctx, string(model.StatusPending), "")
	require.NoError(t, err)
	var found bool
	for _, a := range hist.Appointments {
		found = found || a.ID == booked.ID
	}
	assert.True(t, found)

	cancelled, err := ws.History().Cancel(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)
}
