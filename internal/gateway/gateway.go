// Package gateway exposes docspot.v1.Backend to browsers as JSON over HTTP.
// POST /docspot.v1.Backend/{Method} forwards the request body untouched to the
// gRPC method of the same name.
package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	apiv1 "docspot/internal/api/v1"
)

const (
	Prefix  = "/" + apiv1.ServiceName + "/"
	maxBody = 1 << 20
)

var methods = map[string]bool{
	apiv1.MethodAuthenticate:      true,
	apiv1.MethodResume:            true,
	apiv1.MethodDoctors:           true,
	apiv1.MethodDoctor:            true,
	apiv1.MethodSlots:             true,
	apiv1.MethodAppointments:      true,
	apiv1.MethodSubmitBooking:     true,
	apiv1.MethodDoctorStats:       true,
	apiv1.MethodAdminOverview:     true,
	apiv1.MethodReviewApplication: true,
}

// Gateway translates HTTP/1.1 JSON calls into gRPC calls on one connection.
type Gateway struct {
	cc   grpc.ClientConnInterface
	conn *grpc.ClientConn
	log  *logrus.Logger
}

// New dials the gRPC server at addr (e.g. "localhost:50051").
func New(addr string, log *logrus.Logger) (*Gateway, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("gateway dial: %w", err)
	}
	g := NewWithConn(conn, log)
	g.conn = conn
	return g, nil
}

func NewWithConn(cc grpc.ClientConnInterface, log *logrus.Logger) *Gateway {
	if log == nil {
		log = logrus.New()
	}
	return &Gateway{cc: cc, log: log}
}

func (g *Gateway) Close() error {
	if g.conn == nil {
		return nil
	}
	return g.conn.Close()
}

func (g *Gateway) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codes.Unimplemented, "method not allowed")
			return
		}
		method := strings.TrimPrefix(r.URL.Path, Prefix)
		if !strings.HasPrefix(r.URL.Path, Prefix) || !methods[method] {
			writeError(w, http.StatusNotFound, codes.Unimplemented, "unknown method")
			return
		}
		g.forward(w, r, method)
	})
}

func (g *Gateway) forward(w http.ResponseWriter, r *http.Request, method string) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, codes.InvalidArgument, "read body failed")
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, codes.InvalidArgument, "body is not json")
		return
	}

	// forward metadata
	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	resp := &rawMsg{}
	err = g.cc.Invoke(ctx, apiv1.FullMethod(method), &rawMsg{data: body}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st, _ := status.FromError(err)
		g.log.WithFields(logrus.Fields{"method": method, "code": st.Code().String()}).Warn("gateway call failed")
		writeError(w, httpStatus(st.Code()), st.Code(), st.Message())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.data)
}

// rawMsg wraps already-encoded JSON.
type rawMsg struct{ data []byte }

// rawCodec passes bytes through; its name selects the server's json codec.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	return v.(*rawMsg).data, nil
}
func (rawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*rawMsg)
	m.data = append([]byte(nil), data...)
	return nil
}
func (rawCodec) Name() string { return apiv1.CodecName }

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, httpCode int, code codes.Code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	_ = json.NewEncoder(w).Encode(errorBody{Code: code.String(), Message: msg})
}

func httpStatus(c codes.Code) int {
	switch c {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Canceled:
		return 499
	}
	return http.StatusInternalServerError
}
