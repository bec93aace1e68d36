// Package apiv1 describes the docspot.v1.Backend gRPC service: its messages,
// the service descriptor the server registers and a typed client.
package apiv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "docspot.v1.Backend"

const (
	MethodAuthenticate      = "Authenticate"
	MethodResume            = "Resume"
	MethodDoctors           = "Doctors"
	MethodDoctor            = "Doctor"
	MethodSlots             = "Slots"
	MethodAppointments      = "Appointments"
	MethodSubmitBooking     = "SubmitBooking"
	MethodDoctorStats       = "DoctorStats"
	MethodAdminOverview     = "AdminOverview"
	MethodReviewApplication = "ReviewApplication"
)

// FullMethod returns the gRPC path of method, e.g. /docspot.v1.Backend/Doctors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type BackendServer interface {
	Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error)
	Resume(context.Context, *ResumeRequest) (*ResumeResponse, error)
	Doctors(context.Context, *DoctorsRequest) (*DoctorsResponse, error)
	Doctor(context.Context, *DoctorRequest) (*DoctorResponse, error)
	Slots(context.Context, *SlotsRequest) (*SlotsResponse, error)
	Appointments(context.Context, *AppointmentsRequest) (*AppointmentsResponse, error)
	SubmitBooking(context.Context, *SubmitBookingRequest) (*SubmitBookingResponse, error)
	DoctorStats(context.Context, *DoctorStatsRequest) (*DoctorStatsResponse, error)
	AdminOverview(context.Context, *AdminOverviewRequest) (*AdminOverviewResponse, error)
	ReviewApplication(context.Context, *ReviewApplicationRequest) (*ReviewApplicationResponse, error)
}

// UnimplementedBackendServer answers every method with codes.Unimplemented.
type UnimplementedBackendServer struct{}

func unimplemented(m string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", m)
}

func (UnimplementedBackendServer) Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error) {
	return nil, unimplemented(MethodAuthenticate)
}
func (UnimplementedBackendServer) Resume(context.Context, *ResumeRequest) (*ResumeResponse, error) {
	return nil, unimplemented(MethodResume)
}
func (UnimplementedBackendServer) Doctors(context.Context, *DoctorsRequest) (*DoctorsResponse, error) {
	return nil, unimplemented(MethodDoctors)
}
func (UnimplementedBackendServer) Doctor(context.Context, *DoctorRequest) (*DoctorResponse, error) {
	return nil, unimplemented(MethodDoctor)
}
func (UnimplementedBackendServer) Slots(context.Context, *SlotsRequest) (*SlotsResponse, error) {
	return nil, unimplemented(MethodSlots)
}
func (UnimplementedBackendServer) Appointments(context.Context, *AppointmentsRequest) (*AppointmentsResponse, error) {
	return nil, unimplemented(MethodAppointments)
}
func (UnimplementedBackendServer) SubmitBooking(context.Context, *SubmitBookingRequest) (*SubmitBookingResponse, error) {
	return nil, unimplemented(MethodSubmitBooking)
}
func (UnimplementedBackendServer) DoctorStats(context.Context, *DoctorStatsRequest) (*DoctorStatsResponse, error) {
	return nil, unimplemented(MethodDoctorStats)
}
func (UnimplementedBackendServer) AdminOverview(context.Context, *AdminOverviewRequest) (*AdminOverviewResponse, error) {
	return nil, unimplemented(MethodAdminOverview)
}
func (UnimplementedBackendServer) ReviewApplication(context.Context, *ReviewApplicationRequest) (*ReviewApplicationResponse, error) {
	return nil, unimplemented(MethodReviewApplication)
}

func unary[Req, Resp any](name string, call func(BackendServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			h := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BackendServer), ctx, req.(*Req))
			}
			if interceptor == nil {
				return h(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, h)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BackendServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodAuthenticate, BackendServer.Authenticate),
		unary(MethodResume, BackendServer.Resume),
		unary(MethodDoctors, BackendServer.Doctors),
		unary(MethodDoctor, BackendServer.Doctor),
		unary(MethodSlots, BackendServer.Slots),
		unary(MethodAppointments, BackendServer.Appointments),
		unary(MethodSubmitBooking, BackendServer.SubmitBooking),
		unary(MethodDoctorStats, BackendServer.DoctorStats),
		unary(MethodAdminOverview, BackendServer.AdminOverview),
		unary(MethodReviewApplication, BackendServer.ReviewApplication),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "docspot/v1/backend",
}

func RegisterBackendServer(s grpc.ServiceRegistrar, srv BackendServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// BackendClient calls docspot.v1.Backend with the JSON codec.
type BackendClient struct {
	cc grpc.ClientConnInterface
}

func NewBackendClient(cc grpc.ClientConnInterface) *BackendClient {
	return &BackendClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BackendClient) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthenticateResponse, error) {
	return invoke[AuthenticateResponse](ctx, c.cc, MethodAuthenticate, in, opts)
}

func (c *BackendClient) Resume(ctx context.Context, in *ResumeRequest, opts ...grpc.CallOption) (*ResumeResponse, error) {
	return invoke[ResumeResponse](ctx, c.cc, MethodResume, in, opts)
}

func (c *BackendClient) Doctors(ctx context.Context, in *DoctorsRequest, opts ...grpc.CallOption) (*DoctorsResponse, error) {
	return invoke[DoctorsResponse](ctx, c.cc, MethodDoctors, in, opts)
}

func (c *BackendClient) Doctor(ctx context.Context, in *DoctorRequest, opts ...grpc.CallOption) (*DoctorResponse, error) {
	return invoke[DoctorResponse](ctx, c.cc, MethodDoctor, in, opts)
}

func (c *BackendClient) Slots(ctx context.Context, in *SlotsRequest, opts ...grpc.CallOption) (*SlotsResponse, error) {
	return invoke[SlotsResponse](ctx, c.cc, MethodSlots, in, opts)
}

func (c *BackendClient) Appointments(ctx context.Context, in *AppointmentsRequest, opts ...grpc.CallOption) (*AppointmentsResponse, error) {
	return invoke[AppointmentsResponse](ctx, c.cc, MethodAppointments, in, opts)
}

func (c *BackendClient) SubmitBooking(ctx context.Context, in *SubmitBookingRequest, opts ...grpc.CallOption) (*SubmitBookingResponse, error) {
	return invoke[SubmitBookingResponse](ctx, c.cc, MethodSubmitBooking, in, opts)
}

func (c *BackendClient) DoctorStats(ctx context.Context, in *DoctorStatsRequest, opts ...grpc.CallOption) (*DoctorStatsResponse, error) {
	return invoke[DoctorStatsResponse](ctx, c.cc, MethodDoctorStats, in, opts)
}

func (c *BackendClient) AdminOverview(ctx context.Context, in *AdminOverviewRequest, opts ...grpc.CallOption) (*AdminOverviewResponse, error) {
	return invoke[AdminOverviewResponse](ctx, c.cc, MethodAdminOverview, in, opts)
}

func (c *BackendClient) ReviewApplication(ctx context.Context, in *ReviewApplicationRequest, opts ...grpc.CallOption) (*ReviewApplicationResponse, error) {
	return invoke[ReviewApplicationResponse](ctx, c.cc, MethodReviewApplication, in, opts)
}
