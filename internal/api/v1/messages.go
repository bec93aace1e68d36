package apiv1

import "docspot/internal/model"

type AuthenticateRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Secret   string `json:"secret"`
	Role     string `json:"role"`
	Register bool   `json:"register,omitempty"`
}

type AuthenticateResponse struct {
	Identity model.Identity `json:"identity"`
	Token    string         `json:"token"`
}

// ResumeRequest asks for a token for an identity restored from storage.
type ResumeRequest struct {
	Identity model.Identity `json:"identity"`
}

type ResumeResponse struct {
	Token string `json:"token"`
}

type DoctorsRequest struct{}

type DoctorsResponse struct {
	Doctors []model.Doctor `json:"doctors"`
}

type DoctorRequest struct {
	ID string `json:"id"`
}

type DoctorResponse struct {
	Doctor model.Doctor `json:"doctor"`
}

type SlotsRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
}

type SlotsResponse struct {
	Slots []model.Slot `json:"slots"`
}

// AppointmentsRequest is empty: the viewer is the token's subject.
type AppointmentsRequest struct{}

type AppointmentsResponse struct {
	Appointments []model.Appointment `json:"appointments"`
}

type SubmitBookingRequest struct {
	Appointment model.Appointment `json:"appointment"`
}

type SubmitBookingResponse struct{}

type DoctorStatsRequest struct{}

type DoctorStatsResponse struct {
	Stats model.DoctorStats `json:"stats"`
}

type AdminOverviewRequest struct{}

type AdminOverviewResponse struct {
	Stats        model.AdminStats    `json:"stats"`
	Applications []model.Application `json:"applications"`
}

type ReviewApplicationRequest struct {
	ID      string `json:"id"`
	Approve bool   `json:"approve"`
}

type ReviewApplicationResponse struct{}
