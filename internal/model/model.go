package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownStatus = errors.New("unknown status")
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Identity is the signed-in user. Its JSON shape is the persisted session record.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusPending}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusScheduled, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// lifecycle edges; statuses missing from the map are terminal
var successors = map[Status][]Status{
	StatusPending:   {StatusScheduled, StatusCancelled},
	StatusScheduled: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether to is a direct successor of from.
func CanTransition(from, to Status) bool {
	for _, s := range successors[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return len(successors[s]) == 0
}

type Appointment struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patientId"`
	PatientName     string    `json:"patientName"`
	PatientEmail    string    `json:"patientEmail"`
	DoctorID        string    `json:"doctorId"`
	DoctorName      string    `json:"doctorName"`
	DoctorSpecialty string    `json:"doctorSpecialty"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Status          Status    `json:"status"`
	Reason          string    `json:"reason"`
	Fee             float64   `json:"consultationFee"`
	Location        string    `json:"location"`
	Documents       []string  `json:"documents,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Doctor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Rating         float64  `json:"rating"`
	Experience     int      `json:"experience"`
	Location       string   `json:"location"`
	Fee            float64  `json:"consultationFee"`
	Availability   []string `json:"availability"`
	Avatar         string   `json:"avatar"`
	About          string   `json:"about,omitempty"`
	Education      []string `json:"education,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	TotalPatients  int      `json:"totalPatients,omitempty"`
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Application is a doctor registration awaiting admin review.
type Application struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Specialty   string `json:"specialty"`
	Experience  int    `json:"experience"`
	SubmittedAt string `json:"submittedAt"`
}

type DoctorStats struct {
	TotalPatients         int     `json:"totalPatients"`
	TodayAppointments     int     `json:"todayAppointments"`
	MonthlyEarnings       float64 `json:"monthlyEarnings"`
	CompletedAppointments int     `json:"completedAppointments"`
}

type AdminStats struct {
	TotalPatients         int     `json:"totalPatients"`
	TotalDoctors          int     `json:"totalDoctors"`
	TotalAppointments     int     `json:"totalAppointments"`
	PendingApprovals      int     `json:"pendingApprovals"`
	MonthlyRevenue        float64 `json:"monthlyRevenue"`
	CompletedAppointments int     `json:"completedAppointments"`
}

// DateLayout is the calendar date format used on appointments.
const DateLayout = "2006-01-02"
