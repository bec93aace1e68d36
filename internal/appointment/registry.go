// Package appointment holds the appointment records of the active viewer and
// enforces the booking lifecycle:
//
//	pending   -> scheduled | cancelled
//	scheduled -> completed | cancelled
//
// completed and cancelled are terminal. New bookings always start pending.
package appointment

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"docspot/internal/model"
)

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrReasonRequired    = errors.New("reason is required")
	ErrSlotUnavailable   = errors.New("time slot is not available")
	ErrDateRequired      = errors.New("date is required")
	ErrNotPatient        = errors.New("only patients can book appointments")
)

// Booking is a patient's request for one slot with one doctor.
type Booking struct {
	// ID is used for the new record when set; otherwise one is generated.
	ID        string
	Patient   model.Identity
	Doctor    model.Doctor
	Date      string
	Time      string
	Reason    string
	Documents []string
	// Slots is the availability the time is checked against.
	Slots []model.Slot
}

// Validate reports the first reason b cannot be booked.
func (b Booking) Validate() error {
	if b.Patient.Role != model.RolePatient {
		return ErrNotPatient
	}
	if strings.TrimSpace(b.Date) == "" {
		return ErrDateRequired
	}
	if strings.TrimSpace(b.Reason) == "" {
		return ErrReasonRequired
	}
	for _, s := range b.Slots {
		if s.Time == b.Time {
			if s.Available {
				return nil
			}
			break
		}
	}
	return fmt.Errorf("%w: %q", ErrSlotUnavailable, b.Time)
}

// Record builds the pending appointment b would create.
func (b Booking) Record(id string, now time.Time) model.Appointment {
	return model.Appointment{
		ID:              id,
		PatientID:       b.Patient.ID,
		PatientName:     b.Patient.Name,
		PatientEmail:    b.Patient.Email,
		DoctorID:        b.Doctor.ID,
		DoctorName:      b.Doctor.Name,
		DoctorSpecialty: b.Doctor.Specialty,
		Date:            b.Date,
		Time:            b.Time,
		Status:          model.StatusPending,
		Reason:          strings.TrimSpace(b.Reason),
		Fee:             b.Doctor.Fee,
		Location:        b.Doctor.Location,
		Documents:       append([]string(nil), b.Documents...),
		CreatedAt:       now,
	}
}

// Filter narrows ListFor. Zero fields do not restrict.
type Filter struct {
	Status model.Status
	// Text matches doctor name, specialty and reason, case-insensitively.
	Text string
	Date string
}

type Registry struct {
	mu      sync.RWMutex
	records []model.Appointment
	index   map[string]int
	now     func() time.Time
	newID   func() string
}

// New seeds a registry with records in the given order.
func New(seed []model.Appointment) *Registry {
	r := &Registry{
		index: make(map[string]int, len(seed)),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, a := range seed {
		r.append(a)
	}
	return r
}

func (r *Registry) append(a model.Appointment) {
	r.index[a.ID] = len(r.records)
	r.records = append(r.records, clone(a))
}

// clone detaches a's slices from the registry's record.
func clone(a model.Appointment) model.Appointment {
	if a.Documents != nil {
		a.Documents = append([]string(nil), a.Documents...)
	}
	return a
}

// Create validates b and appends a pending record, returning its id.
func (r *Registry) Create(b Booking) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := b.ID
	if _, taken := r.index[id]; id == "" || taken {
		id = r.newID()
		for _, taken := r.index[id]; taken; _, taken = r.index[id] {
			id = r.newID()
		}
	}
	r.append(b.Record(id, r.now()))
	return id, nil
}

// Transition moves a record to target if target is a direct successor of its
// current status. Anything else is rejected and leaves the record unchanged.
func (r *Registry) Transition(id string, target model.Status) (model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return model.Appointment{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cur := r.records[i].Status
	if !model.CanTransition(cur, target) {
		return clone(r.records[i]), fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, target)
	}
	r.records[i].Status = target
	return clone(r.records[i]), nil
}

func (r *Registry) Get(id string) (model.Appointment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return model.Appointment{}, false
	}
	return clone(r.records[i]), true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// ListFor returns, in insertion order, the records visible to viewer that
// match f. Patients see their bookings, doctors the bookings made with them,
// admins nothing.
func (r *Registry) ListFor(viewer model.Identity, f Filter) []model.Appointment {
	text := strings.ToLower(strings.TrimSpace(f.Text))

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Appointment{}
	for _, a := range r.records {
		if !Visible(viewer, a) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Date != "" && a.Date != f.Date {
			continue
		}
		if text != "" && !matches(a, text) {
			continue
		}
		out = append(out, clone(a))
	}
	return out
}

// Visible reports whether a belongs to viewer.
func Visible(viewer model.Identity, a model.Appointment) bool {
	if viewer.ID == "" {
		return false
	}
	switch viewer.Role {
	case model.RolePatient:
		return a.PatientID == viewer.ID
	case model.RoleDoctor:
		return a.DoctorID == viewer.ID
	}
	return false
}

func matches(a model.Appointment, lower string) bool {
	return strings.Contains(strings.ToLower(a.DoctorName), lower) ||
		strings.Contains(strings.ToLower(a.DoctorSpecialty), lower) ||
		strings.Contains(strings.ToLower(a.Reason), lower)
}
