// Package directory is the read-only catalog of doctors.
package directory

import (
	"strings"

	"docspot/internal/model"
)

// AllSpecialties is the specialty sentinel meaning no restriction.
const AllSpecialties = "All Specialties"

var specialties = []string{
	AllSpecialties,
	"Cardiology",
	"Dermatology",
	"Neurology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
	"General Medicine",
}

type Directory struct {
	doctors []model.Doctor
}

func New(doctors []model.Doctor) *Directory {
	return &Directory{doctors: append([]model.Doctor(nil), doctors...)}
}

// Search returns doctors whose name or specialty contains text, ignoring case,
// restricted to specialty unless it is empty or AllSpecialties.
func (d *Directory) Search(text, specialty string) []model.Doctor {
	q := strings.ToLower(text)
	out := []model.Doctor{}
	for _, doc := range d.doctors {
		if q != "" &&
			!strings.Contains(strings.ToLower(doc.Name), q) &&
			!strings.Contains(strings.ToLower(doc.Specialty), q) {
			continue
		}
		if specialty != "" && specialty != AllSpecialties && doc.Specialty != specialty {
			continue
		}
		out = append(out, doc)
	}
	return out
}

func (d *Directory) Get(id string) (model.Doctor, bool) {
	for _, doc := range d.doctors {
		if doc.ID == id {
			return doc, true
		}
	}
	return model.Doctor{}, false
}

func (d *Directory) Len() int { return len(d.doctors) }

// Specialties lists the selectable specialties, sentinel first.
func Specialties() []string {
	return append([]string(nil), specialties...)
}
