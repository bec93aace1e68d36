package backend

import (
	"strconv"
	"time"

	"docspot/internal/model"
)

func photo(id string) string {
	return "https://images.pexels.com/photos/" + id + "/pexels-photo-" + id + ".jpeg?auto=compress&cs=tinysrgb&w=300&h=300&dpr=1"
}

// catalog returns a fresh copy on every call so callers can't mutate it.
func catalog() []model.Doctor {
	return []model.Doctor{
		{
			ID: "1", Name: "Dr. Sarah Johnson", Specialty: "Cardiology",
			Rating: 4.9, Experience: 12, Location: "New York, NY", Fee: 150,
			Availability: []string{"Morning", "Afternoon"}, Avatar: photo("5215024"),
			About: "Board-certified cardiologist with over 12 years of experience in treating cardiovascular diseases. " +
				"Specializes in preventive cardiology, heart failure management, and interventional procedures.",
			Education: []string{
				"MD - Harvard Medical School",
				"Residency - Johns Hopkins Hospital",
				"Fellowship - Mayo Clinic",
			},
			Certifications: []string{
				"Board Certified in Cardiology",
				"Board Certified in Internal Medicine",
				"Advanced Cardiac Life Support (ACLS)",
			},
			Languages:     []string{"English", "Spanish"},
			TotalPatients: 2500,
		},
		{
			ID: "2", Name: "Dr. Michael Chen", Specialty: "Dermatology",
			Rating: 4.8, Experience: 8, Location: "Los Angeles, CA", Fee: 120,
			Availability: []string{"Morning", "Evening"}, Avatar: photo("612608"),
			Languages: []string{"English", "Mandarin"},
		},
		{
			ID: "3", Name: "Dr. Emily Rodriguez", Specialty: "Neurology",
			Rating: 4.7, Experience: 15, Location: "Chicago, IL", Fee: 180,
			Availability: []string{"Afternoon", "Evening"}, Avatar: photo("1239291"),
			Languages: []string{"English", "Spanish"},
		},
		{
			ID: "4", Name: "Dr. David Wilson", Specialty: "Orthopedics",
			Rating: 4.6, Experience: 10, Location: "Houston, TX", Fee: 160,
			Availability: []string{"Morning"}, Avatar: photo("5452293"),
		},
		{
			ID: "5", Name: "Dr. Lisa Thompson", Specialty: "Pediatrics",
			Rating: 4.9, Experience: 14, Location: "Miami, FL", Fee: 140,
			Availability: []string{"Morning", "Afternoon", "Evening"}, Avatar: photo("5452201"),
		},
		{
			ID: "6", Name: "Dr. Robert Martinez", Specialty: "General Medicine",
			Rating: 4.5, Experience: 7, Location: "Phoenix, AZ", Fee: 100,
			Availability: []string{"Afternoon", "Evening"}, Avatar: photo("5452274"),
		},
	}
}

func slots() []model.Slot {
	return []model.Slot{
		{Time: "09:00 AM", Available: true},
		{Time: "09:30 AM", Available: false},
		{Time: "10:00 AM", Available: true},
		{Time: "10:30 AM", Available: true},
		{Time: "11:00 AM", Available: false},
		{Time: "11:30 AM", Available: true},
		{Time: "02:00 PM", Available: true},
		{Time: "02:30 PM", Available: true},
		{Time: "03:00 PM", Available: false},
		{Time: "03:30 PM", Available: true},
		{Time: "04:00 PM", Available: true},
		{Time: "04:30 PM", Available: true},
	}
}

func patientHistory(viewer model.Identity) []model.Appointment {
	rows := []struct {
		id, doctor, date, time string
		status                 model.Status
		reason                 string
	}{
		{"1", "1", "2024-01-15", "10:00 AM", model.StatusScheduled, "Routine cardiac check-up"},
		{"2", "2", "2024-01-10", "02:30 PM", model.StatusCompleted, "Skin consultation for acne treatment"},
		{"3", "3", "2024-01-20", "11:30 AM", model.StatusPending, "Headache and migraine consultation"},
		{"4", "1", "2023-12-20", "09:00 AM", model.StatusCancelled, "Annual physical examination"},
	}
	docs := make(map[string]model.Doctor)
	for _, d := range catalog() {
		docs[d.ID] = d
	}

	out := make([]model.Appointment, 0, len(rows))
	for _, r := range rows {
		d := docs[r.doctor]
		out = append(out, model.Appointment{
			ID:              r.id,
			PatientID:       viewer.ID,
			PatientName:     viewer.Name,
			PatientEmail:    viewer.Email,
			DoctorID:        d.ID,
			DoctorName:      d.Name,
			DoctorSpecialty: d.Specialty,
			Date:            r.date,
			Time:            r.time,
			Status:          r.status,
			Reason:          r.reason,
			Fee:             d.Fee,
			Location:        d.Location,
		})
	}
	return out
}

// doctorSchedule books the day's patients against the signed-in doctor.
func doctorSchedule(viewer model.Identity, now time.Time) []model.Appointment {
	today := now.Format(model.DateLayout)
	rows := []struct {
		patient, email, time string
		status               model.Status
		reason               string
	}{
		{"John Smith", "john.smith@email.com", "09:00 AM", model.StatusScheduled, "Routine cardiac check-up"},
		{"Emma Johnson", "emma.johnson@email.com", "10:30 AM", model.StatusPending, "Chest pain consultation"},
		{"Michael Brown", "michael.brown@email.com", "02:00 PM", model.StatusScheduled, "Follow-up appointment"},
		{"Sarah Davis", "sarah.davis@email.com", "03:30 PM", model.StatusCompleted, "Annual physical examination"},
	}
	out := make([]model.Appointment, 0, len(rows))
	for i, r := range rows {
		n := strconv.Itoa(i + 1)
		out = append(out, model.Appointment{
			ID:              n,
			PatientID:       "patient-" + n,
			PatientName:     r.patient,
			PatientEmail:    r.email,
			DoctorID:        viewer.ID,
			DoctorName:      viewer.Name,
			DoctorSpecialty: "Cardiology",
			Date:            today,
			Time:            r.time,
			Status:          r.status,
			Reason:          r.reason,
			Fee:             150,
			Location:        "New York, NY",
		})
	}
	return out
}

func applications() []model.Application {
	return []model.Application{
		{ID: "1", Name: "Dr. James Wilson", Email: "james.wilson@email.com", Specialty: "Orthopedics", Experience: 8, SubmittedAt: "2024-01-10"},
		{ID: "2", Name: "Dr. Maria Garcia", Email: "maria.garcia@email.com", Specialty: "Pediatrics", Experience: 12, SubmittedAt: "2024-01-09"},
		{ID: "3", Name: "Dr. Robert Kim", Email: "robert.kim@email.com", Specialty: "Psychiatry", Experience: 6, SubmittedAt: "2024-01-08"},
	}
}
