package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"docspot/internal/model"
	"docspot/internal/view"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printProfile(w io.Writer, p view.ProfileView) {
	tw := table(w)
	fmt.Fprintf(tw, "id\t%s\n", p.Identity.ID)
	fmt.Fprintf(tw, "name\t%s\n", p.Identity.Name)
	fmt.Fprintf(tw, "email\t%s\n", p.Identity.Email)
	fmt.Fprintf(tw, "role\t%s\n", p.Identity.Role)
	fmt.Fprintf(tw, "avatar\t%s\n", p.Avatar)
	fmt.Fprintf(tw, "dashboard\t%s\n", p.Dashboard)
	tw.Flush()
}

func printDoctors(w io.Writer, docs []model.Doctor) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "no doctors found")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIALTY\tRATING\tYEARS\tFEE\tLOCATION")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%d\t$%.0f\t%s\n",
			d.ID, d.Name, d.Specialty, d.Rating, d.Experience, d.Fee, d.Location)
	}
	tw.Flush()
}

func printDoctor(w io.Writer, d model.Doctor) {
	tw := table(w)
	fmt.Fprintf(tw, "name\t%s\n", d.Name)
	fmt.Fprintf(tw, "specialty\t%s\n", d.Specialty)
	fmt.Fprintf(tw, "rating\t%.1f\n", d.Rating)
	fmt.Fprintf(tw, "experience\t%d years\n", d.Experience)
	fmt.Fprintf(tw, "fee\t$%.0f\n", d.Fee)
	fmt.Fprintf(tw, "location\t%s\n", d.Location)
	fmt.Fprintf(tw, "available\t%s\n", strings.Join(d.Availability, ", "))
	if len(d.Languages) > 0 {
		fmt.Fprintf(tw, "languages\t%s\n", strings.Join(d.Languages, ", "))
	}
	tw.Flush()
	if d.About != "" {
		fmt.Fprintf(w, "\n%s\n", d.About)
	}
	for _, e := range d.Education {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}

func printSlots(w io.Writer, v view.BookingView) {
	fmt.Fprintf(w, "%s on %s\n", v.Doctor.Name, v.Date)
	tw := table(w)
	for _, s := range v.Slots {
		state := "open"
		if !s.Available {
			state = "taken"
		}
		fmt.Fprintf(tw, "%s\t%s\n", s.Time, state)
	}
	tw.Flush()
}

func printAppointments(w io.Writer, appts []model.Appointment) {
	if len(appts) == 0 {
		fmt.Fprintln(w, "no appointments")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tDOCTOR\tPATIENT\tSTATUS\tREASON")
	for _, a := range appts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Date, a.Time, a.DoctorName, a.PatientName, a.Status, a.Reason)
	}
	tw.Flush()
}

func printDoctorDashboard(w io.Writer, v view.DoctorDashboardView) {
	tw := table(w)
	fmt.Fprintf(tw, "patients\t%d\n", v.Stats.TotalPatients)
	fmt.Fprintf(tw, "today\t%d\n", v.Stats.TodayAppointments)
	fmt.Fprintf(tw, "earnings\t$%.0f\n", v.Stats.MonthlyEarnings)
	fmt.Fprintf(tw, "completed\t%d\n", v.Stats.CompletedAppointments)
	tw.Flush()
	fmt.Fprintf(w, "\nappointments on %s\n", v.Date)
	printAppointments(w, v.Appointments)
}

func printAdminDashboard(w io.Writer, v view.AdminDashboardView) {
	tw := table(w)
	fmt.Fprintf(tw, "patients\t%d\n", v.Stats.TotalPatients)
	fmt.Fprintf(tw, "doctors\t%d\n", v.Stats.TotalDoctors)
	fmt.Fprintf(tw, "appointments\t%d\n", v.Stats.TotalAppointments)
	fmt.Fprintf(tw, "pending approvals\t%d\n", v.Stats.PendingApprovals)
	fmt.Fprintf(tw, "revenue\t$%.0f\n", v.Stats.MonthlyRevenue)
	tw.Flush()
	if len(v.Pending) == 0 {
		fmt.Fprintln(w, "\nno pending applications")
		return
	}
	fmt.Fprintln(w, "\npending applications")
	tw = table(w)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIALTY\tYEARS\tSUBMITTED")
	for _, p := range v.Pending {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Specialty, p.Experience, p.SubmittedAt)
	}
	tw.Flush()
}
