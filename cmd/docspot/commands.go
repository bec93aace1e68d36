package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docspot/internal/model"
	"docspot/internal/view"
)

func rootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "docspot",
		Short:         "Find doctors and manage appointments",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.restore(cmd.Context())
		},
	}
	root.AddCommand(
		loginCmd(a),
		registerCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		doctorsCmd(a),
		doctorCmd(a),
		slotsCmd(a),
		bookCmd(a),
		appointmentsCmd(a),
		cancelCmd(a),
		confirmCmd(a),
		completeCmd(a),
		dashboardCmd(a),
		approveCmd(a),
		rejectCmd(a),
	)
	return root
}

func roleFlag(cmd *cobra.Command) (model.Role, error) {
	raw, _ := cmd.Flags().GetString("role")
	return model.ParseRole(raw)
}

func loginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, err := roleFlag(cmd)
			if err != nil {
				return err
			}
			id, err := a.sess.Login(cmd.Context(), email, password, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", id.Name, id.Role)
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	cmd.Flags().String("role", string(model.RolePatient), "patient, doctor or admin")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, err := roleFlag(cmd)
			if err != nil {
				return err
			}
			id, err := a.sess.Register(cmd.Context(), name, email, password, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s (%s)\n", id.Name, id.Role)
			return nil
		},
	}
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	cmd.Flags().String("role", string(model.RolePatient), "patient, doctor or admin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.sess.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ws.Profile().Render()
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func doctorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Search the doctor directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, _ := cmd.Flags().GetString("query")
			specialty, _ := cmd.Flags().GetString("specialty")
			v, err := a.ws.PatientDashboard().Render(cmd.Context(), query, specialty)
			if err != nil {
				return err
			}
			printDoctors(cmd.OutOrStdout(), v.Doctors)
			return nil
		},
	}
	cmd.Flags().StringP("query", "q", "", "match name or specialty")
	cmd.Flags().String("specialty", "", "exact specialty")
	return cmd
}

func doctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor <id>",
		Short: "Show a doctor's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.ws.DoctorProfile().Render(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printDoctor(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func slotsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots <doctor-id>",
		Short: "List a doctor's time slots for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			v, err := a.ws.Booking().Form(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			printSlots(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().String("date", "", "YYYY-MM-DD, today when empty")
	return cmd
}

func bookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book <doctor-id>",
		Short: "Book an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			at, _ := cmd.Flags().GetString("time")
			reason, _ := cmd.Flags().GetString("reason")
			docs, _ := cmd.Flags().GetStringSlice("document")
			appt, err := a.ws.Booking().Submit(cmd.Context(), view.BookingForm{
				DoctorID:  args[0],
				Date:      date,
				Time:      at,
				Reason:    reason,
				Documents: docs,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "booked %s with %s on %s at %s (%s)\n",
				appt.ID, appt.DoctorName, appt.Date, appt.Time, appt.Status)
			return nil
		},
	}
	cmd.Flags().String("date", "", "YYYY-MM-DD")
	cmd.Flags().String("time", "", `slot time, e.g. "10:00 AM"`)
	cmd.Flags().String("reason", "", "reason for the visit")
	cmd.Flags().StringSlice("document", nil, "attached document name (repeatable)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func appointmentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"history"},
		Short:   "List your appointments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")
			query, _ := cmd.Flags().GetString("query")
			v, err := a.ws.History().Render(cmd.Context(), status, query)
			if err != nil {
				return err
			}
			printAppointments(cmd.OutOrStdout(), v.Appointments)
			return nil
		},
	}
	cmd.Flags().String("status", view.StatusAll, "all, "+strings.Join(statusNames(), ", "))
	cmd.Flags().StringP("query", "q", "", "match doctor, specialty or reason")
	return cmd
}

func statusNames() []string {
	out := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		out[i] = string(s)
	}
	return out
}

// transitionCmd builds a command that moves one appointment to a new status.
func transitionCmd(use, short, verb string, run func(*cobra.Command, string) (model.Appointment, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <appointment-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appt, err := run(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: now %s\n", verb, appt.ID, appt.Status)
			return nil
		},
	}
}

func cancelCmd(a *app) *cobra.Command {
	return transitionCmd("cancel", "Cancel an appointment", "cancelled", func(cmd *cobra.Command, id string) (model.Appointment, error) {
		return a.ws.History().Cancel(cmd.Context(), id)
	})
}

func confirmCmd(a *app) *cobra.Command {
	return transitionCmd("confirm", "Confirm a pending appointment (doctors)", "confirmed", func(cmd *cobra.Command, id string) (model.Appointment, error) {
		return a.ws.DoctorDashboard().Confirm(cmd.Context(), id)
	})
}

func completeCmd(a *app) *cobra.Command {
	return transitionCmd("complete", "Mark a scheduled appointment completed (doctors)", "completed", func(cmd *cobra.Command, id string) (model.Appointment, error) {
		return a.ws.DoctorDashboard().Complete(cmd.Context(), id)
	})
}

func dashboardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, ok := a.sess.Current()
			if !ok {
				return view.ErrUnauthenticated
			}
			out := cmd.OutOrStdout()
			switch id.Role {
			case model.RoleDoctor:
				date, _ := cmd.Flags().GetString("date")
				v, err := a.ws.DoctorDashboard().Render(cmd.Context(), date)
				if err != nil {
					return err
				}
				printDoctorDashboard(out, v)
			case model.RoleAdmin:
				v, err := a.ws.AdminDashboard().Render(cmd.Context())
				if err != nil {
					return err
				}
				printAdminDashboard(out, v)
			default:
				v, err := a.ws.PatientDashboard().Render(cmd.Context(), "", "")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, v.Welcome)
				printDoctors(out, v.Doctors)
			}
			return nil
		},
	}
	cmd.Flags().String("date", "", "doctor dashboard date, today when empty")
	return cmd
}

func approveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <application-id>",
		Short: "Approve a doctor application (admins)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ws.AdminDashboard().Approve(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "approved %s\n", args[0])
			return nil
		},
	}
}

func rejectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <application-id>",
		Short: "Reject a doctor application (admins)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ws.AdminDashboard().Reject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rejected %s\n", args[0])
			return nil
		},
	}
}
