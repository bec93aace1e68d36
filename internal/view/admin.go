package view

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"docspot/internal/backend"
	"docspot/internal/model"
)

// adminState is the review queue loaded for the signed-in admin.
type adminState struct {
	stats   model.AdminStats
	pending []model.Application
}

type AdminDashboard struct{ ws *Workspace }

type AdminDashboardView struct {
	Stats   model.AdminStats
	Pending []model.Application
}

func (a AdminDashboard) Render(ctx context.Context) (AdminDashboardView, error) {
	viewer, err := a.ws.viewer(model.RoleAdmin)
	if err != nil {
		return AdminDashboardView{}, err
	}
	st, err := a.state(ctx, viewer)
	if err != nil {
		return AdminDashboardView{}, err
	}

	a.ws.mu.Lock()
	defer a.ws.mu.Unlock()
	v := AdminDashboardView{
		Stats:   st.stats,
		Pending: append([]model.Application(nil), st.pending...),
	}
	v.Stats.PendingApprovals = len(v.Pending)
	return v, nil
}

func (a AdminDashboard) state(ctx context.Context, viewer model.Identity) (*adminState, error) {
	a.ws.mu.Lock()
	defer a.ws.mu.Unlock()
	if a.ws.review != nil && a.ws.reviewFor == viewer.ID {
		return a.ws.review, nil
	}
	st := &adminState{}
	if err := a.ws.fetch("admin_overview", func() (err error) {
		st.stats, st.pending, err = a.ws.backend.AdminOverview(ctx, viewer)
		return err
	}); err != nil {
		return nil, err
	}
	a.ws.review = st
	a.ws.reviewFor = viewer.ID
	return st, nil
}

func (a AdminDashboard) Approve(ctx context.Context, id string) error {
	return a.review(ctx, id, true)
}

func (a AdminDashboard) Reject(ctx context.Context, id string) error {
	return a.review(ctx, id, false)
}

// review reports the decision to the backend, then drops the application from
// the queue either way.
func (a AdminDashboard) review(ctx context.Context, id string, approve bool) error {
	viewer, err := a.ws.viewer(model.RoleAdmin)
	if err != nil {
		return err
	}
	st, err := a.state(ctx, viewer)
	if err != nil {
		return err
	}

	a.ws.mu.Lock()
	idx := -1
	for i, app := range st.pending {
		if app.ID == id {
			idx = i
			break
		}
	}
	a.ws.mu.Unlock()
	if idx < 0 {
		return fmt.Errorf("application %s: %w", id, backend.ErrNotFound)
	}

	if err := a.ws.fetch("review_application", func() error {
		return a.ws.backend.ReviewApplication(ctx, viewer, id, approve)
	}); err != nil {
		return err
	}

	a.ws.mu.Lock()
	for i, app := range st.pending {
		if app.ID == id {
			st.pending = append(st.pending[:i:i], st.pending[i+1:]...)
			break
		}
	}
	a.ws.mu.Unlock()

	a.ws.log.WithFields(logrus.Fields{"application": id, "approved": approve, "user": viewer.ID}).Info("application reviewed")
	return nil
}
