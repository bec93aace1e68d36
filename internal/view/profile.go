package view

import (
	"docspot/internal/backend"
	"docspot/internal/model"
)

type Profile struct{ ws *Workspace }

type ProfileView struct {
	Identity  model.Identity
	Avatar    string
	Dashboard string
}

func (p Profile) Render() (ProfileView, error) {
	id, err := p.ws.viewer()
	if err != nil {
		return ProfileView{}, err
	}
	avatar := id.Avatar
	if avatar == "" {
		avatar = backend.DefaultAvatar
	}
	return ProfileView{Identity: id, Avatar: avatar, Dashboard: DashboardRoute(id.Role)}, nil
}

// DashboardRoute is the landing screen for role.
func DashboardRoute(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return "/admin"
	case model.RoleDoctor:
		return "/doctor-dashboard"
	}
	return "/dashboard"
}
