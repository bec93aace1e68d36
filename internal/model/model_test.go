package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/model"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want model.Role
		ok   bool
	}{
		{"patient", model.RolePatient, true},
		{"Doctor", model.RoleDoctor, true},
		{" admin ", model.RoleAdmin, true},
		{"nurse", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := model.ParseRole(tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, model.ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestRoleValidIsExact(t *testing.T) {
	assert.False(t, model.Role("Patient").Valid())
	assert.False(t, model.Role("").Valid())
}

func TestParseStatus(t *testing.T) {
	for _, s := range model.Statuses {
		got, err := model.ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := model.ParseStatus("rescheduled")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]model.Status]bool{
		{model.StatusPending, model.StatusScheduled}:   true,
		{model.StatusPending, model.StatusCancelled}:   true,
		{model.StatusScheduled, model.StatusCompleted}: true,
		{model.StatusScheduled, model.StatusCancelled}: true,
	}
	for _, from := range model.Statuses {
		for _, to := range model.Statuses {
			want := allowed[[2]model.Status{from, to}]
			assert.Equal(t, want, model.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, model.StatusCompleted.Terminal())
	assert.True(t, model.StatusCancelled.Terminal())
	assert.False(t, model.StatusPending.Terminal())
	assert.False(t, model.StatusScheduled.Terminal())
}
