package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/activities/internal/config"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.CatalogConfig
		wantErr string
	}{
		{
			name: "valid",
			cfg: config.CatalogConfig{Version: "1", Activities: []config.ActivityDef{
				{Name: "Chess Club", MaxParticipants: 12, Participants: []string{"a@mergington.edu"}},
			}},
		},
		{
			name:    "missing version",
			cfg:     config.CatalogConfig{Activities: []config.ActivityDef{{Name: "Chess Club"}}},
			wantErr: "version is required",
		},
		{
			name:    "no activities",
			cfg:     config.CatalogConfig{Version: "1"},
			wantErr: "activities must not be empty",
		},
		{
			name:    "empty name",
			cfg:     config.CatalogConfig{Version: "1", Activities: []config.ActivityDef{{Name: " "}}},
			wantErr: "activities[0]: name is required",
		},
		{
			name: "duplicate name",
			cfg: config.CatalogConfig{Version: "1", Activities: []config.ActivityDef{
				{Name: "Chess Club"}, {Name: "Chess Club"},
			}},
			wantErr: `duplicate activity "Chess Club"`,
		},
		{
			name:    "negative capacity",
			cfg:     config.CatalogConfig{Version: "1", Activities: []config.ActivityDef{{Name: "Chess Club", MaxParticipants: -1}}},
			wantErr: "max_participants must be >= 0",
		},
		{
			name: "duplicate participant",
			cfg: config.CatalogConfig{Version: "1", Activities: []config.ActivityDef{
				{Name: "Chess Club", Participants: []string{"a@mergington.edu", "a@mergington.edu"}},
			}},
			wantErr: `duplicate participant "a@mergington.edu"`,
		},
		{
			name: "empty participant",
			cfg: config.CatalogConfig{Version: "1", Activities: []config.ActivityDef{
				{Name: "Chess Club", Participants: []string{""}},
			}},
			wantErr: "participants[0] is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.Validate(&tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &config.CatalogConfig{Version: "1", Activities: []config.ActivityDef{
		{Name: ""},
		{Name: "A", MaxParticipants: -3},
		{Name: "A"},
	}}
	err := config.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "max_participants")
	assert.Contains(t, err.Error(), "duplicate activity")
}

func TestParse_ShippedCatalog(t *testing.T) {
	l, err := config.NewLoader("../../configs/activities.yaml")
	require.NoError(t, err)
	names := make([]string, 0)
	for _, a := range l.Config().Activities {
		names = append(names, a.Name)
		assert.Empty(t, a.Participants)
	}
	for _, want := range []string{"Chess Club", "Programming Class", "Tennis Club", "Drama Club"} {
		assert.Contains(t, names, want)
	}
}
