package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
guide: data/subjects/walking plantar pressure time slot.xlsx
conditions:
  - fast walking
  - slow walking
output: results
max_read_rate: 0.5
`))
	require.NoError(t, err)

	assert.Equal(t, "data/subjects/walking plantar pressure time slot.xlsx", cfg.Guide)
	assert.Equal(t, []string{"fast walking", "slow walking"}, cfg.Conditions)
	assert.Equal(t, "results", cfg.Output)
	assert.Equal(t, 0.5, cfg.MaxReadRate)

	t.Run("defaults applied", func(t *testing.T) {
		assert.Equal(t, "data/left_foot_mask.png", cfg.Mask)
		assert.Equal(t, ":8080", cfg.Addr)
	})
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing guide", "conditions: [walking]\n"},
		{"missing conditions", "guide: g.xlsx\n"},
		{"bad read rate", "guide: g.xlsx\nconditions: [walking]\nmax_read_rate: 2\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
