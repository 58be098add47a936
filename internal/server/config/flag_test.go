package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-e", "prod", "-a", "127.0.0.1:8080", "-g", "127.0.0.1:9090",
				"-d", "db", "-s", "secret", "-t", "30", "-n", "log",
			},
			expected: &Config{
				Env:                   "prod",
				HTTPAddr:              "127.0.0.1:8080",
				GRPCAddr:              "127.0.0.1:9090",
				DatabaseDSN:           "db",
				SecretKey:             "secret",
				TokenValidityDuration: 30 * time.Minute,
				Notifier:              "log",
			},
		},
		{
			name: "foreign flags are ignored",
			args: []string{"-c", "cfg.json", "-x", "-s", "secret"},
			expected: &Config{
				SecretKey: "secret",
			},
		},
		{
			name:    "bad duration",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsTokenValidityWhenAbsent(t *testing.T) {
	config := &Config{TokenValidityDuration: 2 * time.Hour}

	require.NoError(t, parseFlags(config, nil))
	assert.Equal(t, 2*time.Hour, config.TokenValidityDuration)
}
