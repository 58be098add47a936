package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"env":                     "dev",
		"http_addr":               "www.example:8000",
		"grpc_addr":               "www.example:9000",
		"database_dsn":            "postgres://db",
		"secret_key":              "my_secret_key",
		"token_validity_duration": "1h",
		"verification_code_ttl":   "5m",
		"resend_cooldown":         "1m",
		"bcrypt_cost":             12,
		"default_role":            "Administrador",
		"phone_region":            "US",
		"notifier":                "log",
		"smtp": map[string]any{
			"host":         "mail.example",
			"port":         587,
			"username":     "user",
			"password":     "pass",
			"from":         "noreply@example.com",
			"from_name":    "Logistics",
			"implicit_tls": false,
			"timeout":      "3s",
		},
		"redis": map[string]any{
			"addr": "localhost:6379",
			"db":   2,
		},
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "dev", cfg.Env)
		assert.Equal(t, "www.example:8000", cfg.HTTPAddr)
		assert.Equal(t, "www.example:9000", cfg.GRPCAddr)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, 5*time.Minute, cfg.VerificationCodeTTL)
		assert.Equal(t, time.Minute, cfg.ResendCooldown)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, "Administrador", cfg.DefaultRole)
		assert.Equal(t, "US", cfg.PhoneRegion)
		assert.Equal(t, NotifierLog, cfg.Notifier)
		assert.Equal(t, "mail.example:587", cfg.SMTP.Addr())
		assert.Equal(t, "user", cfg.SMTP.Username)
		assert.Equal(t, "pass", cfg.SMTP.Password)
		assert.Equal(t, "noreply@example.com", cfg.SMTP.From)
		assert.Equal(t, "Logistics", cfg.SMTP.FromName)
		assert.False(t, cfg.SMTP.ImplicitTLS)
		assert.Equal(t, 3*time.Second, cfg.SMTP.Timeout)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		assert.Equal(t, 2, cfg.Redis.DB)
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		cfg := &Config{HTTPAddr: "defaults:1234", SecretKey: "key", BcryptCost: 10}
		require.NoError(t, parseJSON(cfg, []string{"-s", "x"}))

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, "key", cfg.SecretKey)
		assert.Equal(t, 10, cfg.BcryptCost)
	})

	t.Run("partial file keeps the rest", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"grpc_addr": ":1"})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-c", partial}))

		assert.Equal(t, ":1", cfg.GRPCAddr)
		assert.Equal(t, ":3005", cfg.HTTPAddr)
		assert.True(t, cfg.SMTP.ImplicitTLS)
	})

	t.Run("invalid JSON returns error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := &Config{}
		require.Error(t, parseJSON(cfg, []string{"-config", bad}))
	})
}
