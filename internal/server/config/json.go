package config

import (
	"encoding/json"
	"os"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/flagx"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	Env                   string         `json:"env"`
	HTTPAddr              string         `json:"http_addr"`
	GRPCAddr              string         `json:"grpc_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	VerificationCodeTTL   timex.Duration `json:"verification_code_ttl"`
	ResendCooldown        timex.Duration `json:"resend_cooldown"`
	BcryptCost            int            `json:"bcrypt_cost"`
	DefaultRole           string         `json:"default_role"`
	PhoneRegion           string         `json:"phone_region"`
	Notifier              string         `json:"notifier"`
	SMTP                  struct {
		Host        string         `json:"host"`
		Port        int            `json:"port"`
		Username    string         `json:"username"`
		Password    string         `json:"password"`
		From        string         `json:"from"`
		FromName    string         `json:"from_name"`
		ImplicitTLS *bool          `json:"implicit_tls"`
		Timeout     timex.Duration `json:"timeout"`
	} `json:"smtp"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
}

// parseJSON loads the file named by -c/-config, if any, and copies every
// field it sets onto config. Fields absent from the file keep their values.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.Env, c.Env)
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.DefaultRole, c.DefaultRole)
	setString(&config.PhoneRegion, c.PhoneRegion)
	setString(&config.Notifier, c.Notifier)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.VerificationCodeTTL.Duration != 0 {
		config.VerificationCodeTTL = c.VerificationCodeTTL.Duration
	}
	if c.ResendCooldown.Duration != 0 {
		config.ResendCooldown = c.ResendCooldown.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}

	setString(&config.SMTP.Host, c.SMTP.Host)
	setString(&config.SMTP.Username, c.SMTP.Username)
	setString(&config.SMTP.Password, c.SMTP.Password)
	setString(&config.SMTP.From, c.SMTP.From)
	setString(&config.SMTP.FromName, c.SMTP.FromName)
	if c.SMTP.Port != 0 {
		config.SMTP.Port = c.SMTP.Port
	}
	if c.SMTP.ImplicitTLS != nil {
		config.SMTP.ImplicitTLS = *c.SMTP.ImplicitTLS
	}
	if c.SMTP.Timeout.Duration != 0 {
		config.SMTP.Timeout = c.SMTP.Timeout.Duration
	}

	setString(&config.Redis.Addr, c.Redis.Addr)
	setString(&config.Redis.Password, c.Redis.Password)
	if c.Redis.DB != 0 {
		config.Redis.DB = c.Redis.DB
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
