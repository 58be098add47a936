package config

import (
	"flag"
	"io"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-e string   environment (local, dev, prod)
//	-a string   HTTP bind address (e.g. ":3005")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-n string   notifier (smtp, log)
//
// Args are filtered first so flags owned by other layers (-c) do not collide.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-e", "-a", "-g", "-d", "-s", "-t", "-n"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.Env, "e", config.Env, "environment")
	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.Notifier, "n", config.Notifier, "notifier (smtp, log)")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	return nil
}
