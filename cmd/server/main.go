package main

import (
	"context"
	"log"
	"os"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.MustLoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
