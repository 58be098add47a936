package main

import (
	"context"
	"log"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/client/cli"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.MustLoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
