package main

import (
	"context"
	"net/http"
	"time"

	_ "time/tzdata" // Load timezone data

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/app"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/config"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

const seedTimeout = 30 * time.Second

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	// Conditionally seed sample inventory if the feature flag is enabled.
	if cfg.LDFlag_SeedDbWithTestData {
		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		err := app.SeedAllTestData(ctx, application.Zones, application.Projects, application.Units)
		cancel()
		if err != nil {
			utils.Logger.Fatal("Failed to seed test data:", err)
		}
	}

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, application.Handler()); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
