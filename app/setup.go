package app

import (
	"fmt"

	"github.com/collegehub/cms-api/api"
	"github.com/collegehub/cms-api/config"
	"github.com/collegehub/cms-api/database"
	"github.com/collegehub/cms-api/router"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		print("If not running, run the following command:\n")
		print("  make docker-up   (for Docker setup)\n")
		print("  make db-up       (for local PostgreSQL)\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		return err
	}

	// Seed the bootstrap admin and the root college
	seeder := database.NewSeeder(store.DB())
	if err := seeder.SeedAll(); err != nil {
		print("Warning: seeding failed\n")
		print("Error: ", err.Error(), "\n")
		// Don't fail the app, just log the warning
	}

	// Defer Closing DB
	defer store.Close()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Middleware & Routes
	router.SetupRoutes(app, store, getEnv)

	// Get the PORT & Start the Server
	return server.Run()

}
