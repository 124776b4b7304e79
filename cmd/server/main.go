package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tracker/internal/app"
	"tracker/internal/handlers"
	"tracker/internal/logger"

	"github.com/gofiber/fiber/v2"
)

func main() {
	logger.Init(os.Getenv("ENVIRONMENT"))
	log := logger.New("main").Function("main")

	app, err := app.New()
	if err != nil {
		log.Er("failed to create app", err)
		os.Exit(1)
	}

	server := fiber.New(fiber.Config{
		AppName: "tracker",
	})

	if err := handlers.Router(server, app); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		log.Info("Shutting down")
		if err := server.Shutdown(); err != nil {
			log.Er("failed to shut down server", err)
		}
	}()

	addr := fmt.Sprintf(":%d", app.Config.ServerPort)
	log.Info("Listening", "addr", addr)
	if err := server.Listen(addr); err != nil {
		log.Er("server stopped", err)
	}

	if err := app.Close(); err != nil {
		log.Er("failed to close app", err)
	}
}
