package main

import (
	"context"
	"log"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/dtroode/projectopen-signup/internal/api/lambda"
	"github.com/dtroode/projectopen-signup/internal/app"
	"github.com/dtroode/projectopen-signup/internal/config"
	"github.com/dtroode/projectopen-signup/internal/logger"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	// Built once per execution environment and reused across invocations.
	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", "error", err)
	}

	handler := lambda.NewHandler(a.Registration, logger)
	awslambda.Start(handler.Handle)
}
