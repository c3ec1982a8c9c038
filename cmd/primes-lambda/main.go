package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/brendan.keane/numberfacts/internal/logger"
	"github.com/brendan.keane/numberfacts/internal/primes"
)

func main() {
	log := logger.InitLogger(&logger.Config{
		Level:  os.Getenv("NUMBERFACTS_LOG_LEVEL"),
		Format: "json",
		Output: os.Stdout,
	})

	lambda.Start(primes.NewCounter(log).Handle)
}
