package main

import (
	"github.com/joho/godotenv"

	"pricesense/internal/cli"
)

func main() {
	// A missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	cli.Execute()
}
