package main

import (
	"log"

	"github.com/flarebyte/chatterbox/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
