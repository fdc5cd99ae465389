package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/clearsolutions/user-api/internal/app/api"
)

func main() {
	_ = godotenv.Load()
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("user api exited: %v", err)
	}
}
