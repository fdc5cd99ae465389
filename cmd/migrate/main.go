// Command migrate applies the database schema and exits. The API server also
// migrates on boot; this binary exists for deploy pipelines that separate
// schema changes from rollout.
package main

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/clearsolutions/user-api/internal/platform/migrations"
)

func main() {
	_ = godotenv.Load()
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}
	if err := migrations.Run(dsn); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	log.Println("migrations applied")
}
