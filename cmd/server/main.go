// Command server runs the language tutor HTTP API.
package main

import (
	"context"
	"log"

	"github.com/heartmarshall/langtutor-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("app: %v", err)
	}
}
