// README: Applies the embedded schema to the configured database.
package main

import (
	"context"
	"log"

	"logistica/internal/config"
	"logistica/internal/infra"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := infra.ApplySchema(ctx, pool); err != nil {
		log.Fatal(err)
	}
	log.Println("schema applied")
}
