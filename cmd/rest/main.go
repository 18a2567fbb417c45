package main

import (
	"context"
	"log"

	"ai-bookrec-be/internal/bootstrap"
	"ai-bookrec-be/internal/config"
	"ai-bookrec-be/internal/repository/catalog"
	"ai-bookrec-be/internal/server"
	"ai-bookrec-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Load Book Catalog
	catalogRepo, err := catalog.Load(cfg.Engine.CatalogPath)
	if err != nil {
		log.Panicf("Unable to load book catalog from %s: %v", cfg.Engine.CatalogPath, err)
	}
	log.Printf("[INFO] Loaded %d catalog books", catalogRepo.Len())

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(catalogRepo, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Classifier Service...")
		if err := container.ClassifierService.Consume(context.Background()); err != nil {
			log.Printf("Background Classifier Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
