package main

import (
	"log"

	bioquery "github.com/sb2003/BioQuery-Local"
	"github.com/sb2003/BioQuery-Local/server"
	"github.com/sb2003/BioQuery-Local/stores"
)

func main() {
	cfg := bioquery.NewConfig()

	store, err := stores.NewStore(stores.NewStoreConfig(cfg.StoreType, cfg.StoreDSN))
	if err != nil {
		log.Fatalf("Failed to open query store: %v", err)
	}
	defer store.Close()

	pipeline := bioquery.New(cfg)
	srv := server.New(pipeline, store, cfg.RetentionDays)

	log.Printf("BioQuery listening on %s (backend=%s store=%s)", cfg.Addr, cfg.Backend, cfg.StoreType)
	if err := srv.Run(cfg.Addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
