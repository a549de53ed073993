package main

// bioquery-check verifies the local environment: the EMBOSS toolkit on PATH,
// the Ollama server, and a smoke run through the pipeline. Exit status is
// non-zero when anything required is missing.

import (
	"fmt"
	"os"

	bioquery "github.com/sb2003/BioQuery-Local"
	"github.com/sb2003/BioQuery-Local/emboss"
	"github.com/sb2003/BioQuery-Local/models/ollama"
)

func main() {
	cfg := bioquery.NewConfig()
	failed := false

	version, err := emboss.CheckInstalled()
	if err != nil {
		fmt.Printf("FAIL EMBOSS: %v\n", err)
		failed = true
	} else {
		fmt.Printf("OK   EMBOSS: %s\n", version)
	}

	model := &ollama.Ollama_Model{Model: cfg.ModelName, BaseURL: cfg.OllamaHost}
	if err := model.Ping(); err != nil {
		fmt.Printf("WARN Ollama: %v (queries fall back to keyword parsing)\n", err)
	} else {
		fmt.Println("OK   Ollama: reachable")
	}

	pipeline := bioquery.New(cfg)
	result := pipeline.ProcessQuery("What is the GC content of ATGGCGAATTACGTAGCTAGCT?")
	if !result.Success {
		fmt.Printf("FAIL Pipeline smoke test: %s\n", result.Error)
		failed = true
	} else {
		fmt.Printf("OK   Pipeline smoke test: tool=%s\n", result.Tool)
	}

	if failed {
		os.Exit(1)
	}
}
