package main

import (
	"fmt"
	"os"

	"yof-server/internal/actions"
	"yof-server/internal/api"
	"yof-server/internal/config"
	"yof-server/internal/db"
	"yof-server/internal/dispatch"
	"yof-server/internal/llm"
	redisdb "yof-server/internal/redis"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)

	client, err := llm.NewClient(cfg.OpenAI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "LLM client error: %v\n", err)
		os.Exit(1)
	}

	lib := actions.NewLibrary(db.DB, client)
	registry := dispatch.NewCoachRegistry(lib)
	dispatcher := dispatch.NewDispatcher(client.Chat, registry, lib, cfg)

	r := api.SetupRouter(cfg, rdb, lib, dispatcher, client)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	config.Logger.Infow("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
