//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

// Command meetingmuse runs the scheduling chat server.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/thisisarjun/meetingmuse-sub000/calendar"
	"github.com/thisisarjun/meetingmuse-sub000/graph"
	"github.com/thisisarjun/meetingmuse-sub000/graph/checkpoint/inmemory"
	checkpointredis "github.com/thisisarjun/meetingmuse-sub000/graph/checkpoint/redis"
	checkpointsqlite "github.com/thisisarjun/meetingmuse-sub000/graph/checkpoint/sqlite"
	"github.com/thisisarjun/meetingmuse-sub000/internal/config"
	llmopenai "github.com/thisisarjun/meetingmuse-sub000/llm/openai"
	"github.com/thisisarjun/meetingmuse-sub000/log"
	"github.com/thisisarjun/meetingmuse-sub000/nodes"
	"github.com/thisisarjun/meetingmuse-sub000/processor"
	"github.com/thisisarjun/meetingmuse-sub000/prompt"
	"github.com/thisisarjun/meetingmuse-sub000/server"
	"github.com/thisisarjun/meetingmuse-sub000/telemetry/trace"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address, overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		clean, err := trace.Start(ctx,
			trace.WithEndpoint(cfg.Telemetry.Endpoint),
			trace.WithProtocol(cfg.Telemetry.Protocol),
		)
		if err != nil {
			log.Fatalf("start tracing: %v", err)
		}
		defer func() {
			if err := clean(); err != nil {
				log.Errorf("shut down tracing: %v", err)
			}
		}()
	}

	saver, err := newSaver(cfg)
	if err != nil {
		log.Fatalf("create checkpoint saver: %v", err)
	}
	defer saver.Close()

	gen := llmopenai.New(
		llmopenai.WithAPIKey(cfg.LLM.APIKey),
		llmopenai.WithBaseURL(cfg.LLM.BaseURL),
		llmopenai.WithModel(cfg.LLM.Model),
		llmopenai.WithTemperature(cfg.LLM.Temperature),
	)

	calOpts := []calendar.GoogleOption{calendar.WithCalendarID(cfg.Calendar.CalendarID)}
	if cfg.Calendar.BaseURL != "" {
		calOpts = append(calOpts, calendar.WithBaseURL(cfg.Calendar.BaseURL))
	}
	cal := calendar.NewGoogleService(calendar.StaticTokenSource(cfg.Calendar.Token), calOpts...)

	workflow, err := nodes.NewGraphBuilder(gen, prompt.NewDefaultRegistry(), cal).Build()
	if err != nil {
		log.Fatalf("build workflow graph: %v", err)
	}

	executor, err := graph.NewExecutor(workflow, saver)
	if err != nil {
		log.Fatalf("create executor: %v", err)
	}

	srv, err := server.New(
		processor.NewMessageProcessor(executor),
		server.WithPoolSize(cfg.Server.PoolSize),
		server.WithAllowedOrigins(cfg.Server.AllowedOrigins...),
	)
	if err != nil {
		log.Fatalf("create server: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.Addr)
	}()

	select {
	case <-ctx.Done():
		log.Infof("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Errorf("server: %v", err)
		}
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}

// newSaver picks the checkpoint backend from config.
func newSaver(cfg *config.Config) (graph.CheckpointSaver, error) {
	switch cfg.Checkpoint.Backend {
	case config.BackendSQLite:
		return checkpointsqlite.NewSaver(cfg.Checkpoint.SQLitePath)
	case config.BackendRedis:
		return checkpointredis.NewSaverFromURL(cfg.Checkpoint.RedisURL)
	default:
		return inmemory.NewSaver(), nil
	}
}
