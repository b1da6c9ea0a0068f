package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kiruthikag2611/Planify/internal/app"
	"github.com/kiruthikag2611/Planify/internal/auth"
	"github.com/kiruthikag2611/Planify/internal/emitter"
	"github.com/kiruthikag2611/Planify/internal/feed"
	"github.com/kiruthikag2611/Planify/internal/generator"
	"github.com/kiruthikag2611/Planify/internal/logger"
	"github.com/kiruthikag2611/Planify/internal/redisclient"
	internalgrpc "github.com/kiruthikag2611/Planify/internal/server/grpc"
	internalhttp "github.com/kiruthikag2611/Planify/internal/server/http"
	"github.com/kiruthikag2611/Planify/internal/session"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/kiruthikag2611/Planify/internal/storagebuilder"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 3 * time.Second

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "./configs/planify_config.yaml", "Path to configuration file")
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Parse()

	if flag.Arg(0) == "version" {
		printVersion()
		return
	}

	config, err := NewConfig(configFile)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	err = logger.PrepareLogger(config.Logger)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	if err := run(ctx, config); err != nil {
		log.Errorf("planify stopped: %v", err)
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}

func run(ctx context.Context, config Config) error {
	loc, err := time.LoadLocation(config.Location)
	if err != nil {
		return fmt.Errorf("invalid location %q: %w", config.Location, err)
	}

	stor, err := storagebuilder.New(ctx, config.Storage)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := stor.Close(ctx); err != nil {
			log.Errorf("failed to close storage: %v", err)
		}
	}()

	var client *redis.Client
	if config.usesRedis() {
		client, err = redisclient.New(ctx, config.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	slot, err := session.New(config.Session, client)
	if err != nil {
		return err
	}
	notifier, err := feed.NewNotifier(config.Feed, client)
	if err != nil {
		return err
	}
	gen, err := generator.New(config.Generator)
	if err != nil {
		return err
	}

	errs := emitter.New(config.ErrorQueue)
	go errs.Listen(ctx, logEmitted)

	opts := config.appOptions(loc)
	planify := app.New(app.Dependencies{
		Storage:   stor,
		Sessions:  slot,
		Generator: gen,
		Notifier:  notifier,
		Emitter:   errs,
	}, opts)
	go func() {
		if err := planify.Hub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("event feed stopped: %v", err)
		}
	}()

	httpServer := internalhttp.NewServer(config.HTTPServer, planify, auth.New(config.Auth))
	grpcServer := internalgrpc.NewServer(config.GrpcServer)

	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Stop(ctx); err != nil {
			log.Error("failed to stop http server: " + err.Error())
		}
		if err := grpcServer.Stop(ctx); err != nil {
			log.Error("failed to stop grpc server: " + err.Error())
		}
	}()

	grpcErr := make(chan error, 1)
	go func() {
		grpcErr <- grpcServer.Start(ctx)
	}()

	log.Info("planify is running...")

	if err := httpServer.Start(ctx); err != nil {
		return err
	}
	select {
	case err := <-grpcErr:
		return err
	case <-time.After(shutdownTimeout):
		return nil
	}
}

func logEmitted(err error) {
	var perr *storage.PermissionError
	if errors.As(err, &perr) {
		log.WithField("path", perr.Path).WithField("operation", perr.Operation).
			Warnf("permission denied: %v", err)
		return
	}
	log.Warnf("background error: %v", err)
}
