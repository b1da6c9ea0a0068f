package main

import (
	"time"

	"github.com/kiruthikag2611/Planify/internal/app"
	"github.com/kiruthikag2611/Planify/internal/auth"
	"github.com/kiruthikag2611/Planify/internal/config"
	"github.com/kiruthikag2611/Planify/internal/feed"
	"github.com/kiruthikag2611/Planify/internal/generator"
	"github.com/kiruthikag2611/Planify/internal/logger"
	"github.com/kiruthikag2611/Planify/internal/redisclient"
	internalgrpc "github.com/kiruthikag2611/Planify/internal/server/grpc"
	internalhttp "github.com/kiruthikag2611/Planify/internal/server/http"
	"github.com/kiruthikag2611/Planify/internal/session"
	"github.com/kiruthikag2611/Planify/internal/storagebuilder"
)

type LayoutConfig struct {
	CellHeight    float64
	MinHeight     float64
	DayCellHeight float64
	DayMinHeight  float64
}

type Config struct {
	HTTPServer internalhttp.Config
	GrpcServer internalgrpc.Config
	Logger     logger.Config
	Storage    storagebuilder.Config
	Redis      redisclient.Config
	Session    session.Config
	Feed       feed.Config
	Generator  generator.Config
	Auth       auth.Config
	Layout     LayoutConfig
	Location   string
	ErrorQueue int
}

func NewConfig(configFile string) (Config, error) {
	c := Config{}
	err := config.Load(configFile, map[string]interface{}{
		"httpServer.host":       "127.0.0.1",
		"httpServer.port":       "8005",
		"grpcServer.host":       "127.0.0.1",
		"grpcServer.port":       "8006",
		"logger.level":          "WARN",
		"storage.storageType":   "memory",
		"session.type":          "memory",
		"session.ttl":           "24h",
		"feed.type":             "local",
		"generator.type":        "static",
		"generator.model":       "gpt-4o-mini",
		"generator.temperature": 0.7,
		"generator.timeout":     "60s",
		"auth.issuer":           "planify",
		"auth.ttl":              "24h",
		"layout.cellHeight":     24,
		"layout.minHeight":      32,
		"layout.dayCellHeight":  30,
		"layout.dayMinHeight":   30,
		"location":              "Local",
		"errorQueue":            64,
	}, &c)
	return c, err
}

func (c Config) appOptions(loc *time.Location) app.Options {
	opts := app.DefaultOptions()
	opts.Location = loc
	opts.WeekLayout.CellHeight = c.Layout.CellHeight
	opts.WeekLayout.MinHeight = c.Layout.MinHeight
	opts.DayLayout.CellHeight = c.Layout.DayCellHeight
	opts.DayLayout.MinHeight = c.Layout.DayMinHeight
	return opts
}

func (c Config) usesRedis() bool {
	return c.Session.Type == "redis" || c.Feed.Type == "redis"
}
