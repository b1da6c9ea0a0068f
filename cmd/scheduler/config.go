package main

import (
	"github.com/kiruthikag2611/Planify/internal/config"
	"github.com/kiruthikag2611/Planify/internal/logger"
	"github.com/kiruthikag2611/Planify/internal/rabbit"
	"github.com/kiruthikag2611/Planify/internal/reminder"
	"github.com/kiruthikag2611/Planify/internal/storagebuilder"
)

type Config struct {
	Logger   logger.Config
	Rabbit   rabbit.Config
	Storage  storagebuilder.Config
	Reminder reminder.Config
}

func NewConfig(configFile string) (Config, error) {
	c := Config{}
	err := config.Load(configFile, map[string]interface{}{
		"rabbit.host":          "127.0.0.1",
		"rabbit.port":          "5672",
		"rabbit.user":          "user",
		"rabbit.password":      "pass",
		"rabbit.queue":         "planify.reminders",
		"logger.level":         "WARN",
		"storage.storageType":  "memory",
		"reminder.scanSpec":    reminder.DefaultScanSpec,
		"reminder.cleanupSpec": reminder.DefaultCleanupSpec,
		"reminder.retention":   reminder.DefaultRetention,
		"reminder.location":    "Local",
	}, &c)
	return c, err
}
