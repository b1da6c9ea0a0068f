package app

import (
	"errors"
	"time"

	"github.com/kiruthikag2611/Planify/internal/emitter"
	"github.com/kiruthikag2611/Planify/internal/feed"
	"github.com/kiruthikag2611/Planify/internal/generator"
	"github.com/kiruthikag2611/Planify/internal/layout"
	"github.com/kiruthikag2611/Planify/internal/questionnaire"
	"github.com/kiruthikag2611/Planify/internal/session"
	"github.com/kiruthikag2611/Planify/internal/storage"
)

var ErrSaveFailed = errors.New("could not save all events to your calendar")

type Options struct {
	WeekLayout layout.Options
	DayLayout  layout.Options
	Location   *time.Location
}

func DefaultOptions() Options {
	return Options{
		WeekLayout: layout.DefaultOptions(),
		DayLayout:  layout.Options{CellHeight: 30, MinHeight: 30, FullDay: true},
		Location:   time.Local,
	}
}

// App wires the stores and services behind every user facing operation.
// Each field is created once at process start.
type App struct {
	Storage        storage.Storage
	Sessions       session.Slot
	Generator      generator.Generator
	Hub            *feed.Hub
	Emitter        *emitter.Emitter
	Questionnaires *questionnaire.Registry

	opts Options
	now  func() time.Time
}

type Dependencies struct {
	Storage   storage.Storage
	Sessions  session.Slot
	Generator generator.Generator
	Notifier  feed.Notifier
	Emitter   *emitter.Emitter
}

func New(deps Dependencies, opts Options) *App {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if deps.Emitter == nil {
		deps.Emitter = emitter.New(emitter.DefaultBuffer)
	}
	if deps.Notifier == nil {
		deps.Notifier = feed.NewLocal()
	}
	return &App{
		Storage:        deps.Storage,
		Sessions:       deps.Sessions,
		Generator:      deps.Generator,
		Hub:            feed.NewHub(deps.Storage.ListEvents, deps.Notifier),
		Emitter:        deps.Emitter,
		Questionnaires: questionnaire.NewRegistry(),
		opts:           opts,
		now:            time.Now,
	}
}

func (a *App) Location() *time.Location {
	return a.opts.Location
}

func (a *App) today() time.Time {
	return a.now().In(a.opts.Location)
}
