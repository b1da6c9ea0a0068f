// Package reminder finds events whose reminder is due and hands them to a
// message queue, and turns queued messages back into notifications.
package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/kiruthikag2611/Planify/internal/rabbit"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultScanSpec    = "@every 1m"
	DefaultCleanupSpec = "@daily"
	DefaultRetention   = 365 * 24 * time.Hour
)

type Publisher interface {
	Publish(body []byte) error
}

type Source interface {
	GetEventsByNotifier(ctx context.Context, from time.Time, to time.Time) ([]storage.Event, error)
	RemoveBefore(ctx context.Context, date time.Time) error
}

type Config struct {
	ScanSpec    string
	CleanupSpec string
	Retention   time.Duration
	Location    string
}

type Scheduler struct {
	source    Source
	publisher Publisher
	scanSpec  string
	cleanSpec string
	retention time.Duration
	loc       *time.Location
	now       func() time.Time

	mu   sync.Mutex
	last time.Time
}

func New(source Source, publisher Publisher, config Config) (*Scheduler, error) {
	loc := time.Local
	if config.Location != "" {
		var err error
		if loc, err = time.LoadLocation(config.Location); err != nil {
			return nil, fmt.Errorf("invalid location %q: %w", config.Location, err)
		}
	}
	s := &Scheduler{
		source:    source,
		publisher: publisher,
		scanSpec:  config.ScanSpec,
		cleanSpec: config.CleanupSpec,
		retention: config.Retention,
		loc:       loc,
		now:       time.Now,
	}
	if s.scanSpec == "" {
		s.scanSpec = DefaultScanSpec
	}
	if s.cleanSpec == "" {
		s.cleanSpec = DefaultCleanupSpec
	}
	if s.retention <= 0 {
		s.retention = DefaultRetention
	}
	s.last = s.now().In(loc).Add(-time.Minute)
	return s, nil
}

func NewMessage(e storage.Event, at time.Time) rabbit.Message {
	return rabbit.Message{
		ID:        e.ID,
		Title:     e.Title,
		Type:      e.Type,
		Date:      e.Date,
		StartTime: e.StartTime,
		RemindAt:  at,
		OwnerID:   e.OwnerID,
	}
}

// Scan publishes reminders due since the previous scan. The window only moves
// forward when every due reminder was published.
func (s *Scheduler) Scan(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, to := s.last, s.now().In(s.loc)
	log.Debugf("get events: %s - %s", from, to)
	events, err := s.source.GetEventsByNotifier(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to get events: %w", err)
	}

	sent := 0
	for _, e := range events {
		at, _ := e.RemindAt(s.loc)
		data, err := json.Marshal(NewMessage(e, at))
		if err != nil {
			return sent, err
		}
		if err := s.publisher.Publish(data); err != nil {
			return sent, fmt.Errorf("failed to publish reminder %s: %w", e.ID, err)
		}
		log.Debugf("send event: %s", e.ID)
		sent++
	}
	s.last = to
	return sent, nil
}

// Cleanup drops events older than the retention period.
func (s *Scheduler) Cleanup(ctx context.Context) error {
	return s.source.RemoveBefore(ctx, s.now().In(s.loc).Add(-s.retention))
}

// Run executes scans and cleanups on their cron schedules until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.loc))
	if _, err := c.AddFunc(s.scanSpec, func() {
		if n, err := s.Scan(ctx); err != nil {
			log.Errorf("reminder scan failed: %v", err)
		} else if n > 0 {
			log.Infof("published %d reminders", n)
		}
	}); err != nil {
		return fmt.Errorf("invalid scan schedule %q: %w", s.scanSpec, err)
	}
	if _, err := c.AddFunc(s.cleanSpec, func() {
		if err := s.Cleanup(ctx); err != nil {
			log.Errorf("cleanup failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", s.cleanSpec, err)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
