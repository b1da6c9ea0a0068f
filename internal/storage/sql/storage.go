package sqlstorage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kiruthikag2611/Planify/internal/storage"
	"github.com/kiruthikag2611/Planify/internal/util"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

var ErrConnectionFailed = errors.New("failed to connect")

const (
	dbErrUniqueViolation       = "23505"
	dbErrInvalidText           = "22P02"
	dbErrInsufficientPrivilege = "42501"
)

const eventColumns = "id, owner_id AS ownerId, title, type, description, " +
	"to_char(event_date, 'YYYY-MM-DD') AS date, start_time AS startTime, end_time AS endTime, " +
	"priority, difficulty_level AS difficultyLevel, notification_enabled AS notificationEnabled, " +
	"reminder_time AS reminderTime, created_at AS createdAt, updated_at AS updatedAt"

type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

type Storage struct {
	host     string
	port     int
	database string
	username string
	password string
	db       *sqlx.DB
}

func New(config Config) *Storage {
	return &Storage{
		host:     config.Host,
		port:     config.Port,
		database: config.Database,
		username: config.Username,
		password: config.Password,
	}
}

func (s *Storage) Connect(ctx context.Context) error {
	db, err := sqlx.ConnectContext(
		ctx,
		"postgres",
		fmt.Sprintf(
			"sslmode=disable host=%s port=%d dbname=%s user=%s password=%s",
			s.host, s.port, s.database, s.username, s.password),
	)
	if err != nil {
		log.Errorf("failed to connect: %v", err)
		return ErrConnectionFailed
	}
	s.db = db
	return nil
}

func (s *Storage) Close(_ context.Context) error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

func (s *Storage) AddEvent(ctx context.Context, e *storage.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.ApplyDefaults()

	var err error
	switch e.ID {
	case "":
		err = s.db.QueryRowxContext(
			ctx,
			"INSERT INTO Events(owner_id, title, type, description, event_date, start_time, end_time, "+
				"priority, difficulty_level, notification_enabled, reminder_time) "+
				"VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at, updated_at",
			e.OwnerID, e.Title, e.Type, e.Description, e.Date, e.StartTime, e.EndTime,
			e.Priority, e.DifficultyLevel, e.NotificationEnabled, e.ReminderTime,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	default:
		err = s.db.QueryRowxContext(
			ctx,
			"INSERT INTO Events(id, owner_id, title, type, description, event_date, start_time, end_time, "+
				"priority, difficulty_level, notification_enabled, reminder_time) "+
				"VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING created_at, updated_at",
			e.ID, e.OwnerID, e.Title, e.Type, e.Description, e.Date, e.StartTime, e.EndTime,
			e.Priority, e.DifficultyLevel, e.NotificationEnabled, e.ReminderTime,
		).Scan(&e.CreatedAt, &e.UpdatedAt)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == dbErrUniqueViolation {
		return fmt.Errorf("duplicate ID %q: %w", e.ID, storage.ErrDuplicateEventID)
	}
	return mapError(err, e.ID, "create")
}

func (s *Storage) UpdateEvent(ctx context.Context, id string, e storage.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.ApplyDefaults()

	var found bool
	err := s.db.GetContext(
		ctx,
		&found,
		"UPDATE Events SET owner_id=$2, title=$3, type=$4, description=$5, event_date=$6, start_time=$7, "+
			"end_time=$8, priority=$9, difficulty_level=$10, notification_enabled=$11, reminder_time=$12, "+
			"updated_at=now() WHERE id=$1 RETURNING TRUE",
		id,
		e.OwnerID,
		e.Title,
		e.Type,
		e.Description,
		e.Date,
		e.StartTime,
		e.EndTime,
		e.Priority,
		e.DifficultyLevel,
		e.NotificationEnabled,
		e.ReminderTime,
	)
	if err != nil {
		return mapError(err, id, "update")
	}
	if !found {
		return fmt.Errorf("failed to update event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	return nil
}

func (s *Storage) RemoveEvent(ctx context.Context, id string) error {
	var found bool
	err := s.db.GetContext(ctx, &found, "DELETE FROM Events WHERE id=$1 RETURNING TRUE", id)
	if err != nil {
		return mapError(err, id, "delete")
	}
	if !found {
		return fmt.Errorf("failed to remove event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	return nil
}

func (s *Storage) GetEvent(ctx context.Context, id string) (storage.Event, error) {
	var e storage.Event
	err := s.db.GetContext(ctx, &e, "SELECT "+eventColumns+" FROM Events WHERE id=$1", id)
	if err != nil {
		return storage.Event{}, mapError(err, id, "get")
	}
	return e, nil
}

func (s *Storage) ListEvents(ctx context.Context, f storage.Filter) ([]storage.Event, error) {
	query := "SELECT " + eventColumns + " FROM Events WHERE ($1 = '' OR owner_id = $1)"
	args := []interface{}{f.OwnerID}
	if f.Date != "" {
		args = append(args, f.Date)
		query += fmt.Sprintf(" AND event_date = $%d", len(args))
	}
	if f.From != "" {
		args = append(args, f.From)
		query += fmt.Sprintf(" AND event_date >= $%d", len(args))
	}
	if f.To != "" {
		args = append(args, f.To)
		query += fmt.Sprintf(" AND event_date <= $%d", len(args))
	}
	query += " ORDER BY event_date, start_time, id"

	events := make([]storage.Event, 0)
	if err := s.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, mapError(err, "", "list")
	}
	return events, nil
}

// GetEventsByNotifier narrows candidates by date in the database, the exact
// reminder instant is checked in Go because times are stored as text.
func (s *Storage) GetEventsByNotifier(ctx context.Context, from time.Time, to time.Time) ([]storage.Event, error) {
	events := make([]storage.Event, 0)
	err := s.db.SelectContext(
		ctx,
		&events,
		"SELECT "+eventColumns+" FROM Events WHERE notification_enabled "+
			"AND event_date >= $1 AND event_date <= $2",
		util.FormatDate(from),
		util.FormatDate(to.AddDate(0, 0, 1)),
	)
	if err != nil {
		return nil, err
	}
	return storage.DueReminders(events, from, to), nil
}

func (s *Storage) RemoveBefore(ctx context.Context, date time.Time) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM Events WHERE event_date < $1", util.FormatDate(date))
	return err
}

func (s *Storage) SaveProfile(ctx context.Context, p storage.Profile) error {
	answers, err := json.Marshal(p.Answers)
	if err != nil {
		return err
	}
	if p.Answers == nil {
		answers = []byte("{}")
	}
	var lastLogin *time.Time
	if !p.LastLogin.IsZero() {
		lastLogin = &p.LastLogin
	}
	_, err = s.db.ExecContext(
		ctx,
		"INSERT INTO Profiles(user_id, email, display_name, last_login, answers) VALUES($1, $2, $3, $4, $5) "+
			"ON CONFLICT (user_id) DO UPDATE SET "+
			"email=COALESCE(NULLIF(EXCLUDED.email, ''), Profiles.email), "+
			"display_name=COALESCE(NULLIF(EXCLUDED.display_name, ''), Profiles.display_name), "+
			"last_login=COALESCE(EXCLUDED.last_login, Profiles.last_login), "+
			"answers=Profiles.answers || EXCLUDED.answers, updated_at=now()",
		p.UserID, p.Email, p.DisplayName, lastLogin, answers,
	)
	return mapError(err, p.UserID, "save profile")
}

func (s *Storage) GetProfile(ctx context.Context, userID string) (storage.Profile, error) {
	var row struct {
		UserID      string       `db:"user_id"`
		Email       string       `db:"email"`
		DisplayName string       `db:"display_name"`
		LastLogin   sql.NullTime `db:"last_login"`
		Answers     []byte       `db:"answers"`
		UpdatedAt   time.Time    `db:"updated_at"`
	}
	err := s.db.GetContext(
		ctx,
		&row,
		"SELECT user_id, email, display_name, last_login, answers, updated_at FROM Profiles WHERE user_id=$1",
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Profile{}, fmt.Errorf("profile %q: %w", userID, storage.ErrNotFoundProfile)
	}
	if err != nil {
		return storage.Profile{}, err
	}

	p := storage.Profile{
		UserID:      row.UserID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		LastLogin:   row.LastLogin.Time,
		UpdatedAt:   row.UpdatedAt,
	}
	if err := json.Unmarshal(row.Answers, &p.Answers); err != nil {
		return storage.Profile{}, fmt.Errorf("profile %q answers: %w", userID, err)
	}
	return p, nil
}

func mapError(err error, id string, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case dbErrInsufficientPrivilege:
			return &storage.PermissionError{Path: storage.EventPath(id), Operation: operation, Err: err}
		case dbErrInvalidText:
			return fmt.Errorf("event with id %q: %w", id, storage.ErrNotFoundEvent)
		}
	}
	return err
}
