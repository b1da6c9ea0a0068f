package storagebuilder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kiruthikag2611/Planify/internal/storage"
	memorystorage "github.com/kiruthikag2611/Planify/internal/storage/memory"
	sqlstorage "github.com/kiruthikag2611/Planify/internal/storage/sql"
)

var ErrUnknownStorageType = errors.New("unknown storage type")

const connectTimeout = 15 * time.Second

type Config struct {
	StorageType string
	Database    sqlstorage.Config
}

func New(ctx context.Context, config Config) (storage.Storage, error) {
	switch config.StorageType {
	case "memory":
		return memorystorage.New(), nil
	case "sql":
		s := sqlstorage.New(config.Database)
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		err := s.Connect(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database %s %d: %w", config.Database.Host, config.Database.Port, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%q: %w", config.StorageType, ErrUnknownStorageType)
	}
}
