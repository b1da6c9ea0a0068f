package storagebuilder

import (
	"context"
	"testing"

	memorystorage "github.com/kiruthikag2611/Planify/internal/storage/memory"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New(context.Background(), Config{StorageType: "memory"})
	require.NoError(t, err)
	require.IsType(t, &memorystorage.Storage{}, s)

	_, err = New(context.Background(), Config{StorageType: "firestore"})
	require.ErrorIs(t, err, ErrUnknownStorageType)
}
