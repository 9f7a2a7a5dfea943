package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.yaml"))
}

func TestStoreRoundTrip(t *testing.T) {
	store := testStore(t)

	sess := &Session{
		UserID:      42,
		Name:        "Rei",
		Email:       "rei@example.com",
		AccessToken: "token-123",
	}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	assert.Equal(t, sess, loaded)
	assert.Equal(t, 42, loaded.User().ID)
	assert.Equal(t, "Rei", loaded.User().Name)
}

func TestLoadMissingSession(t *testing.T) {
	store := testStore(t)

	sess, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLoadIncompleteSession(t *testing.T) {
	store := testStore(t)

	// A session without a token must gate the user back to login
	if err := store.Save(&Session{UserID: 7, Name: "Asuka"}); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	sess, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestClear(t *testing.T) {
	store := testStore(t)

	if err := store.Save(&Session{UserID: 1, AccessToken: "t"}); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	assert.NoError(t, store.Clear())

	_, err := os.Stat(store.path)
	assert.True(t, os.IsNotExist(err))

	// Clearing again is fine
	assert.NoError(t, store.Clear())
}
