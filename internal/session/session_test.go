package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

func TestOpenMissingFileIsLoggedOut(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope", "session.json"))

	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())
	assert.Equal(t, "User", s.DisplayName())
}

func TestBeginPersistsAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := Open(path)
	require.NoError(t, s.Begin("tok-123", models.User{Username: "ravi", Email: "ravi@example.com"}))

	reopened := Open(path)
	assert.True(t, reopened.LoggedIn())
	assert.Equal(t, "tok-123", reopened.Token())
	assert.Equal(t, "ravi", reopened.User().Username)
	assert.False(t, reopened.LoginTime().IsZero())
}

func TestDisplayNameCapitalizesFirstLetter(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, s.Begin("tok", models.User{Username: "priya"}))

	assert.Equal(t, "Priya", s.DisplayName())
}

func TestClearDropsEverythingTogether(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := Open(path)
	require.NoError(t, s.Begin("tok", models.User{Username: "ravi"}))
	require.NoError(t, s.Clear())

	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.User().Username)
	assert.True(t, s.LoginTime().IsZero())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-cleared session is fine.
	require.NoError(t, s.Clear())
}

func TestCorruptFileIsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := Open(path)
	assert.False(t, s.LoggedIn())
}
