package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movieBrowser/models"
)

func TestHolders(t *testing.T) {
	holders := map[string]Holder{
		"file":   NewFileHolder(filepath.Join(t.TempDir(), "nested", "session.json")),
		"memory": &MemoryHolder{},
	}
	for name, h := range holders {
		t.Run(name, func(t *testing.T) {
			s, err := h.Get()
			require.NoError(t, err)
			assert.Nil(t, s)

			want := Session{User: models.User{ID: 2, Username: "alice", Role: models.RoleUser}, Token: "tok"}
			require.NoError(t, h.Set(want))

			got, err := h.Get()
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, want, *got)

			require.NoError(t, h.Clear())
			got, err = h.Get()
			require.NoError(t, err)
			assert.Nil(t, got)

			// Clearing twice is fine.
			require.NoError(t, h.Clear())
		})
	}
}

func TestFileHolder_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	want := Session{User: *models.NewBootstrapAdmin(), Token: "t"}
	require.NoError(t, NewFileHolder(path).Set(want))

	got, err := NewFileHolder(path).Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileHolder_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileHolder(path).Get()
	assert.Error(t, err)
}
