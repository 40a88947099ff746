package client

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movieBrowser/models"
)

func runShell(t *testing.T, c *Client, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	err := NewShell(c, strings.NewReader(strings.Join(script, "\n")+"\n"), &out).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestShell_AdminSession(t *testing.T) {
	c, _, _ := newTestClient(t, "shell_admin")

	out := runShell(t, c,
		"users",
		"login admin wrong",
		"login admin 1234",
		"add carol pw",
		"add carol pw",
		"users",
		"edit 1 role=user",
		"delete 1",
		"delete 99",
		"popular",
		"exit",
	)

	assert.Contains(t, out, "Please log in first")
	assert.Contains(t, out, "Login failed: login: invalid credentials")
	assert.Contains(t, out, "Signed in as admin (admin)")
	assert.Contains(t, out, "Created user 2 carol (user)")
	assert.Contains(t, out, "username already exists")
	assert.Contains(t, out, "carol")
	assert.Contains(t, out, "User updated; role kept as admin")
	assert.Contains(t, out, "bootstrap administrator cannot be deleted")
	assert.Contains(t, out, "User not found")
	assert.Contains(t, out, "Unknown command")
	assert.True(t, strings.HasSuffix(out, "Bye\n"))
}

func TestShell_RestoresSessionToMovieScreen(t *testing.T) {
	c, _, repo := newTestClient(t, "shell_movies")
	_, err := repo.Create(context.Background(), "bob", "pw", models.RoleUser)
	require.NoError(t, err)
	_, err = c.Login(context.Background(), "bob", "pw")
	require.NoError(t, err)

	out := runShell(t, c, "popular", "search Alien", "show 7", "logout", "popular")

	assert.Contains(t, out, "Signed in as bob\n")
	assert.Contains(t, out, "Amélie")
	assert.Contains(t, out, "Alien")
	assert.Contains(t, out, "Detail")
	assert.Contains(t, out, "Logged out")
	assert.Contains(t, out, "moviebrowser:login> ")
	assert.Contains(t, out, "Please log in first")
}

func TestParseEdit(t *testing.T) {
	id, upd, err := parseEdit([]string{"3", "username=zoe", "role=admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	require.NotNil(t, upd.Username)
	assert.Equal(t, "zoe", *upd.Username)
	assert.Nil(t, upd.Password)
	require.NotNil(t, upd.Role)
	assert.Equal(t, models.RoleAdmin, *upd.Role)

	_, _, err = parseEdit([]string{"3"})
	assert.Error(t, err)
	_, _, err = parseEdit([]string{"x", "role=user"})
	assert.Error(t, err)
	_, _, err = parseEdit([]string{"3", "email=a"})
	assert.Error(t, err)
}
