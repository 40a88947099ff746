package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movieBrowser/models"
)

const popularBody = `{"page":1,"results":[
 {"id":550,"title":"El club de la lucha","original_title":"Fight Club","overview":"...","release_date":"1999-10-15","poster_path":"/a.jpg","vote_average":8.4},
 {"id":680,"title":"Pulp Fiction","overview":"","release_date":"1994-09-10","poster_path":"/b.jpg"}
],"total_pages":500,"total_results":10000}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{APIKey: "k", BaseURL: srv.URL})
}

func TestClient_Popular(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("api_key"))
		assert.Equal(t, "es-ES", r.URL.Query().Get("language"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(popularBody))
	})

	movies, err := c.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, models.Movie{
		ID: 550, Title: "El club de la lucha", OriginalTitle: "Fight Club", Overview: "...",
		ReleaseDate: "1999-10-15", PosterPath: "/a.jpg", VoteAverage: 8.4,
	}, movies[0])
}

func TestClient_Search(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			assert.Equal(t, "amélie & co", r.URL.Query().Get("query"))
			assert.Equal(t, "false", r.URL.Query().Get("include_adult"))
			_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
		case "/movie/popular":
			_, _ = w.Write([]byte(popularBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	movies, err := c.Search(context.Background(), "  amélie & co ")
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)

	movies, err = c.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, movies, 2, "blank query falls back to popular")
}

func TestClient_Details(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":550,"title":"El club de la lucha","poster_path":"/a.jpg"}`))
	})

	m, err := c.Details(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), m.ID)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/a.jpg", c.PosterURL(m.PosterPath))

	_, err = c.Details(context.Background(), 0)
	assert.Error(t, err)
}

func TestClient_UpstreamErrors(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/popular" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"results": [`))
	})

	_, err := c.Popular(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)

	_, err = c.Search(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestClient_PosterURL(t *testing.T) {
	c := New(Config{ImageURL: "https://img.example/w92/"})
	assert.Equal(t, "https://img.example/w92/p.jpg", c.PosterURL("/p.jpg"))
	assert.Equal(t, "https://img.example/w92/p.jpg", c.PosterURL("p.jpg"))
	assert.Equal(t, "", c.PosterURL(""))
}
