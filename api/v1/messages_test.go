package apiv1

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"movieBrowser/models"
)

func TestUpdateUserRequest_OnlySetFieldsTravel(t *testing.T) {
	name := "carol"
	role := models.RoleAdmin
	in, err := NewUpdateUserRequest(7, models.UserUpdate{Username: &name, Role: &role})
	require.NoError(t, err)

	assert.NotContains(t, in.GetFields(), "password")

	id, upd, err := UpdateUserRequest(in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.NotNil(t, upd.Username)
	assert.Equal(t, "carol", *upd.Username)
	assert.Nil(t, upd.Password)
	require.NotNil(t, upd.Role)
	assert.Equal(t, models.RoleAdmin, *upd.Role)
}

func TestIDRequest_RejectsMissingAndFractionalIDs(t *testing.T) {
	_, err := IDRequest(&structpb.Struct{})
	assert.True(t, errors.Is(err, ErrMalformed))

	in, err := structpb.NewStruct(map[string]any{"id": 1.5})
	require.NoError(t, err)
	_, err = IDRequest(in)
	assert.True(t, errors.Is(err, ErrMalformed))

	in, err = structpb.NewStruct(map[string]any{"id": "1"})
	require.NoError(t, err)
	_, err = IDRequest(in)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestLoginResponse_RequiresTokenAndUser(t *testing.T) {
	out, err := NewLoginResponse("tok", models.User{ID: 1, Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	token, u, err := LoginResponse(out)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}, u)

	_, _, err = LoginResponse(&structpb.Struct{})
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestMoviesResponse_KeepsPosterURL(t *testing.T) {
	out, err := NewMoviesResponse([]Movie{{
		Movie:     models.Movie{ID: 603, Title: "Matrix", PosterPath: "/m.jpg", VoteAverage: 8.2},
		PosterURL: "https://img/w500/m.jpg",
	}})
	require.NoError(t, err)

	movies, err := MoviesResponse(out)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(603), movies[0].ID)
	assert.Equal(t, "https://img/w500/m.jpg", movies[0].PosterURL)
	assert.InDelta(t, 8.2, movies[0].VoteAverage, 1e-9)
}

func TestUsersResponse_EmptyList(t *testing.T) {
	out, err := NewUsersResponse(nil)
	require.NoError(t, err)
	users, err := UsersResponse(out)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)
}
