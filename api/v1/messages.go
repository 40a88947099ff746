package apiv1

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"movieBrowser/models"
)

// ErrMalformed is returned when a payload lacks a required field or carries
// one of the wrong kind.
var ErrMalformed = errors.New("malformed message")

// Movie is a catalog entry together with its absolute poster URL.
type Movie struct {
	models.Movie
	PosterURL string
}

// Requests

func NewLoginRequest(username, password string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"username": username,
		"password": password,
	})
}

func LoginRequest(in *structpb.Struct) (username, password string) {
	return stringField(in, "username"), stringField(in, "password")
}

func NewCreateUserRequest(username, password string, role models.Role) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"username": username,
		"password": password,
		"role":     string(role),
	})
}

func CreateUserRequest(in *structpb.Struct) (username, password string, role models.Role) {
	return stringField(in, "username"), stringField(in, "password"), models.Role(stringField(in, "role"))
}

// NewUpdateUserRequest only carries the fields set in upd.
func NewUpdateUserRequest(id int64, upd models.UserUpdate) (*structpb.Struct, error) {
	m := map[string]any{"id": id}
	if upd.Username != nil {
		m["username"] = *upd.Username
	}
	if upd.Password != nil {
		m["password"] = *upd.Password
	}
	if upd.Role != nil {
		m["role"] = string(*upd.Role)
	}
	return structpb.NewStruct(m)
}

func UpdateUserRequest(in *structpb.Struct) (int64, models.UserUpdate, error) {
	id, err := intField(in, "id")
	if err != nil {
		return 0, models.UserUpdate{}, err
	}
	upd := models.UserUpdate{
		Username: optStringField(in, "username"),
		Password: optStringField(in, "password"),
	}
	if r := optStringField(in, "role"); r != nil {
		role := models.Role(*r)
		upd.Role = &role
	}
	return id, upd, nil
}

func NewIDRequest(id int64) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"id": id})
}

func IDRequest(in *structpb.Struct) (int64, error) {
	return intField(in, "id")
}

func NewSearchRequest(query string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"query": query})
}

func SearchRequest(in *structpb.Struct) string {
	return stringField(in, "query")
}

// Responses

func NewLoginResponse(token string, u models.User) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"token": token,
		"user":  userMap(u),
	})
}

func LoginResponse(out *structpb.Struct) (string, models.User, error) {
	u, err := UserResponse(out)
	if err != nil {
		return "", models.User{}, err
	}
	token := stringField(out, "token")
	if token == "" {
		return "", models.User{}, fmt.Errorf("%w: missing %q", ErrMalformed, "token")
	}
	return token, u, nil
}

func NewUserResponse(u models.User) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"user": userMap(u)})
}

func UserResponse(out *structpb.Struct) (models.User, error) {
	s := out.GetFields()["user"].GetStructValue()
	if s == nil {
		return models.User{}, fmt.Errorf("%w: missing %q", ErrMalformed, "user")
	}
	return userFromStruct(s)
}

func NewUsersResponse(users []models.User) (*structpb.Struct, error) {
	list := make([]any, 0, len(users))
	for _, u := range users {
		list = append(list, userMap(u))
	}
	return structpb.NewStruct(map[string]any{"users": list})
}

func UsersResponse(out *structpb.Struct) ([]models.User, error) {
	values := out.GetFields()["users"].GetListValue().GetValues()
	users := make([]models.User, 0, len(values))
	for _, v := range values {
		u, err := userFromStruct(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func NewUpdateUserResponse(updated, roleCoerced bool) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"updated":      updated,
		"role_coerced": roleCoerced,
	})
}

func UpdateUserResponse(out *structpb.Struct) (updated, roleCoerced bool) {
	f := out.GetFields()
	return f["updated"].GetBoolValue(), f["role_coerced"].GetBoolValue()
}

func NewDeleteUserResponse(deleted bool) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"deleted": deleted})
}

func DeleteUserResponse(out *structpb.Struct) bool {
	return out.GetFields()["deleted"].GetBoolValue()
}

func NewMoviesResponse(movies []Movie) (*structpb.Struct, error) {
	list := make([]any, 0, len(movies))
	for _, m := range movies {
		list = append(list, movieMap(m))
	}
	return structpb.NewStruct(map[string]any{"movies": list})
}

func MoviesResponse(out *structpb.Struct) ([]Movie, error) {
	values := out.GetFields()["movies"].GetListValue().GetValues()
	movies := make([]Movie, 0, len(values))
	for _, v := range values {
		m, err := movieFromStruct(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, nil
}

func NewMovieResponse(m Movie) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"movie": movieMap(m)})
}

func MovieResponse(out *structpb.Struct) (Movie, error) {
	s := out.GetFields()["movie"].GetStructValue()
	if s == nil {
		return Movie{}, fmt.Errorf("%w: missing %q", ErrMalformed, "movie")
	}
	return movieFromStruct(s)
}

func userMap(u models.User) map[string]any {
	return map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"role":     string(u.Role),
	}
}

func userFromStruct(s *structpb.Struct) (models.User, error) {
	if s == nil {
		return models.User{}, fmt.Errorf("%w: user is not an object", ErrMalformed)
	}
	id, err := intField(s, "id")
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		ID:       id,
		Username: stringField(s, "username"),
		Role:     models.Role(stringField(s, "role")),
	}, nil
}

func movieMap(m Movie) map[string]any {
	return map[string]any{
		"id":             m.ID,
		"title":          m.Title,
		"original_title": m.OriginalTitle,
		"overview":       m.Overview,
		"release_date":   m.ReleaseDate,
		"poster_path":    m.PosterPath,
		"poster_url":     m.PosterURL,
		"vote_average":   m.VoteAverage,
	}
}

func movieFromStruct(s *structpb.Struct) (Movie, error) {
	if s == nil {
		return Movie{}, fmt.Errorf("%w: movie is not an object", ErrMalformed)
	}
	id, err := intField(s, "id")
	if err != nil {
		return Movie{}, err
	}
	return Movie{
		Movie: models.Movie{
			ID:            id,
			Title:         stringField(s, "title"),
			OriginalTitle: stringField(s, "original_title"),
			Overview:      stringField(s, "overview"),
			ReleaseDate:   stringField(s, "release_date"),
			PosterPath:    stringField(s, "poster_path"),
			VoteAverage:   s.GetFields()["vote_average"].GetNumberValue(),
		},
		PosterURL: stringField(s, "poster_url"),
	}, nil
}

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// optStringField returns nil when key is absent or not a string.
func optStringField(s *structpb.Struct, key string) *string {
	v, ok := s.GetFields()[key].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil
	}
	str := v.StringValue
	return &str
}

func intField(s *structpb.Struct, key string) (int64, error) {
	v, ok := s.GetFields()[key].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformed, key)
	}
	n := v.NumberValue
	if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformed, key)
	}
	return int64(n), nil
}
