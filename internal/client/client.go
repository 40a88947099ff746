// Package client is the terminal client's view of the server: it signs in,
// keeps the session on disk and routes the user to the admin or movie screen.
package client

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	apiv1 "movieBrowser/api/v1"
	"movieBrowser/internal/session"
	"movieBrowser/models"
)

// Screen is the part of the UI a user lands on.
type Screen string

const (
	ScreenLogin  Screen = "login"
	ScreenAdmin  Screen = "admin"
	ScreenMovies Screen = "movies"
)

// ErrNotLoggedIn is returned by calls that need a session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// Route picks the screen for an identity: admins manage users, everyone else
// browses movies.
func Route(u *models.User) Screen {
	switch {
	case u == nil:
		return ScreenLogin
	case u.IsAdmin():
		return ScreenAdmin
	default:
		return ScreenMovies
	}
}

// Dial opens a plaintext connection to the server.
func Dial(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

type Client struct {
	api      *apiv1.Client
	sessions session.Holder
	log      *zap.Logger
}

func New(cc grpc.ClientConnInterface, sessions session.Holder, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{api: apiv1.NewClient(cc), sessions: sessions, log: log}
}

// Login signs in and stores the session.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	in, err := apiv1.NewLoginRequest(username, password)
	if err != nil {
		return nil, err
	}
	out, err := c.api.Call(ctx, apiv1.AuthService_Login_FullMethodName, in)
	if err != nil {
		return nil, err
	}
	token, u, err := apiv1.LoginResponse(out)
	if err != nil {
		return nil, err
	}
	if err := c.sessions.Set(session.Session{User: u, Token: token}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	c.log.Info("logged in", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))
	return &u, nil
}

// Logout forgets the stored session.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// Restore checks a stored session against the server. A token the server
// rejects is cleared and nil is returned; transport failures keep the session.
func (c *Client) Restore(ctx context.Context) (*models.User, error) {
	s, err := c.sessions.Get()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	u, err := c.me(ctx, s.Token)
	if err != nil {
		switch status.Code(err) {
		case codes.Unauthenticated, codes.PermissionDenied:
			c.log.Info("stored session rejected", zap.Error(err))
			return nil, c.sessions.Clear()
		}
		return nil, err
	}
	if err := c.sessions.Set(session.Session{User: *u, Token: s.Token}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return u, nil
}

// Current returns the stored identity without contacting the server.
func (c *Client) Current() (*models.User, error) {
	s, err := c.sessions.Get()
	if err != nil || s == nil {
		return nil, err
	}
	u := s.User
	return &u, nil
}

func (c *Client) me(ctx context.Context, token string) (*models.User, error) {
	out, err := c.api.Call(withToken(ctx, token), apiv1.AuthService_Me_FullMethodName, nil)
	if err != nil {
		return nil, err
	}
	u, err := apiv1.UserResponse(out)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	out, err := c.call(ctx, apiv1.AdminService_ListUsers_FullMethodName, nil)
	if err != nil {
		return nil, err
	}
	return apiv1.UsersResponse(out)
}

func (c *Client) CreateUser(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	in, err := apiv1.NewCreateUserRequest(username, password, role)
	if err != nil {
		return nil, err
	}
	out, err := c.call(ctx, apiv1.AdminService_CreateUser_FullMethodName, in)
	if err != nil {
		return nil, err
	}
	u, err := apiv1.UserResponse(out)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser edits record id. When the signed-in user edits their own record
// the stored session is refreshed.
func (c *Client) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (updated, roleCoerced bool, err error) {
	in, err := apiv1.NewUpdateUserRequest(id, upd)
	if err != nil {
		return false, false, err
	}
	out, err := c.call(ctx, apiv1.AdminService_UpdateUser_FullMethodName, in)
	if err != nil {
		return false, false, err
	}
	updated, roleCoerced = apiv1.UpdateUserResponse(out)
	if cur, _ := c.Current(); updated && cur != nil && cur.ID == id {
		if _, err := c.Restore(ctx); err != nil {
			c.log.Warn("refresh session after self update", zap.Error(err))
		}
	}
	return updated, roleCoerced, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) (bool, error) {
	in, err := apiv1.NewIDRequest(id)
	if err != nil {
		return false, err
	}
	out, err := c.call(ctx, apiv1.AdminService_DeleteUser_FullMethodName, in)
	if err != nil {
		return false, err
	}
	return apiv1.DeleteUserResponse(out), nil
}

func (c *Client) Popular(ctx context.Context) ([]apiv1.Movie, error) {
	out, err := c.call(ctx, apiv1.CatalogService_Popular_FullMethodName, nil)
	if err != nil {
		return nil, err
	}
	return apiv1.MoviesResponse(out)
}

// Search returns the popular list for a blank query.
func (c *Client) Search(ctx context.Context, query string) ([]apiv1.Movie, error) {
	in, err := apiv1.NewSearchRequest(query)
	if err != nil {
		return nil, err
	}
	out, err := c.call(ctx, apiv1.CatalogService_Search_FullMethodName, in)
	if err != nil {
		return nil, err
	}
	return apiv1.MoviesResponse(out)
}

func (c *Client) Details(ctx context.Context, id int64) (*apiv1.Movie, error) {
	in, err := apiv1.NewIDRequest(id)
	if err != nil {
		return nil, err
	}
	out, err := c.call(ctx, apiv1.CatalogService_Details_FullMethodName, in)
	if err != nil {
		return nil, err
	}
	m, err := apiv1.MovieResponse(out)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// call invokes an authenticated method with the stored token.
func (c *Client) call(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
	s, err := c.sessions.Get()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNotLoggedIn
	}
	return c.api.Call(withToken(ctx, s.Token), method, in)
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}
