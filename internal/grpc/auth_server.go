package grpcserver

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	apiv1 "movieBrowser/api/v1"
	"movieBrowser/internal/auth"
	"movieBrowser/models"
)

// Authenticator signs in a user and issues a session token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

// AuthServer implements moviebrowser.v1.AuthService.
type AuthServer struct {
	Auth  Authenticator
	Users auth.UserLookup
}

var _ apiv1.AuthServiceServer = (*AuthServer)(nil)

// Login exchanges credentials for a token and the matching identity.
func (s *AuthServer) Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	username, password := apiv1.LoginRequest(in)
	u, token, err := s.Auth.Login(ctx, username, password)
	if err != nil {
		return nil, toStatus("login", err)
	}
	out, err := apiv1.NewLoginResponse(token, *u)
	return out, toStatus("login", err)
}

// Me returns the stored identity behind the caller's token. Clients use it to
// check a restored session.
func (s *AuthServer) Me(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	u, err := auth.RequireUser(ctx, s.Users)
	if err != nil {
		return nil, err
	}
	out, err := apiv1.NewUserResponse(*u)
	return out, toStatus("me", err)
}
