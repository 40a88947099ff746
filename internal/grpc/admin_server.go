package grpcserver

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	apiv1 "movieBrowser/api/v1"
	"movieBrowser/internal/auth"
	"movieBrowser/models"
	"movieBrowser/repository"
)

// UserAdmin is the account management used by AdminServer.
type UserAdmin interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, username, password string, role models.Role) (*models.User, error)
	Update(ctx context.Context, actor *models.User, id int64, upd models.UserUpdate) (repository.UpdateResult, error)
	Delete(ctx context.Context, actor *models.User, id int64) (bool, error)
}

// AdminServer implements moviebrowser.v1.AdminService. Every method requires
// a caller whose stored role is admin.
type AdminServer struct {
	Users   auth.UserLookup
	Manager UserAdmin
}

var _ apiv1.AdminServiceServer = (*AdminServer)(nil)

func (s *AdminServer) ListUsers(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	list, err := s.Manager.List(ctx)
	if err != nil {
		return nil, toStatus("list users", err)
	}
	out, err := apiv1.NewUsersResponse(list)
	return out, toStatus("list users", err)
}

func (s *AdminServer) CreateUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	username, password, role := apiv1.CreateUserRequest(in)
	u, err := s.Manager.Create(ctx, username, password, role)
	if err != nil {
		return nil, toStatus("create user", err)
	}
	out, err := apiv1.NewUserResponse(*u)
	return out, toStatus("create user", err)
}

// UpdateUser reports updated=false for an unknown id or an empty update.
func (s *AdminServer) UpdateUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	actor, err := auth.RequireAdmin(ctx, s.Users)
	if err != nil {
		return nil, err
	}
	id, upd, err := apiv1.UpdateUserRequest(in)
	if err != nil {
		return nil, toStatus("update user", err)
	}
	res, err := s.Manager.Update(ctx, actor, id, upd)
	if err != nil {
		return nil, toStatus("update user", err)
	}
	out, err := apiv1.NewUpdateUserResponse(res.Updated, res.RoleCoerced)
	return out, toStatus("update user", err)
}

func (s *AdminServer) DeleteUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	actor, err := auth.RequireAdmin(ctx, s.Users)
	if err != nil {
		return nil, err
	}
	id, err := apiv1.IDRequest(in)
	if err != nil {
		return nil, toStatus("delete user", err)
	}
	deleted, err := s.Manager.Delete(ctx, actor, id)
	if err != nil {
		return nil, toStatus("delete user", err)
	}
	out, err := apiv1.NewDeleteUserResponse(deleted)
	return out, toStatus("delete user", err)
}
