package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	apiv1 "movieBrowser/api/v1"
	"movieBrowser/internal/auth"
	"movieBrowser/models"
)

// MovieCatalog is the remote movie source.
type MovieCatalog interface {
	Popular(ctx context.Context) ([]models.Movie, error)
	Search(ctx context.Context, query string) ([]models.Movie, error)
	Details(ctx context.Context, id int64) (*models.Movie, error)
	PosterURL(posterPath string) string
}

// CatalogServer implements moviebrowser.v1.CatalogService for any signed-in
// user.
type CatalogServer struct {
	Users   auth.UserLookup
	Catalog MovieCatalog
}

var _ apiv1.CatalogServiceServer = (*CatalogServer)(nil)

func (s *CatalogServer) Popular(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if _, err := auth.RequireUser(ctx, s.Users); err != nil {
		return nil, err
	}
	list, err := s.Catalog.Popular(ctx)
	if err != nil {
		return nil, catalogStatus("popular", err)
	}
	return s.moviesResponse("popular", list)
}

// Search falls back to the popular list for a blank query.
func (s *CatalogServer) Search(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if _, err := auth.RequireUser(ctx, s.Users); err != nil {
		return nil, err
	}
	list, err := s.Catalog.Search(ctx, apiv1.SearchRequest(in))
	if err != nil {
		return nil, catalogStatus("search", err)
	}
	return s.moviesResponse("search", list)
}

func (s *CatalogServer) Details(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if _, err := auth.RequireUser(ctx, s.Users); err != nil {
		return nil, err
	}
	id, err := apiv1.IDRequest(in)
	if err != nil {
		return nil, toStatus("details", err)
	}
	if id <= 0 {
		return nil, status.Error(codes.InvalidArgument, "movie id must be positive")
	}
	m, err := s.Catalog.Details(ctx, id)
	if err != nil {
		return nil, catalogStatus("details", err)
	}
	out, err := apiv1.NewMovieResponse(s.withPoster(*m))
	return out, toStatus("details", err)
}

func (s *CatalogServer) moviesResponse(op string, list []models.Movie) (*structpb.Struct, error) {
	movies := make([]apiv1.Movie, 0, len(list))
	for _, m := range list {
		movies = append(movies, s.withPoster(m))
	}
	out, err := apiv1.NewMoviesResponse(movies)
	return out, toStatus(op, err)
}

func (s *CatalogServer) withPoster(m models.Movie) apiv1.Movie {
	return apiv1.Movie{Movie: m, PosterURL: s.Catalog.PosterURL(m.PosterPath)}
}

// catalogStatus reports every upstream failure as Unavailable, except for the
// caller's own deadline or cancellation.
func catalogStatus(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s: %v", op, err)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s: %v", op, err)
	}
	return status.Errorf(codes.Unavailable, "%s: %v", op, err)
}
