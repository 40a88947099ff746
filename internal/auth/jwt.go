package auth

import (
	"context"
	"errors"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"

	"movieBrowser/models"
)

// Principal represents the authenticated caller from JWT.
type Principal struct {
	ID       int64
	Username string
	Role     models.Role
}

// IsAdmin reports whether the token was issued to an admin.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

type claims struct {
	UID  int64  `json:"uid"`
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for u. Tokens carry no expiry; a session
// ends when the client clears it.
func IssueToken(secret string, u *models.User) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if u == nil {
		return "", errors.New("nil user")
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UID:  u.ID,
		Name: u.Username,
		Role: string(u.Role),
	})
	return tok.SignedString([]byte(secret))
}

// ParseFromMD extracts and validates a Bearer JWT from gRPC metadata and returns a Principal.
func ParseFromMD(ctx context.Context, secret string) (*Principal, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, errors.New("missing metadata")
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return nil, errors.New("missing authorization")
	}
	parts := strings.SplitN(vals[0], " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid authorization header")
	}
	return parseJWT(strings.TrimSpace(parts[1]), secret)
}

// parseJWT validates and extracts claims from a JWT token.
func parseJWT(tokenStr string, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*claims)
	if c == nil || c.UID == 0 || c.Name == "" {
		return nil, errors.New("invalid claims")
	}
	role := models.Role(strings.ToLower(c.Role))
	if !role.Valid() {
		return nil, errors.New("invalid role claim")
	}
	return &Principal{ID: c.UID, Username: c.Name, Role: role}, nil
}
