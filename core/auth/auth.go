package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/meowexpress/ecommerce-api/api/web"
	"github.com/meowexpress/ecommerce-api/api/weberr"
	"github.com/meowexpress/ecommerce-api/core/claims"
)

// tokenClaims is the payload carried by access tokens: the user identity
// triple plus the registered expiry.
type tokenClaims struct {
	Email string `json:"email"`
	Admin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Keeper mints and parses bearer tokens. The secret is injected at startup
// and never hardcoded.
type Keeper struct {
	secret   []byte
	lifetime time.Duration
}

func NewKeeper(secret string, lifetime time.Duration) *Keeper {
	return &Keeper{secret: []byte(secret), lifetime: lifetime}
}

// CreateToken returns a signed access token for the given identity.
func (k *Keeper) CreateToken(userID string, email string, admin bool) (string, error) {
	now := time.Now().UTC()
	tc := tokenClaims{
		Email: email,
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(k.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	signed, err := token.SignedString(k.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseToken validates the signed token and returns the identity it carries.
func (k *Keeper) ParseToken(token string) (claims.Claims, error) {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return k.secret, nil
	})
	if err != nil {
		return claims.Claims{}, fmt.Errorf("parsing token: %w", err)
	}

	if !parsed.Valid {
		return claims.Claims{}, errors.New("invalid token")
	}

	role := claims.RoleUser
	if tc.Admin {
		role = claims.RoleAdmin
	}

	return claims.Claims{
		UserID: tc.Subject,
		Email:  tc.Email,
		Role:   role,
	}, nil
}

// Authenticate decodes the Authorization header and stores the caller
// identity in the context. Requests without a valid bearer token get a 401.
func Authenticate(keeper *Keeper) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			header := r.Header.Get("Authorization")
			if header == "" {
				return weberr.NotAuthorized(errors.New("authorization header missing"))
			}

			if !strings.HasPrefix(header, "Bearer ") {
				return weberr.NotAuthorized(errors.New("authorization header is not a bearer token"))
			}
			token := strings.TrimPrefix(header, "Bearer ")

			clm, err := keeper.ParseToken(token)
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			ctx = claims.Set(ctx, clm)
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Admin allows only callers carrying the admin role. It must be chained
// after Authenticate.
func Admin() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			if !claims.IsAdmin(ctx) {
				return weberr.Forbidden(errors.New("only admin users can perform this action"))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
