package http

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const tokenContextKey = "token"

// Claims are the bearer token claims: the subject is the caller's user id and role is
// optional ("admin" may verify transporters).
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Caller is the authenticated user behind a request.
type Caller struct {
	UserID kernel.UUID
	Role   string
}

// JWTMiddleware accepts HS256 bearer tokens signed with secret. Missing or invalid
// tokens end the request with errs.ErrUnauthenticated.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return fmt.Errorf("%w: %v", errs.ErrUnauthenticated, err)
		},
	})
}

// callerOf reads the caller from the verified token. A subject that is not a UUID
// yields the zero caller, which every operation rejects as unauthenticated.
func callerOf(c echo.Context) Caller {
	token, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok {
		return Caller{}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Caller{}
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Caller{Role: claims.Role}
	}
	return Caller{UserID: userID, Role: claims.Role}
}

// SignToken issues a token for userID. It is used by tests and local tooling.
func SignToken(secret []byte, userID kernel.UUID, role string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = userID.String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: role, RegisteredClaims: claims})
	return token.SignedString(secret)
}
