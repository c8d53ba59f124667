package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, userID string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newPrivateApp() *fiber.App {
	app := fiber.New()
	app.Get("/private", JWTMiddleware("secret"), func(c *fiber.Ctx) error {
		if c.Locals("user_id") != "user-1" {
			return fiber.NewError(fiber.StatusUnauthorized)
		}
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func status(t *testing.T, app *fiber.App, header string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	return resp.StatusCode
}

func TestJWTMiddleware(t *testing.T) {
	app := newPrivateApp()

	if status(t, app, "") != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized without token")
	}
	if status(t, app, "Token abc") != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for non-bearer scheme")
	}
	if status(t, app, "Bearer "+signToken(t, "secret", "user-1", time.Minute)) != http.StatusOK {
		t.Fatalf("expected ok")
	}
	if status(t, app, "Bearer "+signToken(t, "other", "user-1", time.Minute)) != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for wrong secret")
	}
	if status(t, app, "Bearer "+signToken(t, "secret", "user-1", -time.Minute)) != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for expired token")
	}
	if status(t, app, "Bearer "+signToken(t, "secret", "", time.Minute)) != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized without user id")
	}
}

func TestJWTMiddlewareParseError(t *testing.T) {
	orig := parseMiddlewareClaimsFn
	defer func() { parseMiddlewareClaimsFn = orig }()
	parseMiddlewareClaimsFn = func(string, jwt.Claims, jwt.Keyfunc, ...jwt.ParserOption) (*jwt.Token, error) {
		return nil, errors.New("boom")
	}

	app := newPrivateApp()
	if status(t, app, "Bearer anything") != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}
}

func TestBearerFromHeader(t *testing.T) {
	if got := bearerFromHeader("bearer abc"); got != "abc" {
		t.Fatalf("unexpected token %q", got)
	}
	if got := bearerFromHeader("Bearer"); got != "" {
		t.Fatalf("expected empty token")
	}
}
