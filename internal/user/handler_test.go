package user

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func TestSignupAndLogin(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	handler := NewHandler(NewService(repo, "admin-secret"), "jwt-secret")
	app := fiber.New()
	handler.RegisterPublicRoutes(app)

	// route registration check
	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	if !routes["/api/v1/user/signup"] || !routes["/api/v1/user/login"] {
		t.Fatalf("expected signup and login routes to be registered")
	}

	signup := `{"username":"jenny01","password":"password123","email":"j@example.com"}`
	req := httptest.NewRequest("POST", "/api/v1/user/signup", strings.NewReader(signup))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("signup request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 on signup, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "password") {
		t.Fatalf("signup response should not expose password field: %s", b)
	}

	// same username again is rejected
	req2 := httptest.NewRequest("POST", "/api/v1/user/signup", strings.NewReader(signup))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate signup, got %d", res2.StatusCode)
	}

	login := `{"username":"jenny01","password":"password123"}`
	req3 := httptest.NewRequest("POST", "/api/v1/user/login", strings.NewReader(login))
	req3.Header.Set("Content-Type", "application/json")
	res3, err := app.Test(req3)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on login, got %d", res3.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res3.Body).Decode(&body); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	tok, err := jwt.Parse(body.Token, func(*jwt.Token) (interface{}, error) { return []byte("jwt-secret"), nil })
	if err != nil || !tok.Valid {
		t.Fatalf("expected a valid token, got err=%v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["role"] != "USER" {
		t.Fatalf("expected USER role claim, got %v", claims["role"])
	}

	bad := `{"username":"jenny01","password":"wrong-password"}`
	req4 := httptest.NewRequest("POST", "/api/v1/user/login", strings.NewReader(bad))
	req4.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", res4.StatusCode)
	}
}

func TestCurrentUser(t *testing.T) {
	repo := NewInMemoryRepository([]User{{ID: 7, Username: "admin01", Role: RoleAdmin}})
	service := NewService(repo, "")

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		u, err := CurrentUser(c, service)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		return c.JSON(sanitizeUser(u))
	})

	req := httptest.NewRequest("GET", "/me", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/me", nil)
	req2.Header.Set("X-User-ID", "7")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for known user, got %d", res2.StatusCode)
	}
	b, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b), "ADMIN") {
		t.Fatalf("expected role from store in body, got %s", b)
	}

	req3 := httptest.NewRequest("GET", "/me", nil)
	req3.Header.Set("X-User-ID", "99")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", res3.StatusCode)
	}
}
