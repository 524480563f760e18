package middlewares

import (
	"fmt"
	"strings"
	"time"

	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/responses"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SessionCookie carries the signed session token.
const SessionCookie = "session"

// Sessions issues and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the user that expires after the session TTL.
func (s *Sessions) Issue(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.Id.Hex(),
		"role": user.Type,
		"exp":  time.Now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

func (s *Sessions) parse(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, err
	}
	return claims, nil
}

// AuthMiddleware accepts the session cookie or an Authorization bearer token.
func (s *Sessions) AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies(SessionCookie)

	if authHeader := c.Get("Authorization"); authHeader != "" {
		// Check if the Authorization header starts with "Bearer "
		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			return unauthorized(c, "Invalid authorization header format")
		}
		tokenString = bearerToken[1]
	}

	if tokenString == "" {
		return unauthorized(c, "No auth token, access denied")
	}

	claims, err := s.parse(tokenString)
	if err != nil || claims == nil {
		return unauthorized(c, "Token verification failed, access denied")
	}

	userId, ok := claims["id"].(string)
	if !ok || userId == "" {
		return unauthorized(c, "User ID not found in token")
	}
	role, _ := claims["role"].(string)

	c.Locals("userId", userId)
	c.Locals("userType", role)

	return c.Next()
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(c *fiber.Ctx) error {
	if role, _ := c.Locals("userType").(string); role != models.UserTypeAdmin {
		return c.Status(fiber.StatusForbidden).JSON(responses.UserResponse{
			Status:  fiber.StatusForbidden,
			Message: "Admin access required",
		})
	}
	return c.Next()
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
		Status:  fiber.StatusUnauthorized,
		Message: message,
	})
}

// UserID returns the authenticated user's id set by AuthMiddleware.
func UserID(c *fiber.Ctx) string {
	userId, _ := c.Locals("userId").(string)
	return userId
}
