package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medlegalmatch/auth-service/internal/api/dto"
	"github.com/medlegalmatch/auth-service/internal/auth"
	"github.com/medlegalmatch/auth-service/internal/cache"
	"github.com/medlegalmatch/auth-service/internal/service"
	apperrors "github.com/medlegalmatch/auth-service/pkg/util"
)

// AuthHandler exposes registration, login and whoami endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	profiles *cache.ProfileCache
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, profiles *cache.ProfileCache) *AuthHandler {
	return &AuthHandler{auth: authService, profiles: profiles}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, token, exp, err := h.auth.Register(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		User:      dto.NewUserResponse(account),
		Token:     token,
		ExpiresAt: exp,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		User:      dto.NewUserResponse(account),
		Token:     token,
		ExpiresAt: exp,
	})
}

// Me handles GET /api/auth/me. The sanitized profile is served from the
// redis cache when present; the cache never stores the password hash.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing token claims")
	}

	if cached := h.profiles.Get(c.UserContext(), claims.UserID); cached != nil {
		var user dto.UserResponse
		if err := json.Unmarshal(cached, &user); err == nil {
			return c.JSON(dto.MeResponse{User: user})
		}
	}

	account, err := h.auth.WhoAmI(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}

	user := dto.NewUserResponse(account)
	if encoded, err := json.Marshal(user); err == nil {
		h.profiles.Set(c.UserContext(), claims.UserID, encoded)
	}
	return c.JSON(dto.MeResponse{User: user})
}

// PasswordReset handles POST /api/auth/password/reset. The flow is not built
// yet; the endpoint exists so the client can show a stable message.
func (h *AuthHandler) PasswordReset(c *fiber.Ctx) error {
	return apperrors.NewNotImplemented("password reset is not available yet")
}
