package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/application/dto"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/config"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/jwt"
)

// AuthHandler login del usuario de desarrollo. Los usuarios viven en memoria
// (username → hash bcrypt); suficiente para un harness local.
type AuthHandler struct {
	cfg   config.JWTConfig
	users map[string][]byte
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(cfg config.JWTConfig, users map[string][]byte) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users}
}

// Login valida credenciales y emite un Bearer Token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Username == "" || in.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", "username y password son requeridos")
	}
	hash, ok := h.users[in.Username]
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(in.Password)); err != nil {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	}
	token, err := jwt.Generate(h.cfg.Secret, in.Username, h.cfg.Issuer, h.cfg.Expiration)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
	}
	return respondEnvelope(c, fiber.StatusOK, dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: h.cfg.Expiration * 60,
	}, "login correcto")
}
