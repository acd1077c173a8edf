package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

// AuthHandler maneja login local, login con GitHub y verificación de token.
type AuthHandler struct {
	uc          *auth.AuthUseCase
	frontendURL string
	log         *logger.Logger
}

// NewAuthHandler construye el handler de auth. frontendURL es el destino de los redirects de GitHub.
func NewAuthHandler(uc *auth.AuthUseCase, frontendURL string, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, frontendURL: strings.TrimRight(frontendURL, "/"), log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GitHub godoc
// @Summary      Redirigir al login de GitHub
// @Description  Con ?format=json devuelve la URL en vez de redirigir.
// @Tags         auth
// @Success      302
// @Success      200  {object}  dto.GitHubURLResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/auth/github [get]
func (h *AuthHandler) GitHub(c *fiber.Ctx) error {
	authURL, err := h.uc.GitHubAuthURL(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if c.Query("format") == "json" {
		return c.JSON(dto.GitHubURLResponse{URL: authURL})
	}
	return c.Redirect(authURL, fiber.StatusFound)
}

// GitHubCallback completa el login federado y redirige al frontend con el token.
// Cualquier fallo redirige a /login?error=github_auth_failed.
func (h *AuthHandler) GitHubCallback(c *fiber.Ctx) error {
	out, err := h.uc.GitHubCallback(c.UserContext(), c.Query("state"), c.Query("code"))
	if err != nil {
		h.log.Warn().Err(err).Msg("login con GitHub fallido")
		return c.Redirect(h.frontendURL+"/login?error=github_auth_failed", fiber.StatusFound)
	}
	return c.Redirect(h.frontendURL+"/auth/callback?token="+url.QueryEscape(out.Token), fiber.StatusFound)
}

// Verify godoc
// @Summary      Verificar token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VerifyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	name, _ := c.Locals(LocalName).(string)
	email, _ := c.Locals(LocalEmail).(string)
	return c.JSON(dto.VerifyResponse{
		Valid: true,
		ID:    GetUserID(c),
		Name:  name,
		Email: email,
		Role:  GetRole(c),
	})
}
