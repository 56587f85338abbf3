package dispatchserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
	authports "github.com/Apurer/dharai-delivery/internal/domains/auth/ports"
)

// AuthAPI serves the login page.
type AuthAPI struct {
	service authports.Service
}

// NewAuthAPI wires dependencies.
func NewAuthAPI(service authports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Get /v1/login
// Pre-fills the login form from the remembered email
func (api *AuthAPI) LoginView(c *gin.Context) {
	form, err := api.service.LoginView(c.Request.Context(), visitorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromLoginView(form))
}

// Post /v1/login
// Submits credentials and signs the client in
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	creds := authdomain.Credentials{Email: payload.Email, Password: payload.Password, RememberMe: payload.RememberMe}
	result, err := api.service.Login(c.Request.Context(), visitorFrom(c), creds)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromLoginResult(result))
}

// Get /v1/login/email-check
// Live email feedback while typing
func (api *AuthAPI) CheckEmail(c *gin.Context) {
	check := api.service.CheckEmail(c.Request.Context(), c.Query("email"))
	c.JSON(http.StatusOK, fromEmailCheck(check))
}
