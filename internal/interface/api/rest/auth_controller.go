package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-admin-api/internal/application/ports"
	"user-admin-api/internal/interface/api/rest/dto/auth"
	"user-admin-api/internal/interface/api/rest/dto/user"
	"user-admin-api/internal/interface/api/rest/response"
	"user-admin-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validator.ValidateLogin(&req); errs != nil {
		response.Invalid(c, "Username and password are required", errs)
		return
	}

	token, u, err := ac.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, ac.logger, "Login", err)
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		Status:  response.StatusOK,
		Message: "Login successful",
		Token:   token,
		User:    user.ToResponseUser(*u),
	})
}
