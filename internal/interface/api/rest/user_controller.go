package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-admin-api/internal/application/ports"
	domain "user-admin-api/internal/domain/user"
	"user-admin-api/internal/interface/api/rest/dto/user"
	"user-admin-api/internal/interface/api/rest/middleware"
	"user-admin-api/internal/interface/api/rest/response"
	"user-admin-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	session ports.Session,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	requireAuth := middleware.RequireAuth(session, userService, logger)

	r.GET(RouteUsers, requireAuth, uc.GetUsersHandler)
	// bootstrap: the very first account is created without a token
	r.POST(RouteUsers, middleware.OptionalAuth(session, userService, logger), uc.CreateUserHandler)
	r.PUT(RouteUser, requireAuth, uc.UpdateUserHandler)
	r.DELETE(RouteUser, requireAuth, uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	users, err := uc.userService.ListUsers(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		response.Error(c, uc.logger, "ListUsers", err)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Status:  response.StatusOK,
		Message: "Users retrieved successfully",
		Users:   user.ToResponseUsers(users),
	})
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validator.ValidateCreate(&req); errs != nil {
		response.Invalid(c, "Invalid request body", errs)
		return
	}

	if _, err := uc.userService.CreateUser(c.Request.Context(), middleware.Caller(c), user.ToRegistration(req)); err != nil {
		response.Error(c, uc.logger, "CreateUser", err)
		return
	}

	response.OK(c, http.StatusCreated, "User created successfully")
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var req user.UpdateRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validator.ValidateUpdate(&req); errs != nil {
		response.Invalid(c, "Invalid request body", errs)
		return
	}

	if err = uc.userService.UpdateUser(c.Request.Context(), middleware.Caller(c), domain.ID(id), user.ToProfile(req)); err != nil {
		response.Error(c, uc.logger, "UpdateUser", err)
		return
	}

	response.OK(c, http.StatusOK, "User updated successfully")
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err = uc.userService.DeleteUser(c.Request.Context(), middleware.Caller(c), domain.ID(id)); err != nil {
		response.Error(c, uc.logger, "DeleteUser", err)
		return
	}

	response.OK(c, http.StatusOK, "User deleted successfully")
}
