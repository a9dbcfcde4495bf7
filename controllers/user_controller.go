package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FelipeAraujoBS/weather-monitoring-system/internal/error/code"
	"github.com/FelipeAraujoBS/weather-monitoring-system/internal/error/response"
	"github.com/FelipeAraujoBS/weather-monitoring-system/services"
	"github.com/FelipeAraujoBS/weather-monitoring-system/services/container"
)

// UserController handles account registration.
type UserController struct {
	BaseControllerImpl
}

// NewUserController creates a new user controller.
func (f *ControllerFactory) NewUserController(ctx *gin.Context) *UserController {
	return &UserController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"s3cret-pass"`
}

// HandleUserFunc returns a Gin handler dispatching to a user controller
// method.
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewUserController(ctx)

		switch method {
		case "register":
			controller.Register()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid method",
				"data":    nil,
			})
		}
	}
}

// Register creates a new account
// @Summary      Register account
// @Description  Creates a new dashboard account; the password is stored as a bcrypt hash and never returned
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration payload"
// @Success      201  {object}  response.Response  "Created user (no password)"
// @Failure      400  {object}  response.Response  "Validation error"
// @Failure      409  {object}  response.Response  "Email already in use"
// @Router       /users [post]
func (c *UserController) Register() {
	var req RegisterRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Context, code.ErrValidation, err.Error())
		return
	}

	userService := c.Container.GetUserService()
	user, err := userService.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Fail(c.Context, code.ErrEmailInUse)
			return
		}
		response.Fail(c.Context, code.ErrDatabase)
		return
	}

	response.Created(c.Context, "User created successfully", user)
}
