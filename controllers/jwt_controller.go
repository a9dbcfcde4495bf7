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

// JWTController handles authentication requests.
type JWTController struct {
	BaseControllerImpl
}

// NewJWTController creates a new authentication controller.
func (f *ControllerFactory) NewJWTController(ctx *gin.Context) *JWTController {
	return &JWTController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// LoginData is the successful login response body.
type LoginData struct {
	User        interface{} `json:"user"`
	AccessToken string      `json:"access_token"`
}

// HandleJWTFunc returns a Gin handler dispatching to an auth controller
// method.
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewJWTController(ctx)

		switch method {
		case "login":
			controller.Login()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid method",
				"data":    nil,
			})
		}
	}
}

// Login authenticates a user
// @Summary      User login
// @Description  Verifies credentials and returns a signed, expiring bearer token; the failure message is identical for unknown email and wrong password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login payload"
// @Success      200  {object}  response.Response{data=LoginData}  "User and access token"
// @Failure      400  {object}  response.Response  "Validation error"
// @Failure      401  {object}  response.Response  "Invalid credentials"
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Context, code.ErrValidation, err.Error())
		return
	}

	userService := c.Container.GetUserService()
	user, token, err := userService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(c.Context, code.ErrInvalidCredentials)
			return
		}
		response.Fail(c.Context, code.ErrDatabase)
		return
	}

	response.Success(c.Context, "Login successful", LoginData{
		User:        user,
		AccessToken: token,
	})
}
