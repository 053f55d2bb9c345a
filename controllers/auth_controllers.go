package controllers

import (
	"hotelhub/dto"
	"hotelhub/response"
	"hotelhub/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{Auth: auth}
}

// Register godoc
// @Summary      Register a user or business account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "account"
// @Success      201   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /auth/register [post]
func (a AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.Auth.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, res)
}

// Login godoc
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "credentials"
// @Success      200   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /auth/login [post]
func (a AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.Auth.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

func (a AuthController) Google(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.Auth.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

func (a AuthController) Me(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	user, err := a.Auth.Me(c.Request.Context(), caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

func (a AuthController) ChangePassword(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := a.Auth.ChangePassword(c.Request.Context(), caller, req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
