package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/application/user/usecases"
	"github.com/buildingai/cozepkg/internal/shared/logger"
	"github.com/buildingai/cozepkg/internal/shared/utils"
)

type AuthHandler struct {
	loginUseCase loginUseCase
	logger       logger.Interface
}

func NewAuthHandler(loginUC loginUseCase, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUC,
		logger:       logger,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Login handles POST /consoleapi/auth/login
//
//	@Summary		Console login
//	@Description	Exchange console credentials for an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		LoginRequest								true	"Credentials"
//	@Success		200			{object}	utils.APIResponse{data=LoginResponse}	"Login successful"
//	@Failure		400			{object}	utils.APIResponse						"Bad request"
//	@Failure		401			{object}	utils.APIResponse						"Invalid credentials"
//	@Failure		403			{object}	utils.APIResponse						"Account disabled"
//	@Router			/consoleapi/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginWithPasswordCommand{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.logger.Warnw("login failed", "error", err, "username", req.Username)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}
