package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/shared/logger"
	"github.com/buildingai/cozepkg/internal/shared/utils"
)

// PackageConfigHandler serves the console package configuration page.
type PackageConfigHandler struct {
	getConfigUC getPackageConfigUseCase
	setConfigUC setPackageConfigUseCase
	logger      logger.Interface
}

func NewPackageConfigHandler(
	getConfigUC getPackageConfigUseCase,
	setConfigUC setPackageConfigUseCase,
	logger logger.Interface,
) *PackageConfigHandler {
	return &PackageConfigHandler{
		getConfigUC: getConfigUC,
		setConfigUC: setConfigUC,
		logger:      logger,
	}
}

// GetConfig handles GET /consoleapi/coze-package-config
//
//	@Summary	Get package configuration
//	@Tags		coze-package
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=dto.PackageConfigDTO}
//	@Router		/consoleapi/coze-package-config [get]
func (h *PackageConfigHandler) GetConfig(c *gin.Context) {
	result, err := h.getConfigUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// SetConfig handles POST /consoleapi/coze-package-config. The rule list
// replaces the stored one.
//
//	@Summary	Save package configuration
//	@Tags		coze-package
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		config	body		dto.SetPackageConfigRequest	true	"Package configuration"
//	@Success	200		{object}	utils.APIResponse{data=dto.PackageConfigDTO}
//	@Failure	400		{object}	utils.APIResponse
//	@Failure	409		{object}	utils.APIResponse	"Duplicate package name"
//	@Router		/consoleapi/coze-package-config [post]
func (h *PackageConfigHandler) SetConfig(c *gin.Context) {
	var req dto.SetPackageConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set package config", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setConfigUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "package configuration saved", result)
}
