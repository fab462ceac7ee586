package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/application/cozepackage/usecases"
	"github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
	"github.com/buildingai/cozepkg/internal/shared/utils"
)

// PackageCenterHandler serves the end-user purchase flow under /api.
type PackageCenterHandler struct {
	centerUC      getPackageCenterUseCase
	createOrderUC createOrderUseCase
	prepayUC      prepayOrderUseCase
	queryPayUC    queryPayResultUseCase
	activeUC      activePackageUseCase
	logger        logger.Interface
}

func NewPackageCenterHandler(
	centerUC getPackageCenterUseCase,
	createOrderUC createOrderUseCase,
	prepayUC prepayOrderUseCase,
	queryPayUC queryPayResultUseCase,
	activeUC activePackageUseCase,
	logger logger.Interface,
) *PackageCenterHandler {
	return &PackageCenterHandler{
		centerUC:      centerUC,
		createOrderUC: createOrderUC,
		prepayUC:      prepayUC,
		queryPayUC:    queryPayUC,
		activeUC:      activeUC,
		logger:        logger,
	}
}

// GetCenter handles GET /api/coze-package/center
//
//	@Summary		Package center
//	@Description	Purchasable packages, payment methods and, when signed in, the caller's active package
//	@Tags			coze-package-web
//	@Produce		json
//	@Success		200	{object}	utils.APIResponse{data=dto.PackageCenterDTO}
//	@Router			/api/coze-package/center [get]
func (h *PackageCenterHandler) GetCenter(c *gin.Context) {
	result, err := h.centerUC.Execute(c.Request.Context(), optionalUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateOrder handles POST /api/coze-package/order
//
//	@Summary	Create an order
//	@Tags		coze-package-web
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		order	body		dto.CreateOrderRequest	true	"Order"
//	@Success	201		{object}	utils.APIResponse{data=dto.OrderCreatedDTO}
//	@Failure	400		{object}	utils.APIResponse
//	@Failure	404		{object}	utils.APIResponse	"Package not found"
//	@Router		/api/coze-package/order [post]
func (h *PackageCenterHandler) CreateOrder(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create order", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createOrderUC.Execute(c.Request.Context(), usecases.CreateOrderCommand{
		UserID:        userID,
		PackageID:     req.PackageID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "order created")
}

// Prepay handles POST /api/coze-package/pay/prepay
//
//	@Summary	Start payment
//	@Tags		coze-package-web
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		prepay	body		dto.PrepayRequest	true	"Order to pay"
//	@Success	200		{object}	utils.APIResponse{data=dto.PrepayDTO}
//	@Failure	409		{object}	utils.APIResponse	"Order is not payable"
//	@Router		/api/coze-package/pay/prepay [post]
func (h *PackageCenterHandler) Prepay(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.PrepayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.prepayUC.Execute(c.Request.Context(), usecases.PrepayOrderCommand{
		UserID:  userID,
		OrderID: req.OrderID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// QueryPayResult handles GET /api/coze-package/pay/queryPayResult
func (h *PackageCenterHandler) QueryPayResult(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.QueryPayResultRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if req.OrderID == "" && req.OrderNo == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("orderId or orderNo is required"))
		return
	}

	result, err := h.queryPayUC.Execute(c.Request.Context(), usecases.QueryPayResultCommand{
		OrderID: req.OrderID,
		OrderNo: req.OrderNo,
		UserID:  userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetCurrentPackage handles GET /api/coze-package/user/current-package. A
// caller without an active package gets null data.
func (h *PackageCenterHandler) GetCurrentPackage(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.activeUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, utils.APIResponse{Success: true})
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// HasActivePackage handles GET /api/coze-package/user/has-active-package
func (h *PackageCenterHandler) HasActivePackage(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto.HasActivePackageDTO{
		HasActivePackage: h.activeUC.HasActivePackage(c.Request.Context(), userID),
	})
}

// GetRemainingDays handles GET /api/coze-package/user/remaining-days
func (h *PackageCenterHandler) GetRemainingDays(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto.RemainingDaysDTO{
		RemainingDays: h.activeUC.RemainingDays(c.Request.Context(), userID),
	})
}
