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

// OrderHandler serves the console order pages.
type OrderHandler struct {
	listOrdersUC    listOrdersUseCase
	getOrderUC      getOrderUseCase
	getStatisticsUC getStatisticsUseCase
	requestRefundUC requestRefundUseCase
	logger          logger.Interface
}

func NewOrderHandler(
	listOrdersUC listOrdersUseCase,
	getOrderUC getOrderUseCase,
	getStatisticsUC getStatisticsUseCase,
	requestRefundUC requestRefundUseCase,
	logger logger.Interface,
) *OrderHandler {
	return &OrderHandler{
		listOrdersUC:    listOrdersUC,
		getOrderUC:      getOrderUC,
		getStatisticsUC: getStatisticsUC,
		requestRefundUC: requestRefundUC,
		logger:          logger,
	}
}

// orderListResponse is a page of orders plus the store-wide statistics.
type orderListResponse struct {
	utils.ListResponse
	Statistics *dto.StatisticsDTO `json:"statistics"`
}

// ListOrders handles GET /consoleapi/coze-package-order
//
//	@Summary	List package orders
//	@Tags		coze-package-order
//	@Produce	json
//	@Security	Bearer
//	@Param		page			query		int		false	"Page number"
//	@Param		limit			query		int		false	"Page size"
//	@Param		keyword			query		string	false	"Order number, username or package name"
//	@Param		orderStatus		query		string	false	"Order status"
//	@Param		paymentStatus	query		string	false	"Payment status"
//	@Param		sortBy			query		string	false	"Sort field"
//	@Param		sortOrder		query		string	false	"ASC or DESC"
//	@Success	200				{object}	utils.APIResponse{data=orderListResponse}
//	@Router		/consoleapi/coze-package-order [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warnw("invalid query for list orders", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listOrdersUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", orderListResponse{
		ListResponse: utils.NewListResponse(result.Items, result.Total, result.Page, result.PageSize),
		Statistics:   result.Statistics,
	})
}

// GetStatistics handles GET /consoleapi/coze-package-order/statistics
func (h *OrderHandler) GetStatistics(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.getStatisticsUC.Execute(c.Request.Context()))
}

// GetOrder handles GET /consoleapi/coze-package-order/:id. The parameter
// may be the order id or its order number.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	idOrOrderNo := c.Param("id")
	if idOrOrderNo == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("order id is required"))
		return
	}

	result, err := h.getOrderUC.Execute(c.Request.Context(), idOrOrderNo)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RequestRefund handles POST /consoleapi/coze-package-order/refund
//
//	@Summary	Request a refund
//	@Tags		coze-package-order
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		refund	body		dto.RefundRequest	true	"Refund request"
//	@Success	200		{object}	utils.APIResponse{data=dto.RefundResultDTO}
//	@Failure	400		{object}	utils.APIResponse
//	@Failure	403		{object}	utils.APIResponse	"Order belongs to another user"
//	@Failure	404		{object}	utils.APIResponse
//	@Failure	409		{object}	utils.APIResponse	"Order is not refundable"
//	@Router		/consoleapi/coze-package-order/refund [post]
func (h *OrderHandler) RequestRefund(c *gin.Context) {
	userID, err := getUserIDFromContext(c, h.logger)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for refund", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.requestRefundUC.Execute(c.Request.Context(), usecases.RequestRefundCommand{
		RequesterID:  userID,
		OrderID:      req.OrderID,
		Reason:       req.Reason,
		CustomReason: req.CustomReason,
		RefundAmount: req.RefundAmount,
		Remark:       req.Remark,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}
