package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// notifyAck is the acknowledgement body WeChat Pay expects.
type notifyAck struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PaymentNotifyHandler struct {
	notifyUC paymentNotifyUseCase
	logger   logger.Interface
}

func NewPaymentNotifyHandler(notifyUC paymentNotifyUseCase, logger logger.Interface) *PaymentNotifyHandler {
	return &PaymentNotifyHandler{notifyUC: notifyUC, logger: logger}
}

// WechatNotify handles POST /api/coze-package/pay/notify/wechat. Any
// non-2xx answer makes the gateway retry the notification later.
//
//	@Summary	WeChat Pay notification
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	notifyAck
//	@Failure	400	{object}	notifyAck
//	@Router		/api/coze-package/pay/notify/wechat [post]
func (h *PaymentNotifyHandler) WechatNotify(c *gin.Context) {
	err := h.notifyUC.Execute(c.Request.Context(), c.Request)
	if err == nil {
		c.JSON(http.StatusOK, notifyAck{Code: "SUCCESS", Message: "OK"})
		return
	}

	status, message := http.StatusInternalServerError, "internal error"
	if appErr := errors.GetAppError(err); appErr != nil {
		status, message = appErr.Code, appErr.Message
	}
	h.logger.Warnw("payment notification not applied", "error", err, "status", status)
	c.JSON(status, notifyAck{Code: "FAIL", Message: message})
}
