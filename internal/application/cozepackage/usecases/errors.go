package usecases

import (
	"errors"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/paymentgateway"
	"github.com/buildingai/cozepkg/internal/domain/cozepackage"
	vo "github.com/buildingai/cozepkg/internal/domain/cozepackage/valueobjects"
	apperrors "github.com/buildingai/cozepkg/internal/shared/errors"
)

// toAppError translates domain sentinels into client-facing errors. Errors
// it does not recognise are returned as they are and end up as 500s.
func toAppError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}

	var ruleErr *cozepackage.RuleError
	switch {
	case errors.As(err, &ruleErr):
		return apperrors.Wrap(apperrors.ErrorTypeValidation, "invalid package rule", err)
	case errors.Is(err, cozepackage.ErrPackageNotFound):
		return apperrors.NewNotFoundError("package not found")
	case errors.Is(err, cozepackage.ErrOrderNotFound):
		return apperrors.NewNotFoundError("order not found")
	case errors.Is(err, cozepackage.ErrNotOrderOwner):
		return apperrors.NewForbiddenError("order does not belong to the current user")
	case errors.Is(err, cozepackage.ErrOrderNotPending):
		return apperrors.Wrap(apperrors.ErrorTypeConflict, "order is not awaiting payment", err)
	case errors.Is(err, cozepackage.ErrOrderNotCompleted):
		return apperrors.Wrap(apperrors.ErrorTypeConflict, "only completed orders can be refunded", err)
	case errors.Is(err, cozepackage.ErrOrderNotPaid):
		return apperrors.Wrap(apperrors.ErrorTypeConflict, "only paid orders can be refunded", err)
	case errors.Is(err, cozepackage.ErrRefundAlreadyRequested):
		return apperrors.Wrap(apperrors.ErrorTypeConflict, "a refund has already been requested for this order", err)
	case errors.Is(err, cozepackage.ErrRefundExceedsPaid):
		return apperrors.Wrap(apperrors.ErrorTypeValidation, "refund amount exceeds the paid amount", err)
	case errors.Is(err, cozepackage.ErrInvalidRefundAmount):
		return apperrors.Wrap(apperrors.ErrorTypeValidation, "refund amount must be greater than 0", err)
	case errors.Is(err, cozepackage.ErrInvalidPackage), errors.Is(err, cozepackage.ErrDuplicatePackageName):
		return apperrors.Wrap(apperrors.ErrorTypeValidation, "invalid package", err)
	case errors.Is(err, vo.ErrAmountOutOfRange):
		return apperrors.Wrap(apperrors.ErrorTypeValidation, "amount is out of range", err)
	case errors.Is(err, paymentgateway.ErrUnsupportedMethod):
		return apperrors.Wrap(apperrors.ErrorTypeBadRequest, "payment method is not available", err)
	}
	return err
}
