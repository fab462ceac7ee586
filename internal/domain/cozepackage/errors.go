package cozepackage

import "errors"

var (
	ErrPackageNotFound      = errors.New("package config not found")
	ErrDuplicatePackageName = errors.New("duplicate package name")
	ErrInvalidPackage       = errors.New("invalid package config")

	ErrOrderNotFound          = errors.New("order not found")
	ErrDuplicateOrderNo       = errors.New("duplicate order number")
	ErrNotOrderOwner          = errors.New("order does not belong to requester")
	ErrOrderNotPending        = errors.New("order is not pending")
	ErrOrderNotCompleted      = errors.New("order is not completed")
	ErrOrderNotPaid           = errors.New("order is not paid")
	ErrRefundAlreadyRequested = errors.New("refund already requested")
	ErrRefundExceedsPaid      = errors.New("refund amount exceeds paid amount")
	ErrInvalidRefundAmount    = errors.New("refund amount must be positive")
)
