package usecases

import (
	"context"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
)

// SettingStore is the dictionary as seen by the package use cases.
type SettingStore interface {
	GetBool(ctx context.Context, group, key string, def bool) (bool, error)
	GetString(ctx context.Context, group, key, def string) (string, error)
	SetBool(ctx context.Context, group, key string, v bool, description string) error
	SetString(ctx context.Context, group, key, v, description string) error
}

// PackageCenterCache holds the user-independent part of the package center.
type PackageCenterCache interface {
	Get(ctx context.Context) (*dto.CenterSnapshot, bool)
	Set(ctx context.Context, snapshot *dto.CenterSnapshot)
	Invalidate(ctx context.Context)
}

// CenterInvalidator is fired after every package config write.
type CenterInvalidator interface {
	Invalidate(ctx context.Context)
}

type MarkdownRenderer interface {
	Render(src string) (string, error)
}

// RefundNotice describes a refund request for operators.
type RefundNotice struct {
	OrderID      string
	OrderNo      string
	UserID       string
	PackageName  string
	RefundAmount string
	Reason       string
}

type RefundNotifier interface {
	NotifyRefundRequested(ctx context.Context, notice RefundNotice) error
}

// OrderRecorder receives order lifecycle events for metrics.
type OrderRecorder interface {
	OrderCreated(method string)
	OrderPaid(method string, amountFen int64)
	RefundRequested()
}

type nopRecorder struct{}

func (nopRecorder) OrderCreated(string)     {}
func (nopRecorder) OrderPaid(string, int64) {}
func (nopRecorder) RefundRequested()        {}
