package dto

import "time"

// PackageRuleDTO is a package tier as exchanged with the console and the
// package center. Prices are yuan. Field rules are checked by the domain so
// the error can name the offending rule.
type PackageRuleDTO struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name" binding:"max=100"`
	Duration      int     `json:"duration"`
	OriginalPrice float64 `json:"originalPrice"`
	CurrentPrice  float64 `json:"currentPrice"`
	Description   string  `json:"description"`
}

type PackageConfigDTO struct {
	CozePackageStatus  bool              `json:"cozePackageStatus"`
	CozePackageExplain string            `json:"cozePackageExplain"`
	CozePackageRule    []*PackageRuleDTO `json:"cozePackageRule"`
}

type SetPackageConfigRequest struct {
	CozePackageStatus  bool              `json:"cozePackageStatus"`
	CozePackageExplain string            `json:"cozePackageExplain"`
	CozePackageRule    []*PackageRuleDTO `json:"cozePackageRule" binding:"dive"`
}

type PayWayDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Logo  string `json:"logo,omitempty"`
}

// CenterSnapshot is the cacheable, user-independent part of the package
// center.
type CenterSnapshot struct {
	Status      bool              `json:"status"`
	Explain     string            `json:"explain"`
	ExplainHTML string            `json:"explainHtml"`
	PayWayList  []*PayWayDTO      `json:"payWayList"`
	List        []*PackageRuleDTO `json:"list"`
}

type PackageCenterDTO struct {
	User *ActivePackageDTO `json:"user,omitempty"`
	CenterSnapshot
}

type CreateOrderRequest struct {
	PackageID     string `json:"packageId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=wechat alipay"`
}

type OrderCreatedDTO struct {
	OrderID string `json:"orderId"`
	OrderNo string `json:"orderNo"`
}

type PrepayRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

type PrepayDTO struct {
	CodeURL string `json:"codeUrl"`
}

type QueryPayResultRequest struct {
	OrderID string `form:"orderId"`
	OrderNo string `form:"orderNo"`
	From    string `form:"from"`
}

const (
	PayStatusUnpaid = 0
	PayStatusPaid   = 1
)

type PayResultDTO struct {
	PayStatus int `json:"payStatus"`
}

type RefundRequest struct {
	OrderID      string   `json:"orderId" binding:"required"`
	Reason       string   `json:"reason" binding:"required,max=200"`
	CustomReason string   `json:"customReason" binding:"max=500"`
	RefundAmount *float64 `json:"refundAmount" binding:"omitempty,gt=0"`
	Remark       string   `json:"remark" binding:"max=500"`
}

type RefundResultDTO struct {
	OrderID      string  `json:"orderId"`
	OrderNo      string  `json:"orderNo"`
	RefundStatus string  `json:"refundStatus"`
	RefundAmount float64 `json:"refundAmount"`
	Message      string  `json:"message"`
}

type ListOrdersRequest struct {
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
	UserID        string `form:"userId"`
	OrderNo       string `form:"orderNo"`
	OrderStatus   string `form:"orderStatus" binding:"omitempty,oneof=pending paid cancelled expired completed"`
	PaymentStatus string `form:"paymentStatus" binding:"omitempty,oneof=unpaid paid refunded partialRefund"`
	RefundStatus  string `form:"refundStatus" binding:"omitempty,oneof=none pending approved rejected processing"`
	PackageType   string `form:"packageType" binding:"omitempty,oneof=basic professional enterprise custom"`
	PaymentMethod string `form:"paymentMethod" binding:"omitempty,oneof=wechat alipay bank balance other"`
	StartDate     string `form:"startDate"`
	EndDate       string `form:"endDate"`
	Keyword       string `form:"keyword" binding:"max=100"`
	SortBy        string `form:"sortBy"`
	SortOrder     string `form:"sortOrder"`
}

type UserInfoDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname,omitempty"`
}

type PackageInfoDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	OriginalPrice float64 `json:"originalPrice"`
	Duration      int     `json:"duration"`
}

type OrderDTO struct {
	ID             string                 `json:"id"`
	OrderNo        string                 `json:"orderNo"`
	UserInfo       *UserInfoDTO           `json:"userInfo"`
	PackageInfo    *PackageInfoDTO        `json:"packageInfo"`
	Quantity       int                    `json:"quantity"`
	TotalAmount    float64                `json:"totalAmount"`
	DiscountAmount float64                `json:"discountAmount"`
	ActualAmount   float64                `json:"actualAmount"`
	PaymentMethod  string                 `json:"paymentMethod"`
	OrderStatus    string                 `json:"orderStatus"`
	PaymentStatus  string                 `json:"paymentStatus"`
	RefundStatus   string                 `json:"refundStatus"`
	TransactionID  string                 `json:"transactionId"`
	PrepayID       string                 `json:"prepayId"`
	PayID          string                 `json:"payId"`
	OrderSource    string                 `json:"orderSource"`
	OrderType      string                 `json:"orderType"`
	PaymentTime    *time.Time             `json:"paymentTime"`
	ExpirationTime *time.Time             `json:"expirationTime"`
	RefundAmount   float64                `json:"refundAmount"`
	RefundReason   string                 `json:"refundReason,omitempty"`
	Remark         string                 `json:"remark,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

type StatisticsDTO struct {
	TotalOrder        int64   `json:"totalOrder"`
	TotalAmount       float64 `json:"totalAmount"`
	TotalRefundOrder  int64   `json:"totalRefundOrder"`
	TotalRefundAmount float64 `json:"totalRefundAmount"`
	TotalIncome       float64 `json:"totalIncome"`
}

const ActivePackageStatus = "active"

type ActivePackageDTO struct {
	PackageID     string    `json:"packageId"`
	OrderID       string    `json:"orderId"`
	PackageName   string    `json:"packageName"`
	RemainingDays int       `json:"remainingDays"`
	Status        string    `json:"status"`
	ExpireDate    time.Time `json:"expireDate"`
	AutoRenew     bool      `json:"autoRenew"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type HasActivePackageDTO struct {
	HasActivePackage bool `json:"hasActivePackage"`
}

type RemainingDaysDTO struct {
	RemainingDays int `json:"remainingDays"`
}
