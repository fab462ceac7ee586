package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys set by the auth middleware.
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyIsRoot   = "is_root"

	// Casbin role granted every active permission code.
	RoleAdmin = "admin"

	ErrMsgInternalServerError = "Internal server error occurred"
)

// Table names.
const (
	TableUsers          = "users"
	TableDict           = "dict"
	TableMenus          = "menus"
	TablePermissions    = "permissions"
	TablePayConfigs     = "payconfigs"
	TableAIProviders    = "ai_providers"
	TableAIModels       = "ai_models"
	TableKeyTemplates   = "key_templates"
	TablePackageConfigs = "coze_package_configs"
	TableOrders         = "coze_package_orders"
	TablePages          = "pages"
)
