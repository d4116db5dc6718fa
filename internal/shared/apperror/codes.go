package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInvalidState  = "INVALID_STATE"
	CodeTenantMissing = "TENANT_MISSING"
	CodeInvalidPeriod = "INVALID_PERIOD"

	// Server errors (5xx)
	CodeInternalError       = "INTERNAL_ERROR"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	CodeAccountingImbalance = "ACCOUNTING_IMBALANCE"
	CodeStepFailed          = "STEP_FAILED"
)
