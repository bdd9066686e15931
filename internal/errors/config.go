package errors

import "fmt"

// Configuration error codes (CFG300-399)
const (
	// ErrInvalidConfigValue indicates a configuration key holds an unusable value
	ErrInvalidConfigValue ErrorCode = "CFG300"
)

// NewInvalidConfigValue creates a CFG300 error
func NewInvalidConfigValue(key string, value interface{}, reason string) *Diagnostic {
	return newError(
		ErrInvalidConfigValue,
		"invalid_config_value",
		CategoryConfig,
		SeverityError,
		fmt.Sprintf("%s: %s", key, reason),
		Location{},
	).WithSource(key).WithActual(fmt.Sprintf("%v", value))
}
