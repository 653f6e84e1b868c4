package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with account identifiers.

// ExtractAccountDomain extracts the domain part from an account email address.
// This reduces cardinality by using the domain instead of the full email.
//
// Example:
//
//	ExtractAccountDomain("jane@icloud.com")  // "icloud.com"
//	ExtractAccountDomain("user@gmail.com")   // "gmail.com"
//	ExtractAccountDomain("invalid")          // "unknown"
//	ExtractAccountDomain("")                 // "unknown"
func ExtractAccountDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// Common operation types for script execution metrics.
// Status constants are defined in config.go.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationSend   = "send"
	OperationSearch = "search"
)
