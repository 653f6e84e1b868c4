// Package logging provides structured logging utilities for the mailbridge application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (email anonymization)
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "search_emails")
//	logger.Info("searching mailbox",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("sender operation",
//	    logging.UserHash(senderEmail))
//
// # Security Considerations
//
// This package is designed with security in mind:
//   - Email addresses are hashed to prevent PII leakage while allowing correlation
//   - Message bodies are never logged
package logging
