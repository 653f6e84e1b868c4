package server

import (
	"context"
	"sync"

	"github.com/mailbridge/mailbridge/internal/instrumentation"
	"github.com/mailbridge/mailbridge/internal/mail"
)

// ServerContext holds the shared state of the MCP server: the Mail.app
// client, optional instrumentation, and the shutdown lifecycle.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	mailClient *mail.Client

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context around a mail client.
func NewServerContext(ctx context.Context, client *mail.Client) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		mailClient: client,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// MailClient returns the Mail.app client.
func (sc *ServerContext) MailClient() *mail.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.mailClient
}

// SetMailClient replaces the Mail.app client. Used by tests.
func (sc *ServerContext) SetMailClient(client *mail.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.mailClient = client
}

// SetMetrics sets the metrics recorder. May be nil when instrumentation is
// disabled.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger. May be nil when auditing is
// disabled.
func (sc *ServerContext) SetAuditLogger(l *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = l
}

// AuditLogger returns the audit logger, or nil.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
