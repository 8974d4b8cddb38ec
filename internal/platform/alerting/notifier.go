package alerting

import (
	"context"
	"log/slog"

	portssvc "github.com/finledger/fincore/internal/core/ports/services"
	"github.com/finledger/fincore/internal/middleware"
)

// logNotifier reports operational alerts through the structured logger. A
// deployment with a paging system swaps this for its own implementation.
type logNotifier struct{}

// NewLogNotifier creates the default log-backed alert notifier.
func NewLogNotifier() portssvc.AlertNotifier {
	return &logNotifier{}
}

var _ portssvc.AlertNotifier = (*logNotifier)(nil)

// NotifyAuditFailure reports a failed best-effort audit append. The business
// write already committed; this trail is what operations follows up on.
func (n *logNotifier) NotifyAuditFailure(ctx context.Context, companyID, action string, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Error("ALERT: audit append failed, chain is missing an action",
		slog.String("company_id", companyID),
		slog.String("action", action),
		slog.String("error", err.Error()))
}
