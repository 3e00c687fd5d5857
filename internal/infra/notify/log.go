// Package notify delivers user notifications over SNS or to the structured log.
package notify

import (
	"context"
	"log/slog"

	"github.com/yanqian/moodsip/internal/domain/notification"
)

// LogNotifier writes notifications to the log. Used when no push channel is configured.
type LogNotifier struct {
	logger *slog.Logger
}

var _ notification.Notifier = (*LogNotifier)(nil)

// NewLogNotifier constructs the log notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notify.log")}
}

// Notify logs n at info level.
func (n *LogNotifier) Notify(ctx context.Context, userID int64, msg notification.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		"user_id", userID,
		"kind", msg.Kind,
		"title", msg.Title,
		"message", msg.Message,
	)
	return nil
}
