package notify

import (
	"context"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/logging"
)

// LogNotifier writes notifications to the log instead of sending them.
// It exposes secrets and is meant for local development only.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "log_notifier")}
}

func (n *LogNotifier) SendVerificationCode(ctx context.Context, to Recipient, code string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.Info(ctx, "verification code", "email", to.Email, "name", to.Name, "code", code, "ttl", ttl.String())
	return nil
}

func (n *LogNotifier) SendTemporaryPassword(ctx context.Context, to Recipient, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.Info(ctx, "temporary password", "email", to.Email, "name", to.Name, "password", password)
	return nil
}
