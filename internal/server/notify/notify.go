// Package notify delivers verification codes and temporary passwords to users.
package notify

import (
	"context"
	"time"
)

// Recipient is the addressee of a notification.
type Recipient struct {
	Email string
	Name  string
}

// Notifier sends account emails. Implementations must honour ctx cancellation.
type Notifier interface {
	SendVerificationCode(ctx context.Context, to Recipient, code string, ttl time.Duration) error
	SendTemporaryPassword(ctx context.Context, to Recipient, password string) error
}
