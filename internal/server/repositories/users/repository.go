package users

import (
	"context"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/models"
)

// Repository persists users together with their login sub-record.
// Lookups return common.ErrorNotFound when no row matches.
type Repository interface {
	// Create inserts a new user and fills in its timestamps. A duplicate email
	// yields common.ErrAlreadyRegistered.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByEmailForUpdate locks the row until the surrounding transaction ends.
	GetByEmailForUpdate(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	UpdateVerificationCode(ctx context.Context, id, code string, expiresAt time.Time) error
	// Activate moves a PENDING user to ACTIVE and clears its code. It reports
	// false when the user was not PENDING.
	Activate(ctx context.Context, id string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	// ReplacePasswordHash swaps the hash only if it still equals from.
	ReplacePasswordHash(ctx context.Context, id, from, to string) (bool, error)
}
