package roles

import (
	"context"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/models"
)

type Repository interface {
	// GetByName returns common.ErrorNotFound when the role is not seeded.
	GetByName(ctx context.Context, name string) (*models.Role, error)
}
