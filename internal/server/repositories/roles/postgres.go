package roles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/dbx"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return role, nil
}
