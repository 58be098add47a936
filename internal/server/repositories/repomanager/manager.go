package repomanager

import (
	"context"
	"database/sql"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/dbx"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/repositories/roles"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// path works against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Roles(db dbx.DBTX) roles.Repository
}
