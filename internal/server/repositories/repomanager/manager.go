// Package repomanager wires repository constructors together behind a single
// interface so services can obtain repositories bound to either the shared
// pool or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mpetrenko/linkfolio/internal/dbx"
	"github.com/mpetrenko/linkfolio/internal/server/repositories/analytics"
	"github.com/mpetrenko/linkfolio/internal/server/repositories/links"
	"github.com/mpetrenko/linkfolio/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes the schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Links(db dbx.DBTX) links.Repository
	Analytics(db dbx.DBTX) analytics.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
