package store

import (
	"context"
	"database/sql"

	"accountd/internal/dbx"
	"accountd/internal/server/otps"
	"accountd/internal/server/profiles"
	"accountd/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	OTPs(db dbx.DBTX) otps.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}
