package store

import "github.com/MKhiriev/go-blog-identity/internal/logger"

type Repositories struct {
	AccountRepository AccountRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		AccountRepository: NewAccountRepository(db, logger),
	}
}
