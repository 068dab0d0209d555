package store

import "github.com/MKhiriev/go-user-accounts/internal/logger"

type Storages struct {
	UserRepository UserRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
	}
}
