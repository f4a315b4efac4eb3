package internal

import (
	"bitwise74/file-api/internal/registry"
	"bitwise74/file-api/internal/service"
	"bitwise74/file-api/internal/token"
	"bitwise74/file-api/storage"

	"gorm.io/gorm"
)

// Deps is the full set of services handlers work with. Everything is
// assembled once at startup and passed down explicitly.
type Deps struct {
	DB       *gorm.DB
	Registry registry.Registry
	Storage  storage.Backend
	Tokens   *token.Service
	Locks    *service.FileLocks
	Flush    *service.Flush
}
