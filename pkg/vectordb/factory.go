package vectordb

import (
	"fmt"

	"github.com/nikhilkoche/Home-Assignment/pkg/config"
)

// NewStore returns a concrete Store based on vectordb configuration
func NewStore(cfg config.VectorDBConfig) (Store, error) {
	switch cfg.Type {
	case "memory", "":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "mysql":
		return NewMySQLStore(cfg.Path)
	case "postgres":
		return NewPostgresStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported vectordb type: %s", cfg.Type)
	}
}
