package models

import (
	"encodefaces/db"
)

// Init migrates the face index. No-op when no database is configured.
func Init() error {
	if db.Instance == nil {
		return nil
	}
	return db.Instance.AutoMigrate(&Face{})
}
