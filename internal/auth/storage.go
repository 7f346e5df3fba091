package auth

import (
	"database/sql"

	"github.com/Hirosolo/train-diary-cli/internal/db"
)

// SQLStorage backs the session with the sqlite state file.
type SQLStorage struct {
	DB *sql.DB
}

func (s SQLStorage) Get(key string) (string, bool, error) {
	return db.GetValue(s.DB, key)
}

func (s SQLStorage) Set(key, value string) error {
	return db.SetValue(s.DB, key, value)
}

func (s SQLStorage) Delete(key string) error {
	return db.DeleteValue(s.DB, key)
}
