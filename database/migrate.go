package database

import (
	"github.com/rpupo63/genai-portfolio-backend/models"
)

// Migrate creates or updates every table and index the API uses. Unique
// indexes on categories, tags, users and subscribers are created here.
func (d Database) Migrate() error {
	return d.db.AutoMigrate(models.All()...)
}
