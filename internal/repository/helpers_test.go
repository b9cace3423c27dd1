package repository

import (
	"testing"

	"sportify-api/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// createUsers inserts bare accounts so cart and order rows satisfy their
// foreign keys.
func createUsers(t *testing.T, db *gorm.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, db.Create(&model.User{ID: id, Email: id + "@example.com", PasswordHash: "hash"}).Error)
	}
}
