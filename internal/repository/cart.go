package repository

import (
	"context"
	"time"

	"sportify-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository scopes every lookup and mutation to the owning user.
type CartRepository interface {
	Create(ctx context.Context, line *model.CartLine) error
	ListByUser(ctx context.Context, userID string) ([]*model.CartLine, error)
	LockByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*model.CartLine, error)
	UpdateQuantity(ctx context.Context, lineID uint, userID string, quantity int32) error
	Delete(ctx context.Context, lineID uint, userID string) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Create(ctx context.Context, line *model.CartLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *cartRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.CartLine, error) {
	var lines []*model.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&lines).Error

	if err != nil {
		return nil, err
	}

	return lines, nil
}

// LockByUser reads the user's lines with SELECT ... FOR UPDATE. sqlite ignores
// the locking clause and serializes writers instead.
func (r *cartRepoImpl) LockByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*model.CartLine, error) {
	var lines []*model.CartLine
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("id").
		Find(&lines).Error

	if err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *cartRepoImpl) UpdateQuantity(ctx context.Context, lineID uint, userID string, quantity int32) error {
	result := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *cartRepoImpl) Delete(ctx context.Context, lineID uint, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&model.CartLine{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *cartRepoImpl) DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	result := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLine{})

	return result.RowsAffected, result.Error
}
