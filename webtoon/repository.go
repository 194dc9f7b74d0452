package webtoon

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/webtoon-api/database"
)

// GormRepository is a Repository backed by a SQL table.
type GormRepository struct {
	db *database.DB
}

// NewGormRepository creates a GormRepository. The webtoons table must
// exist; see database.Component.WithAutoMigrate.
func NewGormRepository(db *database.DB) *GormRepository {
	return &GormRepository{db: db}
}

// List returns every webtoon, oldest first.
func (r *GormRepository) List(ctx context.Context) ([]Webtoon, error) {
	items := make([]Webtoon, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("webtoon: list: %w", err)
	}
	return items, nil
}

func (r *GormRepository) Get(ctx context.Context, id string) (Webtoon, error) {
	var w Webtoon
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&w).Error
	if err != nil {
		if database.IsNotFoundError(err) {
			return Webtoon{}, ErrNotFound
		}
		return Webtoon{}, fmt.Errorf("webtoon: get: %w", err)
	}
	return w, nil
}

// Create assigns a fresh id and inserts w.
func (r *GormRepository) Create(ctx context.Context, w *Webtoon) error {
	w.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("webtoon: create: %w", err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Webtoon{})
	if res.Error != nil {
		return fmt.Errorf("webtoon: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
