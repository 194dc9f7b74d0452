// Package webtoon stores webtoon records and serves the /webtoons routes.
// Reads are public; creating and deleting require a bearer token.
package webtoon

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no webtoon has the requested id.
var ErrNotFound = errors.New("webtoon: not found")

// Webtoon is a stored webtoon record.
type Webtoon struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Characters  string    `json:"characters" gorm:"type:text"`
	CreatedBy   string    `json:"created_by" gorm:"size:255;index"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the default table name.
func (Webtoon) TableName() string { return "webtoons" }

// Repository persists webtoons.
type Repository interface {
	List(ctx context.Context) ([]Webtoon, error)
	Get(ctx context.Context, id string) (Webtoon, error)
	Create(ctx context.Context, w *Webtoon) error
	Delete(ctx context.Context, id string) error
}
