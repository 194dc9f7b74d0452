package identity

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/kbukum/webtoon-api/database"
)

// Record is the database row for an identity.
type Record struct {
	Username     string `gorm:"primaryKey;size:255"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName overrides the default table name.
func (Record) TableName() string { return "identities" }

// GormStore persists identities in a SQL table keyed by username.
// Registration is an INSERT ... ON CONFLICT DO NOTHING; zero affected rows
// means the username was already taken.
type GormStore struct {
	db *database.DB
}

// NewGormStore creates a GormStore. The identities table must exist; see
// Record and database.Component.WithAutoMigrate.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Register(ctx context.Context, username, passwordHash string) (Identity, error) {
	rec := Record{Username: username, PasswordHash: passwordHash}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec)
	if res.Error != nil {
		return Identity{}, fmt.Errorf("identity: register: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return Identity{}, ErrDuplicate
	}
	return Identity{Username: rec.Username, PasswordHash: rec.PasswordHash}, nil
}

func (s *GormStore) FindByUsername(ctx context.Context, username string) (Identity, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&rec).Error
	if err != nil {
		if database.IsNotFoundError(err) {
			return Identity{}, ErrNotFound
		}
		return Identity{}, fmt.Errorf("identity: find: %w", err)
	}
	return Identity{Username: rec.Username, PasswordHash: rec.PasswordHash}, nil
}
