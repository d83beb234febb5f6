package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oggyb/skillswap/internal/db"
	svcErr "github.com/oggyb/skillswap/internal/errors"
)

// AccountRepository stores sign-in accounts. The account ID doubles as the
// profile ID.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(database *gorm.DB) *AccountRepository {
	return &AccountRepository{db: database}
}

// Create inserts an account with an already-hashed password.
// Emails are stored lower-cased; a taken email → Conflict.
func (r *AccountRepository) Create(ctx context.Context, email, passwordHash string) (db.Account, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return db.Account{}, svcErr.Validation("a valid email is required")
	}
	if passwordHash == "" {
		return db.Account{}, svcErr.Validation("password hash is required")
	}

	acc := db.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	err := r.db.WithContext(ctx).Create(&acc).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return db.Account{}, svcErr.Conflict("email %s is already registered", email)
	}
	if err != nil {
		return db.Account{}, err
	}
	return acc, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (db.Account, error) {
	var acc db.Account
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).Take(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Account{}, svcErr.NotFound("no account for %s", email)
	}
	return acc, err
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (db.Account, error) {
	var acc db.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Account{}, svcErr.NotFound("account %s not found", id)
	}
	return acc, err
}

// TouchLogin records a successful sign-in.
func (r *AccountRepository) TouchLogin(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx)
	return tx.Model(&db.Account{}).
		Where("id = ?", id).
		Update("last_login_at", tx.NowFunc()).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
