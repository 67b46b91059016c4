package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/domain"
)

// UserStore persists user accounts. Emails are stored lowercased and looked
// up case-insensitively.
type UserStore interface {
	// Create inserts a user that already carries a bcrypt hash. A taken
	// email yields ErrEmailExists.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	WithTx(tx *sql.Tx) UserStore
}
