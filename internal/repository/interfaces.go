package repository

import (
	"context"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
)

type UserRepository interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

// RefactoringRepository - история улучшений промптов.
type RefactoringRepository interface {
	Create(ctx context.Context, r *domain.Refactoring) error
	ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Refactoring, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}
