package postgres

import (
	"context"
	"fmt"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
)

type RefactoringRepo struct {
	db *DB
}

func NewRefactoringRepo(db *DB) *RefactoringRepo {
	return &RefactoringRepo{db: db}
}

func (r *RefactoringRepo) Create(ctx context.Context, rec *domain.Refactoring) error {
	query := `
        INSERT INTO refactorings (user_id, input, output, model)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `

	err := r.db.Pool.QueryRow(ctx, query,
		rec.UserID,
		rec.Input,
		rec.Output,
		rec.Model,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("create refactoring: %w", err)
	}

	return nil
}

func (r *RefactoringRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Refactoring, error) {
	query := `
        SELECT id, user_id, input, output, model, created_at
        FROM refactorings
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2
    `

	rows, err := r.db.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list refactorings: %w", err)
	}
	defer rows.Close()

	var records []domain.Refactoring
	for rows.Next() {
		var rec domain.Refactoring
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Input,
			&rec.Output,
			&rec.Model,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan refactoring: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refactorings: %w", err)
	}

	return records, nil
}

func (r *RefactoringRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM refactorings WHERE user_id = $1`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count refactorings: %w", err)
	}

	return count, nil
}
