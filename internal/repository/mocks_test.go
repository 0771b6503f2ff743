package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
)

func TestMockUserRepository(t *testing.T) {
	repo := NewMockUserRepository()
	ctx := context.Background()

	if _, err := repo.Get(ctx, 1); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Get() on empty repo error = %v, want ErrUserNotFound", err)
	}

	user := &domain.User{ID: 1, Username: "alice"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("Username = %v, want alice", got.Username)
	}

	got.Username = "bob"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	updated, _ := repo.Get(ctx, 1)
	if updated.Username != "bob" {
		t.Errorf("Username after update = %v, want bob", updated.Username)
	}

	if err := repo.Update(ctx, &domain.User{ID: 99}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Update() unknown user error = %v, want ErrUserNotFound", err)
	}
}

func TestMockRefactoringRepository(t *testing.T) {
	repo := NewMockRefactoringRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := &domain.Refactoring{UserID: 1, Input: "in", Output: "out", Model: "gpt-4"}
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if r.ID == 0 {
			t.Error("Create() should assign an id")
		}
	}
	repo.Create(ctx, &domain.Refactoring{UserID: 2, Input: "other", Output: "out", Model: "gpt-4"})

	recent, err := repo.ListRecent(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len(ListRecent()) = %d, want 2", len(recent))
	}
	// свежие записи первыми
	if recent[0].ID < recent[1].ID {
		t.Error("ListRecent() should return newest first")
	}

	count, err := repo.CountByUser(ctx, 1)
	if err != nil {
		t.Fatalf("CountByUser() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountByUser() = %d, want 3", count)
	}
}
