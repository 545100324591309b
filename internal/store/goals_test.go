package store

import (
	"context"
	"testing"

	"github.com/dvloznov/finance-vault/internal/domain"
)

func savingsGoal(name string) domain.GoalInput {
	return domain.GoalInput{
		Name:         name,
		Type:         domain.GoalSavings,
		TargetAmount: dec("10000"),
		IsActive:     true,
	}
}

func TestGoals_CompletedAtLifecycle(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	goal, err := s.Goals.Create(ctx, savingsGoal("emergency fund"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if goal.CompletedAt != nil {
		t.Errorf("new goal CompletedAt = %v, want nil", goal.CompletedAt)
	}

	// Completing sets the timestamp.
	completed, err := s.Goals.Update(ctx, goal.ID, domain.GoalPatch{
		IsCompleted: domain.Set(true),
	})
	if err != nil {
		t.Fatalf("Update complete: %v", err)
	}
	if !completed.IsCompleted || completed.CompletedAt == nil {
		t.Fatalf("completed goal = isCompleted=%v completedAt=%v", completed.IsCompleted, completed.CompletedAt)
	}
	firstStamp := *completed.CompletedAt

	// Re-asserting completion leaves the original timestamp alone.
	again, err := s.Goals.Update(ctx, goal.ID, domain.GoalPatch{
		IsCompleted: domain.Set(true),
	})
	if err != nil {
		t.Fatalf("Update re-complete: %v", err)
	}
	if again.CompletedAt == nil || !again.CompletedAt.Equal(firstStamp) {
		t.Errorf("CompletedAt moved on re-completion: %v → %v", firstStamp, again.CompletedAt)
	}

	// An unrelated update leaves it alone too.
	renamed, err := s.Goals.Update(ctx, goal.ID, domain.GoalPatch{
		Name: domain.Set("rainy day fund"),
	})
	if err != nil {
		t.Fatalf("Update rename: %v", err)
	}
	if renamed.CompletedAt == nil || !renamed.CompletedAt.Equal(firstStamp) {
		t.Errorf("CompletedAt moved on rename: %v → %v", firstStamp, renamed.CompletedAt)
	}

	// Reopening clears it.
	reopened, err := s.Goals.Update(ctx, goal.ID, domain.GoalPatch{
		IsCompleted: domain.Set(false),
	})
	if err != nil {
		t.Fatalf("Update reopen: %v", err)
	}
	if reopened.IsCompleted || reopened.CompletedAt != nil {
		t.Errorf("reopened goal = isCompleted=%v completedAt=%v", reopened.IsCompleted, reopened.CompletedAt)
	}
}

func TestGoals_CreateCompletedSetsTimestamp(t *testing.T) {
	s := newTestStores(t)

	in := savingsGoal("already done")
	in.IsCompleted = true
	goal, err := s.Goals.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !goal.IsCompleted || goal.CompletedAt == nil {
		t.Errorf("goal = isCompleted=%v completedAt=%v, want completed with timestamp", goal.IsCompleted, goal.CompletedAt)
	}
}

func TestGoals_AccountIDsNormalization(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	// Empty slice persists as no association.
	in := savingsGoal("unlinked")
	in.AccountIDs = []string{}
	unlinked, err := s.Goals.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create unlinked: %v", err)
	}
	if unlinked.AccountIDs != nil {
		t.Errorf("AccountIDs = %v, want nil for empty input", unlinked.AccountIDs)
	}

	in = savingsGoal("linked")
	in.AccountIDs = []string{"acc-1", "acc-2"}
	linked, err := s.Goals.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create linked: %v", err)
	}
	if len(linked.AccountIDs) != 2 || linked.AccountIDs[0] != "acc-1" || linked.AccountIDs[1] != "acc-2" {
		t.Errorf("AccountIDs = %v, want [acc-1 acc-2]", linked.AccountIDs)
	}

	// Patching to an empty list unlinks.
	cleared, err := s.Goals.Update(ctx, linked.ID, domain.GoalPatch{
		AccountIDs: domain.Set([]string{}),
	})
	if err != nil {
		t.Fatalf("Update clear: %v", err)
	}
	if cleared.AccountIDs != nil {
		t.Errorf("AccountIDs after clearing = %v, want nil", cleared.AccountIDs)
	}
}

func TestGoals_ListFilters(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	done := savingsGoal("done")
	done.IsCompleted = true
	payoff := domain.GoalInput{
		Name: "car loan", Type: domain.GoalDebtPayoff,
		TargetAmount: dec("8000"), IsActive: true,
	}
	for _, in := range []domain.GoalInput{savingsGoal("open"), done, payoff} {
		if _, err := s.Goals.Create(ctx, in); err != nil {
			t.Fatalf("Create %s: %v", in.Name, err)
		}
	}

	open, err := s.Goals.List(ctx, domain.GoalFilter{IsCompleted: boolPtr(false)})
	if err != nil {
		t.Fatalf("List open: %v", err)
	}
	if len(open) != 2 {
		t.Errorf("open goals = %d, want 2", len(open))
	}

	typ := domain.GoalDebtPayoff
	debt, err := s.Goals.List(ctx, domain.GoalFilter{Type: &typ})
	if err != nil {
		t.Fatalf("List debt: %v", err)
	}
	if len(debt) != 1 || debt[0].Name != "car loan" {
		t.Errorf("debt goals = %d, want just car loan", len(debt))
	}
}
