package mapper

import (
	"testing"
	"time"

	"github.com/dvloznov/finance-vault/internal/domain"
)

func TestGoalRoundTrip(t *testing.T) {
	c := testCodec(t)
	targetDate := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)

	in := domain.GoalInput{
		Name:                "House deposit",
		Type:                domain.GoalSavings,
		TargetAmount:        dec("40000"),
		CurrentAmount:       decPtr("12500.50"),
		TargetDate:          &targetDate,
		Priority:            1,
		AccountIDs:          []string{"acc-1", "acc-2"},
		MonthlyContribution: decPtr("800"),
		Notes:               strPtr("stretch goal"),
		IsActive:            true,
	}

	row, err := EncryptGoalForCreate(c, in)
	if err != nil {
		t.Fatalf("EncryptGoalForCreate failed: %v", err)
	}
	got, err := DecryptGoal(c, row)
	if err != nil {
		t.Fatalf("DecryptGoal failed: %v", err)
	}

	if got.Name != in.Name {
		t.Errorf("Name = %q, want %q", got.Name, in.Name)
	}
	if !got.TargetAmount.Equal(in.TargetAmount) {
		t.Errorf("TargetAmount = %s, want %s", got.TargetAmount, in.TargetAmount)
	}
	if got.CurrentAmount == nil || !got.CurrentAmount.Equal(*in.CurrentAmount) {
		t.Errorf("CurrentAmount = %v, want %s", got.CurrentAmount, in.CurrentAmount)
	}
	if got.TargetDate == nil || !got.TargetDate.Equal(targetDate) {
		t.Errorf("TargetDate = %v, want %v", got.TargetDate, targetDate)
	}
	if len(got.AccountIDs) != 2 || got.AccountIDs[0] != "acc-1" || got.AccountIDs[1] != "acc-2" {
		t.Errorf("AccountIDs = %v, want [acc-1 acc-2]", got.AccountIDs)
	}
	if got.ExtraPayment != nil {
		t.Errorf("ExtraPayment = %v, want nil", got.ExtraPayment)
	}
}

// An empty account list and an omitted one must persist identically and
// decrypt to the same absence.
func TestGoalCreate_EmptyAccountListNormalized(t *testing.T) {
	c := testCodec(t)

	base := domain.GoalInput{
		Name:         "Emergency fund",
		Type:         domain.GoalSavings,
		TargetAmount: dec("10000"),
		IsActive:     true,
	}

	empty := base
	empty.AccountIDs = []string{}
	omitted := base
	omitted.AccountIDs = nil

	for name, in := range map[string]domain.GoalInput{"empty": empty, "omitted": omitted} {
		t.Run(name, func(t *testing.T) {
			row, err := EncryptGoalForCreate(c, in)
			if err != nil {
				t.Fatalf("EncryptGoalForCreate failed: %v", err)
			}
			if row.AccountIDsEnc != nil {
				t.Errorf("AccountIDsEnc = %v, want nil", *row.AccountIDsEnc)
			}
			got, err := DecryptGoal(c, row)
			if err != nil {
				t.Fatalf("DecryptGoal failed: %v", err)
			}
			if got.AccountIDs != nil {
				t.Errorf("AccountIDs = %v, want nil", got.AccountIDs)
			}
		})
	}
}

func TestGoalPatch_EmptyListClears(t *testing.T) {
	c := testCodec(t)

	updates, err := EncryptGoalPatch(c, domain.GoalPatch{
		AccountIDs: domain.Set([]string{}),
	})
	if err != nil {
		t.Fatalf("EncryptGoalPatch failed: %v", err)
	}

	v, present := updates["account_ids_enc"]
	if !present {
		t.Fatal("account_ids_enc not in update map")
	}
	if ptr, _ := v.(*string); ptr != nil {
		t.Errorf("account_ids_enc = %v, want typed nil", v)
	}
}

func TestGoalPatch_OmittedFieldsAbsent(t *testing.T) {
	c := testCodec(t)

	updates, err := EncryptGoalPatch(c, domain.GoalPatch{
		CurrentAmount: domain.Set(dec("5000")),
	})
	if err != nil {
		t.Fatalf("EncryptGoalPatch failed: %v", err)
	}

	if len(updates) != 1 {
		t.Fatalf("patch produced %d columns %v, want exactly 1", len(updates), updates)
	}
	if _, present := updates["current_amount_enc"]; !present {
		t.Errorf("current_amount_enc missing from %v", updates)
	}
}
