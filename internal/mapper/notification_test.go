package mapper

import (
	"testing"

	"github.com/dvloznov/finance-vault/internal/domain"
)

func TestNotificationRoundTrip(t *testing.T) {
	c := testCodec(t)

	tests := []struct {
		name  string
		input domain.NotificationInput
	}{
		{
			name: "bill reminder",
			input: domain.NotificationInput{
				Type:    domain.NotificationBillReminder,
				Enabled: true,
				Config:  domain.BillReminderConfig{BillID: "bill-1", DaysBefore: 3},
			},
		},
		{
			name: "goal milestone",
			input: domain.NotificationInput{
				Type:    domain.NotificationGoalMilestone,
				Enabled: true,
				Config:  domain.GoalMilestoneConfig{GoalID: "goal-1", ThresholdPct: dec("75")},
			},
		},
		{
			name: "balance alert",
			input: domain.NotificationInput{
				Type:    domain.NotificationBalanceAlert,
				Enabled: false,
				Config:  domain.BalanceAlertConfig{AccountID: "acc-1", Below: dec("100")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := EncryptNotificationForCreate(c, tt.input)
			if err != nil {
				t.Fatalf("EncryptNotificationForCreate failed: %v", err)
			}

			got, err := DecryptNotification(c, row)
			if err != nil {
				t.Fatalf("DecryptNotification failed: %v", err)
			}
			if got.Type != tt.input.Type {
				t.Errorf("Type = %q, want %q", got.Type, tt.input.Type)
			}
			if got.Enabled != tt.input.Enabled {
				t.Errorf("Enabled = %v, want %v", got.Enabled, tt.input.Enabled)
			}

			switch want := tt.input.Config.(type) {
			case domain.BillReminderConfig:
				cfg, ok := got.Config.(domain.BillReminderConfig)
				if !ok {
					t.Fatalf("Config type = %T, want BillReminderConfig", got.Config)
				}
				if cfg != want {
					t.Errorf("Config = %+v, want %+v", cfg, want)
				}
			case domain.GoalMilestoneConfig:
				cfg, ok := got.Config.(domain.GoalMilestoneConfig)
				if !ok {
					t.Fatalf("Config type = %T, want GoalMilestoneConfig", got.Config)
				}
				if cfg.GoalID != want.GoalID || !cfg.ThresholdPct.Equal(want.ThresholdPct) {
					t.Errorf("Config = %+v, want %+v", cfg, want)
				}
			case domain.BalanceAlertConfig:
				cfg, ok := got.Config.(domain.BalanceAlertConfig)
				if !ok {
					t.Fatalf("Config type = %T, want BalanceAlertConfig", got.Config)
				}
				if cfg.AccountID != want.AccountID || !cfg.Below.Equal(want.Below) {
					t.Errorf("Config = %+v, want %+v", cfg, want)
				}
			}
		})
	}
}

func TestNotificationCreate_ConfigTypeMismatch(t *testing.T) {
	c := testCodec(t)

	_, err := EncryptNotificationForCreate(c, domain.NotificationInput{
		Type:   domain.NotificationBillReminder,
		Config: domain.BalanceAlertConfig{AccountID: "acc-1", Below: dec("100")},
	})
	if err == nil {
		t.Error("EncryptNotificationForCreate accepted mismatched config variant")
	}
}
