package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/record"
)

// EncryptNotificationForCreate builds a persisted notification row. The
// config variant must match the notification type; a mismatch is a caller
// bug and fails here rather than producing an uninterpretable row.
func EncryptNotificationForCreate(c *crypto.Codec, in domain.NotificationInput) (*record.NotificationRow, error) {
	if err := checkConfigType(in.Type, in.Config); err != nil {
		return nil, fmt.Errorf("EncryptNotificationForCreate: %w", err)
	}

	payload, err := json.Marshal(in.Config)
	if err != nil {
		return nil, fmt.Errorf("EncryptNotificationForCreate: marshaling config: %w", err)
	}
	configEnc, err := c.EncryptBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("EncryptNotificationForCreate: config: %w", err)
	}

	return &record.NotificationRow{
		Type:      string(in.Type),
		Enabled:   in.Enabled,
		ConfigEnc: configEnc,
	}, nil
}

// DecryptNotification rebuilds the notification rule, decoding the config
// into the concrete variant selected by the row's type.
func DecryptNotification(c *crypto.Codec, row *record.NotificationRow) (*domain.Notification, error) {
	payload, err := c.DecryptBytes(row.ConfigEnc)
	if err != nil {
		return nil, fmt.Errorf("DecryptNotification: config: %w", err)
	}

	var config domain.NotificationConfig
	switch domain.NotificationType(row.Type) {
	case domain.NotificationBillReminder:
		var v domain.BillReminderConfig
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, fmt.Errorf("DecryptNotification: decoding bill reminder config: %w", err)
		}
		config = v
	case domain.NotificationGoalMilestone:
		var v domain.GoalMilestoneConfig
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, fmt.Errorf("DecryptNotification: decoding goal milestone config: %w", err)
		}
		config = v
	case domain.NotificationBalanceAlert:
		var v domain.BalanceAlertConfig
		if err := json.Unmarshal(payload, &v); err != nil {
			return nil, fmt.Errorf("DecryptNotification: decoding balance alert config: %w", err)
		}
		config = v
	default:
		return nil, fmt.Errorf("DecryptNotification: unknown notification type %q", row.Type)
	}

	return &domain.Notification{
		ID:        row.ID,
		Type:      domain.NotificationType(row.Type),
		Enabled:   row.Enabled,
		Config:    config,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func checkConfigType(t domain.NotificationType, config domain.NotificationConfig) error {
	switch t {
	case domain.NotificationBillReminder:
		if _, ok := config.(domain.BillReminderConfig); !ok {
			return fmt.Errorf("config %T does not match type %q", config, t)
		}
	case domain.NotificationGoalMilestone:
		if _, ok := config.(domain.GoalMilestoneConfig); !ok {
			return fmt.Errorf("config %T does not match type %q", config, t)
		}
	case domain.NotificationBalanceAlert:
		if _, ok := config.(domain.BalanceAlertConfig); !ok {
			return fmt.Errorf("config %T does not match type %q", config, t)
		}
	default:
		return fmt.Errorf("unknown notification type %q", t)
	}
	return nil
}
