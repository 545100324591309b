package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/mapper"
	"github.com/dvloznov/finance-vault/internal/record"
)

// Notifications is the entity store for notification rules. Evaluators are
// read-only consumers of List; they always receive decrypted configs.
type Notifications struct {
	db    *gorm.DB
	codec *crypto.Codec
}

// Create persists a new notification rule.
func (s *Notifications) Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error) {
	row, err := mapper.EncryptNotificationForCreate(s.codec, in)
	if err != nil {
		return nil, fmt.Errorf("Notifications.Create: %w", err)
	}
	row.ID = uuid.NewString()

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("Notifications.Create: inserting: %w", err)
	}
	return mapper.DecryptNotification(s.codec, row)
}

// Get returns the rule with the given id, or nil if it does not exist.
func (s *Notifications) Get(ctx context.Context, id string) (*domain.Notification, error) {
	var row record.NotificationRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if record.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("Notifications.Get: %w", err)
	}
	return mapper.DecryptNotification(s.codec, &row)
}

// List returns rules matching the filter.
func (s *Notifications) List(ctx context.Context, filter domain.NotificationFilter) ([]*domain.Notification, error) {
	q := s.db.WithContext(ctx).Model(&record.NotificationRow{})
	if filter.Type != nil {
		q = q.Where("type = ?", string(*filter.Type))
	}
	if filter.Enabled != nil {
		q = q.Where("enabled = ?", *filter.Enabled)
	}

	var rows []record.NotificationRow
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("Notifications.List: %w", err)
	}

	rules := make([]*domain.Notification, 0, len(rows))
	for i := range rows {
		n, err := mapper.DecryptNotification(s.codec, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("Notifications.List: %w", err)
		}
		rules = append(rules, n)
	}
	return rules, nil
}

// SetEnabled toggles a rule. Returns false if the id does not exist.
func (s *Notifications) SetEnabled(ctx context.Context, id string, enabled bool) (bool, error) {
	res := s.db.WithContext(ctx).Model(&record.NotificationRow{}).Where("id = ?", id).
		Update("enabled", enabled)
	if res.Error != nil {
		return false, fmt.Errorf("Notifications.SetEnabled: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a rule. Returns false if the id does not exist.
func (s *Notifications) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&record.NotificationRow{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("Notifications.Delete: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
