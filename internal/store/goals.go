package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/domain"
	"github.com/dvloznov/finance-vault/internal/mapper"
	"github.com/dvloznov/finance-vault/internal/record"
)

// Goals is the entity store for goals. It owns the CompletedAt invariant:
// the timestamp is set exactly when IsCompleted transitions to true and
// cleared when it transitions back to false.
type Goals struct {
	db    *gorm.DB
	codec *crypto.Codec
	log   zerolog.Logger
}

// Create persists a new goal, assigning its id and the next sort order.
func (s *Goals) Create(ctx context.Context, in domain.GoalInput) (*domain.Goal, error) {
	row, err := mapper.EncryptGoalForCreate(s.codec, in)
	if err != nil {
		return nil, fmt.Errorf("Goals.Create: %w", err)
	}
	row.ID = uuid.NewString()
	if in.IsCompleted {
		now := time.Now().UTC()
		row.CompletedAt = &now
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextSortOrder(tx, record.GoalRow{}.TableName())
		if err != nil {
			return fmt.Errorf("Goals.Create: %w", err)
		}
		row.SortOrder = next
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("Goals.Create: inserting: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("goal_id", row.ID).Int("sort_order", row.SortOrder).Msg("goal created")
	return mapper.DecryptGoal(s.codec, row)
}

// Get returns the goal with the given id, or nil if it does not exist.
func (s *Goals) Get(ctx context.Context, id string) (*domain.Goal, error) {
	var row record.GoalRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if record.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("Goals.Get: %w", err)
	}
	return mapper.DecryptGoal(s.codec, &row)
}

// List returns goals matching the filter, ordered by sort order.
func (s *Goals) List(ctx context.Context, filter domain.GoalFilter) ([]*domain.Goal, error) {
	q := s.db.WithContext(ctx).Model(&record.GoalRow{})
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsCompleted != nil {
		q = q.Where("is_completed = ?", *filter.IsCompleted)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", string(*filter.Type))
	}

	var rows []record.GoalRow
	if err := q.Order("sort_order ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("Goals.List: %w", err)
	}

	goals := make([]*domain.Goal, 0, len(rows))
	for i := range rows {
		g, err := mapper.DecryptGoal(s.codec, &rows[i])
		if err != nil {
			return nil, fmt.Errorf("Goals.List: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// Update applies a partial update and returns the updated goal, or nil if
// the id does not exist.
func (s *Goals) Update(ctx context.Context, id string, patch domain.GoalPatch) (*domain.Goal, error) {
	var updated *record.GoalRow

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row record.GoalRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if record.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("Goals.Update: loading: %w", err)
		}

		updates, err := mapper.EncryptGoalPatch(s.codec, patch)
		if err != nil {
			return fmt.Errorf("Goals.Update: %w", err)
		}

		if patch.IsCompleted.Provided && patch.IsCompleted.Value != nil {
			completing := *patch.IsCompleted.Value
			if completing && !row.IsCompleted {
				updates["completed_at"] = time.Now().UTC()
			}
			if !completing && row.IsCompleted {
				updates["completed_at"] = nil
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&record.GoalRow{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("Goals.Update: applying: %w", err)
			}
		}

		var fresh record.GoalRow
		if err := tx.First(&fresh, "id = ?", id).Error; err != nil {
			return fmt.Errorf("Goals.Update: reloading: %w", err)
		}
		updated = &fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	return mapper.DecryptGoal(s.codec, updated)
}

// Delete removes a goal. Returns false if the id does not exist.
func (s *Goals) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&record.GoalRow{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("Goals.Delete: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Reorder applies a batch of position changes atomically.
func (s *Goals) Reorder(ctx context.Context, order []domain.SortUpdate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range order {
			res := tx.Model(&record.GoalRow{}).Where("id = ?", u.ID).Update("sort_order", u.SortOrder)
			if res.Error != nil {
				return fmt.Errorf("Goals.Reorder: updating %s: %w", u.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("Goals.Reorder: goal %s not found", u.ID)
			}
		}
		return nil
	})
}
