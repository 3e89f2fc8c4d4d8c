package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/spankks/scheduling-api/internal/domain"
	"gorm.io/gorm"
)

// SequenceRepository handles the persisted ID counters. The client and job
// sequences are independent; an allocated identifier is never reused.
type SequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new SequenceRepository
func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// AllocateNextID atomically allocates the next identifier from the named
// sequence and returns it formatted as prefix + zero-padded counter
// (CLI001, JOB042, ...). The increment is a single UPDATE statement inside
// a transaction, so two concurrent allocations can never read the same
// counter value.
func (r *SequenceRepository) AllocateNextID(ctx context.Context, name domain.SequenceName) (string, error) {
	var allocated string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq domain.IDSequence
		result := tx.Where("name = ?", name).First(&seq)
		if result.Error == gorm.ErrRecordNotFound {
			seq = defaultSequence(name)
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create %s sequence: %w", name, err)
			}
		} else if result.Error != nil {
			return fmt.Errorf("failed to read %s sequence: %w", name, result.Error)
		}

		res := tx.Model(&domain.IDSequence{}).
			Where("name = ?", name).
			Updates(map[string]interface{}{
				"next_id":    gorm.Expr("next_id + 1"),
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to advance %s sequence: %w", name, res.Error)
		}

		var after domain.IDSequence
		if err := tx.Where("name = ?", name).First(&after).Error; err != nil {
			return fmt.Errorf("failed to re-read %s sequence: %w", name, err)
		}

		allocated = fmt.Sprintf("%s%03d", after.Prefix, after.NextID-1)
		return nil
	})
	if err != nil {
		return "", err
	}

	return allocated, nil
}

// Current returns the sequence row without advancing it. Returns the
// default (unpersisted) row if none exists yet.
func (r *SequenceRepository) Current(ctx context.Context, name domain.SequenceName) (*domain.IDSequence, error) {
	var seq domain.IDSequence
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&seq)
	if result.Error == gorm.ErrRecordNotFound {
		seq = defaultSequence(name)
		return &seq, nil
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to read %s sequence: %w", name, result.Error)
	}
	return &seq, nil
}

func defaultSequence(name domain.SequenceName) domain.IDSequence {
	prefix := "CLI"
	if name == domain.SequenceJob {
		prefix = "JOB"
	}
	return domain.IDSequence{
		Name:      name,
		NextID:    1,
		Prefix:    prefix,
		UpdatedAt: time.Now().UTC(),
	}
}
