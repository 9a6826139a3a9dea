package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venkat374/course-tracker-backend/internal/domain"
	"github.com/venkat374/course-tracker-backend/internal/infrastructure/cache"
)

// RecordRepository is the ownership-scoped store: the caller's owner id is
// part of every query predicate, so a record belonging to someone else is
// indistinguishable from one that does not exist. Ownership is never checked
// after an id-only fetch.
type RecordRepository struct {
	db    *gorm.DB
	cache *cache.RecordCache // nil disables list caching
}

func NewRecordRepository(db *gorm.DB, c *cache.RecordCache) *RecordRepository {
	return &RecordRepository{db: db, cache: c}
}

// ListByOwner returns the owner's records, newest first.
func (r *RecordRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.TrackedCourseRecord, error) {
	if r.cache != nil {
		if records, ok := r.cache.GetList(ctx, ownerID); ok {
			return records, nil
		}
	}

	var records []domain.TrackedCourseRecord
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.SetList(ctx, ownerID, records)
	}
	return records, nil
}

// Create persists a new record for the owner; id and timestamps are assigned
// here, never by the caller.
func (r *RecordRepository) Create(ctx context.Context, ownerID string, fields domain.RecordFields) (*domain.TrackedCourseRecord, error) {
	record := &domain.TrackedCourseRecord{
		OwnerID:         ownerID,
		CourseName:      fields.CourseName,
		Status:          fields.Status,
		Progress:        fields.Progress,
		Instructor:      fields.Instructor,
		CompletionDate:  fields.CompletionDate,
		CertificateLink: fields.CertificateLink,
		Notes:           fields.Notes,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	if r.cache != nil {
		r.cache.Invalidate(ctx, ownerID)
	}
	return record, nil
}

// GetByOwner fetches one record through the combined id+owner predicate.
func (r *RecordRepository) GetByOwner(ctx context.Context, ownerID string, id uuid.UUID) (*domain.TrackedCourseRecord, error) {
	var record domain.TrackedCourseRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update overwrites every mutable field and refreshes updated_at. Nil
// pointers in fields clear the matching optional columns. A zero row count
// means the record is missing or not the caller's.
func (r *RecordRepository) Update(ctx context.Context, ownerID string, id uuid.UUID, fields domain.RecordFields) (*domain.TrackedCourseRecord, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.TrackedCourseRecord{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"course_name":      fields.CourseName,
			"status":           fields.Status,
			"progress":         fields.Progress,
			"instructor":       fields.Instructor,
			"completion_date":  fields.CompletionDate,
			"certificate_link": fields.CertificateLink,
			"notes":            fields.Notes,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrRecordNotFound
	}

	if r.cache != nil {
		r.cache.Invalidate(ctx, ownerID)
	}
	return r.GetByOwner(ctx, ownerID, id)
}

// Delete removes exactly one record through the combined predicate.
func (r *RecordRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.TrackedCourseRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}

	if r.cache != nil {
		r.cache.Invalidate(ctx, ownerID)
	}
	return nil
}
