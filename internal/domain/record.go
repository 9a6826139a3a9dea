package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordStatus string

const (
	StatusOngoing   RecordStatus = "Ongoing"
	StatusCompleted RecordStatus = "Completed"
	StatusPlanned   RecordStatus = "Planned"
)

// ValidStatus reports whether s is one of the three enrollment statuses.
func ValidStatus(s RecordStatus) bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusPlanned:
		return true
	}
	return false
}

var (
	// ErrRecordNotFound covers both a missing id and an id owned by someone
	// else; callers must not be able to tell the two apart.
	ErrRecordNotFound = errors.New("record not found")

	// ErrPersistence marks a write the storage backend rejected.
	ErrPersistence = errors.New("record could not be persisted")
)

// TrackedCourseRecord is one course enrollment owned by a single user.
// Optional columns are pointer-typed: nil means "not supplied", an empty
// string is never stored.
type TrackedCourseRecord struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         string       `gorm:"not null;index:idx_records_owner_created,priority:1" json:"ownerId"`
	CourseName      string       `gorm:"not null" json:"courseName"`
	Status          RecordStatus `gorm:"not null" json:"status"`
	Instructor      *string      `json:"instructor,omitempty"`
	CompletionDate  *time.Time   `json:"completionDate,omitempty"`
	CertificateLink *string      `json:"certificateLink,omitempty"`
	Progress        int          `gorm:"not null" json:"progress"`
	Notes           *string      `json:"notes,omitempty"`
	CreatedAt       time.Time    `gorm:"index:idx_records_owner_created,priority:2" json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func (r *TrackedCourseRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
