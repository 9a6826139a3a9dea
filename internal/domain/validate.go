package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FieldError names the first field that failed validation.
type FieldError struct {
	Field string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("invalid field: %s", e.Field)
}

// RecordInput is the raw write payload. Pointer fields distinguish a field
// that was omitted from one that was supplied empty.
type RecordInput struct {
	CourseName      *string  `json:"courseName"`
	Status          *string  `json:"status"`
	Progress        *float64 `json:"progress"`
	Instructor      *string  `json:"instructor"`
	CompletionDate  *string  `json:"completionDate"`
	CertificateLink *string  `json:"certificateLink"`
	Notes           *string  `json:"notes"`
}

// RecordFields is a validated, normalized payload ready to persist. Nil
// pointers are the absent marker for the optional fields.
type RecordFields struct {
	CourseName      string
	Status          RecordStatus
	Progress        int
	Instructor      *string
	CompletionDate  *time.Time
	CertificateLink *string
	Notes           *string
}

var completionDateFormats = []string{time.RFC3339, "2006-01-02"}

// ValidateRecordInput applies the write-payload rules in order, first failure
// wins: courseName (trimmed, min 3 chars), status (enum), progress (integer in
// [0,100]), then optional-field normalization and completion-date parsing.
func ValidateRecordInput(in RecordInput) (RecordFields, error) {
	var fields RecordFields

	if in.CourseName == nil {
		return fields, FieldError{Field: "courseName"}
	}
	name := strings.TrimSpace(*in.CourseName)
	if len(name) < 3 {
		return fields, FieldError{Field: "courseName"}
	}

	if in.Status == nil || !ValidStatus(RecordStatus(*in.Status)) {
		return fields, FieldError{Field: "status"}
	}

	if in.Progress == nil {
		return fields, FieldError{Field: "progress"}
	}
	progress := *in.Progress
	if progress != math.Trunc(progress) || progress < 0 || progress > 100 {
		return fields, FieldError{Field: "progress"}
	}

	fields.CourseName = name
	fields.Status = RecordStatus(*in.Status)
	fields.Progress = int(progress)
	fields.Instructor = normalizeOptional(in.Instructor)
	fields.CertificateLink = normalizeOptional(in.CertificateLink)
	fields.Notes = normalizeOptional(in.Notes)

	date, err := parseCompletionDate(in.CompletionDate)
	if err != nil {
		return RecordFields{}, err
	}
	fields.CompletionDate = date

	return fields, nil
}

// ValidateRecordUpdate validates a partial update: the existing record's
// mutable fields are copied, overwritten by whatever the input supplies, and
// the merged payload goes through the same rules as a create. The record's
// id, owner and creation time are never part of the merge.
func ValidateRecordUpdate(existing *TrackedCourseRecord, in RecordInput) (RecordFields, error) {
	merged := in
	if merged.CourseName == nil {
		merged.CourseName = &existing.CourseName
	}
	if merged.Status == nil {
		s := string(existing.Status)
		merged.Status = &s
	}
	if merged.Progress == nil {
		p := float64(existing.Progress)
		merged.Progress = &p
	}
	if merged.Instructor == nil {
		merged.Instructor = existing.Instructor
	}
	if merged.CertificateLink == nil {
		merged.CertificateLink = existing.CertificateLink
	}
	if merged.Notes == nil {
		merged.Notes = existing.Notes
	}
	if merged.CompletionDate == nil && existing.CompletionDate != nil {
		d := existing.CompletionDate.Format(time.RFC3339)
		merged.CompletionDate = &d
	}
	return ValidateRecordInput(merged)
}

// normalizeOptional trims a supplied value; empty or missing collapses to nil
// so an empty string never reaches storage.
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseCompletionDate(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*v)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range completionDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, FieldError{Field: "completionDate"}
}
