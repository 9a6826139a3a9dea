package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/venkat374/course-tracker-backend/internal/domain"
)

// newTestDB opens a per-test in-memory database. The shared-cache URI keeps
// every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.TrackedCourseRecord{}))
	return db
}

func baseFields() domain.RecordFields {
	return domain.RecordFields{
		CourseName: "Golang",
		Status:     domain.StatusOngoing,
		Progress:   50,
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t), nil)
	ctx := context.Background()

	record, err := repo.Create(ctx, "alice", baseFields())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, "alice", record.OwnerID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.False(t, record.UpdatedAt.Before(record.CreatedAt))
}

func TestCreateRoundTripKeepsOptionalsAbsent(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t), nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", baseFields())
	require.NoError(t, err)

	got, err := repo.GetByOwner(ctx, "alice", created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Golang", got.CourseName)
	assert.Equal(t, domain.StatusOngoing, got.Status)
	assert.Equal(t, 50, got.Progress)
	assert.Nil(t, got.Instructor)
	assert.Nil(t, got.CompletionDate)
	assert.Nil(t, got.CertificateLink)
	assert.Nil(t, got.Notes)
}

func TestListByOwnerNewestFirst(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t), nil)
	ctx := context.Background()

	names := []string{"Course One", "Course Two", "Course Three"}
	for _, name := range names {
		fields := baseFields()
		fields.CourseName = name
		_, err := repo.Create(ctx, "alice", fields)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond) // distinct created_at values
	}

	records, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Course Three", records[0].CourseName)
	assert.Equal(t, "Course Two", records[1].CourseName)
	assert.Equal(t, "Course One", records[2].CourseName)
}

func TestListByOwnerNeverLeaksOtherOwners(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t), nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", baseFields())
	require.NoError(t, err)

	records, err := repo.ListByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCrossOwnerAccessLooksLikeMissingRecord(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t), nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", baseFields())
	require.NoError(t, err)

	// Bob probing Alice's id and Bob probing a nonexistent id must be the
	// same signal.
	_, err = repo.GetByOwner(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	_, err = repo.GetByOwner(ctx, "bob", uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = repo.Update(ctx, "bob", created.ID, baseFields())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	_, err = repo.Update(ctx, "bob", uuid.New(), baseFields())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	err = repo.Delete(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	err = repo.Delete(ctx, "bob", uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	// Alice's record is untouched by any of it.
	got, err := repo.GetByOwner(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateOverwritesMutableFields(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t), nil)
	ctx := context.Background()

	instructor := "Jane Doe"
	fields := baseFields()
	fields.Instructor = &instructor
	created, err := repo.Create(ctx, "alice", fields)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	done := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	updated, err := repo.Update(ctx, "alice", created.ID, domain.RecordFields{
		CourseName:     "Golang Advanced",
		Status:         domain.StatusCompleted,
		Progress:       100,
		CompletionDate: &done,
		// Instructor nil: the optional column is cleared, not kept.
	})
	require.NoError(t, err)

	assert.Equal(t, "Golang Advanced", updated.CourseName)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	assert.Nil(t, updated.Instructor)
	require.NotNil(t, updated.CompletionDate)
	assert.True(t, updated.CompletionDate.Equal(done))

	// Immutable fields survive, updated_at moves forward.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "alice", updated.OwnerID)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestDeleteIsObservedOnceOnly(t *testing.T) {
	repo := NewRecordRepository(newTestDB(t), nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", baseFields())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "alice", created.ID))

	err = repo.Delete(ctx, "alice", created.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = repo.GetByOwner(ctx, "alice", created.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
