package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venkat374/course-tracker-backend/internal/domain"
	"github.com/venkat374/course-tracker-backend/internal/middleware"
)

// RecordStore is what the handlers need from the persistence layer. Every
// operation is scoped to an owner id on the store side.
type RecordStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.TrackedCourseRecord, error)
	Create(ctx context.Context, ownerID string, fields domain.RecordFields) (*domain.TrackedCourseRecord, error)
	GetByOwner(ctx context.Context, ownerID string, id uuid.UUID) (*domain.TrackedCourseRecord, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, fields domain.RecordFields) (*domain.TrackedCourseRecord, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

type RecordHandler struct {
	log   *zap.SugaredLogger
	store RecordStore
}

func NewRecordHandler(log *zap.SugaredLogger, store RecordStore) *RecordHandler {
	return &RecordHandler{
		log:   log.With("handler", "RecordHandler"),
		store: store,
	}
}

// recordInput is the write-payload schema: the optional top-level userId plus
// the record fields.
type recordInput struct {
	UserID string `json:"userId"`
	domain.RecordInput
}

// identity returns the caller identity from the query parameter, falling back
// to the body value for requests that carry one. Empty means unauthorized.
func identity(c *gin.Context, bodyUserID string) string {
	if id := c.GetString(middleware.IdentityKey); id != "" {
		return id
	}
	return bodyUserID
}

// GET /api/v1/records
func (h *RecordHandler) List(c *gin.Context) {
	ownerID := identity(c, "")
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.store.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.log.Errorw("list records failed", "error", err, "owner_id", ownerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
		return
	}
	if records == nil {
		records = []domain.TrackedCourseRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// POST /api/v1/records
func (h *RecordHandler) Create(c *gin.Context) {
	var req recordInput
	bindErr := c.ShouldBindJSON(&req)

	// Missing identity wins over a malformed body: nothing else runs without it.
	ownerID := identity(c, req.UserID)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fields, err := domain.ValidateRecordInput(req.RecordInput)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.store.Create(c.Request.Context(), ownerID, fields)
	if err != nil {
		h.log.Errorw("create record failed", "error", err, "owner_id", ownerID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Record created successfully",
		"record":  record,
	})
}

// GET /api/v1/records/:id
func (h *RecordHandler) GetOne(c *gin.Context) {
	ownerID := identity(c, "")
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// An unparseable id cannot exist, which is the same NotFound as a
	// well-formed id owned by someone else.
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	record, err := h.store.GetByOwner(c.Request.Context(), ownerID, id)
	if errors.Is(err, domain.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	if err != nil {
		h.log.Errorw("get record failed", "error", err, "owner_id", ownerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load record"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// PUT /api/v1/records/:id
func (h *RecordHandler) Update(c *gin.Context) {
	var req recordInput
	bindErr := c.ShouldBindJSON(&req)

	ownerID := identity(c, req.UserID)
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	existing, err := h.store.GetByOwner(c.Request.Context(), ownerID, id)
	if errors.Is(err, domain.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	if err != nil {
		h.log.Errorw("load record for update failed", "error", err, "owner_id", ownerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load record"})
		return
	}

	fields, err := domain.ValidateRecordUpdate(existing, req.RecordInput)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.store.Update(c.Request.Context(), ownerID, id, fields); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		h.log.Errorw("update record failed", "error", err, "owner_id", ownerID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record updated successfully"})
}

// DELETE /api/v1/records/:id
func (h *RecordHandler) Delete(c *gin.Context) {
	ownerID := identity(c, "")
	if ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		h.log.Errorw("delete record failed", "error", err, "owner_id", ownerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}
