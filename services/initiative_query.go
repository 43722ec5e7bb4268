package services

import (
	"strings"
	"time"

	"github.com/Floumy/floumy-sub002/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// priorityOrder sorts high before medium before low. Works on both Postgres
// and SQLite.
const priorityOrder = "CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// InitiativeSearch describes one search request. Reference takes precedence
// over Term when both are supplied: a reference lookup is exact and
// case-sensitive, while a term matches title and description
// case-insensitively.
type InitiativeSearch struct {
	Term      string
	Reference string
	Filters   InitiativeFilters
}

// InitiativeFilters are OR-within-field, AND-across-fields. An empty slice
// leaves its field unconstrained.
type InitiativeFilters struct {
	Statuses        []models.InitiativeStatus
	Priorities      []models.Priority
	AssigneeIDs     []uuid.UUID
	CompletedAfter  *time.Time
	CompletedBefore *time.Time
}

// InitiativeQuery composes the filtered, paginated initiative search.
// Execute and Count share the exact same predicate.
type InitiativeQuery struct {
	db        *gorm.DB
	orgID     uuid.UUID
	projectID uuid.UUID
	search    InitiativeSearch
}

func NewInitiativeQuery(db *gorm.DB, orgID, projectID uuid.UUID, search InitiativeSearch) *InitiativeQuery {
	return &InitiativeQuery{db: db, orgID: orgID, projectID: projectID, search: search}
}

// Execute returns one page of matches ordered by priority then recency.
// Page numbering starts at 1; out-of-range inputs are clamped.
func (q *InitiativeQuery) Execute(page, pageSize int) ([]models.Initiative, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var initiatives []models.Initiative
	err := q.scope().
		Order(priorityOrder).Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&initiatives).Error
	return initiatives, err
}

// Count returns the total number of rows matching the predicate, regardless
// of pagination.
func (q *InitiativeQuery) Count() (int64, error) {
	var count int64
	err := q.scope().Count(&count).Error
	return count, err
}

// scope builds the shared predicate. Every branch starts from the tenant
// pair; nothing outside (orgID, projectID) can ever match.
func (q *InitiativeQuery) scope() *gorm.DB {
	tx := q.db.Model(&models.Initiative{}).
		Where("org_id = ? AND project_id = ?", q.orgID, q.projectID)

	if q.search.Reference != "" {
		tx = tx.Where("reference = ?", q.search.Reference)
	} else if q.search.Term != "" {
		like := "%" + strings.ToLower(q.search.Term) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	f := q.search.Filters
	if len(f.Statuses) > 0 {
		tx = tx.Where("status IN ?", f.Statuses)
	}
	if len(f.Priorities) > 0 {
		tx = tx.Where("priority IN ?", f.Priorities)
	}
	if len(f.AssigneeIDs) > 0 {
		tx = tx.Where("assigned_to_id IN ?", f.AssigneeIDs)
	}
	if f.CompletedAfter != nil {
		tx = tx.Where("completed_at >= ?", *f.CompletedAfter)
	}
	if f.CompletedBefore != nil {
		tx = tx.Where("completed_at <= ?", *f.CompletedBefore)
	}
	return tx
}
