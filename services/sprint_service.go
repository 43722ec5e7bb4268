package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Floumy/floumy-sub002/internal/models"
	"github.com/Floumy/floumy-sub002/internal/observability/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SprintService owns the sprint lifecycle: planned -> active -> completed.
// At most one sprint per ORG is active at a time; Start enforces this by
// force-completing whichever sprint was active before. The scoping is
// deliberately org-wide rather than per-project (see DESIGN.md).
type SprintService struct {
	db *gorm.DB
}

func NewSprintService(db *gorm.DB) *SprintService {
	return &SprintService{db: db}
}

type CreateSprintRequest struct {
	Goal          string    `json:"goal"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	DurationWeeks int       `json:"duration_weeks"`
}

// Create stores a new planned sprint. The start date is normalised to UTC
// midnight, the end date is derived (start + weeks*7d - 1ms, i.e. the last
// millisecond of the final day) and the title is derived from the ISO week
// numbers the sprint spans.
func (s *SprintService) Create(orgID, projectID uuid.UUID, req CreateSprintRequest) (*models.Sprint, error) {
	if req.DurationWeeks < 1 {
		return nil, fmt.Errorf("%w: duration must be at least one week", ErrValidation)
	}

	if err := projectExists(s.db, orgID, projectID); err != nil {
		return nil, err
	}

	start := utcMidnight(req.StartDate)
	end := start.AddDate(0, 0, req.DurationWeeks*7).Add(-time.Millisecond)

	sprint := &models.Sprint{
		OrgID:     orgID,
		ProjectID: projectID,
		Goal:      req.Goal,
		Title:     sprintTitle(start, end),
		StartDate: &start,
		EndDate:   &end,
		Duration:  req.DurationWeeks,
		Status:    models.SprintStatusPlanned,
	}

	if err := s.db.Create(sprint).Error; err != nil {
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}
	return sprint, nil
}

// Get returns a sprint with its work items, scoped to the tenant pair.
func (s *SprintService) Get(orgID, projectID, sprintID uuid.UUID) (*models.Sprint, error) {
	var sprint models.Sprint
	err := s.db.Preload("WorkItems").
		Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, sprintID).
		First(&sprint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: sprint %s", ErrNotFound, sprintID)
	}
	if err != nil {
		return nil, err
	}
	return &sprint, nil
}

// List returns all sprints of a project, oldest planned window first.
func (s *SprintService) List(orgID, projectID uuid.UUID) ([]models.Sprint, error) {
	var sprints []models.Sprint
	err := s.db.Where("org_id = ? AND project_id = ?", orgID, projectID).
		Order("start_date ASC").
		Find(&sprints).Error
	return sprints, err
}

// Start activates a planned sprint. Any other active sprint in the same org
// is force-completed first, in the same transaction, so the single-active
// invariant holds at every observation point. The end date is recomputed
// from the actual start, which supersedes the planned start for date math.
func (s *SprintService) Start(orgID, projectID, sprintID uuid.UUID) (*models.Sprint, error) {
	var sprint models.Sprint
	now := time.Now().UTC()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, sprintID).
			First(&sprint).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: sprint %s", ErrNotFound, sprintID)
			}
			return err
		}
		if sprint.Status != models.SprintStatusPlanned {
			return fmt.Errorf("%w: only planned sprints can be started", ErrValidation)
		}

		// Force-complete whatever was active before. Org-wide on purpose.
		if err := tx.Model(&models.Sprint{}).
			Where("org_id = ? AND status = ? AND id <> ?", orgID, models.SprintStatusActive, sprintID).
			Updates(map[string]interface{}{
				"status":          models.SprintStatusCompleted,
				"actual_end_date": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to complete previous active sprint: %w", err)
		}

		end := utcMidnight(now).AddDate(0, 0, sprint.Duration*7).Add(-time.Millisecond)
		sprint.ActualStartDate = &now
		sprint.EndDate = &end
		sprint.Status = models.SprintStatusActive

		if err := tx.Save(&sprint).Error; err != nil {
			return fmt.Errorf("failed to start sprint: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSprintStarted()
	return &sprint, nil
}

// Complete finishes an active sprint, stamping the actual end date and
// computing velocity as the sum of the non-null estimations of its work
// items. Unestimated items contribute nothing to the sum.
func (s *SprintService) Complete(orgID, projectID, sprintID uuid.UUID) (*models.Sprint, error) {
	var sprint models.Sprint
	now := time.Now().UTC()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, sprintID).
			First(&sprint).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: sprint %s", ErrNotFound, sprintID)
			}
			return err
		}
		if sprint.Status != models.SprintStatusActive {
			return fmt.Errorf("%w: only active sprints can be completed", ErrValidation)
		}

		var velocity float64
		if err := tx.Model(&models.WorkItem{}).
			Where("sprint_id = ? AND estimation IS NOT NULL", sprint.ID).
			Select("COALESCE(SUM(estimation), 0)").
			Scan(&velocity).Error; err != nil {
			return fmt.Errorf("failed to compute velocity: %w", err)
		}

		sprint.ActualEndDate = &now
		sprint.Velocity = &velocity
		sprint.Status = models.SprintStatusCompleted

		if err := tx.Save(&sprint).Error; err != nil {
			return fmt.Errorf("failed to complete sprint: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSprintCompleted(*sprint.Velocity)
	return &sprint, nil
}

// Delete removes a sprint. All associated work items are detached (their
// sprint reference cleared) in the same transaction before the row goes.
func (s *SprintService) Delete(orgID, projectID, sprintID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sprint models.Sprint
		if err := tx.Where("org_id = ? AND project_id = ? AND id = ?", orgID, projectID, sprintID).
			First(&sprint).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: sprint %s", ErrNotFound, sprintID)
			}
			return err
		}

		if err := tx.Model(&models.WorkItem{}).
			Where("sprint_id = ?", sprint.ID).
			Update("sprint_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach work items: %w", err)
		}

		if err := tx.Delete(&sprint).Error; err != nil {
			return fmt.Errorf("failed to delete sprint: %w", err)
		}
		return nil
	})
}

// FindForTimeline returns the project's sprints matching a timeline bucket.
// For this-quarter and next-quarter a sprint matches when its start OR end
// falls within the quarter bounds (inclusive). Later means starting after
// next quarter's end, or having no start date at all. Past means starting
// before the current quarter.
func (s *SprintService) FindForTimeline(orgID, projectID uuid.UUID, timeline Timeline) ([]models.Sprint, error) {
	year, quarter := CurrentQuarter(time.Now())
	current := QuarterDates(year, quarter)
	next := QuarterDates(year, quarter+1)

	query := s.db.Where("org_id = ? AND project_id = ?", orgID, projectID)

	switch timeline {
	case TimelinePast:
		query = query.Where("start_date < ?", current.Start)
	case TimelineThisQuarter:
		query = query.Where(
			"(start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?)",
			current.Start, current.End, current.Start, current.End,
		)
	case TimelineNextQuarter:
		query = query.Where(
			"(start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?)",
			next.Start, next.End, next.Start, next.End,
		)
	case TimelineLater:
		query = query.Where("start_date > ? OR start_date IS NULL", next.End)
	default:
		return nil, fmt.Errorf("%w: unknown timeline %q", ErrValidation, timeline)
	}

	var sprints []models.Sprint
	if err := query.Order("start_date ASC").Find(&sprints).Error; err != nil {
		return nil, err
	}
	return sprints, nil
}

// sprintTitle derives the display title from the ISO week numbers spanned by
// the sprint window, e.g. "Sprint CW1 2026" or "Sprint CW1-CW2 2026".
func sprintTitle(start, end time.Time) string {
	startYear, startWeek := start.ISOWeek()
	endYear, endWeek := end.ISOWeek()

	if startYear == endYear && startWeek == endWeek {
		return fmt.Sprintf("Sprint CW%d %d", startWeek, startYear)
	}
	return fmt.Sprintf("Sprint CW%d-CW%d %d", startWeek, endWeek, startYear)
}

func utcMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// projectExists verifies the (org, project) tenant pair resolves to a row.
func projectExists(db *gorm.DB, orgID, projectID uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Project{}).
		Where("org_id = ? AND id = ?", orgID, projectID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}
	return nil
}
