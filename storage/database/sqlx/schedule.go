package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/schedule"
)

const scheduleColumns = `id, course_id, date, duration_minutes, created_at`

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func scanSchedule(row sqlx.ColScanner) (schedule.Schedule, error) {
	var s schedule.Schedule
	err := row.Scan(&s.ID, &s.CourseID, &s.Date, &s.DurationMinutes, &s.CreatedAt)
	return s, err
}

func (repo *scheduleRepository) CreateSchedule(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	query := `
INSERT INTO schedule (` + scheduleColumns + `)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + scheduleColumns
	row := repo.db.QueryRowxContext(ctx, query, s.ID, s.CourseID, s.Date, s.DurationMinutes, s.CreatedAt)
	created, err := scanSchedule(row)
	if err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "creating schedule")
	}
	return created, nil
}

func (repo *scheduleRepository) FilterSchedules(ctx context.Context, filter schedule.RangeFilter) ([]schedule.Schedule, error) {
	var qb queryBuilder
	if filter.CourseIDs != nil {
		qb.whereAny("course_id", pq.Array(filter.CourseIDs))
	}
	if !filter.From.IsZero() {
		qb.where("date", ">=", filter.From)
	}
	if !filter.To.IsZero() {
		qb.where("date", "<", filter.To)
	}

	query, args := qb.build(`SELECT ` + scheduleColumns + ` FROM schedule`)
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "filtering schedules")
	}
	defer func() { _ = rows.Close() }()

	schedules := make([]schedule.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, errors.Wrap(err, "filtering schedules")
		}
		schedules = append(schedules, s)
	}
	return schedules, errors.Wrap(rows.Err(), "filtering schedules")
}
