package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/course"
)

const courseColumns = `id, type, student_id, teacher_id, driving_school_id, status,
start_date, completion_date, google_meet_link, created_at`

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func scanCourse(row sqlx.ColScanner) (course.Course, error) {
	var c course.Course
	var meetLink sql.NullString
	err := row.Scan(
		&c.ID, &c.Type, &c.StudentID, &c.TeacherID, &c.DrivingSchoolID, &c.Status,
		&c.StartDate, &c.CompletionDate, &meetLink, &c.CreatedAt,
	)
	if err != nil {
		return course.Course{}, err
	}
	c.GoogleMeetLink = meetLink.String
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	query := `
INSERT INTO course (` + courseColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + courseColumns
	row := repo.db.QueryRowxContext(ctx, query,
		c.ID, c.Type, c.StudentID, c.TeacherID, c.DrivingSchoolID, c.Status,
		c.StartDate, c.CompletionDate, nullString(c.GoogleMeetLink), c.CreatedAt,
	)
	created, err := scanCourse(row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return created, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+courseColumns+` FROM course WHERE id = $1`, id)
	c, err := scanCourse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "getting course by id")
	}
	return c, nil
}

func (repo *courseRepository) FilterCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	var qb queryBuilder
	if filter.StudentID != "" {
		qb.where("student_id", "=", filter.StudentID)
	}
	if filter.TeacherID != "" {
		qb.where("teacher_id", "=", filter.TeacherID)
	}
	if filter.DrivingSchoolID != "" {
		qb.where("driving_school_id", "=", filter.DrivingSchoolID)
	}
	if filter.Type != "" {
		qb.where("type", "=", filter.Type)
	}
	if filter.Status != "" {
		qb.where("status", "=", filter.Status)
	}

	query, args := qb.build(`SELECT ` + courseColumns + ` FROM course`)
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "filtering courses")
	}
	defer func() { _ = rows.Close() }()

	courses := make([]course.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, errors.Wrap(err, "filtering courses")
		}
		courses = append(courses, c)
	}
	return courses, errors.Wrap(rows.Err(), "filtering courses")
}

func (repo *courseRepository) UpdateCourseStatus(ctx context.Context, id string, status course.Status) (course.Course, error) {
	query := `
UPDATE course
SET status = $2,
    start_date = CASE WHEN $2 = 'in_progress' AND start_date IS NULL THEN now() ELSE start_date END,
    completion_date = CASE WHEN $2 IN ('completed', 'failed') THEN now() ELSE completion_date END
WHERE id = $1
RETURNING ` + courseColumns
	row := repo.db.QueryRowxContext(ctx, query, id, status)
	c, err := scanCourse(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "updating course status")
	}
	return c, nil
}
