package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/exam"
)

const examColumns = `id, course_id, date, status, score, feedback, created_at`

type examRepository struct {
	db *sqlx.DB
}

func NewExamRepository(db *sqlx.DB) exam.Repository {
	return &examRepository{db: db}
}

func scanExam(row sqlx.ColScanner) (exam.Exam, error) {
	var e exam.Exam
	var feedback sql.NullString
	err := row.Scan(&e.ID, &e.CourseID, &e.Date, &e.Status, &e.Score, &feedback, &e.CreatedAt)
	if err != nil {
		return exam.Exam{}, err
	}
	e.Feedback = feedback.String
	return e, nil
}

func (repo *examRepository) CreateExam(ctx context.Context, e exam.Exam) (exam.Exam, error) {
	query := `
INSERT INTO exam (` + examColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + examColumns
	row := repo.db.QueryRowxContext(ctx, query,
		e.ID, e.CourseID, e.Date, e.Status, e.Score, nullString(e.Feedback), e.CreatedAt,
	)
	created, err := scanExam(row)
	if err != nil {
		return exam.Exam{}, errors.Wrap(err, "creating exam")
	}
	return created, nil
}

func (repo *examRepository) GetExamByID(ctx context.Context, id string) (exam.Exam, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+examColumns+` FROM exam WHERE id = $1`, id)
	e, err := scanExam(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return exam.Exam{}, exam.ErrNotFound
		}
		return exam.Exam{}, errors.Wrap(err, "getting exam by id")
	}
	return e, nil
}

func (repo *examRepository) FilterExams(ctx context.Context, filter exam.QueryFilter) ([]exam.Exam, error) {
	var qb queryBuilder
	if filter.CourseID != "" {
		qb.where("course_id", "=", filter.CourseID)
	}
	if filter.Status != "" {
		qb.where("status", "=", filter.Status)
	}

	query, args := qb.build(`SELECT ` + examColumns + ` FROM exam`)
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "filtering exams")
	}
	defer func() { _ = rows.Close() }()

	exams := make([]exam.Exam, 0)
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, errors.Wrap(err, "filtering exams")
		}
		exams = append(exams, e)
	}
	return exams, errors.Wrap(rows.Err(), "filtering exams")
}

func (repo *examRepository) UpdateExam(ctx context.Context, e exam.Exam) (exam.Exam, error) {
	query := `
UPDATE exam
SET date = $2, status = $3, score = $4, feedback = $5
WHERE id = $1
RETURNING ` + examColumns
	row := repo.db.QueryRowxContext(ctx, query, e.ID, e.Date, e.Status, e.Score, nullString(e.Feedback))
	updated, err := scanExam(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return exam.Exam{}, exam.ErrNotFound
		}
		return exam.Exam{}, errors.Wrap(err, "updating exam")
	}
	return updated, nil
}
