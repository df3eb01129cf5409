package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/teacher"
)

const teacherColumns = `id, user_id, driving_school_id, gender, years_experience, specialization, bio, is_active, created_at`

type teacherRepository struct {
	db *sqlx.DB
}

func NewTeacherRepository(db *sqlx.DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func scanTeacher(row sqlx.ColScanner) (teacher.Teacher, error) {
	var t teacher.Teacher
	var specs pq.StringArray
	err := row.Scan(
		&t.ID, &t.UserID, &t.DrivingSchoolID, &t.Gender, &t.YearsExperience,
		&specs, &t.Bio, &t.IsActive, &t.CreatedAt,
	)
	if err != nil {
		return teacher.Teacher{}, err
	}
	t.Specialization = make([]core.CourseType, 0, len(specs))
	for _, s := range specs {
		t.Specialization = append(t.Specialization, core.CourseType(s))
	}
	return t, nil
}

func specializationArray(t teacher.Teacher) pq.StringArray {
	specs := make(pq.StringArray, 0, len(t.Specialization))
	for _, s := range t.Specialization {
		specs = append(specs, string(s))
	}
	return specs
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, t teacher.Teacher) (teacher.Teacher, error) {
	query := `
INSERT INTO teacher (` + teacherColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + teacherColumns
	row := repo.db.QueryRowxContext(ctx, query,
		t.ID, t.UserID, t.DrivingSchoolID, t.Gender, t.YearsExperience,
		specializationArray(t), t.Bio, t.IsActive, t.CreatedAt,
	)
	created, err := scanTeacher(row)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "creating teacher")
	}
	return created, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id string) (teacher.Teacher, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+teacherColumns+` FROM teacher WHERE id = $1`, id)
	t, err := scanTeacher(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher by id")
	}
	return t, nil
}

func (repo *teacherRepository) GetTeacherByUserID(ctx context.Context, userID string) (teacher.Teacher, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+teacherColumns+` FROM teacher WHERE user_id = $1`, userID)
	t, err := scanTeacher(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher by user id")
	}
	return t, nil
}

func (repo *teacherRepository) FilterTeachers(ctx context.Context, filter teacher.QueryFilter) ([]teacher.Teacher, error) {
	var qb queryBuilder
	if filter.DrivingSchoolID != "" {
		qb.where("driving_school_id", "=", filter.DrivingSchoolID)
	}
	if filter.Gender != "" {
		qb.where("gender", "=", filter.Gender)
	}

	query, args := qb.build(`SELECT ` + teacherColumns + ` FROM teacher`)
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "filtering teachers")
	}
	defer func() { _ = rows.Close() }()

	teachers := make([]teacher.Teacher, 0)
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, errors.Wrap(err, "filtering teachers")
		}
		teachers = append(teachers, t)
	}
	return teachers, errors.Wrap(rows.Err(), "filtering teachers")
}
