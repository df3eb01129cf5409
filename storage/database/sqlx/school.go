package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/school"
)

const schoolColumns = `id, name, description, address, state, city, phone, email, license_number,
price_code, price_parking, price_road, has_female_teachers, has_male_teachers,
rating, total_ratings, manager_id, is_active, created_at`

type schoolRepository struct {
	db *sqlx.DB
}

func NewSchoolRepository(db *sqlx.DB) school.Repository {
	return &schoolRepository{db: db}
}

func scanSchool(row sqlx.ColScanner) (school.DrivingSchool, error) {
	var sch school.DrivingSchool
	err := row.Scan(
		&sch.ID, &sch.Name, &sch.Description, &sch.Address, &sch.State, &sch.City,
		&sch.Phone, &sch.Email, &sch.LicenseNumber,
		&sch.PriceCode, &sch.PriceParking, &sch.PriceRoad,
		&sch.HasFemaleTeachers, &sch.HasMaleTeachers,
		&sch.Rating, &sch.TotalRatings, &sch.ManagerID, &sch.IsActive, &sch.CreatedAt,
	)
	return sch, err
}

func (repo *schoolRepository) CreateSchool(ctx context.Context, sch school.DrivingSchool) (school.DrivingSchool, error) {
	query := `
INSERT INTO driving_school (` + schoolColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING ` + schoolColumns
	row := repo.db.QueryRowxContext(ctx, query,
		sch.ID, sch.Name, sch.Description, sch.Address, sch.State, sch.City,
		sch.Phone, sch.Email, sch.LicenseNumber,
		sch.PriceCode, sch.PriceParking, sch.PriceRoad,
		sch.HasFemaleTeachers, sch.HasMaleTeachers,
		sch.Rating, sch.TotalRatings, sch.ManagerID, sch.IsActive, sch.CreatedAt,
	)
	created, err := scanSchool(row)
	if err != nil {
		return school.DrivingSchool{}, errors.Wrap(err, "creating driving school")
	}
	return created, nil
}

func (repo *schoolRepository) GetSchoolByID(ctx context.Context, id string) (school.DrivingSchool, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+schoolColumns+` FROM driving_school WHERE id = $1`, id)
	sch, err := scanSchool(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return school.DrivingSchool{}, school.ErrNotFound
		}
		return school.DrivingSchool{}, errors.Wrap(err, "getting driving school by id")
	}
	return sch, nil
}

func (repo *schoolRepository) GetSchoolByManagerID(ctx context.Context, managerID string) (school.DrivingSchool, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+schoolColumns+` FROM driving_school WHERE manager_id = $1`, managerID)
	sch, err := scanSchool(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return school.DrivingSchool{}, school.ErrNotFound
		}
		return school.DrivingSchool{}, errors.Wrap(err, "getting driving school by manager")
	}
	return sch, nil
}

func (repo *schoolRepository) FilterSchools(ctx context.Context, filter school.QueryFilter) ([]school.DrivingSchool, error) {
	var qb queryBuilder
	if filter.State != "" {
		qb.where("state", "=", filter.State)
	}
	if filter.ManagerID != "" {
		qb.where("manager_id", "=", filter.ManagerID)
	}

	query, args := qb.build(`SELECT ` + schoolColumns + ` FROM driving_school`)
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "filtering driving schools")
	}
	defer func() { _ = rows.Close() }()

	schools := make([]school.DrivingSchool, 0)
	for rows.Next() {
		sch, err := scanSchool(rows)
		if err != nil {
			return nil, errors.Wrap(err, "filtering driving schools")
		}
		schools = append(schools, sch)
	}
	return schools, errors.Wrap(rows.Err(), "filtering driving schools")
}

func (repo *schoolRepository) UpdateSchool(ctx context.Context, sch school.DrivingSchool) (school.DrivingSchool, error) {
	query := `
UPDATE driving_school
SET name = $2, description = $3, address = $4, state = $5, city = $6, phone = $7,
    email = $8, license_number = $9, price_code = $10, price_parking = $11, price_road = $12,
    has_female_teachers = $13, has_male_teachers = $14, rating = $15, total_ratings = $16,
    manager_id = $17, is_active = $18
WHERE id = $1
RETURNING ` + schoolColumns
	row := repo.db.QueryRowxContext(ctx, query,
		sch.ID, sch.Name, sch.Description, sch.Address, sch.State, sch.City, sch.Phone,
		sch.Email, sch.LicenseNumber, sch.PriceCode, sch.PriceParking, sch.PriceRoad,
		sch.HasFemaleTeachers, sch.HasMaleTeachers, sch.Rating, sch.TotalRatings,
		sch.ManagerID, sch.IsActive,
	)
	updated, err := scanSchool(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return school.DrivingSchool{}, school.ErrNotFound
		}
		return school.DrivingSchool{}, errors.Wrap(err, "updating driving school")
	}
	return updated, nil
}
