package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/car"
)

const carColumns = `id, make, model, year, license_plate, color, driving_school_id, status, created_at`

type carRepository struct {
	db *sqlx.DB
}

func NewCarRepository(db *sqlx.DB) car.Repository {
	return &carRepository{db: db}
}

func scanCar(row sqlx.ColScanner) (car.Car, error) {
	var c car.Car
	err := row.Scan(
		&c.ID, &c.Make, &c.Model, &c.Year, &c.LicensePlate, &c.Color,
		&c.DrivingSchoolID, &c.Status, &c.CreatedAt,
	)
	return c, err
}

func (repo *carRepository) CreateCar(ctx context.Context, c car.Car) (car.Car, error) {
	query := `
INSERT INTO car (` + carColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + carColumns
	row := repo.db.QueryRowxContext(ctx, query,
		c.ID, c.Make, c.Model, c.Year, c.LicensePlate, c.Color,
		c.DrivingSchoolID, c.Status, c.CreatedAt,
	)
	created, err := scanCar(row)
	if err != nil {
		return car.Car{}, errors.Wrap(err, "creating car")
	}
	return created, nil
}

func (repo *carRepository) GetCarByID(ctx context.Context, id string) (car.Car, error) {
	row := repo.db.QueryRowxContext(ctx, `SELECT `+carColumns+` FROM car WHERE id = $1`, id)
	c, err := scanCar(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return car.Car{}, car.ErrNotFound
		}
		return car.Car{}, errors.Wrap(err, "getting car by id")
	}
	return c, nil
}

func (repo *carRepository) FilterCars(ctx context.Context, filter car.QueryFilter) ([]car.Car, error) {
	var qb queryBuilder
	if filter.DrivingSchoolID != "" {
		qb.where("driving_school_id", "=", filter.DrivingSchoolID)
	}
	if filter.Status != "" {
		qb.where("status", "=", filter.Status)
	}

	query, args := qb.build(`SELECT ` + carColumns + ` FROM car`)
	rows, err := repo.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "filtering cars")
	}
	defer func() { _ = rows.Close() }()

	cars := make([]car.Car, 0)
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, errors.Wrap(err, "filtering cars")
		}
		cars = append(cars, c)
	}
	return cars, errors.Wrap(rows.Err(), "filtering cars")
}

func (repo *carRepository) UpdateCarStatus(ctx context.Context, id string, status car.Status) (car.Car, error) {
	row := repo.db.QueryRowxContext(ctx,
		`UPDATE car SET status = $2 WHERE id = $1 RETURNING `+carColumns, id, status)
	c, err := scanCar(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return car.Car{}, car.ErrNotFound
		}
		return car.Car{}, errors.Wrap(err, "updating car status")
	}
	return c, nil
}
