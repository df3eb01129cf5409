package inmemdb

import (
	"context"

	"github.com/yacinedz/siyaqa/core/car"
)

type carRepository struct {
	db *carTable
}

func NewCarRepository(db *DB) car.Repository {
	return &carRepository{db: db.car}
}

func (repo *carRepository) CreateCar(_ context.Context, c car.Car) (car.Car, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *carRepository) GetCarByID(_ context.Context, id string) (car.Car, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.table[id]; ok {
		return *c, nil
	}
	return car.Car{}, car.ErrNotFound
}

func (repo *carRepository) FilterCars(_ context.Context, filter car.QueryFilter) ([]car.Car, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cars := make([]car.Car, 0)
	for _, c := range repo.db.table {
		if filter.DrivingSchoolID != "" && c.DrivingSchoolID != filter.DrivingSchoolID {
			continue
		}
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		cars = append(cars, *c)
	}
	return cars, nil
}

func (repo *carRepository) UpdateCarStatus(_ context.Context, id string, status car.Status) (car.Car, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	c, ok := repo.db.table[id]
	if !ok {
		return car.Car{}, car.ErrNotFound
	}
	c.Status = status
	return *c, nil
}
