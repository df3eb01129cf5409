package inmemdb

import (
	"context"

	"github.com/yacinedz/siyaqa/core/school"
)

type schoolRepository struct {
	db *schoolTable
}

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db.school}
}

func (repo *schoolRepository) query() []school.DrivingSchool {
	schools := make([]school.DrivingSchool, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		schools = append(schools, *s)
	}
	return schools
}

func (repo *schoolRepository) CreateSchool(_ context.Context, sch school.DrivingSchool) (school.DrivingSchool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[sch.ID] = &sch
	return sch, nil
}

func (repo *schoolRepository) GetSchoolByID(_ context.Context, id string) (school.DrivingSchool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sch, ok := repo.db.table[id]; ok {
		return *sch, nil
	}
	return school.DrivingSchool{}, school.ErrNotFound
}

func (repo *schoolRepository) GetSchoolByManagerID(_ context.Context, managerID string) (school.DrivingSchool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, sch := range repo.query() {
		if sch.ManagerID == managerID {
			return sch, nil
		}
	}
	return school.DrivingSchool{}, school.ErrNotFound
}

func (repo *schoolRepository) FilterSchools(_ context.Context, filter school.QueryFilter) ([]school.DrivingSchool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	schools := make([]school.DrivingSchool, 0)
	for _, sch := range repo.query() {
		if filter.State != "" && sch.State != filter.State {
			continue
		}
		if filter.ManagerID != "" && sch.ManagerID != filter.ManagerID {
			continue
		}
		schools = append(schools, sch)
	}
	return schools, nil
}

func (repo *schoolRepository) UpdateSchool(_ context.Context, sch school.DrivingSchool) (school.DrivingSchool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[sch.ID]; !ok {
		return school.DrivingSchool{}, school.ErrNotFound
	}
	repo.db.table[sch.ID] = &sch
	return sch, nil
}
