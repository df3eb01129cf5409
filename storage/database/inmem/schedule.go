package inmemdb

import (
	"context"

	"github.com/yacinedz/siyaqa/core/schedule"
)

type scheduleRepository struct {
	db *scheduleTable
}

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db.schedule}
}

func (repo *scheduleRepository) CreateSchedule(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *scheduleRepository) FilterSchedules(_ context.Context, filter schedule.RangeFilter) ([]schedule.Schedule, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var courseSet map[string]bool
	if filter.CourseIDs != nil {
		courseSet = make(map[string]bool, len(filter.CourseIDs))
		for _, id := range filter.CourseIDs {
			courseSet[id] = true
		}
	}

	schedules := make([]schedule.Schedule, 0)
	for _, s := range repo.db.table {
		if courseSet != nil && !courseSet[s.CourseID] {
			continue
		}
		if !filter.From.IsZero() && s.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !s.Date.Before(filter.To) {
			continue
		}
		schedules = append(schedules, *s)
	}
	return schedules, nil
}
