package inmemdb

import (
	"context"
	"time"

	"github.com/yacinedz/siyaqa/core/course"
)

type courseRepository struct {
	db *courseTable
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) query() []course.Course {
	courses := make([]course.Course, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		courses = append(courses, *c)
	}
	return courses
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.table[id]; ok {
		return *c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) FilterCourses(_ context.Context, filter course.QueryFilter) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0)
	for _, c := range repo.query() {
		if filter.StudentID != "" && c.StudentID != filter.StudentID {
			continue
		}
		if filter.TeacherID != "" && c.TeacherID != filter.TeacherID {
			continue
		}
		if filter.DrivingSchoolID != "" && c.DrivingSchoolID != filter.DrivingSchoolID {
			continue
		}
		if filter.Type != "" && string(c.Type) != filter.Type {
			continue
		}
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func (repo *courseRepository) UpdateCourseStatus(_ context.Context, id string, status course.Status) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	c, ok := repo.db.table[id]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	c.Status = status
	now := time.Now().UTC()
	switch status {
	case course.StatusInProgress:
		if c.StartDate == nil {
			c.StartDate = &now
		}
	case course.StatusCompleted, course.StatusFailed:
		c.CompletionDate = &now
	}
	return *c, nil
}
