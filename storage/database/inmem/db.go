// Package inmemdb provides in-memory repositories used by tests and
// local development without a database.
package inmemdb

import (
	"strings"
	"sync"

	"github.com/yacinedz/siyaqa/core/car"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/exam"
	"github.com/yacinedz/siyaqa/core/payment"
	"github.com/yacinedz/siyaqa/core/schedule"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

type DB struct {
	user     *userTable
	school   *schoolTable
	teacher  *teacherTable
	course   *courseTable
	schedule *scheduleTable
	exam     *examTable
	payment  *paymentTable
	car      *carTable
}

func NewDB() *DB {
	return &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		school:   &schoolTable{table: make(map[string]*school.DrivingSchool)},
		teacher:  &teacherTable{table: make(map[string]*teacher.Teacher)},
		course:   &courseTable{table: make(map[string]*course.Course)},
		schedule: &scheduleTable{table: make(map[string]*schedule.Schedule)},
		exam:     &examTable{table: make(map[string]*exam.Exam)},
		payment:  &paymentTable{table: make(map[string]*payment.Payment)},
		car:      &carTable{table: make(map[string]*car.Car)},
	}
}

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}
	schoolTable struct {
		mutex sync.RWMutex
		table map[string]*school.DrivingSchool
	}
	teacherTable struct {
		mutex sync.RWMutex
		table map[string]*teacher.Teacher
	}
	courseTable struct {
		mutex sync.RWMutex
		table map[string]*course.Course
	}
	scheduleTable struct {
		mutex sync.RWMutex
		table map[string]*schedule.Schedule
	}
	examTable struct {
		mutex sync.RWMutex
		table map[string]*exam.Exam
	}
	paymentTable struct {
		mutex sync.RWMutex
		table map[string]*payment.Payment
	}
	carTable struct {
		mutex sync.RWMutex
		table map[string]*car.Car
	}
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
