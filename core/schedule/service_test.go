package schedule_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/payment"
	"github.com/yacinedz/siyaqa/core/schedule"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
	inmemdb "github.com/yacinedz/siyaqa/storage/database/inmem"
)

type fixture struct {
	svc      schedule.ServiceInterface
	courses  course.Repository
	teachers teacher.Repository
	users    user.Repository

	admin   user.User
	teacher teacher.Teacher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := inmemdb.NewDB()
	f := &fixture{
		courses:  inmemdb.NewCourseRepository(db),
		teachers: inmemdb.NewTeacherRepository(db),
		users:    inmemdb.NewUserRepository(db),
	}
	schoolRepo := inmemdb.NewSchoolRepository(db)
	courseSvc := course.NewService(
		f.courses, f.users, f.teachers, schoolRepo,
		payment.NewRecorder(inmemdb.NewPaymentRepository(db)),
	)
	f.svc = schedule.NewService(inmemdb.NewScheduleRepository(db), courseSvc, f.teachers)

	ctx := context.Background()
	f.admin = user.User{ID: uuid.NewString(), Email: "admin@test.dz", Role: user.RoleAdmin, IsActive: true}
	_, err := f.users.CreateUser(ctx, f.admin)
	require.NoError(t, err)

	tchrUser := user.User{ID: uuid.NewString(), Email: "tchr@test.dz", Role: user.RoleTeacher, IsActive: true}
	_, err = f.users.CreateUser(ctx, tchrUser)
	require.NoError(t, err)
	f.teacher, err = f.teachers.CreateTeacher(ctx, teacher.Teacher{
		ID: uuid.NewString(), UserID: tchrUser.ID, DrivingSchoolID: uuid.NewString(),
		Specialization: core.CourseTypes, IsActive: true,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) addCourse(t *testing.T, ct core.CourseType, studentID string) course.Course {
	t.Helper()
	crs, err := f.courses.CreateCourse(context.Background(), course.Course{
		ID: uuid.NewString(), Type: ct, StudentID: studentID,
		TeacherID: f.teacher.ID, DrivingSchoolID: f.teacher.DrivingSchoolID,
		Status: course.StatusInProgress, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return crs
}

func TestService_Create_codeSlotCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := time.Date(2026, 9, 21, 18, 0, 0, 0, time.UTC)

	// a code lecture takes up to 20 students in the same hour slot
	for i := 0; i < 20; i++ {
		crs := f.addCourse(t, core.CourseCode, fmt.Sprintf("student-%d", i))
		_, err := f.svc.Create(ctx, f.admin, schedule.NewSchedule{
			CourseID: crs.ID, Date: slot, DurationMinutes: 60,
		})
		require.NoError(t, err, "booking %d", i)
	}

	crs := f.addCourse(t, core.CourseCode, "student-20")
	_, err := f.svc.Create(ctx, f.admin, schedule.NewSchedule{
		CourseID: crs.ID, Date: slot, DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, schedule.ErrSlotFullCode)

	// the next hour is free
	_, err = f.svc.Create(ctx, f.admin, schedule.NewSchedule{
		CourseID: crs.ID, Date: slot.Add(time.Hour), DurationMinutes: 60,
	})
	assert.NoError(t, err)
}

func TestService_Create_inCarSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slot := time.Date(2026, 9, 22, 9, 0, 0, 0, time.UTC)

	parking := f.addCourse(t, core.CourseParking, "student-a")
	road := f.addCourse(t, core.CourseRoad, "student-b")

	_, err := f.svc.Create(ctx, f.admin, schedule.NewSchedule{CourseID: parking.ID, Date: slot, DurationMinutes: 60})
	require.NoError(t, err)

	// an in-car lesson blocks the whole slot, regardless of type
	_, err = f.svc.Create(ctx, f.admin, schedule.NewSchedule{CourseID: road.ID, Date: slot.Add(15 * time.Minute), DurationMinutes: 60})
	assert.ErrorIs(t, err, schedule.ErrSlotTaken)
}

func TestService_Create_roadDailyCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := time.Date(2026, 9, 23, 8, 0, 0, 0, time.UTC)

	road := f.addCourse(t, core.CourseRoad, "student-a")
	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, f.admin, schedule.NewSchedule{
			CourseID: road.ID, Date: day.Add(time.Duration(i) * 2 * time.Hour), DurationMinutes: 60,
		})
		require.NoError(t, err)
	}

	_, err := f.svc.Create(ctx, f.admin, schedule.NewSchedule{
		CourseID: road.ID, Date: day.Add(8 * time.Hour), DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, schedule.ErrDayFullRoad)

	// next day is free again
	_, err = f.svc.Create(ctx, f.admin, schedule.NewSchedule{
		CourseID: road.ID, Date: day.AddDate(0, 0, 1), DurationMinutes: 60,
	})
	assert.NoError(t, err)
}
