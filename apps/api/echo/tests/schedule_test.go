package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/schedule"
	"github.com/yacinedz/siyaqa/core/user"
)

func Test_scheduleAPI_create(t *testing.T) {
	mgr := createUser(t, user.RoleManager, core.GenderMale)
	sch := createSchool(t, mgr.ID)
	tchrUser := createUser(t, user.RoleTeacher, core.GenderMale)
	tchr := createTeacher(t, tchrUser, sch.ID)
	otherTchrUser := createUser(t, user.RoleTeacher, core.GenderMale)
	createTeacher(t, otherTchrUser, sch.ID)
	student := createUser(t, user.RoleStudent, core.GenderMale)

	parking := createCourse(t, core.CourseParking, student.ID, tchr.ID, sch.ID, course.StatusInProgress)
	mgrToken := getToken(t, mgr)

	slot := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	book := func(courseID string, date time.Time) schedule.NewSchedule {
		return schedule.NewSchedule{CourseID: courseID, Date: date, DurationMinutes: 60}
	}

	t.Run("students cannot book", func(t *testing.T) {
		httpTest{
			method: http.MethodPost, path: "/api/schedules", body: book(parking.ID, slot),
			token: getToken(t, student), wantCode: http.StatusForbidden,
			wantErr: httpErr{Detail: "Only managers, teachers, and admins can create schedules"},
		}.run(t)
	})

	t.Run("unknown course", func(t *testing.T) {
		httpTest{
			method: http.MethodPost, path: "/api/schedules", body: book("nope", slot),
			token: mgrToken, wantCode: http.StatusBadRequest,
			wantErr: httpErr{Detail: "Invalid course_id"},
		}.run(t)
	})

	t.Run("teachers only book their own courses", func(t *testing.T) {
		httpTest{
			method: http.MethodPost, path: "/api/schedules", body: book(parking.ID, slot),
			token: getToken(t, otherTchrUser), wantCode: http.StatusForbidden,
			wantErr: httpErr{Detail: "Teachers can only create schedules for their own courses"},
		}.run(t)
	})

	t.Run("booking and slot exclusivity", func(t *testing.T) {
		rec := httpTest{
			method: http.MethodPost, path: "/api/schedules", body: book(parking.ID, slot),
			token: getToken(t, tchrUser),
		}.run(t)
		var booked schedule.Schedule
		decodeBody(t, rec, &booked)
		assert.Equal(t, parking.ID, booked.CourseID)

		// the in-car slot is now taken
		httpTest{
			method: http.MethodPost, path: "/api/schedules", body: book(parking.ID, slot),
			token: mgrToken, wantCode: http.StatusBadRequest,
			wantErr: httpErr{Detail: "Teacher already has a student scheduled for this time"},
		}.run(t)
	})

	t.Run("daily parking cap", func(t *testing.T) {
		// two more parking lessons the same day hit the cap of 3
		for i := 1; i <= 2; i++ {
			httpTest{
				method: http.MethodPost, path: "/api/schedules",
				body:  book(parking.ID, slot.Add(time.Duration(i)*2*time.Hour)),
				token: mgrToken,
			}.run(t)
		}
		httpTest{
			method: http.MethodPost, path: "/api/schedules",
			body:  book(parking.ID, slot.Add(8*time.Hour)),
			token: mgrToken, wantCode: http.StatusBadRequest,
			wantErr: httpErr{Detail: "Teacher already has the maximum number of PARKING students scheduled for this day"},
		}.run(t)
	})
}

func Test_scheduleAPI_query(t *testing.T) {
	mgr := createUser(t, user.RoleManager, core.GenderFemale)
	sch := createSchool(t, mgr.ID)
	tchr := createTeacher(t, createUser(t, user.RoleTeacher, core.GenderFemale), sch.ID)
	student := createUser(t, user.RoleStudent, core.GenderFemale)
	other := createUser(t, user.RoleStudent, core.GenderFemale)

	mine := createCourse(t, core.CourseCode, student.ID, tchr.ID, sch.ID, course.StatusInProgress)
	theirs := createCourse(t, core.CourseCode, other.ID, tchr.ID, sch.ID, course.StatusInProgress)

	slot := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	for _, c := range []course.Course{mine, theirs} {
		httpTest{
			method: http.MethodPost, path: "/api/schedules",
			body:  schedule.NewSchedule{CourseID: c.ID, Date: slot, DurationMinutes: 60},
			token: getToken(t, mgr),
		}.run(t)
	}

	t.Run("students see only their own lessons", func(t *testing.T) {
		rec := httpTest{path: "/api/schedules", token: getToken(t, student)}.run(t)
		var schedules []schedule.Schedule
		decodeBody(t, rec, &schedules)
		require.Len(t, schedules, 1)
		assert.Equal(t, mine.ID, schedules[0].CourseID)
	})

	t.Run("managers see the school's lessons", func(t *testing.T) {
		rec := httpTest{path: "/api/schedules", token: getToken(t, mgr)}.run(t)
		var schedules []schedule.Schedule
		decodeBody(t, rec, &schedules)
		assert.Len(t, schedules, 2)
	})
}
