package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/exam"
	"github.com/yacinedz/siyaqa/core/user"
)

func Test_examAPI(t *testing.T) {
	mgr := createUser(t, user.RoleManager, core.GenderMale)
	sch := createSchool(t, mgr.ID)
	tchrUser := createUser(t, user.RoleTeacher, core.GenderMale)
	tchr := createTeacher(t, tchrUser, sch.ID)
	otherTchrUser := createUser(t, user.RoleTeacher, core.GenderMale)
	createTeacher(t, otherTchrUser, sch.ID)
	student := createUser(t, user.RoleStudent, core.GenderMale)

	crs := createCourse(t, core.CourseCode, student.ID, tchr.ID, sch.ID, course.StatusInProgress)
	date := time.Date(2026, 10, 5, 14, 0, 0, 0, time.UTC)

	t.Run("students cannot schedule exams", func(t *testing.T) {
		httpTest{
			method: http.MethodPost, path: "/api/exams",
			body:  exam.NewExam{CourseID: crs.ID, Date: date},
			token: getToken(t, student), wantCode: http.StatusForbidden,
			wantErr: httpErr{Detail: "Only managers, teachers, and admins can manage exams"},
		}.run(t)
	})

	t.Run("teachers only schedule for their own courses", func(t *testing.T) {
		httpTest{
			method: http.MethodPost, path: "/api/exams",
			body:  exam.NewExam{CourseID: crs.ID, Date: date},
			token: getToken(t, otherTchrUser), wantCode: http.StatusForbidden,
			wantErr: httpErr{Detail: "Teachers can only manage exams for their own courses"},
		}.run(t)
	})

	var scheduled exam.Exam
	t.Run("schedule", func(t *testing.T) {
		rec := httpTest{
			method: http.MethodPost, path: "/api/exams",
			body:  exam.NewExam{CourseID: crs.ID, Date: date},
			token: getToken(t, tchrUser),
		}.run(t)
		decodeBody(t, rec, &scheduled)
		assert.Equal(t, exam.StatusScheduled, scheduled.Status)
	})

	t.Run("passing completes the course", func(t *testing.T) {
		score := 85.0
		rec := httpTest{
			method: http.MethodPut, path: "/api/exams/" + scheduled.ID,
			body:  exam.UpdateExam{Status: "passed", Score: &score, Feedback: "Solid code knowledge"},
			token: getToken(t, tchrUser),
		}.run(t)

		var got exam.Exam
		decodeBody(t, rec, &got)
		assert.Equal(t, exam.StatusPassed, got.Status)
		require.NotNil(t, got.Score)
		assert.Equal(t, score, *got.Score)

		updated, err := courseRepo.GetCourseByID(ctxb(), crs.ID)
		require.NoError(t, err)
		assert.Equal(t, course.StatusCompleted, updated.Status)
		assert.NotNil(t, updated.CompletionDate)
	})

	t.Run("failing fails the course", func(t *testing.T) {
		parking := createCourse(t, core.CourseParking, student.ID, tchr.ID, sch.ID, course.StatusInProgress)
		rec := httpTest{
			method: http.MethodPost, path: "/api/exams",
			body:  exam.NewExam{CourseID: parking.ID, Date: date},
			token: getToken(t, mgr),
		}.run(t)
		var ex exam.Exam
		decodeBody(t, rec, &ex)

		httpTest{
			method: http.MethodPut, path: "/api/exams/" + ex.ID,
			body:  exam.UpdateExam{Status: "failed"},
			token: getToken(t, mgr),
		}.run(t)

		updated, err := courseRepo.GetCourseByID(ctxb(), parking.ID)
		require.NoError(t, err)
		assert.Equal(t, course.StatusFailed, updated.Status)
	})

	t.Run("update unknown exam", func(t *testing.T) {
		httpTest{
			method: http.MethodPut, path: "/api/exams/nope",
			body:  exam.UpdateExam{Status: "passed"},
			token: getToken(t, mgr), wantCode: http.StatusNotFound,
			wantErr: httpErr{Detail: "Exam not found"},
		}.run(t)
	})

	t.Run("students see their own exams", func(t *testing.T) {
		rec := httpTest{path: "/api/exams", token: getToken(t, student)}.run(t)
		var exams []exam.Exam
		decodeBody(t, rec, &exams)
		assert.Len(t, exams, 2)
	})
}
