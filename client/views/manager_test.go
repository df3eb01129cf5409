package views

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacinedz/siyaqa/core/car"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

func managerMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/driving-schools", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "mgr1", r.URL.Query().Get("manager_id"))
		writeJSON(t, w, []school.DrivingSchool{{ID: "s1", Name: "Ecole El Amane", ManagerID: "mgr1"}})
	})
	mux.HandleFunc("/api/teachers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []teacher.Teacher{{ID: "t1", DrivingSchoolID: "s1"}})
	})
	mux.HandleFunc("/api/courses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []course.Course{
			{ID: "c1", StudentID: "stu1", DrivingSchoolID: "s1"},
			{ID: "c2", StudentID: "stu2", DrivingSchoolID: "s1"},
			{ID: "c3", StudentID: "stu1", DrivingSchoolID: "s1"}, // same student, next stage
		})
	})
	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/users/")
		switch id {
		case "stu1":
			writeJSON(t, w, user.User{ID: "stu1", FullName: "Amine Benali"})
		case "stu2":
			writeJSON(t, w, user.User{ID: "stu2", FullName: "Lina Cherif"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail": "User not found"}`))
		}
	})
	mux.HandleFunc("/api/cars", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []car.Car{{ID: "car1", Make: "Renault", DrivingSchoolID: "s1"}})
	})
	return mux
}

func TestManagerDashboard_Load(t *testing.T) {
	api, store := newTestClient(t, managerMux(t))
	loginAs(t, store, "mgr1", user.RoleManager)

	dash := NewManagerDashboard(api)
	require.NoError(t, dash.Load(context.Background()))

	assert.False(t, dash.NeedsSetup)
	assert.Equal(t, "s1", dash.School.ID)
	assert.Len(t, dash.Courses, 3)
	assert.Equal(t, "Teachers (1)", dash.TeachersBadge())

	// students are deduplicated and sorted by name
	require.Len(t, dash.Students, 2)
	assert.Equal(t, "Amine Benali", dash.Students[0].FullName)
	assert.Equal(t, "Lina Cherif", dash.Students[1].FullName)

	require.Len(t, dash.Cars, 1)
	assert.Equal(t, "car1", dash.Cars[0].ID)
}

func TestManagerDashboard_PartialStudentFailure(t *testing.T) {
	handler := override(managerMux(t), "/api/users/stu2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	api, store := newTestClient(t, handler)
	loginAs(t, store, "mgr1", user.RoleManager)

	dash := NewManagerDashboard(api)
	require.NoError(t, dash.Load(context.Background()))

	require.Len(t, dash.Students, 1)
	assert.Equal(t, "stu1", dash.Students[0].ID)
}

func TestManagerDashboard_FleetNotFound(t *testing.T) {
	handler := override(managerMux(t), "/api/cars", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "not found"}`))
	})
	api, store := newTestClient(t, handler)
	loginAs(t, store, "mgr1", user.RoleManager)

	dash := NewManagerDashboard(api)
	require.NoError(t, dash.Load(context.Background()))

	require.NotEmpty(t, dash.Cars)
	for _, c := range dash.Cars {
		assert.Equal(t, "s1", c.DrivingSchoolID)
		assert.Equal(t, car.StatusAvailable, c.Status)
	}
}

// override routes a single path to a replacement handler, delegating the
// rest to the base mux.
func override(base http.Handler, path string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == path {
			h(w, r)
			return
		}
		base.ServeHTTP(w, r)
	})
}

func TestManagerDashboard_NoTeachersYet(t *testing.T) {
	handler := override(managerMux(t), "/api/teachers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []teacher.Teacher{})
	})
	api, store := newTestClient(t, handler)
	loginAs(t, store, "mgr1", user.RoleManager)

	dash := NewManagerDashboard(api)
	require.NoError(t, dash.Load(context.Background()))

	assert.Empty(t, dash.Teachers)
	assert.Equal(t, "Teachers (0)", dash.TeachersBadge())
	assert.Equal(t, "No teachers added yet.", NoTeachersMessage)
}

func TestManagerDashboard_NoSchool(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/driving-schools", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []school.DrivingSchool{})
	})
	api, store := newTestClient(t, mux)
	loginAs(t, store, "mgr1", user.RoleManager)

	dash := NewManagerDashboard(api)
	require.NoError(t, dash.Load(context.Background()))
	assert.True(t, dash.NeedsSetup)
	assert.Equal(t, "Teachers (0)", dash.TeachersBadge())
}
