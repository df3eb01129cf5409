package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

func Test_schoolAPI_states(t *testing.T) {
	rec := httpTest{path: "/api/states"}.run(t)

	var payload struct {
		States []string `json:"states"`
	}
	decodeBody(t, rec, &payload)
	assert.Len(t, payload.States, 58)
	assert.Equal(t, "Adrar", payload.States[0])
	assert.Contains(t, payload.States, "Alger")
}

func Test_schoolAPI_query(t *testing.T) {
	mgr := createUser(t, user.RoleManager, core.GenderMale)
	algiers := createSchool(t, mgr.ID)
	oran := createSchool(t, createUser(t, user.RoleManager, core.GenderFemale).ID)
	oran.State = "Oran"
	_, err := schoolRepo.UpdateSchool(ctxb(), oran)
	require.NoError(t, err)

	t.Run("no auth needed", func(t *testing.T) {
		rec := httpTest{path: "/api/driving-schools"}.run(t)
		var schools []school.DrivingSchool
		decodeBody(t, rec, &schools)
		assert.GreaterOrEqual(t, len(schools), 2)
	})

	t.Run("filter by state", func(t *testing.T) {
		rec := httpTest{path: "/api/driving-schools?state=Oran"}.run(t)
		var schools []school.DrivingSchool
		decodeBody(t, rec, &schools)
		for _, sch := range schools {
			assert.Equal(t, "Oran", sch.State)
		}
	})

	t.Run("filter by manager", func(t *testing.T) {
		rec := httpTest{path: "/api/driving-schools?manager_id=" + mgr.ID}.run(t)
		var schools []school.DrivingSchool
		decodeBody(t, rec, &schools)
		require.Len(t, schools, 1)
		assert.Equal(t, algiers.ID, schools[0].ID)
	})

	t.Run("get by id", func(t *testing.T) {
		rec := httpTest{path: "/api/driving-schools/" + algiers.ID}.run(t)
		var sch school.DrivingSchool
		decodeBody(t, rec, &sch)
		assert.Equal(t, algiers.Name, sch.Name)
	})

	t.Run("get unknown id", func(t *testing.T) {
		httpTest{
			path:     "/api/driving-schools/nope",
			wantCode: http.StatusNotFound, wantErr: httpErr{Detail: "Driving school not found"},
		}.run(t)
	})
}

func Test_schoolAPI_create(t *testing.T) {
	mgr := createUser(t, user.RoleManager, core.GenderMale)
	student := createUser(t, user.RoleStudent, core.GenderMale)

	payload := school.NewSchool{
		Name:          "Ecole de Conduite Essalam",
		Description:   "Apprentissage complet",
		Address:       "5 Boulevard Zighout Youcef",
		State:         "Alger",
		City:          "Bab El Oued",
		Phone:         "0550111222",
		Email:         "essalam@school.dz",
		LicenseNumber: "AG-2024-017",
		PriceCode:     14000,
		PriceParking:  19000,
		PriceRoad:     24000,
	}

	t.Run("auth required", func(t *testing.T) {
		httpTest{
			method: http.MethodPost, path: "/api/driving-schools", body: payload,
			wantCode: http.StatusUnauthorized, wantErr: errCredentials,
		}.run(t)
	})

	t.Run("students cannot create", func(t *testing.T) {
		httpTest{
			method: http.MethodPost, path: "/api/driving-schools", body: payload,
			token: getToken(t, student), wantCode: http.StatusForbidden,
			wantErr: httpErr{Detail: "Only managers and admins can create driving schools"},
		}.run(t)
	})

	t.Run("manager creates own school", func(t *testing.T) {
		rec := httpTest{
			method: http.MethodPost, path: "/api/driving-schools", body: payload,
			token: getToken(t, mgr),
		}.run(t)

		var sch school.DrivingSchool
		decodeBody(t, rec, &sch)
		assert.NotEmpty(t, sch.ID)
		assert.Equal(t, mgr.ID, sch.ManagerID) // defaulted from the token
		assert.False(t, sch.HasMaleTeachers)
		assert.False(t, sch.HasFemaleTeachers)
	})
}

func Test_teacherAPI(t *testing.T) {
	mgr := createUser(t, user.RoleManager, core.GenderMale)
	sch := createSchool(t, mgr.ID)
	tchrUser := createUser(t, user.RoleTeacher, core.GenderFemale)
	student := createUser(t, user.RoleStudent, core.GenderMale)
	mgrToken := getToken(t, mgr)

	payload := teacher.NewTeacher{
		UserID:          tchrUser.ID,
		DrivingSchoolID: sch.ID,
		Gender:          "female",
		YearsExperience: 7,
		Specialization:  []string{"code", "parking"},
	}

	t.Run("students cannot hire", func(t *testing.T) {
		httpTest{
			method: http.MethodPost, path: "/api/teachers", body: payload,
			token: getToken(t, student), wantCode: http.StatusForbidden,
			wantErr: httpErr{Detail: "Only managers and admins can create teachers"},
		}.run(t)
	})

	t.Run("hiring flags the school gender", func(t *testing.T) {
		rec := httpTest{
			method: http.MethodPost, path: "/api/teachers", body: payload, token: mgrToken,
		}.run(t)

		var tchr teacher.Teacher
		decodeBody(t, rec, &tchr)
		assert.Equal(t, tchrUser.ID, tchr.UserID)
		assert.True(t, tchr.IsActive)

		got, err := schoolRepo.GetSchoolByID(ctxb(), sch.ID)
		require.NoError(t, err)
		assert.True(t, got.HasFemaleTeachers)
		assert.False(t, got.HasMaleTeachers)
	})

	t.Run("user must hold the teacher role", func(t *testing.T) {
		bad := payload
		bad.UserID = student.ID
		httpTest{
			method: http.MethodPost, path: "/api/teachers", body: bad, token: mgrToken,
			wantCode: http.StatusBadRequest,
			wantErr:  httpErr{Detail: "Invalid user_id or user is not a teacher"},
		}.run(t)
	})

	t.Run("public listing filters by school and gender", func(t *testing.T) {
		rec := httpTest{path: "/api/teachers?driving_school_id=" + sch.ID + "&gender=female"}.run(t)
		var teachers []teacher.Teacher
		decodeBody(t, rec, &teachers)
		require.NotEmpty(t, teachers)
		for _, tchr := range teachers {
			assert.Equal(t, sch.ID, tchr.DrivingSchoolID)
			assert.Equal(t, core.GenderFemale, tchr.Gender)
		}
	})
}
