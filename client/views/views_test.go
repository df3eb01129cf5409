package views

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacinedz/siyaqa/client"
	"github.com/yacinedz/siyaqa/client/session"
	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/user"
)

func newTestClient(t *testing.T, handler http.Handler) (*client.Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewStore(session.NewMapStorage())
	return client.New(srv.URL, store), store
}

func loginAs(t *testing.T, store *session.Store, userID string, role user.Role) {
	t.Helper()
	require.NoError(t, store.Login("test-token", userID, role))
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestSchoolsView(t *testing.T) {
	schools := []school.DrivingSchool{
		{ID: "s1", Name: "Ecole El Amane", State: "Alger", HasMaleTeachers: true},
		{ID: "s2", Name: "Auto Ecole Nour", State: "Alger", HasFemaleTeachers: true},
		{ID: "s3", Name: "Ecole Essalam", State: "Alger", HasMaleTeachers: true, HasFemaleTeachers: true},
	}

	var gotState string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/driving-schools", func(w http.ResponseWriter, r *http.Request) {
		gotState = r.URL.Query().Get("state")
		writeJSON(t, w, schools)
	})
	api, _ := newTestClient(t, mux)

	view := NewSchoolsView(api)
	view.SetState("Alger")
	require.NoError(t, view.Load(context.Background()))
	assert.Equal(t, "Alger", gotState)
	assert.Len(t, view.Schools(), 3)

	view.ToggleGender(core.GenderFemale)
	got := view.Schools()
	require.Len(t, got, 2)
	assert.Equal(t, "s2", got[0].ID)
	assert.Equal(t, "s3", got[1].ID)

	view.ToggleGender(core.GenderMale)
	got = view.Schools()
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ID)

	// selecting the active gender again clears the filter
	view.ToggleGender(core.GenderMale)
	assert.Len(t, view.Schools(), 3)
}

func TestRegisterForm_PasswordMismatch(t *testing.T) {
	api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))

	form := RegisterForm{
		Email:           "amine@example.com",
		Password:        "S3cure-pass",
		PasswordConfirm: "S3cure-pas",
	}
	_, err := form.Submit(context.Background(), api)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.EqualError(t, err, "Passwords do not match")
}

func TestRegisterForm_Submit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var nu user.NewUser
		require.NoError(t, json.NewDecoder(r.Body).Decode(&nu))
		writeJSON(t, w, user.User{ID: "u1", Email: nu.Email, FullName: nu.FullName, Role: user.RoleStudent})
	})
	api, _ := newTestClient(t, mux)

	form := RegisterForm{
		Email:           "amine@example.com",
		FullName:        "Amine Benali",
		Phone:           "0550123456",
		Gender:          "male",
		Address:         "12 Rue Didouche",
		State:           "Alger",
		Password:        "S3cure-pass",
		PasswordConfirm: "S3cure-pass",
	}
	usr, err := form.Submit(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, "u1", usr.ID)
	assert.Equal(t, user.RoleStudent, usr.Role)
}

func TestLoginForm_Submit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "amine@example.com", r.PostForm.Get("username"))
		writeJSON(t, w, map[string]interface{}{
			"access_token": "tok123",
			"token_type":   "bearer",
			"user_id":      "u1",
			"role":         "manager",
		})
	})
	api, store := newTestClient(t, mux)

	form := LoginForm{Email: "amine@example.com", Password: "S3cure-pass"}
	path, err := form.Submit(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, "/manager-dashboard", path)

	sess, state := store.Hydrate()
	assert.Equal(t, session.StateValid, state)
	assert.Equal(t, "tok123", sess.Token)
	assert.Equal(t, user.RoleManager, sess.Role)
}

func TestLoginForm_BadCredentials(t *testing.T) {
	api, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Incorrect username or password"}`))
	}))

	form := LoginForm{Email: "amine@example.com", Password: "wrong"}
	_, err := form.Submit(context.Background(), api)
	require.Error(t, err)
	assert.EqualError(t, err, "Incorrect username or password")

	_, state := store.Hydrate()
	assert.Equal(t, session.StateEmpty, state)
}
