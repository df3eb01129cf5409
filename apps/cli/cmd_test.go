package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacinedz/siyaqa/client"
	"github.com/yacinedz/siyaqa/client/session"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/user"
)

func setup(t *testing.T, handler http.Handler) (*commandLine, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(session.NewMapStorage())
	out := new(bytes.Buffer)
	cli := &commandLine{
		api:   client.New(srv.URL, store),
		store: store,
		out:   out,
	}
	return cli, out
}

func mockPassword(t *testing.T, pwd string) {
	t.Helper()
	orig := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })
}

func Test_commandLine_help(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: []string{"cli"}},
		{name: "unknown command", args: []string{"cli", "nope"}},
		{name: "login without email", args: []string{"cli", "login"}},
		{name: "register without email", args: []string{"cli", "register", "-name", "Test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _ := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("unexpected request to %s", r.URL.Path)
			}))
			assert.ErrorIs(t, cli.run(tt.args), errHelp)
		})
	}
}

func Test_commandLine_login(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "S3cure-pass" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "Incorrect username or password"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok123", "token_type": "bearer", "user_id": "u1", "role": "student",
		})
	})

	t.Run("ok", func(t *testing.T) {
		cli, out := setup(t, mux)
		mockPassword(t, "S3cure-pass")

		require.NoError(t, cli.run([]string{"cli", "login", "-email", "amine@example.com"}))
		assert.Contains(t, out.String(), "/student-dashboard")

		sess, state := cli.store.Hydrate()
		assert.Equal(t, session.StateValid, state)
		assert.Equal(t, user.RoleStudent, sess.Role)
	})

	t.Run("bad password", func(t *testing.T) {
		cli, _ := setup(t, mux)
		mockPassword(t, "wrong")

		err := cli.run([]string{"cli", "login", "-email", "amine@example.com"})
		require.Error(t, err)
		assert.EqualError(t, err, "Incorrect username or password")
	})
}

func Test_commandLine_logout(t *testing.T) {
	cli, out := setup(t, http.NewServeMux())
	require.NoError(t, cli.store.Login("tok", "u1", user.RoleStudent))

	require.NoError(t, cli.run([]string{"cli", "logout"}))
	assert.Contains(t, out.String(), "Logged out.")

	_, state := cli.store.Hydrate()
	assert.Equal(t, session.StateEmpty, state)
}

func Test_commandLine_schools(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/driving-schools", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Oran", r.URL.Query().Get("state"))
		_ = json.NewEncoder(w).Encode([]school.DrivingSchool{
			{ID: "s1", Name: "Ecole El Amane", City: "Oran", State: "Oran", HasMaleTeachers: true},
			{ID: "s2", Name: "Auto Ecole Nour", City: "Oran", State: "Oran", HasFemaleTeachers: true},
		})
	})
	cli, out := setup(t, mux)

	require.NoError(t, cli.run([]string{"cli", "schools", "-state", "Oran", "-gender", "female"}))
	assert.Contains(t, out.String(), "Auto Ecole Nour")
	assert.NotContains(t, out.String(), "Ecole El Amane")
}

func Test_commandLine_dashboard(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		cli, _ := setup(t, http.NewServeMux())
		err := cli.run([]string{"cli", "dashboard"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not logged in")
	})

	t.Run("student", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(user.User{ID: "u1", FullName: "Amine Benali", Role: user.RoleStudent})
		})
		for _, path := range []string{"/api/courses", "/api/schedules", "/api/exams", "/api/payments"} {
			mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("[]"))
			})
		}
		cli, out := setup(t, mux)
		require.NoError(t, cli.store.Login("tok", "u1", user.RoleStudent))

		require.NoError(t, cli.run([]string{"cli", "dashboard"}))
		assert.Contains(t, out.String(), "Hello Amine Benali!")
		assert.Contains(t, out.String(), "Next stage available: code")
	})
}
