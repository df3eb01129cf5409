package tests

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/user"
)

func Test_userAPI_register(t *testing.T) {
	existing := createUser(t, user.RoleStudent, core.GenderMale)

	newUser := func(email string) user.NewUser {
		return user.NewUser{
			Email:           email,
			FullName:        "Amine Benali",
			Phone:           "0550123456",
			Gender:          "male",
			Address:         "12 Rue Didouche",
			State:           "Alger",
			Password:        "S3cure-pass",
			PasswordConfirm: "S3cure-pass",
		}
	}

	t.Run("ok", func(t *testing.T) {
		rec := httpTest{
			method: http.MethodPost, path: "/api/auth/register",
			body: newUser("amine.benali@test.dz"),
		}.run(t)

		var usr user.User
		decodeBody(t, rec, &usr)
		assert.NotEmpty(t, usr.ID)
		assert.Equal(t, "amine.benali@test.dz", usr.Email)
		assert.Equal(t, user.RoleStudent, usr.Role) // default role
		assert.True(t, usr.IsActive)
	})

	t.Run("duplicate email", func(t *testing.T) {
		httpTest{
			method: http.MethodPost, path: "/api/auth/register",
			body:     newUser(existing.Email),
			wantCode: http.StatusBadRequest,
		}.run(t)
	})

	t.Run("unknown wilaya", func(t *testing.T) {
		nu := newUser("other@test.dz")
		nu.State = "Atlantis"
		httpTest{
			method: http.MethodPost, path: "/api/auth/register",
			body: nu, wantCode: http.StatusBadRequest,
		}.run(t)
	})
}

func login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func Test_userAPI_token(t *testing.T) {
	usr := createUser(t, user.RoleManager, core.GenderFemale)

	t.Run("ok", func(t *testing.T) {
		rec := login(t, usr.Email, "S3cure-pass")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var payload struct {
			AccessToken string    `json:"access_token"`
			TokenType   string    `json:"token_type"`
			UserID      string    `json:"user_id"`
			Role        user.Role `json:"role"`
		}
		decodeBody(t, rec, &payload)
		assert.NotEmpty(t, payload.AccessToken)
		assert.Equal(t, "bearer", payload.TokenType)
		assert.Equal(t, usr.ID, payload.UserID)
		assert.Equal(t, user.RoleManager, payload.Role)

		// the token works against a protected endpoint
		httpTest{path: "/api/users/me", token: payload.AccessToken}.run(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := login(t, usr.Email, "nope")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail": "Incorrect username or password"}`, rec.Body.String())
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := login(t, "ghost@test.dz", "S3cure-pass")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func Test_userAPI_me(t *testing.T) {
	usr := createUser(t, user.RoleStudent, core.GenderMale)

	t.Run("auth required", func(t *testing.T) {
		httpTest{path: "/api/users/me", wantCode: http.StatusUnauthorized, wantErr: errCredentials}.run(t)
	})

	t.Run("garbage token", func(t *testing.T) {
		httpTest{path: "/api/users/me", token: "lol.nope.nah", wantCode: http.StatusUnauthorized, wantErr: errCredentials}.run(t)
	})

	t.Run("ok", func(t *testing.T) {
		rec := httpTest{path: "/api/users/me", token: getToken(t, usr)}.run(t)
		var got user.User
		decodeBody(t, rec, &got)
		assert.Equal(t, usr.ID, got.ID)
		assert.Equal(t, usr.Email, got.Email)
	})
}

func Test_userAPI_getByID(t *testing.T) {
	usr := createUser(t, user.RoleStudent, core.GenderMale)
	other := createUser(t, user.RoleTeacher, core.GenderFemale)
	token := getToken(t, usr)

	t.Run("ok", func(t *testing.T) {
		rec := httpTest{path: "/api/users/" + other.ID, token: token}.run(t)
		var got user.User
		decodeBody(t, rec, &got)
		assert.Equal(t, other.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		httpTest{
			path: "/api/users/does-not-exist", token: token,
			wantCode: http.StatusNotFound, wantErr: httpErr{Detail: "user not found"},
		}.run(t)
	})
}
