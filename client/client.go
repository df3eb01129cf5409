// Package client is the HTTP client for the Siyaqa API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/client/session"
	"github.com/yacinedz/siyaqa/core/car"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/exam"
	"github.com/yacinedz/siyaqa/core/payment"
	"github.com/yacinedz/siyaqa/core/schedule"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

type Client struct {
	baseURL string
	store   *session.Store
	http    *http.Client
}

func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    &http.Client{Transport: newBearerTransport(store, nil)},
	}
}

// Session returns the underlying session store.
func (c *Client) Session() *session.Store {
	return c.store
}

// TokenResponse is the payload of a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	UserID      string    `json:"user_id"`
	Role        user.Role `json:"role"`
}

// Register creates a new account. The password confirmation must be checked
// by the caller before any network call is made.
func (c *Client) Register(ctx context.Context, nu user.NewUser) (user.User, error) {
	var usr user.User
	err := c.postJSON(ctx, "/api/auth/register", nu, &usr)
	return usr, err
}

// Login exchanges credentials for a token and persists the session.
func (c *Client) Login(ctx context.Context, username, password string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return TokenResponse{}, errors.Wrap(err, "building login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token TokenResponse
	if err = c.do(req, &token); err != nil {
		return TokenResponse{}, err
	}
	if err = c.store.Login(token.AccessToken, token.UserID, token.Role); err != nil {
		return TokenResponse{}, errors.Wrap(err, "persisting session")
	}
	return token, nil
}

// Logout clears the stored session.
func (c *Client) Logout() error {
	return c.store.Logout()
}

func (c *Client) Me(ctx context.Context) (user.User, error) {
	var usr user.User
	err := c.getJSON(ctx, "/api/users/me", nil, &usr)
	return usr, err
}

func (c *Client) User(ctx context.Context, id string) (user.User, error) {
	var usr user.User
	err := c.getJSON(ctx, "/api/users/"+id, nil, &usr)
	return usr, err
}

// States returns the 58 wilayas in official order.
func (c *Client) States(ctx context.Context) ([]string, error) {
	var payload struct {
		States []string `json:"states"`
	}
	err := c.getJSON(ctx, "/api/states", nil, &payload)
	return payload.States, err
}

func (c *Client) Schools(ctx context.Context, state string) ([]school.DrivingSchool, error) {
	query := url.Values{}
	if state != "" {
		query.Set("state", state)
	}
	var schools []school.DrivingSchool
	err := c.getJSON(ctx, "/api/driving-schools", query, &schools)
	return schools, err
}

func (c *Client) School(ctx context.Context, id string) (school.DrivingSchool, error) {
	var sch school.DrivingSchool
	err := c.getJSON(ctx, "/api/driving-schools/"+id, nil, &sch)
	return sch, err
}

func (c *Client) CreateSchool(ctx context.Context, ns school.NewSchool) (school.DrivingSchool, error) {
	var sch school.DrivingSchool
	err := c.postJSON(ctx, "/api/driving-schools", ns, &sch)
	return sch, err
}

// ManagedSchool returns the school managed by the given user, or ErrNoSchool
// when they have not registered one yet.
func (c *Client) ManagedSchool(ctx context.Context, managerID string) (school.DrivingSchool, error) {
	query := url.Values{}
	query.Set("manager_id", managerID)
	var schools []school.DrivingSchool
	if err := c.getJSON(ctx, "/api/driving-schools", query, &schools); err != nil {
		return school.DrivingSchool{}, err
	}
	if len(schools) == 0 {
		return school.DrivingSchool{}, ErrNoSchool
	}
	return schools[0], nil
}

func (c *Client) Teachers(ctx context.Context, filter teacher.QueryFilter) ([]teacher.Teacher, error) {
	query := url.Values{}
	if filter.DrivingSchoolID != "" {
		query.Set("driving_school_id", filter.DrivingSchoolID)
	}
	if filter.Gender != "" {
		query.Set("gender", filter.Gender)
	}
	var teachers []teacher.Teacher
	err := c.getJSON(ctx, "/api/teachers", query, &teachers)
	return teachers, err
}

func (c *Client) CreateTeacher(ctx context.Context, nt teacher.NewTeacher) (teacher.Teacher, error) {
	var tchr teacher.Teacher
	err := c.postJSON(ctx, "/api/teachers", nt, &tchr)
	return tchr, err
}

func (c *Client) Courses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	query := url.Values{}
	if filter.StudentID != "" {
		query.Set("student_id", filter.StudentID)
	}
	if filter.TeacherID != "" {
		query.Set("teacher_id", filter.TeacherID)
	}
	if filter.DrivingSchoolID != "" {
		query.Set("driving_school_id", filter.DrivingSchoolID)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	var courses []course.Course
	err := c.getJSON(ctx, "/api/courses", query, &courses)
	return courses, err
}

func (c *Client) Enroll(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	var crs course.Course
	err := c.postJSON(ctx, "/api/courses", nc, &crs)
	return crs, err
}

func (c *Client) Schedules(ctx context.Context, filter schedule.QueryFilter) ([]schedule.Schedule, error) {
	query := url.Values{}
	if filter.CourseID != "" {
		query.Set("course_id", filter.CourseID)
	}
	if filter.StudentID != "" {
		query.Set("student_id", filter.StudentID)
	}
	if filter.TeacherID != "" {
		query.Set("teacher_id", filter.TeacherID)
	}
	var schedules []schedule.Schedule
	err := c.getJSON(ctx, "/api/schedules", query, &schedules)
	return schedules, err
}

func (c *Client) Exams(ctx context.Context, filter exam.QueryFilter) ([]exam.Exam, error) {
	query := url.Values{}
	if filter.CourseID != "" {
		query.Set("course_id", filter.CourseID)
	}
	if filter.StudentID != "" {
		query.Set("student_id", filter.StudentID)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	var exams []exam.Exam
	err := c.getJSON(ctx, "/api/exams", query, &exams)
	return exams, err
}

func (c *Client) Payments(ctx context.Context, filter payment.QueryFilter) ([]payment.Payment, error) {
	query := url.Values{}
	if filter.CourseID != "" {
		query.Set("course_id", filter.CourseID)
	}
	if filter.StudentID != "" {
		query.Set("student_id", filter.StudentID)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	var payments []payment.Payment
	err := c.getJSON(ctx, "/api/payments", query, &payments)
	return payments, err
}

func (c *Client) Cars(ctx context.Context, drivingSchoolID string) ([]car.Car, error) {
	query := url.Values{}
	if drivingSchoolID != "" {
		query.Set("driving_school_id", drivingSchoolID)
	}
	var cars []car.Car
	err := c.getJSON(ctx, "/api/cars", query, &cars)
	return cars, err
}

// request plumbing

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrapf(err, "building request for %s", path)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "encoding request for %s", path)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "building request for %s", path)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do performs the request once; failures are surfaced, never retried.
func (c *Client) do(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res, body)
	}
	if out == nil {
		return nil
	}
	return errors.Wrap(json.Unmarshal(body, out), "decoding response")
}
