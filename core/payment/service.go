package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/user"
)

var (
	ErrNotFound           = errors.New("Payment not found")
	ErrInvalidCourse      = errors.New("Invalid course_id")
	ErrCourseNotFound     = errors.New("Course not found")
	ErrNotOwnCourseCreate = errors.New("You can only create payments for your own courses")
	ErrNotOwnCourseUpdate = errors.New("You can only update payments for your own courses")
)

type (
	Repository interface {
		CreatePayment(ctx context.Context, p Payment) (Payment, error)
		GetPaymentByID(ctx context.Context, id string) (Payment, error)
		// FilterPayments applies AND on CourseID/Status; StudentID is resolved
		// through courses by the service.
		FilterPayments(ctx context.Context, filter QueryFilter) ([]Payment, error)
		UpdatePaymentStatus(ctx context.Context, id string, status Status) (Payment, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, usr user.User, np NewPayment) (Payment, error)
		UpdateStatus(ctx context.Context, usr user.User, id string, status Status) (Payment, error)
		VisibleTo(ctx context.Context, usr user.User, filter QueryFilter) ([]Payment, error)
	}

	service struct {
		repo    Repository
		courses course.ServiceInterface
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, courses course.ServiceInterface) ServiceInterface {
	return &service{repo: repo, courses: courses}
}

// Recorder implements course.PaymentRecorder on top of the repository alone,
// so that enrollment can record pending payments without a service cycle.
type Recorder struct {
	repo Repository
}

var _ course.PaymentRecorder = (*Recorder)(nil)

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) RecordPending(ctx context.Context, courseID string, amount float64) error {
	_, err := r.repo.CreatePayment(ctx, Payment{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	})
	return err
}

// Create records a payment for a course. Only the enrolled student or an
// admin may pay.
func (svc *service) Create(ctx context.Context, usr user.User, np NewPayment) (Payment, error) {
	c, err := svc.courses.GetByID(ctx, np.CourseID)
	if err != nil {
		return Payment{}, ErrInvalidCourse
	}
	if !usr.IsAdmin() && usr.ID != c.StudentID {
		return Payment{}, ErrNotOwnCourseCreate
	}

	p := Payment{
		ID:            uuid.NewString(),
		CourseID:      np.CourseID,
		Amount:        np.Amount,
		Status:        Status(np.Status),
		TransactionID: "TXN-" + randomHex(8),
		CreatedAt:     time.Now().UTC(),
	}
	return svc.repo.CreatePayment(ctx, p)
}

// UpdateStatus transitions a payment. Completing payment on a not started
// course starts it.
func (svc *service) UpdateStatus(ctx context.Context, usr user.User, id string, status Status) (Payment, error) {
	p, err := svc.repo.GetPaymentByID(ctx, id)
	if err != nil {
		return Payment{}, err
	}
	c, err := svc.courses.GetByID(ctx, p.CourseID)
	if err != nil {
		return Payment{}, ErrCourseNotFound
	}
	if !usr.IsAdmin() && !usr.IsManager() && usr.ID != c.StudentID {
		return Payment{}, ErrNotOwnCourseUpdate
	}

	p, err = svc.repo.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		return Payment{}, err
	}

	if status == StatusCompleted && c.Status == course.StatusNotStarted {
		if _, err = svc.courses.SetStatus(ctx, c.ID, course.StatusInProgress); err != nil {
			return Payment{}, errors.Wrap(err, "starting course")
		}
	}
	return p, nil
}

func (svc *service) VisibleTo(ctx context.Context, usr user.User, filter QueryFilter) ([]Payment, error) {
	payments, err := svc.repo.FilterPayments(ctx, QueryFilter{CourseID: filter.CourseID, Status: filter.Status})
	if err != nil {
		return nil, err
	}
	if usr.IsAdmin() && filter.StudentID == "" {
		return payments, nil
	}

	courses, err := svc.courses.VisibleTo(ctx, usr, course.QueryFilter{StudentID: filter.StudentID})
	if err != nil {
		return nil, errors.Wrap(err, "narrowing courses")
	}
	visible := make(map[string]bool, len(courses))
	for _, c := range courses {
		visible[c.ID] = true
	}

	kept := payments[:0]
	for _, p := range payments {
		if visible[p.CourseID] {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
