package teacher

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/user"
)

var (
	ErrNotFound      = errors.New("teacher not found")
	ErrInvalidUser   = errors.New("Invalid user_id or user is not a teacher")
	ErrInvalidSchool = errors.New("Invalid driving_school_id")
)

type (
	Repository interface {
		CreateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		GetTeacherByID(ctx context.Context, id string) (Teacher, error)
		GetTeacherByUserID(ctx context.Context, userID string) (Teacher, error)
		// FilterTeachers applies AND on available QueryFilter fields.
		FilterTeachers(ctx context.Context, filter QueryFilter) ([]Teacher, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, nt NewTeacher) (Teacher, error)
		GetByID(ctx context.Context, id string) (Teacher, error)
		GetByUserID(ctx context.Context, userID string) (Teacher, error)
		Filter(ctx context.Context, filter QueryFilter) ([]Teacher, error)
	}

	service struct {
		repo      Repository
		users     user.Repository
		schoolSvc school.ServiceInterface
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, users user.Repository, schoolSvc school.ServiceInterface) ServiceInterface {
	return &service{repo: repo, users: users, schoolSvc: schoolSvc}
}

// Create hires a teacher: the target user must hold the teacher role and the
// school must exist. Hiring updates the school's teacher gender availability.
func (svc *service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	usr, err := svc.users.GetUserByID(ctx, nt.UserID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return Teacher{}, ErrInvalidUser
		}
		return Teacher{}, errors.Wrap(err, "finding teacher user")
	}
	if !usr.IsTeacher() {
		return Teacher{}, ErrInvalidUser
	}

	if _, err = svc.schoolSvc.GetByID(ctx, nt.DrivingSchoolID); err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return Teacher{}, ErrInvalidSchool
		}
		return Teacher{}, errors.Wrap(err, "finding school")
	}

	t := Teacher{
		ID:              uuid.NewString(),
		UserID:          nt.UserID,
		DrivingSchoolID: nt.DrivingSchoolID,
		Gender:          core.Gender(nt.Gender),
		YearsExperience: nt.YearsExperience,
		Specialization:  nt.specialization(),
		Bio:             nt.Bio,
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
	}
	t, err = svc.repo.CreateTeacher(ctx, t)
	if err != nil {
		return Teacher{}, err
	}

	if err = svc.schoolSvc.SetTeacherGender(ctx, t.DrivingSchoolID, t.Gender); err != nil {
		return Teacher{}, errors.Wrap(err, "updating school teacher genders")
	}
	return t, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

func (svc *service) GetByUserID(ctx context.Context, userID string) (Teacher, error) {
	return svc.repo.GetTeacherByUserID(ctx, userID)
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter) ([]Teacher, error) {
	return svc.repo.FilterTeachers(ctx, filter)
}
