package school

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core"
)

var ErrNotFound = errors.New("Driving school not found")

type (
	Repository interface {
		CreateSchool(ctx context.Context, sch DrivingSchool) (DrivingSchool, error)
		GetSchoolByID(ctx context.Context, id string) (DrivingSchool, error)
		GetSchoolByManagerID(ctx context.Context, managerID string) (DrivingSchool, error)
		// FilterSchools applies AND on available QueryFilter fields.
		FilterSchools(ctx context.Context, filter QueryFilter) ([]DrivingSchool, error)
		UpdateSchool(ctx context.Context, sch DrivingSchool) (DrivingSchool, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, ns NewSchool) (DrivingSchool, error)
		GetByID(ctx context.Context, id string) (DrivingSchool, error)
		GetByManagerID(ctx context.Context, managerID string) (DrivingSchool, error)
		Filter(ctx context.Context, filter QueryFilter) ([]DrivingSchool, error)
		SetTeacherGender(ctx context.Context, schoolID string, gender core.Gender) error
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) ServiceInterface {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, ns NewSchool) (DrivingSchool, error) {
	sch := DrivingSchool{
		ID:            uuid.NewString(),
		Name:          ns.Name,
		Description:   ns.Description,
		Address:       ns.Address,
		State:         ns.State,
		City:          ns.City,
		Phone:         ns.Phone,
		Email:         ns.Email,
		LicenseNumber: ns.LicenseNumber,
		PriceCode:     ns.PriceCode,
		PriceParking:  ns.PriceParking,
		PriceRoad:     ns.PriceRoad,
		ManagerID:     ns.ManagerID,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	return svc.repo.CreateSchool(ctx, sch)
}

func (svc *service) GetByID(ctx context.Context, id string) (DrivingSchool, error) {
	return svc.repo.GetSchoolByID(ctx, id)
}

func (svc *service) GetByManagerID(ctx context.Context, managerID string) (DrivingSchool, error) {
	return svc.repo.GetSchoolByManagerID(ctx, managerID)
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter) ([]DrivingSchool, error) {
	filter.Clean()
	return svc.repo.FilterSchools(ctx, filter)
}

// SetTeacherGender flags the school as having teachers of the given gender.
// Called when a teacher of that gender is hired.
func (svc *service) SetTeacherGender(ctx context.Context, schoolID string, gender core.Gender) error {
	sch, err := svc.repo.GetSchoolByID(ctx, schoolID)
	if err != nil {
		return err
	}
	switch gender {
	case core.GenderMale:
		if sch.HasMaleTeachers {
			return nil
		}
		sch.HasMaleTeachers = true
	case core.GenderFemale:
		if sch.HasFemaleTeachers {
			return nil
		}
		sch.HasFemaleTeachers = true
	default:
		return nil
	}
	_, err = svc.repo.UpdateSchool(ctx, sch)
	return err
}
