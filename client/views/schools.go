// Package views prepares API data for display.
package views

import (
	"context"

	"github.com/yacinedz/siyaqa/client"
	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/school"
)

// SchoolsView lists driving schools: the state filter is applied server-side,
// the teacher-gender filter client-side on the loaded page.
type SchoolsView struct {
	api *client.Client

	State        string
	GenderFilter core.Gender

	schools []school.DrivingSchool
}

func NewSchoolsView(api *client.Client) *SchoolsView {
	return &SchoolsView{api: api}
}

// Load fetches the schools for the current state filter.
func (v *SchoolsView) Load(ctx context.Context) error {
	schools, err := v.api.Schools(ctx, v.State)
	if err != nil {
		return err
	}
	v.schools = schools
	return nil
}

// SetState changes the server-side filter; Load must be called again.
func (v *SchoolsView) SetState(state string) {
	v.State = state
}

// ToggleGender switches the client-side gender filter; selecting the active
// gender again clears it.
func (v *SchoolsView) ToggleGender(g core.Gender) {
	if v.GenderFilter == g {
		v.GenderFilter = ""
		return
	}
	v.GenderFilter = g
}

// Schools returns the loaded schools with the gender filter applied.
func (v *SchoolsView) Schools() []school.DrivingSchool {
	if v.GenderFilter == "" {
		return v.schools
	}

	filtered := make([]school.DrivingSchool, 0, len(v.schools))
	for _, sch := range v.schools {
		switch v.GenderFilter {
		case core.GenderMale:
			if sch.HasMaleTeachers {
				filtered = append(filtered, sch)
			}
		case core.GenderFemale:
			if sch.HasFemaleTeachers {
				filtered = append(filtered, sch)
			}
		default:
			filtered = append(filtered, sch)
		}
	}
	return filtered
}
