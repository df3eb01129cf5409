package core

// Cross-domain vocabulary shared by users, teachers, courses and pricing.

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// CourseType is one of the three stages of the driving curriculum.
// Students progress code -> parking -> road.
type CourseType string

const (
	CourseCode    CourseType = "code"
	CourseParking CourseType = "parking"
	CourseRoad    CourseType = "road"
)

var CourseTypes = []CourseType{CourseCode, CourseParking, CourseRoad}

func (t CourseType) Valid() bool {
	switch t {
	case CourseCode, CourseParking, CourseRoad:
		return true
	}
	return false
}
