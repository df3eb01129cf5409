package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/car"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/exam"
	"github.com/yacinedz/siyaqa/core/payment"
	"github.com/yacinedz/siyaqa/core/schedule"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

// domain sentinel errors mapped to HTTP status codes; everything else is a
// server error
var (
	badRequestErrs = []error{
		user.ErrEmailExists,
		teacher.ErrInvalidUser,
		teacher.ErrInvalidSchool,
		course.ErrInvalidStudent,
		course.ErrInvalidTeacher,
		course.ErrInvalidSchool,
		course.ErrGenderMismatch,
		schedule.ErrInvalidCourse,
		schedule.ErrTeacherNotFound,
		schedule.ErrSlotFullCode,
		schedule.ErrSlotTaken,
		schedule.ErrDayFullParking,
		schedule.ErrDayFullRoad,
		exam.ErrInvalidCourse,
		payment.ErrInvalidCourse,
		car.ErrInvalidSchool,
	}
	unauthorizedErrs = []error{
		user.ErrInvalidCredentials,
	}
	forbiddenErrs = []error{
		user.ErrAccountDeactivated,
		schedule.ErrNotOwnCourse,
		exam.ErrNotOwnCourse,
		payment.ErrNotOwnCourseCreate,
		payment.ErrNotOwnCourseUpdate,
	}
	notFoundErrs = []error{
		user.ErrNotFound,
		school.ErrNotFound,
		teacher.ErrNotFound,
		course.ErrNotFound,
		exam.ErrNotFound,
		exam.ErrCourseNotFound,
		payment.ErrNotFound,
		payment.ErrCourseNotFound,
		car.ErrNotFound,
	}
)

func domainStatus(err error) (int, bool) {
	if course.IsEnrollmentError(err) {
		return http.StatusBadRequest, true
	}
	for code, errs := range map[int][]error{
		http.StatusBadRequest:   badRequestErrs,
		http.StatusUnauthorized: unauthorizedErrs,
		http.StatusForbidden:    forbiddenErrs,
		http.StatusNotFound:     notFoundErrs,
	} {
		for _, e := range errs {
			if err == e {
				return code, true
			}
		}
	}
	return 0, false
}

// newAppHTTPErrorHandler returns an echo.HTTPErrorHandler emitting
// `{"detail": ...}` payloads. signalShutdown is called whenever a
// core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var detail interface{}

		cause := errors.Cause(err)
		if status, ok := domainStatus(cause); ok {
			code = status
			detail = cause.Error()
		} else {
			switch origErr := cause.(type) {
			case *echo.HTTPError:
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				detail = origErr.Message
			case validator.ValidationErrors:
				fldErrs := make(map[string]string, len(origErr))
				for _, vErr := range origErr {
					fldErrs[vErr.Field()] = vErr.Translate(translator)
				}
				code = http.StatusBadRequest
				detail = fldErrs
			case *core.ValidationError:
				if origErr.Fields != nil {
					fldErrs := make(map[string]string, len(origErr.Fields))
					for _, fErr := range origErr.Fields {
						fldErrs[fErr.Field] = fErr.Error
					}
					detail = fldErrs
				} else {
					detail = origErr.Error()
				}
				code = http.StatusBadRequest
			default:
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				detail = msg

				var usr user.User
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					usr.ID = claims.Subject
					usr.Role = claims.Role
				}
				logger.Error(msg, errors.Wrap(err, msg), usr)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, echo.Map{"detail": detail})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
