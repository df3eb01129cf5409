package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/user"
)

type courseApi struct {
	svc      course.ServiceInterface
	userSvc  user.ServiceInterface
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := courseApi{svc: opts.CourseSvc, userSvc: opts.UserSvc, validate: opts.Validate}

	cg := g.Group("/courses", auth)
	cg.POST("", api.create)
	cg.GET("", api.query)
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.Enroll(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

// query returns courses narrowed by the caller's role: students see their
// own, teachers the courses they teach, managers their school's.
func (api *courseApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}

	filter := new(course.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []course.Course{})
	}

	courses, err := api.svc.VisibleTo(ctx.Request().Context(), usr, *filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}
