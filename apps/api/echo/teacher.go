package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
)

type teacherApi struct {
	svc      teacher.ServiceInterface
	validate *validator.Validate
}

func registerTeacherAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := teacherApi{svc: opts.TeacherSvc, validate: opts.Validate}

	tg := g.Group("/teachers")
	tg.GET("", api.query)
	tg.POST("", api.create, auth,
		roleMiddleware("Only managers and admins can create teachers", user.RoleManager, user.RoleAdmin))
}

// Handlers

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tchr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tchr)
}

func (api *teacherApi) query(ctx echo.Context) error {
	filter := new(teacher.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []teacher.Teacher{})
	}

	teachers, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}
