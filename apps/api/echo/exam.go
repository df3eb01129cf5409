package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/exam"
	"github.com/yacinedz/siyaqa/core/user"
)

type examApi struct {
	svc      exam.ServiceInterface
	userSvc  user.ServiceInterface
	validate *validator.Validate
}

func registerExamAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := examApi{svc: opts.ExamSvc, userSvc: opts.UserSvc, validate: opts.Validate}

	staff := roleMiddleware("Only managers, teachers, and admins can manage exams",
		user.RoleManager, user.RoleTeacher, user.RoleAdmin)

	eg := g.Group("/exams", auth)
	eg.POST("", api.create, staff)
	eg.PUT("/:id", api.update, staff)
	eg.GET("", api.query)
}

// Handlers

func (api *examApi) create(ctx echo.Context) error {
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}

	ex, err := api.svc.Create(ctx.Request().Context(), usr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ex)
}

// update sets the exam outcome; passing completes the course, failing
// fails it.
func (api *examApi) update(ctx echo.Context) error {
	var data exam.UpdateExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExam")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}

	ex, err := api.svc.Update(ctx.Request().Context(), usr, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ex)
}

func (api *examApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}

	filter := new(exam.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []exam.Exam{})
	}

	exams, err := api.svc.VisibleTo(ctx.Request().Context(), usr, *filter)
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	if exams == nil {
		exams = []exam.Exam{}
	}
	return ctx.JSON(http.StatusOK, exams)
}
