package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/schedule"
	"github.com/yacinedz/siyaqa/core/user"
)

type scheduleApi struct {
	svc      schedule.ServiceInterface
	userSvc  user.ServiceInterface
	validate *validator.Validate
}

func registerScheduleAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := scheduleApi{svc: opts.ScheduleSvc, userSvc: opts.UserSvc, validate: opts.Validate}

	sg := g.Group("/schedules", auth)
	sg.POST("", api.create,
		roleMiddleware("Only managers, teachers, and admins can create schedules",
			user.RoleManager, user.RoleTeacher, user.RoleAdmin))
	sg.GET("", api.query)
}

// Handlers

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewSchedule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchedule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}

	sched, err := api.svc.Create(ctx.Request().Context(), usr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sched)
}

func (api *scheduleApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}

	filter := new(schedule.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []schedule.Schedule{})
	}

	schedules, err := api.svc.VisibleTo(ctx.Request().Context(), usr, *filter)
	if err != nil {
		return errors.Wrap(err, "querying schedules")
	}
	if schedules == nil {
		schedules = []schedule.Schedule{}
	}
	return ctx.JSON(http.StatusOK, schedules)
}
