package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core/car"
	"github.com/yacinedz/siyaqa/core/user"
)

type carApi struct {
	svc      car.ServiceInterface
	validate *validator.Validate
}

func registerCarAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := carApi{svc: opts.CarSvc, validate: opts.Validate}

	cg := g.Group("/cars", auth)
	cg.GET("", api.query)
	cg.POST("", api.create,
		roleMiddleware("Only managers and admins can add cars", user.RoleManager, user.RoleAdmin))
}

// Handlers

func (api *carApi) create(ctx echo.Context) error {
	var data car.NewCar
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCar")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *carApi) query(ctx echo.Context) error {
	filter := new(car.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []car.Car{})
	}

	cars, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying cars")
	}
	if cars == nil {
		cars = []car.Car{}
	}
	return ctx.JSON(http.StatusOK, cars)
}
