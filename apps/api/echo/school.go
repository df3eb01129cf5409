package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/user"
)

type schoolApi struct {
	svc      school.ServiceInterface
	validate *validator.Validate
}

func registerSchoolAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := schoolApi{svc: opts.SchoolSvc, validate: opts.Validate}

	g.GET("/states", api.states)

	sg := g.Group("/driving-schools")
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)
	sg.POST("", api.create, auth,
		roleMiddleware("Only managers and admins can create driving schools", user.RoleManager, user.RoleAdmin))
}

// Handlers

func (api *schoolApi) states(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"states": core.Wilayas})
}

func (api *schoolApi) create(ctx echo.Context) error {
	var data school.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}
	if data.ManagerID == "" {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		data.ManagerID = claims.Subject
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sch, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating driving school")
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *schoolApi) query(ctx echo.Context) error {
	filter := new(school.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []school.DrivingSchool{})
	}

	schools, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying driving schools")
	}
	if schools == nil {
		schools = []school.DrivingSchool{}
	}
	return ctx.JSON(http.StatusOK, schools)
}

func (api *schoolApi) retrieve(ctx echo.Context) error {
	sch, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sch)
}
