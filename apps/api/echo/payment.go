package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/payment"
	"github.com/yacinedz/siyaqa/core/user"
)

type paymentApi struct {
	svc      payment.ServiceInterface
	userSvc  user.ServiceInterface
	validate *validator.Validate
}

func registerPaymentAPI(g *echo.Group, auth echo.MiddlewareFunc, opts *Options) {
	api := paymentApi{svc: opts.PaymentSvc, userSvc: opts.UserSvc, validate: opts.Validate}

	pg := g.Group("/payments", auth)
	pg.POST("", api.create)
	pg.PUT("/:id", api.update)
	pg.GET("", api.query)
}

// Handlers

func (api *paymentApi) create(ctx echo.Context) error {
	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}

	pmt, err := api.svc.Create(ctx.Request().Context(), usr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pmt)
}

// update changes the payment status; completing payment on a not started
// course moves it to in progress.
func (api *paymentApi) update(ctx echo.Context) error {
	var data UpdatePaymentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePaymentRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}

	pmt, err := api.svc.UpdateStatus(ctx.Request().Context(), usr, ctx.Param("id"), payment.Status(data.Status))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *paymentApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return err
	}

	filter := new(payment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []payment.Payment{})
	}

	payments, err := api.svc.VisibleTo(ctx.Request().Context(), usr, *filter)
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

type UpdatePaymentRequest struct {
	Status string `json:"status" query:"status" validate:"required,oneof=pending completed failed refunded"`
}

func (ur *UpdatePaymentRequest) Validate(validate *validator.Validate) error {
	ur.Status = core.CleanString(ur.Status, true /* lower */)
	return validate.Struct(ur)
}
