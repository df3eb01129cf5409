package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

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

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc     user.ServiceInterface
		SchoolSvc   school.ServiceInterface
		TeacherSvc  teacher.ServiceInterface
		CourseSvc   course.ServiceInterface
		ScheduleSvc schedule.ServiceInterface
		ExamSvc     exam.ServiceInterface
		PaymentSvc  payment.ServiceInterface
		CarSvc      car.ServiceInterface

		// Shutdown is called when an unrecoverable error is caught.
		Shutdown func()
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.opts.Shutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	auth := authMiddleware(conf)

	registerUserAPI(api, auth, s.opts)
	registerSchoolAPI(api, auth, s.opts)
	registerTeacherAPI(api, auth, s.opts)
	registerCourseAPI(api, auth, s.opts)
	registerScheduleAPI(api, auth, s.opts)
	registerExamAPI(api, auth, s.opts)
	registerPaymentAPI(api, auth, s.opts)
	registerCarAPI(api, auth, s.opts)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Siyaqa API!")
}
