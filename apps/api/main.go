package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/yacinedz/siyaqa/apps/api/echo"
	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/car"
	"github.com/yacinedz/siyaqa/core/course"
	"github.com/yacinedz/siyaqa/core/exam"
	"github.com/yacinedz/siyaqa/core/payment"
	"github.com/yacinedz/siyaqa/core/schedule"
	"github.com/yacinedz/siyaqa/core/school"
	"github.com/yacinedz/siyaqa/core/teacher"
	"github.com/yacinedz/siyaqa/core/user"
	emailsvc "github.com/yacinedz/siyaqa/services/email"
	logsvc "github.com/yacinedz/siyaqa/services/logger"
	"github.com/yacinedz/siyaqa/storage/database"
	sqlxrepos "github.com/yacinedz/siyaqa/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("failed to close DB", err)
		}
	}()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// repositories
	userRepo := sqlxrepos.NewUserRepository(db)
	schoolRepo := sqlxrepos.NewSchoolRepository(db)
	teacherRepo := sqlxrepos.NewTeacherRepository(db)
	courseRepo := sqlxrepos.NewCourseRepository(db)
	scheduleRepo := sqlxrepos.NewScheduleRepository(db)
	examRepo := sqlxrepos.NewExamRepository(db)
	paymentRepo := sqlxrepos.NewPaymentRepository(db)
	carRepo := sqlxrepos.NewCarRepository(db)

	// services; courses record pending payments through the payment recorder
	usrSvc := user.NewService(userRepo, mailSvc, conf)
	schoolSvc := school.NewService(schoolRepo)
	teacherSvc := teacher.NewService(teacherRepo, userRepo, schoolSvc)
	courseSvc := course.NewService(courseRepo, userRepo, teacherRepo, schoolRepo, payment.NewRecorder(paymentRepo))
	scheduleSvc := schedule.NewService(scheduleRepo, courseSvc, teacherRepo)
	examSvc := exam.NewService(examRepo, courseSvc, teacherRepo)
	paymentSvc := payment.NewService(paymentRepo, courseSvc)
	carSvc := car.NewService(carRepo, schoolRepo)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:     conf.Server.Addr,
		Conf:        conf,
		Logger:      logger,
		Validate:    validate,
		Translator:  translator,
		UserSvc:     usrSvc,
		SchoolSvc:   schoolSvc,
		TeacherSvc:  teacherSvc,
		CourseSvc:   courseSvc,
		ScheduleSvc: scheduleSvc,
		ExamSvc:     examSvc,
		PaymentSvc:  paymentSvc,
		CarSvc:      carSvc,
		Shutdown:    func() { shutdown <- syscall.SIGTERM },
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
