package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/lernfeld/kursadmin/apps/api/echo"
	"github.com/lernfeld/kursadmin/core"
	"github.com/lernfeld/kursadmin/core/booking"
	"github.com/lernfeld/kursadmin/core/city"
	"github.com/lernfeld/kursadmin/core/course"
	"github.com/lernfeld/kursadmin/core/instructor"
	"github.com/lernfeld/kursadmin/core/inventory"
	"github.com/lernfeld/kursadmin/core/location"
	"github.com/lernfeld/kursadmin/core/user"
	dummymail "github.com/lernfeld/kursadmin/services/email/dummy"
	sendgridmail "github.com/lernfeld/kursadmin/services/email/sendgrid"
	logsvc "github.com/lernfeld/kursadmin/services/logger"
	"github.com/lernfeld/kursadmin/storage/database"
	inmemdb "github.com/lernfeld/kursadmin/storage/database/inmem"
	sqlxrepos "github.com/lernfeld/kursadmin/storage/database/sqlx"
	filestore "github.com/lernfeld/kursadmin/storage/files"
)

type repositories struct {
	user       user.Repository
	course     course.Repository
	booking    booking.Repository
	location   location.Repository
	instructor instructor.Repository
	inventory  inventory.Repository
	city       city.Repository
}

func main() {
	conf := core.Conf

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up storage; an unset database name keeps everything in memory
	// with the development fixtures loaded
	var repos repositories
	if conf.Database.Name == "" {
		db := inmemdb.NewDB()
		if err := inmemdb.Seed(db); err != nil {
			logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
		}
		repos = repositories{
			user:       inmemdb.NewUserRepository(db),
			course:     inmemdb.NewCourseRepository(db),
			booking:    inmemdb.NewBookingRepository(db),
			location:   inmemdb.NewLocationRepository(db),
			instructor: inmemdb.NewInstructorRepository(db),
			inventory:  inmemdb.NewInventoryRepository(db),
			city:       inmemdb.NewCityRepository(db),
		}
	} else {
		db, err := setUpDB(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				logger.Error("closing database", err)
			}
		}()

		dbx := sqlx.NewDb(db, conf.Database.Engine)
		repos = repositories{
			user:       sqlxrepos.NewUserRepository(dbx),
			course:     sqlxrepos.NewCourseRepository(dbx),
			booking:    sqlxrepos.NewBookingRepository(dbx),
			location:   sqlxrepos.NewLocationRepository(dbx),
			instructor: sqlxrepos.NewInstructorRepository(dbx),
			inventory:  sqlxrepos.NewInventoryRepository(dbx),
			city:       sqlxrepos.NewCityRepository(dbx),
		}
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = dummymail.NewService(conf.AppName, conf.DefaultFromEmail.Address)
	} else {
		mailSvc = sendgridmail.NewService(conf.SendgridApiKey, conf.AppName, conf.DefaultFromEmail.Address, logger)
	}

	files, err := filestore.NewStore("var/documents")
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up file store: %v", err), err)
	}

	usrSvc := user.NewService(repos.user, mailSvc)

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// expose important info under /debug/vars
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// start API server
	server := echoapi.NewServer(
		&echoapi.Options{
			Address:       conf.Server.Address(),
			Logger:        logger,
			UserSvc:       usrSvc,
			CourseSvc:     course.NewService(repos.course, repos.user),
			BookingSvc:    booking.NewService(repos.booking, repos.user, repos.course, mailSvc),
			LocationSvc:   location.NewService(repos.location),
			InstructorSvc: instructor.NewService(repos.instructor, files),
			InventorySvc:  inventory.NewService(repos.inventory),
			CitySvc:       city.NewService(repos.city),
		},
	)

	go server.Start()

	// graceful shutdown
	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
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
