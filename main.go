package main

import (
	"context"
	"facility-desk-backend/config"
	apiv1 "facility-desk-backend/controllers/v1"
	"facility-desk-backend/controllers/v1/dict"
	"facility-desk-backend/db"
	"facility-desk-backend/fiberlog"
	"facility-desk-backend/initializers"
	"facility-desk-backend/lib/ws"
	"facility-desk-backend/middleware"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // limit of 25MB
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := db.PingDB(); err != nil {
			log.WithError(err).Error("БД недоступна")
			return ctx.SendStatus(fiber.StatusServiceUnavailable)
		}
		return ctx.SendStatus(fiber.StatusOK)
	})

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	app.Mount("/api/v1", apiV1)

	//dict, без авторизации
	dicts := apiV1.Group("/dict")
	dict.InitDictApiRouters(dicts)

	secured := apiV1.Group("", middleware.AuthorizationRequired(), middleware.IdentityRequired(), middleware.RbacMiddleware())
	apiv1.InitUserApiRouters(secured)
	apiv1.InitIssueApiRouters(secured)
	apiv1.InitAssignmentApiRouters(secured)
	apiv1.InitRoleRequestApiRouters(secured)
	apiv1.InitNotificationApiRouters(secured)
	apiv1.InitFileApiRouters(secured)
	ws.InitWs(secured)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
