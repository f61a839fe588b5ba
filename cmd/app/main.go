package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tabiplan/cmd/fx/aifx"
	"tabiplan/cmd/fx/controllersfx"
	"tabiplan/cmd/fx/plannerfx"
	"tabiplan/cmd/fx/routingfx"
	"tabiplan/cmd/fx/storefx"
	"tabiplan/cmd/fx/wizardfx"
	"tabiplan/internal/api/controllers"
	"tabiplan/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	app := fx.New(
		aifx.Module,
		storefx.Module,
		plannerfx.Module,
		routingfx.Module,
		wizardfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	wizardController *controllers.WizardController,
	plansController *controllers.PlansController,
	directionsController *controllers.DirectionsController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, wizardController, plansController, directionsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	wizardController *controllers.WizardController,
	plansController *controllers.PlansController,
	directionsController *controllers.DirectionsController) {

	wizardGroup := r.Group("/wizard")
	wizardGroup.POST("/sessions", wizardController.StartSession)
	wizardGroup.GET("/sessions/:id", wizardController.GetSession)
	wizardGroup.POST("/sessions/:id/activity", wizardController.SubmitActivity)
	wizardGroup.POST("/sessions/:id/destinations", wizardController.LoadDestinations)
	wizardGroup.POST("/sessions/:id/destinations/more", wizardController.LoadMoreDestinations)
	wizardGroup.POST("/sessions/:id/destination", wizardController.SelectDestination)
	wizardGroup.POST("/sessions/:id/location", wizardController.SetUserLocation)
	wizardGroup.POST("/sessions/:id/details", wizardController.SubmitDetails)
	wizardGroup.POST("/sessions/:id/plan", wizardController.GeneratePlan)
	wizardGroup.POST("/sessions/:id/back", wizardController.Back)
	wizardGroup.POST("/sessions/:id/save", wizardController.SavePlan)

	plansGroup := r.Group("/plans")
	plansGroup.GET("", plansController.ListPlans)
	plansGroup.GET("/:id", plansController.GetPlan)
	plansGroup.DELETE("/:id", plansController.DeletePlan)
	plansGroup.GET("/:id/share", plansController.ShareLink)
	plansGroup.GET("/:id/share/qr", plansController.ShareQR)

	r.POST("/favorites/toggle", plansController.ToggleFavorite)
	r.GET("/favorites", plansController.ListFavorites)
	r.GET("/history", plansController.ListHistory)
	r.DELETE("/history", plansController.ClearHistory)

	r.POST("/directions", directionsController.GetDirections)
}
