// File: skybook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"skybook/config"
	"skybook/database"
	bookingRepo "skybook/database/repository/booking"
	templateRepo "skybook/database/repository/template"
	"skybook/handlers"
	"skybook/middleware"
	"skybook/routes"
	"skybook/services/payment"
	"skybook/services/wizard"
	"skybook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	templates := templateRepo.NewMongoTemplateRepo()
	bookings := bookingRepo.NewMongoBookingRepo()

	// services.
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := wizard.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	invoiceClient := payment.NewPlisioClient(
		config.AppConfig.PlisioAPIKey,
		config.AppConfig.PlisioAPIURL,
		config.AppConfig.AppURL,
		logger,
	)

	wizardService := &wizard.DefaultWizardService{
		Templates: templates,
		Bookings:  bookings,
		Store:     sessionStore,
		Invoices:  invoiceClient,
		Logger:    logger,
		AppURL:    config.AppConfig.AppURL,
	}

	templateHandler := handlers.NewTemplateHandler(templates, logger)
	wizardHandler := handlers.NewWizardHandler(wizardService, logger)
	bookingHandler := handlers.NewBookingHandler(wizardService, logger)
	paymentHandler := handlers.NewPaymentHandler(wizardService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Template endpoints.
		GetTemplate: templateHandler.GetTemplate,

		// Wizard session endpoints.
		StartSession:       wizardHandler.StartSession,
		GetSession:         wizardHandler.GetSession,
		CancelSession:      wizardHandler.CancelSession,
		UpdateItinerary:    wizardHandler.UpdateItinerary,
		UpdatePassengers:   wizardHandler.UpdatePassengers,
		UpdateExtras:       wizardHandler.UpdateExtras,
		UpdatePayment:      wizardHandler.UpdatePayment,
		UpdateCardDetails:  wizardHandler.UpdateCardDetails,
		AddBillingPhone:    wizardHandler.AddBillingPhone,
		RemoveBillingPhone: wizardHandler.RemoveBillingPhone,
		Advance:            wizardHandler.Advance,
		Retreat:            wizardHandler.Retreat,
		JumpTo:             wizardHandler.JumpTo,
		ResetStep:          wizardHandler.ResetStep,
		Submit:             wizardHandler.Submit,

		// Booking endpoints.
		CreateBooking: bookingHandler.CreateBooking,

		// Payment endpoints.
		GatewayCallback: paymentHandler.GatewayCallback,
		PaymentSuccess:  paymentHandler.PaymentSuccess,
		PaymentFail:     paymentHandler.PaymentFail,
		PaymentCancel:   paymentHandler.PaymentCancel,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
