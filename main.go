package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}
}

func setupRouter(client *mongo.Client, srvCfg config.ServerConfig, notesService *usecase.NotesService) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(srvCfg.CORSOrigin))
	router.Use(middleware.RequestSizeLimiter(srvCfg.MaxBodyBytes))

	healthHandler := handler.NewHealthHandler(client)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.NoStoreMiddleware())
	{
		notes := api.Group("/notes")
		{
			notes.GET("", func(c *gin.Context) {
				handler.GetNotesHandler(c, notesService)
			})
			notes.POST("", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})
		}
	}

	// Unknown routes are logged and fall through with a bare 404
	router.NoRoute(func(c *gin.Context) {
		log.Printf("404 route: %s %s", c.Request.Method, c.Request.URL.Path)
		c.Status(http.StatusNotFound)
	})

	return router
}

func main() {
	dbCfg := config.LoadDatabaseConfig()
	srvCfg := config.LoadServerConfig()

	// Acquire the store connection up front; refuse to start without it
	client, err := config.ConnectMongo(context.Background(), dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := repository.SetupIndexes(client.Database(dbCfg.DatabaseName)); err != nil {
		log.Printf("Failed to set up indexes: %v", err)
	}

	notesRepo := repository.GetNotesRepo(client, dbCfg.DatabaseName)
	notesService := &usecase.NotesService{
		NotesRepo: notesRepo,
	}

	router := setupRouter(client, srvCfg, notesService)

	srv := &http.Server{
		Addr:    ":" + srvCfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	log.Println("Server shutdown complete")
}
