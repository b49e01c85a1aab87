package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"notaria/config"
	"notaria/internal/pkg/cache"
	"notaria/internal/pkg/database"
	"notaria/internal/pkg/logger"
	"notaria/internal/pkg/token"

	"notaria/internal/api/process"
	"notaria/internal/api/router"
	"notaria/internal/api/user"
	"notaria/internal/repository/processrepo"
	"notaria/internal/repository/userrepo"
	"notaria/internal/service/processservice"
	"notaria/internal/service/userservice"
)

// @title Notaría 2.0 API
// @version 1.0
// @description API de gestión de procesos notariales con autenticación JWT.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuración e inicialización
	log.Println("⚡ Inicializando servicio Notaría 2.0...")

	// El archivo .env es opcional: en Docker las variables vienen del entorno.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: archivo .env no encontrado. Se usan solo las variables del entorno del sistema.")
	}

	cfg := config.LoadConfig()
	logg := logger.NewLogger(cfg.LogLevel)
	logg.Info("Configuración cargada.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexión con recursos de infraestructura

	// A. Base de datos (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("Fallo al conectar con la base de datos.", err)
	}
	defer db.Close()
	logg.Info("Conexión PostgreSQL establecida.", nil)

	// B. Cache (Redis)
	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		logg.Fatal("Fallo al conectar con Redis.", err)
	}
	logg.Info("Conexión Redis establecida.", nil)

	// C. Servicio de tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// 3. Inyección de dependencias: Repository -> Service -> Handler

	processRepo := processrepo.NewProcessRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, logg)
	processSvc := processservice.NewService(processRepo, logg)
	processHandler := process.NewHandler(processSvc, logg)

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, logg)
	userSvc := userservice.NewService(userRepo, processRepo, tokenSvc, logg)
	userHandler := user.NewHandler(userSvc, logg)

	// 4. Router y servidor HTTP

	r := router.NewRouter(processHandler, userHandler, tokenSvc, cacheClient, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Ejecución y graceful shutdown
	go func() {
		logg.Info("Servidor Notaría 2.0 escuchando.", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("El servidor falló.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logg.Info("Señal de término recibida. Apagando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error("Apagado del servidor forzado.", err)
	}

	logg.Info("Servidor finalizado correctamente.", nil)
}
