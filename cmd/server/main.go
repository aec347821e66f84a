package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nanci1121/app-entradas/internal/config"
	"github.com/nanci1121/app-entradas/internal/database"
	"github.com/nanci1121/app-entradas/internal/handler"
	"github.com/nanci1121/app-entradas/internal/middleware"
	"github.com/nanci1121/app-entradas/internal/presence"
	"github.com/nanci1121/app-entradas/internal/queue"
	"github.com/nanci1121/app-entradas/internal/repository"
	"github.com/nanci1121/app-entradas/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis no disponible: rate limiting y presencia desactivados")
	}

	entradas := repository.NewEntradaRepo(db)
	externas := repository.NewExternaRepo(db)
	internas := repository.NewInternaRepo(db)
	tornos := repository.NewTornoRepo(db)
	usuarios := repository.NewUserRepo(db)

	entradaHandler := handler.NewEntradaHandler(entradas, cfg.JWTKey)
	entradaHandler.PublicarEvento = queue.PublishRegistroEntrada

	h := router.Handlers{
		Entradas: entradaHandler,
		Externas: handler.NewExternaHandler(externas, cfg.JWTKey),
		Internas: handler.NewInternaHandler(internas, usuarios, cfg.JWTKey),
		Tornos:   handler.NewTornoHandler(tornos, usuarios, cfg.JWTKey),
		Usuarios: handler.NewUsuarioHandler(usuarios, cfg.JWTKey),
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins(cfg.CORSOrigins),
		AllowHeaders: []string{echo.HeaderContentType, middleware.HeaderToken},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/ping"
		},
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("%s %s -> %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))

	router.Register(e, h, cfg.JWTKey)

	echo.NotFoundHandler = func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "mensaje": "Ruta no encontrada"})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go queue.StartRegistroConsumer()
	go presence.NewBridge(rdb, usuarios, cfg.JWTKey).Run(ctx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	if err := e.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// corsOrigins maps an empty allow-list to the wildcard Echo expects.
func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
