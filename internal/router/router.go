package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nanci1121/app-entradas/internal/handler"
	"github.com/nanci1121/app-entradas/internal/middleware"
)

// Handlers groups every resource handler the API mounts.
type Handlers struct {
	Entradas *handler.EntradaHandler
	Externas *handler.ExternaHandler
	Internas *handler.InternaHandler
	Tornos   *handler.TornoHandler
	Usuarios *handler.UsuarioHandler
}

// Register mounts all routes under /api.  Every resource route passes the
// token gate; the date middleware guards the per-route timestamp fields
// before the handler ever binds the body.
func Register(e *echo.Echo, h Handlers, jwtKey string) {
	e.GET("/api/ping", handler.Ping)

	jwt := middleware.ValidarJWT(jwtKey)

	// Auth and user administration, mounted directly under /api.
	e.POST("/api/login", h.Usuarios.Login, middleware.ValidarCampos(
		middleware.EsEmail("email", "El email es obligatorio"),
		middleware.Requerido("password", "El password es obligatorio"),
	))
	e.POST("/api/login/new", h.Usuarios.CreateUsuario, middleware.ValidarCampos(
		middleware.Requerido("name", "El nombre es obligatorio"),
		middleware.EsEmail("email", "El email es obligatorio"),
		middleware.Requerido("password", "El password es obligatorio"),
	))
	e.GET("/api/login/renew", h.Usuarios.RenewToken, jwt)
	e.GET("/api/users", h.Usuarios.TodosUsuarios, jwt)
	e.GET("/api/users/:id", h.Usuarios.UsuarioID, jwt)
	e.PUT("/api/users/:id", h.Usuarios.UpdateUsuario, jwt, middleware.ValidarCampos(
		middleware.Requerido("name", "El nombre es obligatorio"),
		middleware.EsEmail("email", "El email es obligatorio"),
		middleware.Requerido("password", "El password es obligatorio"),
	))
	e.DELETE("/api/users/:id", h.Usuarios.DeleteUsuario, jwt)

	entradas := e.Group("/api/entradas")
	entradas.GET("", h.Entradas.GetEntradas, jwt)
	entradas.GET("/almacen", h.Entradas.GetEntradasAlmacen, jwt)
	entradas.GET("/porteria", h.Entradas.GetEntradasPorteria, jwt)
	entradas.GET("/by-matricula/:matricula", h.Entradas.GetEntradaByMatricula, jwt)
	entradas.GET("/:id", h.Entradas.GetEntrada, jwt)
	entradas.POST("", h.Entradas.SetEntrada, jwt, middleware.ValidateDates("fecha_entrada"))
	entradas.PUT("/recepcion", h.Entradas.UpdateRecepcionEntrada, jwt)
	entradas.PUT("/porteria", h.Entradas.UpdatePorteriaEntrada, jwt, middleware.ValidateDates("fecha"))
	entradas.PUT("/select", h.Entradas.GetEntradasSelect, jwt, middleware.ValidateDates("fecha_entrada1", "fecha_entrada2"))
	entradas.PUT("/:id", h.Entradas.UpdateEntradas, jwt, middleware.ValidateDates("fecha_entrada", "fecha_salida"))
	entradas.DELETE("/:id", h.Entradas.DeleteEntrada, jwt)

	externas := e.Group("/api/externas")
	externas.POST("/new_externa", h.Externas.SetExterna, jwt)
	externas.GET("/externas_hoy", h.Externas.GetExternasHoy, jwt)
	externas.GET("/porteria", h.Externas.GetExternasPorteria, jwt)
	externas.GET("/by-nombreConductor/:nombre", h.Externas.GetExternaByNombre, jwt)
	externas.GET("/:id", h.Externas.GetExterna, jwt)
	externas.PUT("/porteria", h.Externas.UpdatePorteriaExterna, jwt)
	externas.PUT("/buscar_externa", h.Externas.BuscarExternas, jwt, middleware.ValidateDates("fechaEntrada", "fechaEntrada2"))
	externas.PUT("/:id", h.Externas.UpdateExternas, jwt)
	externas.DELETE("/externa/:id", h.Externas.DeleteExterna, jwt)

	internas := e.Group("/api/internas")
	internas.POST("/new_Interna", h.Internas.SetInterna, jwt, middleware.ValidateDates("fechaSalida"))
	internas.GET("/internas_hoy", h.Internas.GetInternasHoy, jwt)
	internas.GET("/:id", h.Internas.GetInterna, jwt)
	internas.POST("/code", h.Internas.GetInternaCode, jwt)
	internas.PUT("/porteria", h.Internas.UpdatePorteriaInterna, jwt, middleware.ValidateDates("fechaEntrada"))
	internas.PUT("/buscar_interna", h.Internas.ConsultaInterna, jwt, middleware.ValidateDates("fechaSalida", "fechaSalida2"))
	internas.PUT("/:id", h.Internas.UpdateInternas, jwt, middleware.ValidateDates("fechaEntrada", "fechaSalida"))
	internas.DELETE("/interna/:id", h.Internas.DeleteInterna, jwt)

	tornos := e.Group("/api/tornos")
	tornos.POST("/setTorno", h.Tornos.SetTorno, jwt, middleware.ValidateDates("fechaEntrada", "fechaSalida"))
	tornos.GET("/tornos_hoy", h.Tornos.GetTornosHoy, jwt)
	tornos.GET("/:id", h.Tornos.GetTorno, jwt)
	tornos.POST("/code", h.Tornos.GetTornoCode, jwt)
	tornos.POST("/consulta", h.Tornos.ConsultaTorno, jwt, middleware.ValidateDates("fechaInicio", "fechaFin"))
	tornos.PUT("/:id", h.Tornos.UpdateTorno, jwt, middleware.ValidateDates("fechaEntrada", "fechaSalida"))
	tornos.DELETE("/:id", h.Tornos.DeleteTorno, jwt)
}
