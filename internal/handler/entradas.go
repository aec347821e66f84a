package handler

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nanci1121/app-entradas/internal/middleware"
	"github.com/nanci1121/app-entradas/internal/model"
	"github.com/nanci1121/app-entradas/internal/queue"
	"github.com/nanci1121/app-entradas/internal/repository"
	"github.com/nanci1121/app-entradas/internal/utils"
)

// EntradaHandler bundles the dependencies of the vehicle-entry endpoints.
// PublicarEvento, when set, receives a gate event after a successful create
// or security clearance; failures there never affect the request.
type EntradaHandler struct {
	Repo           *repository.EntradaRepo
	JWTKey         string
	PublicarEvento func(context.Context, queue.RegistroEntradaEvent) error
}

func NewEntradaHandler(repo *repository.EntradaRepo, jwtKey string) *EntradaHandler {
	if repo == nil {
		panic("nil repository passed to NewEntradaHandler")
	}
	return &EntradaHandler{Repo: repo, JWTKey: jwtKey}
}

// autenticar re-checks the bearer token inside write handlers.  The wording
// here ("Token no proporcionado" / "Token inválido", both 401) differs from
// the route-level gate on purpose: each family keeps its historic contract.
func (h *EntradaHandler) autenticar(c echo.Context) (int, error) {
	token := c.Request().Header.Get(middleware.HeaderToken)
	if token == "" {
		return 0, c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "mensaje": "Token no proporcionado"})
	}
	valido, usuarioID := utils.ComprobarJWT(h.JWTKey, token)
	if !valido {
		return 0, c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "mensaje": "Token inválido"})
	}
	return usuarioID, nil
}

// parseID rejects non-numeric path ids explicitly instead of letting them
// reach the database.
func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, c.JSON(http.StatusBadRequest, echo.Map{
			"ok":      false,
			"mensaje": "El ID proporcionado no es un número válido.",
		})
	}
	return id, nil
}

func (h *EntradaHandler) publicar(ev queue.RegistroEntradaEvent) {
	if h.PublicarEvento == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.PublicarEvento(ctx, ev); err != nil {
			log.Printf("entradas: publicar evento %s falló: %v", ev.Evento, err)
		}
	}()
}

// GetEntradas handles GET /api/entradas: the vehicles currently inside,
// combining recent entries with vehicles that have not recorded an exit.
func (h *EntradaHandler) GetEntradas(c echo.Context) error {
	entradas, err := h.Repo.Actuales(c.Request().Context())
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al obtener las entradas"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(entradas), "entradas": entradas})
}

// GetEntradasAlmacen handles GET /api/entradas/almacen: entries pending
// warehouse reception.
func (h *EntradaHandler) GetEntradasAlmacen(c echo.Context) error {
	entradas, err := h.Repo.Almacen(c.Request().Context())
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al obtener entradas de almacén"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(entradas), "entradas": entradas})
}

// GetEntradasPorteria handles GET /api/entradas/porteria: received entries
// awaiting security clearance.
func (h *EntradaHandler) GetEntradasPorteria(c echo.Context) error {
	entradas, err := h.Repo.Porteria(c.Request().Context())
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al obtener entradas de portería"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(entradas), "entradas": entradas})
}

// GetEntrada handles GET /api/entradas/:id.  A missing row answers with the
// historic bare informational payload, not a 404.
func (h *EntradaHandler) GetEntrada(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	entrada, err := h.Repo.PorID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusOK, echo.Map{"id": id, "mensaje": fmt.Sprintf("entrada con id %d no se encuentra", id)})
	}
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al obtener la entrada"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "entrada": entrada})
}

// GetEntradaByMatricula handles GET /api/entradas/by-matricula/:matricula,
// returning the latest entry for the upper-cased plate.
func (h *EntradaHandler) GetEntradaByMatricula(c echo.Context) error {
	matricula := c.Param("matricula")
	entrada, err := h.Repo.PorMatricula(c.Request().Context(), strings.ToUpper(matricula))
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("No se encontró entrada para la matrícula %s", matricula),
		})
	}
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado, contacte al administrador."})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "entrada": entrada})
}

// SetEntrada handles POST /api/entradas: registers a vehicle arrival with no
// exit yet and echoes the freshly reconstructed row.
func (h *EntradaHandler) SetEntrada(c echo.Context) error {
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req model.NuevaEntrada
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Datos enviados nulos o incompletos"})
	}
	if req.NombreConductor == nil || req.Firma == nil || req.Empresa == nil ||
		req.Matricula == nil || req.ClaseCarga == nil || req.FechaEntrada == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Datos enviados nulos o incompletos"})
	}

	creada, err := h.Repo.Crear(c.Request().Context(),
		*req.NombreConductor, *req.Empresa, *req.Matricula, *req.ClaseCarga, *req.FechaEntrada, *req.Firma, usuarioID)
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al crear la entrada"})
	}

	h.publicar(queue.RegistroEntradaEvent{
		EntradaID:       creada.ID,
		Evento:          queue.EventoCreada,
		NombreConductor: creada.NombreConductor,
		Empresa:         creada.Empresa,
		Matricula:       creada.Matricula,
		FechaEntrada:    *req.FechaEntrada,
		Usuario:         usuarioID,
		RegistradoEn:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "entrada": creada})
}

type recepcionReq struct {
	ID        *int  `json:"id"`
	Recepcion *bool `json:"recepcion"`
}

// UpdateRecepcionEntrada handles PUT /api/entradas/recepcion: the warehouse
// confirms it received the vehicle.
func (h *EntradaHandler) UpdateRecepcionEntrada(c echo.Context) error {
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req recepcionReq
	if err := c.Bind(&req); err != nil || req.ID == nil || req.Recepcion == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Los campos id y recepcion son obligatorios."})
	}

	err = h.Repo.ActualizarRecepcion(c.Request().Context(), *req.ID, *req.Recepcion, usuarioID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("No se encontró ninguna entrada con el id %d.", *req.ID),
		})
	}
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al actualizar la entrada."})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"mensaje": "El estado de recepción de la entrada ha sido actualizado correctamente.",
	})
}

type porteriaEntradaReq struct {
	ID         *int    `json:"id"`
	Vigilancia *bool   `json:"vigilancia"`
	Fecha      *string `json:"fecha"`
}

// UpdatePorteriaEntrada handles PUT /api/entradas/porteria: security records
// the vehicle's departure, setting the exit timestamp.
func (h *EntradaHandler) UpdatePorteriaEntrada(c echo.Context) error {
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req porteriaEntradaReq
	if err := c.Bind(&req); err != nil || req.ID == nil || req.Vigilancia == nil || req.Fecha == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Los campos id, vigilancia y fecha son obligatorios."})
	}

	err = h.Repo.ActualizarPorteria(c.Request().Context(), *req.ID, *req.Vigilancia, *req.Fecha, usuarioID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("No se encontró ninguna entrada con el id %d.", *req.ID),
		})
	}
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al actualizar la entrada de portería."})
	}

	h.publicar(queue.RegistroEntradaEvent{
		EntradaID:    *req.ID,
		Evento:       queue.EventoSalida,
		FechaSalida:  *req.Fecha,
		Usuario:      usuarioID,
		RegistradoEn: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"mensaje": "El estado de portería de la entrada ha sido actualizado correctamente.",
	})
}

// GetEntradasSelect handles PUT /api/entradas/select: the dynamic filtered
// search.  The lower date bound is mandatory; the upper bound defaults to
// the database clock.
func (h *EntradaHandler) GetEntradasSelect(c echo.Context) error {
	req := model.BusquedaEntradas{Limit: 100, Offset: 0}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "El campo fecha_entrada1 es obligatorio para la búsqueda."})
	}
	if strings.TrimSpace(req.FechaEntrada1) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "El campo fecha_entrada1 es obligatorio para la búsqueda."})
	}

	entradas, err := h.Repo.Buscar(c.Request().Context(), req)
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado en la selección de entradas."})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(entradas), "entradas": entradas})
}

// UpdateEntradas handles PUT /api/entradas/:id: the full-row update.
func (h *EntradaHandler) UpdateEntradas(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req model.NuevaEntrada
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Datos enviados nulos o incompletos"})
	}

	err = h.Repo.Actualizar(c.Request().Context(), id, req, usuarioID)
	if err == sql.ErrNoRows {
		// Historic contract: this path answers 200 with a bare payload.
		return c.JSON(http.StatusOK, echo.Map{"id": id, "mensaje": fmt.Sprintf("Entrada con id %d no se encuentra", id)})
	}
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al actualizar la entrada"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "mensaje": fmt.Sprintf("Entrada %d modificada satisfactoriamente", id)})
}

// DeleteEntrada handles DELETE /api/entradas/:id, returning the snapshot of
// the deleted row.
func (h *EntradaHandler) DeleteEntrada(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	entrada, err := h.Repo.Eliminar(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("No se encontró ninguna entrada con el id %d.", id),
		})
	}
	if err != nil {
		log.Printf("entradas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al eliminar la entrada."})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"mensaje": "La entrada ha sido eliminada correctamente.",
		"entrada": entrada,
	})
}
