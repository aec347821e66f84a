package handler

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nanci1121/app-entradas/internal/middleware"
	"github.com/nanci1121/app-entradas/internal/model"
	"github.com/nanci1121/app-entradas/internal/repository"
	"github.com/nanci1121/app-entradas/internal/utils"
)

// ExternaHandler serves the external-visitor endpoints.
type ExternaHandler struct {
	Repo   *repository.ExternaRepo
	JWTKey string
}

func NewExternaHandler(repo *repository.ExternaRepo, jwtKey string) *ExternaHandler {
	return &ExternaHandler{Repo: repo, JWTKey: jwtKey}
}

func (h *ExternaHandler) autenticar(c echo.Context) (int, error) {
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

// GetExternasHoy handles GET /api/externas/externas_hoy: today's visits.
func (h *ExternaHandler) GetExternasHoy(c echo.Context) error {
	externas, err := h.Repo.Hoy(c.Request().Context())
	if err != nil {
		log.Printf("externas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al obtener externas del día"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(externas), "externas": externas})
}

// GetExternasPorteria handles GET /api/externas/porteria: visits still
// waiting for reception.
func (h *ExternaHandler) GetExternasPorteria(c echo.Context) error {
	externas, err := h.Repo.Porteria(c.Request().Context())
	if err != nil {
		log.Printf("externas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al obtener externas de portería"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(externas), "externas": externas})
}

// GetExterna handles GET /api/externas/:id.  Missing rows keep the historic
// 200 informational payload.
func (h *ExternaHandler) GetExterna(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	externa, err := h.Repo.PorID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusOK, echo.Map{"id": id, "mensaje": fmt.Sprintf("persona externa con id %d no se encuentra", id)})
	}
	if err != nil {
		log.Printf("externas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al obtener externa"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "externa": externa})
}

// GetExternaByNombre handles GET /api/externas/by-nombreConductor/:nombreConductor: the latest
// visit for a matching person name.
func (h *ExternaHandler) GetExternaByNombre(c echo.Context) error {
	nombre := c.Param("nombre")
	externa, err := h.Repo.PorNombre(c.Request().Context(), nombre)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("No se encontraron entradas para el conductor: %s", nombre),
		})
	}
	if err != nil {
		log.Printf("externas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al buscar la última entrada."})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "externa": externa})
}

// SetExterna handles POST /api/externas/new_externa: checks a visitor in.  The response
// carries only the generated id under "externa".
func (h *ExternaHandler) SetExterna(c echo.Context) error {
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req model.ExternaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Datos de persona exterior incompletos"})
	}
	d := req.Normalizar()
	if d.NombrePersona == "" || d.EmpresaExterior == "" || d.Peticionario == "" ||
		d.TelefonoPersona == "" || d.Firma == "" || d.FechaEntrada == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Datos de persona exterior incompletos"})
	}

	id, err := h.Repo.Crear(c.Request().Context(), d, usuarioID)
	if err != nil {
		log.Printf("externas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al guardar la externa"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "externa": id})
}

type porteriaExternaReq struct {
	ID          *int    `json:"id"`
	Recepcion   *bool   `json:"recepcion"`
	FechaSalida *string `json:"fecha_salida"`
}

// UpdatePorteriaExterna handles PUT /api/externas/porteria: reception signs
// the visitor out and the persisted row is echoed back.
func (h *ExternaHandler) UpdatePorteriaExterna(c echo.Context) error {
	var req porteriaExternaReq
	if err := c.Bind(&req); err != nil || req.ID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "El campo id es obligatorio"})
	}
	if req.Recepcion == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "El campo recepcion es obligatorio"})
	}

	salida := ""
	if req.FechaSalida != nil {
		salida = *req.FechaSalida
	}
	usuarioID, _ := middleware.UsuarioID(c)
	externa, err := h.Repo.ActualizarPorteria(c.Request().Context(), *req.ID, *req.Recepcion, salida, usuarioID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("Empresa exterior con id %d no se encuentra", *req.ID),
		})
	}
	if err != nil {
		log.Printf("externas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al actualizar la entrada de portería"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"mensaje": "Entrada de portería actualizada satisfactoriamente",
		"externa": externa,
	})
}

// BuscarExternas handles PUT /api/externas/buscar_externa: the dynamic visit search.
func (h *ExternaHandler) BuscarExternas(c echo.Context) error {
	var req model.ExternaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "El campo fecha_entrada es obligatorio para la búsqueda."})
	}
	d := req.Normalizar()
	if strings.TrimSpace(d.FechaEntrada) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "El campo fecha_entrada es obligatorio para la búsqueda."})
	}

	limit, offset := req.Limit, req.Offset
	if limit <= 0 {
		limit = 100
	}
	externas, err := h.Repo.Buscar(c.Request().Context(), d, limit, offset)
	if err != nil {
		log.Printf("externas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado en la selección de externas."})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(externas), "externas": externas})
}

// UpdateExternas handles PUT /api/externas/:id: the full-row update.
func (h *ExternaHandler) UpdateExternas(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req model.ExternaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Datos de persona exterior incompletos"})
	}

	err = h.Repo.Actualizar(c.Request().Context(), id, req.Normalizar(), usuarioID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("Empresa exterior con id %d no se encuentra", id),
		})
	}
	if err != nil {
		log.Printf("externas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al modificar la externa"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"mensaje": fmt.Sprintf("Empresa exterior con id: %d modificada satisfactoriamente", id),
	})
}

// DeleteExterna handles DELETE /api/externas/externa/:id.
func (h *ExternaHandler) DeleteExterna(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if _, err := h.autenticar(c); err != nil {
		return err
	}

	err = h.Repo.Eliminar(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		// Historic contract: deleting an absent visit answers 200.
		return c.JSON(http.StatusOK, echo.Map{"id": id, "mensaje": fmt.Sprintf("Persona externa con id %d no se encuentra", id)})
	}
	if err != nil {
		log.Printf("externas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error al eliminar externa"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "mensaje": fmt.Sprintf("Persona externa %d eliminada satisfactoriamente", id)})
}
