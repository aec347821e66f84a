package handler

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nanci1121/app-entradas/internal/middleware"
	"github.com/nanci1121/app-entradas/internal/model"
	"github.com/nanci1121/app-entradas/internal/repository"
	"github.com/nanci1121/app-entradas/internal/utils"
)

// TornoHandler serves the turnstile badge-record endpoints.
type TornoHandler struct {
	Repo     *repository.TornoRepo
	Usuarios *repository.UserRepo
	JWTKey   string
}

func NewTornoHandler(repo *repository.TornoRepo, usuarios *repository.UserRepo, jwtKey string) *TornoHandler {
	return &TornoHandler{Repo: repo, Usuarios: usuarios, JWTKey: jwtKey}
}

// This family folds both auth failures into one 401 message.
func (h *TornoHandler) autenticar(c echo.Context) (int, error) {
	token := c.Request().Header.Get(middleware.HeaderToken)
	valido, usuarioID := utils.ComprobarJWT(h.JWTKey, token)
	if !valido {
		return 0, c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "mensaje": "Token no válido o expirado."})
	}
	return usuarioID, nil
}

// GetTornosHoy handles GET /api/tornos/tornos_hoy: badge events of the requested day
// (query param "date", defaulting to today), paginated.
func (h *TornoHandler) GetTornosHoy(c echo.Context) error {
	dia := c.QueryParam("date")
	if dia == "" {
		dia = time.Now().UTC().Format("2006-01-02")
	}
	limit := 50
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		offset = v
	}

	tornos, err := h.Repo.Hoy(c.Request().Context(), dia, limit, offset)
	if err != nil {
		log.Printf("tornos: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error interno del servidor."})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "tornos": tornos})
}

// GetTorno handles GET /api/tornos/:id.
func (h *TornoHandler) GetTorno(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	torno, err := h.Repo.PorID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("No se encontró ningún registro de torno con el id %d.", id),
		})
	}
	if err != nil {
		log.Printf("tornos: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al obtener el registro del torno."})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "torno": torno})
}

// GetTornoCode handles POST /api/tornos/code: resolves the display name of an
// employee code.
func (h *TornoHandler) GetTornoCode(c echo.Context) error {
	var req codigoReq
	if err := c.Bind(&req); err != nil {
		req.Code = ""
	}
	usuario, err := h.Usuarios.PorCodigoEmpleado(c.Request().Context(), req.Code)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":  false,
			"msg": fmt.Sprintf("No se encontró un empleado con el código %s", req.Code),
		})
	}
	if err != nil {
		log.Printf("tornos: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error interno del servidor. Contacte al administrador."})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "usuario": echo.Map{"name": usuario.Name}})
}

// SetTorno handles POST /api/tornos/setTorno: records a badge event.  At least one
// date is required, chronology is enforced when both are present, and the
// employee code must belong to a registered user.
func (h *TornoHandler) SetTorno(c echo.Context) error {
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req model.NuevoTorno
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"ok":      false,
			"mensaje": "El código de empleado y al menos una fecha (entrada o salida) son obligatorios.",
		})
	}
	if req.CodigoEmpleado == "" || (req.FechaEntrada == "" && req.FechaSalida == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"ok":      false,
			"mensaje": "El código de empleado y al menos una fecha (entrada o salida) son obligatorios.",
		})
	}
	if fechasInvertidas(req.FechaEntrada, req.FechaSalida) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"ok":      false,
			"mensaje": "La fecha de entrada no puede ser posterior a la fecha de salida.",
		})
	}

	existe, err := h.Usuarios.ExisteCodigoEmpleado(c.Request().Context(), req.CodigoEmpleado)
	if err != nil {
		log.Printf("tornos: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al crear el registro."})
	}
	if !existe {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("El código de empleado %s no existe.", req.CodigoEmpleado),
		})
	}

	id, err := h.Repo.Crear(c.Request().Context(), req, usuarioID)
	if err != nil {
		log.Printf("tornos: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al crear el registro."})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"ok":       true,
		"torno_id": id,
		"mensaje":  "Registro de torno creado correctamente",
	})
}

// UpdateTorno handles PUT /api/tornos/:id: the partial update.
func (h *TornoHandler) UpdateTorno(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req model.ActualizarTorno
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Debe proporcionar al menos un campo para actualizar."})
	}
	vacio := (req.CodigoEmpleado == nil || *req.CodigoEmpleado == "") &&
		req.FechaEntrada == nil && req.FechaSalida == nil
	if vacio {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "Debe proporcionar al menos un campo para actualizar."})
	}

	err = h.Repo.Actualizar(c.Request().Context(), id, req, usuarioID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("No se encontró un registro de torno con el id %d.", id),
		})
	}
	if err != nil {
		log.Printf("tornos: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al actualizar el registro."})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"mensaje": fmt.Sprintf("Registro de torno con id %d actualizado correctamente.", id),
	})
}

// DeleteTorno handles DELETE /api/tornos/:id.
func (h *TornoHandler) DeleteTorno(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	err = h.Repo.Eliminar(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":      false,
			"mensaje": fmt.Sprintf("No se encontró un registro de torno con el id %d.", id),
		})
	}
	if err != nil {
		log.Printf("tornos: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al eliminar el registro."})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"mensaje": fmt.Sprintf("Registro de torno con id %d eliminado satisfactoriamente.", id),
	})
}

// ConsultaTorno handles POST /api/tornos/consulta: the badge-event search.
func (h *TornoHandler) ConsultaTorno(c echo.Context) error {
	req := model.ConsultaTornos{Limit: 100, Offset: 0}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "La fecha de inicio no puede ser posterior a la fecha de fin."})
	}
	if fechasInvertidas(req.FechaInicio, req.FechaFin) {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "La fecha de inicio no puede ser posterior a la fecha de fin."})
	}

	tornos, err := h.Repo.Consulta(c.Request().Context(), req)
	if err != nil {
		log.Printf("tornos: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "mensaje": "Error inesperado al realizar la consulta."})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(tornos), "tornos": tornos})
}

// fechasInvertidas reports whether both bounds parse and the first falls
// after the second.  Unparseable values are left for the date middleware.
func fechasInvertidas(desde, hasta string) bool {
	if desde == "" || hasta == "" {
		return false
	}
	d, okD := utils.ParseAndValidateDate(desde)
	h, okH := utils.ParseAndValidateDate(hasta)
	return okD && okH && d.After(h)
}
