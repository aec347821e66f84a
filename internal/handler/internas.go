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

// InternaHandler serves the employee-departure endpoints.  Usuarios is needed
// for the employee-code lookup, which resolves against the users table.
type InternaHandler struct {
	Repo     *repository.InternaRepo
	Usuarios *repository.UserRepo
	JWTKey   string
}

func NewInternaHandler(repo *repository.InternaRepo, usuarios *repository.UserRepo, jwtKey string) *InternaHandler {
	return &InternaHandler{Repo: repo, Usuarios: usuarios, JWTKey: jwtKey}
}

// This family reports auth failures under "msg"; the other resources use
// "mensaje".  Both spellings are load-bearing for existing clients.
func (h *InternaHandler) autenticar(c echo.Context) (int, error) {
	token := c.Request().Header.Get(middleware.HeaderToken)
	if token == "" {
		return 0, c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "msg": "Token no proporcionado"})
	}
	valido, usuarioID := utils.ComprobarJWT(h.JWTKey, token)
	if !valido {
		return 0, c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "msg": "Token inválido"})
	}
	return usuarioID, nil
}

// GetInternasHoy handles GET /api/internas/internas_hoy: today's departures.
func (h *InternaHandler) GetInternasHoy(c echo.Context) error {
	internas, err := h.Repo.Hoy(c.Request().Context())
	if err != nil {
		log.Printf("internas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error interno del servidor. Por favor, contacte al administrador."})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(internas), "internas": internas})
}

// GetInterna handles GET /api/internas/:id.
func (h *InternaHandler) GetInterna(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	interna, err := h.Repo.PorID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusOK, echo.Map{"id": id, "mensaje": fmt.Sprintf("empleado con id %d no se encuentra", id)})
	}
	if err != nil {
		log.Printf("internas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al obtener interna"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "interna": interna})
}

type codigoReq struct {
	Code string `json:"code"`
}

// GetInternaCode handles POST /api/internas/code: resolves a user row by its
// employee code.  The hit answers with the bare user payload.
func (h *InternaHandler) GetInternaCode(c echo.Context) error {
	var req codigoReq
	if err := c.Bind(&req); err != nil {
		req.Code = ""
	}
	usuario, err := h.Usuarios.PorCodigoEmpleado(c.Request().Context(), req.Code)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"ok":              false,
			"codigo_empleado": req.Code,
			"mensaje":         fmt.Sprintf("empleado con codigo empleado %s no se encuentra", req.Code),
		})
	}
	if err != nil {
		log.Printf("internas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al obtener código"})
	}
	return c.JSON(http.StatusOK, echo.Map{"usuario": usuario})
}

// SetInterna handles POST /api/internas/new_Interna: registers an employee departure
// with no return time yet and echoes the generated id.
func (h *InternaHandler) SetInterna(c echo.Context) error {
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req model.NuevaInterna
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "entrada": "datos empleado enviados nulos"})
	}
	if req.CodigoEmpleado == "" || req.NombrePersona == "" || req.FechaSalida == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "entrada": "datos empleado enviados nulos"})
	}

	id, err := h.Repo.Crear(c.Request().Context(), req, usuarioID)
	if err != nil {
		log.Printf("internas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al crear interna"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "interna": id})
}

type retornoReq struct {
	ID           *int   `json:"id"`
	FechaEntrada string `json:"fechaEntrada"`
}

// UpdatePorteriaInterna handles PUT /api/internas/porteria: the gatehouse
// records the employee's return, filling fecha_entrada.
func (h *InternaHandler) UpdatePorteriaInterna(c echo.Context) error {
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req retornoReq
	if err := c.Bind(&req); err != nil || req.ID == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "msg": "No se encontró interna con id 0"})
	}

	err = h.Repo.RegistrarRetorno(c.Request().Context(), *req.ID, req.FechaEntrada, usuarioID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "msg": fmt.Sprintf("No se encontró interna con id %d", *req.ID)})
	}
	if err != nil {
		log.Printf("internas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al actualizar portería"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "mensaje": "Entrada empleado actualizada correctamente"})
}

// ConsultaInterna handles PUT /api/internas/buscar_interna: the dynamic departure
// search over the fecha_salida range.
func (h *InternaHandler) ConsultaInterna(c echo.Context) error {
	req := model.BusquedaInternas{Limit: 100, Offset: 0}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "El campo fecha_entrada es obligatorio para la búsqueda."})
	}
	if strings.TrimSpace(req.FechaEntrada) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "mensaje": "El campo fecha_entrada es obligatorio para la búsqueda."})
	}

	internas, err := h.Repo.Buscar(c.Request().Context(), req)
	if err != nil {
		log.Printf("internas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error interno del servidor"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "cantidad": len(internas), "internas": internas})
}

// UpdateInternas handles PUT /api/internas/:id: the full-row update.
func (h *InternaHandler) UpdateInternas(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	usuarioID, err := h.autenticar(c)
	if err != nil {
		return err
	}

	var req model.ActualizarInterna
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "entrada": "datos empleado enviados nulos"})
	}

	err = h.Repo.Actualizar(c.Request().Context(), id, req, usuarioID)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "mensaje": fmt.Sprintf("No existe registro con id %d", id)})
	}
	if err != nil {
		log.Printf("internas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error interno del servidor"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "mensaje": fmt.Sprintf("Registro %d modificado satisfactoriamente", id)})
}

// DeleteInterna handles DELETE /api/internas/interna/:id.
func (h *InternaHandler) DeleteInterna(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if _, err := h.autenticar(c); err != nil {
		return err
	}

	err = h.Repo.Eliminar(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		// Historic contract: deleting an absent departure answers 200.
		return c.JSON(http.StatusOK, echo.Map{"id": id, "mensaje": fmt.Sprintf("Persona interna con id %d no se encuentra", id)})
	}
	if err != nil {
		log.Printf("internas: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al eliminar interna"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "mensaje": fmt.Sprintf("Salida empleado %d eliminada satisfactoriamente", id)})
}
