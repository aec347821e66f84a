package handler

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nanci1121/app-entradas/internal/middleware"
	"github.com/nanci1121/app-entradas/internal/repository"
	"github.com/nanci1121/app-entradas/internal/utils"
)

// UsuarioHandler serves authentication and user administration.
type UsuarioHandler struct {
	Repo   *repository.UserRepo
	JWTKey string
}

func NewUsuarioHandler(repo *repository.UserRepo, jwtKey string) *UsuarioHandler {
	return &UsuarioHandler{Repo: repo, JWTKey: jwtKey}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/login: verifies the credentials and issues a
// fresh token alongside the full user row.
func (h *UsuarioHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "msg": "Hable con el administrador"})
	}

	usuario, err := h.Repo.PorEmail(c.Request().Context(), req.Email)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{
			"ok":    false,
			"email": req.Email,
			"msg":   fmt.Sprintf("usuario con email %s no se encuentra", req.Email),
		})
	}
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Hable con el administrador"})
	}

	if !utils.VerifyPassword(usuario.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"ok":    false,
			"email": req.Email,
			"msg":   "la contraseña no es válida",
		})
	}

	token, err := utils.GenerarJWT(h.JWTKey, usuario.ID)
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Hable con el administrador"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "usuario": usuario, "token": token})
}

type nuevoUsuarioReq struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Type           string  `json:"type"`
	CodigoEmpleado *string `json:"codigo_empleado"`
}

// CreateUsuario handles POST /api/login/new: registers a user and logs it
// straight in.
func (h *UsuarioHandler) CreateUsuario(c echo.Context) error {
	var req nuevoUsuarioReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al crear usuario"})
	}
	if req.Type == "" {
		req.Type = "user"
	}

	existe, err := h.Repo.ExisteEmail(c.Request().Context(), req.Email)
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al crear usuario"})
	}
	if existe {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"ok":    false,
			"email": req.Email,
			"msg":   fmt.Sprintf("Usuario con email: %s ya existe no se puede insertar", req.Email),
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al crear usuario"})
	}

	id, err := h.Repo.Crear(c.Request().Context(), req.Name, req.Email, hash, req.Type, req.CodigoEmpleado)
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al crear usuario"})
	}

	token, err := utils.GenerarJWT(h.JWTKey, id)
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al crear usuario"})
	}

	usuario, err := h.Repo.PorID(c.Request().Context(), id)
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al crear usuario"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "usuario": usuario, "token": token})
}

// RenewToken handles GET /api/login/renew: reissues a token for the user
// already authenticated by the route gate.
func (h *UsuarioHandler) RenewToken(c echo.Context) error {
	id, ok := middleware.UsuarioID(c)
	if !ok || id == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "msg": "Usuario no autenticado"})
	}

	token, err := utils.GenerarJWT(h.JWTKey, id)
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al renovar token"})
	}

	usuario, err := h.Repo.PorID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "msg": "Usuario no encontrado"})
	}
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al renovar token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "usuario": usuario, "token": token})
}

// TodosUsuarios handles GET /api/users.
func (h *UsuarioHandler) TodosUsuarios(c echo.Context) error {
	usuarios, err := h.Repo.Todos(c.Request().Context())
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al obtener usuarios"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "usuarios": usuarios})
}

// UsuarioID handles GET /api/users/:id.  A hit answers with the bare user
// row, not an envelope.
func (h *UsuarioHandler) UsuarioID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	usuario, err := h.Repo.PorID(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusOK, echo.Map{"id": id, "mensaje": fmt.Sprintf("usuario con id %d no se encuentra", id)})
	}
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al obtener usuario"})
	}
	return c.JSON(http.StatusOK, usuario)
}

// UpdateUsuario handles PUT /api/users/:id.  Conflicts answer 200 with the
// historic informational payloads; the password is always re-hashed.
func (h *UsuarioHandler) UpdateUsuario(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req nuevoUsuarioReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al actualizar usuario"})
	}

	if _, err := h.Repo.PorID(c.Request().Context(), id); err == sql.ErrNoRows {
		return c.JSON(http.StatusOK, echo.Map{"id": id, "mensaje": fmt.Sprintf("usuario con id %d no existe", id)})
	} else if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al actualizar usuario"})
	}

	otro, ocupado, err := h.Repo.EmailDeOtro(c.Request().Context(), req.Email, id)
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al actualizar usuario"})
	}
	if ocupado {
		return c.JSON(http.StatusOK, echo.Map{
			"id":      id,
			"mensaje": fmt.Sprintf("usuario con este email %s ya existe con id: %d", req.Email, otro),
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al actualizar usuario"})
	}

	if err := h.Repo.Actualizar(c.Request().Context(), id, req.Name, req.Email, hash, req.Type, req.CodigoEmpleado); err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al actualizar usuario"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "mensaje": "Usuario actualizado correctamente"})
}

// DeleteUsuario handles DELETE /api/users/:id.
func (h *UsuarioHandler) DeleteUsuario(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	err = h.Repo.Eliminar(c.Request().Context(), id)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusOK, echo.Map{"id": id, "mensaje": fmt.Sprintf("usuario con id %d no se encuentra", id)})
	}
	if err != nil {
		log.Printf("usuarios: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "msg": "Error al eliminar usuario"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "mensaje": fmt.Sprintf("Usuario %d eliminado satisfactoriamente", id)})
}
