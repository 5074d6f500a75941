package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "gymbook/internal/errors"
	"gymbook/internal/model"
	"gymbook/internal/repository"
	"gymbook/internal/response"
	"gymbook/internal/service"
	"gymbook/internal/validation"
)

// UserHandler bundles the user HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates the user handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// userCreateRules is the declarative rule table for user creation.
func userCreateRules() validation.RuleSet {
	return validation.RuleSet{Fields: []validation.Field{
		{
			Name:     "name",
			Required: "El nombre es requerido",
			Checks: []validation.Check{
				validation.MinLen(3, "Mínimo 3 carácteres"),
				validation.MaxLen(40, "Máximo 40 carácteres"),
			},
		},
		{
			Name:     "last_name",
			Required: "El apellido es requerido",
			Checks: []validation.Check{
				validation.MinLen(3, "Mínimo 3 carácteres"),
				validation.MaxLen(40, "Máximo 40 carácteres"),
			},
		},
		{
			Name:     "registration_date",
			Required: "La fecha de registro es requerida.",
			Checks: []validation.Check{
				validation.Date("La fecha debe tener el formato YYYY-MM-DD."),
			},
		},
		{
			Name:     "hour",
			Required: "La hora es requerida.",
			Checks: []validation.Check{
				validation.TimeOfDay("La hora debe tener el formato HH:MM en horario de 24 horas."),
			},
		},
	}}
}

// userUpdateRules keeps only the rules for the fields the payload supplies.
func userUpdateRules(p validation.Payload) validation.RuleSet {
	var fields []validation.Field
	for _, f := range userCreateRules().Fields {
		if p.Has(f.Name) {
			f.Required = ""
			fields = append(fields, f)
		}
	}
	return validation.RuleSet{Fields: fields}
}

// ListUsers godoc
// @Summary List users with optional filters
// @Tags users
// @Produce json
// @Param name query string false "Substring match on name"
// @Param last_name query string false "Substring match on last name"
// @Param registration_date query string false "Exact match, YYYY-MM-DD"
// @Param hour query string false "Substring match on hour"
// @Param state query string false "Exact match, ACTIVE or INACTIVE"
// @Param page query int false "Page number (page size 10)"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	filter := repository.UserFilter{
		Name:             strings.TrimSpace(c.QueryParam("name")),
		LastName:         strings.TrimSpace(c.QueryParam("last_name")),
		RegistrationDate: strings.TrimSpace(c.QueryParam("registration_date")),
		Hour:             strings.TrimSpace(c.QueryParam("hour")),
		State:            strings.TrimSpace(c.QueryParam("state")),
	}

	users, total, err := h.svc.List(c.Request().Context(), filter, pageParam(c))
	if err != nil {
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al filtrar los usuarios"))
	}
	return c.JSON(http.StatusOK, response.Paginated(users, "Usuarios listados", pageParam(c), repository.PageSize, total))
}

// GetUser godoc
// @Summary Get a user by id, including memberships
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusOK, response.Fail("El usuario no existe"))
	}

	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusOK, response.Fail("El usuario no existe"))
		}
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al buscar el usuario"))
	}
	return c.JSON(http.StatusOK, response.OK(user, "Usuario encontrado"))
}

// CreateUser godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param payload body object true "name, last_name, registration_date, hour"
// @Success 200 {object} response.Envelope
// @Router /users/create [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	payload := validation.Payload{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusOK, response.Fail("No fue posible crear el usuario"))
	}

	validated, errs := userCreateRules().Validate(c.Request().Context(), payload)
	if errs != nil {
		return c.JSON(http.StatusOK, response.Invalid("No fue posible crear el usuario", validation.Messages(errs)))
	}

	user := &model.User{
		Name:             validated["name"].(string),
		LastName:         validated["last_name"].(string),
		RegistrationDate: validated["registration_date"].(string),
		Hour:             validated["hour"].(string),
	}
	created, err := h.svc.Create(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al crear el usuario"))
	}
	return c.JSON(http.StatusOK, response.OK(created, "Usuario creado con éxito."))
}

// UpdateUser godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param payload body object true "Any of name, last_name, registration_date, hour"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusOK, response.Fail("Parámetros no permitidos"))
	}

	payload := validation.Payload{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusOK, response.Fail("Parámetros no permitidos"))
	}
	if !hasAny(payload, "name", "last_name", "registration_date", "hour") {
		return c.JSON(http.StatusOK, response.Fail("Parámetros no permitidos"))
	}

	validated, errs := userUpdateRules(payload).Validate(c.Request().Context(), payload)
	if errs != nil {
		return c.JSON(http.StatusOK, response.Invalid("No fue posible actualizar el usuario", validation.Messages(errs)))
	}

	patch := repository.UserPatch{
		Name:             strField(validated, "name"),
		LastName:         strField(validated, "last_name"),
		RegistrationDate: strField(validated, "registration_date"),
		Hour:             strField(validated, "hour"),
	}
	user, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusOK, response.Fail("El usuario no existe"))
		}
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al actualizar el usuario"))
	}
	return c.JSON(http.StatusOK, response.OK(user, "Usuario actualizado con éxito."))
}

// DeactivateUser godoc
// @Summary Deactivate a user (soft delete)
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) DeactivateUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al eliminar el usuario"))
	}

	user, err := h.svc.Deactivate(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrActiveUserNotFound) {
			return c.JSON(http.StatusOK, response.Fail("Usuario no encontrado"))
		}
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al eliminar el usuario"))
	}
	return c.JSON(http.StatusOK, response.OK(user, "Usuario desactivado con éxito."))
}

// idParam parses the path id.
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

var errInvalidID = errors.New("invalid id")

// pageParam parses the page query param, defaulting to 1.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func hasAny(p validation.Payload, keys ...string) bool {
	for _, k := range keys {
		if p.Has(k) {
			return true
		}
	}
	return false
}

// strField extracts a validated string field as a patch pointer.
func strField(validated map[string]any, key string) *string {
	if v, ok := validated[key].(string); ok {
		return &v
	}
	return nil
}
