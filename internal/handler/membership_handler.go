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

// MembershipHandler bundles the membership HTTP handlers.
type MembershipHandler struct {
	svc service.MembershipService
}

// NewMembershipHandler creates the membership handler layer.
func NewMembershipHandler(svc service.MembershipService) *MembershipHandler {
	return &MembershipHandler{svc: svc}
}

var payOptions = []string{string(model.PayStatusDebe), string(model.PayStatusPagado)}

// membershipCreateRules is the declarative rule table for membership creation.
func (h *MembershipHandler) membershipCreateRules() validation.RuleSet {
	return validation.RuleSet{Fields: []validation.Field{
		{
			Name:     "user",
			Required: "El usuario es requerido",
			Checks: []validation.Check{
				validation.Exists(h.svc.UserExists, "El usuario especificado, no existe."),
			},
		},
		{
			Name:     "start_date",
			Required: "La fecha de inicio de la membresia es requerida",
			Checks: []validation.Check{
				validation.Date("La fecha de inicio de la membresia no cumple con el formato (AAAA-MM-DD)"),
			},
		},
		{
			Name:     "end_date",
			Required: "La fecha de fin de la membresia es requerida",
			Checks: []validation.Check{
				validation.Date("La fecha de fin de la membresia no cumple con el formato (AAAA-MM-DD)"),
				validation.After("start_date", "La fecha de fin de la membresia debe ser mayor a la de inicio"),
			},
		},
		{
			Name:     "pay",
			Required: "El estado del pago es requerido",
			Checks: []validation.Check{
				validation.In(payOptions, "El estado del pago solo puede ser (Pagado, Debe)"),
			},
		},
		{
			Name: "balance",
			Checks: []validation.Check{
				validation.Integer("El saldo deben ser solo números"),
			},
		},
	}}
}

// membershipUpdateRules keeps only the rules for the supplied fields. The
// pay rule is included only when its normalized value is Debe or Pagado; in
// that case the balance/pay consistency policy runs as a cross-field check.
func (h *MembershipHandler) membershipUpdateRules(p validation.Payload) validation.RuleSet {
	var fields []validation.Field
	for _, f := range h.membershipCreateRules().Fields {
		if !p.Has(f.Name) {
			continue
		}
		if f.Name == "pay" {
			normalized, ok := normalizePay(p["pay"])
			if !ok {
				continue
			}
			p["pay"] = normalized
		}
		f.Required = ""
		fields = append(fields, f)
	}

	rs := validation.RuleSet{Fields: fields}
	if _, ok := normalizePay(p["pay"]); p.Has("pay") && ok {
		rs.Cross = append(rs.Cross, balancePayPolicy)
	}
	return rs
}

// balancePayPolicy enforces the cross-field contract: a membership owing
// money must carry a balance, a paid one must not.
func balancePayPolicy(p validation.Payload, validated map[string]any) (string, string) {
	pay, _ := normalizePay(p["pay"])
	switch model.PayStatus(pay) {
	case model.PayStatusDebe:
		if !p.Has("balance") {
			return "balance", "El saldo es requerido cuando el pago es Debe"
		}
	case model.PayStatusPagado:
		if p.Has("balance") {
			return "balance", "El saldo no debe enviarse cuando el pago es Pagado"
		}
	}
	return "", ""
}

// normalizePay capitalizes the raw value and reports whether it is one of
// the accepted payment statuses.
func normalizePay(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	normalized := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	for _, opt := range payOptions {
		if normalized == opt {
			return normalized, true
		}
	}
	return "", false
}

// ListMemberships godoc
// @Summary List memberships with optional filters
// @Tags memberships
// @Produce json
// @Param user query int false "Exact match on owning user id"
// @Param pay query string false "Debe or Pagado"
// @Param start_date query string false "Exact match, YYYY-MM-DD"
// @Param page query int false "Page number (page size 10)"
// @Success 200 {object} response.Envelope
// @Router /memberships [get]
func (h *MembershipHandler) ListMemberships(c echo.Context) error {
	filter := repository.MembershipFilter{
		StartDate: strings.TrimSpace(c.QueryParam("start_date")),
	}
	if raw := strings.TrimSpace(c.QueryParam("user")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			userID := uint(id)
			filter.UserID = &userID
		}
	}
	if pay, ok := normalizePay(c.QueryParam("pay")); ok {
		filter.Pay = pay
	}

	memberships, total, err := h.svc.List(c.Request().Context(), filter, pageParam(c))
	if err != nil {
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al filtrar las membresias"))
	}
	return c.JSON(http.StatusOK, response.Paginated(memberships, "Membresias listadas", pageParam(c), repository.PageSize, total))
}

// CreateMembership godoc
// @Summary Create a membership
// @Tags memberships
// @Accept json
// @Produce json
// @Param payload body object true "user, start_date, end_date, pay, balance?"
// @Success 200 {object} response.Envelope
// @Router /memberships/create [post]
func (h *MembershipHandler) CreateMembership(c echo.Context) error {
	payload := validation.Payload{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusOK, response.Fail("No fue posible crear la membresia"))
	}

	validated, errs := h.membershipCreateRules().Validate(c.Request().Context(), payload)
	if errs != nil {
		return c.JSON(http.StatusOK, response.Invalid("No fue posible crear la membresia", validation.Messages(errs)))
	}

	membership := &model.Membership{
		UserID:    uint(validated["user"].(int64)),
		StartDate: validated["start_date"].(string),
		EndDate:   validated["end_date"].(string),
		Pay:       model.PayStatus(validated["pay"].(string)),
		Balance:   intField(validated, "balance"),
	}
	created, err := h.svc.Create(c.Request().Context(), membership)
	if err != nil {
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al crear la membresia"))
	}
	return c.JSON(http.StatusOK, response.OK(created, "Membresia creada con éxito."))
}

// UpdateMembership godoc
// @Summary Partially update a membership
// @Tags memberships
// @Accept json
// @Produce json
// @Param id path int true "Membership ID"
// @Param payload body object true "Any of user, start_date, end_date, pay, balance"
// @Success 200 {object} response.Envelope
// @Router /memberships/{id} [put]
func (h *MembershipHandler) UpdateMembership(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusOK, response.Fail("Parámetros no permitidos"))
	}

	payload := validation.Payload{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusOK, response.Fail("Parámetros no permitidos"))
	}
	if !hasAny(payload, "user", "start_date", "end_date", "pay", "balance") {
		return c.JSON(http.StatusOK, response.Fail("Parámetros no permitidos"))
	}

	exists, err := h.svc.Exists(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al actualizar la membresia"))
	}
	if !exists {
		return c.JSON(http.StatusOK, response.Fail("La membresia no existe"))
	}

	validated, errs := h.membershipUpdateRules(payload).Validate(c.Request().Context(), payload)
	if errs != nil {
		return c.JSON(http.StatusOK, response.Invalid("No fue posible actualizar la membresia", validation.Messages(errs)))
	}

	patch := repository.MembershipPatch{
		StartDate: strField(validated, "start_date"),
		EndDate:   strField(validated, "end_date"),
		Pay:       strField(validated, "pay"),
		Balance:   intField(validated, "balance"),
	}
	if userID, ok := validated["user"].(int64); ok {
		uid := uint(userID)
		patch.UserID = &uid
	}

	membership, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, apperrors.ErrMembershipNotFound) {
			return c.JSON(http.StatusOK, response.Fail("La membresia no existe"))
		}
		return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al actualizar la membresia"))
	}
	return c.JSON(http.StatusOK, response.OK(membership, "Membresia actualizada con éxito."))
}

// intField extracts a validated integer field as a patch pointer.
func intField(validated map[string]any, key string) *int64 {
	if v, ok := validated[key].(int64); ok {
		return &v
	}
	return nil
}
