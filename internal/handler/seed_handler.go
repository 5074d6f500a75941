package handler

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"gymbook/internal/response"
	"gymbook/internal/seed"
	"gymbook/internal/service"
)

// SeedHandler handles demo-data endpoints.
type SeedHandler struct {
	users       service.UserService
	memberships service.MembershipService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(users service.UserService, memberships service.MembershipService) *SeedHandler {
	return &SeedHandler{users: users, memberships: memberships}
}

// SeedUsers godoc
// @Summary Insert demo users with random memberships
// @Tags seed
// @Produce json
// @Param count query int false "Number of users to create (default 10, max 100)"
// @Success 200 {object} response.Envelope
// @Router /seed/users [get]
func (h *SeedHandler) SeedUsers(c echo.Context) error {
	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil || count < 1 {
		count = 10
	}
	if count > 100 {
		count = 100
	}

	ctx := c.Request().Context()
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	users, memberships := 0, 0
	for i := 0; i < count; i++ {
		user, err := h.users.Create(ctx, seed.User(r))
		if err != nil {
			return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al generar los datos de prueba"))
		}
		users++
		for j := 0; j < r.Intn(3); j++ {
			if _, err := h.memberships.Create(ctx, seed.Membership(r, user.ID)); err != nil {
				return c.JSON(http.StatusOK, response.Fail("Ocurrió un error al generar los datos de prueba"))
			}
			memberships++
		}
	}

	return c.JSON(http.StatusOK, response.OK(map[string]int{
		"users":       users,
		"memberships": memberships,
	}, "Datos de prueba generados"))
}
