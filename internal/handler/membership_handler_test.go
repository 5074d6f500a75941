package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gymbook/internal/model"
	"gymbook/internal/repository"
)

// MockMembershipService is a mock implementation of service.MembershipService.
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) List(ctx context.Context, filter repository.MembershipFilter, page int) ([]model.Membership, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Membership), args.Get(1).(int64), args.Error(2)
}

func (m *MockMembershipService) Create(ctx context.Context, membership *model.Membership) (*model.Membership, error) {
	args := m.Called(ctx, membership)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockMembershipService) Update(ctx context.Context, id uint, patch repository.MembershipPatch) (*model.Membership, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockMembershipService) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipService) UserExists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCreateMembership_ValidationFailure(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		userExists   bool
		expectErrors []string
	}{
		{
			name:         "end date not after start date",
			body:         `{"user":1,"start_date":"2025-01-10","end_date":"2025-01-05","pay":"Debe"}`,
			userExists:   true,
			expectErrors: []string{"La fecha de fin de la membresia debe ser mayor a la de inicio"},
		},
		{
			name:         "end date equal to start date",
			body:         `{"user":1,"start_date":"2025-01-10","end_date":"2025-01-10","pay":"Pagado"}`,
			userExists:   true,
			expectErrors: []string{"La fecha de fin de la membresia debe ser mayor a la de inicio"},
		},
		{
			name:         "unknown user",
			body:         `{"user":999,"start_date":"2025-01-10","end_date":"2025-02-10","pay":"Debe"}`,
			userExists:   false,
			expectErrors: []string{"El usuario especificado, no existe."},
		},
		{
			name:         "invalid pay status",
			body:         `{"user":1,"start_date":"2025-01-10","end_date":"2025-02-10","pay":"Gratis"}`,
			userExists:   true,
			expectErrors: []string{"El estado del pago solo puede ser (Pagado, Debe)"},
		},
		{
			name:         "non numeric balance",
			body:         `{"user":1,"start_date":"2025-01-10","end_date":"2025-02-10","pay":"Debe","balance":"mucho"}`,
			userExists:   true,
			expectErrors: []string{"El saldo deben ser solo números"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMembershipService)
			svc.On("UserExists", mock.Anything, mock.Anything).Return(tt.userExists, nil)

			h := NewMembershipHandler(svc)
			c, rec := jsonContext(t, http.MethodPost, "/api/memberships/create", tt.body)

			assert.NoError(t, h.CreateMembership(c))
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, "No fue posible crear la membresia", env.Message)
			assert.Equal(t, tt.expectErrors, env.Errors)
			svc.AssertNotCalled(t, "Create")
		})
	}
}

func TestCreateMembership_Success(t *testing.T) {
	svc := new(MockMembershipService)
	svc.On("UserExists", mock.Anything, uint(1)).Return(true, nil)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Membership) bool {
		return m.UserID == 1 && m.StartDate == "2025-01-10" && m.EndDate == "2025-02-10" &&
			m.Pay == model.PayStatusDebe && m.Balance != nil && *m.Balance == 20000
	})).Return(&model.Membership{ID: 1, UserID: 1, State: model.MembershipStateActive}, nil)

	h := NewMembershipHandler(svc)
	c, rec := jsonContext(t, http.MethodPost, "/api/memberships/create",
		`{"user":1,"start_date":"2025-01-10","end_date":"2025-02-10","pay":"Debe","balance":20000}`)

	assert.NoError(t, h.CreateMembership(c))
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Membresia creada con éxito.", env.Message)
	svc.AssertExpectations(t)
}

func TestUpdateMembership_BalancePayPolicy(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError string
	}{
		{
			name:        "Debe without balance",
			body:        `{"pay":"Debe"}`,
			expectError: "El saldo es requerido cuando el pago es Debe",
		},
		{
			name:        "Pagado with balance",
			body:        `{"pay":"Pagado","balance":5000}`,
			expectError: "El saldo no debe enviarse cuando el pago es Pagado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMembershipService)
			svc.On("Exists", mock.Anything, uint(1)).Return(true, nil)

			h := NewMembershipHandler(svc)
			c, rec := jsonContext(t, http.MethodPut, "/api/memberships/1", tt.body)
			c.SetParamNames("id")
			c.SetParamValues("1")

			assert.NoError(t, h.UpdateMembership(c))
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, []string{tt.expectError}, env.Errors)
			svc.AssertNotCalled(t, "Update")
		})
	}
}

func TestUpdateMembership_PayNormalized(t *testing.T) {
	svc := new(MockMembershipService)
	svc.On("Exists", mock.Anything, uint(1)).Return(true, nil)
	svc.On("Update", mock.Anything, uint(1), mock.MatchedBy(func(p repository.MembershipPatch) bool {
		return p.Pay != nil && *p.Pay == "Pagado" && p.Balance == nil && p.UserID == nil
	})).Return(&model.Membership{ID: 1, Pay: model.PayStatusPagado}, nil)

	h := NewMembershipHandler(svc)
	c, rec := jsonContext(t, http.MethodPut, "/api/memberships/1", `{"pay":"pagado"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, h.UpdateMembership(c))
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Membresia actualizada con éxito.", env.Message)
	svc.AssertExpectations(t)
}

func TestUpdateMembership_RejectsEmptyPayload(t *testing.T) {
	svc := new(MockMembershipService)
	h := NewMembershipHandler(svc)
	c, rec := jsonContext(t, http.MethodPut, "/api/memberships/1", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	assert.NoError(t, h.UpdateMembership(c))
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Parámetros no permitidos", env.Message)
	svc.AssertNotCalled(t, "Update")
}

func TestUpdateMembership_UnknownMembership(t *testing.T) {
	svc := new(MockMembershipService)
	svc.On("Exists", mock.Anything, uint(44)).Return(false, nil)

	h := NewMembershipHandler(svc)
	c, rec := jsonContext(t, http.MethodPut, "/api/memberships/44", `{"start_date":"2025-01-01"}`)
	c.SetParamNames("id")
	c.SetParamValues("44")

	assert.NoError(t, h.UpdateMembership(c))
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "La membresia no existe", env.Message)
	svc.AssertExpectations(t)
}

func TestListMemberships_PayFilterGate(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		expectPay string
	}{
		{"lowercase pay is normalized", "/api/memberships?pay=debe", "Debe"},
		{"valid pay applied as-is", "/api/memberships?pay=Pagado", "Pagado"},
		{"unknown pay is skipped", "/api/memberships?pay=Gratis", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockMembershipService)
			svc.On("List", mock.Anything, repository.MembershipFilter{Pay: tt.expectPay}, 1).
				Return([]model.Membership{}, int64(0), nil)

			h := NewMembershipHandler(svc)
			c, rec := jsonContext(t, http.MethodGet, tt.target, "")

			assert.NoError(t, h.ListMemberships(c))
			env := decodeEnvelope(t, rec)
			assert.True(t, env.Success)
			assert.Equal(t, "Membresias listadas", env.Message)
			svc.AssertExpectations(t)
		})
	}
}

func TestListMemberships_UserFilter(t *testing.T) {
	userID := uint(3)
	svc := new(MockMembershipService)
	svc.On("List", mock.Anything, mock.MatchedBy(func(f repository.MembershipFilter) bool {
		return f.UserID != nil && *f.UserID == userID && f.StartDate == "2025-01-10"
	}), 1).Return([]model.Membership{{ID: 1, UserID: userID}}, int64(1), nil)

	h := NewMembershipHandler(svc)
	c, rec := jsonContext(t, http.MethodGet, "/api/memberships?user=3&start_date=2025-01-10", "")

	assert.NoError(t, h.ListMemberships(c))
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	svc.AssertExpectations(t)
}
