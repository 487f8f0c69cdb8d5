package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gringotts/internal/api"
	"gringotts/internal/customer"
	"gringotts/internal/paging"
	"gringotts/internal/transaction"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) CreateTransaction(ctx context.Context, req TransactionRequest) (*transaction.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockService) GetTransactionsByCustomer(ctx context.Context, customerID int64, page *paging.Page) ([]transaction.Transaction, error) {
	args := m.Called(ctx, customerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]transaction.Transaction), args.Error(1)
}

func (m *MockService) GetAllTransactions(ctx context.Context, page *paging.Page) ([]transaction.Transaction, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]transaction.Transaction), args.Error(1)
}

func (m *MockService) GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockService) CreateOrUpdateCustomer(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockService) UpdateCharacterName(ctx context.Context, id int64, name string) (*customer.Customer, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockService) SearchCustomers(ctx context.Context, substring string, page *paging.Page) ([]customer.Customer, error) {
	args := m.Called(ctx, substring, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockService) GetAllCustomers(ctx context.Context, page *paging.Page) ([]customer.Customer, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockService) CheckAccessCode(ctx context.Context, userName string, accessCode int) (uuid.UUID, error) {
	args := m.Called(ctx, userName, accessCode)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/transactions", h.CreateTransaction)
	r.GET("/transactions", h.GetAllTransactions)
	r.GET("/customers", h.GetAllCustomers)
	r.GET("/customers/search", h.SearchCustomers)
	r.GET("/customers/:id", h.GetCustomer)
	r.PUT("/customers/:id", h.UpsertCustomer)
	r.PATCH("/customers/:id/character-name", h.UpdateCharacterName)
	r.GET("/customers/:id/transactions", h.GetTransactionsByCustomer)
	r.POST("/auth/access-code", h.CheckAccessCode)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, api.Response) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp api.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCreateTransactionEndpoint(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	result := &transaction.Transaction{
		ID:          uuid.New(),
		RecipientID: 2,
		Amount:      decimal.NewFromInt(25),
		Description: "gift",
	}
	svc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req TransactionRequest) bool {
		return req.RecipientID == 2 && req.Description == "gift"
	})).Return(result, nil)

	w, resp := doJSON(t, r, http.MethodPost, "/transactions", gin.H{
		"recipient_id": 2,
		"sender_id":    1,
		"amount":       "25",
		"description":  "gift",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "none", resp.ErrorCode)
	assert.Empty(t, resp.ErrorMessages)
	assert.NotNil(t, resp.Payload)
}

func TestCreateTransactionEndpoint_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus int
	}{
		{"validation", NewError(CodeValidationError, "amount must be positive"), http.StatusBadRequest},
		{"customer not found", NewError(CodeCustomerNotFound, "recipient not found"), http.StatusNotFound},
		{"employee not found", NewError(CodeEmployeeNotFound, "employee not found"), http.StatusNotFound},
		{"insufficient funds", NewError(CodeInsufficientFunds, "sender has insufficient funds"), http.StatusUnprocessableEntity},
		{"internal", internalError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			r := setupRouter(svc)
			svc.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, tt.err)

			w, resp := doJSON(t, r, http.MethodPost, "/transactions", gin.H{
				"recipient_id": 2,
				"amount":       "10",
				"description":  "x",
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, string(tt.err.Code), resp.ErrorCode)
			require.NotEmpty(t, resp.ErrorMessages)
			assert.Nil(t, resp.Payload)
		})
	}
}

func TestGetTransactionsEndpointPagination(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	svc.On("GetAllTransactions", mock.Anything, &paging.Page{Number: 2, Size: 10}).
		Return([]transaction.Transaction{}, nil)

	w, resp := doJSON(t, r, http.MethodGet, "/transactions?page=2&size=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	// only one of the pair present: no pagination
	svc.On("GetAllTransactions", mock.Anything, (*paging.Page)(nil)).
		Return([]transaction.Transaction{}, nil)

	w, _ = doJSON(t, r, http.MethodGet, "/transactions?page=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGetTransactionsByCustomerEndpoint(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	svc.On("GetTransactionsByCustomer", mock.Anything, int64(42), (*paging.Page)(nil)).
		Return([]transaction.Transaction{{Description: "newest"}}, nil)

	w, resp := doJSON(t, r, http.MethodGet, "/customers/42/transactions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	w, resp = doJSON(t, r, http.MethodGet, "/customers/notanumber/transactions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(CodeValidationError), resp.ErrorCode)
}

func TestSearchCustomersEndpoint(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	svc.On("SearchCustomers", mock.Anything, "pot", (*paging.Page)(nil)).
		Return([]customer.Customer{{ID: 42, UserName: "hpotter"}}, nil)

	w, resp := doJSON(t, r, http.MethodGet, "/customers/search?q=pot", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	w, resp = doJSON(t, r, http.MethodGet, "/customers/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(CodeValidationError), resp.ErrorCode)
}

func TestUpsertCustomerEndpoint(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	svc.On("CreateOrUpdateCustomer", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.ID == 7 && c.UserName == "rweasley"
	})).Return(&customer.Customer{ID: 7, UserName: "rweasley"}, nil)

	w, resp := doJSON(t, r, http.MethodPut, "/customers/7", gin.H{
		"username":       "rweasley",
		"personal_name":  "Ron",
		"character_name": "Ronald Weasley",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	// missing username fails binding before the service is reached
	w, resp = doJSON(t, r, http.MethodPut, "/customers/7", gin.H{"personal_name": "Ron"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(CodeValidationError), resp.ErrorCode)
	svc.AssertNumberOfCalls(t, "CreateOrUpdateCustomer", 1)
}

func TestUpdateCharacterNameEndpoint(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	svc.On("UpdateCharacterName", mock.Anything, int64(7), "Ronald Weasley").
		Return(&customer.Customer{ID: 7, CharacterName: "Ronald Weasley"}, nil)

	w, resp := doJSON(t, r, http.MethodPatch, "/customers/7/character-name", gin.H{
		"character_name": "Ronald Weasley",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestCheckAccessCodeEndpoint(t *testing.T) {
	empID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := new(MockService)
		r := setupRouter(svc)
		svc.On("CheckAccessCode", mock.Anything, "goblin", 1234).Return(empID, nil)

		w, resp := doJSON(t, r, http.MethodPost, "/auth/access-code", gin.H{
			"username":    "goblin",
			"access_code": 1234,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		payload, ok := resp.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, empID.String(), payload["employee_id"])
	})

	t.Run("wrong code", func(t *testing.T) {
		svc := new(MockService)
		r := setupRouter(svc)
		svc.On("CheckAccessCode", mock.Anything, "goblin", 9999).
			Return(uuid.Nil, NewError(CodeAuthenticationFailed, "access code does not match"))

		w, resp := doJSON(t, r, http.MethodPost, "/auth/access-code", gin.H{
			"username":    "goblin",
			"access_code": 9999,
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, string(CodeAuthenticationFailed), resp.ErrorCode)
	})
}

func TestGetCustomerEndpoint(t *testing.T) {
	svc := new(MockService)
	r := setupRouter(svc)

	svc.On("GetCustomerByID", mock.Anything, int64(42)).
		Return(&customer.Customer{ID: 42, UserName: "hpotter", Balance: decimal.NewFromInt(100)}, nil)
	svc.On("GetCustomerByID", mock.Anything, int64(99)).
		Return(nil, NewError(CodeCustomerNotFound, "customer not found"))

	w, resp := doJSON(t, r, http.MethodGet, "/customers/42", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	w, resp = doJSON(t, r, http.MethodGet, "/customers/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(CodeCustomerNotFound), resp.ErrorCode)
}
