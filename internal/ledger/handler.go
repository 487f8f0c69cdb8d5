package ledger

import (
	"net/http"
	"strconv"

	"gringotts/internal/api"
	"gringotts/internal/customer"
	"gringotts/internal/metrics"
	"gringotts/internal/paging"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type UpsertCustomerRequest struct {
	UserName      string `json:"username" binding:"required"`
	PersonalName  string `json:"personal_name"`
	CharacterName string `json:"character_name"`
}

type UpdateCharacterNameRequest struct {
	CharacterName string `json:"character_name" binding:"required"`
}

type AccessCodeRequest struct {
	UserName   string `json:"username"`
	AccessCode int    `json:"access_code"`
}

func statusFor(code ErrorCode) int {
	switch code {
	case CodeValidationError:
		return http.StatusBadRequest
	case CodeAuthenticationFailed:
		return http.StatusUnauthorized
	case CodeCustomerNotFound, CodeEmployeeNotFound:
		return http.StatusNotFound
	case CodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func renderError(c *gin.Context, err error) {
	lerr := AsError(err)
	c.JSON(statusFor(lerr.Code), api.Fail(string(lerr.Code), lerr.Messages))
}

// parsePage reads the optional page/size query pair; pagination applies only
// when both are present.
func parsePage(c *gin.Context) *paging.Page {
	var number, size *int
	if n, err := strconv.Atoi(c.Query("page")); err == nil {
		number = &n
	}
	if s, err := strconv.Atoi(c.Query("size")); err == nil {
		size = &s
	}
	return paging.New(number, size)
}

// CreateTransaction handles POST /transactions.
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(string(CodeValidationError), []string{err.Error()}))
		return
	}

	tx, err := h.service.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		metrics.RecordTransferFailure(string(AsError(err).Code))
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.OK(tx))
}

// GetAllTransactions handles GET /transactions.
func (h *Handler) GetAllTransactions(c *gin.Context) {
	txs, err := h.service.GetAllTransactions(c.Request.Context(), parsePage(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OK(txs))
}

// GetTransactionsByCustomer handles GET /customers/:id/transactions.
func (h *Handler) GetTransactionsByCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(string(CodeValidationError), []string{"invalid customer id"}))
		return
	}

	txs, err := h.service.GetTransactionsByCustomer(c.Request.Context(), id, parsePage(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OK(txs))
}

// GetAllCustomers handles GET /customers.
func (h *Handler) GetAllCustomers(c *gin.Context) {
	customers, err := h.service.GetAllCustomers(c.Request.Context(), parsePage(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OK(customers))
}

// SearchCustomers handles GET /customers/search?q=.
func (h *Handler) SearchCustomers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, api.Fail(string(CodeValidationError), []string{"q parameter is required"}))
		return
	}

	customers, err := h.service.SearchCustomers(c.Request.Context(), q, parsePage(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OK(customers))
}

// GetCustomer handles GET /customers/:id.
func (h *Handler) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(string(CodeValidationError), []string{"invalid customer id"}))
		return
	}

	cust, err := h.service.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OK(cust))
}

// UpsertCustomer handles PUT /customers/:id.
func (h *Handler) UpsertCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(string(CodeValidationError), []string{"invalid customer id"}))
		return
	}

	var req UpsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(string(CodeValidationError), []string{err.Error()}))
		return
	}

	cust, err := h.service.CreateOrUpdateCustomer(c.Request.Context(), &customer.Customer{
		ID:            id,
		UserName:      req.UserName,
		PersonalName:  req.PersonalName,
		CharacterName: req.CharacterName,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	metrics.RecordCustomerUpsert()
	c.JSON(http.StatusOK, api.OK(cust))
}

// UpdateCharacterName handles PATCH /customers/:id/character-name.
func (h *Handler) UpdateCharacterName(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(string(CodeValidationError), []string{"invalid customer id"}))
		return
	}

	var req UpdateCharacterNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(string(CodeValidationError), []string{err.Error()}))
		return
	}

	cust, err := h.service.UpdateCharacterName(c.Request.Context(), id, req.CharacterName)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OK(cust))
}

// CheckAccessCode handles POST /auth/access-code.
func (h *Handler) CheckAccessCode(c *gin.Context) {
	var req AccessCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Fail(string(CodeValidationError), []string{err.Error()}))
		return
	}

	employeeID, err := h.service.CheckAccessCode(c.Request.Context(), req.UserName, req.AccessCode)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OK(gin.H{"employee_id": employeeID}))
}
