package ledger

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"gringotts/internal/customer"
	"gringotts/internal/employee"
	"gringotts/internal/metrics"
	"gringotts/internal/paging"
	"gringotts/internal/transaction"
	"gringotts/internal/uow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (*transaction.Transaction, error)
	GetTransactionsByCustomer(ctx context.Context, customerID int64, page *paging.Page) ([]transaction.Transaction, error)
	GetAllTransactions(ctx context.Context, page *paging.Page) ([]transaction.Transaction, error)
	GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error)
	CreateOrUpdateCustomer(ctx context.Context, c *customer.Customer) (*customer.Customer, error)
	UpdateCharacterName(ctx context.Context, id int64, name string) (*customer.Customer, error)
	SearchCustomers(ctx context.Context, substring string, page *paging.Page) ([]customer.Customer, error)
	GetAllCustomers(ctx context.Context, page *paging.Page) ([]customer.Customer, error)
	CheckAccessCode(ctx context.Context, userName string, accessCode int) (uuid.UUID, error)
}

type service struct {
	uow          *uow.Factory
	customers    customer.Repository
	employees    employee.Repository
	transactions transaction.Repository
}

func NewService(
	factory *uow.Factory,
	customers customer.Repository,
	employees employee.Repository,
	transactions transaction.Repository,
) Service {
	return &service{
		uow:          factory,
		customers:    customers,
		employees:    employees,
		transactions: transactions,
	}
}

// CreateTransaction validates, then performs the whole movement inside one
// unit of work: resolve recipient, resolve sender and check funds, resolve
// employee, persist the transaction row, debit, credit, commit. Sender and
// recipient rows are read with FOR UPDATE so concurrent transfers against the
// same account serialize on the row lock instead of racing the funds check.
func (s *service) CreateTransaction(ctx context.Context, req TransactionRequest) (*transaction.Transaction, error) {
	if req.RecipientID <= 0 && strings.TrimSpace(req.RecipientUsername) == "" {
		return nil, NewError(CodeValidationError, "either recipient id or recipient username is required")
	}

	if req.SenderID == nil && req.EmployeeID == nil {
		return nil, NewError(CodeValidationError, "either sender id or employee id must be provided")
	}

	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, NewError(CodeValidationError, "amount must be positive")
	}

	if strings.TrimSpace(req.Description) == "" {
		return nil, NewError(CodeValidationError, "description is required")
	}

	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, internalError(err.Error())
	}
	defer sess.Close()

	var recipient *customer.Customer
	if req.RecipientID > 0 {
		recipient, err = s.customers.GetByIDForUpdate(ctx, sess, req.RecipientID)
	} else {
		recipient, err = s.customers.GetByNameForUpdate(ctx, sess, req.RecipientUsername)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewError(CodeCustomerNotFound, "recipient not found")
		}
		return nil, internalError(err.Error())
	}

	var sender *customer.Customer
	if req.SenderID != nil {
		sender, err = s.customers.GetByIDForUpdate(ctx, sess, *req.SenderID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, NewError(CodeCustomerNotFound, "sender not found")
			}
			return nil, internalError(err.Error())
		}

		if sender.Balance.LessThan(req.Amount) {
			return nil, NewError(CodeInsufficientFunds, "sender has insufficient funds")
		}
	}

	if req.EmployeeID != nil {
		if _, err := s.employees.GetByID(ctx, sess, *req.EmployeeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, NewError(CodeEmployeeNotFound, "employee not found")
			}
			return nil, internalError(err.Error())
		}
	}

	tx := &transaction.Transaction{
		Date:        time.Now().UTC(),
		SenderID:    req.SenderID,
		RecipientID: recipient.ID,
		EmployeeID:  req.EmployeeID,
		Amount:      req.Amount,
		Description: req.Description,
	}

	if err := s.transactions.Add(ctx, sess, tx); err != nil {
		return nil, internalError(err.Error())
	}

	if sender != nil {
		sender.Balance = sender.Balance.Sub(req.Amount)
		if err := s.customers.Update(ctx, sess, sender); err != nil {
			return nil, internalError(err.Error())
		}
	}

	recipient.Balance = recipient.Balance.Add(req.Amount)
	if err := s.customers.Update(ctx, sess, recipient); err != nil {
		return nil, internalError(err.Error())
	}

	if err := sess.Commit(); err != nil {
		return nil, internalError(err.Error())
	}

	kind := "transfer"
	if sender == nil {
		kind = "issuance"
	}
	metrics.RecordTransaction(kind)

	return tx, nil
}

func (s *service) GetTransactionsByCustomer(ctx context.Context, customerID int64, page *paging.Page) ([]transaction.Transaction, error) {
	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, internalError(err.Error())
	}
	defer sess.Close()

	txs, err := s.transactions.GetByCustomer(ctx, sess, customerID, page)
	if err != nil {
		return nil, internalError(err.Error())
	}

	if err := sess.Commit(); err != nil {
		return nil, internalError(err.Error())
	}

	if txs == nil {
		txs = []transaction.Transaction{}
	}
	return txs, nil
}

func (s *service) GetAllTransactions(ctx context.Context, page *paging.Page) ([]transaction.Transaction, error) {
	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, internalError(err.Error())
	}
	defer sess.Close()

	txs, err := s.transactions.GetAll(ctx, sess, page)
	if err != nil {
		return nil, internalError(err.Error())
	}

	if err := sess.Commit(); err != nil {
		return nil, internalError(err.Error())
	}

	if txs == nil {
		txs = []transaction.Transaction{}
	}
	return txs, nil
}

func (s *service) GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, internalError(err.Error())
	}
	defer sess.Close()

	c, err := s.customers.GetByID(ctx, sess, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewError(CodeCustomerNotFound, "customer not found")
		}
		return nil, internalError(err.Error())
	}

	if err := sess.Commit(); err != nil {
		return nil, internalError(err.Error())
	}

	return c, nil
}

// CreateOrUpdateCustomer inserts the customer with a zero balance on first
// contact, or refreshes only the display fields on an existing row. The
// balance is never written here; it moves through committed transactions only.
func (s *service) CreateOrUpdateCustomer(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	if c == nil || c.ID <= 0 {
		return nil, NewError(CodeValidationError, "customer id is required")
	}

	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, internalError(err.Error())
	}
	defer sess.Close()

	existing, err := s.customers.GetByID(ctx, sess, c.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, internalError(err.Error())
	}

	var stored *customer.Customer
	if existing == nil {
		stored = &customer.Customer{
			ID:            c.ID,
			UserName:      c.UserName,
			PersonalName:  c.PersonalName,
			CharacterName: c.CharacterName,
			Balance:       decimal.Zero,
		}
		if err := s.customers.Add(ctx, sess, stored); err != nil {
			return nil, internalError(err.Error())
		}
	} else {
		existing.UserName = c.UserName
		existing.PersonalName = c.PersonalName
		existing.CharacterName = c.CharacterName
		if err := s.customers.Update(ctx, sess, existing); err != nil {
			return nil, internalError(err.Error())
		}
		stored = existing
	}

	if err := sess.Commit(); err != nil {
		return nil, internalError(err.Error())
	}

	return stored, nil
}

func (s *service) UpdateCharacterName(ctx context.Context, id int64, name string) (*customer.Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewError(CodeValidationError, "character name is required")
	}

	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, internalError(err.Error())
	}
	defer sess.Close()

	existing, err := s.customers.GetByID(ctx, sess, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewError(CodeCustomerNotFound, "customer not found")
		}
		return nil, internalError(err.Error())
	}

	existing.CharacterName = name

	if err := s.customers.Update(ctx, sess, existing); err != nil {
		return nil, internalError(err.Error())
	}

	if err := sess.Commit(); err != nil {
		return nil, internalError(err.Error())
	}

	return existing, nil
}

func (s *service) SearchCustomers(ctx context.Context, substring string, page *paging.Page) ([]customer.Customer, error) {
	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, internalError(err.Error())
	}
	defer sess.Close()

	customers, err := s.customers.Search(ctx, sess, substring, page)
	if err != nil {
		return nil, internalError(err.Error())
	}

	if err := sess.Commit(); err != nil {
		return nil, internalError(err.Error())
	}

	if customers == nil {
		customers = []customer.Customer{}
	}
	return customers, nil
}

func (s *service) GetAllCustomers(ctx context.Context, page *paging.Page) ([]customer.Customer, error) {
	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, internalError(err.Error())
	}
	defer sess.Close()

	customers, err := s.customers.GetAll(ctx, sess, page)
	if err != nil {
		return nil, internalError(err.Error())
	}

	if err := sess.Commit(); err != nil {
		return nil, internalError(err.Error())
	}

	if customers == nil {
		customers = []customer.Customer{}
	}
	return customers, nil
}

// CheckAccessCode resolves the employee by name and compares the stored code.
// A zero code is treated as absent.
func (s *service) CheckAccessCode(ctx context.Context, userName string, accessCode int) (uuid.UUID, error) {
	if strings.TrimSpace(userName) == "" {
		return uuid.Nil, NewError(CodeValidationError, "user name must be provided")
	}

	if accessCode == 0 {
		return uuid.Nil, NewError(CodeValidationError, "access code must be provided and non-zero")
	}

	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return uuid.Nil, internalError(err.Error())
	}
	defer sess.Close()

	emp, err := s.employees.GetByName(ctx, sess, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, NewError(CodeEmployeeNotFound, "employee not found")
		}
		return uuid.Nil, internalError("failed to retrieve employee", err.Error())
	}

	if err := sess.Commit(); err != nil {
		return uuid.Nil, internalError(err.Error())
	}

	if emp.AccessCode != accessCode {
		return uuid.Nil, NewError(CodeAuthenticationFailed, "access code does not match")
	}

	return emp.ID, nil
}
