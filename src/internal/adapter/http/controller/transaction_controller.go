package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type TransactionController struct {
	service service_interfaces.TransferService
}

func NewTransactionController(service service_interfaces.TransferService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterCustomerRoutes(r chi.Router) {
	r.Post("/transactions/transfer", c.transfer)
	r.Get("/transactions/my", c.listMine)
}

func (c *TransactionController) RegisterAdminRoutes(r chi.Router) {
	r.Post("/transactions/deposit", c.deposit)
	r.Get("/transactions", c.list)
	r.Get("/transactions/{transactionId}", c.get)
	r.Get("/customers/{customerId}/transactions", c.listForCustomer)
}

func (c *TransactionController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	customerID, ok := callerID[models.TransactionResponse](w, r, start)
	if !ok {
		return
	}
	req, ok := decodeBody[models.TransferRequest, models.TransactionResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.Transfer(r.Context(), req, customerID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *TransactionController) listMine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := callerID[commons.Page[models.TransactionResponse]](w, r, start)
	if !ok {
		return
	}
	page, ok := pageRequest[commons.Page[models.TransactionResponse]](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListCustomerTransactions(r.Context(), customerID, page)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *TransactionController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeBody[models.DepositRequest, models.TransactionResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.Deposit(r.Context(), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *TransactionController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, ok := pageRequest[commons.Page[models.TransactionResponse]](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListAllTransactions(r.Context(), page)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *TransactionController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetTransaction(r.Context(), chi.URLParam(r, "transactionId"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *TransactionController) listForCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := int64Param[commons.Page[models.TransactionResponse]](w, r, start, "customerId")
	if !ok {
		return
	}
	page, ok := pageRequest[commons.Page[models.TransactionResponse]](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListCustomerTransactions(r.Context(), customerID, page)
	respond(w, r, start, http.StatusOK, response, err)
}
