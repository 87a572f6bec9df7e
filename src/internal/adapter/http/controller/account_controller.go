package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterCustomerRoutes(r chi.Router) {
	r.Post("/accounts/my", c.createMine)
	r.Get("/accounts/my", c.listMine)
	r.Get("/accounts/my/{accountNumber}", c.getMine)
	r.Put("/accounts/my/{accountNumber}/activate", c.activateMine)
}

func (c *AccountController) RegisterAdminRoutes(r chi.Router) {
	r.Post("/accounts", c.create)
	r.Get("/accounts", c.list)
	r.Get("/accounts/{accountNumber}", c.get)
	r.Get("/customers/{customerId}/accounts", c.listForCustomer)
}

func (c *AccountController) createMine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := callerID[models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.CreateAccount(r.Context(), customerID)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *AccountController) listMine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := callerID[[]models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListCustomerAccounts(r.Context(), customerID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) getMine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := callerID[models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.GetAccount(r.Context(), chi.URLParam(r, "accountNumber"), &customerID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) activateMine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := callerID[models.AccountResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ActivateAccount(r.Context(), chi.URLParam(r, "accountNumber"), customerID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeBody[models.CreateAccountRequest, models.AccountResponse](w, r, start)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		respond(w, r, start, http.StatusCreated, commons.FailureResponse[models.AccountResponse]("validation failed", err), err)
		return
	}

	response, err := c.service.CreateAccount(r.Context(), req.CustomerID)
	respond(w, r, start, http.StatusCreated, response, err)
}

// list serves every account, or only those in ?status= when given.
func (c *AccountController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, ok := pageRequest[commons.Page[models.AccountResponse]](w, r, start)
	if !ok {
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		response, err := c.service.ListAccountsByStatus(r.Context(), status, page)
		respond(w, r, start, http.StatusOK, response, err)
		return
	}

	response, err := c.service.ListAllAccounts(r.Context(), page)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAccount(r.Context(), chi.URLParam(r, "accountNumber"), nil)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) listForCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := int64Param[[]models.AccountResponse](w, r, start, "customerId")
	if !ok {
		return
	}

	response, err := c.service.ListCustomerAccounts(r.Context(), customerID)
	respond(w, r, start, http.StatusOK, response, err)
}
