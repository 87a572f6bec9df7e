package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type CustomerController struct {
	service   service_interfaces.CustomerService
	suspicion service_interfaces.SuspicionService
}

func NewCustomerController(service service_interfaces.CustomerService, suspicion service_interfaces.SuspicionService) *CustomerController {
	return &CustomerController{service: service, suspicion: suspicion}
}

func (c *CustomerController) RegisterAdminRoutes(r chi.Router) {
	r.Post("/customers", c.create)
	r.Get("/customers/{customerId}", c.get)
	r.Post("/customers/{customerId}/evaluate", c.evaluate)
}

func (c *CustomerController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeBody[models.CreateCustomerRequest, models.CustomerResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.CreateCustomer(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *CustomerController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := int64Param[models.CustomerResponse](w, r, start, "customerId")
	if !ok {
		return
	}

	response, err := c.service.GetCustomer(r.Context(), customerID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CustomerController) evaluate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := int64Param[models.SuspicionResponse](w, r, start, "customerId")
	if !ok {
		return
	}

	response, err := c.suspicion.Evaluate(r.Context(), customerID)
	respond(w, r, start, http.StatusOK, response, err)
}
