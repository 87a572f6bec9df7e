package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type CardController struct {
	service service_interfaces.CardService
}

func NewCardController(service service_interfaces.CardService) *CardController {
	return &CardController{service: service}
}

func (c *CardController) RegisterCustomerRoutes(r chi.Router) {
	r.Post("/cards/my/{accountNumber}", c.createMine)
	r.Put("/cards/my/{cardNumber}/activate", c.activateMine)
	r.Get("/cards/my", c.listMine)
	r.Get("/cards/my/account/{accountNumber}", c.listMineByAccount)
}

func (c *CardController) RegisterAdminRoutes(r chi.Router) {
	r.Post("/cards/{accountNumber}", c.create)
	r.Put("/cards/{cardNumber}/activate", c.activate)
	r.Get("/cards", c.list)
	r.Get("/cards/account/{accountNumber}", c.listByAccount)
	r.Get("/customers/{customerId}/cards", c.listForCustomer)
}

func (c *CardController) createMine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := callerID[models.CardResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.CreateCard(r.Context(), chi.URLParam(r, "accountNumber"), &customerID)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *CardController) activateMine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := callerID[models.ActivateCardResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ActivateCard(r.Context(), chi.URLParam(r, "cardNumber"), &customerID)
	respond(w, r, start, http.StatusOK, response, err)
}

// listMine returns the caller's cards, paged when ?page or ?size is present.
func (c *CardController) listMine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := callerID[[]models.CardResponse](w, r, start)
	if !ok {
		return
	}

	if wantsPage(r) {
		page, ok := pageRequest[commons.Page[models.CardResponse]](w, r, start)
		if !ok {
			return
		}
		response, err := c.service.ListCustomerCardsPaged(r.Context(), customerID, page)
		respond(w, r, start, http.StatusOK, response, err)
		return
	}

	response, err := c.service.ListCustomerCards(r.Context(), customerID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CardController) listMineByAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := callerID[[]models.CardResponse](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListCardsByAccount(r.Context(), chi.URLParam(r, "accountNumber"), &customerID)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CardController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.CreateCard(r.Context(), chi.URLParam(r, "accountNumber"), nil)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *CardController) activate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ActivateCard(r.Context(), chi.URLParam(r, "cardNumber"), nil)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CardController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, ok := pageRequest[commons.Page[models.CardResponse]](w, r, start)
	if !ok {
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		response, err := c.service.ListCardsByStatus(r.Context(), status, page)
		respond(w, r, start, http.StatusOK, response, err)
		return
	}

	response, err := c.service.ListAllCards(r.Context(), page)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CardController) listByAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, ok := pageRequest[commons.Page[models.CardResponse]](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListCardsByAccountPaged(r.Context(), chi.URLParam(r, "accountNumber"), page)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CardController) listForCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID, ok := int64Param[commons.Page[models.CardResponse]](w, r, start, "customerId")
	if !ok {
		return
	}
	page, ok := pageRequest[commons.Page[models.CardResponse]](w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListCustomerCardsPaged(r.Context(), customerID, page)
	respond(w, r, start, http.StatusOK, response, err)
}
