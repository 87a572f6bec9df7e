package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

// JobController lets operators trigger the periodic jobs out of schedule.
type JobController struct {
	settlement service_interfaces.SettlementService
	expiry     service_interfaces.ExpirySweeper
}

func NewJobController(settlement service_interfaces.SettlementService, expiry service_interfaces.ExpirySweeper) *JobController {
	return &JobController{settlement: settlement, expiry: expiry}
}

func (c *JobController) RegisterAdminRoutes(r chi.Router) {
	r.Post("/jobs/settlement", c.settle)
	r.Post("/jobs/expiry", c.expire)
}

func (c *JobController) settle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.settlement.RunOnce(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *JobController) expire(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.expiry.Sweep(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}
