package services

import (
	"context"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/commons"
)

type accountExpirer interface {
	ExpireAccounts(ctx context.Context) (commons.Response[models.ExpirySweepResponse], error)
}

type cardExpirer interface {
	ExpireCards(ctx context.Context) (commons.Response[models.ExpirySweepResponse], error)
}

// ExpirySweeper runs the account sweep then the card sweep as one scheduled job.
type ExpirySweeper struct {
	accounts accountExpirer
	cards    cardExpirer
}

func NewExpirySweeper(accounts accountExpirer, cards cardExpirer) *ExpirySweeper {
	return &ExpirySweeper{accounts: accounts, cards: cards}
}

func (s *ExpirySweeper) Sweep(ctx context.Context) (commons.Response[models.ExpirySweepResponse], error) {
	const op = "expiry sweeper sweep"

	accounts, err := s.accounts.ExpireAccounts(ctx)
	if err != nil {
		return fail[models.ExpirySweepResponse](op, "failed to expire accounts", err, nil)
	}
	cards, err := s.cards.ExpireCards(ctx)
	if err != nil {
		return fail[models.ExpirySweepResponse](op, "failed to expire cards", err, nil)
	}

	result := models.ExpirySweepResponse{
		ExpiredAccounts: accounts.Data.ExpiredAccounts,
		ExpiredCards:    cards.Data.ExpiredCards,
		Cutoff:          accounts.Data.Cutoff,
	}
	return succeed(op, "expiry sweep completed", result, nil)
}
