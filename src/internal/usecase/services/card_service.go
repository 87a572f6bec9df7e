package services

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
)

type CardService struct {
	cardRepo     repo_interfaces.CardRepository
	accountRepo  repo_interfaces.AccountRepository
	customerRepo repo_interfaces.CustomerRepository
	txManager    repo_interfaces.TxManager
	limits       domain.LimitPolicy
	numbers      IdentifierGenerator
	now          func() time.Time
}

func NewCardService(
	cardRepo repo_interfaces.CardRepository,
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
	txManager repo_interfaces.TxManager,
	limits domain.LimitPolicy,
) *CardService {
	return &CardService{
		cardRepo:     cardRepo,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		limits:       limits,
		numbers:      NewCardNumberGenerator(nil),
		now:          time.Now,
	}
}

func (s *CardService) WithClock(now func() time.Time) *CardService {
	s.now = now
	return s
}

func (s *CardService) WithNumberGenerator(gen IdentifierGenerator) *CardService {
	s.numbers = gen
	return s
}

// CreateCard issues a card on an account. With a non-nil callerID the caller
// must own the account and must not be blocked.
func (s *CardService) CreateCard(ctx context.Context, accountNumber string, callerID *int64) (commons.Response[models.CardResponse], error) {
	const op = "card service create card"
	accountNumber = strings.TrimSpace(accountNumber)
	fields := logger.Fields{"accountNumber": accountNumber}
	if callerID != nil {
		fields["customerId"] = *callerID
	}
	logger.Info(op+" request", fields)

	var created domain.Card
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.GetByAccountNumberForUpdate(ctx, accountNumber)
		if err != nil {
			return translate(err, commons.ErrAccountNotFound)
		}

		if callerID != nil {
			if !account.OwnedBy(*callerID) {
				return commons.Unauthorizedf("account %s does not belong to customer %d", accountNumber, *callerID)
			}
			customer, err := s.customerRepo.GetByID(ctx, *callerID)
			if err != nil {
				return translate(err, commons.ErrCustomerNotFound)
			}
			if customer.Status == domain.CustomerStatusBlocked {
				return commons.InvalidStatef("customer %d is blocked", *callerID)
			}
		}

		if !account.IsActive() {
			return commons.InvalidStatef("account %s is %s", accountNumber, account.Status)
		}

		count, err := s.cardRepo.CountByAccountNumber(ctx, accountNumber)
		if err != nil {
			return err
		}
		if count >= s.limits.MaxCardsPerAccount {
			return commons.LimitExceededf("account %s already holds %d cards", accountNumber, count)
		}

		number, err := allocateUnique(ctx, s.numbers, s.cardRepo.ExistsByCardNumber)
		if err != nil {
			return err
		}

		now := s.now()
		created, err = s.cardRepo.Create(ctx, domain.Card{
			CardNumber:    number,
			AccountNumber: accountNumber,
			IssueDate:     now,
			ExpiryDate:    now.AddDate(domain.CardValidity, 0, 0),
			Status:        domain.CardStatusActive,
		})
		return err
	})
	if err != nil {
		return fail[models.CardResponse](op, "failed to create card", err, fields)
	}

	fields["cardNumber"] = created.CardNumber
	return succeed(op, "card created successfully", models.NewCardResponse(created), fields)
}

// ActivateCard moves a non-active card to ACTIVE and reports the expiry it replaced.
func (s *CardService) ActivateCard(ctx context.Context, cardNumber string, callerID *int64) (commons.Response[models.ActivateCardResponse], error) {
	const op = "card service activate card"
	cardNumber = strings.TrimSpace(cardNumber)
	fields := logger.Fields{"cardNumber": cardNumber}
	if callerID != nil {
		fields["customerId"] = *callerID
	}
	logger.Info(op+" request", fields)

	var (
		card     domain.Card
		previous time.Time
	)
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.cardRepo.GetByCardNumberForUpdate(ctx, cardNumber)
		if err != nil {
			return translate(err, commons.ErrCardNotFound)
		}

		if callerID != nil {
			account, err := s.accountRepo.GetByAccountNumber(ctx, card.AccountNumber)
			if err != nil {
				return translate(err, commons.ErrAccountNotFound)
			}
			if !account.OwnedBy(*callerID) {
				return commons.Unauthorizedf("card %s does not belong to customer %d", cardNumber, *callerID)
			}
		}

		if card.IsActive() {
			return commons.InvalidStatef("card %s is already active", cardNumber)
		}

		previous = card.ExpiryDate
		card.Status = domain.CardStatusActive
		card.ExpiryDate = s.now().AddDate(domain.CardValidity, 0, 0)
		return s.cardRepo.UpdateStatus(ctx, cardNumber, card.Status, card.ExpiryDate)
	})
	if err != nil {
		return fail[models.ActivateCardResponse](op, "failed to activate card", err, fields)
	}

	return succeed(op, "card activated successfully", models.ActivateCardResponse{
		CardResponse:       models.NewCardResponse(card),
		PreviousExpiryDate: previous.Format("2006-01-02"),
	}, fields)
}

// ListCardsByAccount returns every card on an account, owner-restricted when callerID is set.
func (s *CardService) ListCardsByAccount(ctx context.Context, accountNumber string, callerID *int64) (commons.Response[[]models.CardResponse], error) {
	const op = "card service list cards by account"
	accountNumber = strings.TrimSpace(accountNumber)
	fields := logger.Fields{"accountNumber": accountNumber}

	if callerID != nil {
		account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
		if err != nil {
			return fail[[]models.CardResponse](op, "failed to list cards", translate(err, commons.ErrAccountNotFound), fields)
		}
		if !account.OwnedBy(*callerID) {
			err := commons.Unauthorizedf("account %s does not belong to customer %d", accountNumber, *callerID)
			return fail[[]models.CardResponse](op, "failed to list cards", err, fields)
		}
	}

	cards, err := s.cardRepo.ListByAccountNumber(ctx, accountNumber)
	if err != nil {
		return fail[[]models.CardResponse](op, "failed to list cards", err, fields)
	}
	return succeed(op, "cards fetched successfully", cardResponses(cards), fields)
}

func (s *CardService) ListCardsByAccountPaged(ctx context.Context, accountNumber string, page commons.PageRequest) (commons.Response[commons.Page[models.CardResponse]], error) {
	const op = "card service list cards by account paged"
	page = page.Normalize()
	accountNumber = strings.TrimSpace(accountNumber)
	fields := logger.Fields{"accountNumber": accountNumber, "page": page.Page, "size": page.Size}

	cards, total, err := s.cardRepo.ListByAccountNumberPaged(ctx, accountNumber, page)
	if err != nil {
		return fail[commons.Page[models.CardResponse]](op, "failed to list cards", err, fields)
	}
	return succeed(op, "cards fetched successfully", commons.MapPage(commons.NewPage(cards, page, total), models.NewCardResponse), fields)
}

func (s *CardService) ListCustomerCards(ctx context.Context, customerID int64) (commons.Response[[]models.CardResponse], error) {
	const op = "card service list customer cards"
	fields := logger.Fields{"customerId": customerID}

	cards, err := s.cardRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return fail[[]models.CardResponse](op, "failed to list cards", err, fields)
	}
	return succeed(op, "cards fetched successfully", cardResponses(cards), fields)
}

func (s *CardService) ListCustomerCardsPaged(ctx context.Context, customerID int64, page commons.PageRequest) (commons.Response[commons.Page[models.CardResponse]], error) {
	const op = "card service list customer cards paged"
	page = page.Normalize()
	fields := logger.Fields{"customerId": customerID, "page": page.Page, "size": page.Size}

	cards, total, err := s.cardRepo.ListByCustomerIDPaged(ctx, customerID, page)
	if err != nil {
		return fail[commons.Page[models.CardResponse]](op, "failed to list cards", err, fields)
	}
	return succeed(op, "cards fetched successfully", commons.MapPage(commons.NewPage(cards, page, total), models.NewCardResponse), fields)
}

func (s *CardService) ListCardsByStatus(ctx context.Context, status string, page commons.PageRequest) (commons.Response[commons.Page[models.CardResponse]], error) {
	const op = "card service list cards by status"
	page = page.Normalize()
	fields := logger.Fields{"status": status, "page": page.Page, "size": page.Size}

	parsed, err := parseCardStatus(strings.ToUpper(strings.TrimSpace(status)))
	if err != nil {
		return fail[commons.Page[models.CardResponse]](op, "validation failed", err, fields)
	}

	cards, total, err := s.cardRepo.ListByStatus(ctx, parsed, page)
	if err != nil {
		return fail[commons.Page[models.CardResponse]](op, "failed to list cards", err, fields)
	}
	return succeed(op, "cards fetched successfully", commons.MapPage(commons.NewPage(cards, page, total), models.NewCardResponse), fields)
}

func (s *CardService) ListAllCards(ctx context.Context, page commons.PageRequest) (commons.Response[commons.Page[models.CardResponse]], error) {
	const op = "card service list all cards"
	page = page.Normalize()
	fields := logger.Fields{"page": page.Page, "size": page.Size}

	cards, total, err := s.cardRepo.ListAll(ctx, page)
	if err != nil {
		return fail[commons.Page[models.CardResponse]](op, "failed to list cards", err, fields)
	}
	return succeed(op, "cards fetched successfully", commons.MapPage(commons.NewPage(cards, page, total), models.NewCardResponse), fields)
}

// ExpireCards flips ACTIVE cards whose expiry date is before today.
func (s *CardService) ExpireCards(ctx context.Context) (commons.Response[models.ExpirySweepResponse], error) {
	const op = "card service expire cards"
	cutoff := startOfDay(s.now())
	fields := logger.Fields{"cutoff": cutoff.Format(time.RFC3339)}
	logger.Info(op+" request", fields)

	flipped, err := s.cardRepo.ExpireBefore(ctx, cutoff)
	if err != nil {
		return fail[models.ExpirySweepResponse](op, "failed to expire cards", err, fields)
	}

	fields["expired"] = flipped
	return succeed(op, "cards expired successfully", models.ExpirySweepResponse{
		ExpiredCards: flipped,
		Cutoff:       cutoff.Format(time.RFC3339),
	}, fields)
}

func cardResponses(cards []domain.Card) []models.CardResponse {
	out := make([]models.CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, models.NewCardResponse(card))
	}
	return out
}
