package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/metrics"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
)

func fail[T any](operation string, message string, err error, fields logger.Fields) (commons.Response[T], error) {
	logger.Error(operation+" failed", err, fields)
	metrics.ObserveOperation(operation, string(commons.KindOf(err)))
	return commons.FailureResponse[T](message, err), err
}

func succeed[T any](operation string, message string, data T, fields logger.Fields) (commons.Response[T], error) {
	logger.Info(operation+" success", fields)
	metrics.ObserveOperation(operation, "")
	return commons.SuccessResponse(message, data), nil
}

// translate swaps a repository miss for the domain-specific not-found error.
func translate(err error, notFound error) error {
	if errors.Is(err, commons.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// lockAccounts row-locks each distinct account in ascending number order.
func lockAccounts(ctx context.Context, repo repo_interfaces.AccountRepository, numbers ...string) (map[string]domain.Account, error) {
	unique := make([]string, 0, len(numbers))
	seen := make(map[string]struct{}, len(numbers))
	for _, number := range numbers {
		if _, ok := seen[number]; ok {
			continue
		}
		seen[number] = struct{}{}
		unique = append(unique, number)
	}
	sort.Strings(unique)

	locked := make(map[string]domain.Account, len(unique))
	for _, number := range unique {
		account, err := repo.GetByAccountNumberForUpdate(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("lock account %s: %w", number, translate(err, commons.ErrAccountNotFound))
		}
		locked[number] = account
	}
	return locked, nil
}

func parseAccountStatus(raw string) (domain.AccountStatus, error) {
	switch status := domain.AccountStatus(raw); status {
	case domain.AccountStatusActive, domain.AccountStatusExpired, domain.AccountStatusDeleted:
		return status, nil
	}
	return "", commons.Validationf("unknown account status %q", raw)
}

func parseCardStatus(raw string) (domain.CardStatus, error) {
	switch status := domain.CardStatus(raw); status {
	case domain.CardStatusActive, domain.CardStatusExpired:
		return status, nil
	}
	return "", commons.Validationf("unknown card status %q", raw)
}
