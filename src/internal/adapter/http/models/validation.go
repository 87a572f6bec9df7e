package models

import (
	"fmt"
	"strings"

	"github.com/api-sage/bank-ledger/src/internal/commons"
)

const dateLayout = "2006-01-02"

func validationError(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", commons.ErrValidation, strings.Join(errs, "; "))
}

func digitsOnly(value string) bool {
	if value == "" {
		return false
	}
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
