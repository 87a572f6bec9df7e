package commons

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"card not found", ErrCardNotFound, KindNotFound},
		{"record not found", fmt.Errorf("get card: %w", ErrRecordNotFound), KindNotFound},
		{"validation", Validationf("amount must be greater than zero"), KindValidation},
		{"invalid state", InvalidStatef("card %s is not active", "1"), KindInvalidState},
		{"limit", LimitExceededf("daily limit"), KindLimitExceeded},
		{"unauthorized", Unauthorizedf("not owner"), KindUnauthorized},
		{"funds", fmt.Errorf("debit: %w", ErrInsufficientFunds), KindInsufficientFunds},
		{"duplicate", ErrDuplicateResource, KindDuplicateResource},
		{"other", errors.New("boom"), KindInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestFailureResponseCarriesKind(t *testing.T) {
	resp := FailureResponse[struct{}]("failed to transfer", ErrCardNotFound)
	assert.False(t, resp.Success)
	assert.Equal(t, string(KindNotFound), resp.Code)
	assert.Equal(t, []string{"card not found"}, resp.Errors)
}

func TestFailureResponseSplitsValidationRules(t *testing.T) {
	err := fmt.Errorf("%w: %s", ErrValidation, "firstName is required; phoneNumber must contain digits only")
	resp := FailureResponse[struct{}]("validation failed", err)
	assert.Equal(t, string(KindValidation), resp.Code)
	assert.Equal(t, []string{"firstName is required", "phoneNumber must contain digits only"}, resp.Errors)

	assert.Empty(t, FailureResponse[struct{}]("nothing", nil).Code)
}

func TestNewPageComputesTotalPages(t *testing.T) {
	req := PageRequest{Page: 1, Size: 2}.Normalize()
	page := NewPage([]int{3, 4}, req, 5)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, req.Offset())
	assert.Len(t, page.Items, 2)
}
