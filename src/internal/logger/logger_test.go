package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePayloadMasksNestedSensitiveKeys(t *testing.T) {
	payload := map[string]any{
		"customerId": 7,
		"profile": map[string]any{
			"finCode": "5ABCD12",
			"phone":   "+994501112233",
		},
		"items": []any{map[string]any{"password": "secret"}},
	}

	out, ok := SanitizePayload(payload).(map[string]any)
	assert.True(t, ok)

	profile := out["profile"].(map[string]any)
	assert.Equal(t, "******", profile["finCode"])
	assert.Equal(t, "+994501112233", profile["phone"])

	items := out["items"].([]any)
	assert.Equal(t, "******", items[0].(map[string]any)["password"])
}

func TestToLogrusMasksTopLevelKeys(t *testing.T) {
	fields := toLogrus(Fields{"Authorization": "Bearer x", "path": "/health"})
	assert.Equal(t, "******", fields["Authorization"])
	assert.Equal(t, "/health", fields["path"])
}

func TestCardNumbersKeepOnlyLastFourDigits(t *testing.T) {
	fields := toLogrus(Fields{"debitCardNumber": "1700000000123456", "amount": "10"})
	assert.Equal(t, "************3456", fields["debitCardNumber"])
	assert.Equal(t, "10", fields["amount"])

	out := SanitizePayload(map[string]any{"card_number": "1700000000654321"}).(map[string]any)
	assert.Equal(t, "************4321", out["card_number"])
}
