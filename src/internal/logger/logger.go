package logger

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Fields map[string]any

var base = newBase()

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"channelkey":    {},
	"authorization": {},
	"token":         {},
	"fincode":       {},
}

// panKeys hold card numbers; only the last four digits are logged.
var panKeys = map[string]struct{}{
	"cardnumber":       {},
	"debitcardnumber":  {},
	"creditcardnumber": {},
}

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel accepts any logrus level name; unknown names leave the level unchanged.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return
	}
	base.SetLevel(parsed)
}

func Info(message string, fields Fields) {
	base.WithFields(toLogrus(fields)).Info(message)
}

func Warn(message string, fields Fields) {
	base.WithFields(toLogrus(fields)).Warn(message)
}

func Error(message string, err error, fields Fields) {
	entry := base.WithFields(toLogrus(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(message)
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func toLogrus(fields Fields) logrus.Fields {
	out := logrus.Fields{}
	for key, value := range fields {
		masked, _ := maskField(key, value)
		out[key] = masked
	}
	return out
}

// maskField hides secrets entirely and card numbers down to their last four digits.
func maskField(key string, value any) (any, bool) {
	normalized := normalizeKey(key)
	if _, ok := sensitiveKeys[normalized]; ok {
		return "******", true
	}
	if _, ok := panKeys[normalized]; ok {
		if pan, isString := value.(string); isString {
			return maskPAN(pan), true
		}
	}
	return value, false
}

func maskPAN(pan string) string {
	if len(pan) <= 4 {
		return pan
	}
	return strings.Repeat("*", len(pan)-4) + pan[len(pan)-4:]
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if masked, ok := maskField(key, inner); ok {
				out[key] = masked
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(key)))
}
