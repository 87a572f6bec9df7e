package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// IdentifierGenerator produces candidate identifiers. Candidates are not
// guaranteed unique; callers check existence and retry.
type IdentifierGenerator interface {
	Generate() string
}

type GeneratorFunc func() string

func (f GeneratorFunc) Generate() string { return f() }

// AccountNumberGenerator yields "ACC" + unix seconds + three random digits.
type AccountNumberGenerator struct {
	now func() time.Time
}

func NewAccountNumberGenerator(now func() time.Time) AccountNumberGenerator {
	if now == nil {
		now = time.Now
	}
	return AccountNumberGenerator{now: now}
}

func (g AccountNumberGenerator) Generate() string {
	return fmt.Sprintf("ACC%d%03d", g.now().Unix(), 100+rand.IntN(900))
}

// CardNumberGenerator yields sixteen digits: ten of unix seconds and six random.
type CardNumberGenerator struct {
	now func() time.Time
}

func NewCardNumberGenerator(now func() time.Time) CardNumberGenerator {
	if now == nil {
		now = time.Now
	}
	return CardNumberGenerator{now: now}
}

func (g CardNumberGenerator) Generate() string {
	return fmt.Sprintf("%010d%06d", g.now().Unix()%10_000_000_000, rand.IntN(1_000_000))
}

// allocateUnique regenerates until exists reports a free identifier.
func allocateUnique(ctx context.Context, gen IdentifierGenerator, exists func(context.Context, string) (bool, error)) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := gen.Generate()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check identifier %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
}
