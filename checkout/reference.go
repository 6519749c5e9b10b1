package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/lithammer/shortuuid/v3"
)

const (
	defaultReferencePrefix = "TBK"
	maxReferenceAttempts   = 10
)

type referenceStore interface {
	ReferenceExists(ctx context.Context, tenantID, reference string) (bool, error)
}

// ReferenceGenerator produces human-readable booking references unique within
// a tenant. Generation is pure apart from the existence check.
type ReferenceGenerator struct {
	store      referenceStore
	retryDelay time.Duration
}

func NewReferenceGenerator(store referenceStore) *ReferenceGenerator {
	return &ReferenceGenerator{
		store:      store,
		retryDelay: 30 * time.Millisecond,
	}
}

// Generate returns a reference of the form <PREFIX>-<8-digit-timestamp>-<6-char-random>.
// On repeated collisions it falls back to a full-timestamp reference with a
// longer random suffix.
func (g *ReferenceGenerator) Generate(ctx context.Context, tenantID, tenantName string) (string, error) {
	prefix := referencePrefix(tenantID, tenantName)

	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference := fmt.Sprintf("%s-%08d-%s", prefix, time.Now().UnixMilli()%1e8, randomSuffix(6))

		exists, err := g.store.ReferenceExists(ctx, tenantID, reference)
		if err != nil {
			return "", fmt.Errorf("could not check reference uniqueness: %w", err)
		}
		if !exists {
			return reference, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.retryDelay):
		}
	}

	// Collision risk with the full timestamp is negligible.
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixNano(), randomSuffix(10)), nil
}

func referencePrefix(tenantID, tenantName string) string {
	if tenantName != "" {
		var initials []rune
		for _, word := range strings.Fields(tenantName) {
			r := []rune(word)[0]
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				initials = append(initials, unicode.ToUpper(r))
			}
			if len(initials) == 4 {
				break
			}
		}
		if len(initials) > 0 {
			return string(initials)
		}
	}

	if tenantID != "" {
		var chars []rune
		for _, r := range tenantID {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				chars = append(chars, unicode.ToUpper(r))
			}
			if len(chars) == 4 {
				break
			}
		}
		if len(chars) > 0 {
			return string(chars)
		}
	}

	return defaultReferencePrefix
}

func randomSuffix(length int) string {
	suffix := strings.ToUpper(shortuuid.New())
	for len(suffix) < length {
		suffix += strings.ToUpper(shortuuid.New())
	}
	return suffix[:length]
}
