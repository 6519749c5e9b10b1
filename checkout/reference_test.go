package checkout

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type referenceStoreStub struct {
	calls     int
	existsFor int
	existsAll bool
	seenRefs  []string
}

func (s *referenceStoreStub) ReferenceExists(ctx context.Context, tenantID, reference string) (bool, error) {
	s.calls++
	s.seenRefs = append(s.seenRefs, reference)
	if s.existsAll {
		return true, nil
	}
	return s.calls <= s.existsFor, nil
}

func TestReferenceGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("format", func(t *testing.T) {
		g := NewReferenceGenerator(&referenceStoreStub{})

		reference, err := g.Generate(ctx, "tenant-1", "Sunny Side Tours")
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^SST-\d{8}-[0-9A-Z]{6}$`), reference)
	})

	t.Run("prefix falls back to tenant id", func(t *testing.T) {
		g := NewReferenceGenerator(&referenceStoreStub{})

		reference, err := g.Generate(ctx, "acme-travel", "")
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^ACME-`), reference)
	})

	t.Run("default prefix", func(t *testing.T) {
		g := NewReferenceGenerator(&referenceStoreStub{})

		reference, err := g.Generate(ctx, "", "")
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^TBK-`), reference)
	})

	t.Run("retries on collision", func(t *testing.T) {
		store := &referenceStoreStub{existsFor: 2}
		g := NewReferenceGenerator(store)
		g.retryDelay = time.Millisecond

		reference, err := g.Generate(ctx, "tenant-1", "Sunny Side Tours")
		require.NoError(t, err)

		assert.Equal(t, 3, store.calls)
		assert.Regexp(t, regexp.MustCompile(`^SST-\d{8}-[0-9A-Z]{6}$`), reference)
	})

	t.Run("falls back to a long reference when every attempt collides", func(t *testing.T) {
		store := &referenceStoreStub{existsAll: true}
		g := NewReferenceGenerator(store)
		g.retryDelay = time.Millisecond

		reference, err := g.Generate(ctx, "tenant-1", "Sunny Side Tours")
		require.NoError(t, err)

		assert.Equal(t, maxReferenceAttempts, store.calls)
		assert.Regexp(t, regexp.MustCompile(`^SST-\d+-[0-9A-Z]{10}$`), reference)
		assert.NotContains(t, store.seenRefs, reference)
	})
}

func TestReferencePrefix(t *testing.T) {
	assert.Equal(t, "SST", referencePrefix("tenant-1", "Sunny Side Tours"))
	assert.Equal(t, "ABGD", referencePrefix("tenant-1", "Alpha Beta Gamma Delta Epsilon"))
	assert.Equal(t, "ACME", referencePrefix("acme-travel-corp", ""))
	assert.Equal(t, "TBK", referencePrefix("", ""))
	assert.Equal(t, "TBK", referencePrefix("----", "   "))
}
