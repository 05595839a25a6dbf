package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	bookrepo "library-catalog/internal/domains/book/repository"
)

func TestStaleCacheKeys_CascadeCoversDeletedBooks(t *testing.T) {
	authorID := uuid.New()
	bookA := uuid.New()
	bookB := uuid.New()

	keys := staleCacheKeys(authorID, []uuid.UUID{bookA, bookB})

	// A cascade delete must evict every deleted book's entry, not just
	// the author's, or a cached book would outlive its row.
	assert.Equal(t, []string{
		"author:" + authorID.String(),
		bookrepo.CacheKey(bookA),
		bookrepo.CacheKey(bookB),
	}, keys)
}

func TestStaleCacheKeys_NoBooks(t *testing.T) {
	authorID := uuid.New()

	keys := staleCacheKeys(authorID, nil)

	assert.Equal(t, []string{"author:" + authorID.String()}, keys)
}

func TestBookCacheKeyFormat(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "book:"+id.String(), bookrepo.CacheKey(id))
}
