package wiki

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"wikiflow/internal/config"
	"wikiflow/internal/domain"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackSlug is used when a title has no usable characters.
const fallbackSlug = "article"

// Slugify derives a URL-safe slug from a title: diacritics stripped, lower
// case ASCII letters and digits, single hyphens between words, at most
// config.MaxSlugLength characters.
func Slugify(title string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		stripped = title
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := truncateSlug(b.String(), config.MaxSlugLength)
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// truncateSlug cuts s to max bytes and drops any trailing hyphens. Slugs are
// ASCII so byte and rune lengths agree.
func truncateSlug(s string, max int) string {
	if len(s) > max {
		s = s[:max]
	}
	return strings.TrimRight(s, "-")
}

// withSuffix appends -n to base, shortening base so the result fits the slug limit.
func withSuffix(base string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	return truncateSlug(base, config.MaxSlugLength-len(suffix)) + suffix
}

// SlugAllocator picks a slug that is free within a space.
//
// The existence check is advisory: two concurrent creators can pick the same
// candidate, so the store's unique (space, slug) constraint decides and the
// caller retries the whole insert on conflict.
type SlugAllocator struct {
	articleRepo wikiRepo.ArticleRepository
}

// NewSlugAllocator creates a new slug allocator
func NewSlugAllocator(articleRepo wikiRepo.ArticleRepository) *SlugAllocator {
	return &SlugAllocator{articleRepo: articleRepo}
}

// Allocate returns base if unused in the space, otherwise the first free
// base-2, base-3, ... candidate.
func (a *SlugAllocator) Allocate(ctx context.Context, spaceID, base string) (string, error) {
	candidate := base
	for n := 2; n <= config.MaxSlugSuffix+1; n++ {
		exists, err := a.articleRepo.ExistsBySlug(ctx, spaceID, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = withSuffix(base, n)
	}

	return "", &domain.ConflictError{
		Message:      fmt.Sprintf("no free slug for %q", base),
		ResourceType: "article",
		ResourceID:   base,
	}
}
