package wiki

import "wikiflow/internal/domain/models"

// Visibility decides what a caller may read. Every read path (article list
// and fetch, search, versions, comments, audit) goes through this type so
// restricted callers see the same subset everywhere.
type Visibility struct {
	restricted      bool
	includeArchived bool
}

// NewVisibility builds the read filter for caller. includeArchived only
// widens the view of unrestricted roles.
func NewVisibility(caller models.Caller, includeArchived bool) Visibility {
	restricted := caller.Role.Restricted()
	return Visibility{
		restricted:      restricted,
		includeArchived: includeArchived && !restricted,
	}
}

// Restricted reports whether the caller only sees published content.
func (v Visibility) Restricted() bool {
	return v.restricted
}

// Statuses returns the article statuses visible to the caller, in lifecycle order.
func (v Visibility) Statuses() []ArticleStatus {
	switch {
	case v.restricted:
		return []ArticleStatus{StatusPublished}
	case v.includeArchived:
		return append([]ArticleStatus(nil), AllStatuses...)
	default:
		return []ArticleStatus{StatusDraft, StatusInReview, StatusPublished}
	}
}

// CanSee reports whether an article in the given status is visible.
func (v Visibility) CanSee(status ArticleStatus) bool {
	for _, s := range v.Statuses() {
		if s == status {
			return true
		}
	}
	return false
}

// CanSeeArticle reports whether the article itself is visible.
func (v Visibility) CanSeeArticle(a *Article) bool {
	return a != nil && v.CanSee(a.Status)
}

// CanSeeVersion reports whether versionNo of a is visible. Restricted callers
// only see the published lineage, i.e. versions up to the current one.
func (v Visibility) CanSeeVersion(a *Article, versionNo int) bool {
	if !v.CanSeeArticle(a) || versionNo < 1 {
		return false
	}
	if v.restricted && versionNo > a.CurrentVersionNo {
		return false
	}
	return true
}

// PublicEventsOnly reports whether audit reads must be limited to public events.
func (v Visibility) PublicEventsOnly() bool {
	return v.restricted
}
