package services

import (
	"context"

	"wikiflow/internal/domain/models"
)

// ActorIDResolver maps a username to a stored user id.
//
// ok is false for blank or system actors and for unknown users; audit
// records then carry no actor id.
type ActorIDResolver interface {
	Resolve(ctx context.Context, username string) (id string, ok bool)
}

// Authorizer checks whether a caller may perform a class of operation.
// Services call it before mutating anything.
type Authorizer interface {
	// CanEdit allows content changes: articles, versions, reviews, comments, tags
	CanEdit(caller models.Caller) error

	// CanAdminister allows catalog changes such as creating spaces
	CanAdminister(caller models.Caller) error
}
