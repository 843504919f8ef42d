package domain

import "errors"

// ErrScopeNotFound is returned by a Storage backend when no document has
// ever been committed for the requested scope key.
var ErrScopeNotFound = errors.New("scope not found")

// ErrUnknownIntent is returned when a label outside the declared
// vocabulary reaches the response catalog. The router never routes the
// unresolved sentinel, so seeing this means a classifier/catalog mismatch.
var ErrUnknownIntent = errors.New("unknown intent label")
