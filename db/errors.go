package db

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by operations that target a single document
// by id when no document matches.
var ErrNotFound = errors.New("document not found")

// ResultsNotFound reports whether the error indicates that a query
// matched no documents, from either our own sentinel or the driver's.
func ResultsNotFound(err error) bool {
	if err == nil {
		return false
	}

	cause := errors.Cause(err)

	return cause == ErrNotFound || cause == mongo.ErrNoDocuments
}

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	return mongo.IsDuplicateKeyError(errors.Cause(err))
}
