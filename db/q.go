package db

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Q holds all the configuration for a query against a collection:
// filter, projection, sort, skip, and limit.
type Q struct {
	filter     any
	projection any
	sort       []string
	skip       int
	limit      int
}

// Query returns a Q with the given filter and no other options set.
func Query(filter any) Q {
	return Q{filter: filter}
}

func (q Q) Filter(filter any) Q {
	q.filter = filter
	return q
}

func (q Q) Project(projection any) Q {
	q.projection = projection
	return q
}

// Sort takes field names in mgo style: a "-" prefix sorts the field
// descending.
func (q Q) Sort(sort []string) Q {
	q.sort = sort
	return q
}

func (q Q) Skip(skip int) Q {
	q.skip = skip
	return q
}

func (q Q) Limit(limit int) Q {
	q.limit = limit
	return q
}

func sortSpec(sort []string) bson.D {
	spec := make(bson.D, 0, len(sort))
	for _, field := range sort {
		order := 1
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			order = -1
		}
		spec = append(spec, bson.E{Key: field, Value: order})
	}

	return spec
}
