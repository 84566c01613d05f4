// Package policy holds the compiled-in access-control tables: which catalog
// fields each role may see per endpoint, and how internal column names are
// renamed for public output. The tables are immutable after process start.
package policy

import (
	"strings"

	"github.com/TanmoyTheBoT/fmdb-api/internal/models"
)

// Endpoint names a data-returning endpoint with its own projection table.
type Endpoint string

// Endpoints with role-scoped field lists.
const (
	EndpointLookup Endpoint = "lookup"
	EndpointSearch Endpoint = "search"
)

// AllFields is the sentinel meaning the full backing record, unprojected.
const AllFields = "*"

// endpointFields maps endpoint x role to the ordered list of permitted
// columns. Every endpoint must carry a free entry: it doubles as the fallback
// for unrecognized roles, so a bad role never widens the projection.
var endpointFields = map[Endpoint]map[models.Role][]string{
	EndpointLookup: {
		models.RoleFree:  {"imdb_id", "title", "release_year", "type", "poster"},
		models.RolePaid:  {"imdb_id", "title", "release_year", "type", "poster", "genres", "director"},
		models.RoleAdmin: {AllFields},
	},
	EndpointSearch: {
		models.RoleFree:  {"imdb_id", "title", "release_year", "type", "poster"},
		models.RolePaid:  {"imdb_id", "title", "release_year", "type", "poster", "genres"},
		models.RoleAdmin: {"imdb_id", "title", "release_year", "type", "poster", "genres", "director", "actors"},
	},
}

// fieldNames renames internal columns to their public output identifiers.
// Columns without an entry pass through unchanged.
var fieldNames = map[string]string{
	"imdb_id":      "imdbID",
	"title":        "Title",
	"release_year": "Year",
	"type":         "Type",
	"poster":       "Poster",
	"genres":       "Genre",
	"director":     "Director",
	"actors":       "Actors",
}

// Fields returns the ordered field list for a role on an endpoint. Roles
// without an explicit entry fall back to the free-tier list. The returned
// slice is a copy; callers may not mutate the tables.
func Fields(role models.Role, endpoint Endpoint) []string {
	roles, ok := endpointFields[endpoint]
	if !ok {
		return nil
	}
	fields, ok := roles[role]
	if !ok {
		fields = roles[models.RoleFree]
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// IsAllFields reports whether the field list is the unprojected sentinel.
func IsAllFields(fields []string) bool {
	for _, f := range fields {
		if f == AllFields {
			return true
		}
	}
	return false
}

// SelectList renders a field list as the column clause of a SELECT. The
// inputs only ever come from the compiled-in tables above, never from the
// request, so joining them into SQL is safe.
func SelectList(fields []string) string {
	if IsAllFields(fields) {
		return AllFields
	}
	return strings.Join(fields, ", ")
}

// PublicName returns the public output identifier for an internal column.
func PublicName(column string) string {
	if name, ok := fieldNames[column]; ok {
		return name
	}
	return column
}

// MapFields produces the public-facing record for a raw catalog row:
// null-valued columns are omitted entirely, everything else is renamed via
// the field-name table and carried over unchanged. This applies to projected
// and unprojected rows alike, so null omission is the single source of
// "missing field" semantics.
func MapFields(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for column, value := range row {
		if value == nil {
			continue
		}
		out[PublicName(column)] = value
	}
	return out
}
