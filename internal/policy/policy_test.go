package policy

import (
	"reflect"
	"testing"

	"github.com/TanmoyTheBoT/fmdb-api/internal/models"
)

func TestFields(t *testing.T) {
	t.Run("free tier lookup fields", func(t *testing.T) {
		got := Fields(models.RoleFree, EndpointLookup)
		want := []string{"imdb_id", "title", "release_year", "type", "poster"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Fields(free, lookup) = %v, want %v", got, want)
		}
	})

	t.Run("admin lookup is unprojected", func(t *testing.T) {
		got := Fields(models.RoleAdmin, EndpointLookup)
		if !IsAllFields(got) {
			t.Errorf("Fields(admin, lookup) = %v, want all-fields sentinel", got)
		}
	})

	t.Run("admin search is a bounded list", func(t *testing.T) {
		got := Fields(models.RoleAdmin, EndpointSearch)
		if IsAllFields(got) {
			t.Errorf("Fields(admin, search) = %v, want explicit list", got)
		}
		if len(got) != 8 {
			t.Errorf("Fields(admin, search) has %d fields, want 8", len(got))
		}
	})

	t.Run("unrecognized role falls back to free", func(t *testing.T) {
		for _, ep := range []Endpoint{EndpointLookup, EndpointSearch} {
			got := Fields(models.Role("enterprise"), ep)
			want := Fields(models.RoleFree, ep)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Fields(enterprise, %s) = %v, want free list %v", ep, got, want)
			}
		}
	})

	t.Run("ordering is stable across calls", func(t *testing.T) {
		first := Fields(models.RolePaid, EndpointSearch)
		second := Fields(models.RolePaid, EndpointSearch)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Fields ordering unstable: %v then %v", first, second)
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		got := Fields(models.RoleFree, EndpointLookup)
		got[0] = "mutated"
		again := Fields(models.RoleFree, EndpointLookup)
		if again[0] != "imdb_id" {
			t.Error("mutating the returned slice leaked into the policy table")
		}
	})
}

func TestSelectList(t *testing.T) {
	t.Run("joins explicit fields", func(t *testing.T) {
		got := SelectList([]string{"imdb_id", "title"})
		if got != "imdb_id, title" {
			t.Errorf("SelectList = %q, want %q", got, "imdb_id, title")
		}
	})

	t.Run("all-fields sentinel renders star", func(t *testing.T) {
		if got := SelectList([]string{AllFields}); got != "*" {
			t.Errorf("SelectList = %q, want *", got)
		}
	})
}

func TestMapFields(t *testing.T) {
	t.Run("renames mapped columns", func(t *testing.T) {
		row := map[string]any{
			"imdb_id":      "tt0111161",
			"title":        "The Shawshank Redemption",
			"release_year": 1994,
		}
		got := MapFields(row)
		want := map[string]any{
			"imdbID": "tt0111161",
			"Title":  "The Shawshank Redemption",
			"Year":   1994,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("MapFields = %v, want %v", got, want)
		}
	})

	t.Run("drops null-valued columns", func(t *testing.T) {
		row := map[string]any{
			"title":  "Some Title",
			"poster": nil,
			"genres": nil,
		}
		got := MapFields(row)
		if _, ok := got["Poster"]; ok {
			t.Error("MapFields kept a null poster")
		}
		if _, ok := got["Genre"]; ok {
			t.Error("MapFields kept null genres")
		}
		if len(got) != 1 {
			t.Errorf("MapFields returned %d keys, want 1", len(got))
		}
	})

	t.Run("unmapped columns pass through unchanged", func(t *testing.T) {
		row := map[string]any{"runtime_minutes": 142}
		got := MapFields(row)
		if got["runtime_minutes"] != 142 {
			t.Errorf("MapFields unmapped column = %v, want 142", got["runtime_minutes"])
		}
	})
}

func TestParseRole(t *testing.T) {
	cases := map[string]models.Role{
		"free":    models.RoleFree,
		"paid":    models.RolePaid,
		"admin":   models.RoleAdmin,
		"":        models.RoleFree,
		"ADMIN":   models.RoleFree,
		"premium": models.RoleFree,
	}
	for in, want := range cases {
		if got := models.ParseRole(in); got != want {
			t.Errorf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}
}
