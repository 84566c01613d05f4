package request

import (
	"net/http/httptest"
	"testing"
)

func TestGetPage(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=1", 1},
		{"?page=7", 7},
		{"?page=0", 1},
		{"?page=-3", 1},
		{"?page=abc", 1},
		{"?page=2.5", 1},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/"+tc.query, nil)
		if got := GetPage(r); got != tc.want {
			t.Errorf("GetPage(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}

func TestGetQueryString(t *testing.T) {
	r := httptest.NewRequest("GET", "/?s=batman", nil)
	if got := GetQueryString(r, "s", ""); got != "batman" {
		t.Errorf("GetQueryString(s) = %q, want batman", got)
	}
	if got := GetQueryString(r, "missing", "fallback"); got != "fallback" {
		t.Errorf("GetQueryString(missing) = %q, want fallback", got)
	}
}
