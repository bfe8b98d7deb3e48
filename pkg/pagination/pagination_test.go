package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(Params{})
	if p.Page != 1 {
		t.Fatalf("expected page 1, got %d", p.Page)
	}
	if p.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", p.PageSize)
	}
}

func TestNormalizeCapsPageSize(t *testing.T) {
	p := Normalize(Params{Page: 2, PageSize: 5000})
	if p.PageSize != MaxPageSize {
		t.Fatalf("expected capped page size, got %d", p.PageSize)
	}
}

func TestOffsetAndLimit(t *testing.T) {
	p := Params{Page: 3, PageSize: 8}
	if got := p.Offset(); got != 16 {
		t.Fatalf("expected offset 16, got %d", got)
	}
	if got := p.Limit(); got != 8 {
		t.Fatalf("expected limit 8, got %d", got)
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/Products?page=2&pageSize=12", nil)
	p := FromRequest(r)
	if p.Page != 2 || p.PageSize != 12 {
		t.Fatalf("unexpected params %+v", p)
	}

	r = httptest.NewRequest("GET", "/api/Products?page=abc", nil)
	p = FromRequest(r)
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Fatalf("unexpected fallback params %+v", p)
	}
}
