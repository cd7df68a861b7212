package pagination

import "testing"

func TestNormalizeClampsInputs(t *testing.T) {
	n := Normalize(Params{Page: 0, PerPage: 0})
	if n.Page != 1 || n.PerPage != DefaultPerPage {
		t.Fatalf("unexpected defaults %+v", n)
	}

	n = Normalize(Params{Page: 3, PerPage: 500})
	if n.PerPage != MaxPerPage {
		t.Fatalf("per page not capped: %+v", n)
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 1, PerPage: 12}).Offset(); got != 0 {
		t.Fatalf("page 1 offset = %d", got)
	}
	if got := (Params{Page: 3, PerPage: 12}).Offset(); got != 24 {
		t.Fatalf("page 3 offset = %d", got)
	}
}

func TestMeta(t *testing.T) {
	meta := Meta(Params{Page: 2, PerPage: 10}, 25)
	if meta.LastPage != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.LastPage)
	}
	if meta.From != 11 || meta.To != 20 {
		t.Fatalf("unexpected range %d..%d", meta.From, meta.To)
	}

	meta = Meta(Params{Page: 1, PerPage: 10}, 0)
	if meta.LastPage != 1 || meta.From != 0 || meta.To != 0 {
		t.Fatalf("empty result meta %+v", meta)
	}
}
