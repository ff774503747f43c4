package pagination

import "testing"

func TestNormalizeClampsInputs(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"defaults", Params{}, Params{PageNumber: 1, PageSize: DefaultPageSize}},
		{"negative page", Params{PageNumber: -3, PageSize: 10}, Params{PageNumber: 1, PageSize: 10}},
		{"oversized page size", Params{PageNumber: 2, PageSize: 500}, Params{PageNumber: 2, PageSize: MaxPageSize}},
		{"valid passthrough", Params{PageNumber: 4, PageSize: 12}, Params{PageNumber: 4, PageSize: 12}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{PageNumber: 3, PageSize: 10}
	if got := p.Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Fatalf("expected offset 0 for defaults, got %d", got)
	}
}

func TestNewMetaData(t *testing.T) {
	meta := NewMetaData(Params{PageNumber: 2, PageSize: 6}, 13)
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", meta.TotalPages)
	}
	if meta.CurrentPage != 2 || meta.PageSize != 6 || meta.TotalCount != 13 {
		t.Fatalf("unexpected metadata %+v", meta)
	}

	empty := NewMetaData(Params{}, 0)
	if empty.TotalPages != 0 {
		t.Fatalf("expected 0 total pages for empty set, got %d", empty.TotalPages)
	}
}
