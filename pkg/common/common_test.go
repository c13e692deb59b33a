package common

import (
	"strings"
	"testing"
)

func TestGenerateOrderRef(t *testing.T) {
	ref := GenerateOrderRef()
	if len(ref) != 12 {
		t.Errorf("Expected length 12, got %d", len(ref))
	}
	if !strings.HasPrefix(ref, "TXN") {
		t.Errorf("Expected TXN prefix, got %s", ref)
	}

	const validChars = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	for _, char := range ref[3:] {
		if !strings.ContainsRune(validChars, char) {
			t.Errorf("Invalid character found: %c", char)
		}
	}
}

func TestPaginateResponse(t *testing.T) {
	total := int64(100)
	page := 1
	limit := 10
	data := []string{"item1", "item2"}

	res := PaginateResponse(data, total, page, limit, "")

	if res.CurrentPage != 1 {
		t.Errorf("Expected CurrentPage 1, got %d", res.CurrentPage)
	}
	if res.LastPage != 10 {
		t.Errorf("Expected LastPage 10, got %d", res.LastPage)
	}
	if res.NextPage != 2 {
		t.Errorf("Expected NextPage 2, got %d", res.NextPage)
	}
	if res.PrevPage != 0 {
		t.Errorf("Expected PrevPage 0, got %d", res.PrevPage)
	}
	if res.Count != 100 {
		t.Errorf("Expected Count 100, got %d", res.Count)
	}

	// Last page has no next.
	page = 10
	res = PaginateResponse(data, total, page, limit, "")
	if res.NextPage != 0 {
		t.Errorf("Expected NextPage 0 for last page, got %d", res.NextPage)
	}

	// Middle page has both neighbours.
	page = 5
	res = PaginateResponse(data, total, page, limit, "")
	if res.PrevPage != 4 {
		t.Errorf("Expected PrevPage 4, got %d", res.PrevPage)
	}
	if res.NextPage != 6 {
		t.Errorf("Expected NextPage 6, got %d", res.NextPage)
	}
}
