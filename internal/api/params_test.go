// internal/api/params_test.go
package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	limits := PageLimits{Default: 10, Max: 100}

	tests := []struct {
		name       string
		url        string
		wantNumber int
		wantSize   int
	}{
		{"defaults", "/books", 1, 10},
		{"explicit", "/books?page=3&page_size=25", 3, 25},
		{"clamped to max", "/books?page_size=9999", 1, 100},
		{"garbage ignored", "/books?page=abc&page_size=-5", 1, 10},
		{"zero page ignored", "/books?page=0", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			page := ParsePage(r, limits)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantSize, page.Size)
		})
	}
}

func TestPageOffset(t *testing.T) {
	page := Page{Number: 3, Size: 20}
	assert.Equal(t, 20, page.Limit())
	assert.Equal(t, 40, page.Offset())
}
