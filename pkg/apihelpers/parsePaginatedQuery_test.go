package apihelpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func queryCtx(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePaginatedQueryFromCtx(t *testing.T) {
	testCases := []struct {
		name      string
		rawQuery  string
		wantPage  int64
		wantLimit int64
		wantErr   bool
	}{
		{"defaults", "", 1, defaultPageLimit, false},
		{"explicit values", "page=3&limit=50", 3, 50, false},
		{"page below one clamps", "page=0", 1, defaultPageLimit, false},
		{"limit above max clamps", "limit=5000", 1, maxPageLimit, false},
		{"limit below one falls back", "limit=-2", 1, defaultPageLimit, false},
		{"non-numeric page", "page=abc", 0, 0, true},
		{"broken filter json", "filter={broken", 0, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := ParsePaginatedQueryFromCtx(queryCtx(t, tc.rawQuery))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if query.Page != tc.wantPage {
				t.Errorf("page = %d, want %d", query.Page, tc.wantPage)
			}
			if query.Limit != tc.wantLimit {
				t.Errorf("limit = %d, want %d", query.Limit, tc.wantLimit)
			}
		})
	}
}

func TestParsePaginatedQueryFilterAndSort(t *testing.T) {
	query, err := ParsePaginatedQueryFromCtx(queryCtx(t, `filter={"status":"SUBMITTED"}&sort={"createdAt":-1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.Filter["status"] != "SUBMITTED" {
		t.Errorf("unexpected filter: %v", query.Filter)
	}
	if query.Sort["createdAt"] != float64(-1) {
		t.Errorf("unexpected sort: %v", query.Sort)
	}
}
