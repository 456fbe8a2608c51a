package apihandlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHTTPHandler([]string{"default"}, "default")
	h.AddAssessmentFormAPI(r.Group("/v1"))
	return r
}

func TestFormResponseShapes(t *testing.T) {
	form := &types.FormDefinition{AssessmentName: "Cyber Baseline 2026"}

	t.Run("form rides inside a data envelope", func(t *testing.T) {
		resp := formResponse(form)
		if _, ok := resp["data"]; !ok {
			t.Error("expected a data field")
		}
	})

	t.Run("draft save answers with message and progress", func(t *testing.T) {
		resp := draftSavedResponse(40)
		if _, ok := resp["message"]; !ok {
			t.Error("expected a message field")
		}
		if resp["progress_percent"] != 40 {
			t.Errorf("expected progress_percent 40, got %v", resp["progress_percent"])
		}
	})

	t.Run("submit answers with message", func(t *testing.T) {
		if _, ok := submittedResponse()["message"]; !ok {
			t.Error("expected a message field")
		}
	})

	t.Run("repeated submit answers with message and flag", func(t *testing.T) {
		resp := alreadySubmittedResponse()
		if _, ok := resp["message"]; !ok {
			t.Error("expected a message field")
		}
		if resp["already_submitted"] != true {
			t.Error("expected already_submitted to be true")
		}
	})
}

func TestAssessmentFormAPIErrorPaths(t *testing.T) {
	r := newTestRouter()

	testCases := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			"malformed token is not found",
			http.MethodGet, "/v1/assessment/not%20a%20token", "",
			http.StatusNotFound,
		},
		{
			"unknown instance is rejected",
			http.MethodGet, "/v1/assessment/sometoken?instance=other", "",
			http.StatusBadRequest,
		},
		{
			"draft on malformed token is not found",
			http.MethodPost, "/v1/assessment/not%20a%20token/draft", `{"answers":[]}`,
			http.StatusNotFound,
		},
		{
			"submit without consent is rejected before anything else",
			http.MethodPost, "/v1/assessment/sometoken/submit", `{"answers":[],"consent_confirmed":false}`,
			http.StatusBadRequest,
		},
		{
			"submit with consent on malformed token is not found",
			http.MethodPost, "/v1/assessment/not%20a%20token/submit", `{"answers":[],"consent_confirmed":true}`,
			http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d (body: %s)", tc.wantStatus, w.Code, w.Body.String())
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if _, ok := body["error"]; !ok {
				t.Error("expected an error field")
			}
		})
	}
}
