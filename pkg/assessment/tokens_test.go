package assessment

import (
	"testing"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/utils"
)

func TestGenerateLinkToken(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		token, err := GenerateLinkToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !utils.IsURLSafe(token) {
			t.Errorf("token is not URL safe: %q", token)
		}
		if _, ok := seen[token]; ok {
			t.Errorf("duplicate token generated: %q", token)
		}
		seen[token] = struct{}{}
	}
}
