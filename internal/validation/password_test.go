package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Sup3rSecret!", ""},
		{"too short", "Ab1!short", "at least 10"},
		{"no upper", "sup3rsecret!", "upper-case"},
		{"no digit", "SuperSecret!", "digit"},
		{"no symbol", "Sup3rSecret99", "symbol"},
		{"too long", "A1!" + strings.Repeat("x", 70), "72"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
