package consent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	tests := []struct {
		name      string
		birthdate time.Time
		today     time.Time
		want      int
	}{
		{"day before birthday", date(2010, 5, 20), date(2024, 5, 19), 13},
		{"on birthday", date(2010, 5, 20), date(2024, 5, 20), 14},
		{"day after birthday", date(2010, 5, 20), date(2024, 5, 21), 14},
		{"earlier month", date(2010, 5, 20), date(2024, 4, 30), 13},
		{"later month", date(2010, 5, 20), date(2024, 6, 1), 14},
		{"same day same year", date(2024, 5, 20), date(2024, 5, 20), 0},
		{"end of year birthday", date(2009, 12, 31), date(2024, 12, 30), 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(tt.birthdate, tt.today))
		})
	}
}
