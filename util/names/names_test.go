package names

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"vacaciones 2023", "vacaciones_2023"},
		{`a\b/c*d?e:f"g<h>i|j`, "abcdefghij"},
		{"ünïcode bleibt", "ünïcode_bleibt"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Sanitize(tc.in))
	}
}

func TestSanitizeCapsLength(t *testing.T) {
	long := strings.Repeat("x", 150)
	assert.Len(t, Sanitize(long), 100)
}
