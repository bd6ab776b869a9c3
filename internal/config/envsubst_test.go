package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("MARQUEE_SUBST_SET", "hello")
	t.Setenv("MARQUEE_SUBST_EMPTY", "")

	tests := []struct {
		name        string
		in          string
		want        string
		wantMissing []string
	}{
		{"simple", "v = ${MARQUEE_SUBST_SET}", "v = hello", nil},
		{"missing", "v = ${MARQUEE_SUBST_NONEXISTENT}", "v = ${MARQUEE_SUBST_NONEXISTENT}", []string{"MARQUEE_SUBST_NONEXISTENT"}},
		{"set but empty", "v = ${MARQUEE_SUBST_EMPTY}", "v = ", nil},
		{"default used", "v = ${MARQUEE_SUBST_EMPTY:-fallback}", "v = fallback", nil},
		{"default overridden", "v = ${MARQUEE_SUBST_SET:-fallback}", "v = hello", nil},
		{"required missing", "v = ${MARQUEE_SUBST_EMPTY:?key is required}", "v = ${MARQUEE_SUBST_EMPTY:?key is required}", []string{"MARQUEE_SUBST_EMPTY: key is required"}},
		{"required set", "v = ${MARQUEE_SUBST_SET:?key is required}", "v = hello", nil},
		{"multiple", "${MARQUEE_SUBST_SET} ${MARQUEE_SUBST_NONEXISTENT} ${MARQUEE_SUBST_EMPTY:-three}", "hello ${MARQUEE_SUBST_NONEXISTENT} three", []string{"MARQUEE_SUBST_NONEXISTENT"}},
		{"no references", "v = 1", "v = 1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}
