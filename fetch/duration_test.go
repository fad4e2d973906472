package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	for _, tc := range []struct {
		name   string
		iso    string
		exp    int
		expErr bool
	}{
		{name: "empty", iso: "", exp: 0},
		{name: "zero", iso: "P0D", exp: 0},
		{name: "seconds", iso: "PT59S", exp: 59},
		{name: "short boundary", iso: "PT3M1S", exp: 181},
		{name: "just over", iso: "PT3M2S", exp: 182},
		{name: "hours", iso: "PT1H2M3S", exp: 3723},
		{name: "days", iso: "P1DT1S", exp: 86401},
		{name: "garbage", iso: "3 minutes", expErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			act, err := ParseDuration(tc.iso)
			if tc.expErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.exp, act)
		})
	}
}
