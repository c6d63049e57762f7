package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pfn/pkg/compiler"
)

func TestGoldenFixtures(t *testing.T) {
	cases, err := LoadGoldenCases("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	for _, gc := range cases {
		gc := gc
		t.Run(gc.Name, func(t *testing.T) {
			out, err := compiler.CompileSource(gc.Input)
			if gc.WantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), strings.TrimSpace(gc.WantError))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, strings.TrimSpace(gc.WantContains))
		})
	}
}
