package exhaustiveness

import (
	"testing"

	"github.com/funvibe/pfn/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestListConsExhaustive(t *testing.T) {
	patterns := []Pattern{
		PList{Elements: nil},
		PCons{Head: PVar{Name: "x"}, Tail: PVar{Name: "xs"}},
	}
	result := CheckExhaustiveness(patterns, nil)
	assert.True(t, result.Exhaustive)
	assert.Empty(t, result.RedundantPatterns)
}

func TestRedundantLiteralAfterCatchAll(t *testing.T) {
	patterns := []Pattern{
		PWild{},
		PInt{Value: 1},
	}
	result := CheckExhaustiveness(patterns, nil)
	assert.True(t, result.Exhaustive)
	assert.Equal(t, []int{1}, result.RedundantPatterns)
}

func TestResultConstructorNames(t *testing.T) {
	names := GetConstructorsForType(&types.Con{Name: "Result"})
	assert.Equal(t, []string{"Ok", "Error"}, names)
}
