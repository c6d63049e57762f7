package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyFunction(t *testing.T) {
	// unify(a -> Int, String -> b) should yield a |-> String, b |-> Int
	left := &Fun{Param: &Var{Name: "a"}, Result: Int}
	right := &Fun{Param: String, Result: &Var{Name: "b"}}

	s, err := Unify(left, right, Subst{})
	require.NoError(t, err)

	assert.Equal(t, String.String(), s["a"].String())
	assert.Equal(t, Int.String(), s["b"].String())
}

func TestUnifyOccursCheck(t *testing.T) {
	a := &Var{Name: "a"}
	listA := &List{Elem: a}
	_, err := Unify(a, listA, Subst{})
	require.Error(t, err)
}

func TestSubstIdempotence(t *testing.T) {
	s := Subst{"a": Int}
	listA := &List{Elem: &Var{Name: "a"}}
	once := listA.Apply(s)
	twice := once.Apply(s)
	assert.Equal(t, once.String(), twice.String())
}

func TestGeneralizeAndInstantiate(t *testing.T) {
	env := NewEnv()
	fresh := NewFresh()
	idType := &Fun{Param: &Var{Name: "t0"}, Result: &Var{Name: "t0"}}
	scheme := Generalize(env, idType, nil)
	assert.Equal(t, []string{"t0"}, scheme.Vars)

	inst, _ := Instantiate(scheme, fresh)
	fn, ok := inst.(*Fun)
	require.True(t, ok)
	assert.NotEqual(t, "t0", fn.Param.(*Var).Name)
	assert.Equal(t, fn.Param.(*Var).Name, fn.Result.(*Var).Name)
}
