package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelir/internal/value"
)

func TestParseValues(t *testing.T) {
	vs, err := ParseValues("N=3, p=0.5,ok=true")
	require.NoError(t, err)

	assert.Equal(t, []string{"N", "p", "ok"}, vs.Names())
	n, ok := vs.Get("N")
	require.True(t, ok)
	assert.Equal(t, value.Int(3), n)
	p, _ := vs.Get("p")
	assert.Equal(t, value.Double(0.5), p)
	assert.Equal(t, "N=3,p=0.5,ok=true", vs.String())
}

func TestParseValuesEmpty(t *testing.T) {
	vs, err := ParseValues("  ")
	require.NoError(t, err)
	assert.Equal(t, 0, vs.Len())
}

func TestParseValuesRejectsMalformed(t *testing.T) {
	for _, in := range []string{"N", "=3", "N=abc"} {
		_, err := ParseValues(in)
		assert.Error(t, err, in)
	}
}

func TestValuesSetKeepsPosition(t *testing.T) {
	vs := NewValues()
	vs.Set("a", value.Int(1))
	vs.Set("b", value.Int(2))
	vs.Set("a", value.Int(3))

	assert.Equal(t, []string{"a", "b"}, vs.Names())
	assert.Equal(t, "a=3,b=2", vs.String())

	other := NewValues()
	other.Set("c", value.Bool(false))
	other.Set("b", value.Int(9))
	vs.Merge(other)
	assert.Equal(t, "a=3,b=9,c=false", vs.String())
}

func TestNilValues(t *testing.T) {
	var vs *Values
	_, ok := vs.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, vs.Len())
	assert.Nil(t, vs.Names())
}

func TestState(t *testing.T) {
	s := NewState(value.Int(0), nil, value.Bool(true))

	v, ok := s.Var(0)
	require.True(t, ok)
	assert.Equal(t, value.Int(0), v)

	_, ok = s.Var(1)
	assert.False(t, ok, "unset slot")
	_, ok = s.Var(3)
	assert.False(t, ok, "out of range")
	_, ok = s.Var(-1)
	assert.False(t, ok)

	assert.Equal(t, "(0,?,true)", s.String())
}
