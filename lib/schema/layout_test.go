package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputLayout(t *testing.T) {
	in := Layout{
		Relation: "Car",
		Attributes: []Attribute{
			{Name: "att0"}, {Name: "att1"}, {Name: "att2"},
			{Name: "classVal", Values: []string{"sedan", "suv", "van"}},
		},
		ClassIndex: 3,
	}
	out, err := OutputLayout(in, 2)
	require.NoError(t, err)
	assert.Equal(t, "PAACar", out.Relation)
	assert.Equal(t, Layout{
		Relation: "PAACar",
		Attributes: []Attribute{
			{Name: "PAAInterval_0"}, {Name: "PAAInterval_1"},
			{Name: "classVal", Values: []string{"sedan", "suv", "van"}},
		},
		ClassIndex: 2,
	}, out)

	// The class domain is copied, not shared.
	out.Attributes[2].Values[0] = "changed"
	assert.Equal(t, "sedan", in.Attributes[3].Values[0])
}

func TestOutputLayoutWithoutClass(t *testing.T) {
	out, err := OutputLayout(Layout{Relation: "x", Attributes: []Attribute{{Name: "a"}}, ClassIndex: -1}, 3)
	require.NoError(t, err)
	assert.Len(t, out.Attributes, 3)
	assert.Equal(t, NO_CLASS_ATTRIBUTE, out.ClassIndex)
	_, ok := out.ClassAttribute()
	assert.False(t, ok)
	for _, a := range out.Attributes {
		assert.False(t, a.IsCategorical())
	}
}

func TestOutputLayoutNumericClass(t *testing.T) {
	out, err := OutputLayout(Layout{Attributes: []Attribute{{Name: "a"}, {Name: "target"}}, ClassIndex: 1}, 1)
	require.NoError(t, err)
	class, ok := out.ClassAttribute()
	require.True(t, ok)
	assert.Equal(t, "target", class.Name)
	assert.False(t, class.IsCategorical())
}

func TestOutputLayoutRejectsBadInput(t *testing.T) {
	_, err := OutputLayout(Layout{ClassIndex: -1}, 0)
	assert.Error(t, err)
	_, err = OutputLayout(Layout{Attributes: []Attribute{{Name: "a"}}, ClassIndex: 4}, 2)
	assert.Error(t, err)
}

func TestLayoutJSON(t *testing.T) {
	var l Layout
	require.NoError(t, json.Unmarshal([]byte(`{"relation":"r","attributes":[{"name":"a"}]}`), &l))
	assert.Equal(t, NO_CLASS_ATTRIBUTE, l.ClassIndex)

	require.NoError(t, json.Unmarshal([]byte(`{"attributes":[{"name":"c","values":["x"]}],"classIndex":0}`), &l))
	class, ok := l.ClassAttribute()
	require.True(t, ok)
	assert.True(t, class.IsCategorical())
}
