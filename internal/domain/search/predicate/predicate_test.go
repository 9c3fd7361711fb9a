package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnd_DropsEmptyAndFlattens(t *testing.T) {
	n := And(
		Eq("public", true),
		Node{},
		And(Eq("status", "ACTIVE"), Contains("location", "Milan")),
	)

	require.Equal(t, KindAnd, n.Kind())
	require.Len(t, n.Children(), 3)
	assert.Equal(t, Field("public"), n.Children()[0].Field())
	assert.Equal(t, Field("status"), n.Children()[1].Field())
	assert.Equal(t, KindContains, n.Children()[2].Kind())
}

func TestAnd_SingleOperandUnwrapped(t *testing.T) {
	n := And(Node{}, Eq("public", true))
	assert.Equal(t, KindEq, n.Kind())
	assert.Equal(t, true, n.Value())
}

func TestOr_Empty(t *testing.T) {
	assert.True(t, Or().IsEmpty())
	assert.True(t, Or(Node{}, Node{}).IsEmpty())
	assert.True(t, And().IsEmpty())
}

func TestOr_NestedInsideAndIsKept(t *testing.T) {
	n := And(
		Eq("public", true),
		Or(Overlaps("requiredSkills", "react"), Contains("title", "react")),
	)

	require.Equal(t, KindAnd, n.Kind())
	require.Len(t, n.Children(), 2)
	or := n.Children()[1]
	assert.Equal(t, KindOr, or.Kind())
	assert.Len(t, or.Children(), 2)
}

func TestIn(t *testing.T) {
	assert.True(t, In("jobType").IsEmpty())

	single := In("jobType", "INTERNSHIP")
	assert.Equal(t, KindEq, single.Kind())
	assert.Equal(t, "INTERNSHIP", single.Value())

	multi := In("jobType", "INTERNSHIP", "FULL_TIME")
	assert.Equal(t, KindIn, multi.Kind())
	assert.Equal(t, []string{"INTERNSHIP", "FULL_TIME"}, multi.Values())
}

func TestLeafConstructors_EmptyOperands(t *testing.T) {
	assert.True(t, Contains("title", "").IsEmpty())
	assert.True(t, Overlaps("skills").IsEmpty())
}

func TestExists(t *testing.T) {
	inner := And(Eq("public", true), Overlaps("skills", "go"))
	n := Exists("projects", inner)

	assert.Equal(t, KindExists, n.Kind())
	assert.Equal(t, "projects", n.Relation())
	require.Len(t, n.Children(), 1)
	assert.Equal(t, KindAnd, n.Children()[0].Kind())
}
