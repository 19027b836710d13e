package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFlatten(t *testing.T) {
	tests := []struct {
		label    Label
		expected string
	}{
		{Simple("id"), "id"},
		{Simple(""), ""},
		{Structured("", "name"), "name"},
		{Structured("branch", "id"), "branch"},
		{Structured("", "", ""), ""},
		{Label{}, ""},
	}

	for _, tt := range tests {
		if got := tt.label.Flatten(); got != tt.expected {
			t.Errorf("%v.Flatten() = %q, expected %q", tt.label, got, tt.expected)
		}
	}
}

func TestLabelKeyDistinguishesLevels(t *testing.T) {
	assert.Equal(t, Structured("a", "b").Key(), Structured("a", "b").Key())
	assert.NotEqual(t, Structured("a", "b").Key(), Structured("a", "c").Key())
	assert.NotEqual(t, Simple("a").Key(), Structured("a", "").Key())
}

func TestDatasetWithIsCopyOnWrite(t *testing.T) {
	a := NewTable([]string{"id"}, []any{int64(1)})
	b := NewTable([]string{"id"}, []any{int64(2)})
	ds := NewDataset(Entry{Name: "a", Table: a})

	next := ds.With("b", b)

	assert.Equal(t, []string{"a"}, ds.Names())
	assert.Equal(t, []string{"a", "b"}, next.Names())

	got, ok := next.Get("a")
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestDatasetWithReplaceKeepsPosition(t *testing.T) {
	ds := NewDataset(
		Entry{Name: "a", Table: NewTable([]string{"x"})},
		Entry{Name: "b", Table: NewTable([]string{"y"})},
	)
	repl := NewTable([]string{"z"})

	next := ds.With("a", repl)

	assert.Equal(t, []string{"a", "b"}, next.Names())
	got, _ := next.Get("a")
	assert.Same(t, repl, got)
	orig, _ := ds.Get("a")
	assert.Equal(t, []string{"x"}, orig.ColumnNames())
}

func TestDatasetFirst(t *testing.T) {
	ds := NewDataset(Entry{Name: "branches", Table: NewTable([]string{"id"})})

	name, tbl, ok := ds.First("branch", "branches")
	require.True(t, ok)
	assert.Equal(t, "branches", name)
	assert.NotNil(t, tbl)

	_, _, ok = ds.First("nope")
	assert.False(t, ok)
}

func TestTableColumnAndValidate(t *testing.T) {
	tbl := NewTable([]string{"id", "name"},
		[]any{int64(1), "A"},
		[]any{int64(2)},
	)

	values, ok := tbl.Column("name")
	require.True(t, ok)
	assert.Equal(t, []any{"A", nil}, values)
	assert.Nil(t, tbl.Value(1, 1))
	assert.Error(t, tbl.Validate())

	_, ok = tbl.Column("missing")
	assert.False(t, ok)
}

func TestTableClone(t *testing.T) {
	tbl := &Table{
		Columns: []Label{Structured("", "id")},
		Rows:    [][]any{{int64(1)}},
	}

	clone, err := tbl.Clone()
	require.NoError(t, err)
	clone.Columns[0] = Simple("id")
	clone.Rows[0][0] = int64(9)

	assert.Equal(t, Structured("", "id"), tbl.Columns[0])
	assert.Equal(t, int64(1), tbl.Rows[0][0])
}
