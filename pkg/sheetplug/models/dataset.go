package models

// Dataset is an ordered collection of named tables.
//
// A Dataset is never modified after construction. With returns a new
// Dataset that shares every untouched table with its receiver, so holders
// of an older Dataset are not affected by later steps.
type Dataset struct {
	names  []string
	tables map[string]*Table
}

// Entry is a named table used to build a Dataset.
type Entry struct {
	Name  string
	Table *Table
}

// NewDataset builds a dataset from entries in order. A repeated name
// replaces the earlier table in its original position.
func NewDataset(entries ...Entry) *Dataset {
	ds := &Dataset{tables: make(map[string]*Table, len(entries))}
	for _, e := range entries {
		if _, ok := ds.tables[e.Name]; !ok {
			ds.names = append(ds.names, e.Name)
		}
		ds.tables[e.Name] = e.Table
	}
	return ds
}

// Len returns the number of named tables.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Names returns the table names in insertion order.
func (d *Dataset) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Get returns the table stored under name. The table may be nil when the
// slot exists but holds no table.
func (d *Dataset) Get(name string) (*Table, bool) {
	if d == nil {
		return nil, false
	}
	t, ok := d.tables[name]
	return t, ok
}

// Has reports whether name is present.
func (d *Dataset) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// First returns the table for the first candidate name present.
func (d *Dataset) First(candidates ...string) (string, *Table, bool) {
	for _, name := range candidates {
		if t, ok := d.Get(name); ok {
			return name, t, true
		}
	}
	return "", nil, false
}

// Entries returns the named tables in order.
func (d *Dataset) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, len(d.names))
	for i, n := range d.names {
		out[i] = Entry{Name: n, Table: d.tables[n]}
	}
	return out
}

// With returns a new dataset where name maps to t. Existing names keep
// their position; a new name is appended.
func (d *Dataset) With(name string, t *Table) *Dataset {
	entries := d.Entries()
	return NewDataset(append(entries, Entry{Name: name, Table: t})...)
}
