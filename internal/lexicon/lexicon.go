// Package lexicon holds the verb dictionary: one immutable entry per (class, infinitive), each
// with its regional third-person present forms.
package lexicon

import (
	"sort"

	"github.com/samber/lo"

	"lazverb/internal/grammar"
	"lazverb/internal/morph"
)

// Flag is a data-driven property of a verb entry
type Flag string

// Entry flags
const (
	FlagNoObject       Flag = "no_object"
	FlagRequiresMarker Flag = "requires_marker"
)

// Variant is a third-person singular present form attested in some regions
type Variant struct {
	Form    string           `json:"form"`
	Regions []grammar.Region `json:"regions"`
}

// Entry is a verb in one class table
type Entry struct {
	Infinitive string            `json:"infinitive"`
	Class      grammar.VerbClass `json:"class"`
	Variants   []Variant         `json:"forms"`
	Flags      []Flag            `json:"flags,omitempty"`
}

// HasFlag reports whether the entry carries flag
func (e Entry) HasFlag(flag Flag) bool {
	return lo.Contains(e.Flags, flag)
}

// Regions returns the union of the variant regions in canonical order
func (e Entry) Regions() []grammar.Region {
	regions := lo.Uniq(lo.FlatMap(e.Variants, func(v Variant, _ int) []grammar.Region {
		return v.Regions
	}))
	grammar.SortRegions(regions)
	return regions
}

// Dictionary is an immutable verb lookup keyed by class and normalized infinitive
type Dictionary struct {
	entries map[grammar.VerbClass]map[string]Entry
}

// NewDictionary builds a dictionary. Entries with the same class and infinitive are merged, and a
// repeated form accumulates regions.
func NewDictionary(entries []Entry) *Dictionary {
	d := &Dictionary{entries: make(map[grammar.VerbClass]map[string]Entry)}
	for _, entry := range entries {
		key := morph.Normalize(entry.Infinitive)
		if key == "" {
			continue
		}
		entry.Infinitive = key
		table := d.entries[entry.Class]
		if table == nil {
			table = make(map[string]Entry)
			d.entries[entry.Class] = table
		}
		existing, ok := table[key]
		if !ok {
			existing = Entry{Infinitive: key, Class: entry.Class}
		}
		for _, variant := range entry.Variants {
			existing.Variants = mergeVariant(existing.Variants, Variant{
				Form:    morph.Normalize(variant.Form),
				Regions: variant.Regions,
			})
		}
		existing.Flags = lo.Uniq(append(existing.Flags, entry.Flags...))
		table[key] = existing
	}
	return d
}

func mergeVariant(variants []Variant, v Variant) []Variant {
	for i, existing := range variants {
		if existing.Form == v.Form {
			regions := lo.Uniq(append(append([]grammar.Region(nil), existing.Regions...), v.Regions...))
			grammar.SortRegions(regions)
			variants[i].Regions = regions
			return variants
		}
	}
	regions := append([]grammar.Region(nil), v.Regions...)
	grammar.SortRegions(regions)
	return append(variants, Variant{Form: v.Form, Regions: regions})
}

// Lookup returns the entry for infinitive in the class table
func (d *Dictionary) Lookup(class grammar.VerbClass, infinitive string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	entry, ok := d.entries[class][morph.Normalize(infinitive)]
	return entry, ok
}

// Classes returns every class whose table contains infinitive, in dispatch order
func (d *Dictionary) Classes(infinitive string) []grammar.VerbClass {
	return lo.Filter(grammar.Classes, func(class grammar.VerbClass, _ int) bool {
		_, ok := d.Lookup(class, infinitive)
		return ok
	})
}

// Entries returns the entries of a class sorted by infinitive
func (d *Dictionary) Entries(class grammar.VerbClass) []Entry {
	if d == nil {
		return nil
	}
	entries := lo.Values(d.entries[class])
	sort.Slice(entries, func(i, j int) bool { return entries[i].Infinitive < entries[j].Infinitive })
	return entries
}

// All returns every entry across classes
func (d *Dictionary) All() []Entry {
	var out []Entry
	for _, class := range grammar.Classes {
		out = append(out, d.Entries(class)...)
	}
	return out
}

// Len returns the number of entries across classes
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, table := range d.entries {
		n += len(table)
	}
	return n
}
