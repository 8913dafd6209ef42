// Package models defines the records stored in the verb catalog.
package models

import (
	"time"

	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
)

// VerbRecord is one catalog row: a dictionary entry plus bookkeeping
type VerbRecord struct {
	ID         int64             `json:"id" yaml:"id"`
	Infinitive string            `json:"infinitive" yaml:"infinitive"`
	Class      grammar.VerbClass `json:"class" yaml:"class"`
	Forms      []lexicon.Variant `json:"forms" yaml:"forms"`
	Regions    []grammar.Region  `json:"regions" yaml:"regions"`
	Flags      []lexicon.Flag    `json:"flags,omitempty" yaml:"flags,omitempty"`
	Source     string            `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt  time.Time         `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" yaml:"updated_at"`
}

// NewVerbRecord converts a dictionary entry; source names the file it came from
func NewVerbRecord(entry lexicon.Entry, source string) VerbRecord {
	return VerbRecord{
		Infinitive: entry.Infinitive,
		Class:      entry.Class,
		Forms:      entry.Variants,
		Regions:    entry.Regions(),
		Flags:      entry.Flags,
		Source:     source,
	}
}

// Entry converts the record back into a dictionary entry
func (r VerbRecord) Entry() lexicon.Entry {
	return lexicon.Entry{
		Infinitive: r.Infinitive,
		Class:      r.Class,
		Variants:   r.Forms,
		Flags:      r.Flags,
	}
}

// VerbFilter selects a page of catalog rows
type VerbFilter struct {
	// Query matches a substring of the infinitive or of any form
	Query    string
	Classes  []grammar.VerbClass
	Region   grammar.Region
	Page     int
	PageSize int
}

// Offset returns the row offset of the page
func (f VerbFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// VerbPage is one page of catalog rows
type VerbPage struct {
	Verbs    []VerbRecord `json:"verbs"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// ImportSummary reports the outcome of a dictionary import
type ImportSummary struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Files    []string `json:"files"`
}
