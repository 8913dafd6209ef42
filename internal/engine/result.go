package engine

import (
	"strings"

	"github.com/samber/lo"

	"lazverb/internal/conjugators"
	"lazverb/internal/formatter"
	"lazverb/internal/grammar"
	contextutils "lazverb/internal/utils"
)

// resultBuilder accumulates forms and diagnostics across classes
type resultBuilder struct {
	infinitive  string
	category    conjugators.Category
	regions     map[grammar.Region]bool
	classes     []grammar.VerbClass
	// forms keeps one copy per class for the per-class view
	forms []conjugators.Form
	// unique holds each (region, subject, object, surface) once
	unique      []conjugators.Form
	seen        map[formKey]bool
	diagnostics []Diagnostic
}

type formKey struct {
	region  grammar.Region
	subject grammar.Person
	object  grammar.Person
	surface string
}

func newResultBuilder(infinitive string, category conjugators.Category, regions []grammar.Region) *resultBuilder {
	return &resultBuilder{
		infinitive: infinitive,
		category:   category,
		regions:    lo.SliceToMap(regions, func(r grammar.Region) (grammar.Region, bool) { return r, true }),
		seen:       make(map[formKey]bool),
	}
}

func (b *resultBuilder) addClass(class grammar.VerbClass) {
	if !lo.Contains(b.classes, class) {
		b.classes = append(b.classes, class)
	}
}

// add keeps the forms inside the region filter and returns how many were kept
func (b *resultBuilder) add(forms []conjugators.Form) int {
	kept := lo.Filter(forms, func(f conjugators.Form, _ int) bool { return b.regions[f.Region] })
	b.forms = append(b.forms, kept...)
	for _, f := range kept {
		key := formKey{region: f.Region, subject: f.Subject, object: f.Object, surface: f.Surface}
		if b.seen[key] {
			continue
		}
		b.seen[key] = true
		b.unique = append(b.unique, f)
	}
	return len(kept)
}

func (b *resultBuilder) diagnose(class grammar.VerbClass, message string) {
	b.diagnostics = append(b.diagnostics, Diagnostic{Class: class, Message: message})
}

func (b *resultBuilder) build() (*Result, error) {
	if len(b.unique) == 0 {
		messages := lo.Map(b.diagnostics, func(d Diagnostic, _ int) string {
			return string(d.Class) + ": " + d.Message
		})
		return nil, contextutils.ErrNoOutputProduced.WithDetails("%s", strings.Join(messages, "; "))
	}
	return &Result{
		Infinitive:  b.infinitive,
		Category:    b.category,
		Classes:     b.classes,
		Forms:       b.unique,
		ByRegion:    formatter.ByRegion(b.unique),
		ByClass:     formatter.ByClass(b.forms),
		Diagnostics: b.diagnostics,
	}, nil
}
