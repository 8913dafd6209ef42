package lexicon

import (
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"

	"lazverb/internal/grammar"
	contextutils "lazverb/internal/utils"
)

//go:embed data/*.csv
var defaultData embed.FS

var csvHeader = []string{"infinitive", "present_3sg", "regions", "flags"}

// Default returns the dictionary built from the embedded verb tables
func Default() (*Dictionary, error) {
	entries, err := defaultEntries()
	if err != nil {
		return nil, err
	}
	return NewDictionary(entries), nil
}

func defaultEntries() ([]Entry, error) {
	files, err := defaultData.ReadDir("data")
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to list embedded verb tables")
	}
	var entries []Entry
	for _, f := range files {
		class, err := classFromFilename(f.Name())
		if err != nil {
			return nil, err
		}
		data, err := defaultData.Open("data/" + f.Name())
		if err != nil {
			return nil, contextutils.WrapErrorf(err, "failed to open embedded table %s", f.Name())
		}
		parsed, err := ParseCSV(data, class)
		_ = data.Close()
		if err != nil {
			return nil, contextutils.WrapErrorf(err, "failed to parse embedded table %s", f.Name())
		}
		entries = append(entries, parsed...)
	}
	return entries, nil
}

// Source is the entries read from one origin: "embedded" or a file path
type Source struct {
	Name    string
	Entries []Entry
}

// EmbeddedSource names the built-in tables
const EmbeddedSource = "embedded"

// LoadSources reads the embedded tables (when includeDefault is set) and every file matching the
// glob patterns, keeping each origin separate. Files must end in .csv or .json.
func LoadSources(patterns []string, includeDefault bool) ([]Source, error) {
	var sources []Source
	if includeDefault {
		defaults, err := defaultEntries()
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{Name: EmbeddedSource, Entries: defaults})
	}

	files, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		parsed, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{Name: path, Entries: parsed})
	}
	return sources, nil
}

// Load builds a dictionary from LoadSources and returns the files it read
func Load(patterns []string, includeDefault bool) (*Dictionary, []string, error) {
	sources, err := LoadSources(patterns, includeDefault)
	if err != nil {
		return nil, nil, err
	}
	var (
		entries []Entry
		files   []string
	)
	for _, source := range sources {
		entries = append(entries, source.Entries...)
		if source.Name != EmbeddedSource {
			files = append(files, source.Name)
		}
	}
	return NewDictionary(entries), files, nil
}

// ExpandPatterns resolves doublestar glob patterns to a sorted, de-duplicated file list
func ExpandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, contextutils.WrapErrorf(err, "invalid dictionary pattern %q", pattern)
		}
		files = append(files, lo.Filter(matches, func(path string, _ int) bool {
			ext := strings.ToLower(filepath.Ext(path))
			return ext == ".csv" || ext == ".json"
		})...)
	}
	files = lo.Uniq(files)
	sort.Strings(files)
	return files, nil
}

// LoadFile parses one dictionary file. CSV files name their class in the file name (tve.csv,
// tvm_extra.csv) and JSON documents carry it inline.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, contextutils.WrapErrorf(err, "failed to open dictionary file %s", path)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, contextutils.WrapErrorf(err, "failed to read dictionary file %s", path)
		}
		return ParseJSON(data)
	default:
		class, err := classFromFilename(filepath.Base(path))
		if err != nil {
			return nil, err
		}
		return ParseCSV(f, class)
	}
}

func classFromFilename(name string) (grammar.VerbClass, error) {
	lower := strings.ToLower(name)
	for _, class := range grammar.Classes {
		if strings.HasPrefix(lower, strings.ToLower(string(class))) {
			return class, nil
		}
	}
	return "", contextutils.ErrDictionaryInvalid.WithDetails("cannot infer verb class from file name %q", name)
}

// ParseCSV reads rows of infinitive,present_3sg,regions,flags. Regions and flags are ';' separated.
func ParseCSV(r io.Reader, class grammar.VerbClass) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var entries []Entry
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, contextutils.ErrDictionaryInvalid.WithDetails("csv: %v", err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), csvHeader[0]) {
			continue
		}
		if len(record) < 2 {
			return nil, contextutils.ErrDictionaryInvalid.WithDetails("line %d: expected at least 2 columns, got %d", line, len(record))
		}
		entry, err := entryFromRow(class, record)
		if err != nil {
			return nil, contextutils.ErrDictionaryInvalid.WithDetails("line %d: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func entryFromRow(class grammar.VerbClass, record []string) (Entry, error) {
	infinitive := strings.TrimSpace(record[0])
	form := strings.TrimSpace(record[1])
	if infinitive == "" || form == "" {
		return Entry{}, fmt.Errorf("infinitive and present_3sg are required")
	}
	var regionField, flagField string
	if len(record) > 2 {
		regionField = record[2]
	}
	if len(record) > 3 {
		flagField = record[3]
	}
	regions, err := grammar.ParseRegionList(strings.Split(regionField, ";"))
	if err != nil {
		return Entry{}, err
	}
	flags, err := parseFlags(strings.Split(flagField, ";"))
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Infinitive: infinitive,
		Class:      class,
		Variants:   []Variant{{Form: form, Regions: regions}},
		Flags:      flags,
	}, nil
}

func parseFlags(items []string) ([]Flag, error) {
	var flags []Flag
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		switch Flag(item) {
		case "":
			continue
		case FlagNoObject, FlagRequiresMarker:
			flags = append(flags, Flag(item))
		default:
			return nil, fmt.Errorf("unknown flag %q", item)
		}
	}
	return flags, nil
}

// documentSchema describes a JSON dictionary document
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["class", "verbs"],
  "properties": {
    "class": {"type": "string", "enum": ["IVD", "TVE", "TVM", "ivd", "tve", "tvm"]},
    "verbs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["infinitive", "forms"],
        "properties": {
          "infinitive": {"type": "string", "minLength": 1},
          "forms": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["form"],
              "properties": {
                "form": {"type": "string", "minLength": 1},
                "regions": {"type": "array", "items": {"type": "string"}}
              }
            }
          },
          "flags": {"type": "array", "items": {"type": "string", "enum": ["no_object", "requires_marker"]}}
        }
      }
    }
  }
}`

type jsonDocument struct {
	Class string `json:"class"`
	Verbs []struct {
		Infinitive string `json:"infinitive"`
		Forms      []struct {
			Form    string   `json:"form"`
			Regions []string `json:"regions"`
		} `json:"forms"`
		Flags []string `json:"flags"`
	} `json:"verbs"`
}

// ParseJSON validates a JSON dictionary document against the schema and converts it to entries
func ParseJSON(data []byte) ([]Entry, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, contextutils.ErrDictionaryInvalid.WithDetails("json: %v", err)
	}
	if !result.Valid() {
		messages := lo.Map(result.Errors(), func(e gojsonschema.ResultError, _ int) string {
			return e.String()
		})
		return nil, contextutils.ErrDictionaryInvalid.WithDetails("schema: %s", strings.Join(messages, "; "))
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, contextutils.ErrDictionaryInvalid.WithDetails("json: %v", err)
	}
	classes, err := grammar.ParseVerbClass(doc.Class)
	if err != nil || len(classes) != 1 {
		return nil, contextutils.ErrDictionaryInvalid.WithDetails("unknown class %q", doc.Class)
	}

	entries := make([]Entry, 0, len(doc.Verbs))
	for _, verb := range doc.Verbs {
		entry := Entry{Infinitive: verb.Infinitive, Class: classes[0]}
		for _, form := range verb.Forms {
			regions, err := grammar.ParseRegionList(form.Regions)
			if err != nil {
				return nil, contextutils.ErrDictionaryInvalid.WithDetails("%s: %v", verb.Infinitive, err)
			}
			entry.Variants = append(entry.Variants, Variant{Form: form.Form, Regions: regions})
		}
		flags, err := parseFlags(verb.Flags)
		if err != nil {
			return nil, contextutils.ErrDictionaryInvalid.WithDetails("%s: %v", verb.Infinitive, err)
		}
		entry.Flags = flags
		entries = append(entries, entry)
	}
	return entries, nil
}
