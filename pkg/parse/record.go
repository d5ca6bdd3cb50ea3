package parse

import (
	"regexp"
	"strings"

	"github.com/fortuna-events/crosslink/pkg/entity"
	"github.com/fortuna-events/crosslink/pkg/errors"
)

// refToken matches a reference token: a target id wrapped in square brackets.
// The inner text is validated separately so an empty token can be reported
// as a format error rather than silently skipped.
var refToken = regexp.MustCompile(`\[([^\[\]]*)\]`)

// idChars matches ids safe to embed in a URL path or query without escaping
// (RFC 3986 unreserved characters).
var idChars = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)

// Graph parses all sections and returns the populated entity graph.
//
// Records are inserted in file order, so duplicate ids are detected at insert
// time, before any resolution starts.
func Graph(sections []Section) (*entity.Graph, error) {
	g := entity.NewGraph()
	for _, sec := range sections {
		if err := records(sec, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// records parses one section body into entities and inserts them into g.
//
// Records are separated by one or more blank lines. Each record is a list of
// field lines "name: value"; a line without a colon continues the previous
// field's value. The id field is required and must be URL-safe.
func records(sec Section, g *entity.Graph) error {
	for _, chunk := range chunks(sec.Lines) {
		e, err := record(sec, chunk)
		if err != nil {
			return err
		}
		if err := g.Insert(e); err != nil {
			return err
		}
	}
	return nil
}

// chunk is one record's worth of body lines plus its starting line number.
type chunk struct {
	lines []string
	line  int // 1-based line number of the first line
}

func chunks(lines []string) []chunk {
	var out []chunk
	var cur []string
	start := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				out = append(out, chunk{lines: cur, line: start})
				cur = nil
			}
			continue
		}
		if len(cur) == 0 {
			start = i + 1
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		out = append(out, chunk{lines: cur, line: start})
	}
	return out
}

func record(sec Section, c chunk) (*entity.Entity, error) {
	e := &entity.Entity{App: sec.App, Status: entity.StatusUnresolved}

	for _, line := range c.lines {
		name, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t") {
			// Continuation of the previous field's value.
			if len(e.Fields) == 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat,
					"%s section, record near line %d: expected a field line, got %q",
					sec.App, sec.Line+c.line, line)
			}
			e.Fields[len(e.Fields)-1].Value += "\n" + line
			continue
		}
		e.Fields = append(e.Fields, entity.Field{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}

	id, ok := e.Field("id")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"%s section, record near line %d: missing required id field", sec.App, sec.Line+c.line)
	}
	if !idChars.MatchString(id) {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"%s section, record near line %d: id %q contains characters unsafe for URLs",
			sec.App, sec.Line+c.line, id)
	}
	e.ID = id

	refs, err := references(e)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err,
			"%s section, record %q", sec.App, e.ID)
	}
	e.Refs = refs
	return e, nil
}

// references scans all field values for reference tokens, collecting targets
// in order of first appearance. Duplicates within one entity are kept once.
func references(e *entity.Entity) ([]string, error) {
	var refs []string
	seen := make(map[string]bool)
	for _, f := range e.Fields {
		for _, m := range refToken.FindAllStringSubmatch(f.Value, -1) {
			target := m[1]
			if target == "" {
				return nil, errors.New(errors.ErrCodeInvalidFormat,
					"field %q: empty reference token", f.Name)
			}
			if seen[target] {
				continue
			}
			seen[target] = true
			refs = append(refs, target)
		}
	}
	return refs, nil
}
