// Package parser resolves tracked chart points to zodiac signs from the loosely
// structured text of an extracted chart report.
//
// Resolution runs in phases, each exposed on Document so it can be exercised
// on its own:
//
//   - ResolveWindow: the first sign within a few lines of the point's header.
//   - ResolveNearest: the sign occurrence closest to the header, at any distance.
//   - ResolveAngle: a second pass for the Ascendant under its abbreviated label.
//
// Document.Resolve chains them. Nothing here returns an error; a point that
// cannot be resolved is simply absent from the result.
package parser

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"ChartBalance/internal/model"
)

const (
	// DefaultWindow is the number of lines, header included, searched by the
	// primary phase.
	DefaultWindow = 6
	// DefaultAngleWindow is the number of lines after an abbreviated angle
	// header searched by the angle phase.
	DefaultAngleWindow = 4

	angleAbbrev = "asc"
)

// TieBreak selects which sign wins when one line names several.
type TieBreak int

const (
	// DeclarationOrder picks the first sign in model.Signs order that
	// appears anywhere on the line.
	DeclarationOrder TieBreak = iota
	// TextPosition picks the left-most sign on the line.
	TextPosition
)

func (t TieBreak) String() string {
	switch t {
	case DeclarationOrder:
		return "declaration"
	case TextPosition:
		return "position"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

// ParseTieBreak maps a config value to a TieBreak. Empty means the default.
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "declaration":
		return DeclarationOrder, nil
	case "position":
		return TextPosition, nil
	default:
		return 0, fmt.Errorf("unknown tie-break %q (want declaration or position)", s)
	}
}

var lowerSigns = func() [len(model.Signs)]string {
	var out [len(model.Signs)]string
	for i, s := range model.Signs {
		out[i] = strings.ToLower(string(s))
	}
	return out
}()

// Parser holds the tunables of the position heuristics. The zero value is
// not useful; use New.
type Parser struct {
	TieBreak    TieBreak
	Window      int
	AngleWindow int
}

// New returns a Parser with the default windows.
func New(tb TieBreak) *Parser {
	return &Parser{TieBreak: tb, Window: DefaultWindow, AngleWindow: DefaultAngleWindow}
}

// Parse resolves every tracked point in text.
func (p *Parser) Parse(text string) model.Positions {
	doc := p.Analyze(text)
	pos := make(model.Positions, len(model.Points))
	for _, pt := range model.Points {
		if s, ok := doc.Resolve(pt); ok {
			pos[pt] = s
		}
	}
	return pos
}

// Occurrence is a sign named on a given (non-empty) line.
type Occurrence struct {
	Line int
	Sign model.Sign
}

// Document is the scanned form of one text: its non-empty lines, the header
// lines of each point and every sign occurrence.
type Document struct {
	lines       []string
	lower       []string
	lineSigns   [][]model.Sign
	headers     map[model.Point][]int
	occurrences []Occurrence

	window      int
	angleWindow int
}

// Analyze scans text once; the returned Document answers all resolution
// queries.
func (p *Parser) Analyze(text string) *Document {
	d := &Document{
		headers:     make(map[model.Point][]int),
		window:      p.Window,
		angleWindow: p.AngleWindow,
	}
	for _, raw := range strings.FieldsFunc(text, isLineBreak) {
		ln := strings.TrimSpace(raw)
		if ln == "" {
			continue
		}
		d.lines = append(d.lines, ln)
		d.lower = append(d.lower, strings.ToLower(ln))
	}

	d.lineSigns = make([][]model.Sign, len(d.lines))
	for i, ln := range d.lower {
		for _, pt := range model.Points {
			if strings.HasPrefix(ln, pt.Label()) {
				d.headers[pt] = append(d.headers[pt], i)
			}
		}
		d.lineSigns[i] = signsIn(ln, p.TieBreak)
		for _, s := range d.lineSigns[i] {
			d.occurrences = append(d.occurrences, Occurrence{Line: i, Sign: s})
		}
	}
	return d
}

// signsIn lists the signs named on a lower-cased line, best candidate first.
func signsIn(ln string, tb TieBreak) []model.Sign {
	type hit struct {
		sign model.Sign
		at   int
	}
	var hits []hit
	for i, name := range lowerSigns {
		if at := strings.Index(ln, name); at >= 0 {
			hits = append(hits, hit{sign: model.Signs[i], at: at})
		}
	}
	if tb == TextPosition {
		sort.SliceStable(hits, func(a, b int) bool { return hits[a].at < hits[b].at })
	}
	out := make([]model.Sign, len(hits))
	for i, h := range hits {
		out[i] = h.sign
	}
	return out
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Lines returns the number of non-empty lines.
func (d *Document) Lines() int { return len(d.lines) }

// Headers returns every line index that starts with the point's label.
func (d *Document) Headers(pt model.Point) []int { return d.headers[pt] }

// Occurrences returns every sign occurrence in line order.
func (d *Document) Occurrences() []Occurrence { return d.occurrences }

// Resolve runs the phases in order and returns the first sign found.
func (d *Document) Resolve(pt model.Point) (model.Sign, bool) {
	if s, ok := d.ResolveWindow(pt); ok {
		return s, true
	}
	if s, ok := d.ResolveNearest(pt); ok {
		return s, true
	}
	if pt.IsAngle() {
		return d.ResolveAngle()
	}
	return "", false
}

// ResolveWindow looks for a sign on the point's first header line or the
// lines right after it.
func (d *Document) ResolveWindow(pt model.Point) (model.Sign, bool) {
	hdr, ok := d.firstHeader(pt)
	if !ok {
		return "", false
	}
	return d.firstSignFrom(hdr, d.window)
}

// ResolveNearest picks the occurrence closest to the point's first header.
// Equal distances go to the earlier occurrence. There is no distance limit.
func (d *Document) ResolveNearest(pt model.Point) (model.Sign, bool) {
	hdr, ok := d.firstHeader(pt)
	if !ok || len(d.occurrences) == 0 {
		return "", false
	}
	best := d.occurrences[0]
	bestDist := absInt(best.Line - hdr)
	for _, o := range d.occurrences[1:] {
		if dist := absInt(o.Line - hdr); dist < bestDist {
			best, bestDist = o, dist
		}
	}
	return best.Sign, true
}

// ResolveAngle finds the Ascendant under its abbreviated label ("Asc",
// "Asc.", "ASC:"). Each such line is tried in turn; the line itself and up
// to AngleWindow following lines are searched.
func (d *Document) ResolveAngle() (model.Sign, bool) {
	for i, ln := range d.lower {
		if !isAngleHeader(ln) {
			continue
		}
		if s, ok := d.firstSignFrom(i, d.angleWindow+1); ok {
			return s, true
		}
	}
	return "", false
}

func (d *Document) firstHeader(pt model.Point) (int, bool) {
	idx := d.headers[pt]
	if len(idx) == 0 {
		return 0, false
	}
	return idx[0], true
}

func (d *Document) firstSignFrom(start, span int) (model.Sign, bool) {
	for i := start; i < start+span && i < len(d.lineSigns); i++ {
		if signs := d.lineSigns[i]; len(signs) > 0 {
			return signs[0], true
		}
	}
	return "", false
}

func isAngleHeader(ln string) bool {
	if !strings.HasPrefix(ln, angleAbbrev) {
		return false
	}
	rest := ln[len(angleAbbrev):]
	if rest == "" || strings.HasPrefix(rest, "endant") {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return !unicode.IsLetter(r)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
