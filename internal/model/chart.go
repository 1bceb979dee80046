package model

import (
	"encoding/json"
	"strings"
)

// Sign is one of the twelve zodiac signs.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// Signs lists every sign in declaration order. The parser relies on this
// order when a single line names more than one sign.
var Signs = [12]Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// Point is one of the eight tracked chart points.
type Point string

const (
	Sun       Point = "Sun"
	Moon      Point = "Moon"
	Ascendant Point = "Ascendant"
	Mercury   Point = "Mercury"
	Venus     Point = "Venus"
	Mars      Point = "Mars"
	Jupiter   Point = "Jupiter"
	Saturn    Point = "Saturn"
)

// Points lists every tracked point in scoring order.
var Points = [8]Point{Sun, Moon, Ascendant, Mercury, Venus, Mars, Jupiter, Saturn}

// Planets lists the seven classical bodies, i.e. every point except the angle.
var Planets = [7]Point{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

var pointWeights = map[Point]int{
	Sun:       4,
	Moon:      4,
	Ascendant: 4,
	Mercury:   3,
	Venus:     3,
	Mars:      3,
	Jupiter:   2,
	Saturn:    2,
}

// Weight returns the fixed scoring weight of the point, 0 for unknown points.
func (p Point) Weight() int { return pointWeights[p] }

// IsAngle reports whether the point is the reference angle.
func (p Point) IsAngle() bool { return p == Ascendant }

// Label is the lower-cased header text that introduces the point in a report.
func (p Point) Label() string { return strings.ToLower(string(p)) }

// ParsePoint maps a point name, in any case, to its Point.
func ParsePoint(name string) (Point, bool) {
	name = strings.TrimSpace(name)
	for _, p := range Points {
		if strings.EqualFold(name, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Element is one of the four element categories.
type Element string

const (
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Air   Element = "Air"
	Water Element = "Water"
)

// Elements lists the element categories in report order.
var Elements = []Element{Fire, Earth, Air, Water}

// Quality is one of the three quality (modality) categories.
type Quality string

const (
	Cardinal Quality = "Cardinal"
	Fixed    Quality = "Fixed"
	Mutable  Quality = "Mutable"
)

// Qualities lists the quality categories in report order.
var Qualities = []Quality{Cardinal, Fixed, Mutable}

// Positions maps each resolved point to its sign. Unresolved points are
// simply missing from the map.
type Positions map[Point]Sign

// Get returns the sign of p and whether it was resolved.
func (p Positions) Get(pt Point) (Sign, bool) {
	s, ok := p[pt]
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Resolved counts the points that carry a sign.
func (p Positions) Resolved() int {
	n := 0
	for _, pt := range Points {
		if _, ok := p.Get(pt); ok {
			n++
		}
	}
	return n
}

// Unresolved returns the points without a sign, in scoring order.
func (p Positions) Unresolved() []Point {
	var out []Point
	for _, pt := range Points {
		if _, ok := p.Get(pt); !ok {
			out = append(out, pt)
		}
	}
	return out
}

// MarshalJSON always emits all eight points, null for unresolved ones.
func (p Positions) MarshalJSON() ([]byte, error) {
	out := make(map[Point]*Sign, len(Points))
	for _, pt := range Points {
		if s, ok := p.Get(pt); ok {
			s := s
			out[pt] = &s
		} else {
			out[pt] = nil
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the format produced by MarshalJSON.
func (p *Positions) UnmarshalJSON(data []byte) error {
	var raw map[Point]*Sign
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Positions, len(raw))
	for pt, s := range raw {
		if s != nil && *s != "" {
			out[pt] = *s
		}
	}
	*p = out
	return nil
}
