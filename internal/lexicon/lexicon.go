// Package lexicon holds the fixed sign tables: element, quality and classical
// ruler of every zodiac sign.
package lexicon

import (
	"strings"

	"ChartBalance/internal/model"
)

var elements = map[model.Sign]model.Element{
	model.Aries:       model.Fire,
	model.Leo:         model.Fire,
	model.Sagittarius: model.Fire,
	model.Taurus:      model.Earth,
	model.Virgo:       model.Earth,
	model.Capricorn:   model.Earth,
	model.Gemini:      model.Air,
	model.Libra:       model.Air,
	model.Aquarius:    model.Air,
	model.Cancer:      model.Water,
	model.Scorpio:     model.Water,
	model.Pisces:      model.Water,
}

var qualities = map[model.Sign]model.Quality{
	model.Aries:       model.Cardinal,
	model.Cancer:      model.Cardinal,
	model.Libra:       model.Cardinal,
	model.Capricorn:   model.Cardinal,
	model.Taurus:      model.Fixed,
	model.Leo:         model.Fixed,
	model.Scorpio:     model.Fixed,
	model.Aquarius:    model.Fixed,
	model.Gemini:      model.Mutable,
	model.Virgo:       model.Mutable,
	model.Sagittarius: model.Mutable,
	model.Pisces:      model.Mutable,
}

// Classical rulers only; outer bodies are not tracked.
var rulers = map[model.Sign]model.Point{
	model.Aries:       model.Mars,
	model.Taurus:      model.Venus,
	model.Gemini:      model.Mercury,
	model.Cancer:      model.Moon,
	model.Leo:         model.Sun,
	model.Virgo:       model.Mercury,
	model.Libra:       model.Venus,
	model.Scorpio:     model.Mars,
	model.Sagittarius: model.Jupiter,
	model.Capricorn:   model.Saturn,
	model.Aquarius:    model.Saturn,
	model.Pisces:      model.Jupiter,
}

// ElementOf returns the element of sign; ok is false for unknown signs.
func ElementOf(sign model.Sign) (model.Element, bool) {
	e, ok := elements[sign]
	return e, ok
}

// QualityOf returns the quality of sign; ok is false for unknown signs.
func QualityOf(sign model.Sign) (model.Quality, bool) {
	q, ok := qualities[sign]
	return q, ok
}

// RulerOf returns the classical ruling point of sign.
func RulerOf(sign model.Sign) (model.Point, bool) {
	p, ok := rulers[sign]
	return p, ok
}

// ParseSign matches name against the sign names, ignoring case and
// surrounding whitespace.
func ParseSign(name string) (model.Sign, bool) {
	name = strings.TrimSpace(name)
	for _, s := range model.Signs {
		if strings.EqualFold(name, string(s)) {
			return s, true
		}
	}
	return "", false
}
