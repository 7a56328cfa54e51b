package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TargetKind discriminates the Target union.
type TargetKind int

const (
	TargetElementID TargetKind = iota
	TargetQuery
	TargetCoordinates
)

// Target describes where to act: a catalog element ID, a free-text query,
// or a raw screen coordinate. Construct with the factory functions.
type Target struct {
	Kind  TargetKind
	ID    string
	Query string
	Point Point
}

// ElementIDTarget targets a cataloged element like "B3".
func ElementIDTarget(id string) Target {
	return Target{Kind: TargetElementID, ID: id}
}

// QueryTarget targets the first element matching free text.
func QueryTarget(query string) Target {
	return Target{Kind: TargetQuery, Query: query}
}

// CoordinateTarget targets a raw screen point.
func CoordinateTarget(p Point) Target {
	return Target{Kind: TargetCoordinates, Point: p}
}

func (t Target) String() string {
	switch t.Kind {
	case TargetElementID:
		return fmt.Sprintf("id:%s", t.ID)
	case TargetCoordinates:
		return fmt.Sprintf("%d,%d", t.Point.X, t.Point.Y)
	default:
		return fmt.Sprintf("query:%q", t.Query)
	}
}

// elementIDRe matches type-prefixed catalog IDs like B3, T12, O7.
var elementIDRe = regexp.MustCompile(`^[BTLIGSCMO][0-9]+$`)

// coordsRe matches "x,y" coordinate pairs with optional spaces.
var coordsRe = regexp.MustCompile(`^(-?[0-9]+)\s*,\s*(-?[0-9]+)$`)

// ParseTarget interprets a raw CLI/tool argument as a Target.
// "B3"-shaped strings are element IDs, "x,y" pairs are coordinates,
// anything else is a free-text query.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Target{}, fmt.Errorf("empty target")
	}
	if elementIDRe.MatchString(s) {
		return ElementIDTarget(s), nil
	}
	if m := coordsRe.FindStringSubmatch(s); m != nil {
		x, err := strconv.Atoi(m[1])
		if err != nil {
			return Target{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
		}
		y, err := strconv.Atoi(m[2])
		if err != nil {
			return Target{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
		}
		return CoordinateTarget(Point{X: x, Y: y}), nil
	}
	return QueryTarget(s), nil
}
