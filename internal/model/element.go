package model

import "fmt"

// Point is a screen coordinate in pixels.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Bounds is a screen rectangle.
type Bounds struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"w" json:"w"`
	Height int `yaml:"h" json:"h"`
}

// Center returns the center point of the rectangle.
func (b Bounds) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// ElementType is the closed classification of a detected UI element.
type ElementType string

const (
	TypeButton    ElementType = "button"
	TypeTextField ElementType = "textField"
	TypeLink      ElementType = "link"
	TypeImage     ElementType = "image"
	TypeGroup     ElementType = "group"
	TypeSlider    ElementType = "slider"
	TypeCheckbox  ElementType = "checkbox"
	TypeMenu      ElementType = "menu"
	TypeOther     ElementType = "other"
)

// IDPrefix returns the single-letter prefix used for element IDs of this type,
// e.g. "B" for buttons so the third button detected becomes "B3".
func (t ElementType) IDPrefix() string {
	switch t {
	case TypeButton:
		return "B"
	case TypeTextField:
		return "T"
	case TypeLink:
		return "L"
	case TypeImage:
		return "I"
	case TypeGroup:
		return "G"
	case TypeSlider:
		return "S"
	case TypeCheckbox:
		return "C"
	case TypeMenu:
		return "M"
	default:
		return "O"
	}
}

// DetectedElement is one catalog entry produced by a detection pass.
// IDs are stable for the lifetime of one detection result only.
type DetectedElement struct {
	ID         string            `yaml:"id"                   json:"id"`
	Type       ElementType       `yaml:"type"                 json:"type"`
	Label      string            `yaml:"label,omitempty"      json:"label,omitempty"`
	Value      string            `yaml:"value,omitempty"      json:"value,omitempty"`
	Bounds     Bounds            `yaml:"bounds"               json:"bounds"`
	Enabled    bool              `yaml:"enabled"              json:"enabled"`
	Selected   bool              `yaml:"selected,omitempty"   json:"selected,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// Center returns the actionable point for the element.
func (e DetectedElement) Center() Point {
	return e.Bounds.Center()
}

// DetectedElements groups catalog entries by type and keeps a flattened
// "all" view in detection (traversal) order for lookup and first-match scans.
type DetectedElements struct {
	Buttons    []DetectedElement `yaml:"buttons,omitempty"    json:"buttons,omitempty"`
	TextFields []DetectedElement `yaml:"textFields,omitempty" json:"textFields,omitempty"`
	Links      []DetectedElement `yaml:"links,omitempty"      json:"links,omitempty"`
	Images     []DetectedElement `yaml:"images,omitempty"     json:"images,omitempty"`
	Groups     []DetectedElement `yaml:"groups,omitempty"     json:"groups,omitempty"`
	Sliders    []DetectedElement `yaml:"sliders,omitempty"    json:"sliders,omitempty"`
	Checkboxes []DetectedElement `yaml:"checkboxes,omitempty" json:"checkboxes,omitempty"`
	Menus      []DetectedElement `yaml:"menus,omitempty"      json:"menus,omitempty"`
	Others     []DetectedElement `yaml:"others,omitempty"     json:"others,omitempty"`

	// All holds every element in detection order.
	All []DetectedElement `yaml:"-" json:"-"`
}

// Add appends an element to its type group and to the flattened view.
func (d *DetectedElements) Add(el DetectedElement) {
	d.All = append(d.All, el)
	switch el.Type {
	case TypeButton:
		d.Buttons = append(d.Buttons, el)
	case TypeTextField:
		d.TextFields = append(d.TextFields, el)
	case TypeLink:
		d.Links = append(d.Links, el)
	case TypeImage:
		d.Images = append(d.Images, el)
	case TypeGroup:
		d.Groups = append(d.Groups, el)
	case TypeSlider:
		d.Sliders = append(d.Sliders, el)
	case TypeCheckbox:
		d.Checkboxes = append(d.Checkboxes, el)
	case TypeMenu:
		d.Menus = append(d.Menus, el)
	default:
		d.Others = append(d.Others, el)
	}
}

// FindByID returns the element with the given catalog ID, or nil.
func (d *DetectedElements) FindByID(id string) *DetectedElement {
	for i := range d.All {
		if d.All[i].ID == id {
			return &d.All[i]
		}
	}
	return nil
}

// Count returns the total number of cataloged elements.
func (d *DetectedElements) Count() int {
	return len(d.All)
}

func (e DetectedElement) String() string {
	return fmt.Sprintf("%s %s %q", e.ID, e.Type, e.Label)
}
