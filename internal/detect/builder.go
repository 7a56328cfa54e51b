// Package detect walks a UI accessibility tree and builds the typed,
// ID-addressable element catalog.
package detect

import (
	"fmt"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/operr"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// DefaultMaxDepth bounds the recursive traversal. The tree is externally
// owned and may alias or cycle, so depth works together with the
// identity-keyed visited set.
const DefaultMaxDepth = 20

// minVisibleSize is the side length below which nodes are noise.
// Cataloged elements always satisfy width > minVisibleSize and
// height > minVisibleSize.
const minVisibleSize = 5

// labelDescendantDepth bounds the static-text search used to label
// buttons that expose no text of their own.
const labelDescendantDepth = 4

// Builder produces element catalogs from accessibility trees.
type Builder struct {
	MaxDepth int
}

// NewBuilder returns a Builder with the default depth bound.
func NewBuilder() *Builder {
	return &Builder{MaxDepth: DefaultMaxDepth}
}

// Build walks the tree rooted at root (a window, or an application
// including its menu bar) and returns the catalog. windowBounds, when
// given, normalizes element coordinates to be window-relative.
//
// A single node attribute failing to resolve is treated as missing and
// never aborts the walk; an absent root is the only hard failure.
func (b *Builder) Build(root platform.Node, windowBounds *model.Bounds) (model.DetectedElements, []string, error) {
	if root == nil {
		return model.DetectedElements{}, nil, operr.New(operr.NotFound, "detect elements", "window/app not found")
	}
	maxDepth := b.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	w := &walker{
		maxDepth:     maxDepth,
		windowBounds: windowBounds,
		counters:     make(map[string]int),
		visited:      make(map[uintptr]bool),
	}
	w.walk(root, 0)
	return w.elements, w.warnings, nil
}

type walker struct {
	maxDepth     int
	windowBounds *model.Bounds
	counters     map[string]int
	visited      map[uintptr]bool
	elements     model.DetectedElements
	warnings     []string
	cycleSeen    bool
}

func (w *walker) walk(n platform.Node, depth int) {
	if n == nil || depth > w.maxDepth {
		return
	}
	key := n.Identity()
	if w.visited[key] {
		if !w.cycleSeen {
			w.cycleSeen = true
			w.warnings = append(w.warnings, "tree contains aliased or cyclic nodes; revisits skipped")
		}
		return
	}
	w.visited[key] = true

	if el, ok := w.catalog(n); ok {
		w.elements.Add(el)
	}

	for _, child := range n.Children() {
		w.walk(child, depth+1)
	}
}

// catalog classifies and labels a single node. ok is false for nodes
// that are discarded (no geometry, or too small to interact with).
func (w *walker) catalog(n platform.Node) (model.DetectedElement, bool) {
	bounds, ok := n.Bounds()
	if !ok {
		return model.DetectedElement{}, false
	}
	if bounds.Width <= minVisibleSize || bounds.Height <= minVisibleSize {
		return model.DetectedElement{}, false
	}

	role := n.Role()
	elType := model.ClassifyRole(role)

	w.counters[elType.IDPrefix()]++
	id := fmt.Sprintf("%s%d", elType.IDPrefix(), w.counters[elType.IDPrefix()])

	el := elementFromNode(n, id, elType, bounds)

	if w.windowBounds != nil {
		el.Bounds.X -= w.windowBounds.X
		el.Bounds.Y -= w.windowBounds.Y
	}

	if IsLikelyBrowserTab(n, el.Label, bounds, w.windowBounds) {
		el.Attributes["tab"] = "true"
	}

	return el, true
}

// ElementFromNode builds an uncataloged element view of a live node,
// used when a live search resolves outside any session catalog.
func ElementFromNode(n platform.Node) model.DetectedElement {
	bounds, _ := n.Bounds()
	return elementFromNode(n, "", model.ClassifyRole(n.Role()), bounds)
}

func elementFromNode(n platform.Node, id string, elType model.ElementType, bounds model.Bounds) model.DetectedElement {
	el := model.DetectedElement{
		ID:         id,
		Type:       elType,
		Label:      labelFor(n),
		Value:      n.Value(),
		Bounds:     bounds,
		Enabled:    n.Enabled(),
		Selected:   n.Selected(),
		Attributes: map[string]string{"role": n.Role()},
	}
	if sr := n.Subrole(); sr != "" {
		el.Attributes["subrole"] = sr
	}
	if ident := n.Identifier(); ident != "" {
		el.Attributes["identifier"] = ident
	}
	if isActionable(n) {
		el.Attributes["actionable"] = "true"
	}
	return el
}

// labelFor picks the element label by priority: explicit label/description,
// then title, then value, then role description. Buttons lacking all of
// these borrow the first static-text descendant's value or title.
func labelFor(n platform.Node) string {
	if s := n.Label(); s != "" {
		return s
	}
	if s := n.Title(); s != "" {
		return s
	}
	if s := n.Value(); s != "" {
		return s
	}
	if s := n.RoleDescription(); s != "" {
		return s
	}
	if model.ClassifyRole(n.Role()) == model.TypeButton {
		if s := staticTextLabel(n, 0); s != "" {
			return s
		}
	}
	return ""
}

// staticTextLabel depth-first searches descendants for the first static
// text node and returns its value or title.
func staticTextLabel(n platform.Node, depth int) string {
	if depth > labelDescendantDepth {
		return ""
	}
	for _, child := range n.Children() {
		if child.Role() == "AXStaticText" {
			if v := child.Value(); v != "" {
				return v
			}
			if t := child.Title(); t != "" {
				return t
			}
		}
		if s := staticTextLabel(child, depth+1); s != "" {
			return s
		}
	}
	return ""
}

// isActionable reports whether the node declares a press-equivalent
// action or carries an actionable role.
func isActionable(n platform.Node) bool {
	for _, a := range n.Actions() {
		if model.IsPressAction(a) {
			return true
		}
	}
	return model.IsActionableRole(n.Role())
}
