// Package resolve turns heterogeneous targets (element id, free-text
// query, raw coordinate) into an actionable element and point.
package resolve

import (
	"strings"

	"github.com/steipete/peekaboo-go/internal/detect"
	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/operr"
	"github.com/steipete/peekaboo-go/internal/platform"
	"github.com/steipete/peekaboo-go/internal/session"
)

// Resolver resolves targets against the session store first, then a live
// tree search.
type Resolver struct {
	Store    *session.Store
	Desktop  platform.Desktop
	Inputter platform.Inputter
	MaxDepth int
}

// New creates a Resolver.
func New(store *session.Store, desktop platform.Desktop, inputter platform.Inputter) *Resolver {
	return &Resolver{
		Store:    store,
		Desktop:  desktop,
		Inputter: inputter,
		MaxDepth: detect.DefaultMaxDepth,
	}
}

// Resolve maps a target to an element and an actionable point.
// Coordinate targets pass through untouched with no tree traversal and a
// nil element. Query matching is substring-based; see ResolveExact for
// the exact-match variant.
func (r *Resolver) Resolve(target model.Target, sessionID string) (*model.DetectedElement, model.Point, error) {
	return r.resolve(target, sessionID, false)
}

// ResolveExact is Resolve with exact (case-insensitive, whole-string)
// query matching: "OK" matches only "OK", never "OK " or "OK to all".
func (r *Resolver) ResolveExact(target model.Target, sessionID string) (*model.DetectedElement, model.Point, error) {
	return r.resolve(target, sessionID, true)
}

func (r *Resolver) resolve(target model.Target, sessionID string, exact bool) (*model.DetectedElement, model.Point, error) {
	switch target.Kind {
	case model.TargetCoordinates:
		return nil, target.Point, nil
	case model.TargetElementID:
		return r.resolveElementID(target.ID, sessionID)
	case model.TargetQuery:
		return r.resolveQuery(target.Query, sessionID, exact)
	default:
		return nil, model.Point{}, operr.Newf(operr.InvalidInput, "resolve target", "unknown target kind %d", target.Kind)
	}
}

// ResolveForType resolves a text-entry target and performs the focusing
// click at the resolved point before the caller proceeds to type.
func (r *Resolver) ResolveForType(target model.Target, sessionID string) (*model.DetectedElement, model.Point, error) {
	el, point, err := r.Resolve(target, sessionID)
	if err != nil {
		return nil, model.Point{}, err
	}
	if r.Inputter != nil {
		if err := platform.Click(r.Inputter, platform.MouseLeft, 1, point); err != nil {
			return nil, model.Point{}, operr.Wrap(operr.OperationFailed, "focus for typing", "focusing click failed", err)
		}
	}
	return el, point, nil
}

func (r *Resolver) resolveElementID(id, sessionID string) (*model.DetectedElement, model.Point, error) {
	if sessionID != "" {
		if result, ok := r.Store.Get(sessionID); ok {
			if el := result.Elements.FindByID(id); el != nil {
				return el, el.Center(), nil
			}
		}
	}
	return nil, model.Point{}, operr.Newf(operr.NotFound, "resolve target", "element %s not found in session", id)
}

func (r *Resolver) resolveQuery(query, sessionID string, exact bool) (*model.DetectedElement, model.Point, error) {
	// First the session catalog: a first-match scan in catalog order,
	// not a best-match search.
	if sessionID != "" {
		if result, ok := r.Store.Get(sessionID); ok {
			if el := scanCatalog(result.Elements.All, query, exact); el != nil {
				return el, el.Center(), nil
			}
		}
	}

	// Cache miss: live search starting from the application under the
	// pointer, which is not necessarily the frontmost application.
	el, point, ok := r.liveSearch(query, exact)
	if !ok {
		return nil, model.Point{}, operr.Newf(operr.NotFound, "resolve target", "no element matching %q", query)
	}
	return el, point, nil
}

// scanCatalog returns the first enabled catalog element whose label,
// value, or type name matches the query.
func scanCatalog(all []model.DetectedElement, query string, exact bool) *model.DetectedElement {
	for i := range all {
		el := &all[i]
		if !el.Enabled {
			continue
		}
		if matchText(el.Label, query, exact) ||
			matchText(el.Value, query, exact) ||
			matchText(string(el.Type), query, exact) {
			return el
		}
	}
	return nil
}

// liveSearch depth-first traverses the tree of the app under the pointer
// and takes the first node whose title, label, value, or role description
// matches. There is no backtracking for a better match elsewhere.
func (r *Resolver) liveSearch(query string, exact bool) (*model.DetectedElement, model.Point, bool) {
	if r.Desktop == nil {
		return nil, model.Point{}, false
	}
	pointer, err := r.Desktop.PointerLocation()
	if err != nil {
		return nil, model.Point{}, false
	}
	app, ok := r.Desktop.AppAtPoint(pointer)
	if !ok {
		return nil, model.Point{}, false
	}
	root := app.Root()
	if root == nil {
		return nil, model.Point{}, false
	}

	visited := make(map[uintptr]bool)
	node := r.searchNode(root, query, exact, 0, visited)
	if node == nil {
		return nil, model.Point{}, false
	}
	bounds, ok := node.Bounds()
	if !ok {
		return nil, model.Point{}, false
	}
	el := detect.ElementFromNode(node)
	return &el, bounds.Center(), true
}

func (r *Resolver) searchNode(n platform.Node, query string, exact bool, depth int, visited map[uintptr]bool) platform.Node {
	if n == nil || depth > r.MaxDepth || visited[n.Identity()] {
		return nil
	}
	visited[n.Identity()] = true

	if matchText(n.Title(), query, exact) ||
		matchText(n.Label(), query, exact) ||
		matchText(n.Value(), query, exact) ||
		matchText(n.RoleDescription(), query, exact) {
		return n
	}

	for _, child := range n.Children() {
		if found := r.searchNode(child, query, exact, depth+1, visited); found != nil {
			return found
		}
	}
	return nil
}

// matchText is the shared query predicate. Contains mode takes the first
// match in traversal order; exact mode requires the whole string to match
// case-insensitively, so a trailing space is a mismatch.
func matchText(field, query string, exact bool) bool {
	if field == "" {
		return false
	}
	if exact {
		return strings.EqualFold(field, query)
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(query))
}
