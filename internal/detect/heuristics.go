package detect

import (
	"regexp"
	"strings"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// Browser tabs rarely classify cleanly from the role alone: Chrome exposes
// them as radio buttons, Safari as plain buttons inside a tab group. Three
// independent signals each qualify a node on their own.

// tabAncestryDepth bounds the upward ancestor walk.
const tabAncestryDepth = 8

// tabKeywordRe matches "tab" as a word within a label or title, so
// "New Tab" and "Close Tab" match but "Table" does not.
var tabKeywordRe = regexp.MustCompile(`(?i)(^|[^a-z])tab([^a-z]|$)`)

// tabRegionHeight is how far below the window top a tab strip can sit.
const tabRegionHeight = 120

// tabMaxHeight is the tallest a tab element plausibly is.
const tabMaxHeight = 60

// genericTabTitles are titles that carry no tab identity.
var genericTabTitles = map[string]bool{
	"":       true,
	"button": true,
	"group":  true,
	"tab":    true,
}

// IsLikelyBrowserTab reports whether the node looks like a browser tab.
// Any one of the ancestry, keyword, or geometry checks qualifies.
func IsLikelyBrowserTab(n platform.Node, label string, bounds model.Bounds, windowBounds *model.Bounds) bool {
	return HasTabGroupAncestor(n) ||
		HasTabKeyword(label, n.Title()) ||
		HasTabGeometry(bounds, windowBounds, n.Title())
}

// HasTabGroupAncestor walks the parent chain looking for a tab-group
// marker in role or role description.
func HasTabGroupAncestor(n platform.Node) bool {
	seen := make(map[uintptr]bool)
	p := n.Parent()
	for i := 0; i < tabAncestryDepth && p != nil; i++ {
		if seen[p.Identity()] {
			return false
		}
		seen[p.Identity()] = true
		if p.Role() == "AXTabGroup" {
			return true
		}
		if strings.Contains(strings.ToLower(p.RoleDescription()), "tab group") {
			return true
		}
		p = p.Parent()
	}
	return false
}

// HasTabKeyword reports whether the label or title mentions tabs as a word.
func HasTabKeyword(label, title string) bool {
	return tabKeywordRe.MatchString(label) || tabKeywordRe.MatchString(title)
}

// HasTabGeometry reports whether the node sits where a tab would: near the
// top of the window, wide relative to its height, with bounded height and a
// non-generic title.
func HasTabGeometry(bounds model.Bounds, windowBounds *model.Bounds, title string) bool {
	if windowBounds == nil {
		return false
	}
	if genericTabTitles[strings.ToLower(strings.TrimSpace(title))] {
		return false
	}
	if bounds.Y < windowBounds.Y || bounds.Y > windowBounds.Y+tabRegionHeight {
		return false
	}
	if bounds.Height <= 0 || bounds.Height > tabMaxHeight {
		return false
	}
	// Wide aspect ratio: at least twice as wide as tall.
	return bounds.Width >= 2*bounds.Height
}
