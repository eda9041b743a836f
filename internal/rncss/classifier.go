package rncss

import "strings"

// directions are the box edges in shorthand order
var directions = []string{"top", "right", "bottom", "left"}

// boxSuffixes are the output key suffixes for an expanded shorthand, in the same order
var boxSuffixes = [4]string{"Top", "Right", "Bottom", "Left"}

// propertyCategories is built once at init and never written afterwards
var propertyCategories = buildPropertyCategories()

func buildPropertyCategories() map[string]Category {
	categories := map[string]Category{
		// Box shorthands
		"margin":  CategoryBoxShorthand,
		"padding": CategoryBoxShorthand,

		// Not accepted by the target styling API
		"display": CategoryUnsupported,
	}

	numerize := []string{
		"width",
		"height",
		"font-size",
		"line-height",
		"border-radius",
		"border-width",
	}
	numerize = append(numerize, directions...)

	for _, dir := range directions {
		numerize = append(numerize, "border-"+dir+"-width")
		numerize = append(numerize, "margin-"+dir, "padding-"+dir)
	}

	for _, prop := range numerize {
		categories[prop] = CategoryNumerize
	}

	return categories
}

// Classify returns the conversion category of a CSS property.
// Unknown properties are pass-through.
func Classify(property string) Category {
	if c, ok := propertyCategories[strings.ToLower(property)]; ok {
		return c
	}
	return CategoryPassThrough
}

// BoxKeys returns the four output keys for a shorthand property in top/right/bottom/left order.
func BoxKeys(property string) [4]string {
	var keys [4]string
	for i, suffix := range boxSuffixes {
		keys[i] = property + suffix
	}
	return keys
}

// unsupportedSet merges the static unsupported properties with per-call extras.
type unsupportedSet struct {
	authorizeDisplay bool
	extra            map[string]bool
}

func newUnsupportedSet(opts Options) unsupportedSet {
	set := unsupportedSet{authorizeDisplay: opts.AuthorizeDisplay}
	if len(opts.Unsupported) > 0 {
		set.extra = make(map[string]bool, len(opts.Unsupported))
		for _, p := range opts.Unsupported {
			set.extra[strings.ToLower(strings.TrimSpace(p))] = true
		}
	}
	return set
}

// skip reports whether a declaration for property must be dropped
func (s unsupportedSet) skip(property string) bool {
	property = strings.ToLower(property)
	if s.extra[property] {
		return true
	}
	return Classify(property) == CategoryUnsupported && !s.authorizeDisplay
}
