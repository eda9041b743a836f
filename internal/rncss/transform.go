package rncss

import (
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Transformer converts stylesheets into style objects
type Transformer struct {
	parser *Parser
	log    *zap.Logger
}

// NewTransformer creates a transformer that logs through log (nil for no logging).
func NewTransformer(log *zap.Logger) *Transformer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transformer{
		parser: NewParser(log),
		log:    log.Named("transform"),
	}
}

// Transform converts CSS text into a Result with a no-op logger.
func Transform(src string, opts Options) (Result, error) {
	return NewTransformer(nil).Transform(src, opts)
}

// Transform cleans and parses src, then converts its rules.
func (t *Transformer) Transform(src string, opts Options) (Result, error) {
	rules, err := t.parser.Parse(Clean(src))
	if err != nil {
		return nil, err
	}
	return t.TransformRules(rules, opts)
}

// TransformRules walks rules, selectors and declarations in order and
// builds one style object per normalized selector. Later declarations
// overwrite earlier ones for the same key.
func (t *Transformer) TransformRules(rules []Rule, opts Options) (Result, error) {
	unsupported := newUnsupportedSet(opts)
	result := make(Result)

	var errs error
	for _, rule := range rules {
		for _, raw := range rule.Selectors {
			selector := NormalizeSelector(raw)

			styles, ok := result[selector]
			if !ok {
				styles = make(StyleObject)
				result[selector] = styles
			}

			for _, decl := range rule.Declarations {
				if err := t.apply(styles, selector, decl, unsupported); err != nil {
					errs = multierr.Append(errs, err)
				}
			}
		}
	}

	if errs != nil {
		return nil, errs
	}
	return result, nil
}

// apply converts a single declaration into styles.
func (t *Transformer) apply(styles StyleObject, selector string, decl Declaration, unsupported unsupportedSet) error {
	property, value := decl.Property, decl.Value

	if unsupported.skip(property) {
		t.log.Debug("Dropping unsupported property",
			zap.String("selector", selector), zap.String("property", property))
		return nil
	}

	switch category := Classify(property); {
	case category == CategoryNumerize && value != "auto":
		styles[CamelCase(property)] = NumerizeValue(value)

	case category == CategoryBoxShorthand:
		expanded, err := ExpandBox(selector, property, value)
		if err != nil {
			return err
		}
		for key, v := range expanded {
			styles[key] = v
		}

	default:
		styles[CamelCase(property)] = CoerceValue(property, value)
	}
	return nil
}

// NormalizeSelector strips the class and id sigils from a selector.
// ".card" and "#card" both become "card".
func NormalizeSelector(selector string) string {
	return sigilReplacer.Replace(strings.TrimSpace(selector))
}

var sigilReplacer = strings.NewReplacer(".", "", "#", "")
