package domain

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// regionalIndicatorA is the code point of REGIONAL INDICATOR SYMBOL LETTER A.
const regionalIndicatorA = 0x1F1E6

// Country describes an ISO 3166-1 alpha-2 country.
type Country struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
	Flag string `json:"flag" yaml:"flag"`
}

// Countries resolves country codes against the CLDR region data bundled with
// golang.org/x/text. Every accessor returns a zero value for unknown codes.
type Countries struct {
	namer display.Namer

	once  sync.Once
	codes []string
}

// NewCountries creates a country lookup with English display names.
func NewCountries() *Countries {
	return &Countries{namer: display.English.Regions()}
}

// region parses an alpha-2 code. Groups, private use codes, unnamed regions
// and aliases that canonicalise to a different code are rejected.
func (c *Countries) region(code string) (language.Region, bool) {
	var none language.Region
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return none, false
	}
	r, err := language.ParseRegion(code)
	if err != nil {
		return none, false
	}
	if !r.IsCountry() || r.IsPrivateUse() || r.String() != code {
		return none, false
	}
	if c.namer.Name(r) == "" {
		return none, false
	}
	return r, true
}

// IsValid returns true if code is a known country code.
func (c *Countries) IsValid(code string) bool {
	_, ok := c.region(code)
	return ok
}

// Name returns the English name of the country.
func (c *Countries) Name(code string) string {
	r, ok := c.region(code)
	if !ok {
		return ""
	}
	return c.namer.Name(r)
}

// Flag returns the emoji flag of the country as two regional indicators.
func (c *Countries) Flag(code string) string {
	r, ok := c.region(code)
	if !ok {
		return ""
	}
	s := r.String()
	return string([]rune{
		rune(regionalIndicatorA + int(s[0]-'A')),
		rune(regionalIndicatorA + int(s[1]-'A')),
	})
}

// Format returns "<flag> <name>".
func (c *Countries) Format(code string) string {
	name := c.Name(code)
	if name == "" {
		return ""
	}
	return c.Flag(code) + " " + name
}

// Details returns the full country description. The boolean is false for
// unknown codes.
func (c *Countries) Details(code string) (Country, bool) {
	r, ok := c.region(code)
	if !ok {
		return Country{}, false
	}
	return Country{
		Code: r.String(),
		Name: c.namer.Name(r),
		Flag: c.Flag(code),
	}, true
}

// Codes returns every known country code in alphabetical order.
func (c *Countries) Codes() []string {
	c.once.Do(func() {
		for a := 'A'; a <= 'Z'; a++ {
			for b := 'A'; b <= 'Z'; b++ {
				code := string([]rune{a, b})
				if _, ok := c.region(code); ok {
					c.codes = append(c.codes, code)
				}
			}
		}
	})
	return slices.Clone(c.codes)
}

// All returns the details of every known country ordered by code.
func (c *Countries) All() []Country {
	codes := c.Codes()
	out := make([]Country, 0, len(codes))
	for _, code := range codes {
		if d, ok := c.Details(code); ok {
			out = append(out, d)
		}
	}
	return out
}

// Options returns every country as an option pair keyed by code.
// When sorted is true options are ordered by name, otherwise by code.
func (c *Countries) Options(sorted bool) []OptionPair {
	labels := make(map[string]string, len(c.Codes()))
	for _, code := range c.Codes() {
		labels[code] = c.Name(code)
	}
	return KeyedOptions(labels, sorted)
}
