package jurisdiction

import (
	"sort"
	"strings"

	"github.com/turtacn/LienDeadline/pkg/errors"
)

// Table is the read-only lookup code -> Rule.  It is built once at process
// start and shared by every evaluation; nothing mutates it afterwards, so it
// needs no locking.
type Table struct {
	rules   map[string]Rule
	aliases map[string]string
	codes   []string
	version string
}

// NewTable validates rules and indexes them by code, full name and aliases.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{
		rules:   make(map[string]Rule, len(rules)),
		aliases: make(map[string]string, len(rules)*2),
		codes:   make([]string, 0, len(rules)),
	}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.rules[r.Code]; dup {
			return nil, errors.RuleCatalog("duplicate jurisdiction code %s", r.Code)
		}
		t.rules[r.Code] = r
		t.codes = append(t.codes, r.Code)
	}
	// Aliases are indexed after all codes so an alias can never shadow a code.
	for _, r := range rules {
		for _, alias := range append([]string{r.Name}, r.Aliases...) {
			key := normalizeKey(alias)
			if key == "" {
				continue
			}
			if _, isCode := t.rules[key]; isCode && key != r.Code {
				return nil, errors.RuleCatalog("%s: alias %q collides with a jurisdiction code", r.Code, alias)
			}
			if prev, taken := t.aliases[key]; taken && prev != r.Code {
				return nil, errors.RuleCatalog("alias %q maps to both %s and %s", alias, prev, r.Code)
			}
			t.aliases[key] = r.Code
		}
	}
	sort.Strings(t.codes)
	return t, nil
}

// normalizeKey upper-cases, drops periods and collapses whitespace so that
// " d.c. ", "District  of Columbia" and "DC" compare sensibly.
func normalizeKey(s string) string {
	s = strings.ReplaceAll(strings.ToUpper(s), ".", "")
	return strings.Join(strings.Fields(s), " ")
}

// Normalize converts a code, full name or alias to the two-letter code.
func (t *Table) Normalize(input string) (string, error) {
	key := normalizeKey(input)
	if _, ok := t.rules[key]; ok {
		return key, nil
	}
	if code, ok := t.aliases[key]; ok {
		return code, nil
	}
	return "", errors.UnsupportedJurisdiction(input, t.codes)
}

// Resolve normalizes input and returns the matching rule.
func (t *Table) Resolve(input string) (Rule, error) {
	code, err := t.Normalize(input)
	if err != nil {
		return Rule{}, err
	}
	return t.rules[code], nil
}

// Get returns the rule for an exact two-letter code.
func (t *Table) Get(code string) (Rule, bool) {
	r, ok := t.rules[code]
	return r, ok
}

// Codes returns the supported codes, sorted.  The slice is a copy.
func (t *Table) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

// List returns every rule sorted by code.
func (t *Table) List() []Rule {
	out := make([]Rule, 0, len(t.codes))
	for _, c := range t.codes {
		out = append(out, t.rules[c])
	}
	return out
}

// Version is the catalog's version label, empty for tables built in code.
func (t *Table) Version() string { return t.version }

// Len returns the number of jurisdictions.
func (t *Table) Len() int { return len(t.codes) }
