package jurisdiction

import (
	"bytes"
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/LienDeadline/pkg/errors"
)

// ExpectedJurisdictions is the size of a complete catalog: 50 states and DC.
const ExpectedJurisdictions = 51

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogDocument is the YAML root.
type catalogDocument struct {
	Version       string `yaml:"version"`
	Jurisdictions []Rule `yaml:"jurisdictions"`
}

// ParseCatalog decodes a YAML rule catalog.  Unknown keys are rejected so a
// misspelled field cannot silently drop a statutory period.
func ParseCatalog(data []byte) ([]Rule, error) {
	doc, err := decodeCatalog(data)
	if err != nil {
		return nil, err
	}
	return doc.Jurisdictions, nil
}

func decodeCatalog(data []byte) (catalogDocument, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc catalogDocument
	if err := dec.Decode(&doc); err != nil {
		return catalogDocument{}, errors.Wrap(err, errors.CodeRuleCatalog, "decode rule catalog")
	}
	if len(doc.Jurisdictions) == 0 {
		return catalogDocument{}, errors.RuleCatalog("rule catalog has no jurisdictions")
	}
	return doc, nil
}

// LoadTable parses data and builds a Table that must cover every jurisdiction.
func LoadTable(data []byte) (*Table, error) {
	doc, err := decodeCatalog(data)
	if err != nil {
		return nil, err
	}
	t, err := NewTable(doc.Jurisdictions)
	if err != nil {
		return nil, err
	}
	t.version = doc.Version
	if t.Len() != ExpectedJurisdictions {
		return nil, errors.RuleCatalog("rule catalog covers %d jurisdictions, want %d", t.Len(), ExpectedJurisdictions)
	}
	return t, nil
}

// LoadTableFile reads a catalog override from disk.
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeRuleCatalog, "read rule catalog "+path)
	}
	return LoadTable(data)
}

// DefaultTable builds the Table from the catalog compiled into the binary.
func DefaultTable() (*Table, error) {
	return LoadTable(defaultCatalog)
}
