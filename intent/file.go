package intent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// dictionaryFile is the YAML shape: language → phrase → role name.
//
//	en:
//	  "otp field": login_field
//	ru:
//	  "одноразовый код": login_field
type dictionaryFile map[string]map[string]string

// LoadDictionaryFile reads a YAML phrase table and merges it over the
// built-in dictionary. File entries win on collision, so projects can remap
// built-in phrases.
func LoadDictionaryFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("intent: read dictionary: %w", err)
	}
	return parseDictionary(data)
}

func parseDictionary(data []byte) (*Dictionary, error) {
	var file dictionaryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("intent: parse dictionary: %w", err)
	}

	d := NewDictionary()
	for lang, phrases := range file {
		for phrase, roleName := range phrases {
			role, ok := ParseRole(roleName)
			if !ok {
				return nil, fmt.Errorf("intent: dictionary phrase %q: unknown role %q", phrase, roleName)
			}
			d.add(Language(lang), phrase, role)
		}
	}
	return d, nil
}
