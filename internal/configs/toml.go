package configs

import "github.com/BurntSushi/toml"

// LoadTOML loads a TOML file into a struct. Keys that do not map onto the
// struct are returned so callers can warn about typos.
func LoadTOML(filePath string, data interface{}) ([]string, error) {
	meta, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}
