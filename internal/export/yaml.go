package export

import (
	"io"

	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Title  string     `yaml:"title,omitempty"`
	Header []string   `yaml:"header"`
	Rows   [][]string `yaml:"rows"`
}

// WriteYAML writes g as a YAML document with title, header, and rows keys.
func WriteYAML(w io.Writer, g Grid, title string) error {
	body := g.Body
	if body == nil {
		body = [][]string{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{Title: title, Header: g.Header, Rows: body}); err != nil {
		return err
	}
	return enc.Close()
}
