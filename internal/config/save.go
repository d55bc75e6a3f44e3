package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveTheme updates (or inserts) the top-level `theme:` key in config.yml.
// Other keys and comments are kept; the file is replaced atomically.
func SaveTheme(theme string) (string, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = "default"
	}

	path, err := Path()
	if err != nil {
		return "", err
	}

	var mode os.FileMode = 0o644
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		data = nil
	} else if st, serr := os.Stat(path); serr == nil {
		mode = st.Mode().Perm()
	}

	updated, err := upsertTopLevel(data, "theme", theme)
	if err != nil {
		return "", fmt.Errorf("update %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "config.yml.*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return "", err
	}
	if _, err := tmp.Write(updated); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("rename temp config: %w", err)
	}
	return path, nil
}

// upsertTopLevel sets key: value in the root mapping of a YAML document,
// keeping comments attached to the other nodes.
func upsertTopLevel(in []byte, key, value string) ([]byte, error) {
	var doc yaml.Node
	if len(bytes.TrimSpace(in)) > 0 {
		if err := yaml.Unmarshal(in, &doc); err != nil {
			return nil, err
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level is not a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1].Kind = yaml.ScalarNode
			root.Content[i+1].Tag = "!!str"
			root.Content[i+1].Value = value
			root.Content[i+1].Content = nil
			return encode(&doc)
		}
	}

	root.Content = append([]*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	}, root.Content...)
	return encode(&doc)
}

func encode(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
