package yaml

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/fwojciec/ramprice"
	"gopkg.in/yaml.v3"
)

// Encode writes h to w as a single document with keys in sorted order.
func Encode(w io.Writer, h ramprice.History) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(historyNode(h)); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return enc.Close()
}

// AppendFile appends h to the history file at path as a new document,
// creating the file if needed.
func AppendFile(path string, h ramprice.History) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close history file: %w", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat history file: %w", err)
	}
	if info.Size() > 0 {
		if _, err := io.WriteString(f, "\n---\n"); err != nil {
			return fmt.Errorf("write document separator: %w", err)
		}
	}
	return Encode(f, h)
}

func historyNode(h ramprice.History) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, date := range h.Dates() {
		types := h[date]
		typesNode := &yaml.Node{Kind: yaml.MappingNode}
		for _, moduleType := range slices.Sorted(maps.Keys(types)) {
			stores := types[moduleType]
			storesNode := &yaml.Node{Kind: yaml.MappingNode}
			for _, store := range slices.Sorted(maps.Keys(stores)) {
				entries := &yaml.Node{Kind: yaml.SequenceNode}
				for _, e := range stores[store] {
					entries.Content = append(entries.Content, stringNode(e))
				}
				storesNode.Content = append(storesNode.Content, stringNode(store), entries)
			}
			typesNode.Content = append(typesNode.Content, stringNode(moduleType), storesNode)
		}
		dateNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: tagTimestamp, Value: date.String()}
		root.Content = append(root.Content, dateNode, typesNode)
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagString, Value: s}
}
