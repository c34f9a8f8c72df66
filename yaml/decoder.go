// Package yaml reads and writes price history documents.
//
// A history file is a stream of YAML documents. Each document maps a date to
// module types, each module type to stores, and each store to a list of
// shorthand entries:
//
//	2020-01-05:
//	  desktop:
//	    micro center:
//	      - 4GB@$14.99 Foobar
//	      - 2x4GB@$24.99 Foobar
package yaml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/ramprice"
	"gopkg.in/yaml.v3"
)

const (
	tagTimestamp = "!!timestamp"
	tagString    = "!!str"
	tagNull      = "!!null"
)

// Decode reads every document from r and merges them into one History.
// Later documents append to the entries of earlier ones.
//
// Branches of the wrong shape are skipped and reported: a root or value that
// is not a mapping, a key that is not a date or string, a store value that is
// not a list, and entries that are not strings. A YAML syntax error is fatal.
func Decode(r io.Reader) (ramprice.History, []ramprice.Skip, error) {
	h := ramprice.History{}
	var skips []ramprice.Skip

	dec := yaml.NewDecoder(r)
	for n := 1; ; n++ {
		var doc yaml.Node
		if err := dec.Decode(&doc); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, nil, fmt.Errorf("decode history document %d: %w", n, err)
		}
		d := &documentDecoder{history: h}
		d.decode(&doc)
		skips = append(skips, d.skips...)
	}
	return h, skips, nil
}

type documentDecoder struct {
	history ramprice.History
	skips   []ramprice.Skip
}

func (d *documentDecoder) skip(path []string, entry string, node *yaml.Node, format string, args ...any) {
	d.skips = append(d.skips, ramprice.Skip{
		Path:  strings.Join(path, "/"),
		Entry: entry,
		Err:   ramprice.Errorf(ramprice.EMALFORMED, "line %d: %s", node.Line, fmt.Sprintf(format, args...)),
	})
}

func (d *documentDecoder) decode(doc *yaml.Node) {
	if len(doc.Content) == 0 {
		return
	}
	root := resolve(doc.Content[0])
	if root.Kind == yaml.ScalarNode && root.ShortTag() == tagNull {
		return
	}
	if root.Kind != yaml.MappingNode {
		d.skip(nil, "", root, "document is not a mapping of dates")
		return
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := resolve(root.Content[i]), resolve(root.Content[i+1])
		date, ok := dateKey(key)
		if !ok {
			d.skip([]string{key.Value}, "", key, "key %q is not a date", key.Value)
			continue
		}
		d.decodeDate(date, value)
	}
}

func (d *documentDecoder) decodeDate(date ramprice.Date, node *yaml.Node) {
	path := []string{date.String()}
	if node.Kind != yaml.MappingNode {
		d.skip(path, "", node, "value is not a mapping of module types")
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := resolve(node.Content[i]), resolve(node.Content[i+1])
		if !isString(key) {
			d.skip(path, "", key, "module type %q is not a string", key.Value)
			continue
		}
		d.decodeModuleType(date, key.Value, value)
	}
}

func (d *documentDecoder) decodeModuleType(date ramprice.Date, moduleType string, node *yaml.Node) {
	path := []string{date.String(), moduleType}
	if node.Kind != yaml.MappingNode {
		d.skip(path, "", node, "value is not a mapping of stores")
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := resolve(node.Content[i]), resolve(node.Content[i+1])
		if !isString(key) {
			d.skip(path, "", key, "store %q is not a string", key.Value)
			continue
		}
		d.decodeStore(date, moduleType, key.Value, value)
	}
}

func (d *documentDecoder) decodeStore(date ramprice.Date, moduleType, store string, node *yaml.Node) {
	path := []string{date.String(), moduleType, store}
	if node.Kind != yaml.SequenceNode {
		d.skip(path, "", node, "value is not a list of entries")
		return
	}
	entries := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolve(item)
		if !isString(item) {
			d.skip(path, item.Value, item, "entry is not a string")
			continue
		}
		entries = append(entries, item.Value)
	}
	d.history.Add(date, moduleType, store, entries...)
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == tagString
}

// dateKey reads a timestamp key as a date. A timestamp with a time of day
// keeps its date part.
func dateKey(n *yaml.Node) (ramprice.Date, bool) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tagTimestamp {
		return ramprice.Date{}, false
	}
	v := n.Value
	if len(v) > len(ramprice.DateLayout) && strings.ContainsRune("Tt ", rune(v[len(ramprice.DateLayout)])) {
		v = v[:len(ramprice.DateLayout)]
	}
	date, err := ramprice.ParseDate(v)
	if err != nil {
		return ramprice.Date{}, false
	}
	return date, true
}
