package compose

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Render writes doc as YAML. The flat shape (version 1) has the services at
// the root; every other version wraps them under a top-level services key
// next to version, networks and volumes.
func Render(w io.Writer, doc *Document, v Version) error {
	r := renderer{quote: !v.Flat()}
	root := r.document(doc, v)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode compose document: %w", err)
	}
	return enc.Close()
}

type renderer struct {
	// quote double-quotes plain string values.
	quote bool
}

func (r renderer) document(doc *Document, v Version) *yaml.Node {
	services := mappingNode()
	if doc != nil {
		for _, name := range doc.ServiceNames {
			appendPair(services, name, r.sortedMapping(doc.Services[name]))
		}
	}
	if v.Flat() {
		return services
	}

	root := mappingNode()
	appendPair(root, "version", r.scalar(String(v.Tag)))
	appendPair(root, "services", services)
	if doc != nil && len(doc.Networks) > 0 {
		nets := mappingNode()
		for _, name := range sortedKeys(doc.Networks) {
			appendPair(nets, name, r.node(doc.Networks[name]))
		}
		appendPair(root, "networks", nets)
	}
	if doc != nil && len(doc.Volumes) > 0 {
		vols := mappingNode()
		for _, name := range sortedKeys(doc.Volumes) {
			vol := mappingNode()
			if doc.Volumes[name].External {
				appendPair(vol, "external", r.scalar(Bool(true)))
			}
			appendPair(vols, name, vol)
		}
		appendPair(root, "volumes", vols)
	}
	return root
}

// sortedMapping renders a service with its attribute keys in sorted order.
// Nested mappings keep their own order.
func (r renderer) sortedMapping(m *Mapping) *yaml.Node {
	n := mappingNode()
	keys := m.Keys()
	sort.Strings(keys)
	for _, k := range keys {
		appendPair(n, k, r.node(m.Get(k)))
	}
	return n
}

func (r renderer) node(v Value) *yaml.Node {
	switch v.Kind() {
	case KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, r.node(item))
		}
		return n
	case KindMapping:
		n := mappingNode()
		m := v.Mapping()
		for _, k := range m.Keys() {
			appendPair(n, k, r.node(m.Get(k)))
		}
		return n
	case KindScalar:
		return r.scalar(v)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func (r renderer) scalar(v Value) *yaml.Node {
	switch s := v.Scalar().(type) {
	case string:
		n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
		switch {
		case v.Style() == StyleSingleQuoted:
			n.Style = yaml.SingleQuotedStyle
		case r.quote:
			n.Style = yaml.DoubleQuotedStyle
		}
		return n
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(s)}
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(s, 10)}
	case uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(s, 10)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
