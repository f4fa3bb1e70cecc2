package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dsonnet-io/dsonnet/pkg/mediatype"
	"github.com/dsonnet-io/dsonnet/pkg/value"
)

// yamlCodec reads/writes application/yaml on top of gopkg.in/yaml.v3,
// using its yaml.Node tree (rather than Unmarshal into interface{}) so
// mapping-key insertion order survives the round trip, the same
// constraint json.go solves with a token-level decoder.
type yamlCodec struct{}

// RegisterYAML installs the YAML reader/writer into reg.
func RegisterYAML(reg *Registry) {
	c := yamlCodec{}
	reg.RegisterReader("application/yaml", c)
	reg.RegisterWriter("application/yaml", c)
}

func (yamlCodec) Accepts(mediatype.MediaType) bool { return true }

func (yamlCodec) Read(data []byte, mt mediatype.MediaType) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return value.Nil, nil
	}
	return decodeYAMLNode(doc.Content[0])
}

func decodeYAMLNode(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Nil, nil
		}
		return decodeYAMLNode(n.Content[0])
	case yaml.ScalarNode:
		return decodeYAMLScalar(n)
	case yaml.SequenceNode:
		cells := make([]*value.Cell, 0, len(n.Content))
		for _, c := range n.Content {
			cv, err := decodeYAMLNode(c)
			if err != nil {
				return nil, err
			}
			cells = append(cells, value.NewCell(cv))
		}
		return value.NewArr(cells...), nil
	case yaml.MappingNode:
		obj := value.NewObj()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			valNode := n.Content[i+1]
			vv, err := decodeYAMLNode(valNode)
			if err != nil {
				return nil, err
			}
			obj.SetValue(keyNode.Value, vv)
		}
		return obj, nil
	case yaml.AliasNode:
		return decodeYAMLNode(n.Alias)
	default:
		return value.Nil, nil
	}
}

func decodeYAMLScalar(n *yaml.Node) (value.Value, error) {
	var v interface{}
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return value.Nil, nil
	case bool:
		return value.Bool(t), nil
	case int:
		return value.Num(float64(t)), nil
	case int64:
		return value.Num(float64(t)), nil
	case float64:
		return value.Num(t), nil
	case string:
		return value.Str(t), nil
	default:
		return value.Str(fmt.Sprintf("%v", t)), nil
	}
}

func (yamlCodec) Write(v value.Value, mt mediatype.MediaType) ([]byte, error) {
	node, err := encodeYAMLNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func encodeYAMLNode(v value.Value) (*yaml.Node, error) {
	if value.IsNull(v) {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	switch t := v.(type) {
	case value.Bool:
		val := "false"
		if t {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}, nil
	case value.Num:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: value.FormatNumber(t)}, nil
	case value.Str:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t)}, nil
	case *value.Arr:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, c := range t.Elems {
			ev, err := c.Force()
			if err != nil {
				return nil, err
			}
			cn, err := encodeYAMLNode(ev)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, cn)
		}
		return node, nil
	case *value.Obj:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range t.VisibleKeys() {
			m, _ := t.Get(k)
			mv, err := m.Cell.Force()
			if err != nil {
				return nil, err
			}
			vn, err := encodeYAMLNode(mv)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, vn)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("cannot serialize value of kind %s to yaml", v.PrettyName())
	}
}
