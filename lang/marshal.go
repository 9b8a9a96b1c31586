package lang

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Template.
func (t *Template) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToMap())
}

// ToMap converts the template to a native Go map structure.
func (t *Template) ToMap() map[string]any {
	return map[string]any{
		"source": t.source,
		"nodes":  t.nodes.ToNative(),
	}
}

// ToNative converts a node sequence to native Go data, one map per node.
func (ns Nodes) ToNative() []any {
	result := make([]any, 0, len(ns))

	for _, n := range ns {
		result = append(result, nodeToNative(n))
	}

	return result
}

func nodeToNative(n Node) map[string]any {
	switch n := n.(type) {
	case *Literal:
		return map[string]any{
			"type": "literal",
			"text": n.Text,
		}

	case *Substitution:
		return map[string]any{
			"type": "substitution",
			"name": n.Name,
		}

	case *Round:
		return map[string]any{
			"type":      "round",
			"name":      n.Name,
			"precision": n.Precision,
		}

	case *Conditional:
		return map[string]any{
			"type":      "conditional",
			"predicate": predicateToNative(n.Predicate),
			"then":      n.Then.ToNative(),
			"else":      n.Else.ToNative(),
		}

	default:
		return nil
	}
}

func predicateToNative(pred Predicate) map[string]any {
	switch pred := pred.(type) {
	case *Match:
		return map[string]any{
			"type":    "match",
			"name":    pred.Name,
			"operand": pred.Operand.Value().GoValue(),
			"kind":    pred.Operand.Kind.String(),
		}

	case *Exists:
		return map[string]any{
			"type": "exists",
			"name": pred.Name,
		}

	default:
		return nil
	}
}
