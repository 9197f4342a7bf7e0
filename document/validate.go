package document

import (
	"errors"
	"fmt"
)

// ErrSharedNode is returned when a node is reachable more than once
var ErrSharedNode = errors.New("node reachable more than once")

// Validate checks the tree invariant: every container owns its children exclusively
// Value nodes (Newline, Tab) carry no identity and may repeat
func Validate(n Node) error {
	seen := make(map[Node]struct{})
	var walk func(n Node, path string) error
	walk = func(n Node, path string) error {
		if isNil(n) {
			return fmt.Errorf("nil node at %s", path)
		}
		switch n.(type) {
		case Newline, Tab:
			return nil
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: %s", ErrSharedNode, path)
		}
		seen[n] = struct{}{}

		c, ok := n.(Container)
		if !ok {
			return nil
		}
		i := 0
		var err error
		c.Enter(func(child Node) {
			if err == nil {
				err = walk(child, fmt.Sprintf("%s/%d", path, i))
			}
			i++
		})
		return err
	}
	return walk(n, "")
}

// isNil reports an untyped nil or a nil pointer variant
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Block:
		return n == nil
	case *Text:
		return n == nil
	case *Style:
		return n == nil
	case *Root:
		return n == nil
	}
	return false
}
