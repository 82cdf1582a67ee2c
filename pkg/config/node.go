// Package config exposes a read-only property tree used to configure
// renderers and scenes. Trees are loaded from YAML, JSON or TOML files
// or built directly from Go maps.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var (
	// ErrMissingKey is returned when a required key is absent
	ErrMissingKey = errors.New("config: missing required key")

	// ErrInvalidValue is returned when a key cannot be converted to the requested type
	ErrInvalidValue = errors.New("config: invalid value")
)

// Node is one level of the property tree
type Node struct {
	v    *viper.Viper
	path string
}

// Load reads a property tree from a file. The format is picked from the extension.
func Load(filename string) (*Node, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}
	return &Node{v: v}, nil
}

// FromMap builds a property tree from nested maps
func FromMap(values map[string]interface{}) (*Node, error) {
	v := viper.New()
	if err := v.MergeConfigMap(values); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &Node{v: v}, nil
}

// MustFromMap is FromMap for literals known to be valid
func MustFromMap(values map[string]interface{}) *Node {
	n, err := FromMap(values)
	if err != nil {
		panic(err)
	}
	return n
}

// Path returns the dotted location of this node inside the root tree
func (n *Node) Path() string {
	return n.path
}

// Has reports whether key (dotted for nested keys) is set
func (n *Node) Has(key string) bool {
	return n != nil && n.v.IsSet(key)
}

// Child returns the subtree under key, or nil when it does not exist
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	sub := n.v.Sub(key)
	if sub == nil {
		return nil
	}
	return &Node{v: sub, path: n.qualify(key)}
}

// Keys returns the direct children of this node
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	seen := make(map[string]bool)
	var keys []string
	for _, k := range n.v.AllKeys() {
		head := strings.SplitN(k, ".", 2)[0]
		if !seen[head] {
			seen[head] = true
			keys = append(keys, head)
		}
	}
	return keys
}

func (n *Node) qualify(key string) string {
	if n == nil || n.path == "" {
		return key
	}
	return n.path + "." + key
}

func (n *Node) lookup(key string) (interface{}, error) {
	if !n.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, n.qualify(key))
	}
	return n.v.Get(key), nil
}

func (n *Node) invalid(key string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidValue, n.qualify(key), err)
}

// Int returns a required integer value
func (n *Node) Int(key string) (int, error) {
	raw, err := n.lookup(key)
	if err != nil {
		return 0, err
	}
	val, err := cast.ToIntE(raw)
	if err != nil {
		return 0, n.invalid(key, err)
	}
	return val, nil
}

// Int64 returns a required 64-bit integer value
func (n *Node) Int64(key string) (int64, error) {
	raw, err := n.lookup(key)
	if err != nil {
		return 0, err
	}
	val, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, n.invalid(key, err)
	}
	return val, nil
}

// Float returns a required floating point value
func (n *Node) Float(key string) (float64, error) {
	raw, err := n.lookup(key)
	if err != nil {
		return 0, err
	}
	val, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, n.invalid(key, err)
	}
	return val, nil
}

// String returns a required string value
func (n *Node) String(key string) (string, error) {
	raw, err := n.lookup(key)
	if err != nil {
		return "", err
	}
	val, err := cast.ToStringE(raw)
	if err != nil {
		return "", n.invalid(key, err)
	}
	return val, nil
}

// IntOr returns the integer at key or def when the key is absent.
// A present but malformed value is still an error.
func (n *Node) IntOr(key string, def int) (int, error) {
	if !n.Has(key) {
		return def, nil
	}
	return n.Int(key)
}

// Int64Or returns the 64-bit integer at key or def when the key is absent
func (n *Node) Int64Or(key string, def int64) (int64, error) {
	if !n.Has(key) {
		return def, nil
	}
	return n.Int64(key)
}

// FloatOr returns the float at key or def when the key is absent
func (n *Node) FloatOr(key string, def float64) (float64, error) {
	if !n.Has(key) {
		return def, nil
	}
	return n.Float(key)
}

// StringOr returns the string at key or def when the key is absent
func (n *Node) StringOr(key string, def string) (string, error) {
	if !n.Has(key) {
		return def, nil
	}
	return n.String(key)
}
