package htmlrender

import (
	"strconv"
	"strings"
)

// classRegistry hands out one class name per distinct declaration list and
// kind, numbered in first-use order.
type classRegistry struct {
	names map[string]string
	rules []string
	next  map[string]int
}

func newClassRegistry() *classRegistry {
	return &classRegistry{names: make(map[string]string), next: make(map[string]int)}
}

// class returns the class for css under prefix, registering it on first use.
func (c *classRegistry) class(prefix, css string) string {
	key := prefix + "\x00" + css
	if name, ok := c.names[key]; ok {
		return name
	}
	c.next[prefix]++
	name := prefix + "-" + strconv.Itoa(c.next[prefix])
	c.names[key] = name
	c.rules = append(c.rules, "."+name+"{"+css+"}")
	return name
}

func (c *classRegistry) stylesheet() string {
	return strings.Join(c.rules, "\n")
}
