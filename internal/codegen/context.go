package codegen

import "strconv"

// ctx threads the rename environment (source name -> verbatim host
// expression substituted in its place, used by LetFunc's knot-tying
// cell) and the fresh-name counter through a single emission run.
// Copy-on-extend, matching the persistent-environment idiom used
// throughout internal/types and internal/parser.
type ctx struct {
	renames map[string]string
	fresh   *int
}

func newCtx() *ctx {
	n := 0
	return &ctx{renames: map[string]string{}, fresh: &n}
}

// with returns a ctx with name substituted for replacement, leaving
// the receiver untouched.
func (c *ctx) with(name, replacement string) *ctx {
	out := make(map[string]string, len(c.renames)+1)
	for k, v := range c.renames {
		out[k] = v
	}
	out[name] = replacement
	return &ctx{renames: out, fresh: c.fresh}
}

// without returns a ctx with name's substitution removed (a nested
// binder of the same name shadows the substitution).
func (c *ctx) without(name string) *ctx {
	if _, ok := c.renames[name]; !ok {
		return c
	}
	out := make(map[string]string, len(c.renames))
	for k, v := range c.renames {
		if k != name {
			out[k] = v
		}
	}
	return &ctx{renames: out, fresh: c.fresh}
}

func (c *ctx) lookup(name string) (string, bool) {
	v, ok := c.renames[name]
	return v, ok
}

func (c *ctx) freshName(prefix string) string {
	n := *c.fresh
	*c.fresh = n + 1
	return prefix + strconv.Itoa(n)
}
