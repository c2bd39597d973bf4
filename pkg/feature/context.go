package feature

// Context carries the variable bindings of one match/combine attempt at one
// position. Matching binds, combining reads. It also records the iteration
// count chosen for every repetition so the combine pass can walk the same
// path the match pass accepted.
type Context struct {
	vars     map[*Feature]*Value
	nodeVars map[*Feature][]*Value
	trail    []*Feature
	choices  []int
	replay   int
}

// NewContext returns an empty context. The zero Context is also ready to
// use; its maps are allocated on the first binding.
func NewContext() *Context {
	return &Context{}
}

// Checkpoint is a restorable point in a context's history.
type Checkpoint struct {
	trail   int
	choices int
}

func (c *Context) bound(f *Feature) (*Value, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.vars[f]
	return v, ok
}

func (c *Context) bind(f *Feature, v *Value) {
	if c == nil {
		return
	}
	if c.vars == nil {
		c.vars = make(map[*Feature]*Value)
	}
	c.vars[f] = v
	c.trail = append(c.trail, f)
}

func (c *Context) boundNode(f *Feature) ([]*Value, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.nodeVars[f]
	return v, ok
}

func (c *Context) bindNode(f *Feature, vs []*Value) {
	if c == nil {
		return
	}
	if c.nodeVars == nil {
		c.nodeVars = make(map[*Feature][]*Value)
	}
	c.nodeVars[f] = append([]*Value(nil), vs...)
	c.trail = append(c.trail, f)
}

// Bound returns the value bound to leaf feature f.
func (c *Context) Bound(f *Feature) (*Value, bool) { return c.bound(f) }

// BoundLeaves returns the leaf values bound to node feature f.
func (c *Context) BoundLeaves(f *Feature) ([]*Value, bool) {
	vs, ok := c.boundNode(f)
	if !ok {
		return nil, false
	}
	return append([]*Value(nil), vs...), true
}

// Len is the number of live bindings.
func (c *Context) Len() int { return len(c.vars) + len(c.nodeVars) }

// Checkpoint captures the bindings and recorded choices made so far.
func (c *Context) Checkpoint() Checkpoint {
	return Checkpoint{trail: len(c.trail), choices: len(c.choices)}
}

// Rollback forgets every binding and choice made after cp.
func (c *Context) Rollback(cp Checkpoint) {
	for i := len(c.trail) - 1; i >= cp.trail; i-- {
		f := c.trail[i]
		if f.kind == Node {
			delete(c.nodeVars, f)
		} else {
			delete(c.vars, f)
		}
	}
	c.trail = c.trail[:cp.trail]
	if cp.choices < len(c.choices) {
		c.choices = c.choices[:cp.choices]
	}
	if c.replay > len(c.choices) {
		c.replay = len(c.choices)
	}
}

// ReserveChoice appends an unset choice slot and returns its index.
func (c *Context) ReserveChoice() int {
	c.choices = append(c.choices, -1)
	return len(c.choices) - 1
}

// SetChoice records n in a reserved slot.
func (c *Context) SetChoice(slot, n int) {
	c.choices[slot] = n
}

// Choice returns the value recorded in slot.
func (c *Context) Choice(slot int) int {
	return c.choices[slot]
}

// NextChoice returns the next recorded choice in replay order.
func (c *Context) NextChoice() (int, bool) {
	if c.replay >= len(c.choices) {
		return 0, false
	}
	n := c.choices[c.replay]
	c.replay++
	return n, true
}

// SkipChoices moves the replay position to slot.
func (c *Context) SkipChoices(slot int) {
	if slot > len(c.choices) {
		slot = len(c.choices)
	}
	c.replay = slot
}

// Replay restarts choice replay from the first recorded choice.
func (c *Context) Replay() { c.replay = 0 }
