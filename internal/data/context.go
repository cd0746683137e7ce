package data

// Context provides previously extracted metrics to extractors.
type Context interface {
	Get(key Key) (any, bool)
}

// RunContext is the ordered metric map for a single assembly output directory.
//
// Keys keep the order in which they were first set. Values are int64, float64,
// or nil for a metric that was computed but is undefined for this run.
type RunContext struct {
	dir    string
	keys   []Key
	values map[Key]any
	frozen bool
}

func NewRunContext(dir string) *RunContext {
	return &RunContext{
		dir:    dir,
		values: make(map[Key]any),
	}
}

// Dir returns the canonical absolute directory path the context belongs to.
func (c *RunContext) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *RunContext) Get(key Key) (any, bool) {
	if c == nil {
		return nil, false
	}
	val, ok := c.values[key]
	return val, ok
}

// Set stores a metric value. Setting an existing key overwrites the value but
// keeps its original position. Set panics once the context is frozen.
func (c *RunContext) Set(key Key, value any) {
	if c.frozen {
		panic("data: Set on frozen RunContext " + c.dir)
	}
	if _, exists := c.values[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Keys returns the metric keys in insertion order.
func (c *RunContext) Keys() []Key {
	if c == nil {
		return nil
	}
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c *RunContext) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Freeze marks the context read-only. The aggregator freezes a context once
// every extractor has run for its directory.
func (c *RunContext) Freeze() {
	if c != nil {
		c.frozen = true
	}
}
