package schemaprompt

import "strconv"

// PromptContext is the immutable position of a prompt within the value being
// built: where it is, how deep it is indented, who answers it and which preset
// values the caller supplied. Derivations return new contexts; the preset table
// is shared by every context of one generation.
type PromptContext struct {
	pointer Pointer
	indent  int
	input   InputHandler
	presets *presetTable
}

// presetTable maps absolute pointers to caller-supplied values, preserving the
// order they were given in.
type presetTable struct {
	order  []Pointer
	values map[string]any
}

func newPresetTable() *presetTable { return &presetTable{values: map[string]any{}} }

func (t *presetTable) set(p Pointer, v any) {
	key := p.String()
	if _, ok := t.values[key]; !ok {
		t.order = append(t.order, p)
	}
	t.values[key] = v
}

func (t *presetTable) lookup(p Pointer) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[p.String()]
	return v, ok
}

// newPromptContext returns the root context for one generation.
func newPromptContext(input InputHandler, presets *presetTable) PromptContext {
	if presets == nil {
		presets = newPresetTable()
	}
	return PromptContext{input: input, presets: presets}
}

// Pointer returns the location being prompted.
func (c PromptContext) Pointer() Pointer { return c.pointer }

// Indent returns the nesting depth used for printing.
func (c PromptContext) Indent() int { return c.indent }

// Input returns the input handler.
func (c PromptContext) Input() InputHandler { return c.input }

// Subcontext descends into an object member, one level deeper.
func (c PromptContext) Subcontext(name string) PromptContext {
	return c.SubcontextIndent(name, true)
}

// SubcontextIndex descends into an array position, one level deeper.
func (c PromptContext) SubcontextIndex(i int) PromptContext {
	return c.SubcontextIndent(strconv.Itoa(i), true)
}

// SubcontextIndent appends segment to the pointer and increments the indent
// unless indent is false.
func (c PromptContext) SubcontextIndent(segment string, indent bool) PromptContext {
	child := c
	child.pointer = c.pointer.Field(segment)
	if indent {
		child.indent++
	}
	return child
}

// WithIndent keeps the pointer and prints one level deeper.
func (c PromptContext) WithIndent() PromptContext {
	child := c
	child.indent++
	return child
}

// HasPreset reports whether the caller supplied a value at this pointer.
func (c PromptContext) HasPreset() bool {
	_, ok := c.presets.lookup(c.pointer)
	return ok
}

// Preset returns the caller-supplied value at this pointer. It panics when
// HasPreset is false.
func (c PromptContext) Preset() any {
	v, ok := c.presets.lookup(c.pointer)
	if !ok {
		panic("schemaprompt: no preset at " + c.pointer.Display())
	}
	return v
}

// print writes through the input handler at this context's indent.
func (c PromptContext) print(msg string, color Color) {
	c.input.Print(msg, c.indent, color)
}
