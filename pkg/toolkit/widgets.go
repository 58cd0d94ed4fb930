package toolkit

import "slices"

// Container lays out child widgets in insertion order.
type Container struct {
	name     string
	vertical bool
	spacing  int
	children []Widget
}

// NewContainer creates an empty horizontal container.
func NewContainer(name string) *Container {
	return &Container{name: name}
}

// NewVBox creates an empty vertical container.
func NewVBox(name string, spacing int) *Container {
	return &Container{name: name, vertical: true, spacing: spacing}
}

func (c *Container) Kind() string { return "container" }

// Name returns the container's name.
func (c *Container) Name() string { return c.name }

// Add appends w.
func (c *Container) Add(w Widget) {
	c.children = append(c.children, w)
}

// Remove removes w and reports whether it was present.
func (c *Container) Remove(w Widget) bool {
	i := slices.Index(c.children, w)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	return true
}

// Children returns a copy of the children in layout order.
func (c *Container) Children() []Widget {
	return slices.Clone(c.children)
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.children) }

func (c *Container) PreferredSize() Size {
	var s Size
	for i, child := range c.children {
		cs := child.PreferredSize()
		gap := 0
		if i > 0 {
			gap = c.spacing
		}
		if c.vertical {
			s.Width = max(s.Width, cs.Width)
			s.Height += cs.Height + gap
		} else {
			s.Width += cs.Width + gap
			s.Height = max(s.Height, cs.Height)
		}
	}
	return s
}

// Label displays read-only text.
type Label struct {
	text string
}

// NewLabel creates a label showing text.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

func (l *Label) Kind() string        { return "label" }
func (l *Label) Text() string        { return l.text }
func (l *Label) SetText(text string) { l.text = text }
func (l *Label) PreferredSize() Size { return MeasureText(l.text) }

// Button is a push button.
type Button struct {
	text     string
	disabled bool
	onAction func()
}

// NewButton creates a button with the given caption.
func NewButton(text string) *Button {
	return &Button{text: text}
}

func (b *Button) Kind() string        { return "button" }
func (b *Button) Text() string        { return b.text }
func (b *Button) SetText(text string) { b.text = text }
func (b *Button) Disabled() bool      { return b.disabled }
func (b *Button) SetDisabled(d bool)  { b.disabled = d }
func (b *Button) PreferredSize() Size { return pad(MeasureText(b.text), 8, 4) }

// SetOnAction sets the click callback. A nil fn removes it.
func (b *Button) SetOnAction(fn func()) { b.onAction = fn }

// Fire simulates a click. Disabled buttons ignore it.
func (b *Button) Fire() {
	if b.disabled || b.onAction == nil {
		return
	}
	b.onAction()
}

// textInput is the shared state of editable text widgets. The change
// callback fires for programmatic SetText too, like a desktop toolkit's text
// property listener.
type textInput struct {
	text     string
	onChange func(prev, next string)
}

func (t *textInput) Text() string { return t.text }

func (t *textInput) SetText(text string) {
	if text == t.text {
		return
	}
	old := t.text
	t.text = text
	if t.onChange != nil {
		t.onChange(old, text)
	}
}

// SetOnChange sets the text change callback.
func (t *textInput) SetOnChange(fn func(prev, next string)) { t.onChange = fn }

// TextField is a single-line text input.
type TextField struct {
	textInput
	prompt   string
	onAction func()
}

// NewTextField creates an empty text field.
func NewTextField() *TextField {
	return &TextField{}
}

func (f *TextField) Kind() string          { return "textField" }
func (f *TextField) Prompt() string        { return f.prompt }
func (f *TextField) SetPrompt(p string)    { f.prompt = p }
func (f *TextField) SetOnAction(fn func()) { f.onAction = fn }

func (f *TextField) PreferredSize() Size {
	s := MeasureText(f.text)
	s.Width = max(s.Width, MeasureText(f.prompt).Width, 120)
	return pad(s, 4, 2)
}

// Type replaces the text as if the user typed it.
func (f *TextField) Type(text string) { f.SetText(text) }

// Submit simulates pressing enter.
func (f *TextField) Submit() {
	if f.onAction != nil {
		f.onAction()
	}
}

// TextArea is a multi-line text input.
type TextArea struct {
	textInput
	editable bool
}

// NewTextArea creates an empty, editable text area.
func NewTextArea() *TextArea {
	return &TextArea{editable: true}
}

func (a *TextArea) Kind() string       { return "textArea" }
func (a *TextArea) Editable() bool     { return a.editable }
func (a *TextArea) SetEditable(e bool) { a.editable = e }

func (a *TextArea) PreferredSize() Size {
	s := MeasureText(a.text)
	s.Width = max(s.Width, 240)
	s.Height = max(s.Height, 5*MeasureText("").Height)
	return pad(s, 4, 4)
}

// Type replaces the text as if the user typed it. Read-only areas ignore it.
func (a *TextArea) Type(text string) {
	if a.editable {
		a.SetText(text)
	}
}

// CheckBox is a labelled two-state toggle.
type CheckBox struct {
	text     string
	selected bool
	onAction func()
}

// NewCheckBox creates an unselected check box.
func NewCheckBox(text string) *CheckBox {
	return &CheckBox{text: text}
}

func (c *CheckBox) Kind() string          { return "checkBox" }
func (c *CheckBox) Text() string          { return c.text }
func (c *CheckBox) SetText(text string)   { c.text = text }
func (c *CheckBox) Selected() bool        { return c.selected }
func (c *CheckBox) SetOnAction(fn func()) { c.onAction = fn }

// SetSelected changes the state without firing the action.
func (c *CheckBox) SetSelected(s bool) { c.selected = s }

func (c *CheckBox) PreferredSize() Size {
	s := MeasureText(c.text)
	s.Width += 18
	return s
}

// Click toggles the state and fires the action.
func (c *CheckBox) Click() {
	c.selected = !c.selected
	if c.onAction != nil {
		c.onAction()
	}
}
