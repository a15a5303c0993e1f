package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Prompt is a single-line input bar that reports every edit.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	onChange func(text string)
	onSubmit func(text string)
	onCancel func()
	onLeave  func()
}

// NewPrompt creates a new prompt input bar.
func NewPrompt(theme *Theme, label, title string) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)
	input.SetBorderColor(theme.PromptBorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)
	input.SetLabel(label)
	input.SetTitle(title)
	input.SetTitleColor(theme.TitleColor)

	p := &Prompt{
		InputField: input,
		theme:      theme,
	}

	input.SetChangedFunc(func(text string) {
		if p.onChange != nil {
			p.onChange(text)
		}
	})
	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			if p.onSubmit != nil {
				p.onSubmit(p.GetText())
			}
		case tcell.KeyEscape:
			if p.onCancel != nil {
				p.onCancel()
			}
		case tcell.KeyTab, tcell.KeyBacktab:
			if p.onLeave != nil {
				p.onLeave()
			}
		}
	})

	return p
}

// SetOnChange sets the callback run after every edit.
func (p *Prompt) SetOnChange(fn func(text string)) {
	p.onChange = fn
}

// SetOnSubmit sets the callback when Enter is pressed.
func (p *Prompt) SetOnSubmit(fn func(text string)) {
	p.onSubmit = fn
}

// SetOnCancel sets the callback when Escape is pressed.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// SetOnLeave sets the callback when Tab or Backtab is pressed.
func (p *Prompt) SetOnLeave(fn func()) {
	p.onLeave = fn
}

// Reset clears the text without reporting a change.
func (p *Prompt) Reset() {
	fn := p.onChange
	p.onChange = nil
	p.SetText("")
	p.onChange = fn
}
