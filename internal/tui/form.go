package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

const (
	fieldImage = iota
	fieldName
	fieldPrice
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Image URL", "Name", "Price", "Description"}

// foodForm holds the inputs shared by the add and edit modals.
type foodForm struct {
	title  string
	action string
	inputs [fieldCount]textinput.Model
	focus  int
}

func newFoodForm(title, action string) foodForm {
	placeholders := [fieldCount]string{"Paste the link here", "Ex: Moda Italiana", "Ex: 19.90", "Description"}

	f := foodForm{title: title, action: action}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 48
		ti.Cursor.SetMode(cursor.CursorStatic)
		f.inputs[i] = ti
	}
	f.setFocus(fieldImage)
	return f
}

// fill resets focus and loads values into the inputs.
func (f *foodForm) fill(in models.FoodInput) {
	f.inputs[fieldImage].SetValue(in.Image)
	f.inputs[fieldName].SetValue(in.Name)
	f.inputs[fieldPrice].SetValue(in.Price)
	f.inputs[fieldDescription].SetValue(in.Description)
	f.setFocus(fieldImage)
}

func (f *foodForm) reset() {
	f.fill(models.FoodInput{})
}

func (f foodForm) Input() models.FoodInput {
	return models.FoodInput{
		Image:       strings.TrimSpace(f.inputs[fieldImage].Value()),
		Name:        strings.TrimSpace(f.inputs[fieldName].Value()),
		Price:       strings.TrimSpace(f.inputs[fieldPrice].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
	}
}

func (f *foodForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
}

func (f *foodForm) next() { f.setFocus(f.focus + 1) }
func (f *foodForm) prev() { f.setFocus(f.focus - 1) }

func (f foodForm) update(msg tea.Msg) (foodForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f foodForm) view(width int, busy bool) string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = focusedLabelStyle.Render(fieldLabels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n\n")
	}
	action := buttonStyle.Render(f.action)
	if busy {
		action = mutedStyle.Render(f.action + "…")
	}
	b.WriteString(action)

	box := modalStyle
	if width > 0 {
		box = box.MaxWidth(width)
	}
	return box.Render(b.String())
}
