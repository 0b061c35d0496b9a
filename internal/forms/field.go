// Package forms models the booking forms the client renders: a closed set
// of field kinds, a pure dispatch from kind to control descriptor, and the
// field lists for each form controller.
package forms

import "fmt"

// FieldKind selects the concrete input control for a field. The set is
// closed: adding a kind means adding a case to Render.
type FieldKind string

const (
	KindInput      FieldKind = "input"
	KindTextarea   FieldKind = "textarea"
	KindPhoneInput FieldKind = "phoneInput"
	KindSelect     FieldKind = "select"
	KindCheckbox   FieldKind = "checkbox"
	KindDatePicker FieldKind = "datePicker"
	KindSkeleton   FieldKind = "skeleton"
)

// Option is one entry of a select field's closed option list.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// Binding is the two-way value pair a rendered control is bound to.
type Binding struct {
	Value    any
	OnChange func(any)
}

// Field is the metadata a form declares for one input. Only the select
// kind carries Options; only the skeleton kind carries RenderSkeleton.
type Field struct {
	Name        string    `json:"name"`
	Kind        FieldKind `json:"kind"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Disabled    bool      `json:"disabled,omitempty"`

	// Select only.
	Options []Option `json:"options,omitempty"`

	// Date picker only.
	DateFormat     string `json:"date_format,omitempty"`
	ShowTimeSelect bool   `json:"show_time_select,omitempty"`

	// Skeleton only: the escape hatch for composite controls. The caller
	// supplies the render function and receives the bound field.
	RenderSkeleton func(Binding) Control `json:"-"`
}

// Control is the concrete descriptor Render produces: the field metadata
// the chosen control needs, bound to the given value/onChange pair.
type Control struct {
	Kind        FieldKind `json:"kind"`
	Name        string    `json:"name"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Disabled    bool      `json:"disabled,omitempty"`

	Options        []Option `json:"options,omitempty"`
	DateFormat     string   `json:"date_format,omitempty"`
	ShowTimeSelect bool     `json:"show_time_select,omitempty"`

	Value    any       `json:"value,omitempty"`
	OnChange func(any) `json:"-"`
}

// Render maps a field to its control. The dispatch is total over the seven
// kinds and side-effect-free; an unknown kind is a programming error and
// is reported rather than silently dropped.
func Render(f Field, b Binding) (Control, error) {
	base := Control{
		Name:        f.Name,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		Disabled:    f.Disabled,
		Value:       b.Value,
		OnChange:    b.OnChange,
	}

	switch f.Kind {
	case KindInput:
		base.Kind = KindInput
		base.Icon = f.Icon
		return base, nil

	case KindTextarea:
		base.Kind = KindTextarea
		return base, nil

	case KindPhoneInput:
		base.Kind = KindPhoneInput
		return base, nil

	case KindSelect:
		base.Kind = KindSelect
		base.Options = f.Options
		return base, nil

	case KindCheckbox:
		base.Kind = KindCheckbox
		return base, nil

	case KindDatePicker:
		base.Kind = KindDatePicker
		base.Icon = f.Icon
		base.DateFormat = f.DateFormat
		base.ShowTimeSelect = f.ShowTimeSelect
		return base, nil

	case KindSkeleton:
		if f.RenderSkeleton == nil {
			return Control{}, fmt.Errorf("forms: skeleton field %q has no render function", f.Name)
		}
		c := f.RenderSkeleton(b)
		c.Name = f.Name
		if c.Kind == "" {
			c.Kind = KindSkeleton
		}
		return c, nil

	default:
		return Control{}, fmt.Errorf("forms: unknown field kind %q", f.Kind)
	}
}
