package forms

import (
	"fmt"

	"github.com/carepulse/carepulse-api/internal/roster"
)

// Mode selects which subset of the appointment form is live.
type Mode string

const (
	ModeCreate   Mode = "create"
	ModeSchedule Mode = "schedule"
	ModeCancel   Mode = "cancel"
)

// Form is the server-side definition a controller renders from: its field
// list plus the route the client navigates to after a successful submit.
type Form struct {
	Name      string  `json:"name"`
	Fields    []Field `json:"fields"`
	NextRoute string  `json:"next_route"`
}

func doctorOptions() []Option {
	opts := make([]Option, len(roster.Doctors))
	for i, d := range roster.Doctors {
		opts[i] = Option{Value: d.Name, Label: d.Name, Icon: d.Image}
	}
	return opts
}

func identificationOptions() []Option {
	opts := make([]Option, len(roster.IdentificationTypes))
	for i, t := range roster.IdentificationTypes {
		opts[i] = Option{Value: t, Label: t}
	}
	return opts
}

// Intake is the three-field patient intake form that creates a User.
func Intake() Form {
	return Form{
		Name: "intake",
		Fields: []Field{
			{Name: "name", Kind: KindInput, Label: "Full Name", Placeholder: "John Doe", Icon: "/assets/icons/user.svg"},
			{Name: "email", Kind: KindInput, Label: "Email", Placeholder: "johndoe@example.com", Icon: "/assets/icons/email.svg"},
			{Name: "phone", Kind: KindPhoneInput, Label: "Phone Number", Placeholder: "(92) 345-6789879"},
		},
		NextRoute: "/patients/:userId/register",
	}
}

// Register is the full patient registration form. The gender radio group
// and the file-drop zone are composite controls carried by skeleton fields.
func Register() Form {
	return Form{
		Name: "register",
		Fields: []Field{
			{Name: "name", Kind: KindInput, Label: "Full Name", Placeholder: "John Doe", Icon: "/assets/icons/user.svg"},
			{Name: "email", Kind: KindInput, Label: "Email", Placeholder: "johndoe@example.com", Icon: "/assets/icons/email.svg"},
			{Name: "phone", Kind: KindPhoneInput, Label: "Phone Number", Placeholder: "(92) 345-6789879"},
			{Name: "birthDate", Kind: KindDatePicker, Label: "Date of Birth", Icon: "/assets/icons/calendar.svg"},
			{Name: "gender", Kind: KindSkeleton, Label: "Gender", RenderSkeleton: radioGroup(roster.GenderOptions)},
			{Name: "address", Kind: KindInput, Label: "Address", Placeholder: "14th Street, Johar Town, Lahore"},
			{Name: "occupation", Kind: KindInput, Label: "Occupation", Placeholder: "Software Engineer"},
			{Name: "emergencyContactName", Kind: KindInput, Label: "Emergency contact name", Placeholder: "Guardian's Name"},
			{Name: "emergencyContactNumber", Kind: KindPhoneInput, Label: "Emergency contact number", Placeholder: "(92) 345-6789879"},
			{Name: "primaryPhysician", Kind: KindSelect, Label: "Primary Physician", Placeholder: "Select a Physician", Options: doctorOptions()},
			{Name: "insuranceProvider", Kind: KindInput, Label: "Insurance provider", Placeholder: "BlueCross & BlueShield"},
			{Name: "insurancePolicyNumber", Kind: KindInput, Label: "Insurance policy number", Placeholder: "ABC123456789"},
			{Name: "allergies", Kind: KindTextarea, Label: "Allergies (if any)", Placeholder: "Peanuts, Penicillin, Pollen, etc."},
			{Name: "currentMedication", Kind: KindTextarea, Label: "Current Medication (if any)", Placeholder: "Ibuprofen 200mg, Paracetamol 500mg, etc."},
			{Name: "familyMedicalHistory", Kind: KindTextarea, Label: "Family medical history", Placeholder: "Mother had heart disease, etc."},
			{Name: "pastMedicalHistory", Kind: KindTextarea, Label: "Past medical history", Placeholder: "Appendectomy, Tonsillectomy, etc."},
			{Name: "identificationType", Kind: KindSelect, Label: "Identification Type", Placeholder: "Select an Identification Type", Options: identificationOptions()},
			{Name: "identificationNumber", Kind: KindInput, Label: "Identification Number", Placeholder: "123456789"},
			{Name: "identificationDocument", Kind: KindSkeleton, Label: "Scanned copy of identification document", RenderSkeleton: fileDrop},
			{Name: "treatmentConsent", Kind: KindCheckbox, Label: "I consent to treatment"},
			{Name: "disclosureConsent", Kind: KindCheckbox, Label: "I consent to disclosure of information"},
			{Name: "privacyConsent", Kind: KindCheckbox, Label: "I consent to privacy policy"},
		},
		NextRoute: "/patients/:userId/new-appointment",
	}
}

// Appointment builds the appointment form for one of the three modes.
// Schedule and cancel reuse the create field set with only the fields
// relevant to that status transition enabled.
func Appointment(mode Mode) (Form, error) {
	fields := []Field{
		{Name: "primaryPhysician", Kind: KindSelect, Label: "Doctor", Placeholder: "Select a doctor", Options: doctorOptions()},
		{Name: "schedule", Kind: KindDatePicker, Label: "Expected appointment date", Icon: "/assets/icons/calendar.svg", DateFormat: "MM/dd/yyyy - h:mm aa", ShowTimeSelect: true},
		{Name: "reason", Kind: KindTextarea, Label: "Appointment reason", Placeholder: "Annual monthly check-up"},
		{Name: "note", Kind: KindTextarea, Label: "Comments/notes", Placeholder: "Prefer afternoon appointments, if possible"},
		{Name: "cancellationReason", Kind: KindTextarea, Label: "Reason for cancellation", Placeholder: "Urgent meeting came up"},
	}

	var live []Field
	switch mode {
	case ModeCreate:
		live = fields[:4]
	case ModeSchedule:
		// The booking details stay visible but frozen while the admin
		// picks the doctor and slot.
		live = fields[:4]
		for i := range live {
			if live[i].Name == "reason" || live[i].Name == "note" {
				live[i].Disabled = true
			}
		}
	case ModeCancel:
		live = fields[4:]
	default:
		return Form{}, fmt.Errorf("forms: unknown appointment mode %q", mode)
	}

	next := "/patients/:userId/new-appointment/success"
	if mode != ModeCreate {
		next = "/admin"
	}

	return Form{Name: "appointment-" + string(mode), Fields: live, NextRoute: next}, nil
}

// ByName resolves a form definition for the definition endpoint.
func ByName(name string) (Form, error) {
	switch name {
	case "intake":
		return Intake(), nil
	case "register":
		return Register(), nil
	case "appointment-create":
		return Appointment(ModeCreate)
	case "appointment-schedule":
		return Appointment(ModeSchedule)
	case "appointment-cancel":
		return Appointment(ModeCancel)
	default:
		return Form{}, fmt.Errorf("forms: unknown form %q", name)
	}
}

// Controls renders every field of a form against an empty binding, for
// serving the definition as JSON.
func (f Form) Controls() ([]Control, error) {
	out := make([]Control, 0, len(f.Fields))
	for _, fld := range f.Fields {
		c, err := Render(fld, Binding{})
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// radioGroup is the composite control behind the gender field: a select
// control built from a dynamic option list, delegated through the
// skeleton escape hatch.
func radioGroup(options []string) func(Binding) Control {
	opts := make([]Option, len(options))
	for i, o := range options {
		opts[i] = Option{Value: o, Label: o}
	}
	return func(b Binding) Control {
		return Control{Kind: KindSkeleton, Options: opts, Value: b.Value, OnChange: b.OnChange}
	}
}

// fileDrop is the composite control behind the identification document
// upload.
func fileDrop(b Binding) Control {
	return Control{Kind: KindSkeleton, Placeholder: "Click to upload or drag and drop", Value: b.Value, OnChange: b.OnChange}
}
