package validation

import (
	"regexp"

	"github.com/carepulse/carepulse-api/internal/roster"
)

var (
	// E.164 with 10-15 digits, the regional pattern the intake form accepts.
	phoneRe = regexp.MustCompile(`^\+\d{10,15}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// UserIntake validates the three-field intake form that creates a User.
func UserIntake() *RuleSet {
	return &RuleSet{
		Kind: "user-intake",
		Rules: []Rule{
			Required("name", "Name is required."),
			MinLen("name", 2, "Name must be at least 2 characters."),
			MaxLen("name", 50, "Name must be at most 50 characters."),
			Required("email", "Email is required."),
			Pattern("email", emailRe, "Invalid email address."),
			Required("phone", "Phone number is required."),
			Pattern("phone", phoneRe, "Invalid phone number."),
		},
	}
}

// FullPatient validates the registration form that extends a User into a
// Patient. Consent flags are deliberately absent here: the controller
// enforces them, not the schema.
func FullPatient() *RuleSet {
	return &RuleSet{
		Kind: "full-patient",
		Rules: []Rule{
			Required("name", "Name is required."),
			MinLen("name", 2, "Name must be at least 2 characters."),
			MaxLen("name", 50, "Name must be at most 50 characters."),
			Required("email", "Email is required."),
			Pattern("email", emailRe, "Invalid email address."),
			Required("phone", "Phone number is required."),
			Pattern("phone", phoneRe, "Invalid phone number."),
			Required("birthDate", "Date of birth is required."),
			Required("gender", "Gender is required."),
			OneOf("gender", roster.GenderOptions, "Gender must be one of the listed options."),
			Required("address", "Address is required."),
			MinLen("address", 5, "Address must be at least 5 characters."),
			MaxLen("address", 500, "Address must be at most 500 characters."),
			Required("occupation", "Occupation is required."),
			MinLen("occupation", 2, "Occupation must be at least 2 characters."),
			MaxLen("occupation", 500, "Occupation must be at most 500 characters."),
			Required("emergencyContactName", "Emergency contact name is required."),
			MinLen("emergencyContactName", 2, "Contact name must be at least 2 characters."),
			MaxLen("emergencyContactName", 50, "Contact name must be at most 50 characters."),
			Required("emergencyContactNumber", "Emergency contact number is required."),
			Pattern("emergencyContactNumber", phoneRe, "Invalid phone number."),
			Required("primaryPhysician", "Primary physician is required."),
			OneOf("primaryPhysician", roster.DoctorNames(), "Select a physician from the roster."),
			Required("insuranceProvider", "Insurance provider is required."),
			MinLen("insuranceProvider", 2, "Insurance name must be at least 2 characters."),
			MaxLen("insuranceProvider", 50, "Insurance name must be at most 50 characters."),
			Required("insurancePolicyNumber", "Policy number is required."),
			MinLen("insurancePolicyNumber", 2, "Policy number must be at least 2 characters."),
			MaxLen("insurancePolicyNumber", 50, "Policy number must be at most 50 characters."),
			// Allergies, medications, histories, and identification details
			// are optional free text.
			OneOf("identificationType", roster.IdentificationTypes, "Select an identification type from the list."),
		},
	}
}

// AppointmentCreate validates a patient's appointment request.
func AppointmentCreate() *RuleSet {
	return &RuleSet{
		Kind: "appointment-create",
		Rules: []Rule{
			Required("primaryPhysician", "Primary physician is required."),
			OneOf("primaryPhysician", roster.DoctorNames(), "Select a physician from the roster."),
			Required("schedule", "Expected appointment date is required."),
			Required("reason", "Reason for the appointment is required."),
			MinLen("reason", 2, "Reason must be at least 2 characters."),
			MaxLen("reason", 500, "Reason must be at most 500 characters."),
		},
	}
}

// AppointmentSchedule validates the admin schedule action: only the slot
// and the physician are in play.
func AppointmentSchedule() *RuleSet {
	return &RuleSet{
		Kind: "appointment-schedule",
		Rules: []Rule{
			Required("primaryPhysician", "Primary physician is required."),
			OneOf("primaryPhysician", roster.DoctorNames(), "Select a physician from the roster."),
			Required("schedule", "Appointment date is required."),
		},
	}
}

// AppointmentCancel validates the admin cancel action. The reason is a
// cross-field conditional: required exactly when status is cancelled.
func AppointmentCancel() *RuleSet {
	return &RuleSet{
		Kind: "appointment-cancel",
		Rules: []Rule{
			RequiredWhen("cancellationReason", "Cancellation reason is required.",
				func(v Values) bool { return v.Str("status") == "cancelled" }),
			MinLen("cancellationReason", 2, "Reason must be at least 2 characters."),
			MaxLen("cancellationReason", 500, "Reason must be at most 500 characters."),
		},
	}
}
