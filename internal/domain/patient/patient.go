package patient

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// IdentificationDocument references the scanned copy stored in the file
// store. Only the metadata lives in the database; bytes live in S3.
type IdentificationDocument struct {
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	S3Key       string    `json:"s3_key"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Patient extends a User with the demographic, medical, and consent fields
// collected during registration. Created once; the appointment flow only
// reads it.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	UserID uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex;not null" json:"user_id"`

	Name  string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email string `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone string `gorm:"column:phone;type:varchar(20);not null" json:"phone"`

	BirthDate  time.Time `gorm:"column:birth_date;not null" json:"birth_date"`
	Gender     Gender    `gorm:"column:gender;type:varchar(10);not null" json:"gender"`
	Address    string    `gorm:"column:address;type:text" json:"address"`
	Occupation string    `gorm:"column:occupation;type:varchar(500)" json:"occupation"`

	EmergencyContactName   string `gorm:"column:emergency_contact_name;type:varchar(100)" json:"emergency_contact_name"`
	EmergencyContactNumber string `gorm:"column:emergency_contact_number;type:varchar(20)" json:"emergency_contact_number"`

	// Matched against the static roster, not a foreign key.
	PrimaryPhysician string `gorm:"column:primary_physician;type:varchar(100);not null" json:"primary_physician"`

	InsuranceProvider     string `gorm:"column:insurance_provider;type:varchar(100)" json:"insurance_provider"`
	InsurancePolicyNumber string `gorm:"column:insurance_policy_number;type:varchar(100)" json:"insurance_policy_number"`

	Allergies            string `gorm:"column:allergies;type:text" json:"allergies"`
	CurrentMedication    string `gorm:"column:current_medication;type:text" json:"current_medication"`
	FamilyMedicalHistory string `gorm:"column:family_medical_history;type:text" json:"family_medical_history"`
	PastMedicalHistory   string `gorm:"column:past_medical_history;type:text" json:"past_medical_history"`

	IdentificationType     string                  `gorm:"column:identification_type;type:varchar(100)" json:"identification_type"`
	IdentificationNumber   string                  `gorm:"column:identification_number;type:varchar(100)" json:"identification_number"`
	IdentificationDocument *IdentificationDocument `gorm:"column:identification_document;serializer:json" json:"identification_document,omitempty"`

	TreatmentConsent  bool `gorm:"column:treatment_consent;not null" json:"treatment_consent"`
	DisclosureConsent bool `gorm:"column:disclosure_consent;not null" json:"disclosure_consent"`
	PrivacyConsent    bool `gorm:"column:privacy_consent;not null" json:"privacy_consent"`
}

func (Patient) TableName() string {
	return "booking.patients"
}

// HasConsented reports whether all three consent flags were given.
// The caller enforces this, not the schema.
func (p *Patient) HasConsented() bool {
	return p.TreatmentConsent && p.DisclosureConsent && p.PrivacyConsent
}

type CreatePatientCommand struct {
	UserID uuid.UUID

	Name  string
	Email string
	Phone string

	BirthDate  time.Time
	Gender     Gender
	Address    string
	Occupation string

	EmergencyContactName   string
	EmergencyContactNumber string

	PrimaryPhysician string

	InsuranceProvider     string
	InsurancePolicyNumber string

	Allergies            string
	CurrentMedication    string
	FamilyMedicalHistory string
	PastMedicalHistory   string

	IdentificationType   string
	IdentificationNumber string

	TreatmentConsent  bool
	DisclosureConsent bool
	PrivacyConsent    bool
}
