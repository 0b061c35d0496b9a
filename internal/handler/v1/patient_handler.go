package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carepulse/carepulse-api/internal/domain/patient"
	"github.com/carepulse/carepulse-api/internal/service"
)

const maxDocumentSize = 10 << 20 // 10 MiB

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

// Register handles the multipart registration form. Every demographic
// field arrives as a form value; the identification document, when
// present, arrives as the file part.
func (h *PatientHandler) Register(c *gin.Context) {
	userID, err := uuid.Parse(c.PostForm("userId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid userId: must be a valid UUID")
		return
	}

	birthDate, _ := time.Parse(time.RFC3339, c.PostForm("birthDate"))
	if birthDate.IsZero() {
		// The date picker also submits a bare date.
		birthDate, _ = time.Parse("2006-01-02", c.PostForm("birthDate"))
	}

	cmd := &patient.CreatePatientCommand{
		UserID: userID,

		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),

		BirthDate:  birthDate,
		Gender:     patient.Gender(c.PostForm("gender")),
		Address:    c.PostForm("address"),
		Occupation: c.PostForm("occupation"),

		EmergencyContactName:   c.PostForm("emergencyContactName"),
		EmergencyContactNumber: c.PostForm("emergencyContactNumber"),

		PrimaryPhysician: c.PostForm("primaryPhysician"),

		InsuranceProvider:     c.PostForm("insuranceProvider"),
		InsurancePolicyNumber: c.PostForm("insurancePolicyNumber"),

		Allergies:            c.PostForm("allergies"),
		CurrentMedication:    c.PostForm("currentMedication"),
		FamilyMedicalHistory: c.PostForm("familyMedicalHistory"),
		PastMedicalHistory:   c.PostForm("pastMedicalHistory"),

		IdentificationType:   c.PostForm("identificationType"),
		IdentificationNumber: c.PostForm("identificationNumber"),

		TreatmentConsent:  c.PostForm("treatmentConsent") == "true",
		DisclosureConsent: c.PostForm("disclosureConsent") == "true",
		PrivacyConsent:    c.PostForm("privacyConsent") == "true",
	}

	var doc *service.DocumentUpload
	if fh, err := c.FormFile("identificationDocument"); err == nil && fh != nil {
		if fh.Size > maxDocumentSize {
			respondError(c, http.StatusRequestEntityTooLarge, "identification document exceeds the 10 MiB limit")
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "could not read identification document")
			return
		}
		defer f.Close()

		doc = &service.DocumentUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
			SizeBytes:   fh.Size,
		}
	}

	p, err := h.svc.RegisterPatient(c.Request.Context(), cmd, doc, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, p)
}

// GetByUser returns the patient record belonging to an intake user.
func (h *PatientHandler) GetByUser(c *gin.Context) {
	userID, ok := parseUUID(c, "userId")
	if !ok {
		return
	}

	p, err := h.svc.GetPatientByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}
