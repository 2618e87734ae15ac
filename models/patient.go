package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Patient status values
const (
	PatientAdmitted   = "Admitted"
	PatientDischarged = "Discharged"
	PatientOutpatient = "Outpatient"
	PatientEmergency  = "Emergency"
)

// ValidPatientStatus reports whether s is a recognized patient status.
func ValidPatientStatus(s string) bool {
	switch s {
	case PatientAdmitted, PatientDischarged, PatientOutpatient, PatientEmergency:
		return true
	}
	return false
}

// MedicalHistoryEntry is one append-only entry in a patient's medical history
type MedicalHistoryEntry struct {
	Condition     string             `json:"condition" bson:"condition"`
	DiagnosisDate string             `json:"diagnosisDate" bson:"diagnosisDate"`
	Treatment     string             `json:"treatment" bson:"treatment"`
	Notes         string             `json:"notes" bson:"notes"`
	AddedBy       string             `json:"addedBy" bson:"addedBy"`
	CreatedAt     primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// MedicationDosage is one of a patient's current medications
type MedicationDosage struct {
	Name      string `json:"name" bson:"name"`
	Dosage    string `json:"dosage" bson:"dosage"`
	Frequency string `json:"frequency" bson:"frequency"`
}

// Visit is one append-only entry in a patient's visit log
type Visit struct {
	Date         primitive.DateTime  `json:"date" bson:"date"`
	Reason       string              `json:"reason" bson:"reason"`
	Diagnosis    string              `json:"diagnosis" bson:"diagnosis"`
	Prescription string              `json:"prescription" bson:"prescription"`
	Doctor       *primitive.ObjectID `json:"doctor" bson:"doctor"`
	Notes        string              `json:"notes" bson:"notes"`
}

// EmergencyContact holds the patient's emergency contact details
type EmergencyContact struct {
	Name     string `json:"name" bson:"name"`
	Phone    string `json:"phone" bson:"phone"`
	Relation string `json:"relation" bson:"relation"`
}

// Patient holds the structure for the patient collection in mongo.
// AdmissionDate and DischargeDate move in lockstep with Status transitions:
// a transition to Admitted stamps AdmissionDate and clears DischargeDate, a
// transition to Discharged stamps DischargeDate and leaves AdmissionDate
// untouched.
type Patient struct {
	ID                 primitive.ObjectID    `json:"_id" bson:"_id"`
	Name               string                `json:"name" bson:"name"`
	Gender             string                `json:"gender" bson:"gender"`
	DateOfBirth        string                `json:"dateOfBirth" bson:"dateOfBirth"`
	BloodGroup         string                `json:"bloodGroup" bson:"bloodGroup"`
	Phone              string                `json:"phone" bson:"phone"`
	Email              string                `json:"email" bson:"email"`
	Address            string                `json:"address" bson:"address"`
	EmergencyContact   EmergencyContact      `json:"emergencyContact" bson:"emergencyContact"`
	MedicalHistory     []MedicalHistoryEntry `json:"medicalHistory" bson:"medicalHistory"`
	Allergies          []string              `json:"allergies" bson:"allergies"`
	CurrentMedications []MedicationDosage    `json:"currentMedications" bson:"currentMedications"`
	Status             string                `json:"status" bson:"status"`
	AdmissionDate      *primitive.DateTime   `json:"admissionDate" bson:"admissionDate"`
	DischargeDate      *primitive.DateTime   `json:"dischargeDate" bson:"dischargeDate"`
	AssignedDoctor     *primitive.ObjectID   `json:"assignedDoctor" bson:"assignedDoctor"`
	AssignedNurses     []primitive.ObjectID  `json:"assignedNurses" bson:"assignedNurses"`
	Department         *primitive.ObjectID   `json:"department" bson:"department"`
	Visits             []Visit               `json:"visits" bson:"visits"`
	IsActive           bool                  `json:"isActive" bson:"isActive"`
	IsDeleted          bool                  `json:"isDeleted" bson:"isDeleted"`
	DeletedAt          *primitive.DateTime   `json:"deletedAt" bson:"deletedAt"`
	CreatedAt          primitive.DateTime    `json:"createdAt" bson:"createdAt"`
	UpdatedAt          primitive.DateTime    `json:"updatedAt" bson:"updatedAt"`
}

// PatientListResponse is the paginated list envelope for patients
type PatientListResponse struct {
	Patients   []Patient  `json:"patients"`
	Pagination Pagination `json:"pagination"`
}
