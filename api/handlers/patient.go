package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/carelinkhq/hospital-api/config"
	"github.com/carelinkhq/hospital-api/databases"
	"github.com/carelinkhq/hospital-api/models"
)

// Patient exported for testing purposes
type Patient struct {
	DB     databases.PatientDatabase
	Linker *databases.Linker
	Feed   *WardFeed
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

type doctorAssignRequest struct {
	DoctorID string `json:"doctorId"`
}

// PatientsHandler returns a paginated list of patients
func (p Patient) PatientsHandler(w http.ResponseWriter, r *http.Request) {
	lo := parseListOptions(r)
	patients, pagination, err := p.DB.List(context.TODO(), lo)
	if err != nil {
		config.ErrorStatus("failed to get patients", http.StatusInternalServerError, w, err)
		return
	}
	b, err := json.Marshal(models.PatientListResponse{Patients: patients, Pagination: pagination})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PatientByIDHandler returns a patient by ID
func (p Patient) PatientByIDHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreatePatientHandler creates a patient. An assignedDoctor in the request is
// applied through the link maintainer after the insert so the doctor's
// patient set is kept current.
func (p Patient) CreatePatientHandler(w http.ResponseWriter, r *http.Request) {
	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if patient.Name == "" {
		respondError("name is required", w, models.NewInvalidArgument("name is required"))
		return
	}
	if patient.Status == "" {
		patient.Status = models.PatientOutpatient
	}
	if !models.ValidPatientStatus(patient.Status) {
		respondError("invalid patient status", w, models.NewInvalidArgument("status %q is not a recognized patient status", patient.Status))
		return
	}
	if patient.Department != nil {
		if _, err := p.Linker.Departments.FindOne(context.Background(), bson.M{"_id": *patient.Department}); err != nil {
			respondError("department not found", w, models.NewNotFound("department %s not found", patient.Department.Hex()))
			return
		}
	}

	assignedDoctor := patient.AssignedDoctor
	patient.ID = primitive.NewObjectID()
	patient.AssignedDoctor = nil
	if patient.MedicalHistory == nil {
		patient.MedicalHistory = []models.MedicalHistoryEntry{}
	}
	if patient.Allergies == nil {
		patient.Allergies = []string{}
	}
	if patient.CurrentMedications == nil {
		patient.CurrentMedications = []models.MedicationDosage{}
	}
	patient.AssignedNurses = []primitive.ObjectID{}
	patient.Visits = []models.Visit{}
	now := primitive.NewDateTimeFromTime(time.Now())
	if patient.Status == models.PatientAdmitted {
		patient.AdmissionDate = &now
	} else {
		patient.AdmissionDate = nil
	}
	patient.DischargeDate = nil
	patient.IsActive = true
	patient.IsDeleted = false
	patient.DeletedAt = nil
	patient.CreatedAt = now
	patient.UpdatedAt = now

	if _, err := p.DB.InsertOne(context.Background(), patient); err != nil {
		config.ErrorStatus("failed to create patient", http.StatusInternalServerError, w, err)
		return
	}

	if assignedDoctor != nil {
		if err := p.Linker.AssignDoctorToPatient(r.Context(), patient.ID, *assignedDoctor); err != nil {
			respondError("failed to assign doctor to patient", w, err)
			return
		}
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Patient created successfully",
		"id":      patient.ID.Hex(),
	})
}

// UpdatePatientHandler updates a patient's details. Status and doctor
// assignment have their own endpoints and are ignored here.
func (p Patient) UpdatePatientHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	for _, k := range []string{
		"_id", "status", "admissionDate", "dischargeDate", "assignedDoctor",
		"medicalHistory", "visits", "isDeleted", "deletedAt",
	} {
		delete(updatedFields, k)
	}
	updatedFields["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	if _, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID}); err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}
	if err := p.DB.UpdateOne(context.Background(), bson.M{"_id": pID}, bson.M{"$set": updatedFields}); err != nil {
		config.ErrorStatus("failed to update patient", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Patient updated successfully",
	})
}

// UpdatePatientStatusHandler moves a patient between statuses and keeps the
// admission and discharge timestamps in lockstep: a transition to Admitted
// stamps admissionDate and clears dischargeDate, a transition to Discharged
// stamps dischargeDate and leaves admissionDate untouched.
func (p Patient) UpdatePatientStatusHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidPatientStatus(req.Status) {
		respondError("invalid patient status", w, models.NewInvalidArgument("status %q is not a recognized patient status", req.Status))
		return
	}

	if _, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID}); err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	set := bson.M{"status": req.Status, "updatedAt": now}
	switch req.Status {
	case models.PatientAdmitted:
		set["admissionDate"] = now
		set["dischargeDate"] = nil
	case models.PatientDischarged:
		set["dischargeDate"] = now
	}

	if err := p.DB.UpdateOne(context.Background(), bson.M{"_id": pID}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update patient status", http.StatusInternalServerError, w, err)
		return
	}

	switch req.Status {
	case models.PatientAdmitted:
		p.Feed.Broadcast("patient.admitted", map[string]string{"patientId": pID.Hex()})
	case models.PatientDischarged:
		p.Feed.Broadcast("patient.discharged", map[string]string{"patientId": pID.Hex()})
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Patient status updated successfully",
		"status":  req.Status,
	})
}

// DeletePatientHandler soft-deletes a patient. The id is also pulled from the
// assigned doctor's patient set so the doctor side does not keep referencing
// a record default reads can no longer see.
func (p Patient) DeletePatientHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	patient, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	err = p.DB.UpdateOne(context.Background(), bson.M{"_id": pID}, bson.M{"$set": bson.M{
		"isDeleted": true,
		"deletedAt": now,
		"isActive":  false,
		"updatedAt": now,
	}})
	if err != nil {
		config.ErrorStatus("failed to delete patient", http.StatusInternalServerError, w, err)
		return
	}

	if patient.AssignedDoctor != nil {
		if err := p.Linker.Doctors.UpdateOne(context.Background(), bson.M{"_id": *patient.AssignedDoctor}, bson.M{
			"$pull": bson.M{"patients": pID},
			"$set":  bson.M{"updatedAt": now},
		}); err != nil {
			zap.S().Errorw("failed to remove patient id from doctor after delete",
				"patientId", pID.Hex(), "doctorId", patient.AssignedDoctor.Hex(), "error", err)
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Patient deleted successfully",
	})
}

// AssignDoctorHandler points the patient at a doctor. An existing assignment
// is moved rather than stacked.
func (p Patient) AssignDoctorHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req doctorAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	dID, err := primitive.ObjectIDFromHex(req.DoctorID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	patient, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	if patient.AssignedDoctor != nil {
		err = p.Linker.ReassignPatientDoctor(r.Context(), pID, *patient.AssignedDoctor, dID)
	} else {
		err = p.Linker.AssignDoctorToPatient(r.Context(), pID, dID)
	}
	if err != nil {
		respondError("failed to assign doctor to patient", w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Doctor assigned to patient successfully",
	})
}

// UnassignDoctorHandler clears the patient's doctor on both sides
func (p Patient) UnassignDoctorHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if err := p.Linker.UnassignPatientDoctor(r.Context(), pID); err != nil {
		respondError("failed to unassign doctor from patient", w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Doctor unassigned from patient successfully",
	})
}

// AddMedicalHistoryHandler appends an entry to the patient's medical history
func (p Patient) AddMedicalHistoryHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var entry models.MedicalHistoryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if entry.Condition == "" {
		respondError("condition is required", w, models.NewInvalidArgument("condition is required"))
		return
	}
	entry.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	if _, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID}); err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	err = p.DB.UpdateOne(context.Background(), bson.M{"_id": pID}, bson.M{
		"$push": bson.M{"medicalHistory": entry},
		"$set":  bson.M{"updatedAt": entry.CreatedAt},
	})
	if err != nil {
		config.ErrorStatus("failed to add medical history entry", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Medical history entry added successfully",
	})
}

// AddVisitHandler appends a visit to the patient's visit log
func (p Patient) AddVisitHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var visit models.Visit
	if err := json.NewDecoder(r.Body).Decode(&visit); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if visit.Reason == "" {
		respondError("reason is required", w, models.NewInvalidArgument("reason is required"))
		return
	}
	now := primitive.NewDateTimeFromTime(time.Now())
	if visit.Date == 0 {
		visit.Date = now
	}
	if visit.Doctor != nil {
		if _, err := p.Linker.Doctors.FindOne(context.Background(), bson.M{"_id": *visit.Doctor}); err != nil {
			respondError("doctor not found", w, models.NewNotFound("doctor %s not found", visit.Doctor.Hex()))
			return
		}
	}

	if _, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID}); err != nil {
		config.ErrorStatus("failed to get patient by ID", http.StatusNotFound, w, err)
		return
	}

	err = p.DB.UpdateOne(context.Background(), bson.M{"_id": pID}, bson.M{
		"$push": bson.M{"visits": visit},
		"$set":  bson.M{"updatedAt": now},
	})
	if err != nil {
		config.ErrorStatus("failed to add visit", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Visit added successfully",
	})
}
