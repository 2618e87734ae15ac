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

	"github.com/carelinkhq/hospital-api/api/handlers/schedule"
	"github.com/carelinkhq/hospital-api/config"
	"github.com/carelinkhq/hospital-api/databases"
	"github.com/carelinkhq/hospital-api/models"
)

// Appointment exported for testing purposes
type Appointment struct {
	DB     databases.AppointmentDatabase
	Linker *databases.Linker
	Feed   *WardFeed
}

// AppointmentsHandler returns a paginated list of appointments, filterable by
// doctor_id, department_id and status.
func (a Appointment) AppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	lo := parseListOptions(r)
	appointments, pagination, err := a.DB.List(context.TODO(), lo)
	if err != nil {
		config.ErrorStatus("failed to get appointments", http.StatusInternalServerError, w, err)
		return
	}
	b, err := json.Marshal(models.AppointmentListResponse{Appointments: appointments, Pagination: pagination})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AppointmentByIDHandler returns an appointment by ID
func (a Appointment) AppointmentByIDHandler(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointment_id"]

	aID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := a.DB.FindOne(context.Background(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get appointment by ID", http.StatusNotFound, w, err)
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

// PatientAppointmentsHandler returns all appointments for one patient
func (a Appointment) PatientAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	appointments, err := a.DB.Find(context.Background(), bson.M{"patient": pID})
	if err != nil {
		config.ErrorStatus("failed to get appointments for patient", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(appointments)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateAppointmentHandler books a slot with a doctor. The slot must be one
// the resolver yields for that doctor and date, and must not already be held
// by a non-cancelled appointment.
func (a Appointment) CreateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	var appointment models.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	day, err := time.Parse("2006-01-02", appointment.Date)
	if err != nil {
		respondError("date must be YYYY-MM-DD", w, models.NewInvalidArgument("date %q is not in YYYY-MM-DD format", appointment.Date))
		return
	}

	doctor, err := a.Linker.Doctors.FindOne(context.Background(), bson.M{"_id": appointment.Doctor})
	if err != nil {
		respondError("doctor not found", w, models.NewNotFound("doctor %s not found", appointment.Doctor.Hex()))
		return
	}
	if _, err := a.Linker.Patients.FindOne(context.Background(), bson.M{"_id": appointment.Patient}); err != nil {
		respondError("patient not found", w, models.NewNotFound("patient %s not found", appointment.Patient.Hex()))
		return
	}

	slots := schedule.SlotsForDate(doctor.AvailableSlots, day)
	if !schedule.Contains(slots, appointment.Slot) {
		respondError("slot is not available", w, models.NewInvalidArgument("slot %q is not available for doctor %s on %s", appointment.Slot, appointment.Doctor.Hex(), appointment.Date))
		return
	}

	taken, err := a.DB.CountDocuments(context.Background(), bson.M{
		"doctor": appointment.Doctor,
		"date":   appointment.Date,
		"slot":   appointment.Slot,
		"status": bson.M{"$ne": models.AppointmentCancelled},
	})
	if err != nil {
		config.ErrorStatus("failed to check for conflicting appointment", http.StatusInternalServerError, w, err)
		return
	}
	if taken > 0 {
		respondError("slot already booked", w, models.NewInvalidState("slot %q on %s is already booked for doctor %s", appointment.Slot, appointment.Date, appointment.Doctor.Hex()))
		return
	}

	appointment.ID = primitive.NewObjectID()
	appointment.Department = doctor.Department
	appointment.Status = models.AppointmentScheduled
	appointment.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	appointment.UpdatedAt = appointment.CreatedAt

	if _, err := a.DB.InsertOne(context.Background(), appointment); err != nil {
		config.ErrorStatus("failed to create appointment", http.StatusInternalServerError, w, err)
		return
	}

	if appointment.Department != nil {
		if err := a.Linker.Departments.UpdateOne(context.Background(), bson.M{"_id": *appointment.Department}, bson.M{
			"$addToSet": bson.M{"appointments": appointment.ID},
			"$set":      bson.M{"updatedAt": appointment.UpdatedAt},
		}); err != nil {
			zap.S().Errorw("failed to record appointment id on department",
				"appointmentId", appointment.ID.Hex(), "departmentId", appointment.Department.Hex(), "error", err)
		}
	}

	a.Feed.Broadcast("appointment.created", appointment)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Appointment created successfully",
		"id":      appointment.ID.Hex(),
	})
}

// UpdateAppointmentStatusHandler moves an appointment between statuses
func (a Appointment) UpdateAppointmentStatusHandler(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointment_id"]

	aID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	switch req.Status {
	case models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled:
	default:
		respondError("invalid appointment status", w, models.NewInvalidArgument("status %q is not a recognized appointment status", req.Status))
		return
	}

	appointment, err := a.DB.FindOne(context.Background(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get appointment by ID", http.StatusNotFound, w, err)
		return
	}

	err = a.DB.UpdateOne(context.Background(), bson.M{"_id": aID}, bson.M{"$set": bson.M{
		"status":    req.Status,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to update appointment status", http.StatusInternalServerError, w, err)
		return
	}

	appointment.Status = req.Status
	a.Feed.Broadcast("appointment.status", appointment)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Appointment status updated successfully",
		"status":  req.Status,
	})
}

// CancelAppointmentHandler cancels an appointment, freeing its slot for
// rebooking.
func (a Appointment) CancelAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointment_id"]

	aID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	appointment, err := a.DB.FindOne(context.Background(), bson.M{"_id": aID})
	if err != nil {
		config.ErrorStatus("failed to get appointment by ID", http.StatusNotFound, w, err)
		return
	}
	if appointment.Status == models.AppointmentCancelled {
		respondError("appointment already cancelled", w, models.NewInvalidState("appointment %s is already cancelled", aID.Hex()))
		return
	}

	err = a.DB.UpdateOne(context.Background(), bson.M{"_id": aID}, bson.M{"$set": bson.M{
		"status":    models.AppointmentCancelled,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to cancel appointment", http.StatusInternalServerError, w, err)
		return
	}

	appointment.Status = models.AppointmentCancelled
	a.Feed.Broadcast("appointment.cancelled", appointment)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Appointment cancelled successfully",
	})
}
