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

// Doctor exported for testing purposes
type Doctor struct {
	DB     databases.DoctorDatabase
	Linker *databases.Linker
}

// DoctorsHandler returns a paginated list of doctors
func (d Doctor) DoctorsHandler(w http.ResponseWriter, r *http.Request) {
	lo := parseListOptions(r)
	doctors, pagination, err := d.DB.List(context.TODO(), lo)
	if err != nil {
		config.ErrorStatus("failed to get doctors", http.StatusInternalServerError, w, err)
		return
	}
	b, err := json.Marshal(models.DoctorListResponse{Doctors: doctors, Pagination: pagination})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DoctorByIDHandler returns a doctor by ID
func (d Doctor) DoctorByIDHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctor_id"]

	dID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := d.DB.FindOne(context.Background(), bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to get doctor by ID", http.StatusNotFound, w, err)
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

// CreateDoctorHandler creates a doctor. Email and phone must be unique across
// the doctor collection; a department, when given, must resolve to a live one
// and the link is recorded on both sides.
func (d Doctor) CreateDoctorHandler(w http.ResponseWriter, r *http.Request) {
	var doctor models.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if doctor.Name == "" || doctor.Email == "" {
		respondError("name and email are required", w, models.NewInvalidArgument("name and email are required"))
		return
	}

	count, err := d.DB.CountDocuments(context.Background(), bson.M{"$or": []bson.M{
		{"email": doctor.Email},
		{"phone": doctor.Phone},
	}})
	if err != nil {
		config.ErrorStatus("failed to check for existing doctor", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		respondError("doctor already exists", w, models.NewAlreadyExists("doctor with email %s or phone %s already exists", doctor.Email, doctor.Phone))
		return
	}

	departmentID := doctor.Department
	doctor.ID = primitive.NewObjectID()
	doctor.Department = nil
	if doctor.Qualifications == nil {
		doctor.Qualifications = []string{}
	}
	if doctor.AvailableSlots == nil {
		doctor.AvailableSlots = []models.AvailableSlot{}
	}
	doctor.Patients = []primitive.ObjectID{}
	doctor.IsActive = true
	doctor.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	doctor.UpdatedAt = doctor.CreatedAt

	if _, err := d.DB.InsertOne(context.Background(), doctor); err != nil {
		config.ErrorStatus("failed to create doctor", http.StatusInternalServerError, w, err)
		return
	}

	if departmentID != nil {
		if err := d.Linker.AssignStaffToDepartment(r.Context(), doctor.ID, databases.StaffDoctor, *departmentID); err != nil {
			respondError("failed to assign doctor to department", w, err)
			return
		}
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Doctor created successfully",
		"id":      doctor.ID.Hex(),
	})
}

// UpdateDoctorHandler updates a doctor's details. A department change routes
// through the link maintainer so both departments' doctor sets stay current.
func (d Doctor) UpdateDoctorHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctor_id"]

	dID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	existing, err := d.DB.FindOne(context.Background(), bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to get doctor by ID", http.StatusNotFound, w, err)
		return
	}

	var newDepartment *primitive.ObjectID
	if raw, ok := updatedFields["department"]; ok {
		hex, ok := raw.(string)
		if !ok {
			respondError("department must be a hex id", w, models.NewInvalidArgument("department must be a hex id"))
			return
		}
		deptID, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		newDepartment = &deptID
	}

	for _, k := range []string{"_id", "department", "patients"} {
		delete(updatedFields, k)
	}
	updatedFields["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	if len(updatedFields) > 0 {
		if err := d.DB.UpdateOne(context.Background(), bson.M{"_id": dID}, bson.M{"$set": updatedFields}); err != nil {
			config.ErrorStatus("failed to update doctor", http.StatusInternalServerError, w, err)
			return
		}
	}

	if newDepartment != nil {
		if existing.Department == nil {
			err = d.Linker.AssignStaffToDepartment(r.Context(), dID, databases.StaffDoctor, *newDepartment)
		} else {
			err = d.Linker.ReassignStaffDepartment(r.Context(), dID, databases.StaffDoctor, *existing.Department, *newDepartment)
		}
		if err != nil {
			respondError("failed to move doctor between departments", w, err)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Doctor updated successfully",
	})
}

// DeleteDoctorHandler removes a doctor record entirely. The id is pulled from
// the owning department first so the department never references a missing
// doctor; patients keep their assignedDoctor pointer and are re-pointed on
// their next assignment.
func (d Doctor) DeleteDoctorHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctor_id"]

	dID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	doctor, err := d.DB.FindOne(context.Background(), bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to get doctor by ID", http.StatusNotFound, w, err)
		return
	}

	if doctor.Department != nil {
		if err := d.Linker.Departments.UpdateOne(context.Background(), bson.M{"_id": *doctor.Department}, bson.M{
			"$pull": bson.M{"doctors": dID},
			"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
		}); err != nil {
			zap.S().Errorw("failed to remove doctor id from department",
				"doctorId", dID.Hex(), "departmentId", doctor.Department.Hex(), "error", err)
		}
	}

	if err := d.DB.DeleteOne(context.Background(), bson.M{"_id": dID}); err != nil {
		config.ErrorStatus("failed to delete doctor", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Doctor deleted successfully",
	})
}

// SlotsHandler returns the doctor's bookable 30-minute slots for the date in
// the `date` query parameter (YYYY-MM-DD).
func (d Doctor) SlotsHandler(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["doctor_id"]

	dID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		respondError("date query parameter is required", w, models.NewInvalidArgument("date query parameter is required"))
		return
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		respondError("date must be YYYY-MM-DD", w, models.NewInvalidArgument("date %q is not in YYYY-MM-DD format", date))
		return
	}

	doctor, err := d.DB.FindOne(context.Background(), bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to get doctor by ID", http.StatusNotFound, w, err)
		return
	}

	slots := schedule.SlotsForDate(doctor.AvailableSlots, day)

	b, err := json.Marshal(models.SlotsResponse{Date: date, Slots: slots})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
