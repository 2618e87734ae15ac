package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/hospital-api/config"
	"github.com/carelinkhq/hospital-api/databases"
	"github.com/carelinkhq/hospital-api/models"
)

// Nurse exported for testing purposes
type Nurse struct {
	DB     databases.NurseDatabase
	Linker *databases.Linker
}

// NursesHandler returns a paginated list of nurses
func (n Nurse) NursesHandler(w http.ResponseWriter, r *http.Request) {
	lo := parseListOptions(r)
	nurses, pagination, err := n.DB.List(context.TODO(), lo)
	if err != nil {
		config.ErrorStatus("failed to get nurses", http.StatusInternalServerError, w, err)
		return
	}
	b, err := json.Marshal(models.NurseListResponse{Nurses: nurses, Pagination: pagination})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// NurseByIDHandler returns a nurse by ID
func (n Nurse) NurseByIDHandler(w http.ResponseWriter, r *http.Request) {
	nurseID := mux.Vars(r)["nurse_id"]

	nID, err := primitive.ObjectIDFromHex(nurseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := n.DB.FindOne(context.Background(), bson.M{"_id": nID})
	if err != nil {
		config.ErrorStatus("failed to get nurse by ID", http.StatusNotFound, w, err)
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

// CreateNurseHandler creates a nurse
func (n Nurse) CreateNurseHandler(w http.ResponseWriter, r *http.Request) {
	var nurse models.Nurse
	if err := json.NewDecoder(r.Body).Decode(&nurse); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if nurse.Name == "" || nurse.Email == "" {
		respondError("name and email are required", w, models.NewInvalidArgument("name and email are required"))
		return
	}
	if nurse.Shift != "" && !models.ValidShift(nurse.Shift) {
		respondError("invalid shift", w, models.NewInvalidArgument("shift %q is not a recognized shift", nurse.Shift))
		return
	}

	count, err := n.DB.CountDocuments(context.Background(), bson.M{"$or": []bson.M{
		{"email": nurse.Email},
		{"phone": nurse.Phone},
	}})
	if err != nil {
		config.ErrorStatus("failed to check for existing nurse", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		respondError("nurse already exists", w, models.NewAlreadyExists("nurse with email %s or phone %s already exists", nurse.Email, nurse.Phone))
		return
	}

	departmentID := nurse.Department
	nurse.ID = primitive.NewObjectID()
	nurse.Department = nil
	if nurse.Qualifications == nil {
		nurse.Qualifications = []string{}
	}
	nurse.IsActive = true
	nurse.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	nurse.UpdatedAt = nurse.CreatedAt

	if _, err := n.DB.InsertOne(context.Background(), nurse); err != nil {
		config.ErrorStatus("failed to create nurse", http.StatusInternalServerError, w, err)
		return
	}

	if departmentID != nil {
		if err := n.Linker.AssignStaffToDepartment(r.Context(), nurse.ID, databases.StaffNurse, *departmentID); err != nil {
			respondError("failed to assign nurse to department", w, err)
			return
		}
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Nurse created successfully",
		"id":      nurse.ID.Hex(),
	})
}

// UpdateNurseHandler updates a nurse's details
func (n Nurse) UpdateNurseHandler(w http.ResponseWriter, r *http.Request) {
	nurseID := mux.Vars(r)["nurse_id"]

	nID, err := primitive.ObjectIDFromHex(nurseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if shift, ok := updatedFields["shift"].(string); ok && !models.ValidShift(shift) {
		respondError("invalid shift", w, models.NewInvalidArgument("shift %q is not a recognized shift", shift))
		return
	}

	existing, err := n.DB.FindOne(context.Background(), bson.M{"_id": nID})
	if err != nil {
		config.ErrorStatus("failed to get nurse by ID", http.StatusNotFound, w, err)
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

	for _, k := range []string{"_id", "department"} {
		delete(updatedFields, k)
	}
	updatedFields["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	if err := n.DB.UpdateOne(context.Background(), bson.M{"_id": nID}, bson.M{"$set": updatedFields}); err != nil {
		config.ErrorStatus("failed to update nurse", http.StatusInternalServerError, w, err)
		return
	}

	if newDepartment != nil {
		if existing.Department == nil {
			err = n.Linker.AssignStaffToDepartment(r.Context(), nID, databases.StaffNurse, *newDepartment)
		} else {
			err = n.Linker.ReassignStaffDepartment(r.Context(), nID, databases.StaffNurse, *existing.Department, *newDepartment)
		}
		if err != nil {
			respondError("failed to move nurse between departments", w, err)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Nurse updated successfully",
	})
}

// DeleteNurseHandler deactivates a nurse. The record is kept and stays listed
// in its department; only isActive flips.
func (n Nurse) DeleteNurseHandler(w http.ResponseWriter, r *http.Request) {
	nurseID := mux.Vars(r)["nurse_id"]

	nID, err := primitive.ObjectIDFromHex(nurseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := n.DB.FindOne(context.Background(), bson.M{"_id": nID}); err != nil {
		config.ErrorStatus("failed to get nurse by ID", http.StatusNotFound, w, err)
		return
	}

	err = n.DB.UpdateOne(context.Background(), bson.M{"_id": nID}, bson.M{"$set": bson.M{
		"isActive":  false,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to deactivate nurse", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Nurse deactivated successfully",
	})
}
