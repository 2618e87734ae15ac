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

// Pharmacist exported for testing purposes
type Pharmacist struct {
	DB     databases.PharmacistDatabase
	Linker *databases.Linker
}

// PharmacistsHandler returns a paginated list of pharmacists
func (p Pharmacist) PharmacistsHandler(w http.ResponseWriter, r *http.Request) {
	lo := parseListOptions(r)
	pharmacists, pagination, err := p.DB.List(context.TODO(), lo)
	if err != nil {
		config.ErrorStatus("failed to get pharmacists", http.StatusInternalServerError, w, err)
		return
	}
	b, err := json.Marshal(models.PharmacistListResponse{Pharmacists: pharmacists, Pagination: pagination})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PharmacistByIDHandler returns a pharmacist by ID
func (p Pharmacist) PharmacistByIDHandler(w http.ResponseWriter, r *http.Request) {
	pharmacistID := mux.Vars(r)["pharmacist_id"]

	pID, err := primitive.ObjectIDFromHex(pharmacistID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get pharmacist by ID", http.StatusNotFound, w, err)
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

// CreatePharmacistHandler creates a pharmacist
func (p Pharmacist) CreatePharmacistHandler(w http.ResponseWriter, r *http.Request) {
	var pharmacist models.Pharmacist
	if err := json.NewDecoder(r.Body).Decode(&pharmacist); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if pharmacist.Name == "" || pharmacist.Email == "" || pharmacist.LicenseNumber == "" {
		respondError("name, email and licenseNumber are required", w, models.NewInvalidArgument("name, email and licenseNumber are required"))
		return
	}
	if pharmacist.Shift != "" && !models.ValidShift(pharmacist.Shift) {
		respondError("invalid shift", w, models.NewInvalidArgument("shift %q is not a recognized shift", pharmacist.Shift))
		return
	}

	count, err := p.DB.CountDocuments(context.Background(), bson.M{"$or": []bson.M{
		{"email": pharmacist.Email},
		{"phone": pharmacist.Phone},
		{"licenseNumber": pharmacist.LicenseNumber},
	}})
	if err != nil {
		config.ErrorStatus("failed to check for existing pharmacist", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		respondError("pharmacist already exists", w, models.NewAlreadyExists("pharmacist with email %s, phone %s or license %s already exists", pharmacist.Email, pharmacist.Phone, pharmacist.LicenseNumber))
		return
	}

	departmentID := pharmacist.Department
	pharmacist.ID = primitive.NewObjectID()
	pharmacist.Department = nil
	if pharmacist.Qualifications == nil {
		pharmacist.Qualifications = []string{}
	}
	pharmacist.IsActive = true
	pharmacist.IsDeleted = false
	pharmacist.DeletedAt = nil
	pharmacist.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	pharmacist.UpdatedAt = pharmacist.CreatedAt

	if _, err := p.DB.InsertOne(context.Background(), pharmacist); err != nil {
		config.ErrorStatus("failed to create pharmacist", http.StatusInternalServerError, w, err)
		return
	}

	if departmentID != nil {
		if err := p.Linker.AssignStaffToDepartment(r.Context(), pharmacist.ID, databases.StaffPharmacist, *departmentID); err != nil {
			respondError("failed to assign pharmacist to department", w, err)
			return
		}
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Pharmacist created successfully",
		"id":      pharmacist.ID.Hex(),
	})
}

// UpdatePharmacistHandler updates a pharmacist's details
func (p Pharmacist) UpdatePharmacistHandler(w http.ResponseWriter, r *http.Request) {
	pharmacistID := mux.Vars(r)["pharmacist_id"]

	pID, err := primitive.ObjectIDFromHex(pharmacistID)
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

	existing, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get pharmacist by ID", http.StatusNotFound, w, err)
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

	for _, k := range []string{"_id", "department", "isDeleted", "deletedAt"} {
		delete(updatedFields, k)
	}
	updatedFields["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	if err := p.DB.UpdateOne(context.Background(), bson.M{"_id": pID}, bson.M{"$set": updatedFields}); err != nil {
		config.ErrorStatus("failed to update pharmacist", http.StatusInternalServerError, w, err)
		return
	}

	if newDepartment != nil {
		if existing.Department == nil {
			err = p.Linker.AssignStaffToDepartment(r.Context(), pID, databases.StaffPharmacist, *newDepartment)
		} else {
			err = p.Linker.ReassignStaffDepartment(r.Context(), pID, databases.StaffPharmacist, *existing.Department, *newDepartment)
		}
		if err != nil {
			respondError("failed to move pharmacist between departments", w, err)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Pharmacist updated successfully",
	})
}

// DeletePharmacistHandler soft-deletes a pharmacist
func (p Pharmacist) DeletePharmacistHandler(w http.ResponseWriter, r *http.Request) {
	pharmacistID := mux.Vars(r)["pharmacist_id"]

	pID, err := primitive.ObjectIDFromHex(pharmacistID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID}); err != nil {
		config.ErrorStatus("failed to get pharmacist by ID", http.StatusNotFound, w, err)
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
		config.ErrorStatus("failed to delete pharmacist", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Pharmacist deleted successfully",
	})
}

// RestorePharmacistHandler brings a soft-deleted pharmacist back into the
// default listings. Restoring a pharmacist that is not soft-deleted is a 404:
// the lookup filters on isDeleted explicitly to reach past the read policy.
func (p Pharmacist) RestorePharmacistHandler(w http.ResponseWriter, r *http.Request) {
	pharmacistID := mux.Vars(r)["pharmacist_id"]

	pID, err := primitive.ObjectIDFromHex(pharmacistID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := p.DB.FindOne(context.Background(), bson.M{"_id": pID, "isDeleted": true}); err != nil {
		config.ErrorStatus("no soft-deleted pharmacist with that ID", http.StatusNotFound, w, err)
		return
	}

	if err := p.DB.Restore(context.Background(), pID); err != nil {
		config.ErrorStatus("failed to restore pharmacist", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Pharmacist restored successfully",
	})
}
