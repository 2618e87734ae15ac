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

// Department exported for testing purposes
type Department struct {
	DB     databases.DepartmentDatabase
	Linker *databases.Linker
}

type staffLinkRequest struct {
	StaffID string `json:"staffId"`
	Kind    string `json:"kind"`
}

// DepartmentsHandler returns a paginated list of departments
func (d Department) DepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	lo := parseListOptions(r)
	departments, pagination, err := d.DB.List(context.TODO(), lo)
	if err != nil {
		config.ErrorStatus("failed to get departments", http.StatusInternalServerError, w, err)
		return
	}
	b, err := json.Marshal(models.DepartmentListResponse{Departments: departments, Pagination: pagination})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DepartmentByIDHandler returns a department by ID
func (d Department) DepartmentByIDHandler(w http.ResponseWriter, r *http.Request) {
	deptID := mux.Vars(r)["department_id"]

	dID, err := primitive.ObjectIDFromHex(deptID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := d.DB.FindOne(context.Background(), bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to get department by ID", http.StatusNotFound, w, err)
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

// CreateDepartmentHandler creates a department
func (d Department) CreateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	var department models.Department
	if err := json.NewDecoder(r.Body).Decode(&department); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if department.Name == "" {
		respondError("name is required", w, models.NewInvalidArgument("name is required"))
		return
	}

	department.ID = primitive.NewObjectID()
	department.Doctors = []primitive.ObjectID{}
	department.Nurses = []primitive.ObjectID{}
	department.Pharmacists = []primitive.ObjectID{}
	department.Appointments = []primitive.ObjectID{}
	department.IsActive = true
	department.IsDeleted = false
	department.DeletedAt = nil
	department.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	department.UpdatedAt = department.CreatedAt

	_, err := d.DB.InsertOne(context.Background(), department)
	if err != nil {
		config.ErrorStatus("failed to create department", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Department created successfully",
		"id":      department.ID.Hex(),
	})
}

// UpdateDepartmentHandler updates a department's details
func (d Department) UpdateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	deptID := mux.Vars(r)["department_id"]

	dID, err := primitive.ObjectIDFromHex(deptID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	// link fields change only through the linker endpoints
	for _, k := range []string{"_id", "doctors", "nurses", "pharmacists", "appointments", "isDeleted", "deletedAt"} {
		delete(updatedFields, k)
	}
	updatedFields["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	if _, err := d.DB.FindOne(context.Background(), bson.M{"_id": dID}); err != nil {
		config.ErrorStatus("failed to get department by ID", http.StatusNotFound, w, err)
		return
	}
	err = d.DB.UpdateOne(context.Background(), bson.M{"_id": dID}, bson.M{"$set": updatedFields})
	if err != nil {
		config.ErrorStatus("failed to update department", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Department updated successfully",
	})
}

// DeleteDepartmentHandler soft-deletes a department by ID
func (d Department) DeleteDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	deptID := mux.Vars(r)["department_id"]

	dID, err := primitive.ObjectIDFromHex(deptID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := d.DB.FindOne(context.Background(), bson.M{"_id": dID}); err != nil {
		config.ErrorStatus("failed to get department by ID", http.StatusNotFound, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	err = d.DB.UpdateOne(context.Background(), bson.M{"_id": dID}, bson.M{"$set": bson.M{
		"isDeleted": true,
		"deletedAt": now,
		"isActive":  false,
		"updatedAt": now,
	}})
	if err != nil {
		config.ErrorStatus("failed to delete department", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Department deleted successfully",
	})
}

// AddStaffHandler links a staff member into the department
func (d Department) AddStaffHandler(w http.ResponseWriter, r *http.Request) {
	deptID := mux.Vars(r)["department_id"]

	dID, err := primitive.ObjectIDFromHex(deptID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req staffLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	kind, err := databases.ParseStaffKind(req.Kind)
	if err != nil {
		respondError("invalid staff kind", w, err)
		return
	}
	staffID, err := primitive.ObjectIDFromHex(req.StaffID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if err := d.Linker.AssignStaffToDepartment(r.Context(), staffID, kind, dID); err != nil {
		respondError("failed to assign staff to department", w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Staff assigned to department successfully",
	})
}

// RemoveStaffHandler pulls a staff member's id from the department's
// collection. The staff record's own department field is left untouched on
// this path.
func (d Department) RemoveStaffHandler(w http.ResponseWriter, r *http.Request) {
	deptID := mux.Vars(r)["department_id"]

	dID, err := primitive.ObjectIDFromHex(deptID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req staffLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	kind, err := databases.ParseStaffKind(req.Kind)
	if err != nil {
		respondError("invalid staff kind", w, err)
		return
	}
	staffID, err := primitive.ObjectIDFromHex(req.StaffID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if err := d.Linker.RemoveStaffFromDepartment(r.Context(), staffID, kind, dID); err != nil {
		respondError("failed to remove staff from department", w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Staff removed from department successfully",
	})
}
