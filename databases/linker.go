package databases

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/carelinkhq/hospital-api/models"
)

// StaffKind selects which staff collection a department link operation
// touches.
type StaffKind string

// Staff kinds recognized by the link maintainer.
const (
	StaffDoctor     StaffKind = "doctor"
	StaffNurse      StaffKind = "nurse"
	StaffPharmacist StaffKind = "pharmacist"
)

// ParseStaffKind converts a request string to a StaffKind.
func ParseStaffKind(s string) (StaffKind, error) {
	switch StaffKind(s) {
	case StaffDoctor, StaffNurse, StaffPharmacist:
		return StaffKind(s), nil
	}
	return "", models.NewInvalidArgument("unknown staff kind %q", s)
}

// departmentField is the department array the ids of this kind live in.
func (k StaffKind) departmentField() string {
	switch k {
	case StaffDoctor:
		return "doctors"
	case StaffNurse:
		return "nurses"
	default:
		return "pharmacists"
	}
}

// Linker keeps the two sides of the department/staff and doctor/patient
// relationships mutually consistent after a change to one side.
//
// The paired writes are sequential and NOT wrapped in a transaction: each
// single-document update is atomic, but a failure between the two leaves the
// sides divergent. That window is accepted; side-write failures are logged
// and re-applying the whole operation is safe (the field set is idempotent
// and the array adds use set semantics).
type Linker struct {
	Departments DepartmentDatabase
	Doctors     DoctorDatabase
	Nurses      NurseDatabase
	Pharmacists PharmacistDatabase
	Patients    PatientDatabase
}

// NewLinker wires a Linker over the shared db connection.
func NewLinker(db DatabaseHelper) *Linker {
	return &Linker{
		Departments: NewDepartmentDatabase(db),
		Doctors:     NewDoctorDatabase(db),
		Nurses:      NewNurseDatabase(db),
		Pharmacists: NewPharmacistDatabase(db),
		Patients:    NewPatientDatabase(db),
	}
}

// resolveStaff checks the staff id resolves to a live record of the given
// kind and returns the id of the department it currently belongs to, if any.
func (l *Linker) resolveStaff(ctx context.Context, staffID primitive.ObjectID, kind StaffKind) (*primitive.ObjectID, error) {
	filter := bson.M{"_id": staffID}
	switch kind {
	case StaffDoctor:
		doc, err := l.Doctors.FindOne(ctx, filter)
		if err != nil {
			return nil, models.NewNotFound("doctor %s not found", staffID.Hex())
		}
		return doc.Department, nil
	case StaffNurse:
		nurse, err := l.Nurses.FindOne(ctx, filter)
		if err != nil {
			return nil, models.NewNotFound("nurse %s not found", staffID.Hex())
		}
		return nurse.Department, nil
	default:
		pharmacist, err := l.Pharmacists.FindOne(ctx, filter)
		if err != nil {
			return nil, models.NewNotFound("pharmacist %s not found", staffID.Hex())
		}
		return pharmacist.Department, nil
	}
}

func (l *Linker) updateStaff(ctx context.Context, staffID primitive.ObjectID, kind StaffKind, update bson.M) error {
	filter := bson.M{"_id": staffID}
	switch kind {
	case StaffDoctor:
		return l.Doctors.UpdateOne(ctx, filter, update)
	case StaffNurse:
		return l.Nurses.UpdateOne(ctx, filter, update)
	default:
		return l.Pharmacists.UpdateOne(ctx, filter, update)
	}
}

func (l *Linker) staffInDepartment(dept *models.Department, staffID primitive.ObjectID, kind StaffKind) bool {
	var ids []primitive.ObjectID
	switch kind {
	case StaffDoctor:
		ids = dept.Doctors
	case StaffNurse:
		ids = dept.Nurses
	default:
		ids = dept.Pharmacists
	}
	for _, id := range ids {
		if id == staffID {
			return true
		}
	}
	return false
}

// AssignStaffToDepartment sets the staff record's department field and adds
// the staff id to the department's collection for that kind. Fails with
// NotFound if either id does not resolve to a live record and with
// InvalidState if the staff id is already listed in the department.
func (l *Linker) AssignStaffToDepartment(ctx context.Context, staffID primitive.ObjectID, kind StaffKind, departmentID primitive.ObjectID) error {
	dept, err := l.Departments.FindOne(ctx, bson.M{"_id": departmentID})
	if err != nil {
		return models.NewNotFound("department %s not found", departmentID.Hex())
	}
	if _, err := l.resolveStaff(ctx, staffID, kind); err != nil {
		return err
	}
	if l.staffInDepartment(dept, staffID, kind) {
		return models.NewInvalidState("%s %s is already assigned to department %s", kind, staffID.Hex(), departmentID.Hex())
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	if err := l.updateStaff(ctx, staffID, kind, bson.M{
		"$set": bson.M{"department": departmentID, "updatedAt": now},
	}); err != nil {
		return err
	}
	// second write is not rolled back on failure; the error is surfaced and
	// re-running the assignment is safe
	if err := l.Departments.UpdateOne(ctx, bson.M{"_id": departmentID}, bson.M{
		"$addToSet": bson.M{kind.departmentField(): staffID},
		"$set":      bson.M{"updatedAt": now},
	}); err != nil {
		zap.S().Errorw("staff link recorded on staff record but not on department",
			"staffId", staffID.Hex(),
			"kind", kind,
			"departmentId", departmentID.Hex(),
			"error", err,
		)
		return err
	}
	return nil
}

// ReassignStaffDepartment moves a staff member from one department to
// another. The staff record update is the primary write; the department-side
// pull/add are best-effort and logged on failure rather than aborting.
func (l *Linker) ReassignStaffDepartment(ctx context.Context, staffID primitive.ObjectID, kind StaffKind, oldDepartmentID, newDepartmentID primitive.ObjectID) error {
	if oldDepartmentID == newDepartmentID {
		return nil
	}
	if _, err := l.Departments.FindOne(ctx, bson.M{"_id": newDepartmentID}); err != nil {
		return models.NewNotFound("department %s not found", newDepartmentID.Hex())
	}
	if _, err := l.resolveStaff(ctx, staffID, kind); err != nil {
		return err
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	if err := l.updateStaff(ctx, staffID, kind, bson.M{
		"$set": bson.M{"department": newDepartmentID, "updatedAt": now},
	}); err != nil {
		return err
	}
	field := kind.departmentField()
	if err := l.Departments.UpdateOne(ctx, bson.M{"_id": oldDepartmentID}, bson.M{
		"$pull": bson.M{field: staffID},
		"$set":  bson.M{"updatedAt": now},
	}); err != nil {
		zap.S().Errorw("failed to remove staff id from previous department",
			"staffId", staffID.Hex(), "departmentId", oldDepartmentID.Hex(), "error", err)
	}
	if err := l.Departments.UpdateOne(ctx, bson.M{"_id": newDepartmentID}, bson.M{
		"$addToSet": bson.M{field: staffID},
		"$set":      bson.M{"updatedAt": now},
	}); err != nil {
		zap.S().Errorw("failed to add staff id to new department",
			"staffId", staffID.Hex(), "departmentId", newDepartmentID.Hex(), "error", err)
	}
	return nil
}

// RemoveStaffFromDepartment pulls the staff id from the department's
// collection. The staff record's own department field is intentionally left
// in place on this path; only the symmetric patient/doctor unassignment
// clears the back-reference.
func (l *Linker) RemoveStaffFromDepartment(ctx context.Context, staffID primitive.ObjectID, kind StaffKind, departmentID primitive.ObjectID) error {
	if _, err := l.Departments.FindOne(ctx, bson.M{"_id": departmentID}); err != nil {
		return models.NewNotFound("department %s not found", departmentID.Hex())
	}
	return l.Departments.UpdateOne(ctx, bson.M{"_id": departmentID}, bson.M{
		"$pull": bson.M{kind.departmentField(): staffID},
		"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	})
}

// AssignDoctorToPatient adds the patient to the doctor's patient set and
// points the patient's assignedDoctor at the doctor. Set-add semantics: a
// repeated assignment does not duplicate the id and is not an error.
func (l *Linker) AssignDoctorToPatient(ctx context.Context, patientID, doctorID primitive.ObjectID) error {
	if _, err := l.Doctors.FindOne(ctx, bson.M{"_id": doctorID}); err != nil {
		return models.NewNotFound("doctor %s not found", doctorID.Hex())
	}
	if _, err := l.Patients.FindOne(ctx, bson.M{"_id": patientID}); err != nil {
		return models.NewNotFound("patient %s not found", patientID.Hex())
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	if err := l.Patients.UpdateOne(ctx, bson.M{"_id": patientID}, bson.M{
		"$set": bson.M{"assignedDoctor": doctorID, "updatedAt": now},
	}); err != nil {
		return err
	}
	if err := l.Doctors.UpdateOne(ctx, bson.M{"_id": doctorID}, bson.M{
		"$addToSet": bson.M{"patients": patientID},
		"$set":      bson.M{"updatedAt": now},
	}); err != nil {
		zap.S().Errorw("patient link recorded on patient record but not on doctor",
			"patientId", patientID.Hex(), "doctorId", doctorID.Hex(), "error", err)
		return err
	}
	return nil
}

// ReassignPatientDoctor moves a patient between doctors: pulls the patient
// from the old doctor's set, adds it to the new doctor's set and repoints
// assignedDoctor. Department-style best-effort ordering applies.
func (l *Linker) ReassignPatientDoctor(ctx context.Context, patientID, oldDoctorID, newDoctorID primitive.ObjectID) error {
	if oldDoctorID == newDoctorID {
		return nil
	}
	if _, err := l.Doctors.FindOne(ctx, bson.M{"_id": newDoctorID}); err != nil {
		return models.NewNotFound("doctor %s not found", newDoctorID.Hex())
	}
	if _, err := l.Patients.FindOne(ctx, bson.M{"_id": patientID}); err != nil {
		return models.NewNotFound("patient %s not found", patientID.Hex())
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	if err := l.Patients.UpdateOne(ctx, bson.M{"_id": patientID}, bson.M{
		"$set": bson.M{"assignedDoctor": newDoctorID, "updatedAt": now},
	}); err != nil {
		return err
	}
	if err := l.Doctors.UpdateOne(ctx, bson.M{"_id": oldDoctorID}, bson.M{
		"$pull": bson.M{"patients": patientID},
		"$set":  bson.M{"updatedAt": now},
	}); err != nil {
		zap.S().Errorw("failed to remove patient id from previous doctor",
			"patientId", patientID.Hex(), "doctorId", oldDoctorID.Hex(), "error", err)
	}
	if err := l.Doctors.UpdateOne(ctx, bson.M{"_id": newDoctorID}, bson.M{
		"$addToSet": bson.M{"patients": patientID},
		"$set":      bson.M{"updatedAt": now},
	}); err != nil {
		zap.S().Errorw("failed to add patient id to new doctor",
			"patientId", patientID.Hex(), "doctorId", newDoctorID.Hex(), "error", err)
	}
	return nil
}

// UnassignPatientDoctor clears the patient's assignedDoctor and pulls the
// patient id from that doctor's set. Unlike the department removal path this
// clears both sides.
func (l *Linker) UnassignPatientDoctor(ctx context.Context, patientID primitive.ObjectID) error {
	patient, err := l.Patients.FindOne(ctx, bson.M{"_id": patientID})
	if err != nil {
		return models.NewNotFound("patient %s not found", patientID.Hex())
	}
	if patient.AssignedDoctor == nil {
		return nil
	}
	doctorID := *patient.AssignedDoctor

	now := primitive.NewDateTimeFromTime(time.Now())
	if err := l.Patients.UpdateOne(ctx, bson.M{"_id": patientID}, bson.M{
		"$set": bson.M{"assignedDoctor": nil, "updatedAt": now},
	}); err != nil {
		return err
	}
	if err := l.Doctors.UpdateOne(ctx, bson.M{"_id": doctorID}, bson.M{
		"$pull": bson.M{"patients": patientID},
		"$set":  bson.M{"updatedAt": now},
	}); err != nil {
		zap.S().Errorw("failed to remove patient id from doctor",
			"patientId", patientID.Hex(), "doctorId", doctorID.Hex(), "error", err)
		return err
	}
	return nil
}
