package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/hospital-api/databases"
	"github.com/carelinkhq/hospital-api/databases/mocks"
	"github.com/carelinkhq/hospital-api/models"
)

func TestParseStaffKind(t *testing.T) {
	kind, err := databases.ParseStaffKind("doctor")
	assert.NoError(t, err)
	assert.Equal(t, databases.StaffDoctor, kind)

	_, err = databases.ParseStaffKind("janitor")
	assert.Error(t, err)
	assert.Equal(t, models.KindInvalidArgument, models.KindOf(err))
}

func TestLinker_AssignStaffToDepartment(t *testing.T) {
	deptID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	doctorDB := &mocks.DoctorDatabase{}

	deptDB.On("FindOne", mock.Anything, bson.M{"_id": deptID}).
		Return(&models.Department{ID: deptID, Doctors: []primitive.ObjectID{}}, nil)
	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": doctorID}).
		Return(&models.Doctor{ID: doctorID}, nil)

	// staff side first: department pointer set
	doctorDB.On("UpdateOne", mock.Anything, bson.M{"_id": doctorID}, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		return ok && set["department"] == deptID
	})).Return(nil)

	// then the department set-add
	deptDB.On("UpdateOne", mock.Anything, bson.M{"_id": deptID}, mock.MatchedBy(func(update bson.M) bool {
		add, ok := update["$addToSet"].(bson.M)
		return ok && add["doctors"] == doctorID
	})).Return(nil)

	linker := &databases.Linker{Departments: deptDB, Doctors: doctorDB}
	err := linker.AssignStaffToDepartment(context.Background(), doctorID, databases.StaffDoctor, deptID)

	assert.NoError(t, err)
	deptDB.AssertExpectations(t)
	doctorDB.AssertExpectations(t)
}

func TestLinker_AssignStaffToDepartmentNotFound(t *testing.T) {
	deptID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	deptDB.On("FindOne", mock.Anything, bson.M{"_id": deptID}).
		Return(nil, errors.New("mongo: no documents in result"))

	linker := &databases.Linker{Departments: deptDB}
	err := linker.AssignStaffToDepartment(context.Background(), doctorID, databases.StaffDoctor, deptID)

	assert.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestLinker_AssignStaffToDepartmentAlreadyLinked(t *testing.T) {
	deptID := primitive.NewObjectID()
	nurseID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	nurseDB := &mocks.NurseDatabase{}

	deptDB.On("FindOne", mock.Anything, bson.M{"_id": deptID}).
		Return(&models.Department{ID: deptID, Nurses: []primitive.ObjectID{nurseID}}, nil)
	nurseDB.On("FindOne", mock.Anything, bson.M{"_id": nurseID}).
		Return(&models.Nurse{ID: nurseID}, nil)

	linker := &databases.Linker{Departments: deptDB, Nurses: nurseDB}
	err := linker.AssignStaffToDepartment(context.Background(), nurseID, databases.StaffNurse, deptID)

	assert.Error(t, err)
	assert.Equal(t, models.KindInvalidState, models.KindOf(err))
	nurseDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestLinker_AssignStaffToDepartmentSecondWriteNotRolledBack(t *testing.T) {
	deptID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	doctorDB := &mocks.DoctorDatabase{}

	deptDB.On("FindOne", mock.Anything, bson.M{"_id": deptID}).
		Return(&models.Department{ID: deptID}, nil)
	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": doctorID}).
		Return(&models.Doctor{ID: doctorID}, nil)
	doctorDB.On("UpdateOne", mock.Anything, bson.M{"_id": doctorID}, mock.Anything).Return(nil)
	deptDB.On("UpdateOne", mock.Anything, bson.M{"_id": deptID}, mock.Anything).
		Return(errors.New("write failed"))

	linker := &databases.Linker{Departments: deptDB, Doctors: doctorDB}
	err := linker.AssignStaffToDepartment(context.Background(), doctorID, databases.StaffDoctor, deptID)

	// the failure is surfaced, the staff-side write stays in place
	assert.Error(t, err)
	doctorDB.AssertNumberOfCalls(t, "UpdateOne", 1)
}

func TestLinker_ReassignStaffDepartmentSameIsNoop(t *testing.T) {
	deptID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	doctorDB := &mocks.DoctorDatabase{}

	linker := &databases.Linker{Departments: deptDB, Doctors: doctorDB}
	err := linker.ReassignStaffDepartment(context.Background(), doctorID, databases.StaffDoctor, deptID, deptID)

	assert.NoError(t, err)
	deptDB.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestLinker_ReassignStaffDepartmentSideWriteFailuresAreBestEffort(t *testing.T) {
	oldDeptID := primitive.NewObjectID()
	newDeptID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	doctorDB := &mocks.DoctorDatabase{}

	deptDB.On("FindOne", mock.Anything, bson.M{"_id": newDeptID}).
		Return(&models.Department{ID: newDeptID}, nil)
	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": doctorID}).
		Return(&models.Doctor{ID: doctorID, Department: &oldDeptID}, nil)
	doctorDB.On("UpdateOne", mock.Anything, bson.M{"_id": doctorID}, mock.Anything).Return(nil)
	// both department-side writes fail but the operation still succeeds
	deptDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("write failed"))

	linker := &databases.Linker{Departments: deptDB, Doctors: doctorDB}
	err := linker.ReassignStaffDepartment(context.Background(), doctorID, databases.StaffDoctor, oldDeptID, newDeptID)

	assert.NoError(t, err)
	deptDB.AssertNumberOfCalls(t, "UpdateOne", 2)
}

func TestLinker_RemoveStaffFromDepartmentLeavesStaffPointer(t *testing.T) {
	deptID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	deptDB := &mocks.DepartmentDatabase{}
	doctorDB := &mocks.DoctorDatabase{}

	deptDB.On("FindOne", mock.Anything, bson.M{"_id": deptID}).
		Return(&models.Department{ID: deptID, Doctors: []primitive.ObjectID{doctorID}}, nil)
	deptDB.On("UpdateOne", mock.Anything, bson.M{"_id": deptID}, mock.MatchedBy(func(update bson.M) bool {
		pull, ok := update["$pull"].(bson.M)
		return ok && pull["doctors"] == doctorID
	})).Return(nil)

	linker := &databases.Linker{Departments: deptDB, Doctors: doctorDB}
	err := linker.RemoveStaffFromDepartment(context.Background(), doctorID, databases.StaffDoctor, deptID)

	assert.NoError(t, err)
	// removal only touches the department side
	doctorDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
	deptDB.AssertExpectations(t)
}

func TestLinker_AssignDoctorToPatient(t *testing.T) {
	doctorID := primitive.NewObjectID()
	patientID := primitive.NewObjectID()

	doctorDB := &mocks.DoctorDatabase{}
	patientDB := &mocks.PatientDatabase{}

	doctorDB.On("FindOne", mock.Anything, bson.M{"_id": doctorID}).
		Return(&models.Doctor{ID: doctorID}, nil)
	patientDB.On("FindOne", mock.Anything, bson.M{"_id": patientID}).
		Return(&models.Patient{ID: patientID}, nil)
	patientDB.On("UpdateOne", mock.Anything, bson.M{"_id": patientID}, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		return ok && set["assignedDoctor"] == doctorID
	})).Return(nil)
	doctorDB.On("UpdateOne", mock.Anything, bson.M{"_id": doctorID}, mock.MatchedBy(func(update bson.M) bool {
		add, ok := update["$addToSet"].(bson.M)
		return ok && add["patients"] == patientID
	})).Return(nil)

	linker := &databases.Linker{Doctors: doctorDB, Patients: patientDB}

	// the set-add makes repeated assignment idempotent rather than an error
	assert.NoError(t, linker.AssignDoctorToPatient(context.Background(), patientID, doctorID))
	assert.NoError(t, linker.AssignDoctorToPatient(context.Background(), patientID, doctorID))
}

func TestLinker_UnassignPatientDoctorClearsBothSides(t *testing.T) {
	doctorID := primitive.NewObjectID()
	patientID := primitive.NewObjectID()

	doctorDB := &mocks.DoctorDatabase{}
	patientDB := &mocks.PatientDatabase{}

	patientDB.On("FindOne", mock.Anything, bson.M{"_id": patientID}).
		Return(&models.Patient{ID: patientID, AssignedDoctor: &doctorID}, nil)
	patientDB.On("UpdateOne", mock.Anything, bson.M{"_id": patientID}, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		return ok && set["assignedDoctor"] == nil
	})).Return(nil)
	doctorDB.On("UpdateOne", mock.Anything, bson.M{"_id": doctorID}, mock.MatchedBy(func(update bson.M) bool {
		pull, ok := update["$pull"].(bson.M)
		return ok && pull["patients"] == patientID
	})).Return(nil)

	linker := &databases.Linker{Doctors: doctorDB, Patients: patientDB}
	err := linker.UnassignPatientDoctor(context.Background(), patientID)

	assert.NoError(t, err)
	doctorDB.AssertExpectations(t)
	patientDB.AssertExpectations(t)
}

func TestLinker_UnassignPatientDoctorNoDoctorIsNoop(t *testing.T) {
	patientID := primitive.NewObjectID()

	doctorDB := &mocks.DoctorDatabase{}
	patientDB := &mocks.PatientDatabase{}

	patientDB.On("FindOne", mock.Anything, bson.M{"_id": patientID}).
		Return(&models.Patient{ID: patientID}, nil)

	linker := &databases.Linker{Doctors: doctorDB, Patients: patientDB}
	err := linker.UnassignPatientDoctor(context.Background(), patientID)

	assert.NoError(t, err)
	patientDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
	doctorDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}
