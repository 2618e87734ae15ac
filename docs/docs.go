// Package docs CareLink Hospital API.
//
// Documentation of CareLink Hospital API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://api.carelinkhq.com
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//
// swagger:meta
package docs

import (
	"github.com/carelinkhq/hospital-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/department/{department_id} department departmentByID
// Gets a single department by ID.
// responses:
//   200: departmentByIDResponse

// Shows a single department by the given {ID}
// swagger:response departmentByIDResponse
type departmentByIDResponseWrapper struct {
	// in:body
	Body models.Department
}

// swagger:route GET /api/v1/departments department departmentList
// Lists departments with pagination and filters.
// responses:
//   200: departmentListResponse

// Paginated department listing. Soft-deleted departments are hidden unless
// is_deleted is supplied.
// swagger:response departmentListResponse
type departmentListResponseWrapper struct {
	// in:body
	Body models.DepartmentListResponse
}

// swagger:route GET /api/v1/doctor/{doctor_id} doctor doctorByID
// Gets a single doctor by ID.
// responses:
//   200: doctorByIDResponse

// Shows a single doctor by the given {ID}
// swagger:response doctorByIDResponse
type doctorByIDResponseWrapper struct {
	// in:body
	Body models.Doctor
}

// swagger:route GET /api/v1/doctor/{doctor_id}/slots doctor doctorSlots
// Lists a doctor's bookable slots for a date.
// responses:
//   200: doctorSlotsResponse

// The 30-minute slot start times for the requested date.
// swagger:response doctorSlotsResponse
type doctorSlotsResponseWrapper struct {
	// in:body
	Body models.SlotsResponse
}

// swagger:route GET /api/v1/patients patient patientList
// Lists patients with pagination and filters.
// responses:
//   200: patientListResponse

// Paginated patient listing. Soft-deleted patients are hidden unless
// is_deleted is supplied.
// swagger:response patientListResponse
type patientListResponseWrapper struct {
	// in:body
	Body models.PatientListResponse
}

// swagger:route GET /api/v1/appointment/{appointment_id} appointment appointmentByID
// Gets a single appointment by ID.
// responses:
//   200: appointmentByIDResponse

// Shows a single appointment by the given {ID}
// swagger:response appointmentByIDResponse
type appointmentByIDResponseWrapper struct {
	// in:body
	Body models.Appointment
}

// swagger:route GET /api/v1/research research researchList
// Lists research projects with pagination and filters.
// responses:
//   200: researchListResponse

// Paginated research project listing.
// swagger:response researchListResponse
type researchListResponseWrapper struct {
	// in:body
	Body models.ResearchListResponse
}
