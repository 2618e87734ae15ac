package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/carelinkhq/hospital-api/api"
	"github.com/carelinkhq/hospital-api/api/scheduler"
	"github.com/carelinkhq/hospital-api/config"
	"github.com/carelinkhq/hospital-api/databases"
	"github.com/carelinkhq/hospital-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	dbHelper  databases.DatabaseHelper
	scheduler *scheduler.Scheduler
	feed      *WardFeed
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewStaffAccountDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	linker := databases.NewLinker(a.dbHelper)
	if a.feed == nil {
		a.feed = NewWardFeed()
	}

	dept := Department{DB: databases.NewDepartmentDatabase(a.dbHelper), Linker: linker}
	doc := Doctor{DB: databases.NewDoctorDatabase(a.dbHelper), Linker: linker}
	nurse := Nurse{DB: databases.NewNurseDatabase(a.dbHelper), Linker: linker}
	pharm := Pharmacist{DB: databases.NewPharmacistDatabase(a.dbHelper), Linker: linker}
	patient := Patient{DB: databases.NewPatientDatabase(a.dbHelper), Linker: linker, Feed: a.feed}
	research := Research{DB: databases.NewResearchDatabase(a.dbHelper), Linker: linker}
	appointment := Appointment{DB: databases.NewAppointmentDatabase(a.dbHelper), Linker: linker, Feed: a.feed}
	account := Account{DB: databases.NewStaffAccountDatabase(a.dbHelper)}
	upload := UploadHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/login", http.HandlerFunc(account.LoginHandler)).Methods("POST")
	apiCreate.Handle("/accounts", api.Middleware(http.HandlerFunc(account.CreateAccountHandler))).Methods("POST")

	apiCreate.Handle("/department", api.Middleware(http.HandlerFunc(dept.CreateDepartmentHandler))).Methods("POST")
	apiCreate.Handle("/departments", api.Middleware(http.HandlerFunc(dept.DepartmentsHandler))).Methods("GET")
	apiCreate.Handle("/department/{department_id}", api.Middleware(http.HandlerFunc(dept.DepartmentByIDHandler))).Methods("GET")
	apiCreate.Handle("/department/{department_id}", api.Middleware(http.HandlerFunc(dept.UpdateDepartmentHandler))).Methods("PUT")
	apiCreate.Handle("/department/{department_id}", api.Middleware(http.HandlerFunc(dept.DeleteDepartmentHandler))).Methods("DELETE")
	apiCreate.Handle("/department/{department_id}/staff", api.Middleware(http.HandlerFunc(dept.AddStaffHandler))).Methods("POST")
	apiCreate.Handle("/department/{department_id}/staff", api.Middleware(http.HandlerFunc(dept.RemoveStaffHandler))).Methods("DELETE")

	apiCreate.Handle("/doctor", api.Middleware(http.HandlerFunc(doc.CreateDoctorHandler))).Methods("POST")
	apiCreate.Handle("/doctors", api.Middleware(http.HandlerFunc(doc.DoctorsHandler))).Methods("GET")
	apiCreate.Handle("/doctor/{doctor_id}", api.Middleware(http.HandlerFunc(doc.DoctorByIDHandler))).Methods("GET")
	apiCreate.Handle("/doctor/{doctor_id}", api.Middleware(http.HandlerFunc(doc.UpdateDoctorHandler))).Methods("PUT")
	apiCreate.Handle("/doctor/{doctor_id}", api.Middleware(http.HandlerFunc(doc.DeleteDoctorHandler))).Methods("DELETE")
	apiCreate.Handle("/doctor/{doctor_id}/slots", api.Middleware(http.HandlerFunc(doc.SlotsHandler))).Methods("GET")

	apiCreate.Handle("/nurse", api.Middleware(http.HandlerFunc(nurse.CreateNurseHandler))).Methods("POST")
	apiCreate.Handle("/nurses", api.Middleware(http.HandlerFunc(nurse.NursesHandler))).Methods("GET")
	apiCreate.Handle("/nurse/{nurse_id}", api.Middleware(http.HandlerFunc(nurse.NurseByIDHandler))).Methods("GET")
	apiCreate.Handle("/nurse/{nurse_id}", api.Middleware(http.HandlerFunc(nurse.UpdateNurseHandler))).Methods("PUT")
	apiCreate.Handle("/nurse/{nurse_id}", api.Middleware(http.HandlerFunc(nurse.DeleteNurseHandler))).Methods("DELETE")

	apiCreate.Handle("/pharmacist", api.Middleware(http.HandlerFunc(pharm.CreatePharmacistHandler))).Methods("POST")
	apiCreate.Handle("/pharmacists", api.Middleware(http.HandlerFunc(pharm.PharmacistsHandler))).Methods("GET")
	apiCreate.Handle("/pharmacist/{pharmacist_id}", api.Middleware(http.HandlerFunc(pharm.PharmacistByIDHandler))).Methods("GET")
	apiCreate.Handle("/pharmacist/{pharmacist_id}", api.Middleware(http.HandlerFunc(pharm.UpdatePharmacistHandler))).Methods("PUT")
	apiCreate.Handle("/pharmacist/{pharmacist_id}", api.Middleware(http.HandlerFunc(pharm.DeletePharmacistHandler))).Methods("DELETE")
	apiCreate.Handle("/pharmacist/{pharmacist_id}/restore", api.Middleware(http.HandlerFunc(pharm.RestorePharmacistHandler))).Methods("POST")

	apiCreate.Handle("/patient", api.Middleware(http.HandlerFunc(patient.CreatePatientHandler))).Methods("POST")
	apiCreate.Handle("/patients", api.Middleware(http.HandlerFunc(patient.PatientsHandler))).Methods("GET")
	apiCreate.Handle("/patient/{patient_id}", api.Middleware(http.HandlerFunc(patient.PatientByIDHandler))).Methods("GET")
	apiCreate.Handle("/patient/{patient_id}", api.Middleware(http.HandlerFunc(patient.UpdatePatientHandler))).Methods("PUT")
	apiCreate.Handle("/patient/{patient_id}", api.Middleware(http.HandlerFunc(patient.DeletePatientHandler))).Methods("DELETE")
	apiCreate.Handle("/patient/{patient_id}/status", api.Middleware(http.HandlerFunc(patient.UpdatePatientStatusHandler))).Methods("PUT")
	apiCreate.Handle("/patient/{patient_id}/doctor", api.Middleware(http.HandlerFunc(patient.AssignDoctorHandler))).Methods("PUT")
	apiCreate.Handle("/patient/{patient_id}/doctor", api.Middleware(http.HandlerFunc(patient.UnassignDoctorHandler))).Methods("DELETE")
	apiCreate.Handle("/patient/{patient_id}/medical-history", api.Middleware(http.HandlerFunc(patient.AddMedicalHistoryHandler))).Methods("POST")
	apiCreate.Handle("/patient/{patient_id}/visits", api.Middleware(http.HandlerFunc(patient.AddVisitHandler))).Methods("POST")
	apiCreate.Handle("/patient/{patient_id}/appointments", api.Middleware(http.HandlerFunc(appointment.PatientAppointmentsHandler))).Methods("GET")

	apiCreate.Handle("/research", api.Middleware(http.HandlerFunc(research.CreateResearchHandler))).Methods("POST")
	apiCreate.Handle("/research", api.Middleware(http.HandlerFunc(research.ResearchListHandler))).Methods("GET")
	apiCreate.Handle("/research/{research_id}", api.Middleware(http.HandlerFunc(research.ResearchByIDHandler))).Methods("GET")
	apiCreate.Handle("/research/{research_id}", api.Middleware(http.HandlerFunc(research.UpdateResearchHandler))).Methods("PUT")
	apiCreate.Handle("/research/{research_id}", api.Middleware(http.HandlerFunc(research.DeleteResearchHandler))).Methods("DELETE")
	apiCreate.Handle("/research/{research_id}/attachments", api.Middleware(http.HandlerFunc(research.AddAttachmentHandler))).Methods("POST")
	apiCreate.Handle("/research/{research_id}/attachments/{attachment_name}", api.Middleware(http.HandlerFunc(research.RemoveAttachmentHandler))).Methods("DELETE")

	apiCreate.Handle("/appointment", api.Middleware(http.HandlerFunc(appointment.CreateAppointmentHandler))).Methods("POST")
	apiCreate.Handle("/appointments", api.Middleware(http.HandlerFunc(appointment.AppointmentsHandler))).Methods("GET")
	apiCreate.Handle("/appointment/{appointment_id}", api.Middleware(http.HandlerFunc(appointment.AppointmentByIDHandler))).Methods("GET")
	apiCreate.Handle("/appointment/{appointment_id}/status", api.Middleware(http.HandlerFunc(appointment.UpdateAppointmentStatusHandler))).Methods("PUT")
	apiCreate.Handle("/appointment/{appointment_id}/cancel", api.Middleware(http.HandlerFunc(appointment.CancelAppointmentHandler))).Methods("POST")

	apiCreate.Handle("/uploads/signature", api.Middleware(http.HandlerFunc(upload.GenerateSignature))).Methods("GET")
	apiCreate.Handle("/uploads/rehost", api.Middleware(http.HandlerFunc(upload.RehostHandler))).Methods("POST")

	// live ward feed; auth happens during the websocket handshake
	apiCreate.Handle("/ward-feed", api.Middleware(http.HandlerFunc(a.feed.SubscribeHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("hospital-api has connected to the database")

	if err := databases.EnsureHeadAccount(a.dbHelper); err != nil {
		zap.S().With(err).Error("failed to bootstrap head account")
		return err
	}

	a.scheduler = scheduler.NewScheduler(a.dbHelper)
	a.scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
