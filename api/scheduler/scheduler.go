package scheduler

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/carelinkhq/hospital-api/databases"
	"github.com/carelinkhq/hospital-api/models"
	templates "github.com/carelinkhq/hospital-api/templates/html"
)

// retention window for soft-deleted records before the purge job removes them
// for good
const purgeRetention = 90 * 24 * time.Hour

// Scheduler handles periodic background jobs: day-before appointment
// reminders and purging of long-soft-deleted records.
type Scheduler struct {
	cron         *cron.Cron
	Appointments databases.AppointmentDatabase
	Patients     databases.PatientDatabase
	Doctors      databases.DoctorDatabase
	Departments  databases.DepartmentDatabase
	Pharmacists  databases.PharmacistDatabase
	Research     databases.ResearchDatabase
}

// NewScheduler creates a new scheduler instance over the shared db connection
func NewScheduler(db databases.DatabaseHelper) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(time.UTC)),
		Appointments: databases.NewAppointmentDatabase(db),
		Patients:     databases.NewPatientDatabase(db),
		Doctors:      databases.NewDoctorDatabase(db),
		Departments:  databases.NewDepartmentDatabase(db),
		Pharmacists:  databases.NewPharmacistDatabase(db),
		Research:     databases.NewResearchDatabase(db),
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Send appointment reminders daily at 6 AM UTC
	_, err := s.cron.AddFunc("0 6 * * *", s.sendAppointmentReminders)
	if err != nil {
		zap.S().Errorw("failed to register appointment reminder job", "error", err)
	}

	// Purge soft-deleted records past retention weekly, Sundays at 3 AM UTC
	_, err = s.cron.AddFunc("0 3 * * 0", s.purgeSoftDeleted)
	if err != nil {
		zap.S().Errorw("failed to register purge job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Hospital scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Hospital scheduler stopped")
}

// sendAppointmentReminders mails every patient holding a scheduled
// appointment for tomorrow.
func (s *Scheduler) sendAppointmentReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tomorrow := time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")
	zap.S().Infow("Running appointment reminder job", "date", tomorrow)

	appointments, err := s.Appointments.Find(ctx, bson.M{
		"date":   tomorrow,
		"status": models.AppointmentScheduled,
	})
	if err != nil {
		zap.S().Errorw("failed to find appointments for reminders", "error", err)
		return
	}

	sent := 0
	for _, appointment := range appointments {
		patient, err := s.Patients.FindOne(ctx, bson.M{"_id": appointment.Patient})
		if err != nil || patient.Email == "" {
			continue
		}
		doctorName := "your doctor"
		if doctor, err := s.Doctors.FindOne(ctx, bson.M{"_id": appointment.Doctor}); err == nil {
			doctorName = doctor.Name
		}

		subject := "Appointment Reminder - CareLink"
		htmlContent := templates.RenderAppointmentReminderEmail(patient.Name, doctorName, appointment.Date, appointment.Slot)
		plainText := "You have an appointment tomorrow at " + appointment.Slot + ". Visit the patient portal for details."

		if err := s.sendEmail(patient.Email, patient.Name, subject, htmlContent, plainText); err != nil {
			zap.S().Errorw("failed to send appointment reminder",
				"appointmentId", appointment.ID.Hex(), "error", err)
			continue
		}
		sent++
	}

	zap.S().Infow("Appointment reminder job complete",
		"appointmentsFound", len(appointments),
		"remindersSent", sent,
	)
}

// purgeSoftDeleted permanently removes soft-deleted records older than the
// retention window from every collection that soft-deletes.
func (s *Scheduler) purgeSoftDeleted() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-purgeRetention)
	zap.S().Infow("Running soft-delete purge job", "cutoff", cutoff)

	type purger struct {
		name string
		fn   func(context.Context, time.Time) (int64, error)
	}
	for _, p := range []purger{
		{"departments", s.Departments.PurgeDeleted},
		{"patients", s.Patients.PurgeDeleted},
		{"pharmacists", s.Pharmacists.PurgeDeleted},
		{"research", s.Research.PurgeDeleted},
	} {
		removed, err := p.fn(ctx, cutoff)
		if err != nil {
			zap.S().Errorw("failed to purge soft-deleted records",
				"collection", p.name, "error", err)
			continue
		}
		if removed > 0 {
			zap.S().Infow("purged soft-deleted records",
				"collection", p.name, "removed", removed)
		}
	}
}

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("CareLink", "no-reply@carelinkhq.com")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
