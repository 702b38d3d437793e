package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/eboniejc/muse-app/internal/entity"
	"github.com/eboniejc/muse-app/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const registrationTaskType = "registration_email"

// registrationTask is the queued unit of work for one submitted form.
type registrationTask struct {
	ID   string                   `json:"id"`
	Type string                   `json:"type"`
	Form *entity.RegistrationForm `json:"form"`
}

// registrationService forwards completed registration forms to the school
// office by email. Submissions go through the task queue so a slow mail
// provider never blocks the request; without a queue the mail is sent
// inline.
type registrationService struct {
	queue            rabbitmq.Queue
	mailer           Mailer
	destinationEmail string
	logger           *logrus.Logger
}

func NewRegistrationService(queue rabbitmq.Queue, mailer Mailer, destinationEmail string, logger *logrus.Logger) RegistrationService {
	return &registrationService{
		queue:            queue,
		mailer:           mailer,
		destinationEmail: destinationEmail,
		logger:           logger,
	}
}

func (s *registrationService) SubmitForm(ctx context.Context, form *entity.RegistrationForm) error {
	if form.FullName == "" || form.PhoneNumber == "" {
		return fmt.Errorf("%w: full name and phone number are required", entity.ErrInvalidInput)
	}

	if s.queue == nil {
		return s.sendRegistrationEmail(ctx, form)
	}

	task := &registrationTask{
		ID:   uuid.New().String(),
		Type: registrationTaskType,
		Form: form,
	}
	if err := s.queue.Publish(ctx, task); err != nil {
		s.logger.WithField("task_id", task.ID).WithError(err).
			Warn("failed to queue registration task, sending inline")
		return s.sendRegistrationEmail(ctx, form)
	}

	s.logger.WithFields(logrus.Fields{
		"task_id":      task.ID,
		"student_name": form.FullName,
	}).Info("queued registration notification")
	return nil
}

// HandleRegistrationTask is the queue consumer callback.
func (s *registrationService) HandleRegistrationTask(ctx context.Context, payload []byte) error {
	var task registrationTask
	if err := json.Unmarshal(payload, &task); err != nil {
		// A malformed payload will never parse; drop it instead of
		// requeueing forever.
		s.logger.WithError(err).Error("dropping unparseable registration task")
		return nil
	}
	if task.Form == nil {
		s.logger.WithField("task_id", task.ID).Error("dropping registration task without form")
		return nil
	}

	return s.sendRegistrationEmail(ctx, task.Form)
}

func (s *registrationService) sendRegistrationEmail(ctx context.Context, form *entity.RegistrationForm) error {
	rows := [][2]string{
		{"Student Name", form.FullName},
		{"Student Account Email", form.UserEmail},
		{"Phone Number", form.PhoneNumber},
		{"Date of Birth", orNA(form.DateOfBirth)},
		{"Gender", orNA(form.Gender)},
		{"Address", orNA(form.Address)},
		{"Course", orNA(form.CourseName)},
		{"Course ID", orNAID(form.SelectedCourseID)},
		{"Preferred Payment Method", orNA(form.PreferredPaymentMethod)},
		{"Bank Name", orNA(form.BankName)},
		{"Bank Account Name", orNA(form.BankAccountName)},
		{"Bank Account Number", orNA(form.BankAccountNumber)},
	}

	var htmlRows strings.Builder
	var textRows strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&htmlRows,
			`<tr><td style="padding:8px 10px;border:1px solid #ddd;font-weight:600;">%s</td><td style="padding:8px 10px;border:1px solid #ddd;">%s</td></tr>`,
			html.EscapeString(row[0]), html.EscapeString(row[1]))
		fmt.Fprintf(&textRows, "%s: %s\n", row[0], row[1])
	}

	subject := fmt.Sprintf("[MUSE INC] Registration Form Submission - %s", form.FullName)
	htmlContent := fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;color:#111;">
			<h2 style="margin:0 0 14px;">New Registration Form Submission</h2>
			<table style="border-collapse:collapse;width:100%%;max-width:720px;">%s</table>
		</div>`, htmlRows.String())

	if err := s.mailer.Send(ctx, s.destinationEmail, subject, htmlContent, textRows.String()); err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}

	s.logger.WithField("student_name", form.FullName).Info("sent registration notification email")
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orNAID(id int64) string {
	if id == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", id)
}
