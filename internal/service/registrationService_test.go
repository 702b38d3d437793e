package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	published []any
	err       error
}

func (q *fakeQueue) Publish(_ context.Context, message interface{}) error {
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, message)
	return nil
}

func (q *fakeQueue) Consume(_ context.Context, _ func(message []byte) error) error { return nil }
func (q *fakeQueue) Close() error                                                  { return nil }

type fakeMailer struct {
	to      string
	subject string
	html    string
	text    string
	sent    int
}

func (m *fakeMailer) Send(_ context.Context, to, subject, htmlContent, textContent string) error {
	m.to = to
	m.subject = subject
	m.html = htmlContent
	m.text = textContent
	m.sent++
	return nil
}

func testForm() *entity.RegistrationForm {
	return &entity.RegistrationForm{
		UserEmail:   "student@example.com",
		FullName:    "Linh Tran",
		PhoneNumber: "+84 123 456 789",
		CourseName:  "DJ Basics",
	}
}

func TestSubmitFormQueuesTask(t *testing.T) {
	queue := &fakeQueue{}
	mailer := &fakeMailer{}
	s := NewRegistrationService(queue, mailer, "office@example.com", testLogger())

	require.NoError(t, s.SubmitForm(context.Background(), testForm()))

	require.Len(t, queue.published, 1)
	assert.Zero(t, mailer.sent, "queued submission must not send inline")

	task, ok := queue.published[0].(*registrationTask)
	require.True(t, ok)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, registrationTaskType, task.Type)
	assert.Equal(t, "Linh Tran", task.Form.FullName)
}

func TestSubmitFormFallsBackToInlineSend(t *testing.T) {
	tests := []struct {
		name  string
		queue *fakeQueue
	}{
		{name: "no queue configured", queue: nil},
		{name: "publish fails", queue: &fakeQueue{err: fmt.Errorf("broker down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			var s RegistrationService
			if tt.queue == nil {
				s = NewRegistrationService(nil, mailer, "office@example.com", testLogger())
			} else {
				s = NewRegistrationService(tt.queue, mailer, "office@example.com", testLogger())
			}

			require.NoError(t, s.SubmitForm(context.Background(), testForm()))
			assert.Equal(t, 1, mailer.sent)
			assert.Equal(t, "office@example.com", mailer.to)
		})
	}
}

func TestSubmitFormValidatesRequiredFields(t *testing.T) {
	s := NewRegistrationService(nil, &fakeMailer{}, "office@example.com", testLogger())

	err := s.SubmitForm(context.Background(), &entity.RegistrationForm{FullName: "Linh Tran"})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestHandleRegistrationTaskRendersEmail(t *testing.T) {
	mailer := &fakeMailer{}
	s := NewRegistrationService(nil, mailer, "office@example.com", testLogger())

	form := testForm()
	form.FullName = `Linh <script>alert("x")</script>`
	payload, err := json.Marshal(&registrationTask{ID: "t1", Type: registrationTaskType, Form: form})
	require.NoError(t, err)

	require.NoError(t, s.HandleRegistrationTask(context.Background(), payload))
	require.Equal(t, 1, mailer.sent)

	assert.Contains(t, mailer.subject, "Registration Form Submission")
	assert.Contains(t, mailer.text, "Student Name: Linh <script>")
	assert.NotContains(t, mailer.html, "<script>", "HTML body must escape user input")
	assert.Contains(t, mailer.html, "&lt;script&gt;")
	assert.Contains(t, mailer.text, "Date of Birth: N/A")
}

func TestHandleRegistrationTaskDropsBadPayloads(t *testing.T) {
	mailer := &fakeMailer{}
	s := NewRegistrationService(nil, mailer, "office@example.com", testLogger())

	// Unparseable payloads and taskless payloads are dropped, not requeued.
	require.NoError(t, s.HandleRegistrationTask(context.Background(), []byte("not json")))
	require.NoError(t, s.HandleRegistrationTask(context.Background(), []byte(`{"id":"t1"}`)))
	assert.Zero(t, mailer.sent)
}
