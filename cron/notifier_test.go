package cron

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jgecalumni/room-booking-app/models"
)

type fakeStore struct {
	due      []models.Booking
	fetchErr error
	notified []uint
}

func (s *fakeStore) DueUnnotified() ([]models.Booking, error) {
	return s.due, s.fetchErr
}

func (s *fakeStore) MarkNotified(id uint) error {
	s.notified = append(s.notified, id)
	return nil
}

type fakeSender struct {
	sentTo []string
	failTo string // address whose send fails
}

func (s *fakeSender) Send(to, subject, body string) error {
	if to == s.failTo {
		return errors.New("smtp: connection reset")
	}
	s.sentTo = append(s.sentTo, to)
	return nil
}

func (s *fakeSender) SendWithAttachment(to, subject, body string, pdf []byte, nameHint string) error {
	return s.Send(to, subject, body)
}

func dueBooking(id uint, email string) models.Booking {
	return models.Booking{
		ID:        id,
		StartDate: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC),
		Type:      "single",
		Total:     4000,
		User:      models.User{Name: "Guest", Email: email},
		Listing:   models.Listing{Title: "Teesta"},
	}
}

func TestRunOnce_MarksNotified(t *testing.T) {
	store := &fakeStore{due: []models.Booking{
		dueBooking(1, "a@example.com"),
		dueBooking(2, "b@example.com"),
	}}
	sender := &fakeSender{}
	n := &Notifier{store: store, mailer: sender, baseURL: "http://localhost:3000"}

	n.RunOnce()

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.sentTo)
	assert.Equal(t, []uint{1, 2}, store.notified)
}

func TestRunOnce_SendFailureSkipsOnlyThatBooking(t *testing.T) {
	store := &fakeStore{due: []models.Booking{
		dueBooking(1, "a@example.com"),
		dueBooking(2, "b@example.com"),
		dueBooking(3, "c@example.com"),
	}}
	sender := &fakeSender{failTo: "b@example.com"}
	n := &Notifier{store: store, mailer: sender, baseURL: "http://localhost:3000"}

	n.RunOnce()

	assert.Equal(t, []string{"a@example.com", "c@example.com"}, sender.sentTo)
	// The failed booking stays unnotified and is retried next run.
	assert.Equal(t, []uint{1, 3}, store.notified)
}

func TestRunOnce_NothingDue(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{}
	n := &Notifier{store: store, mailer: sender}

	n.RunOnce()

	assert.Empty(t, sender.sentTo)
	assert.Empty(t, store.notified)
}

func TestRunOnce_FetchErrorSendsNothing(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("connection refused")}
	sender := &fakeSender{}
	n := &Notifier{store: store, mailer: sender}

	n.RunOnce()

	assert.Empty(t, sender.sentTo)
	assert.Empty(t, store.notified)
}
