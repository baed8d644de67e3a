package cron

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jgecalumni/room-booking-app/models"
	"github.com/jgecalumni/room-booking-app/utils"
)

const (
	notifierSchedule = "0 9 * * *" // daily at 09:00
	notifierLockKey  = "stay-completion-notifier-lock"
	notifierLockTTL  = 10 * time.Minute
	dateFormat       = "02 Jan, 2006 at 03:04 PM"
)

// bookingStore is the slice of storage the notifier needs; the gorm
// implementation below is what production wires in.
type bookingStore interface {
	DueUnnotified() ([]models.Booking, error)
	MarkNotified(id uint) error
}

type gormBookingStore struct {
	db *gorm.DB
}

func (s *gormBookingStore) DueUnnotified() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Preload("User").
		Preload("Listing").
		Where("end_date <= ? AND notified = ?", time.Now(), false).
		Find(&bookings).Error
	return bookings, err
}

func (s *gormBookingStore) MarkNotified(id uint) error {
	return s.db.Model(&models.Booking{}).Where("id = ?", id).
		Update("notified", true).Error
}

// Notifier sends the post-stay follow-up email for completed, unnotified
// bookings. It runs on a daily trigger, independent of request handling.
type Notifier struct {
	store   bookingStore
	mailer  utils.Sender
	locker  *redis.Client // nil: single instance, no run lock
	baseURL string
	cron    *cron.Cron
}

func NewNotifier(db *gorm.DB, mailer utils.Sender, locker *redis.Client, baseURL string) *Notifier {
	return &Notifier{
		store:   &gormBookingStore{db: db},
		mailer:  mailer,
		locker:  locker,
		baseURL: baseURL,
	}
}

// Start registers the daily schedule and launches the scheduler.
func (n *Notifier) Start() error {
	n.cron = cron.New()
	if _, err := n.cron.AddFunc(notifierSchedule, n.RunOnce); err != nil {
		return err
	}
	n.cron.Start()
	logrus.Info("stay-completion notifier scheduled")
	return nil
}

// Stop halts the scheduler; a run already in flight finishes.
func (n *Notifier) Stop() {
	if n.cron != nil {
		n.cron.Stop()
	}
}

// RunOnce processes every due booking. A send failure for one booking is
// logged and skipped so the rest of the batch still goes out; the failed
// booking stays unnotified and is retried on the next trigger.
func (n *Notifier) RunOnce() {
	unlock, ok := n.acquireLock()
	if !ok {
		logrus.Info("stay-completion run skipped: another instance holds the lock")
		return
	}
	defer unlock()

	bookings, err := n.store.DueUnnotified()
	if err != nil {
		logrus.WithError(err).Error("failed to fetch bookings for stay-completion emails")
		return
	}
	if len(bookings) == 0 {
		logrus.Info("no users to notify today")
		return
	}

	for _, booking := range bookings {
		log := logrus.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"email":      booking.User.Email,
		})

		body := utils.StayCompletionMail(
			booking.User.Name,
			booking.Listing.Title,
			booking.Type,
			booking.StartDate.Format(dateFormat),
			booking.EndDate.Format(dateFormat),
			booking.ID,
			booking.Total,
			n.baseURL,
		)
		if err := n.mailer.Send(booking.User.Email, "We Hope You Enjoyed Your Stay!", body); err != nil {
			log.WithError(err).Error("failed to send stay-completion email")
			continue
		}
		if err := n.store.MarkNotified(booking.ID); err != nil {
			log.WithError(err).Error("failed to mark booking notified")
			continue
		}
		log.Info("stay-completion email sent")
	}
}

// acquireLock takes a best-effort distributed lock so overlapping runs
// across instances skip instead of double-sending. Without redis the run
// proceeds unguarded.
func (n *Notifier) acquireLock() (func(), bool) {
	if n.locker == nil {
		return func() {}, true
	}

	ctx := context.Background()
	token := uuid.NewString()
	ok, err := n.locker.SetNX(ctx, notifierLockKey, token, notifierLockTTL).Result()
	if err != nil {
		logrus.WithError(err).Warn("stay-completion lock unavailable, running unguarded")
		return func() {}, true
	}
	if !ok {
		return nil, false
	}

	return func() {
		// Release only if we still own it.
		current, err := n.locker.Get(ctx, notifierLockKey).Result()
		if err == nil && current == token {
			n.locker.Del(ctx, notifierLockKey)
		}
	}, true
}
