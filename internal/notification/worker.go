package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"festival-companion-backend/internal/model"
	"festival-companion-backend/internal/store"
)

// Job is one reminder to fan out: an event about to start, pushed to
// every subscriber of its category.
type Job struct {
	EventID   string
	Category  string
	Title     string
	StartTime string // "HH:MM", for the message body
	StartsAt  time.Time
}

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending reminders.
type WorkerPool struct {
	size    int
	jobs    chan Job
	store   store.Store
	webpush *webpush.Options
	sender  NotificationSender
	now     func() time.Time

	// delivered tracks which (event, endpoint) pairs already got their
	// reminder, keyed "eventID|endpoint", holding the event start for
	// pruning. Events are re-dispatched while upcoming, so this is what
	// keeps each subscriber to one reminder per event.
	mu        sync.Mutex
	delivered map[string]time.Time
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:      size,
		jobs:      make(chan Job, size),
		store:     s,
		webpush:   webpushOptions,
		sender:    &WebPushSender{},
		now:       time.Now,
		delivered: make(map[string]time.Time),
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			log.Printf("Worker %d processing reminder for %s", id, job.EventID)
			wp.sendRemindersForEvent(ctx, job)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(job Job) {
	wp.jobs <- job
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Job {
	return wp.jobs
}

// sendRemindersForEvent fetches the category's subscribers and pushes
// the reminder to each whose lead preference covers the remaining time
// and who has not been served for this event yet. Subscribers still
// outside their preference window are left for a later dispatch of the
// same event.
func (wp *WorkerPool) sendRemindersForEvent(ctx context.Context, job Job) {
	subscriptions, err := wp.store.SubscriptionsForCategory(ctx, job.Category)
	if err != nil {
		log.Printf("Error fetching subscriptions for category %s: %v", job.Category, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	now := wp.now()
	wp.pruneDelivered(now)

	minutesUntil := int(job.StartsAt.Sub(now).Minutes())
	message := fmt.Sprintf("%s commence à %s !", job.Title, job.StartTime)

	sent := 0
	for _, sub := range subscriptions {
		if minutesUntil > sub.LeadMinutes {
			continue
		}
		if !wp.markDelivered(job.EventID, sub.Endpoint, job.StartsAt) {
			continue
		}
		wp.sendNotification(ctx, sub, []byte(message))
		sent++
	}
	log.Printf("Sent %d/%d reminders for %s", sent, len(subscriptions), job.EventID)
}

// markDelivered records one (event, endpoint) delivery. It returns false
// when the pair was already served.
func (wp *WorkerPool) markDelivered(eventID, endpoint string, startsAt time.Time) bool {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	key := eventID + "|" + endpoint
	if _, done := wp.delivered[key]; done {
		return false
	}
	wp.delivered[key] = startsAt
	return true
}

// pruneDelivered drops delivery bookkeeping for events that have already
// started, keeping the map bounded by the upcoming window.
func (wp *WorkerPool) pruneDelivered(now time.Time) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	for key, startsAt := range wp.delivered {
		if startsAt.Before(now) {
			delete(wp.delivered, key)
		}
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
