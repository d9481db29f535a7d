package engine

import (
	"context"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// NOTIFICATION - Fire-and-forget boundary contract
// =============================================================================

// Notification is the message handed to the external dispatcher on
// check-out, leave decisions, and settlement. Delivery and display are the
// collaborator's responsibility; a delivery failure never rolls back the
// state or ledger change that triggered it.
type Notification struct {
	Recipient EmployeeID
	Title     string
	Body      string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n Notification) error { return f(ctx, n) }

// =============================================================================
// BEST-EFFORT DISPATCH
// =============================================================================

// BestEffortNotify dispatches and swallows failures, logging them instead.
// Notification is not transactional with the ledger.
func BestEffortNotify(ctx context.Context, notifier Notifier, log logrus.FieldLogger, n Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		if log == nil {
			log = logrus.StandardLogger()
		}
		log.WithFields(logrus.Fields{
			"recipient": n.Recipient,
			"title":     n.Title,
		}).WithError(err).Warn("notification dispatch failed")
	}
}

// LogNotifier writes notifications to the structured log. Used as the
// default dispatcher when no realtime collaborator is wired in.
type LogNotifier struct {
	Log logrus.FieldLogger
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) error {
	log := l.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{
		"recipient": n.Recipient,
		"title":     n.Title,
		"body":      n.Body,
	}).Info("notification")
	return nil
}
