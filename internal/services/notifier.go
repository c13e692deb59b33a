package services

import (
	"github.com/sirupsen/logrus"
)

// Notifier delivers out-of-band user notices (order decisions, password
// resets). It is constructed and injected rather than kept as package state,
// so tests and secondary binaries can swap it out.
type Notifier interface {
	Notify(userID, title, body string)
}

// LogNotifier writes notices to the structured log. Push/mail delivery is
// handled by the client app and the mail provider respectively; the server
// side only needs a durable trace.
type LogNotifier struct {
	log *logrus.Entry
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logrus.WithField("component", "notifier")}
}

func (n *LogNotifier) Notify(userID, title, body string) {
	n.log.WithFields(logrus.Fields{
		"user_id": userID,
		"title":   title,
	}).Info(body)
}
