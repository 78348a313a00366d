// Package notify turns booking events into passenger notifications.
package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Domenick1991/skyline/internal/events"
)

type Sender struct {
	out io.Writer
}

func NewSender() *Sender {
	return &Sender{out: os.Stdout}
}

// NewSenderTo writes rendered notifications to w instead of stdout.
func NewSenderTo(w io.Writer) *Sender {
	return &Sender{out: w}
}

func (s *Sender) Send(ctx context.Context, event events.BookingEvent) error {
	if event.Email == "" {
		log.Printf("notify: event %s for %s has no recipient, skipping", event.ID, event.Reference)
		return nil
	}
	_, err := fmt.Fprintf(s.out, "send email to %s: %s\n", event.Email, Subject(event))
	return err
}

// Subject renders the one-line summary used as the email subject.
func Subject(event events.BookingEvent) string {
	switch event.Type {
	case events.TypeBookingCreated:
		return fmt.Sprintf("Booking %s confirmed for flight %s departing %s", event.Reference, event.FlightNumber, event.Departs)
	case events.TypeBookingCheckedIn:
		return fmt.Sprintf("You are checked in for flight %s (booking %s)", event.FlightNumber, event.Reference)
	default:
		return fmt.Sprintf("Update on booking %s: %s", event.Reference, event.Status)
	}
}
