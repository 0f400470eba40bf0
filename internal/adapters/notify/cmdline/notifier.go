package cmdline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

var ErrNoCommand = errors.New("no notify command configured")

type runFunc func(ctx context.Context, name string, args ...string) (stderr string, err error)

// Notifier delivers emergency messages by shelling out to an SMS command,
// termux-sms-send by default. The contact's phone number and the message
// body are appended to the configured command.
type Notifier struct {
	command []string
	run     runFunc
}

var _ ports.ContactNotifier = (*Notifier)(nil)

func NewNotifier(command []string) *Notifier {
	return &Notifier{command: command, run: runNotifyCommand}
}

// Notify messages the primary contacts first. Secondary contacts are only
// tried when no primary could be reached. Per-contact failures are
// collected; the error is non-nil whenever at least one send failed, even
// if others succeeded.
func (n *Notifier) Notify(ctx context.Context, profile domain.MedicalProfile, session domain.EmergencySession, fix *domain.LocationFix) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(n.command) == 0 {
		return nil, ErrNoCommand
	}

	message := composeMessage(profile, session, fix)

	notified, failures := n.send(ctx, profile.PrimaryContacts(), message)
	if len(notified) == 0 {
		more, moreFailures := n.send(ctx, profile.SecondaryContacts(), message)
		notified = append(notified, more...)
		failures = append(failures, moreFailures...)
	}

	return notified, errors.Join(failures...)
}

func (n *Notifier) send(ctx context.Context, contacts []domain.EmergencyContact, message string) ([]string, []error) {
	var notified []string
	var failures []error

	for _, contact := range contacts {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		args := append(append([]string{}, n.command[1:]...), contact.Phone, message)
		stderr, err := n.run(ctx, n.command[0], args...)
		if err != nil {
			if stderr != "" {
				err = fmt.Errorf("notify %s: %w: %s", contact.Name, err, stderr)
			} else {
				err = fmt.Errorf("notify %s: %w", contact.Name, err)
			}
			failures = append(failures, err)
			continue
		}

		notified = append(notified, contact.Name)
	}

	return notified, failures
}

func composeMessage(profile domain.MedicalProfile, session domain.EmergencySession, fix *domain.LocationFix) string {
	var b strings.Builder

	b.WriteString("EMERGENCY: ")
	b.WriteString(profile.FullName)
	b.WriteString(" needs help. Session ")
	b.WriteString(session.ID)
	b.WriteString(".")

	if fix != nil {
		b.WriteString(" Location: ")
		b.WriteString(fix.MapsURL())
	} else {
		b.WriteString(" Location unavailable.")
	}

	if profile.BloodType != "" {
		b.WriteString(" Blood type: ")
		b.WriteString(profile.BloodType)
		b.WriteString(".")
	}

	return b.String()
}

func runNotifyCommand(ctx context.Context, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("locate %s command: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}
