package incident

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/avomont/lifeline/internal/application"
	"github.com/avomont/lifeline/internal/domain"
)

type RenderOptions struct {
	Now       time.Time
	AuditTail int
}

const defaultAuditTail = 10

func renderView(overview application.Overview, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Lifeline Emergency Status"),
	}

	if overview.Session == nil {
		lines = append(lines, s.empty.Render("No emergency in progress."))
	} else {
		lines = append(lines, s.section.Render(renderSession(*overview.Session, opts, s)))
	}

	if overview.Profile != nil {
		lines = append(lines, s.section.Render(renderProfile(*overview.Profile, s)))
	} else {
		lines = append(lines, s.section.Render(s.warning.Render("No medical profile on file.")))
	}

	if len(overview.Audit) > 0 {
		lines = append(lines, s.section.Render(renderAudit(overview.Audit, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(session domain.EmergencySession, opts RenderOptions, s styles) string {
	parts := []string{
		statusStyle(session.Status, s).Render("Status: " + statusLabel(session.Status)),
		s.detail.Render("Session: " + session.ID),
		s.detail.Render("Started: " + formatStarted(session.StartTime, opts.Now)),
	}

	if session.Location != nil {
		parts = append(parts, s.detail.Render(fmt.Sprintf("Location: %s (accuracy %.0fm)", session.Location.MapsURL(), session.Location.Accuracy)))
	} else {
		parts = append(parts, s.empty.Render("Location: not captured"))
	}

	if len(session.ContactsNotified) > 0 {
		parts = append(parts, s.detail.Render("Contacts notified: "+strings.Join(session.ContactsNotified, ", ")))
	} else if session.Status != domain.StatusConfirmation {
		parts = append(parts, s.warning.Render("Contacts notified: none"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderProfile(profile domain.MedicalProfile, s styles) string {
	parts := []string{
		s.header.Render("Medical profile"),
		s.detail.Render("Name: " + profile.FullName),
	}

	if profile.BloodType != "" {
		parts = append(parts, s.detail.Render("Blood type: "+profile.BloodType))
	}
	if len(profile.Conditions) > 0 {
		parts = append(parts, s.detail.Render("Conditions: "+strings.Join(profile.Conditions, ", ")))
	}
	if len(profile.Allergies) > 0 {
		parts = append(parts, s.detail.Render("Allergies: "+strings.Join(profile.Allergies, ", ")))
	}

	primaries := profile.PrimaryContacts()
	if len(primaries) == 0 {
		parts = append(parts, s.warning.Render("No primary emergency contact."))
	} else {
		names := make([]string, 0, len(primaries))
		for _, contact := range primaries {
			names = append(names, contact.Name)
		}
		parts = append(parts, s.detail.Render("Primary contacts: "+strings.Join(names, ", ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderAudit(entries []domain.AuditEntry, opts RenderOptions, s styles) string {
	tail := opts.AuditTail
	if tail <= 0 {
		tail = defaultAuditTail
	}
	if len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}

	parts := []string{s.header.Render(fmt.Sprintf("Activity (last %d)", len(entries)))}
	for _, entry := range entries {
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.auditTime.Render(entry.Timestamp.Format("02 Jan 15:04:05")),
			" ",
			s.auditTag.Render(string(entry.Action)),
		)
		if entry.Details != "" {
			line += " " + s.detail.Render(entry.Details)
		}
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func statusStyle(status domain.EmergencyStatus, s styles) lipgloss.Style {
	switch status {
	case domain.StatusCompleted:
		return s.resolved
	case domain.StatusCancelled:
		return s.cancelled
	default:
		return s.active
	}
}

func statusLabel(status domain.EmergencyStatus) string {
	switch status {
	case domain.StatusDetection:
		return "DETECTED"
	case domain.StatusConfirmation:
		return "AWAITING CONFIRMATION"
	case domain.StatusInProgress:
		return "EMERGENCY IN PROGRESS"
	case domain.StatusFollowUp:
		return "FOLLOW-UP"
	case domain.StatusCompleted:
		return "RESOLVED"
	case domain.StatusCancelled:
		return "CANCELLED"
	default:
		return strings.ToUpper(string(status))
	}
}

func formatStarted(start, now time.Time) string {
	if start.IsZero() {
		return "unknown"
	}
	if now.IsZero() || now.Before(start) {
		return start.Format("15:04 on 02 Jan")
	}

	elapsed := now.Sub(start)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		minutes := int(math.Round(elapsed.Minutes()))
		return fmt.Sprintf("%d min ago (%s)", minutes, start.Format("15:04"))
	default:
		hours := int(math.Round(elapsed.Hours()))
		return fmt.Sprintf("%d h ago (%s)", hours, start.Format("15:04 on 02 Jan"))
	}
}
