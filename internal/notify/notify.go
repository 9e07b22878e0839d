// Package notify sends the optional review-outcome email. The mailer is nil
// unless SMTP is configured, and a nil mailer is safe to call: sending a
// notice is best-effort and never fails the mutation that triggered it.
package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/aalopez23/county-hr-dashboard/internal/timeoff"
)

// Config carries the SMTP settings. An empty Host disables the mailer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer delivers notices over SMTP.
type Mailer struct {
	cfg Config
}

// New returns a Mailer, or nil when no SMTP host is configured.
func New(cfg Config) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Mailer{cfg: cfg}
}

// ReviewNotice emails the employee that their request was approved or denied.
func (m *Mailer) ReviewNotice(to string, req timeoff.Request) error {
	if m == nil || to == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Time off request %s", req.Status))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour %s request for %s through %s (%d day(s)) was %s by %s on %s.\n",
		req.EmployeeName, req.Type, req.StartDate, req.EndDate, req.Days,
		req.Status, req.ReviewedBy, req.ReviewedDate,
	))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return d.DialAndSend(msg)
}
