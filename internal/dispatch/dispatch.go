package dispatch

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/Shadab909/couchbase-cluster-report-automation/config"
)

// Shift is the coarse time-of-day classification driving recipient
// selection. It reads the execution environment's local clock, not a target
// timezone.
type Shift string

const (
	OffShift Shift = "OffShift"
	OnShift  Shift = "OnShift"
)

// ClassifyShift maps a local hour (0-23) to its shift window. Hours in
// [7,16) fall in the on-shift window; everything else is off-shift.
func ClassifyShift(hour int) Shift {
	if hour >= 7 && hour < 16 {
		return OnShift
	}
	return OffShift
}

// RecipientSet is one independent delivery target.
type RecipientSet struct {
	Name string
	To   []string
	Cc   []string
}

// SelectRecipients returns the delivery targets for a shift: off-shift gets
// the primary stakeholders in a single delivery, on-shift gets leadership
// and operations as two independent deliveries.
func SelectRecipients(shift Shift) []RecipientSet {
	if shift == OnShift {
		return []RecipientSet{
			{
				Name: "leadership",
				To:   splitAddrs(config.Env.LeadershipTo),
				Cc:   splitAddrs(config.Env.LeadershipCc),
			},
			{
				Name: "operations",
				To:   splitAddrs(config.Env.OperationsTo),
				Cc:   splitAddrs(config.Env.OperationsCc),
			},
		}
	}
	return []RecipientSet{
		{
			Name: "primary",
			To:   splitAddrs(config.Env.PrimaryTo),
			Cc:   splitAddrs(config.Env.PrimaryCc),
		},
	}
}

func splitAddrs(list string) []string {
	var addrs []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

type Mailer interface {
	Send(subject, htmlBody string, rs RecipientSet) error
}

// SMTPMailer sends the report as a text/html message through the configured
// SMTP relay. One attempt, no retry.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host:     config.Env.SmtpHost,
		port:     config.Env.SmtpPort,
		username: config.Env.SmtpUsername,
		password: config.Env.SmtpPassword,
		from:     config.Env.MailFrom,
	}
}

func (m *SMTPMailer) Send(subject, htmlBody string, rs RecipientSet) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", rs.To...)
	if len(rs.Cc) > 0 {
		msg.SetHeader("Cc", rs.Cc...)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}

// Deliver sends the report to every recipient set. A failed delivery is
// logged and counted but does not stop the remaining deliveries; sets with
// no To addresses are skipped without counting as failures. A non-nil
// return means at least one delivery failed.
func Deliver(mailer Mailer, subject, htmlBody string, sets []RecipientSet) error {
	failed := 0
	for _, rs := range sets {
		if len(rs.To) == 0 {
			log.Printf("No recipients configured for %s, skipping", rs.Name)
			continue
		}
		if err := mailer.Send(subject, htmlBody, rs); err != nil {
			log.Printf("Report delivery to %s failed: %v", rs.Name, err)
			failed++
			continue
		}
		log.Printf("Report delivered to %s", rs.Name)
	}
	if failed > 0 {
		return fmt.Errorf("%d report delivery(ies) failed", failed)
	}
	return nil
}
