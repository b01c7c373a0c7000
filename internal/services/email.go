package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(host string, port int, user, pass string) *EmailService {
	return &EmailService{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

// SendVerificationEmail delivers the signup/resend OTP to the given address.
func (s *EmailService) SendVerificationEmail(email, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify Your Email")
	m.SetBody("text/html", fmt.Sprintf("<p>Your OTP is <b>%s</b>. It is valid for 10 minutes.</p>", otp))

	return s.dialer.DialAndSend(m)
}
