package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendOTP sends a verification OTP via email
func SendOTP(to, otp string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your SeaMart verification code")

	body := fmt.Sprintf(`
		<h2>Welcome to SeaMart!</h2>
		<p>Use the following code to verify your email address:</p>
		<h1 style="color: #0277bd; font-size: 32px; letter-spacing: 5px;">%s</h1>
		<p>This code expires in 15 minutes.</p>
		<p>If you didn't create a SeaMart account, you can ignore this email.</p>
	`, otp)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendOrderConfirmation emails a short order confirmation to the customer
func SendOrderConfirmation(to string, orderID uint, total int64) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("SeaMart order #%d confirmed", orderID))

	body := fmt.Sprintf(`
		<h2>Thanks for your order!</h2>
		<p>Order #%d has been placed. Total: %s</p>
		<p>We'll pack your catch fresh and keep you posted on delivery.</p>
	`, orderID, FormatAmount(total))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
