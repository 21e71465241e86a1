package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"gamelearn/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: GameLearn <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.footer { padding: 20px 30px; text-align: center; color: #9E9E9E; font-size: 12px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">GameLearn — learn by playing.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendModuleCertificateEmail congratulates a user on finishing a module
func SendModuleCertificateEmail(email, name, moduleTitle, certificateID string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You completed every section of <strong>%s</strong>. Well done!</p>
		<p>Your certificate number is <strong>%s</strong>. It is listed on your rewards page.</p>`,
		name, moduleTitle, certificateID)

	return SendEmail([]string{email}, "Module completed: "+moduleTitle, getEmailTemplate("Congratulations!", body))
}

// SendStreakReminderEmail nudges a user whose day streak is about to break
func SendStreakReminderEmail(email, name string, streak int) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your %d-day learning streak ends at midnight. Complete any section today to keep it going!</p>`,
		name, streak)

	return SendEmail([]string{email}, "Don't lose your streak!", getEmailTemplate("Keep it up!", body))
}
