package utils

import (
	"academy/config"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Lettings Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email %q: %v", subject, err)
		return err
	}
	return nil
}

// HTML wrapper shared by every outbound mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #244855; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #244855; line-height: 1.6; }
			.content h2 { color: #244855; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LETTINGS ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Lettings Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to Lettings Academy! Your account has been created.</p>
		<p>Module 1 is free to unlock from your dashboard. Access to the remaining
		modules can be requested at any time and is reviewed by our team.</p>
	`, name)
	SendEmail([]string{email}, "Welcome to Lettings Academy", getEmailTemplate("Welcome!", body))
}

// 2. Access request raised -> notify admin
func SendAccessRequestEmail(studentName, studentEmail, phone string, moduleIDs []int, message string) {
	if config.AppConfig.AdminEmail == "" {
		return
	}

	ids := make([]string, 0, len(moduleIDs))
	for _, id := range moduleIDs {
		ids = append(ids, fmt.Sprintf("%d", id))
	}

	body := fmt.Sprintf(`
		<p>A student has requested module access.</p>
		<div class="info-box">
			<p><b>Name:</b> %s<br>
			<b>Email:</b> %s<br>
			<b>Phone:</b> %s<br>
			<b>Modules:</b> %s</p>
		</div>
		<p>%s</p>
	`, studentName, studentEmail, phone, strings.Join(ids, ", "), message)
	SendEmail([]string{config.AppConfig.AdminEmail}, "New module access request", getEmailTemplate("Access Request", body))
}

// 3. Admin decision -> notify student
func SendDecisionEmail(email, name, moduleName, status, comment string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your access request for <b>%s</b> has been <b>%s</b>.</p>
	`, name, moduleName, status)
	if comment != "" {
		body += fmt.Sprintf(`<div class="info-box"><p>%s</p></div>`, comment)
	}
	SendEmail([]string{email}, "Update on your module access request", getEmailTemplate("Access Request Update", body))
}

// 4. Student message -> notify admin
func SendStudentMessageEmail(studentName, studentEmail, message string) {
	if config.AppConfig.AdminEmail == "" {
		return
	}
	body := fmt.Sprintf(`
		<p><b>%s</b> (%s) sent a message:</p>
		<div class="info-box"><p>%s</p></div>
	`, studentName, studentEmail, message)
	SendEmail([]string{config.AppConfig.AdminEmail}, "New student message", getEmailTemplate("Student Message", body))
}

// 5. Daily digest of outstanding reviews
func SendPendingDigestEmail(pendingRequests, pendingAccounts int64) {
	if config.AppConfig.AdminEmail == "" {
		return
	}
	body := fmt.Sprintf(`
		<p>Items waiting for review:</p>
		<div class="info-box">
			<p><b>Module access requests:</b> %d<br>
			<b>Unapproved student accounts:</b> %d</p>
		</div>
	`, pendingRequests, pendingAccounts)
	SendEmail([]string{config.AppConfig.AdminEmail}, "Daily review digest", getEmailTemplate("Pending Reviews", body))
}
