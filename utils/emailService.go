package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a single HTML email through Sendgrid. Callers run it in a
// goroutine; a failed send is logged and otherwise dropped.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("Sendgrid not configured; dropping email %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.SiteName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the site's HTML shell
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2E86DE; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; %s. All rights reserved.
			</div>
		</div>
	</body>
	</html>`, config.AppConfig.SiteName, title, bodyContent, config.AppConfig.SiteName)
}

// SendEnrollmentApprovedEmail notifies the learner their enrollment was approved
func SendEnrollmentApprovedEmail(toName, toEmail, courseTitle, courseSlug string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your enrollment in <strong>%s</strong> has been approved. You can start learning right away.</p>
		<a class="btn" href="%s/courses/%s">Go to course</a>`,
		toName, courseTitle, config.AppConfig.SiteURL, courseSlug)

	if err := SendEmail(toName, toEmail, "Enrollment approved: "+courseTitle, getEmailTemplate("Enrollment Approved", body)); err != nil {
		log.Printf("Error sending enrollment approval email: %v", err)
	}
}

// SendEnrollmentRejectedEmail notifies the learner their request was declined
func SendEnrollmentRejectedEmail(toName, toEmail, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Unfortunately your enrollment request for <strong>%s</strong> was not approved.
		Please contact support if you believe this is a mistake.</p>`,
		toName, courseTitle)

	if err := SendEmail(toName, toEmail, "Enrollment update: "+courseTitle, getEmailTemplate("Enrollment Update", body)); err != nil {
		log.Printf("Error sending enrollment rejection email: %v", err)
	}
}
