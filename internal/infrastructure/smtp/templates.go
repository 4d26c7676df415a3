package smtp

import (
	"fmt"
	"html"
	"time"
)

// OTPEmailHTML builds the verification-code email body.
func OTPEmailHTML(name, email, code string) string {
	greeting := name
	if greeting == "" {
		greeting = email
	}
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #f59e0b; font-size: 28px; margin: 0;">Kapee Shop</h1>
    <p style="color: #666; margin: 5px 0;">Security Verification</p>
  </div>
  <div style="background: linear-gradient(135deg, #f59e0b, #f97316); padding: 30px; border-radius: 10px; color: white; text-align: center; margin-bottom: 30px;">
    <h2 style="margin: 0 0 15px 0; font-size: 24px;">Hello, %s!</h2>
    <p style="margin: 0 0 20px 0; font-size: 16px;">Your verification code is:</p>
    <div style="background: rgba(255,255,255,0.2); padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h1 style="font-size: 36px; letter-spacing: 8px; margin: 0; font-weight: bold;">%s</h1>
    </div>
    <p style="margin: 0; font-size: 14px;">This code expires in 5 minutes</p>
  </div>
  <div style="background: #f9fafb; padding: 25px; border-radius: 8px; border-left: 4px solid #f59e0b;">
    <ul style="color: #6b7280; margin: 0; padding-left: 20px; line-height: 1.8;">
      <li>This code is valid for 5 minutes only</li>
      <li>Do not share this code with anyone</li>
      <li>If you didn't request this code, please contact support</li>
    </ul>
  </div>
</div>`, html.EscapeString(greeting), html.EscapeString(code))
}

// ContactAdminEmailHTML builds the admin notification for a new contact message.
func ContactAdminEmailHTML(name, email, phone, message string) string {
	if phone == "" {
		phone = "N/A"
	}
	return fmt.Sprintf(`
<h3>New Contact Message</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>
<p><strong>Received:</strong> %s</p>`,
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(phone),
		html.EscapeString(message), time.Now().UTC().Format(time.RFC1123))
}

// ContactReplyEmailHTML builds the auto-reply sent back to the customer.
func ContactReplyEmailHTML(name string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #f59e0b; font-size: 28px; margin: 0;">Kapee Shop</h1>
    <p style="color: #666; margin: 5px 0;">Premium E-commerce Experience</p>
  </div>
  <p>Hi %s,</p>
  <p>Thanks for reaching out. We received your message and our team will get
  back to you within one business day.</p>
  <p style="color: #9ca3af; font-size: 12px; border-top: 1px solid #e5e7eb; padding-top: 20px; text-align: center;">
    This is an automated reply; there is no need to respond.
  </p>
</div>`, html.EscapeString(name))
}
