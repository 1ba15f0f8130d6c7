package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2c3e50;">Welcome, {{.Name}}!</h2>
    <p>Your employee account has been created. Use these credentials to sign in:</p>
    <table style="border-collapse: collapse; margin: 16px 0;">
      <tr><td style="padding: 6px 12px;"><strong>Document</strong></td><td style="padding: 6px 12px;">{{.Documento}}</td></tr>
      <tr><td style="padding: 6px 12px;"><strong>Password</strong></td><td style="padding: 6px 12px;">{{.Password}}</td></tr>
    </table>
    <p><a href="{{.LoginURL}}" style="color: #2980b9;">Sign in</a> and change your password after the first login.</p>
    <p style="font-size: 12px; color: #999;">This message was sent automatically, please do not reply.</p>
  </div>
</body>
</html>`))

// WelcomeData fills the welcome template
type WelcomeData struct {
	Name      string
	Documento int64
	Password  string
	LoginURL  string
}

// WelcomeMessage renders the credentials email for a new employee
func WelcomeMessage(to string, data WelcomeData) (*Message, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render welcome email: %w", err)
	}

	return &Message{
		To:      to,
		ToName:  data.Name,
		Subject: "Welcome - your employee account",
		HTML:    buf.String(),
	}, nil
}
