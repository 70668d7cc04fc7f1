package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Message is a rendered notification ready to hand to a Sender.
type Message struct {
	Subject string
	HTML    string
}

// Templates renders the three notification bodies the reconciler sends.
// Layout and copy follow the product's transactional email style.
type Templates struct {
	clientURL string
	body      *template.Template
}

type bodyData struct {
	Heading    string
	Color      string
	Name       string
	Lines      []string
	ButtonText string
	ButtonURL  string
	Year       int
}

const bodyTemplate = `<html>
  <body style="font-family:'Poppins',Arial,sans-serif;background:#F3F4F6;padding:36px;">
    <div style="max-width:620px;margin:auto;background:white;border-radius:18px;padding:32px;box-shadow:0 4px 14px rgba(0,0,0,0.09);">
      <h2 style="color:{{.Color}};font-size:22px;margin-bottom:8px;">{{.Heading}}</h2>
      <p style="font-size:15px;color:#333;">Hi <strong>{{.Name}}</strong>,</p>
      {{range .Lines}}<p style="color:#555;font-size:14px;line-height:1.7;">{{.}}</p>
      {{end}}<a href="{{.ButtonURL}}" style="display:inline-block;margin-top:22px;padding:12px 22px;background:{{.Color}};color:white;text-decoration:none;border-radius:10px;font-weight:500;">{{.ButtonText}}</a>
      <hr style="margin:28px 0;border:none;border-top:1px solid #E1E4FF;">
      <p style="font-size:12px;color:#777;">UniHaven Team<br/>&copy; {{.Year}} UniHaven</p>
    </div>
  </body>
</html>`

func NewTemplates(clientURL string) *Templates {
	return &Templates{
		clientURL: strings.TrimRight(clientURL, "/"),
		body:      template.Must(template.New("body").Parse(bodyTemplate)),
	}
}

func (t *Templates) render(data bodyData) (string, error) {
	data.Year = time.Now().Year()
	var b strings.Builder
	if err := t.body.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return b.String(), nil
}

// WelcomeBack is sent when a timed suspension is lifted.
func (t *Templates) WelcomeBack(name string) (Message, error) {
	html, err := t.render(bodyData{
		Heading: "Account Reinstated",
		Color:   "#4F46E5",
		Name:    name,
		Lines: []string{
			"Great news! Your UniHaven account has been successfully reinstated. " +
				"You can now log in, search for hostels, post listings, and continue connecting with the student community.",
		},
		ButtonText: "Log In to UniHaven",
		ButtonURL:  t.clientURL + "/login",
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: "Welcome Back! Your UniHaven Account Is Active Again",
		HTML:    html,
	}, nil
}

// AdExpired is sent once when an ad is deactivated at its end date.
func (t *Templates) AdExpired(name, title string) (Message, error) {
	html, err := t.render(bodyData{
		Heading: "Ad Expired",
		Color:   "#DC2626",
		Name:    name,
		Lines: []string{
			fmt.Sprintf("Your ad %q has expired and is no longer visible on UniHaven. "+
				"Renew it now to continue reaching students looking for hostels.", title),
		},
		ButtonText: "Renew Ad",
		ButtonURL:  t.clientURL + "/advertiser/ads",
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: fmt.Sprintf("Your Ad %q Has Expired", title),
		HTML:    html,
	}, nil
}

// AdExpiringSoon is sent at most once per throttle period while the ad
// is in its final window before expiry.
func (t *Templates) AdExpiringSoon(name, title string) (Message, error) {
	html, err := t.render(bodyData{
		Heading: "Ad Expiring Soon",
		Color:   "#F59E0B",
		Name:    name,
		Lines: []string{
			fmt.Sprintf("Your ad %q will expire soon. "+
				"Renew now to keep attracting students to your hostel listing.", title),
		},
		ButtonText: "Renew Ad",
		ButtonURL:  t.clientURL + "/advertiser/ads",
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: fmt.Sprintf("Your Ad %q Expires Soon", title),
		HTML:    html,
	}, nil
}
