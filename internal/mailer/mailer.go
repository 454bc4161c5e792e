package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/rs/zerolog"

	"chantierpro/api/internal/config"
)

type Client struct {
	cfg config.SMTPConfig
	log zerolog.Logger
}

func NewClient(cfg config.SMTPConfig, log zerolog.Logger) *Client {
	return &Client{cfg: cfg, log: log}
}

func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	headers := map[string]string{
		"From":         c.cfg.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
		"Date":         time.Now().Format(time.RFC1123Z),
	}

	var message bytes.Buffer
	for k, v := range headers {
		fmt.Fprintf(&message, "%s: %s\r\n", k, v)
	}
	message.WriteString("\r\n")
	message.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)

	if err := smtp.SendMail(addr, auth, c.cfg.From, []string{to}, message.Bytes()); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	c.log.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}

var (
	resetTemplate = template.Must(template.New("reset").Parse(`
<p>Bonjour,</p>
<p>Une réinitialisation de mot de passe a été demandée pour votre compte.
Ce lien expire dans 5 minutes :</p>
<p><a href="{{.Link}}">Réinitialiser mon mot de passe</a></p>
<p>Si vous n'êtes pas à l'origine de cette demande, ignorez ce message.</p>
`))

	verifyTemplate = template.Must(template.New("verify").Parse(`
<p>Bonjour {{.Name}},</p>
<p>Confirmez votre adresse courriel en cliquant sur le lien ci-dessous :</p>
<p><a href="{{.Link}}">Confirmer mon adresse</a></p>
`))

	contactTemplate = template.Must(template.New("contact").Parse(`
<p>Nouveau message reçu via le formulaire de contact :</p>
<p><strong>{{.Name}}</strong> ({{.Email}}{{if .Phone}}, {{.Phone}}{{end}})</p>
<p><strong>Sujet :</strong> {{.Subject}}</p>
<blockquote>{{.Body}}</blockquote>
`))
)

func RenderPasswordReset(link string) (string, error) {
	return render(resetTemplate, map[string]string{"Link": link})
}

func RenderEmailVerification(name, link string) (string, error) {
	return render(verifyTemplate, map[string]string{"Name": name, "Link": link})
}

func RenderContactNotification(name, email, phone, subject, body string) (string, error) {
	return render(contactTemplate, map[string]string{
		"Name":    name,
		"Email":   email,
		"Phone":   phone,
		"Subject": subject,
		"Body":    body,
	})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}
