package notify

import (
	"bytes"
	"html/template"
	"time"
)

const (
	verificationSubject = "Código de verificación para tu cuenta"
	resetSubject        = "Restablecer contraseña para tu cuenta"
)

const emailTemplates = `
{{define "verification"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e9e9e9; border-radius: 5px;">
<h2 style="color: #333; text-align: center;">Verificación de cuenta</h2>
<p>Hola {{.Name}},</p>
<p>Gracias por registrarte. Para completar tu registro, por favor utiliza el siguiente código de verificación:</p>
<div style="background-color: #f5f5f5; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">{{.Code}}</div>
<p>Este código expirará en {{.Minutes}} minutos.</p>
<p>Si no has solicitado este código, por favor ignora este correo.</p>
<p>Saludos,<br>El equipo de soporte</p>
</div>{{end}}
{{define "temporary_password"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e9e9e9; border-radius: 5px;">
<h2 style="color: #333; text-align: center;">Restablecer contraseña</h2>
<p>Hola {{.Name}},</p>
<p>Aqui tienes tu nueva contraseña:</p>
<div style="background-color: #f5f5f5; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">{{.Password}}</div>
<p>Saludos,<br>El equipo de soporte</p>
</div>{{end}}
`

var templates = template.Must(template.New("emails").Parse(emailTemplates))

type verificationData struct {
	Name    string
	Code    string
	Minutes int
}

type passwordData struct {
	Name     string
	Password string
}

func renderVerification(name, code string, ttl time.Duration) (string, error) {
	return render("verification", verificationData{Name: name, Code: code, Minutes: int(ttl.Minutes())})
}

func renderTemporaryPassword(name, password string) (string, error) {
	return render("temporary_password", passwordData{Name: name, Password: password})
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
