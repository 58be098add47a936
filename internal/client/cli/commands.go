package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/api"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/client/client"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) (string, error) {
	return getPassword(a.out, prompt)
}

func (a *App) SignUp(ctx context.Context) error {
	var req api.SignUpRequest
	var err error

	fields := []struct {
		prompt string
		dst    *string
		secret bool
	}{
		{"Enter email", &req.Email, false},
		{"Enter password", &req.Password, true},
		{"Enter first name", &req.FirstName, false},
		{"Enter middle name (optional)", &req.MiddleName, false},
		{"Enter last name", &req.LastName, false},
		{"Enter second last name (optional)", &req.SecondLastName, false},
		{"Enter phone (optional)", &req.Phone, false},
	}
	for _, f := range fields {
		if f.secret {
			*f.dst, err = a.askPassword(f.prompt)
		} else {
			*f.dst, err = a.ask(f.prompt)
		}
		if err != nil {
			return err
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.SignUp(ctx, &req)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, resp.Message)
	fmt.Fprintf(a.out, "User id: %s\n", resp.UserID)
	return nil
}

func (a *App) Verify(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	code, err := a.ask("Enter verification code")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Verify(ctx, email, code); err != nil {
		return err
	}

	a.email = email
	fmt.Fprintln(a.out, api.MsgVerified)
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.ResendCode(ctx, email); err != nil {
		return err
	}

	fmt.Fprintln(a.out, api.MsgCodeResent)
	return nil
}

func (a *App) SignIn(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.SignIn(ctx, email, password); err != nil {
		return err
	}

	a.email = email
	fmt.Fprintln(a.out, api.MsgSignedIn)
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	current, err := a.askPassword("Enter current password")
	if err != nil {
		return err
	}
	next, err := a.askPassword("Enter new password")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Repeat new password")
	if err != nil {
		return err
	}
	if next != confirm {
		return errPasswordsDiffer
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.ChangePassword(ctx, email, current, next); err != nil {
		return err
	}

	fmt.Fprintln(a.out, api.MsgPasswordChanged)
	return nil
}

func (a *App) ResetPassword(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.ResetPassword(ctx, email); err != nil {
		return err
	}

	fmt.Fprintln(a.out, api.MsgPasswordReset)
	fmt.Fprintln(a.out, "A temporary password was sent to", email)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrInvalidToken) {
			a.client.SignOut()
			a.email = ""
		}
		return err
	}

	fmt.Fprintf(a.out, "ID:       %s\n", p.ID)
	fmt.Fprintf(a.out, "Email:    %s\n", p.Email)
	fmt.Fprintf(a.out, "Name:     %s\n", fullName(p))
	if p.Phone != "" {
		fmt.Fprintf(a.out, "Phone:    %s\n", p.Phone)
	}
	fmt.Fprintf(a.out, "Role:     %s\n", p.Role)
	fmt.Fprintf(a.out, "Status:   %s\n", p.Status)
	fmt.Fprintf(a.out, "Created:  %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func (a *App) SignOut(context.Context) error {
	a.client.SignOut()
	a.email = ""
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

var errPasswordsDiffer = errors.New("passwords do not match")

func fullName(p *api.ProfileResponse) string {
	name := p.FirstName
	for _, part := range []string{p.MiddleName, p.LastName, p.SecondLastName} {
		if part != "" {
			name += " " + part
		}
	}
	return name
}

// describe renders err for the terminal: server failures by their stable
// message, local ones by their text.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrNotSignedIn):
		return "sign in first"
	case errors.Is(err, errPasswordsDiffer), errors.Is(err, context.DeadlineExceeded):
		return err.Error()
	}
	for _, k := range common.Kinds {
		if errors.Is(err, k) {
			return common.Message(k)
		}
	}
	return err.Error()
}
