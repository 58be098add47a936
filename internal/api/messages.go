package api

import "time"

// Success messages returned alongside results.
const (
	MsgSignedUp        = "User registered successfully. Please check your email for verification code."
	MsgVerified        = "Account verified successfully"
	MsgCodeResent      = "Verification code sent successfully. Please check your email."
	MsgSignedIn        = "Login successfull"
	MsgPasswordChanged = "Password Changed"
	MsgPasswordReset   = "Reset Password"
)

type SignUpRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName,omitempty"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

type SignUpResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Email   string `json:"email"`
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// TokenResponse is returned by verify and sign-in.
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// EmailRequest carries a single address (resend, reset).
type EmailRequest struct {
	Email string `json:"email"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the HTTP error body. Error carries internal detail and is
// left empty in production.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type ProfileRequest struct{}

type ProfileResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	MiddleName     string    `json:"middleName,omitempty"`
	LastName       string    `json:"lastName"`
	SecondLastName string    `json:"secondLastName,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
