package httpserver

import (
	"net/http"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/api"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/services"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, api.PingResponse{Status: "ok"})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req api.SignUpRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.accounts.Register(r.Context(), services.RegisterRequest{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		SecondLastName: req.SecondLastName,
		Phone:          req.Phone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, api.SignUpResponse{Message: api.MsgSignedUp, UserID: res.UserID, Email: res.Email})
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	var req api.VerifyRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.accounts.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.TokenResponse{Message: api.MsgVerified, Token: token})
}

func (s *Server) resend(w http.ResponseWriter, r *http.Request) {
	var req api.EmailRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.accounts.ResendCode(r.Context(), req.Email); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.MessageResponse{Message: api.MsgCodeResent})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req api.SignInRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.accounts.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.TokenResponse{Message: api.MsgSignedIn, Token: token})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req api.ChangePasswordRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.accounts.ChangePassword(r.Context(), req.Email, req.Password, req.NewPassword); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.MessageResponse{Message: api.MsgPasswordChanged})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req api.EmailRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.accounts.ResetPassword(r.Context(), req.Email); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.MessageResponse{Message: api.MsgPasswordReset})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.accounts.Profile(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.ProfileResponse{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		SecondLastName: u.SecondLastName,
		Phone:          u.Phone,
		Role:           u.RoleName,
		Status:         string(u.Login.Status),
		CreatedAt:      u.CreatedAt,
	})
}
