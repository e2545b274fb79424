package handlers

import (
	"net/http"
)

// RegisterHandler godoc
// @Summary Register new user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 201 {object} AuthResult
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "User exists"
// @Router /api/auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	creds := readBody[CredentialsRequest](w, r)

	result, err := s.Auth.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.Logger.Info(r.Context(), "user registered", "username", result.Username)
	s.respond(w, r, http.StatusCreated, AuthResult{Token: result.Token, Username: result.Username})
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} AuthResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	creds := readBody[CredentialsRequest](w, r)

	result, err := s.Auth.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, AuthResult{Token: result.Token, Username: result.Username})
}
