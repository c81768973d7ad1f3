package api

import "context"

// VerificationRequiredMessage is the backend's fixed response when an
// account exists but its email has not been confirmed yet.
const VerificationRequiredMessage = "Please verify your email before logging in."

// Profile is the authenticated librarian as reported by the backend.
type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// LoginOutcome is the result of a credential exchange. Exactly one of
// Token or NeedsVerification is meaningful.
type LoginOutcome struct {
	Token             string
	NeedsVerification bool
}

// AuthService performs credential and profile operations.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a bearer token. An unverified account is
// reported via NeedsVerification rather than an error; bad credentials and
// everything else come back as an *Error.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginOutcome, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
		Message     string `json:"message"`
	}
	if err := s.client.post(ctx, "/login", body, &resp); err != nil {
		return LoginOutcome{}, err
	}
	if resp.Message == VerificationRequiredMessage {
		return LoginOutcome{NeedsVerification: true}, nil
	}
	return LoginOutcome{Token: resp.AccessToken}, nil
}

// Profile fetches the current user using the client's token source.
func (s *AuthService) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := s.client.get(ctx, "/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// VerifyEmail submits an emailed verification code and returns the
// backend's confirmation message.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (string, error) {
	body := map[string]string{"email": email, "verification_code": code}
	var resp struct {
		Message string `json:"message"`
	}
	if err := s.client.post(ctx, "/verify-email", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
