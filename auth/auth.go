package auth

import (
	"context"
	"fmt"

	"beyt_client/api"
	"beyt_client/models"
)

// Service wraps the backend's auth endpoints. Successful logins write the
// returned token into the session before the call returns.
type Service struct {
	client  *api.Client
	session *Session
}

func NewService(client *api.Client, session *Session) *Service {
	return &Service{client: client, session: session}
}

// CheckUserExists tells the login form whether to show the password or the
// signup fields for an email.
func (s *Service) CheckUserExists(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, &api.ValidationError{Field: "email", Reason: "required"}
	}

	var result struct {
		Exists bool `json:"exists"`
	}
	err := s.client.Get(ctx, api.RouteCheckUserExists, map[string]string{"email": email}, &result)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return result.Exists, nil
}

func (s *Service) LoginWithEmail(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, &api.ValidationError{Field: "credentials", Reason: "email and password required"}
	}

	var resp models.TokenResponse
	err := s.client.Post(ctx, api.RouteLogin, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.session.Login(resp.Token); err != nil {
		return nil, err
	}
	return s.CurrentUser(ctx)
}

func (s *Service) Signup(ctx context.Context, name, email, phoneNumber, password string) (*models.User, error) {
	var resp models.TokenResponse
	err := s.client.Post(ctx, api.RouteSignup, map[string]string{
		"name":        name,
		"email":       email,
		"phoneNumber": phoneNumber,
		"password":    password,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	if err := s.session.Login(resp.Token); err != nil {
		return nil, err
	}
	return s.CurrentUser(ctx)
}

// CurrentUser resolves the logged-in user from the stored token.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.Get(ctx, api.RouteLoggedUser, nil, &user); err != nil {
		return nil, fmt.Errorf("get logged user: %w", err)
	}
	return &user, nil
}

// SendOTP starts the password reset flow.
func (s *Service) SendOTP(ctx context.Context, email string) error {
	err := s.client.Post(ctx, api.RouteSendOTP, map[string]string{"email": email}, nil)
	if err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

func (s *Service) VerifyOTP(ctx context.Context, email, otp string) error {
	err := s.client.Post(ctx, api.RouteVerifyOTP, map[string]string{
		"email": email,
		"otp":   otp,
	}, nil)
	if err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	return nil
}

// ResetPassword completes the OTP flow and logs the user in with the fresh
// token the server returns.
func (s *Service) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	var resp models.TokenResponse
	err := s.client.Post(ctx, api.RouteResetPassword, map[string]string{
		"email":    email,
		"otp":      otp,
		"password": newPassword,
	}, &resp)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if resp.Token != "" {
		return s.session.Login(resp.Token)
	}
	return nil
}
