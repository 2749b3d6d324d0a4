package client

import (
	"context"
	"net/http"
)

type AuthService struct {
	client *Client
}

func (c *Client) Auth() *AuthService {
	return &AuthService{client: c}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success-path body of POST /auth/login. Either Token is
// set (session committed) or TwoFactorRequired is true and TwoFactorToken
// carries the transient challenge token.
type LoginResponse struct {
	Token             string `json:"token,omitempty"`
	TwoFactorRequired bool   `json:"2fa_required,omitempty"`
	TwoFactorToken    string `json:"2fa_token,omitempty"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	req := LoginRequest{Email: email, Password: password}
	if err := s.client.do(ctx, http.MethodPost, "auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type twoFactorAuthRequest struct {
	TwoFactorToken string `json:"2fa_token"`
	Code           string `json:"code"`
}

func (s *AuthService) TwoFactorAuthenticate(ctx context.Context, twoFactorToken, code string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	req := twoFactorAuthRequest{TwoFactorToken: twoFactorToken, Code: code}
	if err := s.client.do(ctx, http.MethodPost, "auth/2fa/authenticate", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

type TwoFactorSetupResponse struct {
	Secret       string `json:"secret"`
	QRCodeBase64 string `json:"qr_code_base64"`
}

func (s *AuthService) TwoFactorSetup(ctx context.Context) (*TwoFactorSetupResponse, error) {
	var resp TwoFactorSetupResponse
	if err := s.client.do(ctx, http.MethodPost, "auth/2fa/setup", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type twoFactorVerifyRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}

func (s *AuthService) TwoFactorVerify(ctx context.Context, secret, code string) ([]string, error) {
	var resp struct {
		RecoveryCodes []string `json:"recovery_codes"`
	}
	req := twoFactorVerifyRequest{Secret: secret, Code: code}
	if err := s.client.do(ctx, http.MethodPost, "auth/2fa/verify", req, &resp); err != nil {
		return nil, err
	}
	return resp.RecoveryCodes, nil
}

func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	req := struct {
		Email string `json:"email"`
	}{Email: email}
	return s.client.do(ctx, http.MethodPost, "auth/resend-verification", req, nil)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	return s.client.do(ctx, http.MethodPost, "auth/register", req, nil)
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.do(ctx, http.MethodPost, "auth/logout", nil, nil)
}
