package client

import (
	"context"
	"net/http"
	"time"
)

type UserService struct {
	client *Client
}

func (c *Client) Users() *UserService {
	return &UserService{client: c}
}

type User struct {
	Username         string     `json:"username"`
	Email            string     `json:"email,omitempty"`
	EmailVerifiedAt  *time.Time `json:"email_verified_at,omitempty"`
	Tier             string     `json:"tier"`
	TwoFactorEnabled bool       `json:"two_factor_enabled"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	LastLoginIP      string     `json:"last_login_ip,omitempty"`
}

type Profile struct {
	User         User  `json:"user"`
	ClipCount    int64 `json:"clip_count"`
	StorageUsed  int64 `json:"storage_used"`
	StorageLimit int64 `json:"storage_limit"`
}

func (s *UserService) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := s.client.do(ctx, http.MethodGet, "me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
