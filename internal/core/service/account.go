package service

import (
	"fmt"
	"time"

	"github.com/animo-meet/backend/internal/auth"
	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/animo-meet/backend/internal/core/port"
)

// AccountService covers registration, login and bearer-token verification
// for the REST surface. The relay core never consults it; a WS channel is
// trusted once the page obtained it.
type AccountService struct {
	users  port.UserRepository
	tokens *auth.TokenIssuer
}

func NewAccountService(users port.UserRepository, tokens *auth.TokenIssuer) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

func (s *AccountService) Register(name, username, password string) error {
	req := auth.RegisterRequest{Name: name, Username: username, Password: password}
	if err := auth.ValidateRegister(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing failed: %w", err)
	}

	return s.users.Create(domain.User{
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
}

// Login checks the credentials and issues a session token. Lookup and
// password failures collapse into one error so usernames can't be probed.
func (s *AccountService) Login(username, password string) (string, domain.Identity, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return "", domain.Identity{}, domain.ErrInvalidCredentials
	}
	if !auth.ComparePassword(password, user.PasswordHash) {
		return "", domain.Identity{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Username, user.Name)
	if err != nil {
		return "", domain.Identity{}, fmt.Errorf("token generation: %w", err)
	}
	return token, domain.Identity{Name: user.Name, Username: user.Username}, nil
}

func (s *AccountService) Verify(token string) (domain.Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{Name: claims.Name, Username: claims.Username}, nil
}
