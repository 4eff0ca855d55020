package auth

import (
	"errors"
	"fmt"

	"github.com/houseofplants/houseofplants/internal/config"
	"github.com/houseofplants/houseofplants/internal/database"
	"github.com/houseofplants/houseofplants/internal/database/users"
	"github.com/houseofplants/houseofplants/internal/entities"
)

var (
	// ErrUserExists is returned when the username or email is already
	// taken, whether caught by the pre-check or by the database's unique
	// constraint during a concurrent signup.
	ErrUserExists = errors.New("username or email already taken")

	// ErrWrongCredentials covers both an unknown username and a password
	// mismatch so responses cannot be used to enumerate accounts.
	ErrWrongCredentials = errors.New("wrong credentials")
)

// SignupInput carries the validated signup form fields. The password is
// plaintext here and nowhere else.
type SignupInput struct {
	Username  string
	Name      string
	Email     string
	Password  string
	Borough   string
	Longitude *float64
	Latitude  *float64
}

// Service orchestrates the credential hasher, the user store and the
// session store for the signup/login/logout transitions.
type Service struct {
	users  *users.Repository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository, cfg config.Auth) *Service {
	return &Service{users: repo, config: cfg}
}

// Signup creates a user account from already field-validated input. It
// enforces uniqueness twice: a friendly pre-check, and a translation of the
// database's unique-constraint rejection for the concurrent case, so a
// signup race never surfaces as an internal error.
func (s *Service) Signup(input SignupInput) (*entities.User, error) {
	_, err := s.users.GetByUsernameOrEmail(input.Username, input.Email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := HashPassword(input.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Borough:      input.Borough,
		Longitude:    input.Longitude,
		Latitude:     input.Latitude,
	}

	if err := s.users.Create(user); err != nil {
		if database.IsUniqueConstraintViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user. An unknown
// username and a wrong password both come back as ErrWrongCredentials.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrWrongCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrWrongCredentials
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	return user, nil
}
