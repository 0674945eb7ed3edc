package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
	"campus-transport-backend/internal/security"
)

// AuthConfig tunes the local auth mode. KuduSeedMax bounds the
// pseudo-random starting balance granted at signup.
type AuthConfig struct {
	KuduSeedMax int64
}

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	refSvc   ReferenceService
	seedMax  int64
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, refSvc ReferenceService, cfg AuthConfig) AuthService {
	seedMax := cfg.KuduSeedMax
	if seedMax <= 0 {
		seedMax = 100
	}
	return &authService{userRepo: userRepo, tokens: tokens, refSvc: refSvc, seedMax: seedMax}
}

func (s *authService) Signup(ctx context.Context, firstName, lastName, email, password string) (*domain.UserAccount, string, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.Errorf(domain.CodeConflict, "an account already exists for %s", email)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.UserAccount{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		Kudu:         rand.Int63n(s.seedMax + 1),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	logger.Info("User signed up", "user", user.ID, "kudu_seed", user.Kudu)

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.UserAccount, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthenticated
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrUnauthenticated
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.refSvc.InvalidateCache(ctx)
}
