package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/ctxutil"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

// SessionNotifier receives login/logout events. The directory store
// registers itself here so a session change triggers a snapshot reload.
type SessionNotifier interface {
	NotifySessionChange(profileID uuid.UUID)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
	SetSessionNotifier(n SessionNotifier)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	identityRepo repos.IdentityRepo
	profileRepo  repos.ProfileRepo
	tokenRepo    repos.SessionTokenRepo
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
	notifier     SessionNotifier
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	identityRepo repos.IdentityRepo,
	profileRepo repos.ProfileRepo,
	tokenRepo repos.SessionTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		tokenRepo:    tokenRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

func (as *authService) SetSessionNotifier(n SessionNotifier) {
	as.notifier = n
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", "", fmt.Errorf("email is required to login")
	}
	if password == "" {
		return "", "", fmt.Errorf("password is required to login")
	}

	identities, err := as.identityRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("error retrieving identity by email: %w", err)
	}
	if len(identities) == 0 {
		return "", "", fmt.Errorf("invalid email or password")
	}
	identity := identities[0]
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return "", "", fmt.Errorf("invalid email or password")
	}

	profiles, err := as.profileRepo.GetByIDs(ctx, nil, []uuid.UUID{identity.ID})
	if err != nil {
		return "", "", fmt.Errorf("error retrieving profile: %w", err)
	}
	if len(profiles) == 0 || !profiles[0].Active {
		return "", "", fmt.Errorf("no active profile for identity")
	}
	profile := profiles[0]

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One live session per profile: stale rows are swept here.
		existing, err := as.tokenRepo.GetByProfileIDs(ctx, tx, []uuid.UUID{profile.ID})
		if err != nil {
			return fmt.Errorf("failed to check session tokens: %w", err)
		}
		var staleIDs []uuid.UUID
		for _, st := range existing {
			if st.ExpiresAt.Before(time.Now()) {
				staleIDs = append(staleIDs, st.ID)
			}
		}
		if err := as.tokenRepo.DeleteByIDs(ctx, tx, staleIDs); err != nil {
			return fmt.Errorf("failed to delete expired session tokens: %w", err)
		}

		tok, err := as.generateAccessToken(profile)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		row := domain.SessionToken{
			ID:           uuid.New(),
			ProfileID:    profile.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.tokenRepo.Create(ctx, tx, []*domain.SessionToken{&row}); err != nil {
			return fmt.Errorf("create session token: %w", err)
		}
		return nil
	}); err != nil {
		return "", "", err
	}

	if as.notifier != nil {
		as.notifier.NotifySessionChange(profile.ID)
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", fmt.Errorf("refresh token is required")
	}
	row, err := as.tokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if row == nil || row.ExpiresAt.Before(time.Now()) {
		return "", "", fmt.Errorf("refresh token expired or unknown")
	}
	profiles, err := as.profileRepo.GetByIDs(ctx, nil, []uuid.UUID{row.ProfileID})
	if err != nil {
		return "", "", fmt.Errorf("error retrieving profile: %w", err)
	}
	if len(profiles) == 0 || !profiles[0].Active {
		return "", "", fmt.Errorf("no active profile for session")
	}
	profile := profiles[0]

	var accessToken, newRefresh string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{row.ID}); err != nil {
			return fmt.Errorf("rotate session token: %w", err)
		}
		tok, err := as.generateAccessToken(profile)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		newRefresh = uuid.New().String()
		replacement := domain.SessionToken{
			ID:           uuid.New(),
			ProfileID:    profile.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefresh,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.tokenRepo.Create(ctx, tx, []*domain.SessionToken{&replacement}); err != nil {
			return fmt.Errorf("create session token: %w", err)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, newRefresh, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.ProfileID == uuid.Nil {
		return fmt.Errorf("no session in context")
	}
	if err := as.tokenRepo.DeleteByProfileIDs(ctx, nil, []uuid.UUID{rd.ProfileID}); err != nil {
		return fmt.Errorf("delete session tokens: %w", err)
	}
	if as.notifier != nil {
		as.notifier.NotifySessionChange(rd.ProfileID)
	}
	return nil
}

// SetContextFromToken validates the access token and attaches the caller's
// profile id and role to the context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	profileID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}
	roleStr, _ := claims["role"].(string)
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return ctx, fmt.Errorf("invalid token role")
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		rd = &ctxutil.RequestData{}
		ctx = ctxutil.WithRequestData(ctx, rd)
	}
	rd.TokenString = tokenString
	rd.ProfileID = profileID
	rd.Role = role
	return ctx, nil
}

func (as *authService) generateAccessToken(profile *domain.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":  profile.ID.String(),
		"role": string(profile.Role),
		"exp":  time.Now().Add(as.accessTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
