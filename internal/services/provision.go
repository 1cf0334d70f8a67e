package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type ProvisionInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     domain.Role
	ZoneID   *uuid.UUID
	AreaID   *uuid.UUID
	CellID   *uuid.UUID
}

type ProvisionResult struct {
	UserID   uuid.UUID
	Password string
	Updated  bool
}

// ProvisionService creates (or repairs) an authentication identity together
// with its matching profile row. Repairing means: the email already has an
// identity, so its password and metadata are updated in place and the
// profile row is upserted by the identity's id, never duplicated.
type ProvisionService interface {
	ProvisionLeader(ctx context.Context, input ProvisionInput) (*ProvisionResult, error)
}

type provisionService struct {
	db           *gorm.DB
	log          *logger.Logger
	identityRepo repos.IdentityRepo
	profileRepo  repos.ProfileRepo
}

func NewProvisionService(
	db *gorm.DB,
	log *logger.Logger,
	identityRepo repos.IdentityRepo,
	profileRepo repos.ProfileRepo,
) ProvisionService {
	return &provisionService{
		db:           db,
		log:          log.With("service", "ProvisionService"),
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
	}
}

func (ps *provisionService) ProvisionLeader(ctx context.Context, input ProvisionInput) (*ProvisionResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}
	if err := validateScope(input); err != nil {
		return nil, err
	}

	created, err := ps.createFresh(ctx, input)
	if err == nil {
		return created, nil
	}
	if !isDuplicateIdentity(err) {
		return nil, err
	}
	ps.log.Info("Identity already exists, repairing", "email", input.Email)
	return ps.repairExisting(ctx, input)
}

// createFresh is the happy path: one new identity and one new profile with
// the same id, inside one transaction.
func (ps *provisionService) createFresh(ctx context.Context, input ProvisionInput) (*ProvisionResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	meta, err := scopeMetadata(input)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		identity := &domain.Identity{
			ID:           id,
			Email:        input.Email,
			PasswordHash: string(hash),
			Metadata:     meta,
		}
		if _, err := ps.identityRepo.Create(ctx, tx, []*domain.Identity{identity}); err != nil {
			return err
		}
		profile := profileFromInput(id, input)
		if _, err := ps.profileRepo.Create(ctx, tx, []*domain.Profile{profile}); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &ProvisionResult{UserID: id, Password: input.Password, Updated: false}, nil
}

// repairExisting updates the existing identity's password and metadata and
// upserts the profile row keyed by the identity id. A supplied password
// shorter than MinSuppliedPasswordLen is replaced with a generated one.
func (ps *provisionService) repairExisting(ctx context.Context, input ProvisionInput) (*ProvisionResult, error) {
	identities, err := ps.identityRepo.GetByEmails(ctx, nil, []string{input.Email})
	if err != nil {
		return nil, fmt.Errorf("look up identity by email: %w", err)
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("identity reported as existing but not found for %s", input.Email)
	}
	identity := identities[0]

	password := input.Password
	if len(password) < MinSuppliedPasswordLen {
		generated, err := GeneratePassword(GeneratedPasswordLen)
		if err != nil {
			return nil, err
		}
		password = generated
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	meta, err := scopeMetadata(input)
	if err != nil {
		return nil, err
	}

	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.identityRepo.UpdateCredentials(ctx, tx, identity.ID, string(hash), meta); err != nil {
			return fmt.Errorf("update identity credentials: %w", err)
		}
		profile := profileFromInput(identity.ID, input)
		if _, err := ps.profileRepo.Upsert(ctx, tx, profile); err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &ProvisionResult{UserID: identity.ID, Password: password, Updated: true}, nil
}

func profileFromInput(id uuid.UUID, input ProvisionInput) *domain.Profile {
	return &domain.Profile{
		ID:     id,
		Email:  input.Email,
		Name:   input.Name,
		Phone:  input.Phone,
		Role:   input.Role,
		ZoneID: input.ZoneID,
		AreaID: input.AreaID,
		CellID: input.CellID,
		Active: true,
	}
}

func scopeMetadata(input ProvisionInput) (datatypes.JSON, error) {
	meta := map[string]any{"role": string(input.Role), "name": input.Name}
	if input.ZoneID != nil {
		meta["zone_id"] = input.ZoneID.String()
	}
	if input.AreaID != nil {
		meta["area_id"] = input.AreaID.String()
	}
	if input.CellID != nil {
		meta["cell_id"] = input.CellID.String()
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal identity metadata: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// validateScope enforces at most one scope reference, consistent with the
// role. Super-admins carry no scope.
func validateScope(input ProvisionInput) error {
	set := 0
	if input.ZoneID != nil {
		set++
	}
	if input.AreaID != nil {
		set++
	}
	if input.CellID != nil {
		set++
	}
	if set > 1 {
		return fmt.Errorf("%w: at most one of zone_id, area_id, cell_id may be set", ErrValidation)
	}
	switch input.Role {
	case domain.RoleSuperAdmin:
		if set != 0 {
			return fmt.Errorf("%w: super-admin takes no scope reference", ErrValidation)
		}
	case domain.RoleZoneLeader:
		if input.AreaID != nil || input.CellID != nil {
			return fmt.Errorf("%w: zone-leader scope must be a zone", ErrValidation)
		}
	case domain.RoleAreaLeader:
		if input.ZoneID != nil || input.CellID != nil {
			return fmt.Errorf("%w: area-leader scope must be an area", ErrValidation)
		}
	case domain.RoleCellLeader:
		if input.ZoneID != nil || input.AreaID != nil {
			return fmt.Errorf("%w: cell-leader scope must be a cell", ErrValidation)
		}
	}
	return nil
}

// isDuplicateIdentity classifies a create failure as "identity already
// exists". Structured codes are preferred; the phrase match covers hosted
// providers that only return message strings.
func isDuplicateIdentity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicateIdentity) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"already registered",
		"already been registered",
		"already exists",
		"duplicate key",
		"unique constraint",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
