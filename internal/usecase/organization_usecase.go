package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"clinic-agenda/internal/converter"
	"clinic-agenda/internal/delivery/dto"
	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/domain/repository"
	"clinic-agenda/internal/service"
	"clinic-agenda/internal/tenancy"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const inviteTokenBytes = 24

var (
	ErrOrganizationNotFound = service.ErrOrganizationNotFound
	ErrNotMember            = errors.New("user is not a member of this organization")
	ErrMemberExists         = errors.New("a member with this email already exists")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationInvalid    = errors.New("invitation token is invalid or expired")
)

type OrganizationUsecase interface {
	// CreateOrganization makes the caller owner of a new trialing organization
	CreateOrganization(ctx context.Context, identity tenancy.Scope, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error)
	ListMyOrganizations(ctx context.Context, identity tenancy.Scope) (*dto.ListResponse[dto.OrganizationResponse], error)
	ListMembers(ctx context.Context, scope tenancy.Scope) (*dto.ListResponse[dto.MemberResponse], error)
	CreateInvitation(ctx context.Context, scope tenancy.Scope, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error)
	AcceptInvitation(ctx context.Context, identity tenancy.Scope, req *dto.AcceptInvitationRequest) (*dto.OrganizationResponse, error)
	DeleteOrganization(ctx context.Context, scope tenancy.Scope) error
	// ResolveMembership returns the caller's scope inside the organization
	ResolveMembership(ctx context.Context, userID, organizationID uuid.UUID) (*tenancy.Scope, error)
}

type organizationUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	orgRepo           repository.OrganizationRepository
	memberRepo        repository.MemberRepository
	professionalRepo  repository.ProfessionalRepository
	holidayRepo       repository.HolidayRepository
	auditService      service.AuditService
	subscriptionCache service.SubscriptionCache
	inviteTTL         time.Duration
	now               func() time.Time
}

func NewOrganizationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	orgRepo repository.OrganizationRepository,
	memberRepo repository.MemberRepository,
	professionalRepo repository.ProfessionalRepository,
	holidayRepo repository.HolidayRepository,
	auditService service.AuditService,
	subscriptionCache service.SubscriptionCache,
	inviteTTL time.Duration,
) OrganizationUsecase {
	return &organizationUsecase{
		db:                db,
		log:               log,
		orgRepo:           orgRepo,
		memberRepo:        memberRepo,
		professionalRepo:  professionalRepo,
		holidayRepo:       holidayRepo,
		auditService:      auditService,
		subscriptionCache: subscriptionCache,
		inviteTTL:         inviteTTL,
		now:               time.Now,
	}
}

func (u *organizationUsecase) CreateOrganization(ctx context.Context, identity tenancy.Scope, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	org := &entity.Organization{
		Name:               req.Name,
		SubscriptionStatus: entity.SubscriptionTrialing,
	}
	if err := u.orgRepo.Create(ctx, tx, org); err != nil {
		u.log.Warnf("Failed to create organization: %+v", err)
		return nil, err
	}

	now := u.now()
	userID := identity.UserID
	member := &entity.Member{
		OrganizationID: org.ID,
		UserID:         &userID,
		Email:          strings.ToLower(identity.Email),
		Role:           entity.MemberRoleOwner,
		Status:         entity.StatusActive,
		AcceptedAt:     &now,
	}
	if err := u.memberRepo.Create(ctx, tx, member); err != nil {
		u.log.Warnf("Failed to create owner member: %+v", err)
		return nil, err
	}

	name := req.ProfessionalName
	if name == "" {
		name = identity.Email
	}
	professional := &entity.Professional{
		OrganizationID: org.ID,
		UserID:         &userID,
		Name:           name,
		Email:          member.Email,
		Status:         entity.StatusActive,
	}
	if err := u.professionalRepo.Create(ctx, tx, professional); err != nil {
		u.log.Warnf("Failed to create owner professional: %+v", err)
		return nil, err
	}

	seeded, err := u.holidayRepo.SeedFromCalendar(ctx, tx, org.ID)
	if err != nil {
		u.log.Warnf("Failed to seed holidays: %+v", err)
		return nil, err
	}

	scope := tenancy.Scope{OrganizationID: org.ID, UserID: userID, MemberID: member.ID, Role: member.Role, Email: member.Email}
	if err := u.auditService.LogCreate(ctx, tx, scope, entity.AuditActionOrganizationCreate, "organization", org.ID.String(), entity.JSON{
		"name":            org.Name,
		"holidays_seeded": seeded,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Organization %s created by user %s", org.ID, userID)
	return converter.OrganizationToResponse(org, member.Role), nil
}

func (u *organizationUsecase) ListMyOrganizations(ctx context.Context, identity tenancy.Scope) (*dto.ListResponse[dto.OrganizationResponse], error) {
	members, err := u.memberRepo.FindByUser(ctx, u.db, identity.UserID)
	if err != nil {
		u.log.Warnf("Failed to find memberships: %+v", err)
		return nil, err
	}
	if len(members) == 0 {
		return dto.NewListResponse[dto.OrganizationResponse](nil), nil
	}

	roles := make(map[uuid.UUID]string, len(members))
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		roles[m.OrganizationID] = m.Role
		ids = append(ids, m.OrganizationID)
	}

	orgs, err := u.orgRepo.FindByIDs(ctx, u.db, ids)
	if err != nil {
		u.log.Warnf("Failed to find organizations: %+v", err)
		return nil, err
	}

	responses := make([]dto.OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		responses = append(responses, *converter.OrganizationToResponse(&orgs[i], roles[orgs[i].ID]))
	}
	return dto.NewListResponse(responses), nil
}

func (u *organizationUsecase) ListMembers(ctx context.Context, scope tenancy.Scope) (*dto.ListResponse[dto.MemberResponse], error) {
	members, err := u.memberRepo.FindByOrganization(ctx, u.db, scope.OrganizationID)
	if err != nil {
		u.log.Warnf("Failed to find members: %+v", err)
		return nil, err
	}
	return dto.NewListResponse(converter.MembersToResponses(members)), nil
}

func (u *organizationUsecase) CreateInvitation(ctx context.Context, scope tenancy.Scope, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	if scope.Role != entity.MemberRoleOwner && scope.Role != entity.MemberRoleAdmin {
		return nil, ErrForbidden
	}

	token, hash, err := newInviteToken()
	if err != nil {
		u.log.Warnf("Failed to generate invitation token: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := req.Role
	if role == "" {
		role = entity.MemberRoleMember
	}

	now := u.now()
	member := &entity.Member{
		OrganizationID:  scope.OrganizationID,
		Email:           email,
		Role:            role,
		Status:          entity.StatusInvited,
		InviteTokenHash: &hash,
		InvitedAt:       &now,
	}
	if err := u.memberRepo.Create(ctx, tx, member); err != nil {
		if isDuplicateKeyError(err, "members_organization_id_email") {
			return nil, ErrMemberExists
		}
		u.log.Warnf("Failed to create invited member: %+v", err)
		return nil, err
	}

	professional, err := u.professionalRepo.FindByEmail(ctx, tx, scope.OrganizationID, email)
	if err != nil {
		u.log.Warnf("Failed to find professional by email: %+v", err)
		return nil, err
	}
	if professional == nil {
		professional = &entity.Professional{
			OrganizationID: scope.OrganizationID,
			Name:           req.Name,
			Email:          email,
			RoleType:       req.RoleType,
			Status:         entity.StatusInvited,
		}
		if err := u.professionalRepo.Create(ctx, tx, professional); err != nil {
			u.log.Warnf("Failed to create invited professional: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, scope, entity.AuditActionMemberInvite, "member", member.ID.String(), entity.JSON{
		"email":           email,
		"role":            role,
		"professional_id": professional.ID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.InvitationResponse{
		InvitationID:   member.ID,
		ProfessionalID: professional.ID,
		Email:          email,
		Token:          token,
	}, nil
}

func (u *organizationUsecase) AcceptInvitation(ctx context.Context, identity tenancy.Scope, req *dto.AcceptInvitationRequest) (*dto.OrganizationResponse, error) {
	invitationID, err := uuid.Parse(req.InvitationID)
	if err != nil {
		return nil, ErrInvalidID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	member, err := u.memberRepo.FindByID(ctx, tx, invitationID)
	if err != nil {
		u.log.Warnf("Failed to find invitation: %+v", err)
		return nil, err
	}
	if member == nil || member.Status != entity.StatusInvited || member.InviteTokenHash == nil {
		return nil, ErrInvitationNotFound
	}
	if member.InvitedAt != nil && u.inviteTTL > 0 && u.now().Sub(*member.InvitedAt) > u.inviteTTL {
		return nil, ErrInvitationInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*member.InviteTokenHash), []byte(req.Token)); err != nil {
		return nil, ErrInvitationInvalid
	}

	existing, err := u.memberRepo.FindByUserAndOrganization(ctx, tx, identity.UserID, member.OrganizationID)
	if err != nil {
		u.log.Warnf("Failed to find membership: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberExists
	}

	now := u.now()
	userID := identity.UserID
	member.UserID = &userID
	member.Status = entity.StatusActive
	member.AcceptedAt = &now
	member.InviteTokenHash = nil
	if err := u.memberRepo.Update(ctx, tx, member); err != nil {
		u.log.Warnf("Failed to activate member: %+v", err)
		return nil, err
	}

	professional, err := u.professionalRepo.FindByEmail(ctx, tx, member.OrganizationID, member.Email)
	if err != nil {
		u.log.Warnf("Failed to find professional by email: %+v", err)
		return nil, err
	}
	if professional != nil {
		professional.UserID = &userID
		professional.Status = entity.StatusActive
		if err := u.professionalRepo.Update(ctx, tx, professional); err != nil {
			u.log.Warnf("Failed to activate professional: %+v", err)
			return nil, err
		}
	}

	org, err := u.orgRepo.FindByID(ctx, tx, member.OrganizationID)
	if err != nil {
		u.log.Warnf("Failed to find organization: %+v", err)
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}

	scope := tenancy.Scope{OrganizationID: org.ID, UserID: userID, MemberID: member.ID, Role: member.Role, Email: member.Email}
	if err := u.auditService.Log(ctx, tx, scope, entity.AuditActionMemberAccept, entity.JSON{
		"entity":    "member",
		"entity_id": member.ID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.OrganizationToResponse(org, member.Role), nil
}

func (u *organizationUsecase) DeleteOrganization(ctx context.Context, scope tenancy.Scope) error {
	if scope.Role != entity.MemberRoleOwner {
		return ErrForbidden
	}

	affected, err := u.orgRepo.Delete(ctx, u.db.WithContext(ctx), scope.OrganizationID)
	if err != nil {
		u.log.Warnf("Failed to delete organization: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrOrganizationNotFound
	}

	if err := u.subscriptionCache.Invalidate(ctx, scope.OrganizationID); err != nil {
		u.log.Warnf("Failed to invalidate subscription cache: %+v", err)
	}
	u.log.WithFields(logrus.Fields{
		"organization_id": scope.OrganizationID,
		"user_id":         scope.UserID,
	}).Info("Organization deleted")
	return nil
}

func (u *organizationUsecase) ResolveMembership(ctx context.Context, userID, organizationID uuid.UUID) (*tenancy.Scope, error) {
	member, err := u.memberRepo.FindByUserAndOrganization(ctx, u.db, userID, organizationID)
	if err != nil {
		u.log.Warnf("Failed to find membership: %+v", err)
		return nil, err
	}
	if member == nil || !member.IsActive() {
		return nil, ErrNotMember
	}
	return &tenancy.Scope{
		OrganizationID: organizationID,
		UserID:         userID,
		MemberID:       member.ID,
		Role:           member.Role,
		Email:          member.Email,
	}, nil
}

// newInviteToken returns a random token and its bcrypt hash
func newInviteToken() (string, string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token := hex.EncodeToString(buf)
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return token, string(hash), nil
}
