package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
	tpl "github.com/oksasatya/auction-marketplace/pkg/mailer/templates"
)

type UserService struct {
	Store  repo.Store
	JWT    *helpers.JWTManager
	Images ImageStore
	Redis  *redis.Client
	Logger *logrus.Logger
	Mail   *Mail
}

func NewUserService(store repo.Store, jwt *helpers.JWTManager, images ImageStore, rdb *redis.Client, logger *logrus.Logger, mail *Mail) *UserService {
	return &UserService{Store: store, JWT: jwt, Images: images, Redis: rdb, Logger: logger, Mail: mail}
}

type RegisterInput struct {
	UserName       string
	Email          string
	Password       string
	Phone          string
	Address        string
	Role           entity.Role
	PaymentMethods entity.PaymentMethods
	ProfileImage   *Upload
}

// Session is a freshly issued login.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register creates a Bidder or Auctioneer account and logs it in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = normalizeEmail(in.Email)
	if in.Role != entity.RoleBidder && in.Role != entity.RoleAuctioneer {
		return nil, ErrInvalidRole
	}
	if in.Role == entity.RoleAuctioneer {
		pm := in.PaymentMethods
		if strings.TrimSpace(pm.BankAccountNumber) == "" || strings.TrimSpace(pm.BankAccountName) == "" || strings.TrimSpace(pm.BankName) == "" {
			return nil, ErrPaymentDetails
		}
	} else {
		in.PaymentMethods = entity.PaymentMethods{}
	}
	if err := in.ProfileImage.validImage(); err != nil {
		return nil, err
	}

	r := s.Store.Repos()
	if _, err := r.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	imageURL := ""
	if s.Images != nil {
		imageURL, err = s.Images.Upload(ctx, "profiles", *in.ProfileImage)
		if err != nil {
			return nil, fmt.Errorf("upload profile image: %w", err)
		}
	} else if s.Logger != nil {
		s.Logger.WithField("email", in.Email).Warn("object storage not configured; profile image not persisted")
	}

	u := &entity.User{
		UserName:        in.UserName,
		Email:           in.Email,
		Password:        hash,
		Phone:           strings.TrimSpace(in.Phone),
		Address:         strings.TrimSpace(in.Address),
		Role:            in.Role,
		ProfileImageURL: imageURL,
		PaymentMethods:  in.PaymentMethods,
	}
	if err := r.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.Mail.enabled() {
		s.Mail.enqueue(ctx, u.Email, tpl.Welcome, tpl.NewWelcomeData(s.Mail.Cfg, u.UserName, u.Email, string(u.Role), tpl.WithTime(time.Now())))
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	}
	return s.issue(ctx, u)
}

// Login checks credentials and that the account holds the requested role.
func (s *UserService) Login(ctx context.Context, email, password string, role entity.Role) (*Session, error) {
	u, err := s.Store.Repos().Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.BurnPasswordCompare(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if role != "" && u.Role != role {
		return nil, ErrInvalidRole
	}
	return s.issue(ctx, u)
}

// issue signs a token and records the session in Redis.
func (s *UserService) issue(ctx context.Context, u *entity.User) (*Session, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.Generate(u.ID, string(u.Role), sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if s.Redis != nil {
		if rErr := helpers.StoreSession(ctx, s.Redis, u.ID, sid, string(u.Role), time.Until(exp)); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("user_id", u.ID).Warn("redis session store failed")
		}
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	if err := helpers.DeleteSession(ctx, s.Redis, userID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("redis session delete failed")
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Store.Repos().Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// EnsureSuperAdmin creates the Super Admin account if the email is unused.
// It reports whether an account was created.
func (s *UserService) EnsureSuperAdmin(ctx context.Context, name, email, password string) (bool, error) {
	r := s.Store.Repos()
	email = normalizeEmail(email)
	if _, err := r.Users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return false, fmt.Errorf("lookup super admin: %w", err)
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{UserName: name, Email: email, Password: hash, Role: entity.RoleSuperAdmin}
	if err := r.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("create super admin: %w", err)
	}
	return true, nil
}
