package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"hotelhub/constants"
	"hotelhub/dto"
	apperrors "hotelhub/errors"
	"hotelhub/models"
	"hotelhub/services/logger"
	"hotelhub/types"
	"hotelhub/validator"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

// GoogleIdentity is the verified part of a Google ID token.
type GoogleIdentity struct {
	Email string
	Name  string
}

// GoogleVerifier checks a Google ID token for the configured client.
type GoogleVerifier func(ctx context.Context, token string) (*GoogleIdentity, error)

// NewGoogleVerifier validates ID tokens against Google's published keys.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return func(ctx context.Context, token string) (*GoogleIdentity, error) {
		payload, err := idtoken.Validate(ctx, token, clientID)
		if err != nil {
			return nil, err
		}
		email, _ := payload.Claims["email"].(string)
		name, _ := payload.Claims["name"].(string)
		if email == "" {
			return nil, errors.New("google token has no email claim")
		}
		return &GoogleIdentity{Email: email, Name: name}, nil
	}
}

type AuthServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Tokens *TokenService
	Google GoogleVerifier
}

type AuthService struct {
	db     *gorm.DB
	logger logger.Logger
	tokens *TokenService
	google GoogleVerifier
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		db:     opts.DB,
		logger: opts.Logger,
		tokens: opts.Tokens,
		google: opts.Google,
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Generate(UserInfo{UserId: user.ID, Role: user.Role})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &dto.AuthResponse{Token: token, User: user}, nil
}

// Register creates an account. Business accounts start pending until an
// admin approves them.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Email:    validator.NormalizeEmail(req.Email),
		Password: hashed,
		Name:     strings.TrimSpace(req.Name),
		Phone:    req.Phone,
		Role:     constants.RoleUser,
	}
	if req.Role == string(constants.RoleBusiness) {
		user.Role = constants.RoleBusiness
		user.BusinessStatus = constants.BusinessPending
	}

	var taken int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&taken).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if taken > 0 {
		return nil, apperrors.Conflict("이미 사용 중인 이메일입니다", apperrors.ErrAlreadyExists)
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Conflict("이미 사용 중인 이메일입니다", apperrors.ErrAlreadyExists)
		}
		return nil, apperrors.Internal(err)
	}
	s.logger.Info("user %d registered as %s", user.ID, user.Role)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", validator.NormalizeEmail(req.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Unauthenticated("이메일 또는 비밀번호가 올바르지 않습니다", nil)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apperrors.Unauthenticated("이메일 또는 비밀번호가 올바르지 않습니다", nil)
	}
	if user.Blocked {
		return nil, apperrors.Forbidden("차단된 계정입니다")
	}
	return s.issue(&user)
}

// GoogleLogin signs in with a Google ID token, creating a user account on
// first use.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	if s.google == nil {
		return nil, apperrors.Upstream("구글 로그인이 설정되지 않았습니다", nil)
	}
	identity, err := s.google(ctx, idToken)
	if err != nil {
		return nil, apperrors.Unauthenticated("유효하지 않은 구글 토큰입니다", err)
	}

	email := validator.NormalizeEmail(identity.Email)
	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		random, err := randomPassword()
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		hashed, err := HashPassword(random)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		name := identity.Name
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		user = models.User{Email: email, Password: hashed, Name: name, Role: constants.RoleUser}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
		s.logger.Info("user %d created from google sign-in", user.ID)
	} else if err != nil {
		return nil, apperrors.Internal(err)
	}

	if user.Blocked {
		return nil, apperrors.Forbidden("차단된 계정입니다")
	}
	return s.issue(&user)
}

func randomPassword() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *AuthService) Me(ctx context.Context, caller types.Caller) (*models.User, error) {
	var user models.User
	if err := findOr404(s.db.WithContext(ctx), &user, caller.ID, "사용자를 찾을 수 없습니다"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, caller types.Caller, req dto.ChangePasswordRequest) error {
	var user models.User
	if err := findOr404(s.db.WithContext(ctx), &user, caller.ID, "사용자를 찾을 수 없습니다"); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return apperrors.Validation("현재 비밀번호가 올바르지 않습니다")
	}
	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("password", hashed).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Authenticate resolves a bearer token to a live account. Blocked accounts
// are refused even with a valid token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	info, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = s.db.WithContext(ctx).First(&user, info.UserId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Unauthenticated("존재하지 않는 사용자입니다", nil)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if user.Blocked {
		return nil, apperrors.Forbidden("차단된 계정입니다")
	}
	return &user, nil
}

// CallerOf is the principal view of a user carried through a request.
func CallerOf(u *models.User) types.Caller {
	return types.Caller{
		ID:             u.ID,
		Email:          u.Email,
		Role:           u.Role,
		BusinessStatus: u.BusinessStatus,
	}
}
