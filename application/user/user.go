package user

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/telecom-distribution/application/dashboard"
	"github.com/muhammadheryan/telecom-distribution/cmd/config"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	redisrepo "github.com/muhammadheryan/telecom-distribution/repository/redis"
	userrepo "github.com/muhammadheryan/telecom-distribution/repository/user"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenType = "bearer"

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (model.Principal, string, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, actor model.Principal) (*model.UserResponse, error)
	CreateUser(ctx context.Context, actor model.Principal, req *model.CreateUserRequest) (*model.UserResponse, error)
	ListAgents(ctx context.Context, actor model.Principal) ([]model.UserResponse, error)
	GetPreferences(ctx context.Context, actor model.Principal) (*model.Preferences, error)
	UpdatePreferences(ctx context.Context, actor model.Principal, req *model.Preferences) (*model.Preferences, error)
}

// Claims is the JWT payload; the principal is rebuilt from it on every request.
type Claims struct {
	Name string        `json:"name"`
	Role constant.Role `json:"role"`
	jwt.RegisteredClaims
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository) UserApp {
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
	}
}

// Register creates an account with the chosen role and signs it in.
func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error) {
	user, err := s.createUser(ctx, "[Register]", &model.UserEntity{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  req.Role,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	return s.issueSession(ctx, "[Register]", user)
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	// Find user by email or phone
	identifier := req.LoginID()
	filter := &model.UserFilter{}
	if isEmail(identifier) {
		filter.Email = identifier
	} else {
		filter.Phone = identifier
	}

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	// Verify password
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	return s.issueSession(ctx, "[Login]", user)
}

// ValidateToken returns the principal and session id carried by a live token.
func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (model.Principal, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.Principal{}, "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.Principal{}, "", fmt.Errorf("invalid claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return model.Principal{}, "", fmt.Errorf("invalid user id in token")
	}

	if !claims.Role.Valid() {
		return model.Principal{}, "", fmt.Errorf("invalid role in token")
	}

	jti := claims.ID
	if jti == "" {
		return model.Principal{}, "", fmt.Errorf("token missing jti")
	}

	// Check Redis session key
	redisUserID, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil {
		return model.Principal{}, "", fmt.Errorf("invalid or expired session")
	}

	if redisUserID != userID {
		return model.Principal{}, "", fmt.Errorf("token does not match user session")
	}

	return model.Principal{ID: userID, Name: claims.Name, Role: claims.Role}, jti, nil
}

// Logout ends the session so the token stops validating before it expires.
func (s *UserAppImpl) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	if err := s.redisRepo.DeleteSession(ctx, sessionID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *UserAppImpl) Me(ctx context.Context, actor model.Principal) (*model.UserResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: actor.ID})
	if err != nil {
		logger.Error("[Me] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	res := model.NewUserResponse(user)
	return &res, nil
}

// CreateUser provisions an agent or retailer under the calling distributor.
func (s *UserAppImpl) CreateUser(ctx context.Context, actor model.Principal, req *model.CreateUserRequest) (*model.UserResponse, error) {
	if actor.Role != constant.RoleDistributor {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrForbidden, "only distributors can create users")
	}
	if req.Role != constant.RoleAgent && req.Role != constant.RoleRetailer {
		return nil, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "role must be agent or retailer")
	}

	parentID := actor.ID
	user, err := s.createUser(ctx, "[CreateUser]", &model.UserEntity{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		ParentID: &parentID,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	logger.Info("[CreateUser] user provisioned",
		zap.Uint64("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Uint64("parent_id", parentID),
	)

	res := model.NewUserResponse(user)
	return &res, nil
}

// ListAgents returns the agents the caller may address a request to.
func (s *UserAppImpl) ListAgents(ctx context.Context, actor model.Principal) ([]model.UserResponse, error) {
	filter := &model.UserListFilter{Role: constant.RoleAgent}
	if actor.Role == constant.RoleRetailer {
		self, err := s.userRepo.Get(ctx, &model.UserFilter{ID: actor.ID})
		if err != nil {
			logger.Error("[ListAgents] err userRepo.Get", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if self == nil {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
		filter = AgentFilter(self)
	}

	agents, err := s.userRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListAgents] err userRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	res := make([]model.UserResponse, 0, len(agents))
	for i := range agents {
		res = append(res, model.NewUserResponse(&agents[i]))
	}
	return res, nil
}

func (s *UserAppImpl) GetPreferences(ctx context.Context, actor model.Principal) (*model.Preferences, error) {
	stored, err := s.redisRepo.GetPreferences(ctx, actor.ID)
	if err != nil {
		logger.Error("[GetPreferences] err redisRepo.GetPreferences", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return mergePreferences(stored), nil
}

// UpdatePreferences stores the non-empty fields and returns the effective preferences.
func (s *UserAppImpl) UpdatePreferences(ctx context.Context, actor model.Principal, req *model.Preferences) (*model.Preferences, error) {
	changes := map[string]string{}
	if req.Theme != "" {
		changes["theme"] = req.Theme
	}
	if req.Language != "" {
		changes["language"] = req.Language
	}

	if err := s.redisRepo.SetPreferences(ctx, actor.ID, changes); err != nil {
		logger.Error("[UpdatePreferences] err redisRepo.SetPreferences", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return s.GetPreferences(ctx, actor)
}

// AgentFilter scopes the agent listing for a retailer to agents sharing its
// distributor; a retailer without a distributor sees every agent.
func AgentFilter(retailer *model.UserEntity) *model.UserListFilter {
	return &model.UserListFilter{Role: constant.RoleAgent, ParentID: retailer.ParentID}
}

// AgentAvailableTo reports whether agent appears in AgentFilter(retailer).
func AgentAvailableTo(agent, retailer *model.UserEntity) bool {
	if agent == nil || agent.Role != constant.RoleAgent {
		return false
	}
	if retailer.ParentID == nil {
		return true
	}
	return agent.ParentID != nil && *agent.ParentID == *retailer.ParentID
}

func (s *UserAppImpl) createUser(ctx context.Context, op string, entity *model.UserEntity, password string) (*model.UserEntity, error) {
	// Check if user exists by email or phone
	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: entity.Email})
	if err != nil {
		logger.Error(op+" err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	existingUser, err = s.userRepo.Get(ctx, &model.UserFilter{Phone: entity.Phone})
	if err != nil {
		logger.Error(op+" err userRepo.Get phone", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(op+" err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	entity.PasswordHash = string(hashedPassword)

	entity, err = s.userRepo.Create(ctx, entity)
	if err != nil {
		logger.Error(op+" err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// total_agents on every distributor dashboard
	if entity.Role == constant.RoleAgent {
		if err := dashboard.InvalidateStats(ctx, s.userRepo, s.redisRepo); err != nil {
			logger.Warn(op+" invalidate stats", zap.String("error", err.Error()))
		}
	}
	return entity, nil
}

func (s *UserAppImpl) issueSession(ctx context.Context, op string, user *model.UserEntity) (*model.LoginResponse, error) {
	token, jti, err := s.generateJWT(user)
	if err != nil {
		logger.Error(op+" err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Store session in Redis
	err = s.redisRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime)
	if err != nil {
		logger.Error(op+" err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   tokenType,
		User:        model.NewUserResponse(user),
	}, nil
}

// generateJWT creates a JWT token for the user
func (s *UserAppImpl) generateJWT(user *model.UserEntity) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	now := time.Now()
	claims := Claims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Auth.JWTExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        newUUID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

func mergePreferences(stored map[string]string) *model.Preferences {
	prefs := &model.Preferences{Theme: model.DefaultTheme, Language: model.DefaultLanguage}
	if v := stored["theme"]; v != "" {
		prefs.Theme = v
	}
	if v := stored["language"]; v != "" {
		prefs.Language = v
	}
	return prefs
}

// isEmail checks if identifier looks like an email
func isEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}
