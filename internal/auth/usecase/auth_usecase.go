package usecase

import (
	"errors"
	"time"

	authdomain "hqadmin-backend/internal/auth/domain"
	authdto "hqadmin-backend/internal/auth/dto"
	"hqadmin-backend/internal/auth/repository"
	"hqadmin-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// AuthUsecase authenticates members and validates bearer tokens
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	ValidateToken(tokenString string) (*authdomain.Member, error)
}

type authUsecase struct {
	memberRepo repository.MemberRepository
	config     *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(memberRepo repository.MemberRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		memberRepo: memberRepo,
		config:     cfg,
	}
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	member, err := u.memberRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New("invalid email or password")
	}
	if !repository.CheckPasswordHash(req.Password, member.Password) {
		return nil, errors.New("invalid email or password")
	}

	claims := jwt.MapClaims{
		"sub":  member.ID,
		"role": member.Role,
		"exp":  time.Now().Add(u.config.JWTExpiry).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken: signed,
		MemberID:    member.ID,
		Name:        member.Name,
		Role:        member.Role,
	}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.Member, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	memberID, _ := claims["sub"].(string)
	if memberID == "" {
		return nil, errors.New("invalid token subject")
	}

	member, err := u.memberRepo.FindByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New("member not found")
	}
	return member, nil
}
