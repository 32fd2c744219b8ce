package repository

import (
	authdomain "hqadmin-backend/internal/auth/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MemberRepository defines the interface for member lookups
type MemberRepository interface {
	FindByEmail(email string) (*authdomain.Member, error)
	FindByID(id string) (*authdomain.Member, error)
	Create(member *authdomain.Member) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new instance of memberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) FindByEmail(email string) (*authdomain.Member, error) {
	var member authdomain.Member
	err := r.db.Where("email = ?", email).First(&member).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByID(id string) (*authdomain.Member, error) {
	var member authdomain.Member
	err := r.db.Where("id = ?", id).First(&member).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) Create(member *authdomain.Member) error {
	return r.db.Create(member).Error
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password against its bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
