package repository

import (
	"github.com/angple/arena-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository user profile data access
type ProfileRepository interface {
	FindByID(id string) (*domain.Profile, error)
	// Ensure inserts the profile if no row with its ID exists
	Ensure(profile *domain.Profile) error
	IncrementPostCount(id string, delta int) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(id string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Ensure(profile *domain.Profile) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(profile).Error
}

func (r *profileRepository) IncrementPostCount(id string, delta int) error {
	return r.db.Model(&domain.Profile{}).Where("id = ?", id).
		UpdateColumn("post_count", floorExpr("post_count", delta)).Error
}
