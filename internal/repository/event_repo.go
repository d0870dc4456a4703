package repository

import (
	"errors"
	"time"

	"github.com/angple/arena-backend/internal/domain"
	"gorm.io/gorm"
)

// Bounds is a latitude/longitude box
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// EventRepository event data access on the event store
type EventRepository interface {
	FindByID(id uint64) (*domain.Event, error)
	List(upcomingFrom *time.Time, offset, limit int) ([]domain.Event, int64, error)
	WithinBounds(b Bounds) ([]domain.Event, error)
	Create(event *domain.Event) error
	Update(event *domain.Event) error
	UpdateLocation(id uint64, address string, lat, lng float64) error
	Delete(id uint64) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) FindByID(id uint64) (*domain.Event, error) {
	var event domain.Event
	err := r.db.Preload("Teams", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(upcomingFrom *time.Time, offset, limit int) ([]domain.Event, int64, error) {
	var events []domain.Event
	var total int64

	query := r.db.Model(&domain.Event{})
	order := "starts_at DESC, id DESC"
	if upcomingFrom != nil {
		query = query.Where("starts_at >= ?", *upcomingFrom)
		order = "starts_at ASC, id ASC"
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order(order).Offset(offset).Limit(limit).Find(&events).Error
	return events, total, err
}

// WithinBounds returns geocoded events inside the box
func (r *eventRepository) WithinBounds(b Bounds) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", b.MinLat, b.MaxLat).
		Where("longitude BETWEEN ? AND ?", b.MinLng, b.MaxLng).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Create(event *domain.Event) error {
	return r.db.Omit("Teams").Create(event).Error
}

func (r *eventRepository) Update(event *domain.Event) error {
	return r.db.Model(event).
		Select("name", "description", "game", "address", "starts_at", "ends_at").
		Updates(event).Error
}

func (r *eventRepository) UpdateLocation(id uint64, address string, lat, lng float64) error {
	return r.db.Model(&domain.Event{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"address":   address,
			"latitude":  lat,
			"longitude": lng,
		}).Error
}

func (r *eventRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&domain.EventTeam{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Event{}, id).Error
	})
}

// EventTeamRepository event standings data access
type EventTeamRepository interface {
	ListByEvent(eventID uint64) ([]domain.EventTeam, error)
	// Save writes every row (insert when ID is zero) in one transaction
	Save(teams []*domain.EventTeam) error
}

type eventTeamRepository struct {
	db *gorm.DB
}

// NewEventTeamRepository creates a new EventTeamRepository
func NewEventTeamRepository(db *gorm.DB) EventTeamRepository {
	return &eventTeamRepository{db: db}
}

func (r *eventTeamRepository) ListByEvent(eventID uint64) ([]domain.EventTeam, error) {
	var teams []domain.EventTeam
	err := r.db.Where("event_id = ?", eventID).Order("position ASC, id ASC").Find(&teams).Error
	return teams, err
}

func (r *eventTeamRepository) Save(teams []*domain.EventTeam) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range teams {
			if err := tx.Save(t).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// TeamRepository global ranking data access
type TeamRepository interface {
	List() ([]domain.Team, error)
	// Accumulate adds each row's stats to the global team of the same name, creating it when absent
	Accumulate(rows []domain.EventTeam) error
	SavePositions(teams []domain.Team) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) List() ([]domain.Team, error) {
	var teams []domain.Team
	err := r.db.Order("position ASC, points DESC, id ASC").Find(&teams).Error
	return teams, err
}

func (r *teamRepository) Accumulate(rows []domain.EventTeam) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var team domain.Team
			err := tx.Where("name = ?", row.TeamName).First(&team).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				team = domain.Team{
					Name:          row.TeamName,
					MatchesPlayed: row.MatchesPlayed,
					Wins:          row.Wins,
					Losses:        row.Losses,
					Points:        row.Points,
					Trend:         domain.TrendStable,
				}
				if err := tx.Create(&team).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&domain.Team{}).Where("id = ?", team.ID).UpdateColumns(map[string]interface{}{
				"matches_played": gorm.Expr("matches_played + ?", row.MatchesPlayed),
				"wins":           gorm.Expr("wins + ?", row.Wins),
				"losses":         gorm.Expr("losses + ?", row.Losses),
				"points":         gorm.Expr("points + ?", row.Points),
				"updated_at":     time.Now(),
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *teamRepository) SavePositions(teams []domain.Team) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range teams {
			if err := tx.Model(&domain.Team{}).Where("id = ?", t.ID).
				UpdateColumns(map[string]interface{}{"position": t.Position, "trend": t.Trend}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
