package domain

import "time"

// Trend is a team's movement in a standing table
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Valid reports whether t is a known trend
func (t Trend) Valid() bool {
	return t == TrendUp || t == TrendDown || t == TrendStable
}

// Event is a tournament or meetup listed on the map. Latitude/Longitude are nil until geocoded.
type Event struct {
	ID          uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string      `gorm:"column:name;type:varchar(200)" json:"name"`
	Description string      `gorm:"column:description;type:text" json:"description,omitempty"`
	Game        string      `gorm:"column:game;type:varchar(100);index" json:"game,omitempty"`
	Address     string      `gorm:"column:address;type:varchar(500)" json:"address,omitempty"`
	Latitude    *float64    `gorm:"column:latitude;index:idx_event_coords,priority:1" json:"latitude,omitempty"`
	Longitude   *float64    `gorm:"column:longitude;index:idx_event_coords,priority:2" json:"longitude,omitempty"`
	StartsAt    time.Time   `gorm:"column:starts_at;index" json:"starts_at"`
	EndsAt      *time.Time  `gorm:"column:ends_at" json:"ends_at,omitempty"`
	CreatedBy   string      `gorm:"column:created_by;type:varchar(36)" json:"created_by,omitempty"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Teams       []EventTeam `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"teams,omitempty"`
}

func (Event) TableName() string { return "events" }

// EventTeam is one row of an event's standing table. Position is derived from points.
type EventTeam struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EventID       uint64 `gorm:"column:event_id;index" json:"event_id"`
	TeamName      string `gorm:"column:team_name;type:varchar(100)" json:"team_name"`
	Position      int    `gorm:"column:position;default:0" json:"position"`
	MatchesPlayed int    `gorm:"column:matches_played;default:0" json:"matches_played"`
	Wins          int    `gorm:"column:wins;default:0" json:"wins"`
	Losses        int    `gorm:"column:losses;default:0" json:"losses"`
	Points        int    `gorm:"column:points;default:0" json:"points"`
	Trend         Trend  `gorm:"column:trend;type:varchar(10);default:'stable'" json:"trend"`
}

func (EventTeam) TableName() string { return "event_teams" }

// Team is a row of the global ranking, accumulated from event standings
type Team struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;type:varchar(100);uniqueIndex" json:"name"`
	Position      int       `gorm:"column:position;default:0" json:"position"`
	MatchesPlayed int       `gorm:"column:matches_played;default:0" json:"matches_played"`
	Wins          int       `gorm:"column:wins;default:0" json:"wins"`
	Losses        int       `gorm:"column:losses;default:0" json:"losses"`
	Points        int       `gorm:"column:points;default:0" json:"points"`
	Trend         Trend     `gorm:"column:trend;type:varchar(10);default:'stable'" json:"trend"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Team) TableName() string { return "teams" }

// EventRequest body of POST/PUT /admin/events
type EventRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Game        string     `json:"game"`
	Address     string     `json:"address"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// GeocodeRequest body of POST /admin/events/:id/geocode
type GeocodeRequest struct {
	Address string `json:"address"`
}

// TeamStatsInput is one edited row sent by the admin ranking editor
type TeamStatsInput struct {
	ID            *uint64 `json:"id"`
	TeamName      string  `json:"team_name"`
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Points        int     `json:"points"`
	Trend         Trend   `json:"trend"`
}

// SaveStandingsRequest body of PUT /admin/events/:id/teams
type SaveStandingsRequest struct {
	Teams         []TeamStatsInput `json:"teams"`
	ApplyToGlobal bool             `json:"apply_to_global"`
}

// NearbyEvent is an event with its distance from the query point
type NearbyEvent struct {
	Event
	DistanceKm float64 `json:"distance_km"`
}
