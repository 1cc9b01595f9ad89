package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Account is the account model. PasswordHash and PasswordSalt always change
// together; they are never valid independently of each other.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string    `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  []byte    `bun:"password_hash,notnull" json:"-"`
	PasswordSalt  []byte    `bun:"password_salt,notnull" json:"-"`
	Heroes        []*Hero   `bun:"rel:has-many,join:id=account_id" json:"heroes,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitempty"`
}

// Hero is the hero model owned by an account.
type Hero struct {
	bun.BaseModel   `bun:"table:heroes,alias:hro"`
	ID              int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	AccountID       int64     `bun:"account_id,notnull" json:"account_id,omitempty"`
	Name            string    `bun:"name,notnull" json:"name,omitempty"`
	Level           int       `bun:"level,notnull" json:"level,omitempty"`
	Experience      int       `bun:"experience" json:"experience"`
	HealthPoints    int       `bun:"health_points,notnull" json:"health_points,omitempty"`
	MaxHealthPoints int       `bun:"max_health_points,notnull" json:"max_health_points,omitempty"`
	AttackPoints    int       `bun:"attack_points,notnull" json:"attack_points,omitempty"`
	CurrentStage    int       `bun:"current_stage" json:"current_stage"`
	PositionX       int       `bun:"position_x" json:"position_x"`
	PositionY       int       `bun:"position_y" json:"position_y"`
	Account         *Account  `bun:"rel:belongs-to,join:account_id=id" json:"-"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitempty"`
}

// Starting stats for a freshly rolled hero.
const (
	HeroStartLevel     = 1
	HeroStartAttack    = 5
	HeroStartHealth    = 20
	HeroStartMaxHealth = 20
	// HeroDefaultName is used when a hero is rolled without a name.
	HeroDefaultName = "TestName"
)

// NewHero creates a level-one hero bound to the given account. An empty
// name falls back to HeroDefaultName.
func NewHero(accountID int64, name string) *Hero {
	if name == "" {
		name = HeroDefaultName
	}
	return &Hero{
		AccountID:       accountID,
		Name:            name,
		Level:           HeroStartLevel,
		Experience:      0,
		AttackPoints:    HeroStartAttack,
		HealthPoints:    HeroStartHealth,
		MaxHealthPoints: HeroStartMaxHealth,
	}
}
