package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Patient struct {
	bun.BaseModel `bun:"table:patients,alias:p"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	FirstName   string    `bun:"first_name,notnull"`
	LastName    string    `bun:"last_name,notnull"`
	Email       string    `bun:"email,notnull"`
	Phone       string    `bun:"phone,notnull"`
	DateOfBirth time.Time `bun:"date_of_birth,notnull,type:date"`
	Gender      string    `bun:"gender,notnull"`
	BloodGroup  string    `bun:"blood_group"`
	Address     string    `bun:"address"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func (p *Patient) Name() string {
	return p.FirstName + " " + p.LastName
}

func (p *Patient) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if p.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			p.ID = id
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		p.UpdatedAt = now
	}
	return nil
}
