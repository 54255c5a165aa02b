package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"complaint-portal/services/complaint-service/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// complaintRow is the relational shape of a complaint; the upvoter set is
// kept as a JSON-encoded column.
type complaintRow struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	IssueType   string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Location    string `gorm:"not null"`
	Status      string `gorm:"not null;index"`
	Upvotes     int    `gorm:"not null;default:0"`
	Upvoters    string `gorm:"type:text;not null;default:'[]'"`
	PhotoData   string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (complaintRow) TableName() string {
	return "complaints"
}

// GormStore backs the complaint list with PostgreSQL via GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&complaintRow{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (gs *GormStore) List(ctx context.Context) ([]models.Complaint, error) {
	var rows []complaintRow
	err := gs.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	complaints := make([]models.Complaint, 0, len(rows))
	for i := range rows {
		c, err := rowToComplaint(&rows[i])
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, *c)
	}
	return complaints, nil
}

func (gs *GormStore) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	var row complaintRow
	err := gs.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rowToComplaint(&row)
}

func (gs *GormStore) Append(ctx context.Context, c *models.Complaint) error {
	row, err := complaintToRow(c)
	if err != nil {
		return err
	}
	return gs.db.WithContext(ctx).Create(row).Error
}

func (gs *GormStore) Upvote(ctx context.Context, id, addr string) (*models.Complaint, error) {
	var out *models.Complaint
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row complaintRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		c, err := rowToComplaint(&row)
		if err != nil {
			return err
		}

		if !c.HasUpvoted(addr) {
			c.Upvoters = append(c.Upvoters, addr)
			c.Upvotes = len(c.Upvoters)
			c.UpdatedAt = time.Now().UTC()

			updated, err := complaintToRow(c)
			if err != nil {
				return err
			}
			if err := tx.Save(updated).Error; err != nil {
				return err
			}
		}

		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (gs *GormStore) SetStatus(ctx context.Context, id, status string) (*models.Complaint, error) {
	result := gs.db.WithContext(ctx).Model(&complaintRow{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return gs.FindByID(ctx, id)
}

func (gs *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := gs.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func rowToComplaint(row *complaintRow) (*models.Complaint, error) {
	var upvoters []string
	if row.Upvoters != "" {
		if err := json.Unmarshal([]byte(row.Upvoters), &upvoters); err != nil {
			return nil, fmt.Errorf("corrupt upvoter column for %s: %w", row.ID, err)
		}
	}
	return &models.Complaint{
		ID:          row.ID,
		Name:        row.Name,
		IssueType:   row.IssueType,
		Title:       row.Title,
		Description: row.Description,
		Location:    row.Location,
		Status:      row.Status,
		Upvotes:     row.Upvotes,
		Upvoters:    upvoters,
		PhotoData:   row.PhotoData,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func complaintToRow(c *models.Complaint) (*complaintRow, error) {
	upvoters := c.Upvoters
	if upvoters == nil {
		upvoters = []string{}
	}
	encoded, err := json.Marshal(upvoters)
	if err != nil {
		return nil, err
	}
	return &complaintRow{
		ID:          c.ID,
		Name:        c.Name,
		IssueType:   c.IssueType,
		Title:       c.Title,
		Description: c.Description,
		Location:    c.Location,
		Status:      c.Status,
		Upvotes:     c.Upvotes,
		Upvoters:    string(encoded),
		PhotoData:   c.PhotoData,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}
