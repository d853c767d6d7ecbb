// Package gormstore implements the persist.Store interface on a GORM
// database (Postgres or SQLite). Site lists are stored as a JSON document
// column, matching the document-store contract the engine expects.
package gormstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/skygrid/planner/internal/model"
	"github.com/skygrid/planner/internal/persist"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectRow is the database representation of a project document.
type ProjectRow struct {
	ID           string `gorm:"primarykey"`
	Name         string
	ActiveSiteID string
	Sites        datatypes.JSON
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName keeps the table name stable regardless of struct renames.
func (ProjectRow) TableName() string { return "projects" }

// Backend persists project documents via GORM.
type Backend struct {
	db *gorm.DB
}

// New creates a GORM-backed store.
func New(db *gorm.DB) *Backend {
	return &Backend{db: db}
}

// Init migrates the projects table.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(&ProjectRow{}); err != nil {
		return fmt.Errorf("migrating projects table: %w", err)
	}
	return nil
}

// Close is a no-op; connection lifecycle belongs to the database manager.
func (b *Backend) Close() error { return nil }

// LoadProject fetches and decodes a project document.
func (b *Backend) LoadProject(id string) (*model.Project, error) {
	var row ProjectRow
	err := b.db.First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", id, err)
	}
	return rowToProject(&row)
}

// SaveProject upserts a project document.
func (b *Backend) SaveProject(p *model.Project) error {
	row, err := projectToRow(p)
	if err != nil {
		return err
	}
	return b.db.Save(row).Error
}

// UpdateProject applies a partial patch to a stored project document.
func (b *Backend) UpdateProject(id string, patch persist.ProjectPatch) error {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.ActiveSiteID != nil {
		updates["active_site_id"] = *patch.ActiveSiteID
	}
	if patch.Sites != nil {
		raw, err := json.Marshal(*patch.Sites)
		if err != nil {
			return fmt.Errorf("encoding sites: %w", err)
		}
		updates["sites"] = datatypes.JSON(raw)
	}
	if len(updates) == 0 {
		return nil
	}
	res := b.db.Model(&ProjectRow{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return persist.ErrNotFound
	}
	return nil
}

// DeleteProject removes a project document.
func (b *Backend) DeleteProject(id string) error {
	res := b.db.Delete(&ProjectRow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return persist.ErrNotFound
	}
	return nil
}

func rowToProject(row *ProjectRow) (*model.Project, error) {
	p := &model.Project{
		ID:           row.ID,
		Name:         row.Name,
		ActiveSiteID: row.ActiveSiteID,
	}
	if len(row.Sites) > 0 {
		if err := json.Unmarshal(row.Sites, &p.Sites); err != nil {
			return nil, fmt.Errorf("decoding sites for %s: %w", row.ID, err)
		}
	}
	return p, nil
}

func projectToRow(p *model.Project) (*ProjectRow, error) {
	raw, err := json.Marshal(p.Sites)
	if err != nil {
		return nil, fmt.Errorf("encoding sites: %w", err)
	}
	return &ProjectRow{
		ID:           p.ID,
		Name:         p.Name,
		ActiveSiteID: p.ActiveSiteID,
		Sites:        datatypes.JSON(raw),
	}, nil
}
