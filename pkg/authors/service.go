// Package authors manages the tracked author list.
package authors

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookscoutapp/bookscout/pkg/errcodes"
	"github.com/bookscoutapp/bookscout/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// CreateAuthor adds an author to the tracked list. Names are unique
// case-insensitively; a duplicate returns a conflict error.
func (svc *Service) CreateAuthor(ctx context.Context, name string) (*models.Author, error) {
	exists, err := svc.nameExists(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errcodes.Conflict("Author is already being tracked.")
	}

	now := time.Now()
	author := &models.Author{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Active:    true,
	}
	_, err = svc.db.NewInsert().
		Model(author).
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return author, nil
}

// ListAuthors returns the active authors ordered by name.
func (svc *Service) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	authors := []*models.Author{}
	err := svc.db.NewSelect().
		Model(&authors).
		Where("active = ?", true).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return authors, nil
}

func (svc *Service) RetrieveAuthor(ctx context.Context, id int) (*models.Author, error) {
	author := &models.Author{}
	err := svc.db.NewSelect().
		Model(author).
		Where("a.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("Author")
	} else if err != nil {
		return nil, errors.WithStack(err)
	}
	return author, nil
}

// RenameAuthor changes an author's name, keeping names unique.
func (svc *Service) RenameAuthor(ctx context.Context, id int, name string) (*models.Author, error) {
	author, err := svc.RetrieveAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := svc.nameExists(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errcodes.Conflict("Another author already has that name.")
	}

	author.Name = name
	author.UpdatedAt = time.Now()
	_, err = svc.db.NewUpdate().
		Model(author).
		Column("name", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return author, nil
}

// DeactivateAuthor stops tracking an author. The row and its books stay so
// scan history and tombstones survive.
func (svc *Service) DeactivateAuthor(ctx context.Context, id int) error {
	author, err := svc.RetrieveAuthor(ctx, id)
	if err != nil {
		return err
	}

	author.Active = false
	author.UpdatedAt = time.Now()
	_, err = svc.db.NewUpdate().
		Model(author).
		Column("active", "updated_at").
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// BulkImport tracks every new name from the list and reports how many were
// added versus already present.
func (svc *Service) BulkImport(ctx context.Context, names []string) (added, skipped int, err error) {
	for _, name := range names {
		exists, err := svc.nameExists(ctx, name, 0)
		if err != nil {
			return added, skipped, err
		}
		if exists {
			skipped++
			continue
		}

		if _, err := svc.CreateAuthor(ctx, name); err != nil {
			return added, skipped, err
		}
		added++
	}
	return added, skipped, nil
}

// TouchLastScanned stamps the author's last scan time.
func (svc *Service) TouchLastScanned(ctx context.Context, id int) error {
	_, err := svc.db.NewUpdate().
		Model((*models.Author)(nil)).
		Set("last_scanned = ?", time.Now()).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) nameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	q := svc.db.NewSelect().
		Model((*models.Author)(nil)).
		Where("name = ? COLLATE NOCASE", name)
	if excludeID != 0 {
		q = q.Where("a.id != ?", excludeID)
	}

	exists, err := q.Exists(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return exists, nil
}
