// Package service groups menu rows into display categories: a fixed
// featured group first, then one group per category in the order categories
// first appear in the table.
package service

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"machikado_backend/internal/adapters/storage"
	"machikado_backend/internal/menus/repository"
	"machikado_backend/internal/menus/transport"
	"machikado_backend/platform/apperr"
	"machikado_backend/platform/logger"
)

const (
	featuredGroupID   = "featured"
	featuredGroupName = "注目商品"
)

// Service aggregates menu rows into category groups.
type Service struct {
	repo   repository.Repository
	store  storage.Service
	bucket string
	log    *logger.Logger
}

// New creates the menus service. bucket names the object storage bucket
// holding menu images.
func New(repo repository.Repository, store storage.Service, bucket string, log *logger.Logger) *Service {
	return &Service{repo: repo, store: store, bucket: bucket, log: log}
}

// CategoryMenus returns the genre's menu grouped by category. When
// nameFilter is empty the featured group comes first, even if it has no
// items; a filtered listing omits the featured group entirely. A genre with
// no matching rows yields an empty slice, not an error.
func (s *Service) CategoryMenus(ctx context.Context, genre, nameFilter string) ([]transport.CategoryMenu, error) {
	rows, err := s.repo.ListByGenre(ctx, genre, nameFilter)
	if err != nil {
		s.log.DatabaseError("menus.list_by_genre", err)
		return nil, apperr.Persistence("failed to load menus", err).WithOp("menus.CategoryMenus")
	}

	if len(rows) == 0 {
		return []transport.CategoryMenu{}, nil
	}

	groups := make([]transport.CategoryMenu, 0, 4)

	if nameFilter == "" {
		featured := make([]transport.Menu, 0)
		for _, row := range rows {
			if row.IsFeatured {
				featured = append(featured, s.toMenu(row))
			}
		}
		groups = append(groups, transport.CategoryMenu{
			ID:           featuredGroupID,
			CategoryName: featuredGroupName,
			Items:        featured,
		})
	}

	// One group per distinct category, in first-seen row order. A featured
	// row still belongs to its own category group.
	seen := make(map[string]int)
	for _, row := range rows {
		idx, ok := seen[row.Category]
		if !ok {
			groups = append(groups, transport.CategoryMenu{
				ID:           row.Category,
				CategoryName: row.Category,
				Items:        make([]transport.Menu, 0, 1),
			})
			idx = len(groups) - 1
			seen[row.Category] = idx
		}
		groups[idx].Items = append(groups[idx].Items, s.toMenu(row))
	}

	return groups, nil
}

// UploadImage stores a menu image under the genre's folder and returns the
// object path for the menus table together with its public URL. The stored
// name is a fresh id so uploads never collide or overwrite.
func (s *Service) UploadImage(ctx context.Context, genre, fileName, contentType string, reader io.Reader, size int64) (transport.UploadedImage, error) {
	objectPath := genre + "/" + uuid.NewString() + strings.ToLower(path.Ext(fileName))

	stored, err := s.store.UploadFile(ctx, s.bucket, objectPath, contentType, reader, size)
	if err != nil {
		s.log.Error("menu image upload failed", "bucket", s.bucket, "path", objectPath, "error", err)
		return transport.UploadedImage{}, apperr.Persistence("failed to store menu image", err).WithOp("menus.UploadImage")
	}

	return transport.UploadedImage{
		ImagePath: stored,
		PhotoURL:  s.store.PublicURL(s.bucket, stored),
	}, nil
}

func (s *Service) toMenu(row repository.MenuRow) transport.Menu {
	return transport.Menu{
		ID:       row.ID,
		Name:     row.Name,
		Price:    row.Price,
		PhotoURL: s.store.PublicURL(s.bucket, row.ImagePath),
	}
}
