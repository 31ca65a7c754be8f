package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"tms/src/lib"
	"tms/src/models"
	"tms/src/types"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const SearchCacheKey = "packages:published"

func packageFromBody(body *types.CreatePackageRequestBody) (*models.Package, error) {
	if body.CapacityMax < body.CapacityMin {
		return nil, fmt.Errorf("%w: capacity_max must not be below capacity_min", types.ErrInvalidInput)
	}
	if body.PricePerPerson < 0 {
		return nil, fmt.Errorf("%w: price_per_person must not be negative", types.ErrInvalidInput)
	}
	doc := DocumentFromInput(&body.Document, body.DurationDays)
	status := types.PACKAGE_DRAFT
	if body.Publish {
		if err := ValidateDocument(&doc, body.DurationDays); err != nil {
			return nil, err
		}
		status = types.PACKAGE_PUBLISHED
	}
	pkg := &models.Package{
		Title:            body.Title,
		ShortDescription: body.ShortDescription,
		LongDocument:     doc,
		PricePerPerson:   body.PricePerPerson,
		CapacityMin:      body.CapacityMin,
		CapacityMax:      body.CapacityMax,
		DurationDays:     body.DurationDays,
		Status:           status,
	}
	for _, t := range body.Tags {
		pkg.Tags = append(pkg.Tags, t)
	}
	for _, img := range SplitList(body.Images, "\n") {
		pkg.Images = append(pkg.Images, img)
	}
	if body.CancellationPolicy != "" {
		pkg.CancellationPolicy = &body.CancellationPolicy
	}
	return pkg, nil
}

// CreatePackage persists a new host offering. Slugs derive from the title and
// get a random suffix on collision.
func CreatePackage(ctx context.Context, gdb *gorm.DB, hostID uuid.UUID, body *types.CreatePackageRequestBody) (*models.Package, error) {
	pkg, err := packageFromBody(body)
	if err != nil {
		return nil, err
	}
	pkg.HostID = hostID
	pkg.Slug = slug.Make(body.Title)
	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Package{}).
			Where("slug = ?", pkg.Slug).
			Count(&count).
			Error; err != nil {
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		if count > 0 {
			pkg.Slug = fmt.Sprintf("%s-%s", pkg.Slug, uuid.NewString()[:8])
		}
		if err := tx.Create(pkg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: package slug already taken", types.ErrConflict)
			}
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	InvalidateSearchCache(ctx)
	return pkg, nil
}

// UpdatePackage edits a package owned by hostID. Archived packages are frozen.
func UpdatePackage(ctx context.Context, gdb *gorm.DB, id uuid.UUID, hostID uuid.UUID, body *types.CreatePackageRequestBody) (*models.Package, error) {
	patch, err := packageFromBody(body)
	if err != nil {
		return nil, err
	}
	var updated *models.Package
	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg models.Package
		if err := tx.
			Where("id = ? AND host_id = ?", id, hostID).
			First(&pkg).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: package not found", types.ErrInvalidInput)
			}
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		if pkg.Status == types.PACKAGE_ARCHIVED {
			return fmt.Errorf("%w: archived packages cannot be edited", types.ErrConflict)
		}
		pkg.Title = patch.Title
		pkg.ShortDescription = patch.ShortDescription
		pkg.LongDocument = patch.LongDocument
		pkg.PricePerPerson = patch.PricePerPerson
		pkg.CapacityMin = patch.CapacityMin
		pkg.CapacityMax = patch.CapacityMax
		pkg.DurationDays = patch.DurationDays
		pkg.Tags = patch.Tags
		pkg.Images = patch.Images
		pkg.CancellationPolicy = patch.CancellationPolicy
		pkg.Status = patch.Status
		if err := tx.Save(&pkg).Error; err != nil {
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		updated = &pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	InvalidateSearchCache(ctx)
	return updated, nil
}

// TransitionPackageStatus moves a package through its lifecycle:
// draft -> pending_approval (host submit), pending_approval -> published
// (admin approve), anything -> archived. Publishing revalidates the document.
func TransitionPackageStatus(ctx context.Context, gdb *gorm.DB, id uuid.UUID, next types.PackageStatus) error {
	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg models.Package
		if err := tx.
			Where("id = ?", id).
			First(&pkg).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: package not found", types.ErrInvalidInput)
			}
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		if !validPackageTransition(pkg.Status, next) {
			return fmt.Errorf("%w: cannot move package from %s to %s", types.ErrConflict, pkg.Status, next)
		}
		if next == types.PACKAGE_PUBLISHED || next == types.PACKAGE_PENDING_APPROVAL {
			if err := ValidateDocument(&pkg.LongDocument, pkg.DurationDays); err != nil {
				return err
			}
		}
		if err := tx.
			Model(&models.Package{}).
			Where("id = ?", pkg.ID).
			Update("status", next).
			Error; err != nil {
			return fmt.Errorf("%w: %s", types.ErrPersistence, err.Error())
		}
		return nil
	})
	if err != nil {
		return err
	}
	InvalidateSearchCache(ctx)
	return nil
}

func validPackageTransition(from, to types.PackageStatus) bool {
	if to == types.PACKAGE_ARCHIVED {
		return from != types.PACKAGE_ARCHIVED
	}
	switch from {
	case types.PACKAGE_DRAFT:
		return to == types.PACKAGE_PENDING_APPROVAL || to == types.PACKAGE_PUBLISHED
	case types.PACKAGE_PENDING_APPROVAL:
		return to == types.PACKAGE_PUBLISHED || to == types.PACKAGE_DRAFT
	case types.PACKAGE_PUBLISHED:
		return to == types.PACKAGE_DRAFT
	}
	return false
}

// InvalidateSearchCache drops the cached default search listing. Best effort.
func InvalidateSearchCache(ctx context.Context) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(ctx, SearchCacheKey).Err(); err != nil {
		log.Printf("[redis] Error invalidating search cache: %s\n", err.Error())
	}
}
