package usecase

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/seed"
	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

// Defaults for fields the remote feed does not carry.
const (
	remoteDefaultCategory       = "Other"
	remoteDefaultStock          = 1
	remoteDefaultShippingMethod = "Standard (5-7 days)"
	remoteDefaultReturnPolicy   = "Contact seller"
)

// RemoteMapper turns remote product records into Listings.
type RemoteMapper struct {
	images domain.ImageResolver
	logger *logger.Logger
}

// NewRemoteMapper creates a mapper. images may be nil, in which case references are kept as-is.
func NewRemoteMapper(images domain.ImageResolver, log *logger.Logger) *RemoteMapper {
	return &RemoteMapper{images: images, logger: log.Named("RemoteMapper")}
}

// MapAll maps every publicly visible record, preserving feed order. Records
// that break listing invariants are skipped.
func (m *RemoteMapper) MapAll(ctx context.Context, records []domain.RemoteRecord) []domain.Listing {
	out := make([]domain.Listing, 0, len(records))
	for _, rec := range records {
		if !rec.IsPublic {
			continue
		}
		l := m.Map(ctx, rec)
		if err := l.Validate(); err != nil {
			m.logger.Warn("Skipping remote record", zap.String("record_id", rec.ID), zap.Error(err))
			continue
		}
		out = append(out, l)
	}
	return out
}

// Map converts one record. Rating and review count start at zero; the seller is
// derived from the owner ID so the same owner always shows the same seller.
func (m *RemoteMapper) Map(ctx context.Context, rec domain.RemoteRecord) domain.Listing {
	currency := rec.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	category := strings.TrimSpace(rec.Category)
	if category == "" {
		category = remoteDefaultCategory
	}
	condition := domain.Condition(rec.Condition)
	if !condition.IsValid() {
		condition = domain.ConditionNew
	}

	l := domain.Listing{
		ID:             rec.ID,
		Title:          rec.Name,
		Description:    rec.Description,
		Price:          domain.Money{Amount: ParsePrice(rec.PriceText), Currency: currency},
		Category:       category,
		Subcategory:    rec.Subcategory,
		Condition:      condition,
		Brand:          rec.Brand,
		Tags:           append([]string(nil), rec.Tags...),
		Images:         m.resolveImages(ctx, rec),
		Seller:         seed.SellerForOwner(rec.OwnerID),
		Stock:          remoteDefaultStock,
		ShippingMethod: remoteDefaultShippingMethod,
		ReturnPolicy:   remoteDefaultReturnPolicy,
		PostedAt:       rec.CreatedAt,
	}
	if rec.Views != nil {
		l.Views = *rec.Views
	}
	if rec.Shares != nil {
		l.Saves = *rec.Shares
	}
	return l
}

func (m *RemoteMapper) resolveImages(ctx context.Context, rec domain.RemoteRecord) []string {
	refs := make([]string, 0, 1+len(rec.ReferenceImages))
	seen := make(map[string]struct{}, cap(refs))
	for _, ref := range append([]string{rec.Thumbnail}, rec.ReferenceImages...) {
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	if m.images == nil {
		return refs
	}
	for i, ref := range refs {
		url, err := m.images.Resolve(ctx, ref)
		if err != nil {
			m.logger.Debug("Keeping unresolved image reference", zap.String("ref", ref), zap.Error(err))
			continue
		}
		refs[i] = url
	}
	return refs
}

// ParsePrice reads a price that may arrive as "1,299.00", "$45" or "45".
// Text that is not a number is treated as 0.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
