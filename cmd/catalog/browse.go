package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
	"github.com/nexus-marketplace/catalog-service/internal/catalog/usecase"
)

type browseOptions struct {
	Search string
	Tab    string
	Sort   string
	Format string
	domain.FilterCriteria
}

func (o browseOptions) apply(s *usecase.Session) {
	s.SetSearch(o.Search)
	s.SetCategoryTab(o.Tab)
	s.SetSort(domain.SortKey(o.Sort))
	s.ApplyFilters(o.FilterCriteria)
}

func (o browseOptions) render(w io.Writer, view usecase.CatalogView) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tCATEGORY\tCONDITION\tRATING\tSELLER")
	for _, l := range view.Listings {
		price := fmt.Sprintf("%.2f %s", l.Price.Amount, l.Price.Currency)
		if l.DiscountPercent > 0 {
			price += fmt.Sprintf(" (-%d%%)", l.DiscountPercent)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n", l.ID, l.Title, price, l.Category, l.Condition, l.Rating, l.SellerName())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nShowing %d of %d listings (%d active filters, sort: %s)\n",
		view.Counts.Visible, view.Counts.Total, view.ActiveFilters, view.Query.Sort)
	return err
}
