package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	domain "github.com/yahuti/trade-engine/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printItemsTable(items []domain.MarketplaceItem, total int, source domain.DataSource) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tPRICE\tCONDITION\tCATEGORY\tSELLER\n")
	for i := range items {
		tw.writef("%s\t%s\t%s %.2f\t%s\t%s\t%s\n",
			items[i].ID,
			truncate(items[i].Title, 40),
			items[i].Price.Currency,
			items[i].Price.Value,
			items[i].Condition,
			truncate(items[i].Category, 24),
			items[i].Seller.Username,
		)
	}
	tw.writef("\nTotal:\t%d\n", total)
	tw.writef("Source:\t%s\n", source)
	return tw.finish()
}

func printItemDetail(item *domain.MarketplaceItem, source domain.DataSource) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", item.ID)
	tw.writef("Title:\t%s\n", item.Title)
	tw.writef("Price:\t%s %.2f\n", item.Price.Currency, item.Price.Value)
	tw.writef("Condition:\t%s\n", item.Condition)
	tw.writef("Category:\t%s\n", item.Category)
	if item.Location != "" {
		tw.writef("Location:\t%s\n", item.Location)
	}
	tw.writef("Seller:\t%s (%d)\n", item.Seller.Username, item.Seller.FeedbackScore)
	if item.WebURL != "" {
		tw.writef("URL:\t%s\n", item.WebURL)
	}
	tw.writef("Source:\t%s\n", source)
	return tw.finish()
}

func printDashboard(d *domain.SearchAggregate) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Total Listings:\t%d\n", d.TotalListings)
	tw.writef("Average Price:\t$%.2f\n", d.AveragePrice)
	tw.writef("Source:\t%s\n", d.DataSource)
	tw.writef("Generated:\t%s\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))

	if len(d.CategoryBreakdown) > 0 {
		tw.writef("\nCATEGORY\tLISTINGS\n")
		names := make([]string, 0, len(d.CategoryBreakdown))
		for name := range d.CategoryBreakdown {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			tw.writef("%s\t%d\n", name, d.CategoryBreakdown[name])
		}
	}

	if len(d.FeaturedProducts) > 0 {
		tw.writef("\nFEATURED\tPRICE\n")
		for i := range d.FeaturedProducts {
			p := &d.FeaturedProducts[i]
			tw.writef("%s\t%s %.2f\n", truncate(p.Title, 48), p.Price.Currency, p.Price.Value)
		}
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
