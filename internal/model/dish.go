package model

import "time"

// CategorySales holds one dish category's monthly sales.
// Values is aligned with the owning Dataset's Periods axis: exactly one
// value per period, missing cells already mapped to 0 by the loader.
type CategorySales struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Total sums the category's sales across all periods.
func (c *CategorySales) Total() float64 {
	total := 0.0
	for _, v := range c.Values {
		total += v
	}
	return total
}

// Dataset is one immutable snapshot of the loaded sales sheet.
// A successful load builds a fresh snapshot and swaps it in wholesale;
// nothing mutates a snapshot after it leaves the importer.
type Dataset struct {
	ID         string          `json:"id"`
	SourceFile string          `json:"sourceFile"`
	SheetName  string          `json:"sheetName"`
	Periods    []string        `json:"periods"`
	Categories []CategorySales `json:"categories"`
	LoadedAt   time.Time       `json:"loadedAt"`
}

// Category returns the category with the given name.
func (d *Dataset) Category(name string) (CategorySales, bool) {
	for _, c := range d.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategorySales{}, false
}

// CategoryNames returns the category names in sheet order.
func (d *Dataset) CategoryNames() []string {
	names := make([]string, 0, len(d.Categories))
	for _, c := range d.Categories {
		names = append(names, c.Name)
	}
	return names
}

// ValidationError describes a schema problem found at load time.
type ValidationError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // error or warning
}

// Validate checks the snapshot schema. It runs exactly once, when the
// importer builds the snapshot; render paths never re-validate.
func (d *Dataset) Validate() []ValidationError {
	var errors []ValidationError

	if len(d.Periods) == 0 {
		errors = append(errors, ValidationError{
			Field:    "periods",
			Message:  "no period columns found in header row",
			Severity: "error",
		})
	}
	seenPeriod := make(map[string]bool, len(d.Periods))
	for _, p := range d.Periods {
		if p == "" {
			errors = append(errors, ValidationError{
				Field:    "periods",
				Message:  "empty period label in header row",
				Severity: "error",
			})
			continue
		}
		if seenPeriod[p] {
			errors = append(errors, ValidationError{
				Field:    "periods",
				Message:  "duplicate period column: " + p,
				Severity: "error",
			})
		}
		seenPeriod[p] = true
	}

	if len(d.Categories) == 0 {
		errors = append(errors, ValidationError{
			Field:    "categories",
			Message:  "sheet has no data rows",
			Severity: "warning",
		})
	}
	seenName := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		if c.Name == "" {
			errors = append(errors, ValidationError{
				Field:    "categories",
				Message:  "category with empty name",
				Severity: "error",
			})
			continue
		}
		if seenName[c.Name] {
			errors = append(errors, ValidationError{
				Field:    "categories",
				Message:  "duplicate category: " + c.Name,
				Severity: "error",
			})
		}
		seenName[c.Name] = true
		if len(c.Values) != len(d.Periods) {
			errors = append(errors, ValidationError{
				Field:    c.Name,
				Message:  "value count does not match period count",
				Severity: "error",
			})
		}
		for _, v := range c.Values {
			if v < 0 {
				errors = append(errors, ValidationError{
					Field:    c.Name,
					Message:  "negative sales value",
					Severity: "warning",
				})
				break
			}
		}
	}

	return errors
}

// HasBlocking reports whether any finding has severity error.
func HasBlocking(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}
