package survey

import (
	"fmt"
	"strings"

	"survey-insights/internal/model"
)

// ------------------- Filtering -------------------

// Remote-work and company-type filter choices.
const (
	FilterAll     = "all"
	FilterRemote  = "remote"
	FilterOnSite  = "on-site"
	FilterTech    = "tech"
	FilterNonTech = "non-tech"
)

// ApplyFilters narrows the cleaned table to the respondents the report spec
// asks for. A nil spec keeps everything; an empty result is not an error.
func ApplyFilters(t *Table, f *model.FilterSpec) (*Table, error) {
	if f == nil {
		return t, nil
	}
	if err := validateFilters(f); err != nil {
		return nil, err
	}

	genders := lowerSet(f.Genders)
	countries := lowerSet(f.Countries)

	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, rec := range t.Rows {
		if !matchCategory(rec, ColGender, genders) {
			continue
		}
		if !matchCategory(rec, ColCountry, countries) {
			continue
		}
		if !matchAge(rec, f.MinAge, f.MaxAge) {
			continue
		}
		if !matchFlag(rec, ColRemoteWork, f.Remote, FilterRemote) {
			continue
		}
		if !matchFlag(rec, ColTechCompany, f.Company, FilterTech) {
			continue
		}
		out.Rows = append(out.Rows, rec)
	}

	fmt.Printf("🔍 Filters applied: %d of %d respondents kept\n", out.Len(), t.Len())
	return out, nil
}

func validateFilters(f *model.FilterSpec) error {
	switch f.Remote {
	case "", FilterAll, FilterRemote, FilterOnSite:
	default:
		return &model.ConfigurationError{Field: "filters.remote", Reason: fmt.Sprintf("must be all, remote, or on-site; got %q", f.Remote)}
	}
	switch f.Company {
	case "", FilterAll, FilterTech, FilterNonTech:
	default:
		return &model.ConfigurationError{Field: "filters.company", Reason: fmt.Sprintf("must be all, tech, or non-tech; got %q", f.Company)}
	}
	if f.MinAge != 0 && f.MaxAge != 0 && f.MinAge > f.MaxAge {
		return &model.ConfigurationError{Field: "filters.age", Reason: "min age above max age"}
	}
	return nil
}

// matchCategory keeps a row when the wanted set is empty or contains the
// row's value. Rows missing the column are excluded by an active filter.
func matchCategory(rec Record, col string, wanted map[string]bool) bool {
	if len(wanted) == 0 {
		return true
	}
	label, ok := rec.Label(col)
	if !ok {
		return false
	}
	return wanted[strings.ToLower(label)]
}

func matchAge(rec Record, minAge, maxAge int) bool {
	if minAge == 0 && maxAge == 0 {
		return true
	}
	age, ok := rec[ColAge].(int)
	if !ok {
		return false
	}
	if minAge != 0 && age < minAge {
		return false
	}
	if maxAge != 0 && age > maxAge {
		return false
	}
	return true
}

// matchFlag applies a three-way all/on/off choice against a boolean column.
func matchFlag(rec Record, col, choice, onValue string) bool {
	if choice == "" || choice == FilterAll {
		return true
	}
	flag, ok := rec[col].(bool)
	if !ok {
		return false
	}
	return flag == (choice == onValue)
}

func lowerSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return set
}
