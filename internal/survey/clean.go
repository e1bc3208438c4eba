package survey

import (
	"fmt"
	"strings"

	"survey-insights/pkg/utils"
)

// ------------------- Cleaning -------------------

// Free-text gender answers observed in the survey, collapsed into a fixed
// category set.
var femaleTerms = newTermSet(
	"female", "female (cis)", "fem", "f", "femal", "woman", "femail",
	"cis female", "femake", "queer/she/they", "cis-female/femme",
)

var maleTerms = newTermSet(
	"male", "msle", "guy (-ish) ^_^", "man", "mal", "make", "male (cis)",
	"m", "cis man", "male,m", "male-ish", "malr", "maile", "mail",
	"cis male", "something kinda male?",
)

// Answers that mean "no usable value" regardless of the column.
var unknownValues = newTermSet(
	"", "n/a", "na", "don't know", "maybe", "some of them",
)

// Headcount answers corrupted by spreadsheet date auto-conversion.
var corruptSizeValues = newTermSet("jun-25", "01-may")

// sizeMidpoints maps each headcount bucket to a numeric midpoint for the
// derived company_size column.
var sizeMidpoints = map[string]int{
	"1-5":            3,
	"6-25":           15,
	"26-100":         63,
	"100-500":        300,
	"500-1000":       750,
	"more than 1000": 1200,
}

const (
	minValidAge = 18
	maxValidAge = 100
)

// CleanTable normalizes a loaded table into the form every aggregation
// expects. It is a pure, deterministic, idempotent transform on a derived
// copy: gender collapsed to {male, female, other}, unknown sentinels cleared,
// implausible ages dropped, yes/no flags coerced to booleans, headcount
// buckets normalized, duplicate responses removed.
func CleanTable(t *Table) *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Record, 0, len(t.Rows)),
	}
	if !out.HasColumn(ColCompanySizeNum) {
		out.Columns = append(out.Columns, ColCompanySizeNum)
	}
	if !out.HasColumn(ColAgeBand) {
		out.Columns = append(out.Columns, ColAgeBand)
	}

	seen := make(map[string]bool)
	dropped, duplicates := 0, 0

	for _, raw := range t.Rows {
		rec := cleanRecord(raw)

		age, ok := validAge(rec)
		if !ok {
			dropped++
			continue
		}
		rec[ColAge] = age
		rec[ColAgeBand] = ageBand(age)

		fp := rec.fingerprint(out.Columns)
		if seen[fp] {
			duplicates++
			continue
		}
		seen[fp] = true
		out.Rows = append(out.Rows, rec)
	}

	fmt.Printf("🧹 Cleaning: %d rows kept, %d outside age range, %d duplicates dropped\n",
		out.Len(), dropped, duplicates)
	return out
}

// cleanRecord normalizes a single response. Unusable answers are deleted so a
// missing value is always an absent key.
func cleanRecord(raw Record) Record {
	rec := make(Record, len(raw))
	for col, v := range raw {
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		rec[col] = v
	}

	if v, ok := rec.Label(ColGender); ok {
		rec[ColGender] = normalizeGender(v)
	}

	// Clear unknown sentinels across every column.
	for col, v := range rec {
		if s, ok := v.(string); ok && unknownValues[strings.ToLower(s)] {
			delete(rec, col)
		}
	}

	// Yes/No flags become booleans; anything unrecognizable is missing.
	for _, col := range boolColumns {
		v, ok := rec[col]
		if !ok {
			continue
		}
		if b, recognized := utils.Truthy(v); recognized {
			rec[col] = b
		} else {
			delete(rec, col)
		}
	}

	normalizeCompanySize(rec)
	return rec
}

// normalizeGender collapses free-text gender answers to male/female/other.
// Anything non-empty that matches no known term buckets to "other" rather
// than being dropped, so downstream group-bys stay exhaustive.
func normalizeGender(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	switch {
	case maleTerms[s]:
		return "male"
	case femaleTerms[s]:
		return "female"
	default:
		return "other"
	}
}

// normalizeCompanySize lowercases the headcount bucket, clears spreadsheet
// date corruption, and derives the numeric company_size midpoint.
func normalizeCompanySize(rec Record) {
	v, ok := rec.Label(ColCompanySize)
	if !ok {
		delete(rec, ColCompanySizeNum)
		return
	}
	s := strings.ToLower(strings.TrimSpace(v))
	if corruptSizeValues[s] {
		delete(rec, ColCompanySize)
		delete(rec, ColCompanySizeNum)
		return
	}
	rec[ColCompanySize] = s
	if midpoint, known := sizeMidpoints[s]; known {
		rec[ColCompanySizeNum] = midpoint
	} else {
		delete(rec, ColCompanySizeNum)
	}
}

// validAge coerces the age answer to an integer and checks the plausible
// range. Survey exports carry garbage ages (negative, 5-digit, free text).
func validAge(rec Record) (int, bool) {
	v, ok := rec[ColAge]
	if !ok {
		return 0, false
	}
	age := int(utils.Numeric(v))
	if age < minValidAge || age > maxValidAge {
		return 0, false
	}
	return age, true
}

// ageBand buckets an age for the age-distribution chart.
func ageBand(age int) string {
	switch {
	case age < 25:
		return "18-24"
	case age < 35:
		return "25-34"
	case age < 45:
		return "35-44"
	case age < 55:
		return "45-54"
	default:
		return "55+"
	}
}

func newTermSet(terms ...string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		set[t] = true
	}
	return set
}
