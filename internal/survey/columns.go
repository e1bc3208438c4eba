package survey

// Column names of the mental-health-in-tech survey file. The raw export uses
// this exact casing.
const (
	ColAge           = "Age"
	ColGender        = "Gender"
	ColCountry       = "Country"
	ColCompanySize   = "no_employees"
	ColRemoteWork    = "remote_work"
	ColTechCompany   = "tech_company"
	ColTreatment     = "treatment"
	ColWorkInterfere = "work_interfere"
	ColConsequence   = "mental_health_consequence"
	ColMentalVsPhys  = "mental_vs_physical"
	ColFamilyHistory = "family_history"
	ColSelfEmployed  = "self_employed"
	ColSeekHelp      = "seek_help"
	ColBenefits      = "benefits"
	ColAnonymity     = "anonymity"
	ColSupervisor    = "supervisor"

	// Derived during cleaning.
	ColCompanySizeNum = "company_size"
	ColAgeBand        = "age_band"
)

// RequiredColumns are the columns every analysis in the default catalogue
// touches. Loading fails when one is absent or entirely empty.
var RequiredColumns = []string{
	ColAge,
	ColGender,
	ColCountry,
	ColCompanySize,
	ColRemoteWork,
	ColTechCompany,
	ColTreatment,
	ColWorkInterfere,
	ColConsequence,
	ColMentalVsPhys,
	ColFamilyHistory,
}

// boolColumns are yes/no answers coerced to booleans during cleaning.
var boolColumns = []string{
	ColTreatment,
	ColRemoteWork,
	ColTechCompany,
	ColFamilyHistory,
	ColSelfEmployed,
	ColSeekHelp,
}

// companySizeOrder is the natural bucket order for the headcount column.
var companySizeOrder = []string{
	"1-5", "6-25", "26-100", "100-500", "500-1000", "more than 1000",
}

// workInterfereOrder is the natural order of the ordinal interference scale.
var workInterfereOrder = []string{
	"Never", "Rarely", "Sometimes", "Often",
}

// columnRank returns the position of label in the column's natural order, or
// -1 when the column is plain-categorical (label sort order applies).
func columnRank(col, label string) int {
	var order []string
	switch col {
	case ColCompanySize:
		order = companySizeOrder
	case ColWorkInterfere:
		order = workInterfereOrder
	default:
		return -1
	}
	for i, v := range order {
		if v == label {
			return i
		}
	}
	return len(order) // unknown buckets sort after the known scale
}

// labelLess orders two category labels of one column: natural scale order for
// ordinal columns, label sort order for everything else.
func labelLess(col, a, b string) bool {
	ra, rb := columnRank(col, a), columnRank(col, b)
	if ra >= 0 && rb >= 0 && ra != rb {
		return ra < rb
	}
	return a < b
}
