package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-insights/internal/model"
)

func TestApplyFilters_NilSpecKeepsEverything(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))

	filtered, err := ApplyFilters(cleaned, nil)
	require.NoError(t, err)
	assert.Equal(t, cleaned.Len(), filtered.Len())
}

func TestApplyFilters_Gender(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))

	filtered, err := ApplyFilters(cleaned, &model.FilterSpec{Genders: []string{"female"}})
	require.NoError(t, err)

	require.Equal(t, 3, filtered.Len())
	for _, rec := range filtered.Rows {
		g, _ := rec.Label(ColGender)
		assert.Equal(t, "female", g)
	}
}

func TestApplyFilters_AgeRange(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))

	filtered, err := ApplyFilters(cleaned, &model.FilterSpec{MinAge: 30, MaxAge: 40})
	require.NoError(t, err)

	for _, rec := range filtered.Rows {
		age := rec[ColAge].(int)
		assert.GreaterOrEqual(t, age, 30)
		assert.LessOrEqual(t, age, 40)
	}
}

func TestApplyFilters_RemoteAndTech(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))

	remote, err := ApplyFilters(cleaned, &model.FilterSpec{Remote: FilterRemote})
	require.NoError(t, err)
	for _, rec := range remote.Rows {
		assert.Equal(t, true, rec[ColRemoteWork])
	}

	onSite, err := ApplyFilters(cleaned, &model.FilterSpec{Remote: FilterOnSite})
	require.NoError(t, err)
	assert.Equal(t, cleaned.Len(), remote.Len()+onSite.Len())

	nonTech, err := ApplyFilters(cleaned, &model.FilterSpec{Company: FilterNonTech})
	require.NoError(t, err)
	for _, rec := range nonTech.Rows {
		assert.Equal(t, false, rec[ColTechCompany])
	}
}

func TestApplyFilters_Countries(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))

	filtered, err := ApplyFilters(cleaned, &model.FilterSpec{Countries: []string{"germany", "Canada"}})
	require.NoError(t, err)

	require.NotZero(t, filtered.Len())
	for _, rec := range filtered.Rows {
		country, _ := rec.Label(ColCountry)
		assert.Contains(t, []string{"Germany", "Canada"}, country)
	}
}

func TestApplyFilters_EmptyResultIsNotAnError(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))

	filtered, err := ApplyFilters(cleaned, &model.FilterSpec{Countries: []string{"Atlantis"}})
	require.NoError(t, err)
	assert.Zero(t, filtered.Len())
}

func TestApplyFilters_InvalidChoices(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))

	var cfgErr *model.ConfigurationError

	_, err := ApplyFilters(cleaned, &model.FilterSpec{Remote: "sometimes"})
	require.Error(t, err)
	assert.ErrorAs(t, err, &cfgErr)

	_, err = ApplyFilters(cleaned, &model.FilterSpec{Company: "fintech"})
	require.Error(t, err)
	assert.ErrorAs(t, err, &cfgErr)

	_, err = ApplyFilters(cleaned, &model.FilterSpec{MinAge: 50, MaxAge: 20})
	require.Error(t, err)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestApplyFilters_MissingColumnExcludedByActiveFilter(t *testing.T) {
	table := newTable(
		[]string{ColAge, ColGender, ColRemoteWork},
		Record{ColAge: 30, ColGender: "male", ColRemoteWork: true},
		Record{ColAge: 31, ColGender: "male"}, // no remote answer
	)

	filtered, err := ApplyFilters(table, &model.FilterSpec{Remote: FilterRemote})
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Len())
}
