package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screening-cli/internal/model"
)

func testEngine() *Engine {
	eng := New()
	eng.Swap([]model.CompanyRecord{
		{Name: "Siemens AG", Status: model.StatusWhitelisted, Category: "Industrial"},
		{Name: "Volkswagen AG", Status: model.StatusWhitelisted, Category: "Automotive"},
		{Name: "Fake Company GmbH", Status: model.StatusBlacklisted, Category: "Industrial"},
		{Name: "Shady Trading Ltd", Status: model.StatusBlacklisted},
	})
	return eng
}

func TestEngineNotReady(t *testing.T) {
	eng := New()

	assert.False(t, eng.Ready())

	_, err := eng.Lookup("Siemens", LookupOptions{})
	require.ErrorIs(t, err, ErrNotReady)

	_, err = eng.IsApproved("Siemens")
	require.ErrorIs(t, err, ErrNotReady)
}

func TestEngineReadyWithEmptySnapshot(t *testing.T) {
	eng := New()
	eng.Swap(nil)

	assert.True(t, eng.Ready())

	outcome, err := eng.Lookup("Siemens", LookupOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnknown, outcome.Status)
	assert.Equal(t, 0.0, outcome.Confidence)
	assert.Equal(t, []string{WarnNoMatches}, outcome.Warnings)
	assert.Nil(t, outcome.BestMatch)
}

func TestEngineLookupSuffixVariant(t *testing.T) {
	// "Siemens" and "Siemens AG" normalize identically, so this resolves with
	// full confidence despite not being a literal exact match.
	eng := testEngine()

	outcome, err := eng.Lookup("Siemens", LookupOptions{})
	require.NoError(t, err)

	assert.Equal(t, model.StatusWhitelisted, outcome.Status)
	assert.InDelta(t, 1.0, outcome.Confidence, 0.001)
	assert.Empty(t, outcome.Warnings)
	require.NotNil(t, outcome.BestMatch)
	assert.Equal(t, "Siemens AG", outcome.BestMatch.Record.Name)
}

func TestEngineLookupExact(t *testing.T) {
	eng := testEngine()

	outcome, err := eng.Lookup("fake company gmbh", LookupOptions{})
	require.NoError(t, err)

	assert.Equal(t, model.StatusBlacklisted, outcome.Status)
	assert.Equal(t, 1.0, outcome.Confidence)
	assert.Empty(t, outcome.Warnings)
	require.NotNil(t, outcome.BestMatch)
	assert.True(t, outcome.BestMatch.IsExact)
}

func TestEngineLookupConflicting(t *testing.T) {
	eng := New()
	eng.Swap([]model.CompanyRecord{
		{Name: "Siemens AG", Status: model.StatusWhitelisted},
		{Name: "Siemens Consulting Ltd", Status: model.StatusBlacklisted},
	})

	outcome, err := eng.Lookup("Siemens", LookupOptions{})
	require.NoError(t, err)

	assert.Equal(t, model.StatusWhitelisted, outcome.Status)
	assert.InDelta(t, 0.7, outcome.Confidence, 0.01)
	assert.Equal(t, []string{WarnConflicting}, outcome.Warnings)
}

func TestEngineLookupNearThreshold(t *testing.T) {
	eng := testEngine()

	outcome, err := eng.Lookup("Volkswage", LookupOptions{})
	require.NoError(t, err)

	assert.Equal(t, model.StatusWhitelisted, outcome.Status)
	assert.InDelta(t, 0.77, outcome.Confidence, 0.01)
	assert.Contains(t, outcome.Warnings, WarnNearThreshold)
}

func TestEngineLookupUnknown(t *testing.T) {
	eng := testEngine()

	outcome, err := eng.Lookup("Quantum Pharma", LookupOptions{})
	require.NoError(t, err)

	assert.Equal(t, model.StatusUnknown, outcome.Status)
	assert.Equal(t, 0.0, outcome.Confidence)
	assert.Nil(t, outcome.BestMatch)
}

func TestEngineLookupIncludeBelowThreshold(t *testing.T) {
	eng := testEngine()

	outcome, err := eng.Lookup("Quantum Pharma", LookupOptions{IncludeBelowThreshold: true})
	require.NoError(t, err)

	// Status stays Unknown, but the caller can inspect what was considered.
	assert.Equal(t, model.StatusUnknown, outcome.Status)
	assert.NotEmpty(t, outcome.AllMatches)
	for _, m := range outcome.AllMatches {
		assert.Less(t, m.Score, DefaultThreshold)
	}
}

func TestEngineLookupMaxResults(t *testing.T) {
	eng := testEngine()

	outcome, err := eng.Lookup("Company", LookupOptions{MaxResults: 2, IncludeBelowThreshold: true})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(outcome.AllMatches), 2)
}

func TestEngineSwapVisibility(t *testing.T) {
	eng := New()
	eng.Swap([]model.CompanyRecord{
		{Name: "Siemens AG", Status: model.StatusWhitelisted},
	})

	outcome, err := eng.Lookup("Siemens", LookupOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusWhitelisted, outcome.Status)

	eng.Swap([]model.CompanyRecord{
		{Name: "Siemens AG", Status: model.StatusBlacklisted},
	})

	outcome, err = eng.Lookup("Siemens", LookupOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusBlacklisted, outcome.Status)
}

func TestEngineIsApproved(t *testing.T) {
	eng := testEngine()

	approved, err := eng.IsApproved("Siemens AG")
	require.NoError(t, err)
	assert.True(t, approved)

	approved, err = eng.IsApproved("Fake Company GmbH")
	require.NoError(t, err)
	assert.False(t, approved)

	// Resolves whitelisted but confidence 0.77 sits under the bar.
	approved, err = eng.IsApproved("Volkswage")
	require.NoError(t, err)
	assert.False(t, approved)
}

func TestEngineIsBlocked(t *testing.T) {
	eng := testEngine()

	blocked, err := eng.IsBlocked("Fake Company GmbH")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = eng.IsBlocked("Siemens AG")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestEngineList(t *testing.T) {
	eng := testEngine()

	all := eng.List("")
	assert.Len(t, all, 4)
	// Load order preserved.
	assert.Equal(t, "Siemens AG", all[0].Name)

	whitelisted := eng.List(model.StatusWhitelisted)
	assert.Len(t, whitelisted, 2)
	for _, r := range whitelisted {
		assert.Equal(t, model.StatusWhitelisted, r.Status)
	}

	assert.Nil(t, New().List(""))
}

func TestEngineStats(t *testing.T) {
	eng := testEngine()

	stats := eng.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Whitelisted)
	assert.Equal(t, 2, stats.Blacklisted)
	assert.Equal(t, []string{"Automotive", "Industrial"}, stats.Categories)
}

func TestEngineStatsEmpty(t *testing.T) {
	stats := New().Stats()
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.Categories)
}
