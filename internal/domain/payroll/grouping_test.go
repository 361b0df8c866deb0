package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/payroll"
)

func groupingEntries(t *testing.T) []entity.PayrollEntry {
	t.Helper()
	rows := []struct {
		gross    string
		category string
		resident bool
	}{
		{"500000", entity.TaxCategoryStandard, true},
		{"300000", entity.TaxCategoryStandard, true},
		{"250000", entity.TaxCategoryPensioner, true},
		{"400000", entity.TaxCategoryStandard, false},
	}
	out := make([]entity.PayrollEntry, 0, len(rows))
	for i, s := range rows {
		calc, err := payroll.CalculateEmployee(dec(s.gross), testRates())
		require.NoError(t, err)
		e := entity.PayrollEntry{
			ID:          string(rune('a' + i)),
			TaxCategory: s.category,
			IsResident:  s.resident,
		}
		calc.Apply(&e)
		out = append(out, e)
	}
	return out
}

func TestGroupEntries_ByTaxCategory(t *testing.T) {
	groups := payroll.GroupEntries(groupingEntries(t), payroll.GroupByTaxCategory)

	require.Len(t, groups, 2)
	std := groups[entity.TaxCategoryStandard]
	assert.Equal(t, 3, std.Count)
	assert.True(t, std.GrossSum.Equal(dec("1200000")), "брутто: %s", std.GrossSum)

	pens := groups[entity.TaxCategoryPensioner]
	assert.Equal(t, 1, pens.Count)
	assert.True(t, pens.GrossSum.Equal(dec("250000")))
}

func TestGroupEntries_ByResidency(t *testing.T) {
	groups := payroll.GroupEntries(groupingEntries(t), payroll.GroupByResidency)

	require.Len(t, groups, 2)
	assert.Equal(t, 3, groups["resident"].Count)
	assert.Equal(t, 1, groups["non_resident"].Count)
	assert.True(t, groups["non_resident"].GrossSum.Equal(dec("400000")))
}

// Суммы групп сходятся с общим итогом: группировка ничего не теряет и не пересчитывает.
func TestGroupEntries_SumsMatchTotal(t *testing.T) {
	entries := groupingEntries(t)
	total := payroll.Aggregate(entries, nil)

	for _, key := range []string{payroll.GroupByTaxCategory, payroll.GroupByResidency, payroll.GroupByContractType} {
		groups := payroll.GroupEntries(entries, key)
		var gross, net = dec("0"), dec("0")
		count := 0
		for _, g := range groups {
			gross = gross.Add(g.GrossSum)
			net = net.Add(g.NetSum)
			count += g.Count
		}
		assert.Equal(t, len(entries), count, "ключ %s", key)
		assert.True(t, gross.Equal(total.Employees.Gross), "ключ %s: брутто %s", key, gross)
		assert.True(t, net.Equal(total.Employees.Net), "ключ %s: нетто %s", key, net)
	}
}

// Неизвестный ключ — пустой результат, не паника и не ошибка.
func TestGroupEntries_UnknownKey(t *testing.T) {
	groups := payroll.GroupEntries(groupingEntries(t), "department")
	assert.Empty(t, groups)
}

func TestGroupEntries_Empty(t *testing.T) {
	assert.Empty(t, payroll.GroupEntries(nil, payroll.GroupByTaxCategory))
}
