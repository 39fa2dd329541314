package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	aug1     = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	aug15    = time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	mergeNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
)

func TestReconcile_SumMerge(t *testing.T) {
	old := time.Date(2025, 8, 16, 9, 0, 0, 0, time.UTC)
	records := []Payroll{
		{ID: 1, EmployeeID: "EMP001", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("7500"), Notes: "first", CreatedAt: old},
		{ID: 2, EmployeeID: "EMP001 ", PeriodStart: aug1.Add(13 * time.Hour), PeriodEnd: aug15, BasicPay: d("2500"), Notes: "second", CreatedAt: old},
	}

	merged, removed := Reconcile(records, MergeSum, mergeNow)
	assert.Equal(t, 1, removed)
	assert.Len(t, merged, 1)
	assert.True(t, merged[0].BasicPay.Equal(d("10000")))
	assert.Equal(t, "first | second", merged[0].Notes)
	assert.Equal(t, "EMP001", merged[0].EmployeeID)
	assert.Equal(t, mergeNow, merged[0].CreatedAt)
	assert.Equal(t, uint(0), merged[0].ID)
}

func TestReconcile_SumMergeAllFields(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.ID = 2
	b.Bonus = decimal.NullDecimal{}
	b.Late = decimal.NullDecimal{}
	c := sampleRecord()
	c.ID = 3
	c.Bonus = decimal.NullDecimal{}
	c.Undertime = decimal.NullDecimal{}
	c.Late = decimal.NullDecimal{}

	merged, removed := Reconcile([]Payroll{a, b, c}, MergeSum, mergeNow)
	assert.Equal(t, 2, removed)
	m := merged[0]
	assert.True(t, m.BasicPay.Equal(d("22500")))
	assert.True(t, m.Tax.Equal(d("2400")))
	assert.True(t, m.Bonus.Valid)
	assert.True(t, m.Bonus.Decimal.Equal(d("250.50")))
	assert.True(t, m.Undertime.Decimal.Equal(d("150.50")))
	assert.True(t, m.Late.Decimal.Equal(d("10")))
	assert.Equal(t, "Example row", m.Notes)
}

func TestReconcile_OptionalAbsentEverywhereStaysAbsent(t *testing.T) {
	records := []Payroll{
		{ID: 1, EmployeeID: "E1", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("1")},
		{ID: 2, EmployeeID: "E1", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("2")},
	}
	merged, _ := Reconcile(records, MergeSum, mergeNow)
	assert.False(t, merged[0].Bonus.Valid)
	assert.False(t, merged[0].Undertime.Valid)
}

func TestReconcile_KeepLatest(t *testing.T) {
	records := []Payroll{
		{ID: 11, EmployeeID: "EMP001", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("2"), Notes: "b"},
		{ID: 12, EmployeeID: "EMP001", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("3"), Notes: "c"},
		{ID: 10, EmployeeID: "EMP001", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("1"), Notes: "a"},
	}

	merged, removed := Reconcile(records, MergeKeepLatest, mergeNow)
	assert.Equal(t, 2, removed)
	assert.Len(t, merged, 1)
	assert.Equal(t, uint(12), merged[0].ID)
	assert.True(t, merged[0].BasicPay.Equal(d("3")))
	assert.Equal(t, "c", merged[0].Notes)

	plan := PlanMerge(records, MergeKeepLatest, mergeNow)
	assert.Len(t, plan, 1)
	assert.ElementsMatch(t, []uint{10, 11}, plan[0].RemoveIDs)
}

func TestReconcile_NoDuplicatesIsNoop(t *testing.T) {
	created := time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)
	records := []Payroll{
		{ID: 1, EmployeeID: "E1", PeriodStart: aug1, PeriodEnd: aug15, CreatedAt: created},
		{ID: 2, EmployeeID: "E2", PeriodStart: aug1, PeriodEnd: aug15, CreatedAt: created},
		{ID: 3, EmployeeID: "E1", PeriodStart: aug15, PeriodEnd: aug15, CreatedAt: created},
	}

	for _, policy := range []MergePolicy{MergeSum, MergeKeepLatest} {
		merged, removed := Reconcile(records, policy, mergeNow)
		assert.Equal(t, 0, removed)
		assert.Equal(t, records, merged)
		assert.Empty(t, PlanMerge(records, policy, mergeNow))
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	records := []Payroll{
		{ID: 1, EmployeeID: "E1", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("1")},
		{ID: 2, EmployeeID: "E1", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("2")},
		{ID: 3, EmployeeID: "E2", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("5")},
	}
	first, removed := Reconcile(records, MergeSum, mergeNow)
	assert.Equal(t, 1, removed)

	second, removed := Reconcile(first, MergeSum, mergeNow.Add(time.Hour))
	assert.Equal(t, 0, removed)
	assert.Equal(t, first, second)
}

func TestPlanMerge_SumRemovesEveryMember(t *testing.T) {
	records := []Payroll{
		{ID: 7, EmployeeID: "E1", PeriodStart: aug1, PeriodEnd: aug15},
		{ID: 9, EmployeeID: "E2", PeriodStart: aug1, PeriodEnd: aug15},
		{ID: 8, EmployeeID: "E1", PeriodStart: aug1, PeriodEnd: aug15},
	}
	plan := PlanMerge(records, MergeSum, mergeNow)
	assert.Len(t, plan, 1)
	assert.Equal(t, []uint{7, 8}, plan[0].RemoveIDs)
	assert.Equal(t, 1, plan[0].Removed())
	assert.Equal(t, "E1/2025-08-01/2025-08-15", plan[0].Key.String())
}

func TestLastPerKey(t *testing.T) {
	records := []Payroll{
		{EmployeeID: "EMP001", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("7500"), Notes: "draft"},
		{EmployeeID: "EMP002", PeriodStart: aug1, PeriodEnd: aug15, BasicPay: d("100")},
		{EmployeeID: "EMP001 ", PeriodStart: aug1.Add(8 * time.Hour), PeriodEnd: aug15, BasicPay: d("2500"), Notes: "corrected"},
	}

	out, superseded := LastPerKey(records)
	assert.Equal(t, 1, superseded)
	assert.Len(t, out, 2)
	assert.True(t, out[0].BasicPay.Equal(d("2500")))
	assert.Equal(t, "corrected", out[0].Notes)
	assert.Equal(t, "EMP002", out[1].EmployeeID)

	again, n := LastPerKey(out)
	assert.Equal(t, 0, n)
	assert.Equal(t, out, again)
}

func TestMergeNotes(t *testing.T) {
	assert.Equal(t, "first | second", MergeNotes([]string{"first", "", "nan", "first", " second ", "None", "NULL"}))
	assert.Equal(t, "", MergeNotes([]string{"nan", " "}))
	assert.Equal(t, "", MergeNotes(nil))
}

func TestParseMergePolicy(t *testing.T) {
	p, err := ParseMergePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, MergeSum, p)

	p, err = ParseMergePolicy(" LATEST ")
	assert.NoError(t, err)
	assert.Equal(t, MergeKeepLatest, p)

	_, err = ParseMergePolicy("avg")
	assert.Error(t, err)
}
