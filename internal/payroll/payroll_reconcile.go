package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type MergePolicy string

const (
	// MergeSum folds a duplicate group into one new row whose amounts are
	// the per-field sums.
	MergeSum MergePolicy = "sum"
	// MergeKeepLatest keeps the row with the highest id and drops the rest.
	MergeKeepLatest MergePolicy = "latest"
)

func ParseMergePolicy(v string) (MergePolicy, error) {
	switch MergePolicy(strings.ToLower(strings.TrimSpace(v))) {
	case MergeSum, "":
		return MergeSum, nil
	case MergeKeepLatest:
		return MergeKeepLatest, nil
	}
	return "", fmt.Errorf("unknown merge policy %q", v)
}

const notesSeparator = " | "

// MergeGroup is the plan for one key that has more than one row.
type MergeGroup struct {
	Key     Key
	Members []Payroll
	// Result is the row that survives. Under MergeSum it is a new row (ID 0).
	Result Payroll
	// RemoveIDs are the stored rows to delete. Under MergeSum that is every
	// member; under MergeKeepLatest every member except Result.
	RemoveIDs []uint
}

// Removed is the number of rows the group loses.
func (g MergeGroup) Removed() int {
	return len(g.Members) - 1
}

type keyGroup struct {
	key     Key
	members []Payroll
}

func groupByKey(records []Payroll) []keyGroup {
	index := map[Key]int{}
	var groups []keyGroup
	for _, r := range records {
		k := KeyOf(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, keyGroup{key: k})
		}
		groups[i].members = append(groups[i].members, r)
	}
	return groups
}

// PlanMerge returns one MergeGroup per key that occurs more than once, in
// order of first appearance.
func PlanMerge(records []Payroll, policy MergePolicy, now time.Time) []MergeGroup {
	var plan []MergeGroup
	for _, g := range groupByKey(records) {
		if len(g.members) < 2 {
			continue
		}
		plan = append(plan, planGroup(g, policy, now))
	}
	return plan
}

func planGroup(g keyGroup, policy MergePolicy, now time.Time) MergeGroup {
	mg := MergeGroup{Key: g.key, Members: g.members}

	if policy == MergeKeepLatest {
		latest := 0
		for i, m := range g.members {
			if m.ID >= g.members[latest].ID {
				latest = i
			}
		}
		mg.Result = g.members[latest]
		for i, m := range g.members {
			if i != latest {
				mg.RemoveIDs = append(mg.RemoveIDs, m.ID)
			}
		}
		return mg
	}

	mg.Result = sumGroup(g, now)
	for _, m := range g.members {
		mg.RemoveIDs = append(mg.RemoveIDs, m.ID)
	}
	return mg
}

func sumGroup(g keyGroup, now time.Time) Payroll {
	out := Payroll{
		EmployeeID:  g.key.EmployeeID,
		PeriodStart: g.key.PeriodStart,
		PeriodEnd:   g.key.PeriodEnd,
		CreatedAt:   now,
	}
	for _, field := range AllFields() {
		sum := decimal.Zero
		present := false
		for _, m := range g.members {
			if m.Present(field) {
				present = true
				sum = sum.Add(m.Amount(field))
			}
		}
		if present {
			out.SetAmount(field, sum)
		}
	}

	notes := make([]string, 0, len(g.members))
	for _, m := range g.members {
		notes = append(notes, m.Notes)
	}
	out.Notes = MergeNotes(notes)
	return out
}

// MergeNotes joins the distinct non-empty notes in order, skipping the
// textual nulls spreadsheets leave behind.
func MergeNotes(notes []string) string {
	seen := map[string]bool{}
	var keep []string
	for _, n := range notes {
		n = strings.TrimSpace(n)
		if isBlankNote(n) || seen[n] {
			continue
		}
		seen[n] = true
		keep = append(keep, n)
	}
	return strings.Join(keep, notesSeparator)
}

func isBlankNote(n string) bool {
	switch strings.ToLower(n) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}

// Reconcile collapses duplicate keys in memory. Rows without duplicates pass
// through untouched and keep their position; a merged group takes the
// position of its first member.
func Reconcile(records []Payroll, policy MergePolicy, now time.Time) ([]Payroll, int) {
	merged := make([]Payroll, 0, len(records))
	removed := 0
	for _, g := range groupByKey(records) {
		if len(g.members) == 1 {
			merged = append(merged, g.members[0])
			continue
		}
		mg := planGroup(g, policy, now)
		merged = append(merged, mg.Result)
		removed += mg.Removed()
	}
	return merged, removed
}

// LastPerKey applies rows in order the way repeated upserts would: for each
// key only the last row survives, placed where the key first appeared. The
// count is how many rows were overwritten.
func LastPerKey(records []Payroll) ([]Payroll, int) {
	groups := groupByKey(records)
	out := make([]Payroll, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.members[len(g.members)-1])
	}
	return out, len(records) - len(out)
}
