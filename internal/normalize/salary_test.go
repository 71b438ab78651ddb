package normalize

import (
	"math"
	"strconv"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestExtractSalaryNumericFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		min  *float64
		max  *float64
		text string
		want SalaryRange
	}{
		{
			name: "raw currency converted to lpa",
			min:  fp(500000),
			max:  fp(1000000),
			want: SalaryRange{Min: fp(5), Max: fp(10)},
		},
		{
			name: "lpa scale used as-is",
			min:  fp(5),
			max:  fp(10),
			want: SalaryRange{Min: fp(5), Max: fp(10)},
		},
		{
			name: "single valid bound keeps open range",
			min:  fp(800000),
			max:  nil,
			want: SalaryRange{Min: fp(8)},
		},
		{
			name: "zero bound rejected, other kept",
			min:  fp(0),
			max:  fp(1200000),
			want: SalaryRange{Max: fp(12)},
		},
		{
			name: "numeric fields shadow text fallback",
			min:  fp(300000),
			max:  fp(600000),
			text: "Rs 25-30",
			want: SalaryRange{Min: fp(3), Max: fp(6)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractSalary(tt.min, tt.max, tt.text)
			assertRange(t, got, tt.want)
		})
	}
}

func TestExtractSalaryRangeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want SalaryRange
	}{
		{
			name: "plain range",
			text: "Rs 25-30",
			want: SalaryRange{Min: fp(25), Max: fp(30)},
		},
		{
			name: "reversed range normalizes identically",
			text: "30-25 LPA",
			want: SalaryRange{Min: fp(25), Max: fp(30)},
		},
		{
			name: "single number is open-ended minimum",
			text: "from 12 LPA",
			want: SalaryRange{Min: fp(12)},
		},
		{
			name: "decimals",
			text: "7.5 - 9.5 LPA",
			want: SalaryRange{Min: fp(7.5), Max: fp(9.5)},
		},
		{
			name: "no numbers yields empty range",
			text: "competitive",
			want: SalaryRange{},
		},
		{
			name: "empty string yields empty range",
			text: "",
			want: SalaryRange{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractSalary(nil, nil, tt.text)
			assertRange(t, got, tt.want)
		})
	}
}

func TestExtractSalaryRejectsInvalidNumerics(t *testing.T) {
	t.Parallel()

	inf := math.Inf(1)
	nan := math.NaN()

	// Invalid numeric fields must fall through to the text strategy, not
	// produce a garbage range.
	got := ExtractSalary(fp(-5), &inf, "Rs 10-12")
	assertRange(t, got, SalaryRange{Min: fp(10), Max: fp(12)})

	got = ExtractSalary(&nan, fp(0), "")
	if !got.Empty() {
		t.Fatalf("expected empty range, got %+v", got)
	}
}

func TestSalaryRangeBounds(t *testing.T) {
	t.Parallel()

	lo, hi := (SalaryRange{}).Bounds()
	if lo != 0 || !math.IsInf(hi, 1) {
		t.Fatalf("expected [0, +Inf], got [%v, %v]", lo, hi)
	}

	lo, hi = (SalaryRange{Min: fp(5)}).Bounds()
	if lo != 5 || !math.IsInf(hi, 1) {
		t.Fatalf("expected [5, +Inf], got [%v, %v]", lo, hi)
	}
}

func TestSalaryRangeOverlaps(t *testing.T) {
	t.Parallel()

	r := SalaryRange{Min: fp(5), Max: fp(10)}

	if !r.Overlaps(10, 15) {
		t.Fatalf("expected touching ranges to overlap")
	}

	if r.Overlaps(10.5, 15) {
		t.Fatalf("expected disjoint ranges not to overlap")
	}

	open := SalaryRange{Min: fp(25)}
	if !open.Overlaps(25, math.Inf(1)) {
		t.Fatalf("expected open range to overlap the top bucket")
	}
}

func TestSalaryRangeSortKeys(t *testing.T) {
	t.Parallel()

	r := SalaryRange{Min: fp(5), Max: fp(10)}
	if r.HighKey() != 10 || r.LowKey() != 5 {
		t.Fatalf("unexpected keys: high=%v low=%v", r.HighKey(), r.LowKey())
	}

	onlyMin := SalaryRange{Min: fp(5)}
	if onlyMin.HighKey() != 5 || onlyMin.LowKey() != 5 {
		t.Fatalf("expected fallback to the present bound")
	}

	empty := SalaryRange{}
	if empty.HighKey() != 0 || empty.LowKey() != 0 {
		t.Fatalf("expected zero keys for empty range")
	}
}

func assertRange(t *testing.T, got, want SalaryRange) {
	t.Helper()

	if !boundEqual(got.Min, want.Min) || !boundEqual(got.Max, want.Max) {
		t.Fatalf("got {%s, %s}, want {%s, %s}",
			boundString(got.Min), boundString(got.Max),
			boundString(want.Min), boundString(want.Max),
		)
	}
}

func boundEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

func boundString(v *float64) string {
	if v == nil {
		return "nil"
	}

	return strconv.FormatFloat(*v, 'g', -1, 64)
}
