package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(v int) *int {
	return &v
}

func TestSeedWeekBucketsCoversRangeWithoutGaps(t *testing.T) {
	// Wed Jan 10 to Tue Feb 20 spans 7 calendar weeks (Mon Jan 8 through
	// Sun Feb 25).
	buckets := SeedWeekBuckets(date(2024, 1, 10), date(2024, 2, 20))
	ordered := SortedBuckets(buckets)

	if len(ordered) != 7 {
		t.Fatalf("seeded %d weeks, want 7", len(ordered))
	}
	for i, b := range ordered {
		want := date(2024, 1, 8).AddDate(0, 0, 7*i)
		if !b.Order.Equal(want) {
			t.Fatalf("week %d order = %v, want %v", i, b.Order, want)
		}
	}
	if !ordered[0].RangeStart.Equal(date(2024, 1, 10)) {
		t.Fatalf("first week should clamp to range start, got %v", ordered[0].RangeStart)
	}
	if !ordered[len(ordered)-1].RangeEnd.Equal(date(2024, 2, 20)) {
		t.Fatalf("last week should clamp to range end, got %v", ordered[len(ordered)-1].RangeEnd)
	}
}

func TestAggregateRecordsSalesAndLines(t *testing.T) {
	start, end := date(2024, 3, 4), date(2024, 3, 8)
	buckets := SeedWeekBuckets(start, end)

	sales := []Sale{
		{
			Id:   1,
			Date: "2024-03-04",
			Lines: []SaleLine{
				{Quantity: dec("2"), Cost: dec("40"), Total: dec("100"), Product: Product{Name: "Refresco 600ml"}},
				{Quantity: dec("1"), Cost: dec("30"), Total: dec("50"), Active: intPtr(0), Product: Product{Name: "Botana"}},
			},
		},
		{Id: 2, Date: "2024-03-05", Status: StatusQuotation, Lines: []SaleLine{{Quantity: dec("1"), Total: dec("999")}}},
		{Id: 3, Date: "2024-03-05", Active: intPtr(0), Lines: []SaleLine{{Quantity: dec("1"), Total: dec("777")}}},
	}
	expenses := []Expense{
		{Id: 1, Amount: dec("30"), Date: "2024-03-06"},
		{Id: 2, Amount: dec("99"), Date: "2024-03-06", Active: intPtr(0)},
	}
	returns := []Return{
		{Id: 1, Total: dec("25"), Date: "2024-03-01", ReturnDate: "2024-03-05"},
	}

	quantities := AggregateRecords(buckets, sales, expenses, returns, start, end)

	b, ok := buckets["2024-03-W2"]
	if !ok {
		t.Fatalf("bucket 2024-03-W2 missing, have %d buckets", len(buckets))
	}
	if !b.Revenue.Equal(dec("100")) {
		t.Fatalf("revenue = %s, want 100 (inactive line and quotation excluded)", b.Revenue)
	}
	if !b.Cost.Equal(dec("80")) {
		t.Fatalf("cost = %s, want 80 (unit cost 40 x qty 2)", b.Cost)
	}
	if !b.Expense.Equal(dec("30")) {
		t.Fatalf("expense = %s, want 30 (inactive expense excluded)", b.Expense)
	}
	if !b.Returned.Equal(dec("25")) {
		t.Fatalf("returned = %s, want 25 keyed by return date", b.Returned)
	}
	if !b.Utility().Equal(dec("70")) {
		t.Fatalf("utility = %s, want 70", b.Utility())
	}

	if qty := quantities["Refresco 600ml"]; !qty.Equal(dec("2")) {
		t.Fatalf("counter = %s, want 2", qty)
	}
	if _, ok := quantities["Botana"]; ok {
		t.Fatalf("inactive line must not feed the product counter")
	}
}

func TestAggregateRecordsDiscountedRevenue(t *testing.T) {
	start, end := date(2024, 3, 4), date(2024, 3, 8)

	cases := []struct {
		name string
		sale Sale
		want decimal.Decimal
	}{
		{
			"header discount",
			Sale{Date: "2024-03-04", Discount: dec("10"), Lines: []SaleLine{{Quantity: dec("1"), Total: dec("100")}}},
			dec("100"),
		},
		{
			"line discount",
			Sale{Date: "2024-03-04", Lines: []SaleLine{{Quantity: dec("1"), Total: dec("80"), Discount: dec("5")}}},
			dec("80"),
		},
		{
			"discount on inactive line does not count",
			Sale{Date: "2024-03-04", Lines: []SaleLine{
				{Quantity: dec("1"), Total: dec("60")},
				{Quantity: dec("1"), Total: dec("40"), Discount: dec("5"), Active: intPtr(0)},
			}},
			decimal.Zero,
		},
		{
			"discount with zero revenue does not count",
			Sale{Date: "2024-03-04", Discount: dec("10"), Lines: []SaleLine{{Quantity: dec("1"), Total: dec("0")}}},
			decimal.Zero,
		},
	}

	for _, tc := range cases {
		buckets := SeedWeekBuckets(start, end)
		AggregateRecords(buckets, []Sale{tc.sale}, nil, nil, start, end)
		got := buckets["2024-03-W2"].DiscountedRevenue
		if !got.Equal(tc.want) {
			t.Fatalf("%s: discounted = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestAggregateRecordsSkipsUnparseableDates(t *testing.T) {
	start, end := date(2024, 3, 4), date(2024, 3, 8)
	buckets := SeedWeekBuckets(start, end)
	seeded := len(buckets)

	AggregateRecords(buckets,
		[]Sale{{Date: "not-a-date", Lines: []SaleLine{{Quantity: dec("1"), Total: dec("10")}}}},
		[]Expense{{Amount: dec("5"), Date: ""}},
		[]Return{{Total: dec("3"), Date: "32/13/2024"}},
		start, end)

	if len(buckets) != seeded {
		t.Fatalf("unparseable dates must not create buckets: %d -> %d", seeded, len(buckets))
	}
	if !buckets["2024-03-W2"].Revenue.IsZero() {
		t.Fatalf("unparseable sale leaked into a bucket")
	}
}

func TestAggregateRecordsOutOfRangeCreatesOwnBucket(t *testing.T) {
	start, end := date(2024, 3, 4), date(2024, 3, 8)
	buckets := SeedWeekBuckets(start, end)

	AggregateRecords(buckets, []Sale{
		{Date: "2024-05-01", Lines: []SaleLine{{Quantity: dec("1"), Total: dec("42")}}},
	}, nil, nil, start, end)

	var found bool
	for _, b := range buckets {
		if b.Revenue.Equal(dec("42")) {
			found = true
		}
	}
	if !found {
		t.Fatalf("out-of-range sale should land in a bucket of its own week")
	}
}

func TestAggregateRecordsIsDeterministic(t *testing.T) {
	start, end := date(2024, 3, 4), date(2024, 3, 15)
	sales := []Sale{
		{Date: "2024-03-05", Lines: []SaleLine{{Quantity: dec("2"), Cost: dec("10"), Total: dec("50"), Product: Product{Name: "Pan"}}}},
		{Date: "2024-03-12", Lines: []SaleLine{{Quantity: dec("1"), Cost: dec("5"), Total: dec("20"), Product: Product{Name: "Leche"}}}},
	}
	expenses := []Expense{{Amount: dec("7"), Date: "2024-03-06"}}

	run := func() []WeekBucket {
		buckets := SeedWeekBuckets(start, end)
		AggregateRecords(buckets, sales, expenses, nil, start, end)
		return SortedBuckets(buckets)
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("runs produced %d vs %d buckets", len(first), len(second))
	}
	for i := range first {
		if first[i].Key != second[i].Key || !first[i].Revenue.Equal(second[i].Revenue) ||
			!first[i].Expense.Equal(second[i].Expense) || !first[i].Cost.Equal(second[i].Cost) {
			t.Fatalf("bucket %d differs between identical runs", i)
		}
	}
}

func TestFilterBucketsByWeeks(t *testing.T) {
	start, end := date(2024, 3, 4), date(2024, 3, 15)
	ordered := SortedBuckets(SeedWeekBuckets(start, end))
	if len(ordered) != 2 {
		t.Fatalf("expected 2 seeded weeks, got %d", len(ordered))
	}

	// No month selected: overlap filter only.
	all := FilterBucketsByWeeks(ordered, start, end, "", []int{1})
	if len(all) != 2 {
		t.Fatalf("without a month selection all overlapping weeks stay, got %d", len(all))
	}

	// Month + zero-based week indices: keep only week index 2 (Mar 4 week).
	picked := FilterBucketsByWeeks(ordered, start, end, "2024-03", []int{1})
	if len(picked) != 1 || picked[0].WeekIndex != 2 {
		t.Fatalf("week filter picked %d buckets, want only weekIndex 2", len(picked))
	}

	none := FilterBucketsByWeeks(ordered, start, end, "2024-04", []int{1})
	if len(none) != 0 {
		t.Fatalf("mismatched month should drop everything, got %d", len(none))
	}
}

func TestFilterByWeekSlices(t *testing.T) {
	sales := []Sale{
		{Id: 1, Date: "2024-03-29"},
		{Id: 2, Date: "2024-03-03"},
		{Id: 3, Date: "2024-03-05", Active: intPtr(0)},
	}

	kept := FilterByWeekSlices(sales, []int{3})
	if len(kept) != 1 || kept[0].Id != 1 {
		t.Fatalf("slice 3 should keep only the day-29 sale, got %d", len(kept))
	}

	noSelection := FilterByWeekSlices(sales, nil)
	if len(noSelection) != 2 {
		t.Fatalf("no selection keeps all active records, got %d", len(noSelection))
	}
}

func TestLeastSoldProductsOrdering(t *testing.T) {
	quantities := map[string]decimal.Decimal{
		"Azúcar": dec("5"),
		"Café":   dec("1"),
		"Leche":  dec("1"),
		"Pan":    dec("9"),
	}

	products := LeastSoldProducts(quantities, 3)
	if len(products) != 3 {
		t.Fatalf("limit not applied, got %d", len(products))
	}
	wantNames := []string{"Café", "Leche", "Azúcar"}
	for i, want := range wantNames {
		if products[i].Name != want {
			t.Fatalf("position %d = %q, want %q", i, products[i].Name, want)
		}
	}
}

func TestParseRecordDate(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-03-04", date(2024, 3, 4), true},
		{"2024-03-04T18:30:00", date(2024, 3, 4), true},
		{"2024-03-04T18:30:00Z", date(2024, 3, 4), true},
		{"", time.Time{}, false},
		{"04/03/2024", time.Time{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseRecordDate(tc.input)
		if ok != tc.ok {
			t.Fatalf("ParseRecordDate(%q) ok = %v, want %v", tc.input, ok, tc.ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Fatalf("ParseRecordDate(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
