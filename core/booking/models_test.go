package booking

import "testing"

func TestQueryFilterMatch(t *testing.T) {
	b := Booking{
		UserName:   "Alice Smith",
		UserEmail:  "alice@test.de",
		CourseName: "CPR Training",
		Date:       "2025-05-10",
		Status:     StatusPending,
	}

	tests := []struct {
		name   string
		filter QueryFilter
		want   bool
	}{
		{name: "empty matches", filter: QueryFilter{}, want: true},
		{name: "search on user name", filter: QueryFilter{Search: "alice"}, want: true},
		{name: "search on email", filter: QueryFilter{Search: "@test.de"}, want: true},
		{name: "search on course name", filter: QueryFilter{Search: "cpr"}, want: true},
		{name: "search miss", filter: QueryFilter{Search: "bob"}, want: false},
		{name: "status match", filter: QueryFilter{Status: StatusPending}, want: true},
		{name: "status miss", filter: QueryFilter{Status: StatusApproved}, want: false},
		{name: "date match", filter: QueryFilter{Date: "2025-05-10"}, want: true},
		{name: "date miss", filter: QueryFilter{Date: "2025-05-11"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Clean()
			if got := tt.filter.Match(b); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRejectBookingValidate(t *testing.T) {
	rb := RejectBooking{}
	if err := rb.Validate(); err == nil {
		t.Error("Validate() expected error on empty notes")
	}

	rb = RejectBooking{Notes: "  does not meet prerequisites  "}
	if err := rb.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
	if rb.Notes != "does not meet prerequisites" {
		t.Errorf("rb.Notes = %q, not trimmed", rb.Notes)
	}
}
