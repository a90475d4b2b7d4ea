package course

import (
	"testing"

	"github.com/lernfeld/kursadmin/core"
)

func intPtr(i int) *int { return &i }

func TestNewCourseValidate(t *testing.T) {
	valid := func() NewCourse {
		return NewCourse{
			Name:      "CPR Training",
			Date:      "2025-05-10",
			StartTime: "09:00",
			EndTime:   "17:00",
			Capacity:  12,
			Price:     99.5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(nc *NewCourse)
		wantErr bool
	}{
		{name: "valid", mutate: func(nc *NewCourse) {}},
		{name: "missing name", mutate: func(nc *NewCourse) { nc.Name = "" }, wantErr: true},
		{name: "bad date", mutate: func(nc *NewCourse) { nc.Date = "10.05.2025" }, wantErr: true},
		{name: "bad start time", mutate: func(nc *NewCourse) { nc.StartTime = "9am" }, wantErr: true},
		{name: "zero capacity", mutate: func(nc *NewCourse) { nc.Capacity = 0 }, wantErr: true},
		{name: "negative price", mutate: func(nc *NewCourse) { nc.Price = -1 }, wantErr: true},
		{name: "bad status", mutate: func(nc *NewCourse) { nc.Status = "lol" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nc := valid()
			tt.mutate(&nc)
			if err := nc.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("status defaults to open", func(t *testing.T) {
		nc := valid()
		if err := nc.Validate(); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if nc.Status != StatusOpen {
			t.Errorf("nc.Status = %s, want %s", nc.Status, StatusOpen)
		}
	})
}

func TestUpdateCourseValidate(t *testing.T) {
	orig := Course{ID: 1, Name: "CPR Training", Capacity: 12, Enrolled: 10}

	t.Run("zero name keeps original", func(t *testing.T) {
		uc := UpdateCourse{}
		if err := uc.Validate(orig); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if uc.Name != orig.Name {
			t.Errorf("uc.Name = %s, want %s", uc.Name, orig.Name)
		}
	})

	t.Run("enrolled over new capacity", func(t *testing.T) {
		uc := UpdateCourse{Capacity: intPtr(8)}
		err := uc.Validate(orig)
		if _, ok := err.(*core.ValidationError); !ok {
			t.Errorf("Validate() error = %v, want ValidationError", err)
		}
	})

	t.Run("enrolled over original capacity", func(t *testing.T) {
		uc := UpdateCourse{Enrolled: intPtr(13)}
		err := uc.Validate(orig)
		if _, ok := err.(*core.ValidationError); !ok {
			t.Errorf("Validate() error = %v, want ValidationError", err)
		}
	})

	t.Run("enrolled and capacity raised together", func(t *testing.T) {
		uc := UpdateCourse{Capacity: intPtr(20), Enrolled: intPtr(15)}
		if err := uc.Validate(orig); err != nil {
			t.Errorf("Validate() unexpected error = %v", err)
		}
	})
}

func TestQueryFilterMatch(t *testing.T) {
	c := Course{
		Name:        "First Aid Basics",
		Description: "Covers bandaging and CPR",
		Status:      StatusOpen,
		TrainerID:   intPtr(7),
	}
	unassigned := Course{Name: "Night Shift", Status: StatusClosed}

	tests := []struct {
		name   string
		filter QueryFilter
		course Course
		want   bool
	}{
		{name: "empty matches", filter: QueryFilter{}, course: c, want: true},
		{name: "search on name", filter: QueryFilter{Search: "first aid"}, course: c, want: true},
		{name: "search on description", filter: QueryFilter{Search: "cpr"}, course: c, want: true},
		{name: "search miss", filter: QueryFilter{Search: "rescue"}, course: c, want: false},
		{name: "status match", filter: QueryFilter{Status: StatusOpen}, course: c, want: true},
		{name: "status miss", filter: QueryFilter{Status: StatusCancelled}, course: c, want: false},
		{name: "trainer match", filter: QueryFilter{TrainerID: intPtr(7)}, course: c, want: true},
		{name: "trainer miss", filter: QueryFilter{TrainerID: intPtr(8)}, course: c, want: false},
		{name: "trainer filter on unassigned", filter: QueryFilter{TrainerID: intPtr(7)}, course: unassigned, want: false},
		{name: "unassigned match", filter: QueryFilter{Unassigned: true}, course: unassigned, want: true},
		{name: "unassigned miss", filter: QueryFilter{Unassigned: true}, course: c, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Clean()
			if got := tt.filter.Match(tt.course); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}
