package instructor

import "testing"

func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestNewInstructorValidate(t *testing.T) {
	valid := func() NewInstructor {
		return NewInstructor{
			FirstName:      "Maria",
			LastName:       "Schmidt",
			DateOfBirth:    "1990-03-15",
			Insurance:      "AOK",
			EmploymentType: EmploymentFullTime,
		}
	}

	tests := []struct {
		name    string
		mutate  func(ni *NewInstructor)
		wantErr bool
	}{
		{name: "valid", mutate: func(ni *NewInstructor) {}},
		{name: "missing first name", mutate: func(ni *NewInstructor) { ni.FirstName = "" }, wantErr: true},
		{name: "bad date of birth", mutate: func(ni *NewInstructor) { ni.DateOfBirth = "15.03.1990" }, wantErr: true},
		{name: "missing insurance", mutate: func(ni *NewInstructor) { ni.Insurance = "" }, wantErr: true},
		{name: "bad employment type", mutate: func(ni *NewInstructor) { ni.EmploymentType = "lol" }, wantErr: true},
		{name: "bad email", mutate: func(ni *NewInstructor) { ni.EmailAddress = "lol" }, wantErr: true},
		{name: "negative salary", mutate: func(ni *NewInstructor) { ni.Salary = floatPtr(-1) }, wantErr: true},
		{name: "bad study start", mutate: func(ni *NewInstructor) { ni.StudyStart = "someday" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ni := valid()
			tt.mutate(&ni)
			if err := ni.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("bafoeg amount dropped without flag", func(t *testing.T) {
		ni := valid()
		ni.BafoegAmount = floatPtr(300)
		if err := ni.Validate(); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if ni.BafoegAmount != nil {
			t.Errorf("ni.BafoegAmount = %v, want nil", ni.BafoegAmount)
		}
	})

	t.Run("bafoeg amount kept with flag", func(t *testing.T) {
		ni := valid()
		ni.Bafoeg = true
		ni.BafoegAmount = floatPtr(300)
		if err := ni.Validate(); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if ni.BafoegAmount == nil || *ni.BafoegAmount != 300 {
			t.Errorf("ni.BafoegAmount = %v, want 300", ni.BafoegAmount)
		}
	})
}

func TestUpdateInstructorValidate(t *testing.T) {
	orig := Instructor{ID: 1, FirstName: "Maria", LastName: "Schmidt", Bafoeg: true, BafoegAmount: floatPtr(300)}

	t.Run("zero names keep originals", func(t *testing.T) {
		ui := UpdateInstructor{}
		if err := ui.Validate(orig); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if ui.FirstName != "Maria" || ui.LastName != "Schmidt" {
			t.Errorf("names = (%s, %s)", ui.FirstName, ui.LastName)
		}
	})

	t.Run("amount dropped when flag turned off", func(t *testing.T) {
		ui := UpdateInstructor{Bafoeg: boolPtr(false), BafoegAmount: floatPtr(400)}
		if err := ui.Validate(orig); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if ui.BafoegAmount != nil {
			t.Errorf("ui.BafoegAmount = %v, want nil", ui.BafoegAmount)
		}
	})

	t.Run("amount kept under original flag", func(t *testing.T) {
		ui := UpdateInstructor{BafoegAmount: floatPtr(400)}
		if err := ui.Validate(orig); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if ui.BafoegAmount == nil || *ui.BafoegAmount != 400 {
			t.Errorf("ui.BafoegAmount = %v, want 400", ui.BafoegAmount)
		}
	})
}

func TestQueryFilterMatch(t *testing.T) {
	ins := Instructor{
		FirstName:      "Maria",
		LastName:       "Schmidt",
		EmailAddress:   "maria@test.de",
		EmploymentType: EmploymentFreelance,
		WorkplaceID:    intPtr(2),
	}

	tests := []struct {
		name   string
		filter QueryFilter
		want   bool
	}{
		{name: "empty matches", filter: QueryFilter{}, want: true},
		{name: "search on first name", filter: QueryFilter{Search: "maria"}, want: true},
		{name: "search on last name", filter: QueryFilter{Search: "schmi"}, want: true},
		{name: "search on email", filter: QueryFilter{Search: "@test.de"}, want: true},
		{name: "search miss", filter: QueryFilter{Search: "peter"}, want: false},
		{name: "employment match", filter: QueryFilter{EmploymentType: EmploymentFreelance}, want: true},
		{name: "employment miss", filter: QueryFilter{EmploymentType: EmploymentMiniJob}, want: false},
		{name: "workplace match", filter: QueryFilter{WorkplaceID: intPtr(2)}, want: true},
		{name: "workplace miss", filter: QueryFilter{WorkplaceID: intPtr(3)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Clean()
			if got := tt.filter.Match(ins); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("workplace filter on unassigned", func(t *testing.T) {
		qf := QueryFilter{WorkplaceID: intPtr(2)}
		if qf.Match(Instructor{FirstName: "New"}) {
			t.Error("Match() = true, want false")
		}
	})
}

func TestFullName(t *testing.T) {
	ins := Instructor{FirstName: "Maria", LastName: "Schmidt"}
	if got := ins.FullName(); got != "Maria Schmidt" {
		t.Errorf("FullName() = %s", got)
	}
	ins = Instructor{FirstName: "Maria"}
	if got := ins.FullName(); got != "Maria" {
		t.Errorf("FullName() = %q", got)
	}
}
