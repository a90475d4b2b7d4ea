package location

import "testing"

func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool       { return &b }

func TestNewLocationValidate(t *testing.T) {
	valid := func() NewLocation {
		return NewLocation{
			Name:                  "Standort Mitte",
			CityID:                1,
			PassportPhotosOffered: true,
			PassportPhotoPrice:    floatPtr(9.5),
			OfferedCourses:        []string{CourseBasic, CourseAdvanced},
		}
	}

	tests := []struct {
		name    string
		mutate  func(nl *NewLocation)
		wantErr bool
	}{
		{name: "valid", mutate: func(nl *NewLocation) {}},
		{name: "missing name", mutate: func(nl *NewLocation) { nl.Name = "" }, wantErr: true},
		{name: "missing city", mutate: func(nl *NewLocation) { nl.CityID = 0 }, wantErr: true},
		{name: "negative price", mutate: func(nl *NewLocation) { nl.PassportPhotoPrice = floatPtr(-1) }, wantErr: true},
		{name: "unknown offered course", mutate: func(nl *NewLocation) { nl.OfferedCourses = []string{"lol"} }, wantErr: true},
		{name: "zero max participants", mutate: func(nl *NewLocation) { nl.MaximumParticipants = intPtr(0) }, wantErr: true},
		{name: "bad conditions email", mutate: func(nl *NewLocation) {
			nl.Conditions = &NewConditions{ContactPerson: "Hans", ContactEmail: "lol"}
		}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nl := valid()
			tt.mutate(&nl)
			if err := nl.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("price dropped when service not offered", func(t *testing.T) {
		nl := valid()
		nl.PassportPhotosOffered = false
		nl.VisionTestOffered = false
		nl.VisionTestPrice = floatPtr(5)
		if err := nl.Validate(); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if nl.PassportPhotoPrice != nil || nl.VisionTestPrice != nil {
			t.Errorf("prices = (%v, %v), want both nil", nl.PassportPhotoPrice, nl.VisionTestPrice)
		}
	})
}

func TestUpdateLocationValidate(t *testing.T) {
	orig := Location{
		ID:                    1,
		Name:                  "Standort Mitte",
		CityID:                1,
		PassportPhotosOffered: true,
		PassportPhotoPrice:    floatPtr(9.5),
	}

	t.Run("zero name keeps original", func(t *testing.T) {
		ul := UpdateLocation{}
		if err := ul.Validate(orig); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if ul.Name != orig.Name {
			t.Errorf("ul.Name = %s, want %s", ul.Name, orig.Name)
		}
	})

	t.Run("price dropped when flag turned off", func(t *testing.T) {
		ul := UpdateLocation{PassportPhotosOffered: boolPtr(false), PassportPhotoPrice: floatPtr(12)}
		if err := ul.Validate(orig); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if ul.PassportPhotoPrice != nil {
			t.Errorf("ul.PassportPhotoPrice = %v, want nil", ul.PassportPhotoPrice)
		}
	})

	t.Run("price kept under original flag", func(t *testing.T) {
		ul := UpdateLocation{PassportPhotoPrice: floatPtr(12)}
		if err := ul.Validate(orig); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if ul.PassportPhotoPrice == nil || *ul.PassportPhotoPrice != 12 {
			t.Errorf("ul.PassportPhotoPrice = %v, want 12", ul.PassportPhotoPrice)
		}
	})

	t.Run("vision price dropped while flag off", func(t *testing.T) {
		ul := UpdateLocation{VisionTestPrice: floatPtr(5)}
		if err := ul.Validate(orig); err != nil {
			t.Fatalf("Validate() unexpected error = %v", err)
		}
		if ul.VisionTestPrice != nil {
			t.Errorf("ul.VisionTestPrice = %v, want nil", ul.VisionTestPrice)
		}
	})
}

func TestQueryFilterMatch(t *testing.T) {
	loc := Location{Name: "Standort Mitte", CityID: 3}

	tests := []struct {
		name   string
		filter QueryFilter
		want   bool
	}{
		{name: "empty matches", filter: QueryFilter{}, want: true},
		{name: "search match", filter: QueryFilter{Search: "mitte"}, want: true},
		{name: "search miss", filter: QueryFilter{Search: "nord"}, want: false},
		{name: "city match", filter: QueryFilter{CityID: intPtr(3)}, want: true},
		{name: "city miss", filter: QueryFilter{CityID: intPtr(4)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Clean()
			if got := tt.filter.Match(loc); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateConditionsValidate(t *testing.T) {
	orig := Conditions{ID: 1, ContactPerson: "Hans Meier"}

	uc := UpdateConditions{}
	if err := uc.Validate(orig); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
	if uc.ContactPerson != orig.ContactPerson {
		t.Errorf("uc.ContactPerson = %s, want %s", uc.ContactPerson, orig.ContactPerson)
	}

	uc = UpdateConditions{ContactEmail: "lol"}
	if err := uc.Validate(orig); err == nil {
		t.Error("Validate() expected error on invalid email")
	}
}
