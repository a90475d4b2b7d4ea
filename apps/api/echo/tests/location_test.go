package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/lernfeld/kursadmin/core/inventory"
	"github.com/lernfeld/kursadmin/core/location"
	"github.com/lernfeld/kursadmin/core/user"
)

func createLocation(t *testing.T, svc location.Service, name string, cityID int, cond *location.NewConditions) location.Location {
	t.Helper()
	nl := location.NewLocation{Name: name, CityID: cityID, Conditions: cond}
	if err := nl.Validate(); err != nil {
		t.Fatalf("NewLocation.Validate() failed, %v", err)
	}
	loc, err := svc.Create(nl)
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}
	return loc
}

func createArticle(t *testing.T, svc inventory.Service, name string, isCheckbox bool) inventory.Article {
	t.Helper()
	art, err := svc.CreateArticle(inventory.NewArticle{Name: name, IsCheckbox: isCheckbox})
	if err != nil {
		t.Fatalf("CreateArticle() failed, %v", err)
	}
	return art
}

func Test_locationApi_createUpdate(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin User", "admin@test.de", user.RoleAdmin, true)
	trainer := env.createUser(t, "Jane Smith", "jane@test.de", user.RoleTrainer, true)
	adminToken := getToken(t, admin)
	trainerToken := getToken(t, trainer)

	var created location.Location

	t.Run("create requires admin", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/standorte", trainerToken, []byte(`{"name": "Halle Nord", "city_id": 1}`))
		env.do(req, rec)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %d, want 403", rec.Code)
		}
	})

	t.Run("create", func(t *testing.T) {
		// the vision test price must be dropped since the service is not offered
		body := []byte(`{
			"name": "Halle Nord", "city_id": 1,
			"passport_photos_offered": true, "passport_photo_price": 9.5,
			"vision_test_offered": false, "vision_test_price": 6,
			"offered_courses": ["basic_course", "intensive_course"],
			"conditions": {"contact_person": "Herr Weber", "contact_email": "WEBER@Halle.de", "rental_price": 250}
		}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/standorte", adminToken, body)
		env.do(req, rec)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want 201; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if created.PassportPhotoPrice == nil || *created.PassportPhotoPrice != 9.5 {
			t.Errorf("PassportPhotoPrice = %v, want 9.5", created.PassportPhotoPrice)
		}
		if created.VisionTestPrice != nil {
			t.Errorf("VisionTestPrice = %v, want nil", *created.VisionTestPrice)
		}
		if created.ConditionsID == nil {
			t.Error("ConditionsID not set")
		}
	})

	t.Run("create with unknown course tag", func(t *testing.T) {
		body := []byte(`{"name": "Halle Süd", "city_id": 1, "offered_courses": ["diving_course"]}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/standorte", adminToken, body)
		env.do(req, rec)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want 400", rec.Code)
		}
	})

	t.Run("retrieve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/standorte/%d", created.ID), trainerToken)
		env.do(req, rec)
		checkCodeAndData(t, httpTest{wantData: marshalObj(t, created)}, rec)
	})

	t.Run("update requires admin", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/standorte/%d", created.ID), trainerToken, []byte(`{"name": "Umbenannt"}`))
		env.do(req, rec)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %d, want 403", rec.Code)
		}
	})

	t.Run("disabling a service drops its price", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/standorte/%d", created.ID), adminToken,
			[]byte(`{"passport_photos_offered": false, "passport_photo_price": 12}`))
		env.do(req, rec)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var got location.Location
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if got.PassportPhotosOffered || got.PassportPhotoPrice != nil {
			t.Errorf("offered = %v, price = %v; want disabled without price", got.PassportPhotosOffered, got.PassportPhotoPrice)
		}
		if got.Name != created.Name {
			t.Errorf("Name = %q, want %q", got.Name, created.Name)
		}
	})

	t.Run("unknown location", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/standorte/999", adminToken, []byte(`{"name": "X"}`))
		env.do(req, rec)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want 404", rec.Code)
		}
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/standorte/%d", created.ID), adminToken)
		env.do(req, rec)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d, want 204", rec.Code)
		}
		req, rec = newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/standorte/%d", created.ID), adminToken)
		env.do(req, rec)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want 404", rec.Code)
		}
	})
}

func Test_locationApi_query(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin User", "admin@test.de", user.RoleAdmin, true)
	adminToken := getToken(t, admin)

	nord := createLocation(t, env.locationSvc, "Halle Nord", 1, nil)
	sued := createLocation(t, env.locationSvc, "Halle Süd", 1, nil)
	bremen := createLocation(t, env.locationSvc, "Seminarraum Bremen", 2, nil)

	tests := []httpTest{
		{name: "auth required", path: "/v1/standorte", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "get all", path: "/v1/standorte", token: adminToken, wantData: marshalList(t, nord, sued, bremen)},
		{name: "search", path: "/v1/standorte?search=halle", token: adminToken, wantData: marshalList(t, nord, sued)},
		{name: "filter by city", path: "/v1/standorte?city_id=2", token: adminToken, wantData: marshalList(t, bremen)},
		{name: "combined", path: "/v1/standorte?search=halle&city_id=2", token: adminToken, wantData: marshalList(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.do(req, rec)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_locationApi_inventory(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin User", "admin@test.de", user.RoleAdmin, true)
	trainer := env.createUser(t, "Jane Smith", "jane@test.de", user.RoleTrainer, true)
	adminToken := getToken(t, admin)
	trainerToken := getToken(t, trainer)

	loc := createLocation(t, env.locationSvc, "Halle Nord", 1, nil)
	other := createLocation(t, env.locationSvc, "Halle Süd", 1, nil)
	kits := createArticle(t, env.inventorySvc, "Erste-Hilfe-Koffer", false)
	beamer := createArticle(t, env.inventorySvc, "Beamer", true)

	invPath := fmt.Sprintf("/v1/standorte/%d/inventar", loc.ID)

	t.Run("empty inventory", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, invPath, trainerToken)
		env.do(req, rec)
		checkCodeAndData(t, httpTest{wantData: marshalList(t)}, rec)
	})

	var kitsEntry, beamerEntry inventory.Entry

	t.Run("create quantity entry", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{"article_id": kits.ID, "quantity_value": 4})
		req, rec := newAuthRequest(http.MethodPost, invPath, adminToken, body)
		env.do(req, rec)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want 201; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &kitsEntry); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if kitsEntry.QuantityValue != 4 || kitsEntry.LocationID != loc.ID {
			t.Errorf("entry = %+v", kitsEntry)
		}
	})

	t.Run("create checkbox entry", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{"article_id": beamer.ID, "checkbox_value": true})
		req, rec := newAuthRequest(http.MethodPost, invPath, adminToken, body)
		env.do(req, rec)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want 201; body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &beamerEntry); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if !beamerEntry.CheckboxValue {
			t.Errorf("entry = %+v", beamerEntry)
		}
	})

	t.Run("create requires admin", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{"article_id": kits.ID, "quantity_value": 1})
		req, rec := newAuthRequest(http.MethodPost, invPath, trainerToken, body)
		env.do(req, rec)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %d, want 403", rec.Code)
		}
	})

	t.Run("duplicate article", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{"article_id": kits.ID, "quantity_value": 2})
		req, rec := newAuthRequest(http.MethodPost, invPath, adminToken, body)
		env.do(req, rec)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want 400; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("quantity on checkbox article", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{"article_id": beamer.ID, "quantity_value": 2})
		req, rec := newAuthRequest(http.MethodPost, fmt.Sprintf("/v1/standorte/%d/inventar", other.ID), adminToken, body)
		env.do(req, rec)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want 400; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown location", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{"article_id": kits.ID, "quantity_value": 1})
		req, rec := newAuthRequest(http.MethodPost, "/v1/standorte/999/inventar", adminToken, body)
		env.do(req, rec)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want 404", rec.Code)
		}
	})

	t.Run("list entries", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, invPath, trainerToken)
		env.do(req, rec)
		checkCodeAndData(t, httpTest{wantData: marshalList(t, kitsEntry, beamerEntry)}, rec)
	})

	t.Run("update entry", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("%s/%d", invPath, kitsEntry.ID), adminToken,
			[]byte(`{"quantity_value": 6}`))
		env.do(req, rec)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var got inventory.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if got.QuantityValue != 6 {
			t.Errorf("QuantityValue = %d, want 6", got.QuantityValue)
		}
		kitsEntry = got
	})

	t.Run("update entry via wrong location", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/standorte/%d/inventar/%d", other.ID, kitsEntry.ID), adminToken,
			[]byte(`{"quantity_value": 1}`))
		env.do(req, rec)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want 404", rec.Code)
		}
	})

	t.Run("destroy entry", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("%s/%d", invPath, beamerEntry.ID), adminToken)
		env.do(req, rec)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d, want 204", rec.Code)
		}
		req, rec = newAuthRequest(http.MethodGet, invPath, adminToken)
		env.do(req, rec)
		checkCodeAndData(t, httpTest{wantData: marshalList(t, kitsEntry)}, rec)
	})
}

func Test_locationApi_conditions(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin User", "admin@test.de", user.RoleAdmin, true)
	trainer := env.createUser(t, "Jane Smith", "jane@test.de", user.RoleTrainer, true)
	adminToken := getToken(t, admin)
	trainerToken := getToken(t, trainer)

	price := 250.0
	loc := createLocation(t, env.locationSvc, "Halle Nord", 1, &location.NewConditions{
		ContactPerson: "Herr Weber",
		ContactEmail:  "weber@halle.de",
		RentalPrice:   &price,
	})
	if loc.ConditionsID == nil {
		t.Fatal("ConditionsID not set")
	}
	cond, err := env.locationSvc.GetConditions(*loc.ConditionsID)
	if err != nil {
		t.Fatalf("GetConditions() failed, %v", err)
	}
	condPath := fmt.Sprintf("/v1/konditionen/%d", cond.ID)

	t.Run("retrieve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, condPath, trainerToken)
		env.do(req, rec)
		checkCodeAndData(t, httpTest{wantData: marshalObj(t, cond)}, rec)
	})

	t.Run("unknown conditions", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/konditionen/999", trainerToken)
		env.do(req, rec)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want 404", rec.Code)
		}
	})

	t.Run("update requires admin", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, condPath, trainerToken, []byte(`{"rental_price": 300}`))
		env.do(req, rec)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %d, want 403", rec.Code)
		}
	})

	t.Run("update", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, condPath, adminToken, []byte(`{"rental_price": 300, "payment_terms": "monatlich im Voraus"}`))
		env.do(req, rec)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var got location.Conditions
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if got.RentalPrice == nil || *got.RentalPrice != 300 {
			t.Errorf("RentalPrice = %v, want 300", got.RentalPrice)
		}
		if got.ContactPerson != "Herr Weber" {
			t.Errorf("ContactPerson = %q, want unchanged", got.ContactPerson)
		}
		if got.PaymentTerms != "monatlich im Voraus" {
			t.Errorf("PaymentTerms = %q", got.PaymentTerms)
		}
	})
}
