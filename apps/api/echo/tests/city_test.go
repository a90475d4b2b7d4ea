package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/lernfeld/kursadmin/core/user"
)

func Test_cityApi(t *testing.T) {
	env := newTestEnv(t)
	trainer := env.createUser(t, "Jane Smith", "jane@test.de", user.RoleTrainer, true)
	trainerToken := getToken(t, trainer)

	hamburg := env.addCity(t, "Hamburg")
	bremen := env.addCity(t, "Bremen")

	tests := []httpTest{
		{name: "auth required", path: "/v1/staedte", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "get all", path: "/v1/staedte", token: trainerToken, wantData: marshalList(t, hamburg, bremen)},
		{name: "retrieve", path: fmt.Sprintf("/v1/staedte/%d", bremen.ID), token: trainerToken, wantData: marshalObj(t, bremen)},
		{name: "unknown city", path: "/v1/staedte/999", token: trainerToken, wantCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.do(req, rec)
			checkCodeAndData(t, tt, rec)
		})
	}
}
