package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bac-interop/interop-backend/config"
	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/bac/service"
	"github.com/bac-interop/interop-backend/internal/bac/upstream"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeUsers = `<users total_record_count="3">
<user link="https://alma.example/users/1"><primary_id>1</primary_id><first_name>Ana</first_name><last_name>Gómez</last_name></user>
<user link="https://alma.example/users/2"><primary_id>2</primary_id><first_name>Luis</first_name><last_name>Mora</last_name></user>
<user link="https://alma.example/users/3"><primary_id>3</primary_id><first_name>Eva</first_name><last_name>Ruiz</last_name></user>
</users>`

func setupRouter(t *testing.T, usersHandler, pubsHandler http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	usersSrv := httptest.NewServer(usersHandler)
	t.Cleanup(usersSrv.Close)
	pubsSrv := httptest.NewServer(pubsHandler)
	t.Cleanup(pubsSrv.Close)

	users := upstream.NewUsersClient(&config.UsersConfig{BaseURL: usersSrv.URL, APIKey: "k"}, upstream.Options{})
	pubs := upstream.NewPublicationsClient(&config.PublicationsConfig{
		BaseURL: pubsSrv.URL, APIKey: "k", View: "v", Scope: "s", DefaultScopeTerm: "*",
	}, upstream.Options{})

	router := gin.New()
	New(service.NewCatalogService(users, pubs, nil)).Register(router.Group("/bac"))
	return router
}

func unused(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestListUsers(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		_, _ = w.Write([]byte(threeUsers))
	}, unused)

	rr := get(router, "/bac/usuarios?limit=50&offset=0")
	require.Equal(t, http.StatusOK, rr.Code)

	var users []domain.UserRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	require.Len(t, users, 3)
	assert.Equal(t, "Ana Gómez", users[0].Name)

	assert.Equal(t, "items 0-2/3", rr.Header().Get("Content-Range"))
	assert.Equal(t, "3", rr.Header().Get("X-Total-Count"))
	assert.Equal(t, "items", rr.Header().Get("Accept-Ranges"))
}

func TestListUsers_DefaultsAndBounds(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`<users total_record_count="0"/>`))
	}, unused)

	rr := get(router, "/bac/usuarios")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
	assert.Equal(t, "items 0-0/0", rr.Header().Get("Content-Range"))

	for _, q := range []string{"limit=0", "limit=201", "offset=-1", "limit=abc"} {
		rr := get(router, "/bac/usuarios?"+q)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}

func TestListUsers_UpstreamFailure(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("alma down"))
	}, unused)

	rr := get(router, "/bac/usuarios")
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Range"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "upstream unavailable", body["error"])
	assert.Equal(t, float64(500), body["upstream_status"])
	assert.Equal(t, "alma down", body["upstream_body"])
}

func TestListUsers_Malformed(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not xml at all <`))
	}, unused)

	rr := get(router, "/bac/usuarios")
	require.Equal(t, http.StatusBadGateway, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "malformed")
}

func TestGetUser(t *testing.T) {
	router := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/42", r.URL.Path)
		_, _ = w.Write([]byte(`<user><primary_id>42</primary_id><first_name>Ana</first_name>
<contact_info><emails><email preferred="true"><email_address>ana@example.org</email_address></email></emails></contact_info>
</user>`))
	}, unused)

	rr := get(router, "/bac/usuarios/42")
	require.Equal(t, http.StatusOK, rr.Code)

	var user domain.UserDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "42", user.ID)
	require.NotNil(t, user.PreferredEmail)
	assert.Equal(t, "ana@example.org", *user.PreferredEmail)
	assert.Nil(t, user.PreferredPhone)
}

func TestListPublications(t *testing.T) {
	router := setupRouter(t, unused, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "lds08,contains,Técnico", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"info": {"total": 25}, "docs": [
			{"pnx": {"display": {"mms": ["1"], "lds08": ["Técnico"]}}},
			{"pnx": {"display": {"mms": ["2"], "lds08": ["Técnico Avanzado"]}}},
			{"pnx": {"display": {"mms": ["1"], "lds08": ["Técnico"]}}}
		]}`))
	})

	rr := get(router, "/bac/publicaciones?system=T%C3%A9cnico&limit=10&offset=10")
	require.Equal(t, http.StatusOK, rr.Code)

	var pubs []domain.PublicationRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pubs))
	require.Len(t, pubs, 1)
	assert.Equal(t, "1", *pubs[0].ID)

	assert.Equal(t, "items 10-10/25", rr.Header().Get("Content-Range"))
	assert.Equal(t, "25", rr.Header().Get("X-Total-Count"))
	assert.Equal(t, "2", rr.Header().Get("X-Page"))
	assert.Equal(t, "3", rr.Header().Get("X-Total-Pages"))
	assert.Equal(t, "true", rr.Header().Get("X-Has-Next"))
}

func TestListPublications_BlankFilters(t *testing.T) {
	router := setupRouter(t, unused, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "any,contains,*", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"info": {"total": 2}, "docs": [
			{"pnx": {"display": {"mms": ["1"], "lds08": ["Extensionista"], "type": ["Libro"]}}},
			{"pnx": {"display": {"mms": ["2"], "lds08": ["Productor"], "type": ["Manual"]}}}
		]}`))
	})

	for _, path := range []string{
		"/bac/publicaciones?system=%20%20",
		"/bac/publicaciones?type=%20",
		"/bac/publicaciones?system=%20&type=%09",
	} {
		t.Run(path, func(t *testing.T) {
			rr := get(router, path)
			require.Equal(t, http.StatusOK, rr.Code)

			var pubs []domain.PublicationRecord
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pubs))
			assert.Len(t, pubs, 2)
			assert.Equal(t, "items 0-1/2", rr.Header().Get("Content-Range"))
		})
	}
}

func TestGetPublication_NotFound(t *testing.T) {
	router := setupRouter(t, unused, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "any,contains,99913610607981", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"info": {"total": 0}, "docs": []}`))
	})

	rr := get(router, "/bac/publicaciones/alma99913610607981")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error": "No encontrado"}`, rr.Body.String())
}

func TestGetPublication(t *testing.T) {
	router := setupRouter(t, unused, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"docs": [{"pnx": {
			"display": {"mms": ["99913610607981"], "title": ["Guía"], "description": ["Resumen"]},
			"addata": {"au": ["Pérez, J."]}
		}}]}`))
	})

	rr := get(router, "/bac/publicaciones/alma99913610607981")
	require.Equal(t, http.StatusOK, rr.Code)

	var pub domain.PublicationDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pub))
	assert.Equal(t, "99913610607981", pub.ID)
	assert.Equal(t, []string{"Pérez, J."}, pub.Authors)
	require.NotNil(t, pub.Description)
	assert.Equal(t, "Resumen", *pub.Description)
}
