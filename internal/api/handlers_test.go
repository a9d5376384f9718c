package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
)

const testToken = "test-token"

func newTestServer(t *testing.T) (*Server, http.Handler, *models.User) {
	t.Helper()
	st, err := store.NewStore("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	user := &models.User{
		Email:       t.Name() + "@example.com",
		APIToken:    testToken,
		TokenExpiry: time.Now().Add(time.Hour),
		Plan:        "free",
	}
	if err := st.CreateUser(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	srv := NewServer(st, "whsec_test")
	return srv, srv.Router(), user
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateContactAttachesTags(t *testing.T) {
	srv, h, user := newTestServer(t)

	w := doJSON(t, h, http.MethodPost, "/api/contacts", testToken, map[string]interface{}{
		"first_name": "Ana",
		"tags":       []string{"vip", "quente"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var created models.Contact
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(created.Tags) != 2 {
		t.Fatalf("response tags = %d, want 2", len(created.Tags))
	}

	got, err := srv.Store.GetContact(user.ID, created.ID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("stored tags = %d, want 2", len(got.Tags))
	}
}

func TestSubmitFormErrorStatuses(t *testing.T) {
	srv, h, user := newTestServer(t)

	form := &models.Form{UserID: user.ID, Name: "Contato", Slug: "contato", IsActive: true}
	if err := srv.Store.CreateForm(form); err != nil {
		t.Fatalf("create form: %v", err)
	}
	paused := &models.Form{UserID: user.ID, Name: "Pausado", Slug: "pausado", IsActive: true}
	if err := srv.Store.CreateForm(paused); err != nil {
		t.Fatalf("create form: %v", err)
	}
	paused.IsActive = false
	if err := srv.Store.UpdateForm(paused); err != nil {
		t.Fatalf("pause form: %v", err)
	}

	body := map[string]interface{}{
		"fields": []map[string]string{{"label": "email", "value": "ana@example.com"}},
	}

	if w := doJSON(t, h, http.MethodPost, "/api/public/forms/contato/submit", "", body); w.Code != http.StatusCreated {
		t.Fatalf("active form status = %d, body %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, h, http.MethodPost, "/api/public/forms/nao-existe/submit", "", body); w.Code != http.StatusNotFound {
		t.Fatalf("missing form status = %d, want 404", w.Code)
	}
	if w := doJSON(t, h, http.MethodPost, "/api/public/forms/pausado/submit", "", body); w.Code != http.StatusNotFound {
		t.Fatalf("inactive form status = %d, want 404", w.Code)
	}

	// A database failure is not "form not found".
	sqlDB, err := srv.Store.DB.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.Close()
	if w := doJSON(t, h, http.MethodPost, "/api/public/forms/contato/submit", "", body); w.Code != http.StatusInternalServerError {
		t.Fatalf("status after database failure = %d, want 500", w.Code)
	}
}
