package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	memobjects "petpatrol/internal/adapters/objectstore/memory"
	"petpatrol/internal/platform/config"
	"petpatrol/internal/router"
)

const testBaseURL = "https://petpatrol-test.s3.amazonaws.com"

var jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, bytes.Repeat([]byte{0x02}, 128)...)

type createResp struct {
	Message  string  `json:"message"`
	PetID    int64   `json:"mascotaId"`
	PostID   int64   `json:"postId"`
	ImageURL *string `json:"imageUrl"`
	Error    string  `json:"error"`
}

func newTestServer(t *testing.T) (*httptest.Server, *memobjects.Store) {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.DevHeader = true

	objects := memobjects.New(testBaseURL)
	ts := httptest.NewServer(router.NewRouter(router.Options{Config: &cfg, Objects: objects}))
	t.Cleanup(ts.Close)
	return ts, objects
}

func firulais() map[string]any {
	return map[string]any{
		"name_mascota":      "Firulais",
		"contenido_mascota": "Perrito amigable",
		"id_distrito":       1,
		"id_edad":           2,
		"id_sexo":           1,
		"id_size":           2,
		"id_tipo":           1,
		"user_id":           7,
		"tipo_post":         1,
	}
}

func TestHTTP_CreateListing_JSONWithoutImage(t *testing.T) {
	ts, objects := newTestServer(t)

	st, body := doReq(t, ts.URL, http.MethodPost, "/crearMascotaYPost", "", firulais())
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	var res createResp
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.PetID <= 0 || res.PostID <= 0 {
		t.Fatalf("expected positive ids, got %+v", res)
	}
	if res.ImageURL != nil {
		t.Fatalf("expected imageUrl null, got %q", *res.ImageURL)
	}
	if res.Message != "Mascota y post creados con éxito." {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if objects.Len() != 0 {
		t.Fatalf("expected no stored objects, got %d", objects.Len())
	}

	// El post queda consultable con la mascota enlazada.
	st, body = doReq(t, ts.URL, http.MethodGet, "/post/"+strconv.FormatInt(res.PostID, 10), "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get post, got %d body=%s", st, string(body))
	}
	var got struct {
		PetID int64 `json:"mascota_id"`
		Pet   struct {
			Name   string `json:"name_mascota"`
			PostID *int64 `json:"post_id"`
		} `json:"mascota"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PetID != res.PetID || got.Pet.Name != "Firulais" {
		t.Fatalf("unexpected listing %+v", got)
	}
	if got.Pet.PostID == nil || *got.Pet.PostID != res.PostID {
		t.Fatalf("pet not linked to post: %+v", got.Pet.PostID)
	}
}

func TestHTTP_CreateListing_MultipartWithImage(t *testing.T) {
	ts, objects := newTestServer(t)

	st, body := doMultipart(t, ts.URL, firulais(), jpegBytes)
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	var res createResp
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := testBaseURL + "/" + strconv.FormatInt(res.PostID, 10)
	if res.ImageURL == nil || *res.ImageURL != want {
		t.Fatalf("expected imageUrl %q, got %v", want, res.ImageURL)
	}

	obj, err := objects.Get(strconv.FormatInt(res.PostID, 10))
	if err != nil {
		t.Fatalf("expected stored object: %v", err)
	}
	if obj.ContentType != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", obj.ContentType)
	}
	if !bytes.Equal(obj.Body, jpegBytes) {
		t.Fatalf("stored body differs from upload")
	}
}

func TestHTTP_CreateListing_RejectsNonImage(t *testing.T) {
	ts, objects := newTestServer(t)

	st, body := doMultipart(t, ts.URL, firulais(), []byte("esto no es una imagen"))
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
	if objects.Len() != 0 {
		t.Fatalf("expected no stored objects")
	}
}

func TestHTTP_CreateListing_NotIdempotent(t *testing.T) {
	ts, _ := newTestServer(t)

	var first, second createResp
	for _, out := range []*createResp{&first, &second} {
		st, body := doReq(t, ts.URL, http.MethodPost, "/crearMascotaYPost", "", firulais())
		if st != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", st, string(body))
		}
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}

	if first.PetID == second.PetID || first.PostID == second.PostID {
		t.Fatalf("expected distinct ids, got %+v and %+v", first, second)
	}
}

func TestHTTP_CreateListing_ValidationErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"unknown district", func(p map[string]any) { p["id_distrito"] = 999 }},
		{"missing name", func(p map[string]any) { delete(p, "name_mascota") }},
		{"blank name", func(p map[string]any) { p["name_mascota"] = "   " }},
		{"bad category", func(p map[string]any) { p["tipo_post"] = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := firulais()
			tt.mutate(payload)

			st, body := doReq(t, ts.URL, http.MethodPost, "/crearMascotaYPost", "", payload)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}
		})
	}

	// nada quedó persistido
	st, body := doReq(t, ts.URL, http.MethodGet, "/post/", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d", st)
	}
	if string(bytes.TrimSpace(body)) != "[]" {
		t.Fatalf("expected empty list, got %s", string(body))
	}
}

func TestHTTP_CreateListing_CallerMustMatchOwner(t *testing.T) {
	ts, _ := newTestServer(t)

	st, body := doReq(t, ts.URL, http.MethodPost, "/crearMascotaYPost", "8", firulais())
	if st != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", st, string(body))
	}

	// sin user_id se usa el usuario autenticado
	payload := firulais()
	delete(payload, "user_id")
	st, body = doReq(t, ts.URL, http.MethodPost, "/crearMascotaYPost", "8", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, http.MethodGet, "/post/?user_id=8", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 listing for user 8, got %d", len(items))
	}
}

func TestHTTP_ListListings_Filters(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, cat := range []int{1, 2, 2} {
		p := firulais()
		p["tipo_post"] = cat
		if st, body := doReq(t, ts.URL, http.MethodPost, "/crearMascotaYPost", "", p); st != http.StatusCreated {
			t.Fatalf("seed: got %d body=%s", st, string(body))
		}
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?tipo_post=2", 2},
		{"?tipo_post=3", 0},
		{"?limit=1", 1},
		{"?offset=2", 1},
	}
	for _, tt := range tests {
		st, body := doReq(t, ts.URL, http.MethodGet, "/post/"+tt.query, "", nil)
		if st != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d", tt.query, st)
		}
		var items []map[string]any
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(items) != tt.want {
			t.Fatalf("%q: expected %d items, got %d", tt.query, tt.want, len(items))
		}
	}

	if st, _ := doReq(t, ts.URL, http.MethodGet, "/post/?limit=abc", "", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, http.MethodGet, "/post/12345", "", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown post, got %d", st)
	}
}

func TestHTTP_CatalogEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/distritos", "/edadMascotas", "/sexos", "/sizes", "/tipoMascotas", "/tipoPost"} {
		st, body := doReq(t, ts.URL, http.MethodGet, path, "", nil)
		if st != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, st)
		}
		var entries []struct {
			ID   int64  `json:"id"`
			Name string `json:"nombre"`
		}
		if err := json.Unmarshal(body, &entries); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		if len(entries) == 0 || entries[0].ID <= 0 || entries[0].Name == "" {
			t.Fatalf("%s: unexpected entries %+v", path, entries)
		}
	}
}

func TestHTTP_Users_RegisterLoginUpdate(t *testing.T) {
	ts, _ := newTestServer(t)

	st, body := doReq(t, ts.URL, http.MethodPost, "/users/register", "", map[string]any{
		"email_address": "ana@example.com",
		"password":      "supersecreta",
		"first_name":    "Ana",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	if st, _ := doReq(t, ts.URL, http.MethodPost, "/users/register", "", map[string]any{
		"email_address": "ana@example.com",
		"password":      "otraclave123",
	}); st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate register, got %d", st)
	}

	if st, _ := doReq(t, ts.URL, http.MethodPost, "/users/login", "", map[string]any{
		"email_address": "ana@example.com",
		"password":      "incorrecta",
	}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 wrong password, got %d", st)
	}

	st, body = doReq(t, ts.URL, http.MethodPost, "/users/login", "", map[string]any{
		"email_address": "ana@example.com",
		"password":      "supersecreta",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
	var login struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if login.Token == "" || login.User.ID <= 0 {
		t.Fatalf("unexpected login response %s", string(body))
	}

	// el token sirve para publicar a nombre propio
	payload := firulais()
	delete(payload, "user_id")
	st, body = doReqWithToken(t, ts.URL, http.MethodPost, "/crearMascotaYPost", login.Token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 with bearer, got %d body=%s", st, string(body))
	}

	if st, body := doReqWithToken(t, ts.URL, http.MethodPut, "/users/update", login.Token, map[string]any{
		"email_address": "ana@example.com",
		"phone_number":  "999888777",
	}); st != http.StatusOK {
		t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, http.MethodGet, "/users/"+strconv.FormatInt(login.User.ID, 10), "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get user, got %d", st)
	}
	var profile struct {
		FirstName string `json:"first_name"`
		Phone     string `json:"phone_number"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile.FirstName != "Ana" || profile.Phone != "999888777" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if bytes.Contains(body, []byte("supersecreta")) || bytes.Contains(body, []byte("password")) {
		t.Fatalf("profile leaks password data: %s", string(body))
	}
}

func TestHTTP_Users_UpdateRequiresOwner(t *testing.T) {
	ts, _ := newTestServer(t)

	register := func(email string) int64 {
		t.Helper()
		st, body := doReq(t, ts.URL, http.MethodPost, "/users/register", "", map[string]any{
			"email_address": email,
			"password":      "supersecreta",
		})
		if st != http.StatusCreated {
			t.Fatalf("register %s: expected 201, got %d body=%s", email, st, string(body))
		}
		var res struct {
			User struct {
				ID int64 `json:"id"`
			} `json:"user"`
		}
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return res.User.ID
	}
	register("victim@example.com")
	attackerID := register("attacker@example.com")

	takeover := map[string]any{
		"email_address": "victim@example.com",
		"password":      "attacker123",
	}

	if st, body := doReq(t, ts.URL, http.MethodPut, "/users/update", "", takeover); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous update, got %d body=%s", st, string(body))
	}
	if st, body := doReq(t, ts.URL, http.MethodPut, "/users/update", strconv.FormatInt(attackerID, 10), takeover); st != http.StatusForbidden {
		t.Fatalf("expected 403 cross-user update, got %d body=%s", st, string(body))
	}

	if st, _ := doReq(t, ts.URL, http.MethodPost, "/users/login", "", map[string]any{
		"email_address": "victim@example.com",
		"password":      "attacker123",
	}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 login with the injected password, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, http.MethodPost, "/users/login", "", map[string]any{
		"email_address": "victim@example.com",
		"password":      "supersecreta",
	}); st != http.StatusOK {
		t.Fatalf("expected 200 login with the original password, got %d", st)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t)

	st, body := doReq(t, ts.URL, http.MethodGet, "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", st, string(body))
	}

	doReq(t, ts.URL, http.MethodGet, "/sizes", "", nil)
	st, body = doReq(t, ts.URL, http.MethodGet, "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !bytes.Contains(body, []byte("petpatrol_http_requests_total")) {
		t.Fatalf("expected http request counter in metrics output")
	}
}

func doMultipart(t *testing.T, baseURL string, fields map[string]any, image []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, toString(v)); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "firulais.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(image); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/crearMascotaYPost", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return send(t, req)
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

func doReqWithToken(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()
	req := newJSONRequest(t, baseURL, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return send(t, req)
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()
	req := newJSONRequest(t, baseURL, method, path, body)
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	return send(t, req)
}

func newJSONRequest(t *testing.T, baseURL, method, path string, body any) *http.Request {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
