package router

import (
	"blogapp/models"
	"blogapp/testutil"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, r http.Handler, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestRequireAuth(t *testing.T) {
	testutil.SetupDB(t)
	r := SetupRouter()

	w := do(t, r, http.MethodGet, "/accounts/1", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["login"] != "/accounts/login" {
		t.Errorf("body = %v", body)
	}

	w = do(t, r, http.MethodGet, "/accounts/1", "garbage", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}
}

func TestSignUpLoginFlow(t *testing.T) {
	testutil.SetupDB(t)
	r := SetupRouter()

	w := do(t, r, http.MethodPost, "/accounts/signup", "", url.Values{
		"username":  {"alice"},
		"password1": {"correct-horse"},
		"password2": {"correct-horse"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d: %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodPost, "/accounts/signup", "", url.Values{
		"username":  {"alice"},
		"password1": {"correct-horse"},
		"password2": {"correct-horse"},
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want 409", w.Code)
	}

	w = do(t, r, http.MethodPost, "/accounts/login", "", url.Values{"username": {"alice"}, "password": {"correct-horse"}})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body)
	}
	var login map[string]string
	decode(t, w, &login)

	w = do(t, r, http.MethodGet, "/accounts/1", login["token"], nil)
	if w.Code != http.StatusOK {
		t.Errorf("account detail with issued token = %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/accounts/login", "", url.Values{"username": {"alice"}, "password": {"nope"}})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}
}

func TestToggleLikeRoundTrip(t *testing.T) {
	db := testutil.SetupDB(t)
	r := SetupRouter()
	a := testutil.CreateUser(t, db, "a", false)
	testutil.CreateArticle(t, db, 7, a.ID, "seven", time.Now())
	token := testutil.Token(t, a)

	w := do(t, r, http.MethodPost, "/accounts/7/like", token, url.Values{"add_like": {"1"}})
	if w.Code != http.StatusOK {
		t.Fatalf("add like status = %d: %s", w.Code, w.Body)
	}
	var res map[string]string
	decode(t, w, &res)
	if res["redirect"] != "/accounts/1/mylike" {
		t.Errorf("redirect = %q", res["redirect"])
	}

	w = do(t, r, http.MethodGet, "/accounts/1/mylike", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mylike status = %d", w.Code)
	}
	var page struct {
		LikeList []models.Article `json:"like_list"`
		Likes    map[string]int64 `json:"likes"`
		Status   map[string]bool  `json:"status_dic"`
	}
	decode(t, w, &page)
	if len(page.LikeList) != 1 || page.LikeList[0].ID != 7 || page.Likes["7"] != 1 || !page.Status["7"] {
		t.Errorf("mylike page = %+v", page)
	}

	w = do(t, r, http.MethodGet, "/articles/7/likes", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"likes":1`) {
		t.Errorf("article likes = %d %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodPost, "/accounts/7/like", token, url.Values{"del_like": {"1"}})
	if w.Code != http.StatusOK {
		t.Fatalf("del like status = %d", w.Code)
	}
	w = do(t, r, http.MethodPost, "/accounts/7/like", token, url.Values{"del_like": {"1"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("second del like status = %d, want 404", w.Code)
	}
	w = do(t, r, http.MethodPost, "/accounts/7/like", token, url.Values{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("no action status = %d, want 400", w.Code)
	}

	w = do(t, r, http.MethodGet, "/accounts/1/mylike?page=2", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("out of range page status = %d, want 404", w.Code)
	}
}

func TestBlacklistRoundTrip(t *testing.T) {
	db := testutil.SetupDB(t)
	r := SetupRouter()
	a := testutil.CreateUser(t, db, "a", false)
	testutil.CreateUser(t, db, "b", false)
	token := testutil.Token(t, a)

	w := do(t, r, http.MethodPost, "/accounts/2/blacklist", token, url.Values{"del_bl": {"1"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("remove before add status = %d, want 404", w.Code)
	}

	w = do(t, r, http.MethodPost, "/accounts/2/blacklist", token, url.Values{"add_bl": {"1"}})
	if w.Code != http.StatusOK {
		t.Fatalf("add status = %d: %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodGet, "/accounts/2", token, nil)
	var detail struct {
		BlackList []uint `json:"black_list"`
	}
	decode(t, w, &detail)
	if len(detail.BlackList) != 1 || detail.BlackList[0] != 2 {
		t.Errorf("black_list = %v", detail.BlackList)
	}
}

func TestProfileRoutes(t *testing.T) {
	db := testutil.SetupDB(t)
	r := SetupRouter()
	alice := testutil.CreateUser(t, db, "alice", false)
	bob := testutil.CreateUser(t, db, "bob", false)
	aliceToken, bobToken := testutil.Token(t, alice), testutil.Token(t, bob)

	w := do(t, r, http.MethodGet, "/accounts/1/create", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("create form status = %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/accounts/1/create", aliceToken, url.Values{"display_name": {"Alice"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodPost, "/accounts/1/create", aliceToken, url.Values{"display_name": {"Alice"}})
	if w.Code != http.StatusForbidden {
		t.Errorf("second create status = %d, want 403", w.Code)
	}

	w = do(t, r, http.MethodPost, "/accounts/1/update", bobToken, url.Values{"display_name": {"Bob was here"}})
	if w.Code != http.StatusForbidden {
		t.Errorf("update by other user status = %d, want 403", w.Code)
	}

	w = do(t, r, http.MethodPost, "/accounts/1/update", aliceToken, url.Values{"display_name": {""}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid update status = %d, want 400", w.Code)
	}
	var fail map[string]interface{}
	decode(t, w, &fail)
	if fail["message"] != "update failed" || fail["level"] != "error" {
		t.Errorf("invalid update body = %v", fail)
	}

	w = do(t, r, http.MethodPost, "/accounts/1/update", aliceToken, url.Values{"display_name": {"Alice L."}, "bio": {"hi"}})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", w.Code, w.Body)
	}
	var ok map[string]interface{}
	decode(t, w, &ok)
	if ok["redirect"] != "/accounts/1" {
		t.Errorf("redirect = %v", ok["redirect"])
	}

	w = do(t, r, http.MethodGet, "/accounts/1/update", aliceToken, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Alice L.") {
		t.Errorf("update form = %d %s", w.Code, w.Body)
	}
}

func TestPasswordChangeRoutes(t *testing.T) {
	db := testutil.SetupDB(t)
	r := SetupRouter()
	alice := testutil.CreateUser(t, db, "alice", false)
	token := testutil.Token(t, alice)

	w := do(t, r, http.MethodPost, "/accounts/password-change", token, url.Values{
		"old_password":  {"password123"},
		"new_password1": {"brand-new-pass"},
		"new_password2": {"brand-new-pass"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("password change status = %d: %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodGet, "/accounts/password-change/done", token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("done status = %d", w.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	testutil.SetupDB(t)
	r := SetupRouter()

	if w := do(t, r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
	w := do(t, r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_request_duration_seconds") {
		t.Errorf("metrics status = %d", w.Code)
	}
}

func TestRequireAuthCookie(t *testing.T) {
	db := testutil.SetupDB(t)
	r := SetupRouter()
	alice := testutil.CreateUser(t, db, "alice", false)

	req := httptest.NewRequest(http.MethodGet, "/accounts/1", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: testutil.Token(t, alice)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("cookie auth status = %d: %s", w.Code, w.Body)
	}
}

func TestMultipartForms(t *testing.T) {
	db := testutil.SetupDB(t)
	r := SetupRouter()
	alice := testutil.CreateUser(t, db, "alice", false)

	post := func(path, token string, fields map[string]string) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("write field %s: %v", k, err)
			}
		}
		if err := mw.Close(); err != nil {
			t.Fatalf("close multipart: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post("/accounts/1/create", testutil.Token(t, alice), map[string]string{"display_name": "Alice"})
	if w.Code != http.StatusCreated {
		t.Fatalf("multipart create status = %d: %s", w.Code, w.Body)
	}
	var profile models.Profile
	if err := db.Where("user_id = ?", alice.ID).First(&profile).Error; err != nil || profile.DisplayName != "Alice" {
		t.Errorf("stored profile = %+v, %v", profile, err)
	}

	w = post("/accounts/signup", "", map[string]string{
		"username":  "bob",
		"password1": "correct-horse",
		"password2": "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Errorf("multipart signup status = %d: %s", w.Code, w.Body)
	}

	w = post("/accounts/1/update", testutil.Token(t, alice), map[string]string{"display_name": ""})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "update failed") {
		t.Errorf("multipart invalid update = %d %s", w.Code, w.Body)
	}
}

func TestJSONProfileCreate(t *testing.T) {
	db := testutil.SetupDB(t)
	r := SetupRouter()
	alice := testutil.CreateUser(t, db, "alice", false)

	req := httptest.NewRequest(http.MethodPost, "/accounts/1/create", strings.NewReader(`{"display_name":"Alice","bio":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testutil.Token(t, alice))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("json create status = %d: %s", w.Code, w.Body)
	}

	req = httptest.NewRequest(http.MethodPost, "/accounts/1/update", strings.NewReader(`{"display_name":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testutil.Token(t, alice))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "update failed") {
		t.Errorf("json invalid update = %d %s", w.Code, w.Body)
	}
}
