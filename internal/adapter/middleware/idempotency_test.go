package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const testReqID = "9f0c6f3a1b2c4d5e6f7a8b9c0d1e2f3a"

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// newTestServer wraps a counting handler with the middleware so tests can
// observe whether the handler actually ran or a recorded response replayed.
func newTestServer(t *testing.T, rdb *redis.Client) (*echo.Echo, *int) {
	t.Helper()
	e := echo.New()
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]string{"call": strconv.Itoa(calls)})
	}
	e.POST("/accounts/:account_id/deposit", h, Idempotency(rdb, time.Minute))
	e.GET("/accounts/:account_id", h, Idempotency(rdb, time.Minute))
	return e, &calls
}

func doReq(e *echo.Echo, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func idempHeaders() map[string]string {
	return map[string]string{
		"X-Request-Id": testReqID,
		"X-Request-At": strconv.FormatInt(time.Now().Unix(), 10),
	}
}

func TestIdempotency_GetBypasses(t *testing.T) {
	e, calls := newTestServer(t, newTestRedis(t))

	// no headers at all, still passes straight through
	rec := doReq(e, http.MethodGet, "/accounts/1", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if *calls != 1 {
		t.Fatalf("calls = %d, want 1", *calls)
	}
}

func TestIdempotency_MissingHeaders(t *testing.T) {
	e, calls := newTestServer(t, newTestRedis(t))

	rec := doReq(e, http.MethodPost, "/accounts/1/deposit", `{"amount":"10"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing X-Request-Id: status = %d, want 400", rec.Code)
	}

	rec = doReq(e, http.MethodPost, "/accounts/1/deposit", `{"amount":"10"}`, map[string]string{
		"X-Request-Id": "not-a-valid-id",
		"X-Request-At": strconv.FormatInt(time.Now().Unix(), 10),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad X-Request-Id: status = %d, want 400", rec.Code)
	}

	rec = doReq(e, http.MethodPost, "/accounts/1/deposit", `{"amount":"10"}`, map[string]string{
		"X-Request-Id": testReqID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing X-Request-At: status = %d, want 400", rec.Code)
	}
	if *calls != 0 {
		t.Fatalf("handler ran %d times on rejected requests", *calls)
	}
}

func TestIdempotency_SkewedTimestamp(t *testing.T) {
	e, calls := newTestServer(t, newTestRedis(t))

	rec := doReq(e, http.MethodPost, "/accounts/1/deposit", `{"amount":"10"}`, map[string]string{
		"X-Request-Id": testReqID,
		"X-Request-At": strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if *calls != 0 {
		t.Fatalf("handler ran on skewed request")
	}
}

func TestIdempotency_ReplaysRecordedResponse(t *testing.T) {
	e, calls := newTestServer(t, newTestRedis(t))
	headers := idempHeaders()
	body := `{"amount":"200.00"}`

	first := doReq(e, http.MethodPost, "/accounts/1/deposit", body, headers)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d", first.Code)
	}

	second := doReq(e, http.MethodPost, "/accounts/1/deposit", body, headers)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay status = %d", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replay body %q differs from original %q", second.Body.String(), first.Body.String())
	}
	if *calls != 1 {
		t.Fatalf("handler ran %d times, want 1", *calls)
	}
}

func TestIdempotency_ReuseWithDifferentBody(t *testing.T) {
	e, calls := newTestServer(t, newTestRedis(t))
	headers := idempHeaders()

	first := doReq(e, http.MethodPost, "/accounts/1/deposit", `{"amount":"200.00"}`, headers)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d", first.Code)
	}

	second := doReq(e, http.MethodPost, "/accounts/1/deposit", `{"amount":"999.00"}`, headers)
	if second.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", second.Code)
	}
	if *calls != 1 {
		t.Fatalf("handler ran %d times, want 1", *calls)
	}
}

func TestIdempotency_DifferentPathsDoNotCollide(t *testing.T) {
	e := echo.New()
	rdb := newTestRedis(t)
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]string{"path": c.Path()})
	}
	e.POST("/accounts/:account_id/deposit", h, Idempotency(rdb, time.Minute))
	e.POST("/accounts/:account_id/withdraw", h, Idempotency(rdb, time.Minute))

	headers := idempHeaders()
	doReq(e, http.MethodPost, "/accounts/1/deposit", `{"amount":"10"}`, headers)
	doReq(e, http.MethodPost, "/accounts/1/withdraw", `{"amount":"10"}`, headers)
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (keys are scoped per path)", calls)
	}
}
