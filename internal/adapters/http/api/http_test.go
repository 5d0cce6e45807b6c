package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"

	service "github.com/fairway/pickem/internal/app"
	"github.com/fairway/pickem/internal/adapters/kv"
	"github.com/fairway/pickem/internal/domain/model"
	"github.com/fairway/pickem/pkg/logger"
)

const testAdminKey = "test-admin-key"

func init() {
	_ = logger.Init()
}

type testServer struct {
	mux   *http.ServeMux
	clock *clockwork.FakeClock
}

func newTestServer() *testServer {
	loc, _ := time.LoadLocation("America/New_York")
	// Monday morning, two days before the Wednesday 21:00 reveal slot.
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 16, 9, 0, 0, 0, loc))

	svc := service.New(
		service.WithStore(kv.NewMemory()),
		service.WithClock(clock),
		service.WithLocation(loc),
		service.WithRoster([]string{"Alice", "Bob"}),
		service.WithSeason([]string{"Test Open", "Test Classic"}),
	)

	mux := http.NewServeMux()
	server := NewServer(svc, svc, testAdminKey)
	server.Register(context.Background(), mux, svc)
	return &testServer{mux: mux, clock: clock}
}

func (ts *testServer) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestStatusEndpoint(t *testing.T) {
	Convey("Given a fresh pool server", t, func() {
		ts := newTestServer()

		Convey("GET /status returns the current week", func() {
			rec := ts.do(http.MethodGet, "/status", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			body := decodeBody(t, rec)
			So(body["currentWeek"], ShouldEqual, 1)
			So(body["tournament"], ShouldEqual, "Test Open")
			So(body["revealed"], ShouldBeFalse)
			So(body["nextReveal"], ShouldNotBeNil)
		})

		Convey("POST /status is rejected", func() {
			rec := ts.do(http.MethodPost, "/status", "", nil)
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestWeeksEndpoint(t *testing.T) {
	Convey("Given a fresh pool server", t, func() {
		ts := newTestServer()

		Convey("GET /weeks wraps the index in a weeks envelope", func() {
			rec := ts.do(http.MethodGet, "/weeks", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Weeks model.WeekIndex `json:"weeks"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Weeks, ShouldHaveLength, 1)
			So(resp.Weeks[0].Week, ShouldEqual, 1)
			So(resp.Weeks[0].Status, ShouldEqual, model.StatusActive)
		})

		Convey("POST /weeks is rejected", func() {
			rec := ts.do(http.MethodPost, "/weeks", "", nil)
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestUnknownRoute(t *testing.T) {
	Convey("Given a fresh pool server", t, func() {
		ts := newTestServer()

		Convey("An unknown route returns a structured JSON 404", func() {
			rec := ts.do(http.MethodGet, "/definitely-not-a-route", "", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
			So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")

			body := decodeBody(t, rec)
			So(body["code"], ShouldEqual, "not_found")
			So(body["message"], ShouldContainSubstring, "/definitely-not-a-route")
		})

		Convey("Registered routes are unaffected by the catch-all", func() {
			rec := ts.do(http.MethodGet, "/status", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestSubmitEndpoint(t *testing.T) {
	Convey("Given a fresh pool server", t, func() {
		ts := newTestServer()

		Convey("A roster member can submit a pick", func() {
			rec := ts.do(http.MethodPost, "/submit", `{"name":"Alice","golferPick":"Tiger Woods"}`, nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			body := decodeBody(t, rec)
			So(body["name"], ShouldEqual, "Alice")
			So(body["pick"], ShouldEqual, "Tiger Woods")
			So(body["week"], ShouldEqual, 1)
		})

		Convey("A name off the roster is rejected", func() {
			rec := ts.do(http.MethodPost, "/submit", `{"name":"Mallory","golferPick":"Tiger Woods"}`, nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(t, rec)["code"], ShouldEqual, "bad_request")
		})

		Convey("A blank pick is rejected", func() {
			rec := ts.do(http.MethodPost, "/submit", `{"name":"Alice","golferPick":"   "}`, nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Malformed JSON is rejected", func() {
			rec := ts.do(http.MethodPost, "/submit", `{"name":`, nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("GET /submit is rejected", func() {
			rec := ts.do(http.MethodGet, "/submit", "", nil)
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestPicksEndpoint(t *testing.T) {
	Convey("Given a pool with one submission", t, func() {
		ts := newTestServer()
		rec := ts.do(http.MethodPost, "/submit", `{"name":"Bob","golferPick":"Rory McIlroy"}`, nil)
		So(rec.Code, ShouldEqual, http.StatusOK)

		Convey("A public caller sees only who has submitted", func() {
			rec := ts.do(http.MethodGet, "/picks", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var view service.PicksView
			So(json.Unmarshal(rec.Body.Bytes(), &view), ShouldBeNil)
			So(view.Revealed, ShouldBeFalse)
			So(view.Picks, ShouldBeNil)
			So(view.Submitted, ShouldResemble, []string{"Bob"})
		})

		Convey("A wrong admin key does not bypass the veil", func() {
			rec := ts.do(http.MethodGet, "/picks", "", map[string]string{AdminKeyHeader: "wrong-key"})
			So(rec.Code, ShouldEqual, http.StatusOK)

			var view service.PicksView
			So(json.Unmarshal(rec.Body.Bytes(), &view), ShouldBeNil)
			So(view.Picks, ShouldBeNil)
			So(view.Submitted, ShouldResemble, []string{"Bob"})
		})

		Convey("The admin key bypasses the veil", func() {
			rec := ts.do(http.MethodGet, "/picks", "", map[string]string{AdminKeyHeader: testAdminKey})
			So(rec.Code, ShouldEqual, http.StatusOK)

			var view service.PicksView
			So(json.Unmarshal(rec.Body.Bytes(), &view), ShouldBeNil)
			So(view.Picks["Bob"].Pick, ShouldEqual, "Rory McIlroy")
		})

		Convey("A non-numeric week parameter is rejected", func() {
			rec := ts.do(http.MethodGet, "/picks?week=abc", "", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("After the reveal slot passes, picks become public", func() {
			ts.clock.Advance(61 * time.Hour) // Monday 09:00 -> Wednesday 22:00

			rec := ts.do(http.MethodGet, "/picks", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var view service.PicksView
			So(json.Unmarshal(rec.Body.Bytes(), &view), ShouldBeNil)
			So(view.Revealed, ShouldBeTrue)
			So(view.Picks["Bob"].Pick, ShouldEqual, "Rory McIlroy")
		})
	})
}

func TestAdminEndpoint(t *testing.T) {
	Convey("Given a fresh pool server", t, func() {
		ts := newTestServer()

		Convey("Requests without the admin key are rejected", func() {
			rec := ts.do(http.MethodPost, "/admin", `{"action":"reveal"}`, nil)
			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("The key is checked before the body is decoded", func() {
			rec := ts.do(http.MethodPost, "/admin", `not json`, map[string]string{AdminKeyHeader: "wrong"})
			So(rec.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("An unknown action names the valid ones", func() {
			rec := ts.do(http.MethodPost, "/admin", `{"action":"explode"}`, map[string]string{AdminKeyHeader: testAdminKey})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(t, rec)["message"], ShouldContainSubstring, "advanceWeek")
		})

		Convey("reveal publishes the current week's picks", func() {
			ts.do(http.MethodPost, "/submit", `{"name":"Alice","golferPick":"Tiger Woods"}`, nil)

			rec := ts.do(http.MethodPost, "/admin", `{"action":"reveal"}`, map[string]string{AdminKeyHeader: testAdminKey})
			So(rec.Code, ShouldEqual, http.StatusOK)

			var result service.RevealResult
			So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
			So(result.Picks["Alice"].Pick, ShouldEqual, "Tiger Woods")
		})

		Convey("advanceWeek moves to the next tournament and stops at season end", func() {
			rec := ts.do(http.MethodPost, "/admin", `{"action":"advanceWeek"}`, map[string]string{AdminKeyHeader: testAdminKey})
			So(rec.Code, ShouldEqual, http.StatusOK)

			var result service.AdvanceResult
			So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
			So(result.CurrentWeek, ShouldEqual, 2)
			So(result.Tournament, ShouldEqual, "Test Classic")

			rec = ts.do(http.MethodPost, "/admin", `{"action":"advanceWeek"}`, map[string]string{AdminKeyHeader: testAdminKey})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(t, rec)["code"], ShouldEqual, "season_complete")
		})

		Convey("viewAll shows hidden picks for any week", func() {
			ts.do(http.MethodPost, "/submit", `{"name":"Bob","golferPick":"Jordan Spieth"}`, nil)

			rec := ts.do(http.MethodPost, "/admin", `{"action":"viewAll","weekNumber":1}`, map[string]string{AdminKeyHeader: testAdminKey})
			So(rec.Code, ShouldEqual, http.StatusOK)

			var view service.WeekView
			So(json.Unmarshal(rec.Body.Bytes(), &view), ShouldBeNil)
			So(view.Revealed, ShouldBeFalse)
			So(view.Picks["Bob"].Pick, ShouldEqual, "Jordan Spieth")
		})

		Convey("setWeek repoints the pool", func() {
			rec := ts.do(http.MethodPost, "/admin", `{"action":"setWeek","weekNumber":2,"tournament":"Replacement Cup"}`, map[string]string{AdminKeyHeader: testAdminKey})
			So(rec.Code, ShouldEqual, http.StatusOK)

			var view service.WeekView
			So(json.Unmarshal(rec.Body.Bytes(), &view), ShouldBeNil)
			So(view.Week, ShouldEqual, 2)
			So(view.Tournament, ShouldEqual, "Replacement Cup")
		})

		Convey("setAutoReveal requires the enabled flag", func() {
			rec := ts.do(http.MethodPost, "/admin", `{"action":"setAutoReveal"}`, map[string]string{AdminKeyHeader: testAdminKey})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)

			rec = ts.do(http.MethodPost, "/admin", `{"action":"setAutoReveal","enabled":false}`, map[string]string{AdminKeyHeader: testAdminKey})
			So(rec.Code, ShouldEqual, http.StatusOK)

			var settings model.Settings
			So(json.Unmarshal(rec.Body.Bytes(), &settings), ShouldBeNil)
			So(settings.AutoReveal, ShouldBeFalse)
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given a fresh pool server", t, func() {
		ts := newTestServer()

		Convey("GET /healthz reports healthy", func() {
			rec := ts.do(http.MethodGet, "/healthz", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(t, rec)["status"], ShouldEqual, "healthy")
		})

		Convey("GET /stats reports pool dimensions", func() {
			rec := ts.do(http.MethodGet, "/stats", "", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			body := decodeBody(t, rec)
			So(body["rosterSize"], ShouldEqual, 2)
			So(body["seasonLength"], ShouldEqual, 2)
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Every response carries a request id", t, func() {
		ts := newTestServer()

		rec := ts.do(http.MethodGet, "/status", "", nil)
		So(rec.Header().Get("X-Request-Id"), ShouldNotBeBlank)

		Convey("A caller-supplied id is echoed back", func() {
			rec := ts.do(http.MethodGet, "/status", "", map[string]string{"X-Request-Id": "trace-42"})
			So(rec.Header().Get("X-Request-Id"), ShouldEqual, "trace-42")
		})
	})
}
