package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/skillswap/internal/config"
	"github.com/yigit/skillswap/internal/pkg/auth"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost

	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.Database.Driver = "memory"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "skillswap-test"
	cfg.Cache.TTL = "1m"
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"
	cfg.Ledger = config.DefaultLedgerConfig()

	lgr := logger.Nop()
	store, err := SetupDatabase(cfg, lgr)
	if err != nil {
		t.Fatalf("setup store: %v", err)
	}
	deps, err := BuildDependencies(cfg, store, lgr)
	if err != nil {
		t.Fatalf("build dependencies: %v", err)
	}
	return &apiClient{t: t, router: SetupRouter(cfg, deps, lgr)}
}

// do sends a request and decodes the envelope; out, when set, receives data
func (c *apiClient) do(method, path, token string, body any, out any) (int, envelope) {
	c.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			c.t.Fatalf("decode %s %s: %v", method, path, err)
		}
		if out != nil && len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, out); err != nil {
				c.t.Fatalf("decode data of %s %s: %v", method, path, err)
			}
		}
	}
	return rec.Code, env
}

type authData struct {
	Token struct {
		AccessToken string `json:"accessToken"`
	} `json:"token"`
	User struct {
		ID    int64 `json:"id"`
		Coins int   `json:"coins"`
	} `json:"user"`
}

func (c *apiClient) register(name, address string) authData {
	c.t.Helper()
	var data authData
	status, _ := c.do(http.MethodPost, "/api/v1/accounts", "", map[string]string{
		"name": name, "email": address, "password": "secret123",
	}, &data)
	if status != http.StatusCreated {
		c.t.Fatalf("register %s: status %d", address, status)
	}
	return data
}

func TestOperationalRoutes(t *testing.T) {
	Convey("Given a router on the memory store", t, func() {
		api := newAPIClient(t)

		Convey("ping answers pong", func() {
			status, _ := api.do(http.MethodGet, "/ping", "", nil, nil)
			So(status, ShouldEqual, http.StatusOK)
		})

		Convey("health reports the driver", func() {
			var health struct {
				Status   string `json:"status"`
				Database string `json:"database"`
			}
			status, env := api.do(http.MethodGet, "/api/v1/health", "", nil, &health)
			So(status, ShouldEqual, http.StatusOK)
			So(env.Success, ShouldBeTrue)
			So(health.Status, ShouldEqual, "ok")
			So(health.Database, ShouldEqual, "memory")
		})

		Convey("metrics are exposed after traffic", func() {
			api.do(http.MethodGet, "/ping", "", nil, nil)

			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			rec := httptest.NewRecorder()
			api.router.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "skillswap_http_requests_total")
		})

		Convey("the swagger document lists the API paths", func() {
			req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
			rec := httptest.NewRecorder()
			api.router.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var doc struct {
				BasePath string                     `json:"basePath"`
				Paths    map[string]json.RawMessage `json:"paths"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &doc), ShouldBeNil)
			So(doc.BasePath, ShouldEqual, "/api/v1")
			So(doc.Paths, ShouldContainKey, "/requests/{id}/accept")
			So(doc.Paths, ShouldContainKey, "/redeem")
			So(doc.Paths, ShouldContainKey, "/communities/{id}/challenge")
		})
	})
}

func TestAPIErrors(t *testing.T) {
	Convey("Given a router on the memory store", t, func() {
		api := newAPIClient(t)
		ada := api.register("Ada", "ada@example.com")

		Convey("private routes need a token", func() {
			status, env := api.do(http.MethodGet, "/api/v1/auth/me", "", nil, nil)
			So(status, ShouldEqual, http.StatusUnauthorized)
			So(env.Success, ShouldBeFalse)

			status, _ = api.do(http.MethodGet, "/api/v1/auth/me", "garbage", nil, nil)
			So(status, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("a valid token reaches the handler", func() {
			var me struct {
				ID int64 `json:"id"`
			}
			status, _ := api.do(http.MethodGet, "/api/v1/auth/me", ada.Token.AccessToken, nil, &me)
			So(status, ShouldEqual, http.StatusOK)
			So(me.ID, ShouldEqual, ada.User.ID)
		})

		Convey("malformed bodies answer 400 with field details", func() {
			status, env := api.do(http.MethodPost, "/api/v1/accounts", "", map[string]string{"email": "nope"}, nil)
			So(status, ShouldEqual, http.StatusBadRequest)
			So(env.Message, ShouldEqual, "Validation failed")
			So(env.Details, ShouldNotBeEmpty)

			status, env = api.do(http.MethodPost, "/api/v1/skills", ada.Token.AccessToken,
				map[string]string{"skillName": "Go", "type": "offered", "level": "Wizard"}, nil)
			So(status, ShouldEqual, http.StatusBadRequest)
			So(env.Details, ShouldNotBeEmpty)

			status, _ = api.do(http.MethodPost, "/api/v1/feedback", ada.Token.AccessToken, "{not json", nil)
			So(status, ShouldEqual, http.StatusBadRequest)
		})

		Convey("duplicate emails answer 400", func() {
			status, env := api.do(http.MethodPost, "/api/v1/accounts", "", map[string]string{
				"name": "Copy", "email": "ADA@example.com", "password": "secret123",
			}, nil)
			So(status, ShouldEqual, http.StatusBadRequest)
			So(env.Success, ShouldBeFalse)
		})

		Convey("wrong passwords answer 401", func() {
			status, _ := api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
				"email": "ada@example.com", "password": "wrong-password",
			}, nil)
			So(status, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("bad ids answer 400 and unknown ids 404", func() {
			status, _ := api.do(http.MethodGet, "/api/v1/users/abc", ada.Token.AccessToken, nil, nil)
			So(status, ShouldEqual, http.StatusBadRequest)

			status, _ = api.do(http.MethodGet, "/api/v1/requests/999", ada.Token.AccessToken, nil, nil)
			So(status, ShouldEqual, http.StatusNotFound)

			status, _ = api.do(http.MethodPost, "/api/v1/redeem", ada.Token.AccessToken, map[string]int{"rewardId": 99}, nil)
			So(status, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMentorshipFlow(t *testing.T) {
	Convey("Given a learner and a mentor with an offered skill", t, func() {
		api := newAPIClient(t)
		learner := api.register("Linus", "linus@example.com")
		mentor := api.register("Ada", "ada@example.com")

		var skill struct {
			ID int64 `json:"id"`
		}
		status, _ := api.do(http.MethodPost, "/api/v1/skills", mentor.Token.AccessToken,
			map[string]string{"skillName": "Go", "type": "offered", "category": "Web"}, &skill)
		So(status, ShouldEqual, http.StatusCreated)

		var results []json.RawMessage
		status, _ = api.do(http.MethodGet, "/api/v1/skills/search?skillName=GO&category=All", "", nil, &results)
		So(status, ShouldEqual, http.StatusOK)
		So(results, ShouldHaveLength, 1)

		Convey("a request runs from creation to feedback", func() {
			var request struct {
				ID     int64  `json:"id"`
				Status string `json:"status"`
			}
			status, _ := api.do(http.MethodPost, "/api/v1/requests", learner.Token.AccessToken, map[string]any{
				"mentorId": mentor.User.ID, "skillId": skill.ID, "message": "teach me",
			}, &request)
			So(status, ShouldEqual, http.StatusCreated)
			So(request.Status, ShouldEqual, "pending")
			base := fmt.Sprintf("/api/v1/requests/%d", request.ID)

			status, _ = api.do(http.MethodPut, base+"/accept", learner.Token.AccessToken, nil, nil)
			So(status, ShouldEqual, http.StatusForbidden)

			status, _ = api.do(http.MethodPut, base+"/complete", mentor.Token.AccessToken, nil, nil)
			So(status, ShouldEqual, http.StatusBadRequest)

			status, _ = api.do(http.MethodPut, base+"/accept", mentor.Token.AccessToken, nil, &request)
			So(status, ShouldEqual, http.StatusOK)
			So(request.Status, ShouldEqual, "accepted")

			status, _ = api.do(http.MethodPost, base+"/messages", learner.Token.AccessToken, map[string]string{"message": "hi"}, nil)
			So(status, ShouldEqual, http.StatusCreated)

			status, _ = api.do(http.MethodPut, base+"/complete", mentor.Token.AccessToken, nil, &request)
			So(status, ShouldEqual, http.StatusOK)
			So(request.Status, ShouldEqual, "completed")

			var ledger struct {
				Audit struct {
					Balance    int  `json:"balance"`
					Consistent bool `json:"consistent"`
				} `json:"audit"`
				Transactions []json.RawMessage `json:"transactions"`
			}
			status, _ = api.do(http.MethodGet, "/api/v1/accounts/me/ledger", learner.Token.AccessToken, nil, &ledger)
			So(status, ShouldEqual, http.StatusOK)
			So(ledger.Audit.Balance, ShouldEqual, 9)
			So(ledger.Audit.Consistent, ShouldBeTrue)
			So(ledger.Transactions, ShouldHaveLength, 2)

			feedback := map[string]any{"requestId": request.ID, "rating": 5, "comment": "great"}
			status, _ = api.do(http.MethodPost, "/api/v1/feedback", learner.Token.AccessToken, feedback, nil)
			So(status, ShouldEqual, http.StatusCreated)

			status, _ = api.do(http.MethodPost, "/api/v1/feedback", learner.Token.AccessToken, feedback, nil)
			So(status, ShouldEqual, http.StatusBadRequest)

			var mentorFeedback struct {
				AverageRating float64 `json:"averageRating"`
			}
			status, _ = api.do(http.MethodGet, fmt.Sprintf("/api/v1/feedback/mentor/%d", mentor.User.ID), "", nil, &mentorFeedback)
			So(status, ShouldEqual, http.StatusOK)
			So(mentorFeedback.AverageRating, ShouldEqual, 5)
		})

		Convey("a learner without coins cannot request", func() {
			for i := 0; i < 5; i++ {
				status, _ := api.do(http.MethodPost, "/api/v1/requests", learner.Token.AccessToken, map[string]any{
					"mentorId": mentor.User.ID, "skillId": skill.ID,
				}, nil)
				So(status, ShouldEqual, http.StatusCreated)
			}
			status, env := api.do(http.MethodPost, "/api/v1/requests", learner.Token.AccessToken, map[string]any{
				"mentorId": mentor.User.ID, "skillId": skill.ID,
			}, nil)
			So(status, ShouldEqual, http.StatusBadRequest)
			So(env.Success, ShouldBeFalse)
		})

		Convey("request lists are private", func() {
			status, _ := api.do(http.MethodGet, fmt.Sprintf("/api/v1/requests/user/%d", mentor.User.ID), learner.Token.AccessToken, nil, nil)
			So(status, ShouldEqual, http.StatusForbidden)
		})
	})
}
