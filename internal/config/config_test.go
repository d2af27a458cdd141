package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const policyFile = `
server:
  port: "9000"
  mode: production
database:
  driver: memory
jwt:
  secret: from-file
ledger:
  opening_grant: 10
  request_fee: 3
  mentor_reward: 5
  learner_reward: 1
  quiz_pass_percent: 80
  community_creation_cost: 20
`

func TestLoadConfigRequiresSecret(t *testing.T) {
	Convey("Without a config file or JWT secret loading fails", t, func() {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "JWT secret")
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	Convey("Defaults plus env are enough", t, func() {
		t.Setenv("JWT_SECRET", "s3cret")
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		So(err, ShouldBeNil)
		So(cfg.Server.Port, ShouldEqual, "8080")
		So(cfg.Ledger, ShouldResemble, DefaultLedgerConfig())
		So(cfg.IsProduction(), ShouldBeFalse)
	})
}

func TestLoadConfigFile(t *testing.T) {
	Convey("File values override defaults", t, func() {
		cfg, err := LoadConfig(writeConfig(t, policyFile))
		So(err, ShouldBeNil)
		So(cfg.Server.Port, ShouldEqual, "9000")
		So(cfg.Database.Driver, ShouldEqual, "memory")
		So(cfg.Ledger.RequestFee, ShouldEqual, 3)
		So(cfg.IsProduction(), ShouldBeTrue)
	})
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	Convey("Env overrides the file and the prefixed name wins", t, func() {
		t.Setenv("SERVER_PORT", "7000")
		t.Setenv("LEDGER_REQUEST_FEE", "4")
		t.Setenv(EnvPrefix+"LEDGER_REQUEST_FEE", "6")
		t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.dev, ,https://b.dev")
		t.Setenv("CACHE_ENABLED", "false")

		cfg, err := LoadConfig(writeConfig(t, policyFile))
		So(err, ShouldBeNil)
		So(cfg.Server.Port, ShouldEqual, "7000")
		So(cfg.Ledger.RequestFee, ShouldEqual, 6)
		So(cfg.Server.AllowedOrigins, ShouldResemble, []string{"https://a.dev", "https://b.dev"})
	})
}

func TestLoadConfigPathEnv(t *testing.T) {
	Convey("SKILLSWAP_CONFIG points at another file", t, func() {
		other := writeConfig(t, "database:\n  driver: memory\njwt:\n  secret: other\nserver:\n  port: \"9100\"\n")
		t.Setenv(ConfigPathEnv, other)

		cfg, err := LoadConfig(writeConfig(t, policyFile))
		So(err, ShouldBeNil)
		So(cfg.Server.Port, ShouldEqual, "9100")
	})
}

func TestLoadConfigMalformedEnv(t *testing.T) {
	Convey("Malformed env values are rejected", t, func() {
		t.Setenv("LEDGER_REQUEST_FEE", "two")
		_, err := LoadConfig(writeConfig(t, policyFile))
		So(err, ShouldNotBeNil)
	})
}

func TestLoadConfigRejectsBrokenPolicy(t *testing.T) {
	Convey("Validation rejects a broken policy under either variable name", t, func() {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("DB_DRIVER", "memory")

		for _, tc := range []struct{ env, value string }{
			{"LEDGER_REQUEST_FEE", "0"},
			{"LEDGER_QUIZ_PASS_PERCENT", "101"},
			{"LEDGER_MENTOR_REWARD", "-1"},
			{"DB_DRIVER", "mongo"},
			{"JWT_ACCESS_TOKEN_EXPIRATION", "forever"},
		} {
			for _, name := range []string{tc.env, EnvPrefix + tc.env} {
				t.Setenv(name, tc.value)
				_, err := LoadConfig("")
				So(err, ShouldNotBeNil)
				t.Setenv(name, envDefault(tc.env))
			}
		}
	})
}

// envDefault restores a variable to a value that passes validation
func envDefault(name string) string {
	switch name {
	case "LEDGER_REQUEST_FEE":
		return "2"
	case "LEDGER_QUIZ_PASS_PERCENT":
		return "80"
	case "LEDGER_MENTOR_REWARD":
		return "5"
	case "DB_DRIVER":
		return "memory"
	default:
		return "1h"
	}
}

func TestLedgerConfigValidate(t *testing.T) {
	Convey("The default policy is valid", t, func() {
		So(DefaultLedgerConfig().Validate(), ShouldBeNil)

		policy := DefaultLedgerConfig()
		policy.CommunityCreationCost = 0
		So(policy.Validate(), ShouldNotBeNil)
	})
}
