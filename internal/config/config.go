package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/geocoding"
	"github.com/propdash/portfolio-service/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	Env              string
	AppPort          string
	AppUrl           string

	// Geocoding
	GeocodeProvider geocoding.ProviderName
	GeocodeAPIKey   string

	LeaseExpiringSoonMonths int

	// Auth. Nil public key means the dev role header is trusted.
	RSAPublicKey *rsa.PublicKey
	TokenIssuer  string

	// Twilio / SendGrid for critical alerts
	SendGridAPIKey   string
	AlertFromEmail   string
	AlertToEmail     string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromPhone  string
	AlertToPhone     string

	LDSDKKey string

	// LaunchDarkly flags
	LDFlag_EmailCriticalAlerts bool
	LDFlag_SMSCriticalAlerts   bool
	LDFlag_SendgridSandboxMode bool
	LDFlag_CORSHighSecurity    bool
	LDFlag_SeedDemoData        bool
}

const (
	OrganizationName    = "PropDash"
	DefaultTokenIssuer  = "PropDash"
	LDConnectionTimeout = 5 * time.Second
)

// build-time overrides
var (
	AppName             = "portfolio-service"
	LDServerContextKey  = "portfolio-service"
	LDServerContextKind = "service"
)

// LoadConfig reads the environment and LaunchDarkly. Any invalid value is
// fatal.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	cfg, err := loadFromEnv(os.Getenv)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	var flags flagEvaluator = offlineFlags{}
	if cfg.LDSDKKey != "" {
		ldClient, err := ld.MakeClient(cfg.LDSDKKey, LDConnectionTimeout)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
		}
		if !ldClient.Initialized() {
			ldClient.Close()
			utils.Logger.Fatal("LaunchDarkly client failed to initialize")
		}
		defer ldClient.Close()
		flags = ldClient
	} else {
		utils.Logger.Warn("LD_SDK_KEY not set, using default flag values")
	}

	if err := applyFlags(cfg, flags); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to evaluate feature flags")
	}
	return cfg
}

func loadFromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          AppName,
		TokenIssuer:      DefaultTokenIssuer,
	}

	cfg.Env = getenv("ENV")
	if cfg.Env == "" {
		return nil, errors.New("ENV env var is missing")
	}
	cfg.AppPort = getenv("APP_PORT")
	if cfg.AppPort == "" {
		return nil, errors.New("APP_PORT env var is missing")
	}
	cfg.AppUrl = getenv("APP_URL_FROM_ANYWHERE")
	if cfg.AppUrl == "" {
		return nil, errors.New("APP_URL_FROM_ANYWHERE env var is missing")
	}

	if p := getenv("GEOCODE_PROVIDER"); p != "" {
		name, err := geocoding.ParseProviderName(p)
		if err != nil {
			return nil, err
		}
		cfg.GeocodeProvider = name
		cfg.GeocodeAPIKey = getenv("GEOCODE_API_KEY")
		if cfg.GeocodeAPIKey == "" {
			return nil, fmt.Errorf("%w: GEOCODE_API_KEY is required when GEOCODE_PROVIDER is set", utils.ErrMissingAPIKey)
		}
	}

	cfg.LeaseExpiringSoonMonths = constants.DefaultLeaseExpiringSoonMonths
	if v := getenv("LEASE_EXPIRING_SOON_MONTHS"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil || months <= 0 {
			return nil, fmt.Errorf("LEASE_EXPIRING_SOON_MONTHS must be a positive integer, got %q", v)
		}
		cfg.LeaseExpiringSoonMonths = months
	}

	if b64 := getenv("RSA_PUBLIC_KEY_BASE64"); b64 != "" {
		pub, err := parsePublicKey(b64)
		if err != nil {
			return nil, err
		}
		cfg.RSAPublicKey = pub
	}
	if iss := getenv("TOKEN_ISSUER"); iss != "" {
		cfg.TokenIssuer = iss
	}

	cfg.SendGridAPIKey = getenv("SENDGRID_API_KEY")
	cfg.AlertFromEmail = getenv("ALERT_FROM_EMAIL")
	cfg.AlertToEmail = getenv("ALERT_TO_EMAIL")
	cfg.TwilioAccountSID = getenv("TWILIO_ACCOUNT_SID")
	cfg.TwilioAuthToken = getenv("TWILIO_AUTH_TOKEN")
	cfg.TwilioFromPhone = getenv("TWILIO_FROM_PHONE")
	cfg.AlertToPhone = getenv("ALERT_TO_PHONE")
	cfg.LDSDKKey = getenv("LD_SDK_KEY")

	if cfg.SendGridAPIKey != "" && (cfg.AlertFromEmail == "" || cfg.AlertToEmail == "") {
		return nil, errors.New("ALERT_FROM_EMAIL and ALERT_TO_EMAIL are required with SENDGRID_API_KEY")
	}
	if cfg.TwilioAccountSID != "" && (cfg.TwilioAuthToken == "" || cfg.TwilioFromPhone == "" || cfg.AlertToPhone == "") {
		return nil, errors.New("TWILIO_AUTH_TOKEN, TWILIO_FROM_PHONE and ALERT_TO_PHONE are required with TWILIO_ACCOUNT_SID")
	}
	return cfg, nil
}

func parsePublicKey(b64 string) (*rsa.PublicKey, error) {
	pubPEM, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("RSA_PUBLIC_KEY_BASE64 is not valid base64: %w", err)
	}
	if block, _ := pem.Decode(pubPEM); block == nil {
		return nil, errors.New("failed to decode PEM block for public key")
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}
	return pub, nil
}

// flagEvaluator is the subset of *ld.LDClient the config needs.
type flagEvaluator interface {
	BoolVariation(key string, context ldcontext.Context, defaultVal bool) (bool, error)
}

// offlineFlags answers every flag with its default.
type offlineFlags struct{}

func (offlineFlags) BoolVariation(_ string, _ ldcontext.Context, defaultVal bool) (bool, error) {
	return defaultVal, nil
}

func applyFlags(cfg *Config, flags flagEvaluator) error {
	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	targets := []struct {
		key string
		def bool
		dst *bool
	}{
		{constants.LDFlagEmailCriticalAlerts, true, &cfg.LDFlag_EmailCriticalAlerts},
		{constants.LDFlagSMSCriticalAlerts, false, &cfg.LDFlag_SMSCriticalAlerts},
		{constants.LDFlagSendgridSandboxMode, false, &cfg.LDFlag_SendgridSandboxMode},
		{constants.LDFlagCORSHighSecurity, false, &cfg.LDFlag_CORSHighSecurity},
		{constants.LDFlagSeedDemoData, true, &cfg.LDFlag_SeedDemoData},
	}
	for _, t := range targets {
		v, err := flags.BoolVariation(t.key, ctx, t.def)
		if err != nil {
			return fmt.Errorf("error retrieving %s flag: %w", t.key, err)
		}
		*t.dst = v
		utils.Logger.Debugf("%s flag: %t", t.key, v)
	}
	return nil
}
