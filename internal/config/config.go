package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
)

// UserConfig describes one participant and the colours used to draw them.
type UserConfig struct {
	Name string `yaml:"name" json:"name"`
	// Color highlights selected calendar dates.
	Color string `yaml:"color" json:"color"`
	// DisplayColor is used for chips, buttons and other UI elements.
	DisplayColor string `yaml:"display_color" json:"displayColor"`
	TextColor    string `yaml:"text_color" json:"textColor"`
}

const (
	RangeModeStatic  = "static"
	RangeModeDynamic = "dynamic"
)

// DateRangeConfig defines the selectable months.
//
// In static mode the start/end fields are used as-is. In dynamic mode the
// range starts at the current month and spans Months further months.
type DateRangeConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	StartYear  int    `yaml:"start_year" json:"startYear"`
	StartMonth int    `yaml:"start_month" json:"startMonth"`
	EndYear    int    `yaml:"end_year" json:"endYear"`
	EndMonth   int    `yaml:"end_month" json:"endMonth"`
	Months     int    `yaml:"months" json:"months"`
}

type UIConfig struct {
	Theme                     string `yaml:"theme" json:"theme"`
	EnableMobileOptimizations bool   `yaml:"enable_mobile_optimizations" json:"enableMobileOptimizations"`
	ShowLoadingIndicators     bool   `yaml:"show_loading_indicators" json:"showLoadingIndicators"`
	AnimateTransitions        bool   `yaml:"animate_transitions" json:"animateTransitions"`
}

// FeaturesConfig holds the feature flags. They gate HTTP behaviour only.
type FeaturesConfig struct {
	RealTimeSync       bool `yaml:"real_time_sync" json:"realTimeSync"`
	MultiUserSelection bool `yaml:"multi_user_selection" json:"multiUserSelection"`
	DateToggle         bool `yaml:"date_toggle" json:"dateToggle"`
	MonthNavigation    bool `yaml:"month_navigation" json:"monthNavigation"`
}

// BasicAuthConfig protects write endpoints. PasswordHash is an Argon2id hash
// produced by the hash-password subcommand.
type BasicAuthConfig struct {
	Username     string `yaml:"username" json:"-"`
	PasswordHash string `yaml:"password_hash" json:"-"`
}

// MaintenanceConfig schedules pruning of dates that fell out of the range.
type MaintenanceConfig struct {
	PruneEnabled bool   `yaml:"prune_enabled" json:"pruneEnabled"`
	PruneCron    string `yaml:"prune_cron" json:"pruneCron"`
}

// Config is the top-level application configuration.
type Config struct {
	AppName      string `yaml:"app_name" json:"appName"`
	AppShortName string `yaml:"app_short_name" json:"appShortName"`
	LogoPath     string `yaml:"logo_path" json:"logoPath"`

	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" json:"-"`

	// Timezone is the IANA zone that decides what "today" is.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart is "sunday" (default) or "monday".
	WeekStart string `yaml:"week_start" json:"weekStart"`

	Users     []UserConfig    `yaml:"users" json:"users"`
	DateRange DateRangeConfig `yaml:"date_range" json:"dateRange"`
	UI        UIConfig        `yaml:"ui" json:"ui"`
	Features  FeaturesConfig  `yaml:"features" json:"features"`

	BasicAuth   *BasicAuthConfig  `yaml:"basic_auth,omitempty" json:"-"`
	Maintenance MaintenanceConfig `yaml:"maintenance" json:"maintenance"`
}

const (
	defaultListen    = "127.0.0.1:8080"
	defaultWeekStart = "sunday"
	defaultPruneCron = "15 3 * * *"
	defaultSpan      = 3
)

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		AppName:      "Flint Availability Calendar",
		AppShortName: "FlintCal",
		LogoPath:     "/FlintCal_Logo.png",
		Listen:       defaultListen,
		Timezone:     "Local",
		WeekStart:    defaultWeekStart,
		Users: []UserConfig{
			{Name: "Flint & Maryam", Color: "#2196F3", DisplayColor: "#1976D2", TextColor: "#FFFFFF"},
			{Name: "Bryan & Marlene", Color: "#4CAF50", DisplayColor: "#388E3C", TextColor: "#FFFFFF"},
			{Name: "Leslie & Manny", Color: "#FF9800", DisplayColor: "#F57C00", TextColor: "#FFFFFF"},
			{Name: "Molly & Jay", Color: "#9C27B0", DisplayColor: "#7B1FA2", TextColor: "#FFFFFF"},
		},
		DateRange: DateRangeConfig{
			Mode:   RangeModeDynamic,
			Months: defaultSpan,
		},
		UI: UIConfig{
			Theme:                     "light",
			EnableMobileOptimizations: true,
			ShowLoadingIndicators:     true,
			AnimateTransitions:        true,
		},
		Features: FeaturesConfig{
			RealTimeSync:       true,
			MultiUserSelection: true,
			DateToggle:         true,
			MonthNavigation:    true,
		},
		Maintenance: MaintenanceConfig{
			PruneEnabled: false,
			PruneCron:    defaultPruneCron,
		},
	}
}

// Normalize fills in missing/zero values with defaults.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	switch strings.ToLower(c.WeekStart) {
	case "monday":
		c.WeekStart = "monday"
	default:
		c.WeekStart = defaultWeekStart
	}
	switch c.UI.Theme {
	case "light", "dark":
	default:
		c.UI.Theme = "light"
	}
	if c.DateRange.Mode == "" {
		if c.DateRange.StartYear != 0 {
			c.DateRange.Mode = RangeModeStatic
		} else {
			c.DateRange.Mode = RangeModeDynamic
		}
	}
	if c.DateRange.Mode == RangeModeDynamic && c.DateRange.Months <= 0 {
		c.DateRange.Months = defaultSpan
	}
	if c.Maintenance.PruneCron == "" {
		c.Maintenance.PruneCron = defaultPruneCron
	}
	if c.Users == nil {
		c.Users = []UserConfig{}
	}
	for i := range c.Users {
		c.Users[i].Name = strings.TrimSpace(c.Users[i].Name)
	}
}

// Validate reports configuration the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Users) == 0 {
		errs = append(errs, errors.New("users: at least one user is required"))
	}
	seen := make(map[string]struct{}, len(c.Users))
	for i, u := range c.Users {
		name := strings.TrimSpace(u.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("users[%d]: name is empty", i))
			continue
		}
		if name != u.Name {
			errs = append(errs, fmt.Errorf("users[%d]: name %q has surrounding spaces", i, u.Name))
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("users[%d]: duplicate name %q", i, name))
		}
		seen[name] = struct{}{}
	}

	switch c.DateRange.Mode {
	case RangeModeStatic:
		r := caldate.StaticRange(c.DateRange.StartYear, c.DateRange.StartMonth, c.DateRange.EndYear, c.DateRange.EndMonth)
		if !r.Valid() {
			errs = append(errs, fmt.Errorf("date_range: invalid static range %d-%02d..%d-%02d",
				c.DateRange.StartYear, c.DateRange.StartMonth, c.DateRange.EndYear, c.DateRange.EndMonth))
		}
	case RangeModeDynamic:
		if c.DateRange.Months < 0 {
			errs = append(errs, errors.New("date_range: months must not be negative"))
		}
	default:
		errs = append(errs, fmt.Errorf("date_range: unknown mode %q", c.DateRange.Mode))
	}

	if _, err := loadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}

	if c.BasicAuth != nil && (c.BasicAuth.Username == "") != (c.BasicAuth.PasswordHash == "") {
		errs = append(errs, errors.New("basic_auth: username and password_hash must be set together"))
	}

	return errors.Join(errs...)
}

// Location resolves Timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	loc, err := loadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// Range returns the selectable range as of today.
func (c *Config) Range(today caldate.Date) caldate.Range {
	if c.DateRange.Mode == RangeModeStatic {
		return caldate.StaticRange(c.DateRange.StartYear, c.DateRange.StartMonth, c.DateRange.EndYear, c.DateRange.EndMonth)
	}
	return caldate.DynamicRange(today, c.DateRange.Months)
}

// CurrentRange is Range evaluated for today in the configured zone.
func (c *Config) CurrentRange() caldate.Range {
	return c.Range(caldate.Today(c.Location()))
}

// WeekStartsMonday reports whether calendar weeks begin on Monday.
func (c *Config) WeekStartsMonday() bool {
	return c.WeekStart == "monday"
}

// BasicAuthEnabled reports whether write endpoints require credentials.
func (c *Config) BasicAuthEnabled() bool {
	return c.BasicAuth != nil && c.BasicAuth.Username != "" && c.BasicAuth.PasswordHash != ""
}

// Load loads configuration from the given YAML path.
//
// A missing file is created with DefaultConfig. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg atomically (temp file + rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".huddleuptime-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
