// Package config holds every calibration knob of the data pipeline.
// All numeric tables here (seasonality, shock windows, tier ranges, deal
// clamps) are defaults, overridable via foodsvc.yaml or FOODSVC_* env vars.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const dateLayout = "2006-01-02"

// CountsConfig sets the target cardinality per master-data entity.
type CountsConfig struct {
	Territories  int `mapstructure:"territories"`
	Distributors int `mapstructure:"distributors"`
	Products     int `mapstructure:"products"`
	SalesReps    int `mapstructure:"sales_reps"`
	Operators    int `mapstructure:"operators"`
}

// TierRange is an inclusive base-quantity range for one revenue tier.
type TierRange struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// TierRangesConfig maps revenue tiers to base shipment quantities.
type TierRangesConfig struct {
	Small      TierRange `mapstructure:"small"`
	Medium     TierRange `mapstructure:"medium"`
	Large      TierRange `mapstructure:"large"`
	Enterprise TierRange `mapstructure:"enterprise"`
}

// For resolves the range for a tier name; unknown tiers fall back to Small.
func (t TierRangesConfig) For(tier string) TierRange {
	switch tier {
	case "Enterprise":
		return t.Enterprise
	case "Large":
		return t.Large
	case "Medium":
		return t.Medium
	default:
		return t.Small
	}
}

// ShockWindow applies a flat demand multiplier to a month range of one year.
type ShockWindow struct {
	Year      int     `mapstructure:"year"`
	FromMonth int     `mapstructure:"from_month"`
	ToMonth   int     `mapstructure:"to_month"`
	Factor    float64 `mapstructure:"factor"`
}

// ShockRamp interpolates linearly from From (January) to To (December).
type ShockRamp struct {
	Year int     `mapstructure:"year"`
	From float64 `mapstructure:"from"`
	To   float64 `mapstructure:"to"`
}

// ShipmentsConfig drives the weekly shipment fact generator.
type ShipmentsConfig struct {
	// Seasonality holds one multiplier per calendar month, January first.
	Seasonality  []float64     `mapstructure:"seasonality"`
	AnnualGrowth float64       `mapstructure:"annual_growth"`
	BaselineYear int           `mapstructure:"baseline_year"`
	ShockWindows []ShockWindow `mapstructure:"shock_windows"`
	ShockRamp    ShockRamp     `mapstructure:"shock_ramp"`

	TierRanges TierRangesConfig `mapstructure:"tier_ranges"`

	DiscountCap float64 `mapstructure:"discount_cap"`
	ReturnCap   float64 `mapstructure:"return_cap"`

	// Fraction of operators that place an order in a given week.
	MinWeeklyOrderRate float64 `mapstructure:"min_weekly_order_rate"`
	MaxWeeklyOrderRate float64 `mapstructure:"max_weekly_order_rate"`
	MinProductsPerOrder int    `mapstructure:"min_products_per_order"`
	MaxProductsPerOrder int    `mapstructure:"max_products_per_order"`

	Workers     int   `mapstructure:"workers"`
	ShardIDSpan int64 `mapstructure:"shard_id_span"`
}

// SeasonalityFor is a pure table lookup, unaffected by any random state.
func (s ShipmentsConfig) SeasonalityFor(month time.Month) float64 {
	idx := int(month) - 1
	if idx < 0 || idx >= len(s.Seasonality) {
		return 1.0
	}
	return s.Seasonality[idx]
}

// GrowthFor compounds the annual growth rate relative to the baseline year.
func (s ShipmentsConfig) GrowthFor(year int) float64 {
	factor := 1.0
	for y := s.BaselineYear; y < year; y++ {
		factor *= 1 + s.AnnualGrowth
	}
	return factor
}

// ShockFor returns the demand-shock multiplier for a year/month, 1.0 when no
// window or ramp covers it.
func (s ShipmentsConfig) ShockFor(year int, month time.Month) float64 {
	m := int(month)
	for _, w := range s.ShockWindows {
		if w.Year == year && m >= w.FromMonth && m <= w.ToMonth {
			return w.Factor
		}
	}
	if s.ShockRamp.Year == year {
		return s.ShockRamp.From + (s.ShockRamp.To-s.ShockRamp.From)*float64(m-1)/11.0
	}
	return 1.0
}

// CRMConfig drives account, opportunity and activity generation.
type CRMConfig struct {
	// AccountCoverage is the fraction of operators present in the CRM.
	AccountCoverage float64 `mapstructure:"account_coverage"`

	// Win probability for closed deals, keyed by account type. The defaults
	// mix to the 45-55% aggregate design band.
	WinRateCustomer float64 `mapstructure:"win_rate_customer"`
	WinRateProspect float64 `mapstructure:"win_rate_prospect"`
	WinRateFormer   float64 `mapstructure:"win_rate_former"`

	DealClampMin float64 `mapstructure:"deal_clamp_min"`
	DealClampMax float64 `mapstructure:"deal_clamp_max"`
	// Lognormal location/scale; defaults put the pre-clamp mean near $22K.
	DealLogMean  float64 `mapstructure:"deal_log_mean"`
	DealLogSigma float64 `mapstructure:"deal_log_sigma"`

	EnterpriseMultiplierMin float64 `mapstructure:"enterprise_multiplier_min"`
	EnterpriseMultiplierMax float64 `mapstructure:"enterprise_multiplier_max"`

	MaxOpportunitiesPerAccount  int     `mapstructure:"max_opportunities_per_account"`
	MaxActivitiesPerOpportunity int     `mapstructure:"max_activities_per_opportunity"`
	StandaloneActivityRate      float64 `mapstructure:"standalone_activity_rate"`
}

// OutputConfig names the artifact locations.
type OutputConfig struct {
	CSVDir     string `mapstructure:"csv_dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
	KPIDir     string `mapstructure:"kpi_dir"`
}

// Config is the full pipeline configuration.
type Config struct {
	Seed      int64  `mapstructure:"seed"`
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	Counts    CountsConfig    `mapstructure:"counts"`
	Shipments ShipmentsConfig `mapstructure:"shipments"`
	CRM       CRMConfig       `mapstructure:"crm"`
	Output    OutputConfig    `mapstructure:"output"`

	start time.Time
	end   time.Time
}

// HorizonStart returns the parsed start of the simulation horizon.
// Valid only after Validate has succeeded.
func (c *Config) HorizonStart() time.Time { return c.start }

// HorizonEnd returns the parsed end of the simulation horizon.
func (c *Config) HorizonEnd() time.Time { return c.end }

// Validate checks the configuration and parses the horizon dates. Any error
// here is fatal: generation never starts on an invalid config.
func (c *Config) Validate() error {
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
	}
	end, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date %q: %w", c.EndDate, err)
	}
	if !start.Before(end) {
		return fmt.Errorf("start_date %s must be before end_date %s", c.StartDate, c.EndDate)
	}
	c.start, c.end = start, end

	counts := []struct {
		name string
		v    int
	}{
		{"counts.territories", c.Counts.Territories},
		{"counts.distributors", c.Counts.Distributors},
		{"counts.products", c.Counts.Products},
		{"counts.sales_reps", c.Counts.SalesReps},
		{"counts.operators", c.Counts.Operators},
	}
	for _, ct := range counts {
		if ct.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", ct.name, ct.v)
		}
	}

	if len(c.Shipments.Seasonality) != 12 {
		return fmt.Errorf("shipments.seasonality needs 12 monthly factors, got %d", len(c.Shipments.Seasonality))
	}
	for i, f := range c.Shipments.Seasonality {
		if f <= 0 {
			return fmt.Errorf("shipments.seasonality[%d] must be positive, got %f", i, f)
		}
	}
	for _, tr := range []struct {
		name string
		r    TierRange
	}{
		{"small", c.Shipments.TierRanges.Small},
		{"medium", c.Shipments.TierRanges.Medium},
		{"large", c.Shipments.TierRanges.Large},
		{"enterprise", c.Shipments.TierRanges.Enterprise},
	} {
		if tr.r.Min < 1 || tr.r.Max < tr.r.Min {
			return fmt.Errorf("shipments.tier_ranges.%s: invalid range [%d,%d]", tr.name, tr.r.Min, tr.r.Max)
		}
	}
	if c.Shipments.DiscountCap < 0 || c.Shipments.DiscountCap > 1 {
		return fmt.Errorf("shipments.discount_cap must be in [0,1], got %f", c.Shipments.DiscountCap)
	}
	if c.Shipments.ReturnCap < 0 || c.Shipments.ReturnCap > 1 {
		return fmt.Errorf("shipments.return_cap must be in [0,1], got %f", c.Shipments.ReturnCap)
	}
	if c.Shipments.MinWeeklyOrderRate <= 0 || c.Shipments.MaxWeeklyOrderRate > 1 ||
		c.Shipments.MinWeeklyOrderRate > c.Shipments.MaxWeeklyOrderRate {
		return fmt.Errorf("shipments: invalid weekly order rate range [%f,%f]",
			c.Shipments.MinWeeklyOrderRate, c.Shipments.MaxWeeklyOrderRate)
	}
	if c.Shipments.MinProductsPerOrder < 1 || c.Shipments.MaxProductsPerOrder < c.Shipments.MinProductsPerOrder {
		return fmt.Errorf("shipments: invalid products per order range [%d,%d]",
			c.Shipments.MinProductsPerOrder, c.Shipments.MaxProductsPerOrder)
	}
	if c.Shipments.Workers < 1 {
		return fmt.Errorf("shipments.workers must be at least 1, got %d", c.Shipments.Workers)
	}
	if c.Shipments.ShardIDSpan < 1 {
		return fmt.Errorf("shipments.shard_id_span must be positive, got %d", c.Shipments.ShardIDSpan)
	}

	if c.CRM.AccountCoverage <= 0 || c.CRM.AccountCoverage > 1 {
		return fmt.Errorf("crm.account_coverage must be in (0,1], got %f", c.CRM.AccountCoverage)
	}
	if c.CRM.DealClampMin <= 0 || c.CRM.DealClampMax <= c.CRM.DealClampMin {
		return fmt.Errorf("crm: invalid deal clamp bounds [%f,%f]", c.CRM.DealClampMin, c.CRM.DealClampMax)
	}
	if c.CRM.DealLogSigma <= 0 {
		return fmt.Errorf("crm.deal_log_sigma must be positive, got %f", c.CRM.DealLogSigma)
	}
	if c.CRM.EnterpriseMultiplierMin < 1 || c.CRM.EnterpriseMultiplierMax < c.CRM.EnterpriseMultiplierMin {
		return fmt.Errorf("crm: invalid enterprise multiplier range [%f,%f]",
			c.CRM.EnterpriseMultiplierMin, c.CRM.EnterpriseMultiplierMax)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 42)
	v.SetDefault("start_date", "2015-01-01")
	v.SetDefault("end_date", "2025-12-31")

	v.SetDefault("counts.territories", 22)
	v.SetDefault("counts.distributors", 13)
	v.SetDefault("counts.products", 87)
	v.SetDefault("counts.sales_reps", 64)
	v.SetDefault("counts.operators", 5000)

	// Foodservice demand peaks in mid-summer and troughs after the holidays.
	v.SetDefault("shipments.seasonality", []float64{
		0.85, 0.90, 0.95, 1.00, 1.05, 1.10, 1.15, 1.10, 1.00, 1.00, 1.05, 1.10,
	})
	v.SetDefault("shipments.annual_growth", 0.02)
	v.SetDefault("shipments.baseline_year", 2015)
	v.SetDefault("shipments.shock_windows", []map[string]interface{}{
		{"year": 2020, "from_month": 1, "to_month": 3, "factor": 0.85},
		{"year": 2020, "from_month": 4, "to_month": 5, "factor": 0.60},
		{"year": 2020, "from_month": 6, "to_month": 8, "factor": 0.75},
		{"year": 2020, "from_month": 9, "to_month": 12, "factor": 0.85},
	})
	v.SetDefault("shipments.shock_ramp.year", 2021)
	v.SetDefault("shipments.shock_ramp.from", 0.90)
	v.SetDefault("shipments.shock_ramp.to", 1.00)

	v.SetDefault("shipments.tier_ranges.small.min", 1)
	v.SetDefault("shipments.tier_ranges.small.max", 20)
	v.SetDefault("shipments.tier_ranges.medium.min", 10)
	v.SetDefault("shipments.tier_ranges.medium.max", 40)
	v.SetDefault("shipments.tier_ranges.large.min", 20)
	v.SetDefault("shipments.tier_ranges.large.max", 80)
	v.SetDefault("shipments.tier_ranges.enterprise.min", 50)
	v.SetDefault("shipments.tier_ranges.enterprise.max", 200)

	v.SetDefault("shipments.discount_cap", 0.15)
	v.SetDefault("shipments.return_cap", 0.05)
	v.SetDefault("shipments.min_weekly_order_rate", 0.30)
	v.SetDefault("shipments.max_weekly_order_rate", 0.50)
	v.SetDefault("shipments.min_products_per_order", 3)
	v.SetDefault("shipments.max_products_per_order", 15)
	v.SetDefault("shipments.workers", 4)
	v.SetDefault("shipments.shard_id_span", int64(50_000_000))

	v.SetDefault("crm.account_coverage", 0.80)
	v.SetDefault("crm.win_rate_customer", 0.55)
	v.SetDefault("crm.win_rate_prospect", 0.48)
	v.SetDefault("crm.win_rate_former", 0.35)
	v.SetDefault("crm.deal_clamp_min", 5000.0)
	v.SetDefault("crm.deal_clamp_max", 500000.0)
	// exp(9.59 + 0.9^2/2) ~= $21.9K mean before clamping
	v.SetDefault("crm.deal_log_mean", 9.59)
	v.SetDefault("crm.deal_log_sigma", 0.9)
	v.SetDefault("crm.enterprise_multiplier_min", 2.0)
	v.SetDefault("crm.enterprise_multiplier_max", 5.0)
	v.SetDefault("crm.max_opportunities_per_account", 20)
	v.SetDefault("crm.max_activities_per_opportunity", 30)
	v.SetDefault("crm.standalone_activity_rate", 0.30)

	v.SetDefault("output.csv_dir", "data/raw")
	v.SetDefault("output.sqlite_path", "data/foodservice_analytics.db")
	v.SetDefault("output.kpi_dir", "dashboards/data")
}

// Load reads configuration from defaults, an optional yaml file and
// FOODSVC_* environment variables. An explicit path must exist; the implicit
// ./foodsvc.yaml is optional.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FOODSVC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("foodsvc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// Optional file for local overrides, absence is not an error
		_ = v.ReadInConfig()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration without touching files or env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults always unmarshal cleanly.
	_ = v.Unmarshal(cfg)
	return cfg
}
