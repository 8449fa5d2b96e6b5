package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Tier is a loyal customer classification.
// Tiers are ordered: a higher Tier means a larger discount.
type Tier int

const (
	// TierNormal applies to customers below the silver threshold
	// or outside the policy countries.
	TierNormal Tier = iota

	// TierSilver applies to customers at or above the silver threshold.
	TierSilver

	// TierGold applies to customers at or above the gold threshold.
	TierGold
)

// Tiers lists every tier from the highest to the lowest.
var Tiers = []Tier{TierGold, TierSilver, TierNormal}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierNormal:
		return "Normal"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so tiers appear by name in JSON.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(t.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "normal":
		*t = TierNormal
	case "silver":
		*t = TierSilver
	case "gold":
		*t = TierGold
	default:
		return fmt.Errorf("unknown tier %q", string(text))
	}
	return nil
}

// Default loyal customer policy values.
var (
	// DefaultPolicyCountries are the countries where the policy applies.
	DefaultPolicyCountries = []string{"USA", "UK", "France"}

	// DefaultGoldThreshold is the minimum yearly revenue of a gold customer.
	DefaultGoldThreshold = decimal.NewFromInt(10000)

	// DefaultSilverThreshold is the minimum yearly revenue of a silver customer.
	DefaultSilverThreshold = decimal.NewFromInt(5000)

	// DefaultGoldDiscount is the discount granted to gold customers (5%).
	DefaultGoldDiscount = decimal.RequireFromString("0.05")

	// DefaultSilverDiscount is the discount granted to silver customers (2%).
	DefaultSilverDiscount = decimal.RequireFromString("0.02")
)

// TierPolicy is the "loyal customers" policy: customers in Countries are
// classified on one year's revenue and receive the tier discount on every
// order of the following year.
type TierPolicy struct {
	// Countries is the allow-list of customer countries. Matching is exact.
	Countries []string `json:"countries"`

	GoldThreshold   decimal.Decimal `json:"goldThreshold"`
	SilverThreshold decimal.Decimal `json:"silverThreshold"`
	GoldDiscount    decimal.Decimal `json:"goldDiscount"`
	SilverDiscount  decimal.Decimal `json:"silverDiscount"`
}

// DefaultTierPolicy returns the policy with the default countries,
// thresholds and discount rates.
func DefaultTierPolicy() TierPolicy {
	return TierPolicy{
		Countries:       slices.Clone(DefaultPolicyCountries),
		GoldThreshold:   DefaultGoldThreshold,
		SilverThreshold: DefaultSilverThreshold,
		GoldDiscount:    DefaultGoldDiscount,
		SilverDiscount:  DefaultSilverDiscount,
	}
}

// Eligible reports whether customers from country fall under the policy.
func (p TierPolicy) Eligible(country string) bool {
	return slices.Contains(p.Countries, country)
}

// Classify returns the tier for a yearly revenue. Thresholds are inclusive.
func (p TierPolicy) Classify(revenue decimal.Decimal) Tier {
	switch {
	case revenue.GreaterThanOrEqual(p.GoldThreshold):
		return TierGold
	case revenue.GreaterThanOrEqual(p.SilverThreshold):
		return TierSilver
	default:
		return TierNormal
	}
}

// Discount returns the discount rate of a tier.
func (p TierPolicy) Discount(t Tier) decimal.Decimal {
	switch t {
	case TierGold:
		return p.GoldDiscount
	case TierSilver:
		return p.SilverDiscount
	default:
		return decimal.Zero
	}
}
