// Package pricingrepo persists the pricing configuration (tariff, zones,
// multiplier rules) and the quote audit trail.
package pricingrepo

import (
	"time"

	"dzdelivery/internal/core/domain/model/kernel"
	"dzdelivery/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ConfigDTO is the stored tariff. A single row table; the latest row wins.
type ConfigDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	BaseFee    int64
	PricePerKm int64
	MinPrice   int64
	MaxPrice   int64
	RoundTo    int64
}

// TableName overrides GORM's default naming to use "pricing_configs".
func (ConfigDTO) TableName() string {
	return "pricing_configs"
}

// ZoneDTO is one configured delivery zone.
type ZoneDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Name       string `gorm:"size:64;uniqueIndex"`
	Kind       string `gorm:"size:16"`
	CenterLat  float64
	CenterLng  float64
	RadiusKm   float64
	Multiplier float64
}

// TableName overrides GORM's default naming to use "pricing_zones".
func (ZoneDTO) TableName() string {
	return "pricing_zones"
}

// TimeRuleDTO is one hour-window multiplier rule.
type TimeRuleDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Name       string `gorm:"size:64;uniqueIndex"`
	StartHour  int
	EndHour    int
	Multiplier float64
}

// TableName overrides GORM's default naming to use "pricing_time_rules".
func (TimeRuleDTO) TableName() string {
	return "pricing_time_rules"
}

// WeatherRuleDTO is one weather condition multiplier rule.
type WeatherRuleDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Condition  string `gorm:"size:16;uniqueIndex"`
	Multiplier float64
}

// TableName overrides GORM's default naming to use "pricing_weather_rules".
func (WeatherRuleDTO) TableName() string {
	return "pricing_weather_rules"
}

// DemandRuleDTO is one demand threshold multiplier rule.
type DemandRuleDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Name       string `gorm:"size:64;uniqueIndex"`
	MinRatio   float64
	Multiplier float64
}

// TableName overrides GORM's default naming to use "pricing_demand_rules".
func (DemandRuleDTO) TableName() string {
	return "pricing_demand_rules"
}

// CalculationDTO is one archived quote.
type CalculationDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	DistanceKm float64
	BasePrice  int64
	Total      int64
	Breakdown  string
	Warnings   pq.StringArray `gorm:"type:text[]"`
	Degraded   bool
	At         time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "pricing_calculations".
func (CalculationDTO) TableName() string {
	return "pricing_calculations"
}

func configToDomain(dto ConfigDTO) pricing.Config {
	return pricing.Config{
		BaseFee:    dto.BaseFee,
		PricePerKm: dto.PricePerKm,
		MinPrice:   dto.MinPrice,
		MaxPrice:   dto.MaxPrice,
		RoundTo:    dto.RoundTo,
	}
}

func configFromDomain(cfg pricing.Config) ConfigDTO {
	return ConfigDTO{
		BaseFee:    cfg.BaseFee,
		PricePerKm: cfg.PricePerKm,
		MinPrice:   cfg.MinPrice,
		MaxPrice:   cfg.MaxPrice,
		RoundTo:    cfg.RoundTo,
	}
}

func zoneToDomain(dto ZoneDTO) (pricing.Zone, error) {
	center, err := kernel.NewGeoPoint(dto.CenterLat, dto.CenterLng)
	if err != nil {
		return pricing.Zone{}, err
	}

	return pricing.NewZone(dto.Name, pricing.ZoneKind(dto.Kind), center, dto.RadiusKm, dto.Multiplier)
}

func zoneFromDomain(zone pricing.Zone) ZoneDTO {
	return ZoneDTO{
		Name:       zone.Name(),
		Kind:       string(zone.Kind()),
		CenterLat:  zone.Center().Latitude(),
		CenterLng:  zone.Center().Longitude(),
		RadiusKm:   zone.RadiusKm(),
		Multiplier: zone.Multiplier(),
	}
}

func calculationFromDomain(calculation pricing.Calculation) CalculationDTO {
	var orderID *uuid.UUID
	if calculation.OrderID != nil {
		raw := calculation.OrderID.Bytes()
		orderID = &raw
	}

	return CalculationDTO{
		ID:         calculation.ID.Bytes(),
		OrderID:    orderID,
		DistanceKm: calculation.DistanceKm,
		BasePrice:  calculation.BasePrice,
		Total:      calculation.Total,
		Breakdown:  calculation.Breakdown,
		Warnings:   pq.StringArray(calculation.Warnings),
		Degraded:   calculation.Degraded,
		At:         calculation.At,
	}
}
