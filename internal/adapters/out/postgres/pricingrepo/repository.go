package pricingrepo

import (
	"context"
	"errors"

	"dzdelivery/internal/core/domain/model/pricing"

	"gorm.io/gorm"
)

// GormPricingRepository implements ports.PricingRepository using GORM. The
// pricing tables are operator-managed reference data; this repository only
// reads them, plus appends to the quote audit trail.
type GormPricingRepository struct {
	db *gorm.DB
}

// NewGormPricingRepository creates a new GORM pricing repository.
func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// GetConfig retrieves the active tariff, the default tariff when none is
// configured.
func (r *GormPricingRepository) GetConfig(ctx context.Context) (pricing.Config, error) {
	var dto ConfigDTO

	err := r.db.WithContext(ctx).Order("id DESC").First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.DefaultConfig(), nil
		}
		return pricing.Config{}, err
	}

	return configToDomain(dto), nil
}

// GetZones retrieves all configured delivery zones.
func (r *GormPricingRepository) GetZones(ctx context.Context) ([]pricing.Zone, error) {
	var dtos []ZoneDTO

	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	zones := make([]pricing.Zone, 0, len(dtos))
	for _, dto := range dtos {
		zone, convErr := zoneToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		zones = append(zones, zone)
	}

	return zones, nil
}

// GetTimeRules retrieves the active time multiplier rules.
func (r *GormPricingRepository) GetTimeRules(ctx context.Context) ([]pricing.TimeRule, error) {
	var dtos []TimeRuleDTO

	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]pricing.TimeRule, 0, len(dtos))
	for _, dto := range dtos {
		rules = append(rules, pricing.TimeRule{
			Name:       dto.Name,
			StartHour:  dto.StartHour,
			EndHour:    dto.EndHour,
			Multiplier: dto.Multiplier,
		})
	}

	return rules, nil
}

// GetWeatherRules retrieves the active weather multiplier rules.
func (r *GormPricingRepository) GetWeatherRules(ctx context.Context) ([]pricing.WeatherRule, error) {
	var dtos []WeatherRuleDTO

	if err := r.db.WithContext(ctx).Order("condition").Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]pricing.WeatherRule, 0, len(dtos))
	for _, dto := range dtos {
		rules = append(rules, pricing.WeatherRule{
			Condition:  pricing.Condition(dto.Condition),
			Multiplier: dto.Multiplier,
		})
	}

	return rules, nil
}

// GetDemandRules retrieves the active demand threshold rules.
func (r *GormPricingRepository) GetDemandRules(ctx context.Context) ([]pricing.DemandRule, error) {
	var dtos []DemandRuleDTO

	if err := r.db.WithContext(ctx).Order("min_ratio").Find(&dtos).Error; err != nil {
		return nil, err
	}

	rules := make([]pricing.DemandRule, 0, len(dtos))
	for _, dto := range dtos {
		rules = append(rules, pricing.DemandRule{
			Name:       dto.Name,
			MinRatio:   dto.MinRatio,
			Multiplier: dto.Multiplier,
		})
	}

	return rules, nil
}

// SaveCalculation persists a quote audit record.
func (r *GormPricingRepository) SaveCalculation(ctx context.Context, calculation pricing.Calculation) error {
	dto := calculationFromDomain(calculation)
	return r.db.WithContext(ctx).Create(&dto).Error
}
