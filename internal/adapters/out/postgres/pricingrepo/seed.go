package pricingrepo

import (
	"context"

	"dzdelivery/internal/core/domain/model/pricing"

	"gorm.io/gorm"
)

// defaultZones is the initial zone map around Tigzirt. Operators refine the
// radii and multipliers later; the seed only has to be sane.
func defaultZones() []ZoneDTO {
	return []ZoneDTO{
		{Name: "tigzirt_centre", Kind: string(pricing.ZoneCentreVille), CenterLat: 36.8920, CenterLng: 4.1250, RadiusKm: 2, Multiplier: 1.0},
		{Name: "tigzirt_peripherie", Kind: string(pricing.ZonePeripherie), CenterLat: 36.8920, CenterLng: 4.1250, RadiusKm: 5, Multiplier: 1.1},
		{Name: "iflissen", Kind: string(pricing.ZoneVillages), CenterLat: 36.8440, CenterLng: 4.2210, RadiusKm: 6, Multiplier: 1.15},
		{Name: "mizrana", Kind: string(pricing.ZoneMontagne), CenterLat: 36.8210, CenterLng: 4.0760, RadiusKm: 8, Multiplier: 1.25},
	}
}

// Seed populates empty pricing tables with the default tariff, rules, and
// zone map. Existing rows are left untouched, so operator edits survive
// restarts.
func Seed(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)

	var configs int64
	if err := tx.Model(&ConfigDTO{}).Count(&configs).Error; err != nil {
		return err
	}
	if configs == 0 {
		dto := configFromDomain(pricing.DefaultConfig())
		if err := tx.Create(&dto).Error; err != nil {
			return err
		}
	}

	var zones int64
	if err := tx.Model(&ZoneDTO{}).Count(&zones).Error; err != nil {
		return err
	}
	if zones == 0 {
		seed := defaultZones()
		if err := tx.Create(&seed).Error; err != nil {
			return err
		}
	}

	var timeRules int64
	if err := tx.Model(&TimeRuleDTO{}).Count(&timeRules).Error; err != nil {
		return err
	}
	if timeRules == 0 {
		dtos := make([]TimeRuleDTO, 0)
		for _, rule := range pricing.DefaultTimeRules() {
			dtos = append(dtos, TimeRuleDTO{
				Name:       rule.Name,
				StartHour:  rule.StartHour,
				EndHour:    rule.EndHour,
				Multiplier: rule.Multiplier,
			})
		}
		if err := tx.Create(&dtos).Error; err != nil {
			return err
		}
	}

	var weatherRules int64
	if err := tx.Model(&WeatherRuleDTO{}).Count(&weatherRules).Error; err != nil {
		return err
	}
	if weatherRules == 0 {
		dtos := make([]WeatherRuleDTO, 0)
		for _, rule := range pricing.DefaultWeatherRules() {
			dtos = append(dtos, WeatherRuleDTO{
				Condition:  rule.Condition.String(),
				Multiplier: rule.Multiplier,
			})
		}
		if err := tx.Create(&dtos).Error; err != nil {
			return err
		}
	}

	var demandRules int64
	if err := tx.Model(&DemandRuleDTO{}).Count(&demandRules).Error; err != nil {
		return err
	}
	if demandRules == 0 {
		dtos := make([]DemandRuleDTO, 0)
		for _, rule := range pricing.DefaultDemandRules() {
			dtos = append(dtos, DemandRuleDTO{
				Name:       rule.Name,
				MinRatio:   rule.MinRatio,
				Multiplier: rule.Multiplier,
			})
		}
		if err := tx.Create(&dtos).Error; err != nil {
			return err
		}
	}

	return nil
}
