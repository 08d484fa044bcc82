package planner

import "math"

// Budget constants: a 12 L/100km base vehicle, flat daily camping and
// food costs, 70 km/h average on paved connections.
const (
	baseConsumptionPer100 = 12.0
	onroadSpeedKmh        = 70.0
	campingCostPerDay     = 15.0
	foodCostPerDay        = 25.0

	defaultFuelPricePerLiter = 1.65
)

type Fuel struct {
	OffroadLiters float64 `json:"offroad_liters"`
	OnroadLiters  float64 `json:"onroad_liters"`
	TotalLiters   float64 `json:"total_liters"`
}

type Cost struct {
	Fuel    float64 `json:"fuel"`
	Camping float64 `json:"camping"`
	Food    float64 `json:"food"`
	Total   float64 `json:"total"`
}

type TimeBudget struct {
	OffroadHours float64 `json:"offroad_hours"`
	OnroadHours  float64 `json:"onroad_hours"`
	TotalHours   float64 `json:"total_hours"`
	TotalMinutes int     `json:"total_minutes"`
}

type Budget struct {
	Fuel Fuel       `json:"fuel"`
	Cost Cost       `json:"cost"`
	Time TimeBudget `json:"time"`
}

// offroadFactor scales fuel consumption by difficulty band.
func offroadFactor(difficulty int) float64 {
	switch {
	case difficulty <= 40:
		return 1.3
	case difficulty <= 60:
		return 1.5
	default:
		return 1.7
	}
}

// offroadSpeedKmh estimates average off-road speed by difficulty band.
func offroadSpeedKmh(difficulty int) float64 {
	switch {
	case difficulty <= 40:
		return 35
	case difficulty <= 60:
		return 25
	default:
		return 18
	}
}

// CalculateBudget turns a day's offroad and onroad distances into fuel,
// cost and time estimates. Pure and deterministic for identical inputs.
func CalculateBudget(offroadKm, onroadKm float64, difficulty int, fuelPricePerLiter float64) Budget {
	if fuelPricePerLiter <= 0 {
		fuelPricePerLiter = defaultFuelPricePerLiter
	}

	offroadFuel := offroadKm / 100 * baseConsumptionPer100 * offroadFactor(difficulty)
	onroadFuel := onroadKm / 100 * baseConsumptionPer100
	totalFuel := offroadFuel + onroadFuel
	fuelCost := totalFuel * fuelPricePerLiter

	offroadTime := offroadKm / offroadSpeedKmh(difficulty)
	onroadTime := onroadKm / onroadSpeedKmh
	totalTime := offroadTime + onroadTime

	return Budget{
		Fuel: Fuel{
			OffroadLiters: offroadFuel,
			OnroadLiters:  onroadFuel,
			TotalLiters:   totalFuel,
		},
		Cost: Cost{
			Fuel:    fuelCost,
			Camping: campingCostPerDay,
			Food:    foodCostPerDay,
			Total:   fuelCost + campingCostPerDay + foodCostPerDay,
		},
		Time: TimeBudget{
			OffroadHours: offroadTime,
			OnroadHours:  onroadTime,
			TotalHours:   totalTime,
			TotalMinutes: int(math.Round(totalTime * 60)),
		},
	}
}
