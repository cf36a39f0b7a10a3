package memory

import (
	"time"

	"github.com/EquiStack/barn_client/internal/app/domain/calendar"
	"github.com/EquiStack/barn_client/internal/app/domain/horse"
	"github.com/EquiStack/barn_client/internal/app/domain/supply"
)

// SeedData is a fixture set loadable into a Store.
type SeedData struct {
	Horses   []horse.Horse
	Supplies []supply.Supply
	Events   []calendar.Event
}

// DefaultSeed returns the development fixtures. Ids are assigned by the
// store; events reference horses by seed order (first horse gets id "1").
func DefaultSeed() SeedData {
	nextWeek := time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Hour)
	return SeedData{
		Horses: []horse.Horse{
			{
				Name:         "Thunder",
				Breed:        "Thoroughbred",
				Age:          8,
				Color:        "Bay",
				Gender:       horse.GenderGelding,
				HealthStatus: "healthy",
				OwnerName:    "Sarah Mitchell",
				IsActive:     true,
			},
			{
				Name:         "Luna",
				Breed:        "Quarter Horse",
				Age:          5,
				Color:        "Grey",
				Gender:       horse.GenderMare,
				HealthStatus: "healthy",
				OwnerName:    "James Carter",
				IsActive:     true,
			},
			{
				Name:         "Duke",
				Breed:        "Hanoverian",
				Age:          15,
				Color:        "Chestnut",
				Gender:       horse.GenderStallion,
				HealthStatus: "recovering",
				OwnerName:    "Sarah Mitchell",
				IsActive:     false,
				IsRetired:    true,
			},
		},
		Supplies: []supply.Supply{
			{
				Name:            "Timothy Hay",
				Category:        "feed",
				Brand:           "Valley Farms",
				UnitType:        "bale",
				PackageSize:     25,
				PackageUnit:     "kg",
				CurrentStock:    40,
				MinimumStock:    10,
				ReorderPoint:    15,
				LastCostPerUnit: 12.50,
				Location:        "Barn loft",
				IsActive:        true,
			},
			{
				Name:            "Oat Grain Mix",
				Category:        "feed",
				Brand:           "EquiNutrition",
				UnitType:        "bag",
				PackageSize:     20,
				PackageUnit:     "kg",
				CurrentStock:    4,
				MinimumStock:    3,
				ReorderPoint:    5,
				LastCostPerUnit: 28.00,
				Location:        "Feed room",
				IsActive:        true,
			},
			{
				Name:            "Pine Shavings",
				Category:        "bedding",
				Brand:           "ComfortStall",
				UnitType:        "bag",
				PackageSize:     60,
				PackageUnit:     "l",
				CurrentStock:    0,
				MinimumStock:    5,
				ReorderPoint:    8,
				LastCostPerUnit: 7.25,
				Location:        "Storage shed",
				IsActive:        true,
			},
		},
		Events: []calendar.Event{
			{
				Type:            calendar.TypeVeterinary,
				Title:           "Spring vaccinations",
				Description:     "Annual boosters",
				StartsAt:        nextWeek,
				DurationMinutes: 60,
				HorseID:         "1",
			},
			{
				Type:            calendar.TypeFarrier,
				Title:           "Shoeing appointment",
				StartsAt:        nextWeek.Add(48 * time.Hour),
				DurationMinutes: 45,
				HorseID:         "2",
			},
			{
				Type:            calendar.TypeSupplyDelivery,
				Title:           "Hay delivery",
				Description:     "20 bales from Valley Farms",
				StartsAt:        nextWeek.Add(72 * time.Hour),
				DurationMinutes: 30,
			},
		},
	}
}
