package region

import "github.com/morepixel/BudgetOverlander/internal/overpass"

// Catalog lists the built-in collectable regions.
var Catalog = []Definition{
	{
		Key:         "pyrenees",
		Name:        "Pyrenäen",
		Description: "Französisch-Spanische Pyrenäen",
		Country:     "france/spain",
		BBox:        overpass.BBox{South: 42.0, West: -2.0, North: 43.5, East: 3.0},
	},
	{
		Key:         "alps_south",
		Name:        "Südalpen",
		Description: "Französisch-Italienische Südalpen",
		Country:     "france/italy",
		BBox:        overpass.BBox{South: 44.0, West: 5.5, North: 46.0, East: 8.0},
	},
	{
		Key:         "carpathians",
		Name:        "Karpaten",
		Description: "Rumänische Karpaten",
		Country:     "romania",
		BBox:        overpass.BBox{South: 45.0, West: 22.0, North: 47.5, East: 26.0},
	},
	{
		Key:         "hardangervidda",
		Name:        "Hardangervidda",
		Description: "Hardangervidda & Umgebung",
		Country:     "norway",
		BBox:        overpass.BBox{South: 59.0, West: 5.0, North: 61.5, East: 9.0},
	},
}

// Lookup finds a catalog definition by key.
func Lookup(key string) (Definition, bool) {
	for _, def := range Catalog {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}
