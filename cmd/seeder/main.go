// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/banquet"
	"github.com/poiesic/banquet/core"
)

var demoPackages = []*core.Package{
	{
		Name:        "Grand Oak Ballroom",
		Description: "Historic ballroom with crystal chandeliers and a sprung dance floor",
		Location:    "Riverside District",
		PriceMin:    8000, PriceMax: 14000, Capacity: 400,
		VenueDetails: map[string]string{"type": "ballroom", "setting": "indoor", "parking": "valet"},
	},
	{
		Name:        "Skyline Terrace",
		Description: "Rooftop venue with panoramic city views and an open-air bar",
		Location:    "Downtown",
		PriceMin:    5500, PriceMax: 9000, Capacity: 150,
		VenueDetails: map[string]string{"type": "rooftop", "setting": "outdoor covered"},
	},
	{
		Name:        "Willow Creek Barn",
		Description: "Restored timber barn on a working farm, string lights included",
		Location:    "Willow Creek",
		PriceMin:    2500, PriceMax: 4500, Capacity: 180,
		VenueDetails: map[string]string{"type": "barn", "setting": "rustic outdoor"},
	},
	{
		Name:        "Harborview Seafood Catering",
		Description: "Raw bar, grilled fish stations, and a New England clambake menu",
		PriceMin:    2200, PriceMax: 4000, Capacity: 300,
		CateringDetails: map[string]string{"cuisine": "seafood coastal", "service": "stations buffet"},
	},
	{
		Name:        "Casa Verde Taqueria",
		Description: "Street taco cart with al pastor, carnitas, and vegetarian options",
		PriceMin:    900, PriceMax: 1800, Capacity: 120,
		CateringDetails: map[string]string{"cuisine": "mexican tacos", "service": "food cart"},
	},
	{
		Name:        "Maple & Sage Farm Table",
		Description: "Seasonal farm-to-table plated dinners with local wine pairings",
		PriceMin:    4500, PriceMax: 7500, Capacity: 90,
		CateringDetails: map[string]string{"cuisine": "farm-to-table american", "service": "plated"},
	},
	{
		Name:        "Smokestack Barbecue Co",
		Description: "Texas-style brisket, ribs, and smoked sides served family style",
		PriceMin:    1500, PriceMax: 3200, Capacity: 250,
		CateringDetails: map[string]string{"cuisine": "barbecue texas", "service": "family style"},
	},
	{
		Name:        "The Velvet Notes",
		Description: "Eight-piece jazz and soul band with horn section",
		PriceMin:    2800, PriceMax: 4200, Capacity: 0,
		EntertainmentDetails: map[string]string{"genre": "jazz soul motown", "lineup": "8-piece band"},
	},
	{
		Name:        "DJ Lumen",
		Description: "Open-format DJ with full lighting rig and ceremony sound support",
		PriceMin:    1100, PriceMax: 2000, Capacity: 0,
		EntertainmentDetails: map[string]string{"genre": "open format", "equipment": "lighting sound"},
	},
	{
		Name:        "Gilded Fork Catering",
		Description: "White-glove plated service with French technique tasting menus",
		PriceMin:    9000, PriceMax: 16000, Capacity: 200,
		CateringDetails: map[string]string{"cuisine": "french fine dining", "service": "plated white glove"},
	},
	{
		Name:        "Lakeside Pavilion",
		Description: "Covered waterfront pavilion with sunset ceremony lawn",
		Location:    "Lake Marion",
		PriceMin:    1800, PriceMax: 3000, Capacity: 220,
		VenueDetails: map[string]string{"type": "pavilion", "setting": "outdoor waterfront"},
	},
	{
		Name:        "The Cellar Room",
		Description: "Intimate brick wine cellar for private dinners and tastings",
		Location:    "Old Town",
		PriceMin:    1200, PriceMax: 2400, Capacity: 45,
		VenueDetails: map[string]string{"type": "cellar", "setting": "indoor intimate"},
	},
	{
		Name:        "Saffron & Silk",
		Description: "Regional Indian wedding menus with live dosa and chaat stations",
		PriceMin:    3000, PriceMax: 6000, Capacity: 350,
		CateringDetails: map[string]string{"cuisine": "indian", "service": "stations buffet"},
	},
	{
		Name:        "Bluegrass Revival",
		Description: "Acoustic string trio for ceremonies and cocktail hours",
		PriceMin:    700, PriceMax: 1300, Capacity: 0,
		EntertainmentDetails: map[string]string{"genre": "bluegrass folk acoustic", "lineup": "trio"},
	},
	{
		Name:        "Conservatory at Elm Park",
		Description: "Glass conservatory surrounded by botanical gardens",
		Location:    "Elm Park",
		PriceMin:    6000, PriceMax: 11000, Capacity: 160,
		VenueDetails: map[string]string{"type": "conservatory", "setting": "garden indoor-outdoor"},
	},
}

var dbPath = flag.String("db", "./catalog_db", "path to catalog database")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	m, err := banquet.NewMarketplace(*dbPath)
	if err != nil {
		panic(err)
	}
	defer m.Close()

	pipeline, err := m.NewIngestPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	added, err := pipeline.Ingest(ctx, demoPackages...)
	if err != nil {
		panic(err)
	}

	// Wait for embedding jobs before the process exits
	pipeline.Wait()

	slog.Info("seeded demo catalog", "packages", len(added), "db", *dbPath)
}
