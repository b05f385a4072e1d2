// Package generator builds the synthetic dataset: master data, CRM events
// and the weekly shipment facts. All draws go through a seeded
// datagen.Faker so a run is reproducible end to end.
package generator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/datagen"
	"github.com/MohithS04/Food-service-sales/internal/model"
)

// territoryCatalog is the fixed US sales-territory map. Cardinality follows
// counts.territories; requesting fewer takes a catalog prefix.
var territoryCatalog = []model.Territory{
	{TerritoryID: "NE-NY-NYC", TerritoryName: "New York Metro", Region: model.RegionNortheast, State: "NY", Timezone: "America/New_York"},
	{TerritoryID: "NE-NY-UPS", TerritoryName: "Upstate New York", Region: model.RegionNortheast, State: "NY", Timezone: "America/New_York"},
	{TerritoryID: "NE-MA-BOS", TerritoryName: "Greater Boston", Region: model.RegionNortheast, State: "MA", Timezone: "America/New_York"},
	{TerritoryID: "NE-PA-PHL", TerritoryName: "Philadelphia Metro", Region: model.RegionNortheast, State: "PA", Timezone: "America/New_York"},
	{TerritoryID: "NE-NJ-NJ", TerritoryName: "New Jersey", Region: model.RegionNortheast, State: "NJ", Timezone: "America/New_York"},
	{TerritoryID: "SE-FL-MIA", TerritoryName: "South Florida", Region: model.RegionSoutheast, State: "FL", Timezone: "America/New_York"},
	{TerritoryID: "SE-FL-ORL", TerritoryName: "Central Florida", Region: model.RegionSoutheast, State: "FL", Timezone: "America/New_York"},
	{TerritoryID: "SE-GA-ATL", TerritoryName: "Atlanta Metro", Region: model.RegionSoutheast, State: "GA", Timezone: "America/New_York"},
	{TerritoryID: "SE-NC-CLT", TerritoryName: "Charlotte Metro", Region: model.RegionSoutheast, State: "NC", Timezone: "America/New_York"},
	{TerritoryID: "SE-TX-HOU", TerritoryName: "Houston Metro", Region: model.RegionSoutheast, State: "TX", Timezone: "America/Chicago"},
	{TerritoryID: "SE-TX-DFW", TerritoryName: "Dallas-Fort Worth", Region: model.RegionSoutheast, State: "TX", Timezone: "America/Chicago"},
	{TerritoryID: "MW-IL-CHI", TerritoryName: "Chicago Metro", Region: model.RegionMidwest, State: "IL", Timezone: "America/Chicago"},
	{TerritoryID: "MW-OH-CLE", TerritoryName: "Cleveland Metro", Region: model.RegionMidwest, State: "OH", Timezone: "America/New_York"},
	{TerritoryID: "MW-MI-DET", TerritoryName: "Detroit Metro", Region: model.RegionMidwest, State: "MI", Timezone: "America/Detroit"},
	{TerritoryID: "MW-MN-MSP", TerritoryName: "Twin Cities", Region: model.RegionMidwest, State: "MN", Timezone: "America/Chicago"},
	{TerritoryID: "WE-CA-LA", TerritoryName: "Los Angeles Metro", Region: model.RegionWest, State: "CA", Timezone: "America/Los_Angeles"},
	{TerritoryID: "WE-CA-SF", TerritoryName: "San Francisco Bay", Region: model.RegionWest, State: "CA", Timezone: "America/Los_Angeles"},
	{TerritoryID: "WE-CA-SD", TerritoryName: "San Diego Metro", Region: model.RegionWest, State: "CA", Timezone: "America/Los_Angeles"},
	{TerritoryID: "WE-WA-SEA", TerritoryName: "Seattle Metro", Region: model.RegionWest, State: "WA", Timezone: "America/Los_Angeles"},
	{TerritoryID: "WE-AZ-PHX", TerritoryName: "Phoenix Metro", Region: model.RegionWest, State: "AZ", Timezone: "America/Phoenix"},
	{TerritoryID: "WE-CO-DEN", TerritoryName: "Denver Metro", Region: model.RegionWest, State: "CO", Timezone: "America/Denver"},
	{TerritoryID: "WE-NV-LAS", TerritoryName: "Las Vegas Metro", Region: model.RegionWest, State: "NV", Timezone: "America/Los_Angeles"},
}

type distributorSeed struct {
	name    string
	dtype   model.DistributorType
	hqState string
}

var distributorCatalog = []distributorSeed{
	{"Sysco Corporation", model.DistributorNational, "TX"},
	{"US Foods", model.DistributorNational, "IL"},
	{"Performance Food Group", model.DistributorNational, "VA"},
	{"Gordon Food Service", model.DistributorNational, "MI"},
	{"Reinhart Foodservice", model.DistributorRegional, "WI"},
	{"Ben E. Keith Foods", model.DistributorRegional, "TX"},
	{"Shamrock Foods", model.DistributorRegional, "AZ"},
	{"Labatt Food Service", model.DistributorRegional, "TX"},
	{"Nicholas & Co", model.DistributorRegional, "UT"},
	{"Cheney Brothers", model.DistributorRegional, "FL"},
	{"Baldor Specialty Foods", model.DistributorSpecialty, "NY"},
	{"FreshPoint", model.DistributorSpecialty, "TX"},
	{"Saval Foodservice", model.DistributorSpecialty, "MD"},
}

type productGroup struct {
	category    string
	subcategory string
	items       []string
}

// 87 SKUs across six categories.
var productCatalog = []productGroup{
	{"Proteins", "Beef", []string{"Ground Beef 80/20", "Prime Rib", "Ribeye Steak", "Beef Tenderloin", "Brisket"}},
	{"Proteins", "Poultry", []string{"Chicken Breast", "Chicken Wings", "Turkey Breast", "Duck Breast", "Whole Chicken"}},
	{"Proteins", "Pork", []string{"Pork Chops", "Bacon", "Ham", "Pork Belly", "Pulled Pork"}},
	{"Proteins", "Seafood", []string{"Salmon Fillet", "Shrimp 16/20", "Lobster Tail", "Crab Meat", "Cod Fillet"}},
	{"Dairy", "Cheese", []string{"Cheddar Block", "Mozzarella Shredded", "Parmesan Wheel", "Blue Cheese", "Brie"}},
	{"Dairy", "Milk", []string{"Whole Milk", "2% Milk", "Heavy Cream", "Half & Half", "Buttermilk"}},
	{"Dairy", "Butter", []string{"Unsalted Butter", "Clarified Butter", "Whipped Butter", "Cultured Butter"}},
	{"Produce", "Vegetables", []string{"Romaine Lettuce", "Tomatoes", "Onions", "Bell Peppers", "Carrots"}},
	{"Produce", "Fruits", []string{"Lemons", "Limes", "Berries Mix", "Apples", "Oranges"}},
	{"Produce", "Herbs", []string{"Fresh Basil", "Cilantro", "Parsley", "Thyme", "Rosemary"}},
	{"Beverages", "Soft Drinks", []string{"Cola Syrup", "Lemon-Lime Syrup", "Orange Soda Syrup", "Root Beer Syrup"}},
	{"Beverages", "Coffee", []string{"Espresso Beans", "House Blend", "Decaf Coffee", "Cold Brew Concentrate"}},
	{"Beverages", "Juice", []string{"Orange Juice", "Apple Juice", "Cranberry Juice", "Tomato Juice"}},
	{"Dry Goods", "Grains", []string{"Long Grain Rice", "Pasta Spaghetti", "Flour All Purpose", "Quinoa", "Oats"}},
	{"Dry Goods", "Canned", []string{"Diced Tomatoes", "Black Beans", "Corn", "Coconut Milk", "Tomato Paste"}},
	{"Dry Goods", "Oils", []string{"Olive Oil Extra Virgin", "Canola Oil", "Vegetable Oil", "Sesame Oil"}},
	{"Frozen", "Appetizers", []string{"Mozzarella Sticks", "Jalapeno Poppers", "Egg Rolls", "Onion Rings"}},
	{"Frozen", "Desserts", []string{"Cheesecake", "Chocolate Cake", "Ice Cream Vanilla", "Sorbet Mixed"}},
	{"Frozen", "Prepared", []string{"French Fries", "Onion Rings Battered", "Hash Browns", "Frozen Vegetables Mix"}},
}

var productBrands = []string{
	"Sysco Classic", "Sysco Imperial", "US Foods Chef's Line",
	"Gordon Choice", "Performance Select", "Restaurant Pride",
	"Kitchen Essentials", "Premium Reserve", "Value Line",
}

var unitOfSaleOptions = []string{"LB", "CS", "EA", "GAL", "OZ"}

var operatorTypes = []string{
	"Restaurant", "Hotel", "Hospital", "School", "Corporate Cafeteria",
	"Sports Venue", "Catering", "Country Club",
}

// Restaurants dominate the operator mix.
var operatorTypeWeights = []float64{4, 1, 1, 1, 1, 1, 1, 1}

var cuisineTypes = []string{
	"American", "Italian", "Mexican", "Asian", "Mediterranean",
	"Steakhouse", "Seafood", "Fast Casual", "Fine Dining",
	"Breakfast/Brunch", "BBQ", "Pizza", "Sushi", "Indian",
}

var revenueTiers = []model.RevenueTier{
	model.TierSmall, model.TierMedium, model.TierLarge, model.TierEnterprise,
}

var revenueTierWeights = []float64{0.50, 0.30, 0.15, 0.05}

var citiesByState = map[string][]string{
	"NY": {"New York", "Brooklyn", "Queens", "Buffalo", "Rochester", "Albany"},
	"CA": {"Los Angeles", "San Francisco", "San Diego", "Sacramento", "San Jose", "Oakland"},
	"TX": {"Houston", "Dallas", "Austin", "San Antonio", "Fort Worth", "El Paso"},
	"FL": {"Miami", "Orlando", "Tampa", "Jacksonville", "Fort Lauderdale"},
	"IL": {"Chicago", "Aurora", "Naperville", "Joliet", "Rockford"},
	"PA": {"Philadelphia", "Pittsburgh", "Allentown", "Erie"},
	"OH": {"Columbus", "Cleveland", "Cincinnati", "Toledo"},
	"GA": {"Atlanta", "Augusta", "Columbus", "Savannah"},
	"NC": {"Charlotte", "Raleigh", "Greensboro", "Durham"},
	"MI": {"Detroit", "Grand Rapids", "Warren", "Ann Arbor"},
	"MA": {"Boston", "Worcester", "Springfield", "Cambridge"},
	"NJ": {"Newark", "Jersey City", "Paterson", "Elizabeth"},
	"WA": {"Seattle", "Spokane", "Tacoma", "Vancouver"},
	"AZ": {"Phoenix", "Tucson", "Mesa", "Chandler", "Scottsdale"},
	"CO": {"Denver", "Colorado Springs", "Aurora", "Fort Collins"},
	"MN": {"Minneapolis", "Saint Paul", "Rochester", "Duluth"},
	"NV": {"Las Vegas", "Henderson", "Reno", "North Las Vegas"},
}

var restaurantSuffixes = []string{"Grill", "Bistro", "Eatery", "Kitchen", "Tavern", "House"}
var restaurantPrefixes = []string{"Urban", "Classic", "Modern", "Old Town", "Harbor", "Garden"}

// GenerateTerritories returns the first n catalog territories.
func GenerateTerritories(cfg *config.Config) []model.Territory {
	n := cfg.Counts.Territories
	if n > len(territoryCatalog) {
		n = len(territoryCatalog)
	}
	out := make([]model.Territory, n)
	copy(out, territoryCatalog[:n])
	return out
}

// GenerateDistributors builds the distributor roster. Each distributor is
// assigned the first territory matching its HQ state, or a random territory
// when no covered state matches.
func GenerateDistributors(f *datagen.Faker, cfg *config.Config, territories []model.Territory) []model.Distributor {
	n := cfg.Counts.Distributors
	if n > len(distributorCatalog) {
		n = len(distributorCatalog)
	}
	byState := make(map[string]string, len(territories))
	for _, t := range territories {
		if _, ok := byState[t.State]; !ok {
			byState[t.State] = t.TerritoryID
		}
	}
	out := make([]model.Distributor, 0, n)
	for i, seed := range distributorCatalog[:n] {
		territoryID, ok := byState[seed.hqState]
		if !ok {
			territoryID = datagen.Choose(f, territories).TerritoryID
		}
		out = append(out, model.Distributor{
			DistributorID:   fmt.Sprintf("DIST-%03d", i+1),
			DistributorName: seed.name,
			DistributorType: seed.dtype,
			HQState:         seed.hqState,
			TerritoryID:     territoryID,
			FoundedYear:     f.IntRange(1945, 2005),
			Active:          true,
		})
	}
	return out
}

// GenerateProducts walks the SKU catalog in order so product IDs are stable
// across runs. Cost is drawn as 55-75% of list price.
func GenerateProducts(f *datagen.Faker, cfg *config.Config) []model.Product {
	out := make([]model.Product, 0, cfg.Counts.Products)
	id := 1
	for _, group := range productCatalog {
		for _, item := range group.items {
			if len(out) >= cfg.Counts.Products {
				return out
			}
			price := f.Float64Range(5, 150)
			cost := price * f.Float64Range(0.55, 0.75)
			out = append(out, model.Product{
				ProductID:   fmt.Sprintf("PROD-%05d", id),
				ProductName: item,
				Category:    group.category,
				Subcategory: group.subcategory,
				Brand:       datagen.Choose(f, productBrands),
				UnitOfSale:  datagen.Choose(f, unitOfSaleOptions),
				ListPrice:   decimal.NewFromFloat(price).Round(2),
				CostPerUnit: decimal.NewFromFloat(cost).Round(2),
				LaunchDate:  f.DateBetween(cfg.HorizonStart().AddDate(-10, 0, 0), cfg.HorizonStart()),
				Active:      true,
			})
			id++
		}
	}
	return out
}

// GenerateSalesReps builds the rep hierarchy top-down: one Director per
// region with no manager, then Seniors reporting to their region's Director,
// then Juniors reporting to a Senior in their region. Construction order
// makes cycles impossible.
func GenerateSalesReps(f *datagen.Faker, cfg *config.Config, territories []model.Territory) []model.SalesRep {
	byRegion := make(map[model.Region][]model.Territory)
	for _, t := range territories {
		byRegion[t.Region] = append(byRegion[t.Region], t)
	}

	var reps []model.SalesRep
	directorByRegion := make(map[model.Region]string)
	for i, region := range model.Regions {
		ts, ok := byRegion[region]
		if !ok {
			continue
		}
		id := fmt.Sprintf("REP-MGR-%03d", i+1)
		name := f.PersonName()
		reps = append(reps, model.SalesRep{
			RepID:       id,
			RepName:     name,
			Email:       f.CompanyEmail(name, "fsdistribution.com"),
			RepTier:     model.RepDirector,
			Region:      region,
			TerritoryID: ts[0].TerritoryID,
			HireDate:    f.DateBetween(cfg.HorizonStart().AddDate(-15, 0, 0), cfg.HorizonStart().AddDate(-5, 0, 0)),
			QuotaAnnual: decimal.NewFromFloat(f.Float64Range(2_000_000, 5_000_000)).Round(2),
			Active:      true,
		})
		directorByRegion[region] = id
	}

	// Roughly a quarter of individual contributors are Juniors; Seniors come
	// first so Juniors always have someone to report to.
	seniorsByRegion := make(map[model.Region][]string)
	icCount := cfg.Counts.SalesReps - len(reps)
	seniorCount := icCount * 3 / 4
	for i := 0; i < icCount; i++ {
		t := datagen.Choose(f, territories)
		name := f.PersonName()
		rep := model.SalesRep{
			RepID:       fmt.Sprintf("REP-%03d", i+1),
			RepName:     name,
			Email:       f.CompanyEmail(name, "fsdistribution.com"),
			Region:      t.Region,
			TerritoryID: t.TerritoryID,
			HireDate:    f.DateBetween(cfg.HorizonStart().AddDate(-10, 0, 0), cfg.HorizonEnd().AddDate(-1, 0, 0)),
			QuotaAnnual: decimal.NewFromFloat(f.Float64Range(500_000, 1_500_000)).Round(2),
			Active:      true,
		}
		if i < seniorCount || len(seniorsByRegion[t.Region]) == 0 {
			rep.RepTier = model.RepSenior
			rep.ManagerID = directorByRegion[t.Region]
			seniorsByRegion[t.Region] = append(seniorsByRegion[t.Region], rep.RepID)
		} else {
			rep.RepTier = model.RepJunior
			rep.ManagerID = datagen.Choose(f, seniorsByRegion[t.Region])
		}
		reps = append(reps, rep)
	}
	return reps
}

// GenerateOperators builds the operator base. The primary distributor is a
// National house or one co-located in the operator's territory; when the
// draw lands on a distributor outside both sets the assignment is kept and
// counted as a data-quality defect.
func GenerateOperators(f *datagen.Faker, cfg *config.Config, territories []model.Territory, distributors []model.Distributor, stats *Stats) []model.Operator {
	var nationals []model.Distributor
	byTerritory := make(map[string][]model.Distributor)
	for _, d := range distributors {
		if d.DistributorType == model.DistributorNational {
			nationals = append(nationals, d)
		}
		byTerritory[d.TerritoryID] = append(byTerritory[d.TerritoryID], d)
	}

	out := make([]model.Operator, 0, cfg.Counts.Operators)
	for i := 0; i < cfg.Counts.Operators; i++ {
		t := datagen.Choose(f, territories)
		cities, ok := citiesByState[t.State]
		if !ok {
			cities = []string{"Metro Area"}
		}
		opType := datagen.WeightedChoose(f, operatorTypes, operatorTypeWeights)
		tier := datagen.WeightedChoose(f, revenueTiers, revenueTierWeights)

		var name, cuisine string
		if opType == "Restaurant" {
			cuisine = datagen.Choose(f, cuisineTypes)
			switch f.Intn(4) {
			case 0:
				name = f.LastName() + "'s " + cuisine
			case 1:
				name = cuisine + " House"
			case 2:
				name = f.LastName() + " & Co."
			default:
				name = datagen.Choose(f, restaurantPrefixes) + " " + datagen.Choose(f, restaurantSuffixes)
			}
		} else {
			name = f.LastName() + " " + opType
		}

		// 80% of operators buy primarily from a National house.
		var primary model.Distributor
		if local := byTerritory[t.TerritoryID]; len(local) > 0 && !f.Percent(0.80) {
			primary = datagen.Choose(f, local)
		} else if len(nationals) > 0 {
			primary = datagen.Choose(f, nationals)
		} else {
			primary = datagen.Choose(f, distributors)
		}
		if primary.DistributorType != model.DistributorNational && primary.TerritoryID != t.TerritoryID {
			stats.CountDefect("operator_distributor_mismatch")
		}

		out = append(out, model.Operator{
			OperatorID:           fmt.Sprintf("OP-%06d", i+1),
			OperatorName:         name,
			OperatorType:         opType,
			CuisineType:          cuisine,
			City:                 datagen.Choose(f, cities),
			State:                t.State,
			TerritoryID:          t.TerritoryID,
			RevenueTier:          tier,
			PrimaryDistributorID: primary.DistributorID,
			OpenedDate:           f.DateBetween(cfg.HorizonStart().AddDate(-25, 0, 0), cfg.HorizonEnd().AddDate(-1, 0, 0)),
			Active:               true,
		})
	}
	return out
}
