package catalog

// Fruit is a perishable good moved through the supply chain. SourceCountry
// names the country whose source warehouse produces it.
type Fruit struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SourceCountry string `json:"source_country"`
}

// Shop is a retail location that holds inventory and places reservations.
type Shop struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Warehouse is a storage location. IsSource distinguishes origin-production
// warehouses from the central distribution warehouse of a country.
type Warehouse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	IsSource bool   `json:"is_source"`
}
