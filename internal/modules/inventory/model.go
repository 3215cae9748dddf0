package inventory

import "fmt"

// LocationKind says which side of the inventory table a location lives on.
type LocationKind string

const (
	KindShop      LocationKind = "SHOP"
	KindWarehouse LocationKind = "WAREHOUSE"
)

// ParseLocationKind converts a path/query value into a LocationKind.
func ParseLocationKind(s string) (LocationKind, error) {
	switch s {
	case "shop", "shops", string(KindShop):
		return KindShop, nil
	case "warehouse", "warehouses", string(KindWarehouse):
		return KindWarehouse, nil
	default:
		return "", fmt.Errorf("unknown location kind %q", s)
	}
}

// Location identifies one holder of stock: a shop or a warehouse.
type Location struct {
	Kind LocationKind `json:"kind"`
	ID   int64        `json:"id"`
}

func AtShop(id int64) Location      { return Location{Kind: KindShop, ID: id} }
func AtWarehouse(id int64) Location { return Location{Kind: KindWarehouse, ID: id} }

func (l Location) String() string {
	switch l.Kind {
	case KindShop:
		return fmt.Sprintf("shop %d", l.ID)
	case KindWarehouse:
		return fmt.Sprintf("warehouse %d", l.ID)
	default:
		return fmt.Sprintf("%s %d", l.Kind, l.ID)
	}
}

// Record is the quantity of one fruit held at one location. A missing
// record reads as quantity zero; rows are never deleted, only adjusted.
type Record struct {
	ID       int64    `json:"id"`
	FruitID  int64    `json:"fruit_id"`
	Location Location `json:"location"`
	Quantity int      `json:"quantity"`
}
