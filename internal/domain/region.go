package domain

// Region is a coarse Vietnamese macro-region.
type Region string

const (
	RegionNorth   Region = "north"
	RegionCentral Region = "central"
	RegionSouth   Region = "south"
	RegionUnknown Region = "unknown"
)

type regionBox struct {
	region         Region
	minLat, maxLat float64
	minLon, maxLon float64
}

// regionBoxes overlap on their shared edges (lat 20 and lat 14). Order
// decides the winner, so north is checked before central before south.
var regionBoxes = []regionBox{
	{region: RegionNorth, minLat: 20, maxLat: 24, minLon: 102, maxLon: 108},
	{region: RegionCentral, minLat: 14, maxLat: 20, minLon: 105, maxLon: 110},
	{region: RegionSouth, minLat: 8, maxLat: 14, minLon: 104, maxLon: 110},
}

// ClassifyRegion maps coordinates to a region using inclusive bounding
// boxes. The first matching box wins.
func ClassifyRegion(lat, lon float64) Region {
	for _, b := range regionBoxes {
		if lat >= b.minLat && lat <= b.maxLat && lon >= b.minLon && lon <= b.maxLon {
			return b.region
		}
	}
	return RegionUnknown
}

// Label returns the Vietnamese display name used for alert areas.
func (r Region) Label() string {
	switch r {
	case RegionNorth:
		return "Miền Bắc"
	case RegionCentral:
		return "Miền Trung"
	case RegionSouth:
		return "Miền Nam"
	default:
		return "Khu vực hiện tại"
	}
}
