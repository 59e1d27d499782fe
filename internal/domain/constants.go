package domain

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = DateFormat + " " + TimeFormat

	// при разборе допускаются месяц, день, час и минута без ведущего нуля
	inputDateTimeFormat = "2006-1-2 15:4"
)

// Business validation constants
const (
	MaxNameLength       = 100
	MaxVehicleLength    = 20
	MaxSlotIDLength     = 16
	MaxLocationLength   = 100
	SlotIDFloorPrefix   = "F"
	SlotIDFloorSplitter = "-"
)

// Default parking catalog
var (
	DefaultLocations = []string{"CityMall", "TechPark", "CentralOffice", "Airport", "Stadium"}
	DefaultFloors    = []int{1, 2}
	DefaultRows      = []string{"A", "B", "C", "D"}
	DefaultNumbers   = []int{1, 2, 3}
)

// Legacy records without location/floor are assigned these values
const (
	LegacyDefaultLocation = "CityMall"
	LegacyDefaultFloor    = 1
)
