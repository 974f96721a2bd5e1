package domain

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Address represents a physical location. All fields are optional on admin
// accounts; donors and camps carry a full address with coordinates.
type Address struct {
	Street      string      `json:"street,omitempty" bson:"street,omitempty"`
	City        string      `json:"city,omitempty" bson:"city,omitempty"`
	State       string      `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode     string      `json:"zip_code,omitempty" bson:"zip_code,omitempty"`
	Coordinates Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}
