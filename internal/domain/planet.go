package domain

// Body identifies a celestial body known to the ephemeris.
type Body struct {
	Key  string
	Name string
}

// Earth is the observer for every distance snapshot.
var Earth = Body{Key: "399", Name: "Earth"}

// Planets lists the bodies reported in a distance snapshot. Outer planets
// use their system barycenters.
var Planets = []Body{
	{Key: "199", Name: "Mercury"},
	{Key: "299", Name: "Venus"},
	{Key: "499", Name: "Mars"},
	{Key: "5", Name: "Jupiter"},
	{Key: "6", Name: "Saturn"},
	{Key: "7", Name: "Uranus"},
	{Key: "8", Name: "Neptune"},
}

// PlanetDistance is the distance of a body to Earth in astronomical units.
type PlanetDistance struct {
	Name       string
	Distance   float64
	Increasing bool
}
