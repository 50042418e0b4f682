package service

type Waypoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

const (
	ModeNormal   = "normal"
	ModeFast     = "fast"
	ModeTeleport = "teleport"
)

// Routes are fixed travel patterns of increasing implausibility: normal is
// slow urban movement, fast is highway-speed movement, teleport jumps between
// distant cities and trips both heuristics.
var routes = map[string][]Waypoint{
	ModeNormal: {
		{"Shivajinagar Start", 18.5204, 73.8567},
		{"FC Road", 18.5218, 73.8577},
		{"JM Road", 18.5232, 73.8587},
		{"Deccan", 18.5246, 73.8597},
		{"Prabhat Road", 18.5260, 73.8607},
		{"Law College Road", 18.5274, 73.8617},
		{"Senapati Bapat", 18.5288, 73.8627},
		{"SB Road", 18.5302, 73.8637},
		{"University Circle", 18.5316, 73.8647},
		{"Pashan", 18.5330, 73.8657},
	},
	ModeFast: {
		{"Pune Start", 18.5204, 73.8567},
		{"Kothrud", 18.5304, 73.8667},
		{"Warje", 18.5404, 73.8767},
		{"Bavdhan", 18.5504, 73.8867},
		{"Hinjewadi", 18.5604, 73.8967},
		{"Mumbai Outskirts", 18.6204, 73.9567},
	},
	ModeTeleport: {
		{"Pune", 18.5204, 73.8567},
		{"Mumbai", 19.0760, 72.8777},
		{"Delhi", 28.7041, 77.1025},
		{"Bangalore", 12.9716, 77.5946},
		{"Kolkata", 22.5726, 88.3639},
		{"Chennai", 13.0827, 80.2707},
	},
}

func Route(mode string) ([]Waypoint, bool) {
	r, ok := routes[mode]
	return r, ok
}
