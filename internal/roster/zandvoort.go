package roster

import "github.com/tracklight/replay/pkg/core"

// DefaultRoster returns the compiled-in 2023 Zandvoort race roster: the 20
// starters keyed by racing number, with team colors as display colors.
func DefaultRoster() *Roster {
	r, err := New(zandvoortEntities())
	if err != nil {
		panic(err)
	}
	return r
}

func zandvoortEntities() []core.Entity {
	return []core.Entity{
		{ID: 1, Name: "Max Verstappen", Team: "Red Bull", Color: "#1E41FF"},
		{ID: 2, Name: "Logan Sargeant", Team: "Williams", Color: "#0052FF"},
		{ID: 4, Name: "Lando Norris", Team: "McLaren", Color: "#FF8700"},
		{ID: 10, Name: "Pierre Gasly", Team: "Alpine", Color: "#0290F0"},
		{ID: 11, Name: "Sergio Perez", Team: "Red Bull", Color: "#1E41FF"},
		{ID: 14, Name: "Fernando Alonso", Team: "Aston Martin", Color: "#006E78"},
		{ID: 16, Name: "Charles Leclerc", Team: "Ferrari", Color: "#DC0000"},
		{ID: 18, Name: "Lance Stroll", Team: "Aston Martin", Color: "#006E78"},
		{ID: 20, Name: "Kevin Magnussen", Team: "Haas", Color: "#A0CFCD"},
		{ID: 22, Name: "Yuki Tsunoda", Team: "AlphaTauri", Color: "#3C82C8"},
		{ID: 23, Name: "Alex Albon", Team: "Williams", Color: "#0052FF"},
		{ID: 24, Name: "Zhou Guanyu", Team: "Alfa Romeo", Color: "#A5A09B"},
		{ID: 27, Name: "Nico Hulkenberg", Team: "Haas", Color: "#A0CFCD"},
		{ID: 31, Name: "Esteban Ocon", Team: "Alpine", Color: "#0290F0"},
		{ID: 40, Name: "Liam Lawson", Team: "AlphaTauri", Color: "#3C82C8"},
		{ID: 44, Name: "Lewis Hamilton", Team: "Mercedes", Color: "#00D2BE"},
		{ID: 55, Name: "Carlos Sainz", Team: "Ferrari", Color: "#DC0000"},
		{ID: 63, Name: "George Russell", Team: "Mercedes", Color: "#00D2BE"},
		{ID: 77, Name: "Valtteri Bottas", Team: "Alfa Romeo", Color: "#A5A09B"},
		{ID: 81, Name: "Oscar Piastri", Team: "McLaren", Color: "#FF8700"},
	}
}
