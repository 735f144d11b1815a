// filepath: internal/initconfig/models.go
package initconfig

// Seed is the root struct for parsing the TOML seed file used by forge.
type Seed struct {
	Name   string      `toml:"name"`
	Movies []SeedMovie `toml:"movie"`
}

// SeedMovie represents a movie entry in the TOML seed file.
type SeedMovie struct {
	Title string `toml:"title"`
	Year  string `toml:"year"`
}

// DefaultSeed returns the demo owner name and movie list.
func DefaultSeed() *Seed {
	return &Seed{
		Name: "Grey Li",
		Movies: []SeedMovie{
			{Title: "My Neighbor Totoro", Year: "1988"},
			{Title: "Dead Poets Society", Year: "1989"},
			{Title: "A Perfect World", Year: "1993"},
			{Title: "Leon", Year: "1994"},
			{Title: "Mahjong", Year: "1996"},
			{Title: "Swallowtail Butterfly", Year: "1996"},
			{Title: "King of Comedy", Year: "1999"},
			{Title: "Devils on the Doorstep", Year: "1999"},
			{Title: "WALL-E", Year: "2008"},
			{Title: "The Pork of Music", Year: "2012"},
		},
	}
}
