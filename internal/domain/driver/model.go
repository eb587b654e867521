package driver

// Driver is one entry of the reference grid. Name is the short display name
// used in score breakdowns.
type Driver struct {
	ID       string
	Code     string
	Number   int
	Name     string
	FullName string
	Team     string
}

func DefaultGrid() []Driver {
	return []Driver{
		{ID: "verstappen", Code: "VER", Number: 1, Name: "Verstappen", FullName: "Max Verstappen", Team: "Red Bull Racing"},
		{ID: "tsunoda", Code: "TSU", Number: 22, Name: "Tsunoda", FullName: "Yuki Tsunoda", Team: "Red Bull Racing"},
		{ID: "norris", Code: "NOR", Number: 4, Name: "Norris", FullName: "Lando Norris", Team: "McLaren"},
		{ID: "piastri", Code: "PIA", Number: 81, Name: "Piastri", FullName: "Oscar Piastri", Team: "McLaren"},
		{ID: "leclerc", Code: "LEC", Number: 16, Name: "Leclerc", FullName: "Charles Leclerc", Team: "Ferrari"},
		{ID: "hamilton", Code: "HAM", Number: 44, Name: "Hamilton", FullName: "Lewis Hamilton", Team: "Ferrari"},
		{ID: "russell", Code: "RUS", Number: 63, Name: "Russell", FullName: "George Russell", Team: "Mercedes"},
		{ID: "antonelli", Code: "ANT", Number: 12, Name: "Antonelli", FullName: "Andrea Kimi Antonelli", Team: "Mercedes"},
		{ID: "alonso", Code: "ALO", Number: 14, Name: "Alonso", FullName: "Fernando Alonso", Team: "Aston Martin"},
		{ID: "stroll", Code: "STR", Number: 18, Name: "Stroll", FullName: "Lance Stroll", Team: "Aston Martin"},
		{ID: "gasly", Code: "GAS", Number: 10, Name: "Gasly", FullName: "Pierre Gasly", Team: "Alpine"},
		{ID: "colapinto", Code: "COL", Number: 43, Name: "Colapinto", FullName: "Franco Colapinto", Team: "Alpine"},
		{ID: "albon", Code: "ALB", Number: 23, Name: "Albon", FullName: "Alexander Albon", Team: "Williams"},
		{ID: "sainz", Code: "SAI", Number: 55, Name: "Sainz", FullName: "Carlos Sainz", Team: "Williams"},
		{ID: "ocon", Code: "OCO", Number: 31, Name: "Ocon", FullName: "Esteban Ocon", Team: "Haas"},
		{ID: "bearman", Code: "BEA", Number: 87, Name: "Bearman", FullName: "Oliver Bearman", Team: "Haas"},
		{ID: "hulkenberg", Code: "HUL", Number: 27, Name: "Hulkenberg", FullName: "Nico Hulkenberg", Team: "Kick Sauber"},
		{ID: "bortoleto", Code: "BOR", Number: 5, Name: "Bortoleto", FullName: "Gabriel Bortoleto", Team: "Kick Sauber"},
		{ID: "lawson", Code: "LAW", Number: 30, Name: "Lawson", FullName: "Liam Lawson", Team: "Racing Bulls"},
		{ID: "hadjar", Code: "HAD", Number: 6, Name: "Hadjar", FullName: "Isack Hadjar", Team: "Racing Bulls"},
	}
}
