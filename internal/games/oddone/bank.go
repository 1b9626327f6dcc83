package oddone

// Puzzle is one odd-one-out question: four words, one of which does not
// belong to the shared category.
type Puzzle struct {
	ID       string
	Words    [4]string
	OddIndex int    // Which word is the odd one
	Category string // Shown during the reveal
}

// bank is the built-in question set. Playlist rounds can pin specific
// puzzles by ID; random rounds draw from the whole bank.
var bank = []Puzzle{
	{ID: "colors-1", Words: [4]string{"crimson", "scarlet", "teal", "ruby"}, OddIndex: 2, Category: "shades of red"},
	{ID: "metals-1", Words: [4]string{"quartz", "iron", "copper", "zinc"}, OddIndex: 0, Category: "metals"},
	{ID: "rivers-1", Words: [4]string{"danube", "amazon", "volga", "sahara"}, OddIndex: 3, Category: "rivers"},
	{ID: "birds-1", Words: [4]string{"heron", "otter", "falcon", "swift"}, OddIndex: 1, Category: "birds"},
	{ID: "fruit-1", Words: [4]string{"mango", "papaya", "guava", "fennel"}, OddIndex: 3, Category: "fruit"},
	{ID: "gems-1", Words: [4]string{"opal", "topaz", "basalt", "garnet"}, OddIndex: 2, Category: "gemstones"},
	{ID: "winds-1", Words: [4]string{"tundra", "sirocco", "mistral", "chinook"}, OddIndex: 0, Category: "winds"},
	{ID: "dances-1", Words: [4]string{"tango", "polka", "waltz", "sonnet"}, OddIndex: 3, Category: "dances"},
	{ID: "clouds-1", Words: [4]string{"cirrus", "geyser", "cumulus", "stratus"}, OddIndex: 1, Category: "cloud types"},
	{ID: "ships-1", Words: [4]string{"sloop", "frigate", "schooner", "hangar"}, OddIndex: 3, Category: "ships"},
	{ID: "bones-1", Words: [4]string{"cornea", "tibia", "femur", "ulna"}, OddIndex: 0, Category: "bones"},
	{ID: "coffee-1", Words: [4]string{"latte", "mocha", "strudel", "espresso"}, OddIndex: 2, Category: "coffee drinks"},
}

// puzzleByID returns the bank entry with the given ID.
func puzzleByID(id string) (Puzzle, bool) {
	for _, p := range bank {
		if p.ID == id {
			return p, true
		}
	}
	return Puzzle{}, false
}
