package trip

// The five time slots a day is divided into. The backend only ever fills
// these keys; anything else in a blocks map is ignored.
const (
	BlockMorning   = "morning"
	BlockLunch     = "lunch"
	BlockAfternoon = "afternoon"
	BlockDinner    = "dinner"
	BlockEvening   = "evening"
)

// BlockMeta describes one time slot: its id, display label and the default
// window offered in the configuration form.
type BlockMeta struct {
	ID           string
	Label        string
	DefaultStart string
	DefaultEnd   string
}

// BlockConfig lists the slots in display order.
var BlockConfig = []BlockMeta{
	{ID: BlockMorning, Label: "Buổi Sáng", DefaultStart: "08:00", DefaultEnd: "11:30"},
	{ID: BlockLunch, Label: "Buổi Trưa", DefaultStart: "11:30", DefaultEnd: "13:00"},
	{ID: BlockAfternoon, Label: "Buổi Chiều", DefaultStart: "13:30", DefaultEnd: "17:30"},
	{ID: BlockDinner, Label: "Buổi Tối", DefaultStart: "18:00", DefaultEnd: "19:30"},
	{ID: BlockEvening, Label: "Về Đêm", DefaultStart: "20:00", DefaultEnd: "22:00"},
}

// KnownBlock reports whether id is one of the five recognized slot ids.
func KnownBlock(id string) bool {
	for _, b := range BlockConfig {
		if b.ID == id {
			return true
		}
	}
	return false
}
