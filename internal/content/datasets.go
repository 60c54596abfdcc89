package content

import (
	"strconv"

	"englishpath/internal/models"
)

// Entry is one piece of curated learning content
type Entry struct {
	Key     string `json:"key"`
	Text    string `json:"text"`
	Example string `json:"example,omitempty"`
}

func alphabetEntries() []Entry {
	examples := []string{
		"apple", "bus", "cat", "doctor", "egg", "family", "garden", "house", "ice",
		"job", "key", "lemon", "milk", "name", "orange", "park", "question", "rain",
		"shop", "train", "umbrella", "van", "water", "box", "yes", "zero",
	}

	entries := make([]Entry, 0, 26)
	for i, example := range examples {
		letter := string(rune('A' + i))
		entries = append(entries, Entry{Key: letter, Text: letter, Example: example})
	}
	return entries
}

func numberEntries() []Entry {
	words := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

	entries := make([]Entry, 0, len(words))
	for i, word := range words {
		entries = append(entries, Entry{Key: strconv.Itoa(i + 1), Text: word})
	}
	return entries
}

var foodEntries = []Entry{
	{Key: "vocabulary", Text: "Food words", Example: "bread, rice, chicken, apple"},
	{Key: "matching", Text: "Match the picture", Example: "Which one is the banana?"},
	{Key: "listening", Text: "Listen and choose", Example: "I would like some soup, please."},
	{Key: "shopping-list", Text: "Write a shopping list", Example: "milk, eggs, bread"},
}

var objectEntries = []Entry{
	{Key: "chair", Text: "chair", Example: "Please sit on the chair."},
	{Key: "table", Text: "table", Example: "The keys are on the table."},
	{Key: "phone", Text: "phone", Example: "My phone is ringing."},
	{Key: "key", Text: "key", Example: "I lost my key."},
	{Key: "cup", Text: "cup", Example: "A cup of tea, please."},
	{Key: "bed", Text: "bed", Example: "I go to bed at ten."},
	{Key: "door", Text: "door", Example: "Close the door, please."},
	{Key: "window", Text: "window", Example: "Open the window."},
	{Key: "clock", Text: "clock", Example: "The clock says three o'clock."},
	{Key: "bag", Text: "bag", Example: "My bag is heavy."},
	{Key: "book", Text: "book", Example: "This is my English book."},
	{Key: "pen", Text: "pen", Example: "Can I borrow a pen?"},
}

var healthEntries = []Entry{
	{Key: "headache", Text: "I have a headache."},
	{Key: "fever", Text: "I have a fever."},
	{Key: "pain", Text: "It hurts here."},
	{Key: "pharmacy", Text: "Where is the pharmacy?"},
	{Key: "appointment", Text: "I need to see a doctor."},
	{Key: "allergy", Text: "I am allergic to penicillin."},
	{Key: "emergency", Text: "Call an ambulance!"},
	{Key: "medicine", Text: "How often do I take this medicine?"},
}

var directionEntries = []Entry{
	{Key: "left", Text: "Turn left."},
	{Key: "right", Text: "Turn right."},
	{Key: "straight", Text: "Go straight ahead."},
	{Key: "corner", Text: "It is on the corner."},
	{Key: "next-to", Text: "The bank is next to the post office."},
	{Key: "opposite", Text: "The school is opposite the park."},
	{Key: "where", Text: "Excuse me, where is the bus stop?"},
	{Key: "far", Text: "Is it far from here?"},
}

var phraseEntries = []Entry{
	{Key: "hello", Text: "Hello, my name is..."},
	{Key: "repeat", Text: "Can you say that again, please?"},
	{Key: "slowly", Text: "Please speak slowly."},
	{Key: "help", Text: "Can you help me, please?"},
	{Key: "understand", Text: "I don't understand."},
	{Key: "thank-you", Text: "Thank you very much."},
	{Key: "how-much", Text: "How much is this?"},
	{Key: "toilet", Text: "Where is the toilet?"},
}

var resourceEntries = []Entry{
	{Key: "library", Text: "Public library English classes", Example: "Free conversation groups every week."},
	{Key: "community-centre", Text: "Community centre", Example: "Help with forms and letters."},
	{Key: "radio", Text: "Slow English radio", Example: "Short news read slowly."},
}

// datasets maps each module to its content. Only modules listed in
// trackedModules contribute completion records.
func datasets() map[models.ModuleKey][]Entry {
	return map[models.ModuleKey][]Entry{
		models.ModuleAlphabet:   alphabetEntries(),
		models.ModuleNumbers:    numberEntries(),
		models.ModuleFood:       foodEntries,
		models.ModuleObjects:    objectEntries,
		models.ModuleResources:  resourceEntries,
		models.ModuleHealth:     healthEntries,
		models.ModuleDirections: directionEntries,
		models.ModulePhrases:    phraseEntries,
	}
}
