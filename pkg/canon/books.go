package canon

import "strings"

// Book holds metadata for a single book of the Bible.
type Book struct {
	Name     string
	Slug     string
	Order    int
	Chapters int
}

// Books contains the 66 books of the Protestant canon in canonical order.
var Books = []Book{
	{"Genesis", "genesis", 1, 50},
	{"Exodus", "exodus", 2, 40},
	{"Leviticus", "leviticus", 3, 27},
	{"Numbers", "numbers", 4, 36},
	{"Deuteronomy", "deuteronomy", 5, 34},
	{"Joshua", "joshua", 6, 24},
	{"Judges", "judges", 7, 21},
	{"Ruth", "ruth", 8, 4},
	{"1 Samuel", "1-samuel", 9, 31},
	{"2 Samuel", "2-samuel", 10, 24},
	{"1 Kings", "1-kings", 11, 22},
	{"2 Kings", "2-kings", 12, 25},
	{"1 Chronicles", "1-chronicles", 13, 29},
	{"2 Chronicles", "2-chronicles", 14, 36},
	{"Ezra", "ezra", 15, 10},
	{"Nehemiah", "nehemiah", 16, 13},
	{"Esther", "esther", 17, 10},
	{"Job", "job", 18, 42},
	{"Psalms", "psalms", 19, 150},
	{"Proverbs", "proverbs", 20, 31},
	{"Ecclesiastes", "ecclesiastes", 21, 12},
	{"Song of Solomon", "song-of-solomon", 22, 8},
	{"Isaiah", "isaiah", 23, 66},
	{"Jeremiah", "jeremiah", 24, 52},
	{"Lamentations", "lamentations", 25, 5},
	{"Ezekiel", "ezekiel", 26, 48},
	{"Daniel", "daniel", 27, 12},
	{"Hosea", "hosea", 28, 14},
	{"Joel", "joel", 29, 3},
	{"Amos", "amos", 30, 9},
	{"Obadiah", "obadiah", 31, 1},
	{"Jonah", "jonah", 32, 4},
	{"Micah", "micah", 33, 7},
	{"Nahum", "nahum", 34, 3},
	{"Habakkuk", "habakkuk", 35, 3},
	{"Zephaniah", "zephaniah", 36, 3},
	{"Haggai", "haggai", 37, 2},
	{"Zechariah", "zechariah", 38, 14},
	{"Malachi", "malachi", 39, 4},
	{"Matthew", "matthew", 40, 28},
	{"Mark", "mark", 41, 16},
	{"Luke", "luke", 42, 24},
	{"John", "john", 43, 21},
	{"Acts", "acts", 44, 28},
	{"Romans", "romans", 45, 16},
	{"1 Corinthians", "1-corinthians", 46, 16},
	{"2 Corinthians", "2-corinthians", 47, 13},
	{"Galatians", "galatians", 48, 6},
	{"Ephesians", "ephesians", 49, 6},
	{"Philippians", "philippians", 50, 4},
	{"Colossians", "colossians", 51, 4},
	{"1 Thessalonians", "1-thessalonians", 52, 5},
	{"2 Thessalonians", "2-thessalonians", 53, 3},
	{"1 Timothy", "1-timothy", 54, 6},
	{"2 Timothy", "2-timothy", 55, 4},
	{"Titus", "titus", 56, 3},
	{"Philemon", "philemon", 57, 1},
	{"Hebrews", "hebrews", 58, 13},
	{"James", "james", 59, 5},
	{"1 Peter", "1-peter", 60, 5},
	{"2 Peter", "2-peter", 61, 3},
	{"1 John", "1-john", 62, 5},
	{"2 John", "2-john", 63, 1},
	{"3 John", "3-john", 64, 1},
	{"Jude", "jude", 65, 1},
	{"Revelation", "revelation", 66, 22},
}

// byName is keyed by the normalized lowercase book name.
var byName = func() map[string]Book {
	m := make(map[string]Book, len(Books))
	for _, b := range Books {
		m[strings.ToLower(normalizeName(b.Name))] = b
	}
	return m
}()

// normalizeName collapses any run of whitespace to a single space.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Find looks up a book by name, tolerating case and whitespace variations.
func Find(name string) (Book, bool) {
	b, ok := byName[strings.ToLower(normalizeName(name))]
	return b, ok
}

// ValidRef reports whether (book, chapter) references a real chapter.
func ValidRef(book string, chapter int) bool {
	b, ok := Find(book)
	if !ok {
		return false
	}
	return chapter >= 1 && chapter <= b.Chapters
}
