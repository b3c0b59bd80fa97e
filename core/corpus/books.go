package corpus

import "strings"

// BookInfo describes one New Testament book and the codes different
// sources use for it.
type BookInfo struct {
	Number  int    // canonical NT order, 1-based (MorphGNT numbering)
	Code    string // Tischendorf word-per-line file code, used in source links
	OSIS    string // OSIS book id
	Name    string // English name used in section labels
	Aliases []string
}

// Books is the New Testament book table in canonical order.
var Books = []BookInfo{
	{1, "MT", "Matt", "Matthew", []string{"Mt", "Mat"}},
	{2, "MR", "Mark", "Mark", []string{"Mk", "Mrk"}},
	{3, "LU", "Luke", "Luke", []string{"Lk", "Luk"}},
	{4, "JOH", "John", "John", []string{"Jn", "Jhn"}},
	{5, "AC", "Acts", "Acts", []string{"Act"}},
	{6, "RO", "Rom", "Romans", []string{"Ro", "Rm"}},
	{7, "1CO", "1Cor", "1 Corinthians", []string{"1Co"}},
	{8, "2CO", "2Cor", "2 Corinthians", []string{"2Co"}},
	{9, "GA", "Gal", "Galatians", []string{"Ga"}},
	{10, "EPH", "Eph", "Ephesians", []string{"Ephes"}},
	{11, "PHP", "Phil", "Philippians", []string{"Php", "Pp"}},
	{12, "COL", "Col", "Colossians", []string{"Co"}},
	{13, "1TH", "1Thess", "1 Thessalonians", []string{"1Th"}},
	{14, "2TH", "2Thess", "2 Thessalonians", []string{"2Th"}},
	{15, "1TI", "1Tim", "1 Timothy", []string{"1Ti"}},
	{16, "2TI", "2Tim", "2 Timothy", []string{"2Ti"}},
	{17, "TIT", "Titus", "Titus", []string{"Tit"}},
	{18, "PHM", "Phlm", "Philemon", []string{"Phm", "Philem"}},
	{19, "HEB", "Heb", "Hebrews", []string{"He"}},
	{20, "JAS", "Jas", "James", []string{"Jam", "Jm"}},
	{21, "1PE", "1Pet", "1 Peter", []string{"1Pe"}},
	{22, "2PE", "2Pet", "2 Peter", []string{"2Pe"}},
	{23, "1JO", "1John", "1 John", []string{"1Jn"}},
	{24, "2JO", "2John", "2 John", []string{"2Jn"}},
	{25, "3JO", "3John", "3 John", []string{"3Jn"}},
	{26, "JUDE", "Jude", "Jude", []string{"Jud", "Jd"}},
	{27, "RE", "Rev", "Revelation", []string{"Rv", "Apoc"}},
}

var bookIndex = func() map[string]int {
	idx := make(map[string]int)
	for i, b := range Books {
		for _, key := range append([]string{b.Code, b.OSIS, b.Name}, b.Aliases...) {
			idx[bookKey(key)] = i
		}
	}
	return idx
}()

// bookKey folds case, spaces, dots and underscores so "1 Cor.", "1cor" and
// "1_Cor" meet in one index.
func bookKey(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", ".", "", "_", "").Replace(s)
}

// LookupBook finds a book by code, OSIS id, English name or alias.
func LookupBook(s string) (BookInfo, bool) {
	i, ok := bookIndex[bookKey(s)]
	if !ok {
		return BookInfo{}, false
	}
	return Books[i], true
}

// BookByNumber returns the book with the given canonical NT number.
func BookByNumber(n int) (BookInfo, bool) {
	if n < 1 || n > len(Books) {
		return BookInfo{}, false
	}
	return Books[n-1], true
}
