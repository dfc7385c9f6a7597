package models

import "time"

// Languages the bulletin section publishes in. An unrecognized ?lang= filter
// is treated as "no filter".
const (
	LangTamil     = "ta"
	LangEnglish   = "en"
	LangKannada   = "kn"
	LangMalayalam = "ml"
	LangTelugu    = "te"
)

// BulletinLangs lists the recognized bulletin languages in display order.
var BulletinLangs = []string{LangTamil, LangEnglish, LangKannada, LangMalayalam, LangTelugu}

// Bulletin represents one published PDF newsletter. Date is the publication
// date in YYYY-MM-DD form; CreatedAt is set by the server and breaks ties
// when two bulletins share a date.
type Bulletin struct {
	ID        string    `json:"id"`
	Lang      string    `json:"lang"`
	Title     string    `json:"title"`
	PDF       string    `json:"pdf"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// BulletinSummary is the public shape of an archived bulletin, with the
// server-side bookkeeping stripped.
type BulletinSummary struct {
	ID    string `json:"id"`
	Lang  string `json:"lang"`
	Title string `json:"title"`
	PDF   string `json:"pdf"`
	Date  string `json:"date"`
}

// Summary strips the bulletin down to its public fields.
func (b Bulletin) Summary() BulletinSummary {
	return BulletinSummary{ID: b.ID, Lang: b.Lang, Title: b.Title, PDF: b.PDF, Date: b.Date}
}

// IsBulletinLang reports whether s is one of the recognized languages.
func IsBulletinLang(s string) bool {
	for _, l := range BulletinLangs {
		if s == l {
			return true
		}
	}
	return false
}
