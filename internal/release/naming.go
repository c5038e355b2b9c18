package release

import (
	"fmt"
	"strings"

	"flacsmith/internal/catalog"
	"flacsmith/internal/textutil"
)

// maxTitleRunes caps the album title portion of a release directory name.
const maxTitleRunes = 100

// artistOverflowLimit is the joined-name length beyond which the artist
// credit collapses to "Various Artists".
const artistOverflowLimit = 50

// Metadata describes the release being packaged, with artist credits grouped
// by role.
type Metadata struct {
	Artists   []string
	Composers []string
	DJs       []string

	Title string
	Year  int

	Media         string
	RemasterTitle string
	RemasterYear  int
}

// ArtistCredit formats the primary artist string. Composers take precedence
// over DJs, DJs over main artists; a release with no credits at all is
// "Unknown". Two names join with "&", more with an oxford comma, and overly
// long joins collapse to "Various Artists".
func (m Metadata) ArtistCredit() string {
	names := m.Composers
	if len(names) == 0 {
		names = m.DJs
	}
	if len(names) == 0 {
		names = m.Artists
	}
	if len(names) == 0 {
		return "Unknown"
	}

	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " & " + names[1]
	}

	joined := strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
	if len(joined) > artistOverflowLimit {
		return "Various Artists"
	}
	return joined
}

// mediaQualifier formats the media and remaster annotation, e.g.
// "{CD ~ Deluxe Edition 2011}" or "{WEB}". Empty media yields no qualifier.
func (m Metadata) mediaQualifier() string {
	if m.Media == "" {
		return ""
	}
	if m.RemasterTitle != "" {
		return fmt.Sprintf("{%s ~ %s %d}", m.Media, m.RemasterTitle, m.RemasterYear)
	}
	return "{" + m.Media + "}"
}

// DirName derives the release directory name:
// "Artist - Year - Title {Media ~ Remaster Year} [Format]", with the title
// capped at 100 runes and characters unsafe in directory names replaced by
// underscores.
func DirName(meta Metadata, format catalog.Format) string {
	title := meta.Title
	if runes := []rune(title); len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes])
	}

	name := fmt.Sprintf("%s - %d - %s", meta.ArtistCredit(), meta.Year, title)
	if qualifier := meta.mediaQualifier(); qualifier != "" {
		name += " " + qualifier
	}
	name += fmt.Sprintf(" [%s]", format.LongName)
	return textutil.SanitizeDirName(name)
}
