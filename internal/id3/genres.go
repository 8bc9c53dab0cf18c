package id3

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/simonhull/mp3meta/internal/types"
)

// genreTable holds the ID3v1 genre list with the Winamp extensions, indexed
// by genre number. An entry with more than one name expands to all of them.
var genreTable = [...][]string{
	{"Blues"},
	{"Classic Rock"},
	{"Country"},
	{"Dance"},
	{"Disco"},
	{"Funk"},
	{"Grunge"},
	{"Hip-Hop"},
	{"Jazz"},
	{"Metal"},
	{"New Age"},
	{"Oldies"},
	{"Other"},
	{"Pop"},
	{"Rhythm and Blues"},
	{"Rap"},
	{"Reggae"},
	{"Rock"},
	{"Techno"},
	{"Industrial"},
	{"Alternative"},
	{"Ska"},
	{"Death Metal"},
	{"Pranks"},
	{"Soundtrack"},
	{"Euro-Techno"},
	{"Ambient"},
	{"Trip-Hop"},
	{"Vocal"},
	{"Jazz & Funk"},
	{"Fusion"},
	{"Trance"},
	{"Classical"},
	{"Instrumental"},
	{"Acid"},
	{"House"},
	{"Game"},
	{"Sound Clip"},
	{"Gospel"},
	{"Noise"},
	{"Alternative Rock"},
	{"Bass"},
	{"Soul"},
	{"Punk"},
	{"Space"},
	{"Meditative"},
	{"Instrumental Pop"},
	{"Instrumental Rock"},
	{"Ethnic"},
	{"Gothic"},
	{"Darkwave"},
	{"Techno-Industrial"},
	{"Electronic"},
	{"Pop-Folk"},
	{"Eurodance"},
	{"Dream"},
	{"Southern Rock"},
	{"Comedy"},
	{"Cult"},
	{"Gangsta"},
	{"Top 40"},
	{"Christian Rap"},
	{"Pop", "Funk"},
	{"Jungle"},
	{"Native US"},
	{"Cabaret"},
	{"New Wave"},
	{"Psychedelic"},
	{"Rave"},
	{"Showtunes"},
	{"Trailer"},
	{"Lo-Fi"},
	{"Tribal"},
	{"Acid Punk"},
	{"Acid Jazz"},
	{"Polka"},
	{"Retro"},
	{"Musical"},
	{"Rock ’n’ Roll"},
	{"Hard Rock"},
	{"Folk"},
	{"Folk-Rock"},
	{"National Folk"},
	{"Swing"},
	{"Fast Fusion"},
	{"Bebop"},
	{"Latin"},
	{"Revival"},
	{"Celtic"},
	{"Bluegrass"},
	{"Avantgarde"},
	{"Gothic Rock"},
	{"Progressive Rock"},
	{"Psychedelic Rock"},
	{"Symphonic Rock"},
	{"Slow Rock"},
	{"Big Band"},
	{"Chorus"},
	{"Easy Listening"},
	{"Acoustic"},
	{"Humour"},
	{"Speech"},
	{"Chanson"},
	{"Opera"},
	{"Chamber Music"},
	{"Sonata"},
	{"Symphony"},
	{"Booty Bass"},
	{"Primus"},
	{"Porn Groove"},
	{"Satire"},
	{"Slow Jam"},
	{"Club"},
	{"Tango"},
	{"Samba"},
	{"Folklore"},
	{"Ballad"},
	{"Power Ballad"},
	{"Rhythmic Soul"},
	{"Freestyle"},
	{"Duet"},
	{"Punk Rock"},
	{"Drum Solo"},
	{"A cappella"},
	{"Euro-House"},
	{"Dance Hall"},
	{"Goa"},
	{"Drum & Bass"},
	{"Club-House"},
	{"Hardcore Techno"},
	{"Terror"},
	{"Indie"},
	{"BritPop"},
	{"Negerpunk"},
	{"Polsk Punk"},
	{"Beat"},
	{"Christian Gangsta Rap"},
	{"Heavy Metal"},
	{"Black Metal"},
	{"Crossover"},
	{"Contemporary Christian"},
	{"Christian Rock"},
	{"Merengue"},
	{"Salsa"},
	{"Thrash Metal"},
	{"Anime"},
	{"Jpop"},
	{"Synthpop"},
	{"Abstract"},
	{"Art Rock"},
	{"Baroque"},
	{"Bhangra"},
	{"Big Beat"},
	{"Breakbeat"},
	{"Chillout"},
	{"Downtempo"},
	{"Dub"},
	{"EBM"},
	{"Eclectic"},
	{"Electro"},
	{"Electroclash"},
	{"Emo"},
	{"Experimental"},
	{"Garage"},
	{"Global"},
	{"IDM"},
	{"Illbient"},
	{"Industro-Goth"},
	{"Jam Band"},
	{"Krautrock"},
	{"Leftfield"},
	{"Lounge"},
	{"Math Rock"},
	{"New Romantic"},
	{"Nu-Breakz"},
	{"Post-Punk"},
	{"Post-Rock"},
	{"Psytrance"},
	{"Shoegaze"},
	{"Space Rock"},
	{"Trop Rock"},
	{"World Music"},
	{"Neoclassical"},
	{"Audiobook"},
	{"Audio Theatre"},
	{"Neue Deutsche Welle"},
	{"Podcast"},
	{"Indie Rock"},
	{"G-Funk"},
	{"Dubstep"},
	{"Garage Rock"},
	{"Psybient"},
}

// genreNames returns the names for an ID3v1 genre number, or nil when the
// number is past the end of the table.
func genreNames(n int) []string {
	if n < 0 || n >= len(genreTable) {
		return nil
	}
	return genreTable[n]
}

var (
	genreRefPattern   = regexp.MustCompile(`\((\d+)\)`)
	genreSplitPattern = regexp.MustCompile(`\s*/\s*`)
)

// parseGenres extracts genres from a TCON value such as "(17)(3)Speed Metal"
// or "Rock/Pop". Parenthesised numbers are looked up in genreTable; free text
// after the last reference is split on "/".
func parseGenres(text string) []string {
	var genres []string
	last := 0

	for _, loc := range genreRefPattern.FindAllStringSubmatchIndex(text, -1) {
		last = loc[1]
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		genres = append(genres, genreNames(n)...)
	}

	rest := strings.TrimSpace(text[last:])
	if rest == "" {
		return genres
	}

	for _, g := range genreSplitPattern.Split(rest, -1) {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// genreHandler handles TCO/TCON.
type genreHandler struct{}

func (genreHandler) decode(f *frame, m *types.Metadata) error {
	text, ok, err := f.text()
	if err != nil || !ok {
		return err
	}
	m.AddGenres(parseGenres(text)...)
	return nil
}
