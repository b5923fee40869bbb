package catalog

import "github.com/yourorg/moodtunes/internal/domain"

// Built-in track library, keyed by emotion label. Stands in for a real
// streaming catalog; track ids are catalog-local.
var library = map[string][]domain.Track{
	"happy": {
		{ID: "1", Name: "Walking on Sunshine", Artist: "Katrina & The Waves", Album: "Walking on Sunshine", DurationMS: 218000, PreviewURL: "https://example.com/preview/1"},
		{ID: "2", Name: "Happy", Artist: "Pharrell Williams", Album: "G I R L", DurationMS: 232000, PreviewURL: "https://example.com/preview/2"},
		{ID: "3", Name: "Can't Stop the Feeling!", Artist: "Justin Timberlake", Album: "Trolls Soundtrack", DurationMS: 236000, PreviewURL: "https://example.com/preview/3"},
		{ID: "4", Name: "Good as Hell", Artist: "Lizzo", Album: "Coconut Oil", DurationMS: 219000, PreviewURL: "https://example.com/preview/4"},
		{ID: "5", Name: "Uptown Funk", Artist: "Mark Ronson ft. Bruno Mars", Album: "Uptown Special", DurationMS: 270000, PreviewURL: "https://example.com/preview/5"},
	},
	"sad": {
		{ID: "6", Name: "Someone Like You", Artist: "Adele", Album: "21", DurationMS: 285000, PreviewURL: "https://example.com/preview/6"},
		{ID: "7", Name: "Hurt", Artist: "Johnny Cash", Album: "American IV", DurationMS: 218000, PreviewURL: "https://example.com/preview/7"},
		{ID: "8", Name: "Mad World", Artist: "Gary Jules", Album: "Trading Snakeoil for Wolftickets", DurationMS: 191000, PreviewURL: "https://example.com/preview/8"},
		{ID: "9", Name: "Black", Artist: "Pearl Jam", Album: "Ten", DurationMS: 343000, PreviewURL: "https://example.com/preview/9"},
		{ID: "10", Name: "The Sound of Silence", Artist: "Disturbed", Album: "Immortalized", DurationMS: 246000, PreviewURL: "https://example.com/preview/10"},
	},
	"angry": {
		{ID: "11", Name: "Break Stuff", Artist: "Limp Bizkit", Album: "Significant Other", DurationMS: 167000, PreviewURL: "https://example.com/preview/11"},
		{ID: "12", Name: "Bodies", Artist: "Drowning Pool", Album: "Sinner", DurationMS: 203000, PreviewURL: "https://example.com/preview/12"},
		{ID: "13", Name: "Chop Suey!", Artist: "System of a Down", Album: "Toxicity", DurationMS: 210000, PreviewURL: "https://example.com/preview/13"},
		{ID: "14", Name: "Killing in the Name", Artist: "Rage Against the Machine", Album: "Rage Against the Machine", DurationMS: 314000, PreviewURL: "https://example.com/preview/14"},
	},
	"surprised": {
		{ID: "15", Name: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", DurationMS: 354000, PreviewURL: "https://example.com/preview/15"},
		{ID: "16", Name: "Paranoid Android", Artist: "Radiohead", Album: "OK Computer", DurationMS: 383000, PreviewURL: "https://example.com/preview/16"},
		{ID: "17", Name: "Bittersweet Symphony", Artist: "The Verve", Album: "Urban Hymns", DurationMS: 357000, PreviewURL: "https://example.com/preview/17"},
	},
	"neutral": {
		{ID: "18", Name: "Weightless", Artist: "Marconi Union", Album: "Distance", DurationMS: 485000, PreviewURL: "https://example.com/preview/18"},
		{ID: "19", Name: "Clair de Lune", Artist: "Claude Debussy", Album: "Suite Bergamasque", DurationMS: 288000, PreviewURL: "https://example.com/preview/19"},
		{ID: "20", Name: "Gymnopédie No. 1", Artist: "Erik Satie", Album: "Trois Gymnopédies", DurationMS: 273000, PreviewURL: "https://example.com/preview/20"},
	},
	"excited": {
		{ID: "21", Name: "Don't Stop Me Now", Artist: "Queen", Album: "Jazz", DurationMS: 209000, PreviewURL: "https://example.com/preview/21"},
		{ID: "22", Name: "Mr. Brightside", Artist: "The Killers", Album: "Hot Fuss", DurationMS: 222000, PreviewURL: "https://example.com/preview/22"},
		{ID: "23", Name: "Levels", Artist: "Avicii", Album: "Levels", DurationMS: 202000, PreviewURL: "https://example.com/preview/23"},
	},
	"relaxed": {
		{ID: "24", Name: "Aqueous Transmission", Artist: "Incubus", Album: "Morning View", DurationMS: 447000, PreviewURL: "https://example.com/preview/24"},
		{ID: "25", Name: "Holocene", Artist: "Bon Iver", Album: "Bon Iver, Bon Iver", DurationMS: 337000, PreviewURL: "https://example.com/preview/25"},
		{ID: "26", Name: "Banana Pancakes", Artist: "Jack Johnson", Album: "In Between Dreams", DurationMS: 192000, PreviewURL: "https://example.com/preview/26"},
	},
	"fearful": {
		{ID: "27", Name: "Breathe Me", Artist: "Sia", Album: "Colour the Small One", DurationMS: 268000, PreviewURL: "https://example.com/preview/27"},
		{ID: "28", Name: "Everybody's Gotta Live", Artist: "Love", Album: "Out Here", DurationMS: 204000, PreviewURL: "https://example.com/preview/28"},
		{ID: "29", Name: "Fix You", Artist: "Coldplay", Album: "X&Y", DurationMS: 295000, PreviewURL: "https://example.com/preview/29"},
	},
	"disgusted": {
		{ID: "30", Name: "Smells Like Teen Spirit", Artist: "Nirvana", Album: "Nevermind", DurationMS: 301000, PreviewURL: "https://example.com/preview/30"},
		{ID: "31", Name: "Creep", Artist: "Radiohead", Album: "Pablo Honey", DurationMS: 239000, PreviewURL: "https://example.com/preview/31"},
		{ID: "32", Name: "Loser", Artist: "Beck", Album: "Mellow Gold", DurationMS: 235000, PreviewURL: "https://example.com/preview/32"},
	},
}
