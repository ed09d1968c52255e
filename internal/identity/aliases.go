package identity

// DefaultAliases returns the curated alias table: name variants confirmed by
// hand to belong to the same person. The table is finite and not exhaustive.
func DefaultAliases() map[string]string {
	aliases := make(map[string]string, len(defaultAliases))
	for k, v := range defaultAliases {
		aliases[k] = v
	}
	return aliases
}

// MergeAliases overlays configured aliases on the defaults.
// With replace set the defaults are dropped.
func MergeAliases(extra map[string]string, replace bool) map[string]string {
	var out map[string]string
	if replace {
		out = make(map[string]string, len(extra))
	} else {
		out = DefaultAliases()
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

var defaultAliases = map[string]string{
	"Agusti Curia":            "Agustí Curià Morandeira",
	"Alba Rodriguez":          "Alba Rodriguez del Rio",
	"Alex De Rosee":           "Alex de Rosée",
	"Alex DeRosee":            "Alex de Rosée",
	"Angel Diaz Romero":       "Angel Gabriel Diaz Romero",
	"Callum Glover":           "Cal Glover",
	"Chloe Bonnet":            "Chloé Bonnet",
	"Chris Gray":              "Christopher Gray",
	"Chris Johnston":          "Christopher Johnston",
	"Chris Kemp":              "Christopher Kemp",
	"Chris Reed":              "Christopher Reed",
	"Csaba Toth":              "Csaba Tóth",
	"Dan Glastonbury":         "Daniel Glastonbury",
	"Dan McCarthy":            "Daniel McCarthy",
	"Diego Gisbert Llorens":   "Diego Gisbert-Llorens",
	"Dr Derek Fagan":          "Derek Fagan",
	"Dr Tim Gosling":          "Tim Gosling",
	"Duygu Cakmak":            "Duygu Çakmak",
	"Eduardo Sanchez":         "Eduardo Escudero Sanchez",
	"Ellie Koorlander-Lester": "Ellie Koorlander Lester",
	"Elliot Lock":             "Elliott Lock",
	"Elliot Walder":           "Elliott Walder",
	"Emma-Jayne Smith":        "Emma Smith",
	"Georgi Georgiev":         "Georgi Y. Georgiev",
	"Guy Davidson":            "J. Guy Davidson",
	"Hannah Peratopoulous":    "Hannah Peratopoullos",
	"Howard Raynor":           "Howard Rayner",
	"Hriso Enev":              "Hristo Enev",
	"Ivan Dionissiev":         "Ivan Dionisiev",
	"James Woolridge":         "James Wooldridge",
	"Jan Hendrickse":          "Jan Hendrikse",
	"Jas Dhatt":               "Jasmeet Dhatt",
	"Jerome. Rodgers-Blake":   "Jerome Rodgers-Blake",
	"Johan Tann":              "Johann Tan",
	"Jonathon Hemmens":        "Jonathan Hemmens",
	"Joe Nicholson":           "Joseph Nicholson",
	"Joey Dalton":             "Josephine Dalton",
	"Josh Croft":              "Joshua Croft",
	"Josh Williams":           "Joshua Williams",
	"Kevin Mcdowell":          "Kevin McDowell",
	"Kishore Kumar JV":        "Kishore Kumar",
	"Konstantinos Vlachav":    "Konstantinos Vlachavas",
	"Krystiana Gutbub":        "Krystiana Maria Gutbub",
	"Lothar Zhou":             "Lothar W Zhou",
	"Marcos Sueiro":           "Marcos Sueiro Eglicerio",
	"Mariusz Kozik":           "Marius Kozik",
	"Mark Tarrisse":           "Mark Tarisse",
	"Matt Fidler":             "Matthew Fidler",
	"Matt Hall":               "Matthew Hall",
	"Matt Lewis":              "Matthew Lewis",
	"Matt McCamley":           "Matthew McCamley",
	"Matt Starbuck":           "Matthew Starbuck",
	"Matt Wright":             "Matthew Wright",
	"Michael Pettit":          "Michael Pettitt",
	"Michael De Plater":       "Michael de Plater",
	"Mikaela Lidstrom":        "Mikaela Lidström",
	"Mike James":              "Michael James",
	"Mitch Heastie":           "Mitchell Heastie",
	"Mohammed Thanish":        "Mohamed Thanish",
	"Morten Zimmermann":       "Morten Zimmerman",
	"Nat Martin":              "Natalie Martin",
	"Nick Tresedern":          "Nick Tresadern",
	"Olly Brabiner":           "Oliver Brabiner",
	"Pablo Estevez":           "Pablo Perez Estevez",
	"Pete Brophy":             "Peter Brophy",
	"Pete Clapperton":         "Peter Clapperton",
	"Pete Stewart":            "Peter Stewart",
	"Peter Juhasz":            "Péter Juhász",
	"Peter Lameroux":          "Peter Lamoureux",
	"Phil Abram":              "Phillip Abram",
	"Phil Gradidge":           "Phillip Gradidge",
	"R. T. Smith":             "R.T. Smith",
	"Rene Vravko":             "René Vravko",
	"Rich Broadhurst":         "Richard Broadhurst",
	"Rich Aldridge":           "Richard Aldridge",
	"Richard Gardener":        "Richard Gardner",
	"Rob Farrell":             "Robert Farrell",
	"Roland McDonald":         "Roland MacDonald",
	"Sam Price":               "Samuel Price",
	"Sam Simpson":             "Samuel Simpson",
	"Samar Vijay":             "Samar Vijay Singh",
	"Sonya Verchenko":         "Sonya Virchenko",
	"Stefan Bakarov":          "Stephan Bakarov",
	"Stephane Gros-Lemesre":   "Stéphane Gros-Lemesre",
	"Stephanie Yath":          "Stéphanie Yath",
	"Sylvia Hallett":          "Sylvia Hallet",
	"Tamas Rebel":             "Tamás Rábel",
	"Ting Li":                 "Ting Pong Li",
	"Tom Cleaves":             "Thomas Cleaves",
	"Tom Parker":              "Thomas Parker",
	"Tom Philips":             "Tom Phillips",
	"Valentin Goellner":       "Valentin Göellner",
	"Valentin Göllner":        "Valentin Göellner",
	"Veronika Chorbadjieva":   "Veronika Chorbadzhieva",
	"Vic Prentice":            "Victoria Prentice",
	"Vicky Danko":             "Victoria Danko",
	"Viktorija Ardamatska":    "Viktorija Ardamatskaja",
	"Vlad Costin":             "Vladimir Costin",
	"Will Meaton":             "William Meaton",
	"Will Tidman":             "William Tidman",
	"Will Wright":             "William Wright",
	"William Hakestad":        "William Håkestad",
	"Zoltan A. Molnar":        "Zoltan Molnar",
}
