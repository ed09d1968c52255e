package adapters

// Hand transcribed credits for the two games that ship no parseable credits
// file. Shogun was read off the in-game credit screens; Medieval's text file
// uses a one-off layout.

var builtinTranscripts = map[string][]transcriptRole{
	"2000_shogun":   shogunTranscript,
	"2002_medieval": medievalTranscript,
}

var shogunTranscript = []transcriptRole{
	{"Project Director", []string{"Mike Simpson"}},
	{"Programming", []string{"A.P. Taglione", "Matteo Sartori", "Shane O'Brien", "Dan Parkes", "John McFarlane", "Dan Laviers", "Dan Triggs", "Charlie Dell", "Joss Adley", "Howard Rayner", "Greg Alston", "Ester Reeve", "Nick Smith", "Al Hope", "Nick Tresadern", "Jude Bond"}},
	{"Project Management", []string{"Mike Simpson", "Luci Black", "Ross Manton", "Tim Ansell"}},
	{"Q.A. Manager", []string{"Graham Axford"}},
	{"Testers", []string{"Chris Morphew", "Jeff Woods", "Jason Ong", "James Buckle"}},
	{"Historical Research", []string{"Stephen Turnbull"}},
	{"Dialog & Additional Content", []string{"Mike Brunton"}},
	{"Scenario Editing", []string{"Tony Sinclair"}},
	{"Lead Technician", []string{"Alan Ansell"}},
	{"Editing & Processing", []string{"Greg Alston", "Leonor Juarez"}},
	{"Motion Capture Actors", []string{"Angela Kase", "Emmanuel Levi", "Daley Chaston"}},
	{"Music", []string{"Jeff van Dyck"}},
	{"Sound Effects", []string{"Sam Spanswick", "Karl Learmont", "Jeff van Dyck"}},
	{"Movie Post-Production", []string{"Jeff van Dyck", "Angela Somerville"}},
	{"Audio Director", []string{"Jeff van Dyck"}},
	{"Casting & Voice Production", []string{"Phillip Morris"}},
	{"Voice Actors", []string{"Togo Igawa", "Eiji Kusuhara", "Daniel York", "Simon Greenall", "Kentaro Suyami"}},
	{"Public Relations", []string{"Jason Fitzgerald", "Cathy Campos"}},
}

var medievalTranscript = []transcriptRole{
	{"Project Director", []string{"Mike Simpson"}},
	{"Lead Programmer", []string{"A.P. Taglione"}},
	{"Battle Logic & AI", []string{"R.T. Smith"}},
	{"FE Core, Strategy Map UI & Infrastructure", []string{"Shane O'Brien"}},
	{"Multiplayer, FE, Castle AI", []string{"Gil Jaysmith"}},
	{"Historical Campaigns, FE, Agents, Mercs", []string{"Dan Parkes"}},
	{"Strategy Map AI", []string{"Ting Li"}},
	{"Fleets, Glory Goals and Tutorial", []string{"Matteo Sartori"}},
	{"VnV's & Heroes", []string{"Mike Simpson"}},
	{"Battle Tutorials & Pathfinding", []string{"Dan Triggs"}},
	{"Battle UI", []string{"John McFarlane"}},
	{"Events and Installation", []string{"Melvyn Quek"}},
	{"UI Graphics & Maps", []string{"Joss Adley"}},
	{"Battle Graphics, Textures & Maps", []string{"Howard Rayner"}},
	{"Event & PR Drawings, Textures & Maps", []string{"Nick Smith"}},
	{"Portraits, PR Art & Strategy Map", []string{"Ester Reeve"}},
	{"Glory Art and Buildings", []string{"Irina Rohvarger"}},
	{"Portraits, Textures & Maps", []string{"Greg Alston"}},
	{"Writing", []string{"Mike Brunton", "Graeme Davis"}},
	{"Producer", []string{"Luci Black"}},
	{"Product Evangelist", []string{"Michael de Plater"}},
	{"Executive Producer", []string{"Tim Ansell"}},
	{"QA Manager", []string{"Graham Axford"}},
	{"Testers", []string{"Jeff Woods", "James Buckle", "Chris Morphew", "Ken Rafferty"}},
	{"Intro and PR Art", []string{"Alistair Hope", "Jude Bond"}},
	{"Programming", []string{"Richard Broadhurst", "Dan Laviers"}},
	{"Manual", []string{"Mike Brunton"}},
	{"Webmaster", []string{"Richie Skinner"}},
	{"PR & Marketing", []string{"Ian Roxburgh", "Cathy Campos"}},
	{"Tools", []string{"Richard Broadhurst", "Mark Milton", "Nick Tresadern"}},
	{"Additional Content", []string{"Tim Ansell", "Ross Manton"}},
	{"Assistant Producer & Catering", []string{"Chris Gambold"}},
	{"Consultant on Muslim Culture", []string{"Kaushar Tai"}},
	{"Music & Sound Effects", []string{"Jeff van Dyck"}},
	{"Additional Music", []string{"Richard Vaughan", "Saki Kaskas"}},
	{"Additional Sound Effects", []string{"Richard Vaughan", "Nathan McGuiness", "Karl Learmont", "Sam Spanswick"}},
	{"Trumpet Fanfares", []string{"Dale Richardson"}},
	{"Casting and Voice Production", []string{"Phillip Morris"}},
	{"Voices", []string{"Sean Pertwee", "Sulayman Al-Bassam", "Boris Sosna", "Nadim Sawalha"}},
	{"Audio Scripts", []string{"Mike Brunton"}},
}
