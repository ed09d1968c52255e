package model

func defaultGames() []GameConfig {
	v1 := func(developer, role, section, stopAt string) SourceConfig {
		return SourceConfig{Format: FormatXMLv1, DeveloperFont: developer, RoleFont: role, SectionFont: section, StopAt: stopAt}
	}
	v2 := func(stopAt string) SourceConfig {
		return SourceConfig{Format: FormatXMLv2, StopAt: stopAt}
	}

	shogun2 := v1("18", "22", "22", "English & Japanese Voice Production")
	shogun2.Splits = []SplitConfig{{Font: "38", Marker: "- Fall of the Samurai -", Game: "2012_fall_of_the_samurai"}}

	return []GameConfig{
		{Game{"2000_shogun", 2000, "Shogun (2000)", false, "rgba(205, 127, 50, 0.8)", 0.05, 0.1}, SourceConfig{Format: FormatTranscript}},
		{Game{"2002_medieval", 2002, "Medieval (2002)", false, "rgba(0, 0, 139, 0.8)", 0.10, 0.5}, SourceConfig{Format: FormatTranscript}},
		{Game{"2004_rome", 2004, "Rome (2004)", false, "rgba(255, 0, 0, 0.8)", 0.15, 0.9}, SourceConfig{Format: FormatTxt}},
		{Game{"2006_medieval_2", 2006, "Medieval 2 (2006)", false, "rgba(111, 115, 123, 0.8)", 0.20, 0.5}, SourceConfig{Format: FormatTxt}},
		{Game{"2009_empire", 2009, "Empire (2009)", false, "rgba(242, 133, 0, 0.8)", 0.25, 0.1}, v1("18", "22", "22", "SEGA Technical Group")},
		{Game{"2010_napoleon", 2010, "Napoleon (2010)", false, "rgba(65, 105, 225, 0.8)", 0.30, 0.5}, v1("18", "22", "22", "English Language Voice Cast:")},
		{Game{"2011_shogun_2", 2011, "Shogun 2 (2011)", false, "rgba(255, 215, 0, 0.8)", 0.35, 0.9}, shogun2},
		{Game{"2012_fall_of_the_samurai", 2012, "Fall of the Samurai (2012)", true, "rgba(255, 183, 197, 0.8)", 0.40, 0.5}, SourceConfig{Format: FormatDerived}},
		{Game{"2013_rome_2", 2013, "Rome 2 (2013)", false, "rgba(139, 0, 0, 0.8)", 0.45, 0.1}, v1("18", "22", "22", "SEGA Europe")},
		{Game{"2015_attila", 2015, "Attila (2015)", false, "rgba(53, 94, 59, 0.8)", 0.50, 0.5}, v1("12", "18", "18", "English Actors")},
		{Game{"2016_warhammer", 2016, "Warhammer 1 (2016)", false, "rgba(143, 0, 255, 0.8)", 0.55, 0.9}, v2("Audio (External)")},
		{Game{"2017_warhammer_2", 2017, "Warhammer 2 (2017)", false, "rgba(147, 112, 219, 0.8)", 0.60, 0.5}, v2("Audio (External)")},
		{Game{"2018_thrones_of_britannia", 2018, "Thrones of Britannia (2018)", true, "rgba(175, 111, 9, 0.8)", 0.65, 0.1}, v1("12", "16", "18", "SEGA")},
		{Game{"2019_three_kingdoms", 2019, "Three Kingdoms (2019)", false, "rgba(0, 168, 107, 0.8)", 0.70, 0.5}, v2("Audio (External) - Sound, Dialogue and Music")},
		{Game{"2020_troy", 2020, "Troy (2020)", true, "rgba(70, 130, 180, 0.8)", 0.75, 0.9}, v2("Sound Department (External)")},
		{Game{"2022_warhammer_3", 2022, "Warhammer 3 (2022)", false, "rgba(106, 13, 173, 0.8)", 0.80, 0.5}, v2("AUDIO (External)")},
		{Game{"2023_pharaoh", 2023, "Pharaoh (2023)", false, "rgba(210, 170, 109, 0.8)", 0.85, 0.1}, v2("Voice Over Artists (External)")},
	}
}

// NoneGameDescriptor is the flow node shown after a developer's last contribution
var NoneGameDescriptor = Game{Slug: NoneGame, Label: "None / TBD", Color: "rgba(0, 0, 0, 0.8)", X: 0.95, Y: 0.5}

// Sections whose roles are kept even though the header is not itself a role
var defaultIncludeSections = []string{
	"Ajax & Diomedes",
	"Brand, PR and Community",
	"CA QA",
	"CA SOFIA",
	"Creative Assembly",
	"Creative Assembly Sofia",
	"Dialogue Department",
	"GAME MANAGEMENT",
	"MUSICIANS",
	"MUSIC PRODUCTION:",
	"Mythos",
	"NEW CONTENT TEAM",
	"Rhesus and Memnon",
	"THE CREATIVE ASSEMBLY",
	"THE CREATIVE ASSEMBLY, BRISBANE AUSTRALIA",
	"THE CREATIVE ASSEMBLY, SOUTHWATER UK",
}

// Sections covering publisher support, localisation or outsourced work
var defaultExcludeSections = []string{
	"Audio Contractors",
	"Audio (External)",
	"AUDIO (External)",
	"Audio (External) - Cast",
	"Audio (External) - Musicians",
	"Audio (External) - Sound, Dialogue and Music",
	"Audio (Internal) - Group Voices",
	"Berlin Studio",
	"Bucharest Studio",
	"Cairo Studio",
	"English & Japanese Voice Production",
	"English &amp; Japanese Voice Production",
	"French Voice Production",
	"German Voice Production",
	"Istanbul Studio",
	"Italian Voice Production",
	"Keywords Studios FQA Testers",
	"Keywords Studios Localisation QA",
	"Localisation",
	"One Voice Productions",
	"OUTSOURCED ROLES",
	"PORTING TEAM",
	"Prague Studio",
	"Sega America",
	"Sega America Creative Services Team",
	"Sega America Mastering Lab",
	"Sega America Media Lab",
	"Sega America Web Team",
	"SEGA EUROPE",
	"SEGA Europe Limited Staff Credits",
	"SEGA Games Co. Ltd.",
	"Sega Localisation",
	"SEGA of America, Inc.",
	"Sega of China",
	"SEGA OF JAPAN (Japanese Version)",
	"SEGA Publishing Group",
	"SEGA QA",
	"SEGA Sofia QA",
	"SEGA Technical Group",
	"Sofia Studio",
	"Sound Department (External)",
	"Spanish Voice Production",
	"Vilnius Studio",
	"Voice Studio",
	"Warsaw Studio",
	"WITH THE SUPPORT OF",
	"Zagreb Studio",
}

// Credited names that are companies, ensembles or team labels rather than people
var defaultExcludedEntities = []string{
	"Animation",
	"Boffin Language Group",
	"Budapest Scoring Symphonic Orchestra",
	"Character Art",
	"Dynamedion",
	"Effective Media",
	"Environment",
	"ExeQuo",
	"FILMharmonic Orchestra and Choir, Prague",
	"Four For Music",
	"Great Britain Kendo Squad",
	"Kubler Auckland Management",
	"LUCNICA",
	"LUCNICA - SLOVAK NATIONAL CHAMBER CHOIR",
	"MotionCraft.de",
	"Musa",
	"Noiseworks",
	"Pinewood Studios",
	"Platige Image",
	"SLOVAK NATIONAL CHAMBER CHOIR",
	"Slovak National Symphony Orchestra",
	"Softclub",
	"Space Crate Ltd",
	"Studio 301",
	"THE SLOVAK NATIONAL SYMPHONY ORCHESTRA",
	"UI Art",
	"Virtuos",
	"Wabi Sabi",
}
