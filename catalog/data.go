package catalog

// Static provider game lists. These are load-time constants concatenated into
// per-variant catalogs; nothing here is fetched at runtime.

const gameHost = "https://kudetabet98mejackpot.net"
const imageHost = "https://d33egg70nrp50s.cloudfront.net/Images/providers-v2"

func game(name, code, category, shortcut string, provider int, tags ...Category) Game {
	return Game{
		Name:       name,
		GameCode:   code,
		Category:   category,
		Categories: tags,
		Provider:   provider,
		Link:       gameHost + "/" + shortcut + "/" + code,
		GameImage:  imageHost + "/" + shortcut + "/" + code + ".png",
	}
}

// Provider ids as issued by the aggregator. Keep in sync with providerNames.
const (
	providerPragmatic   = 1
	providerFachai      = 3
	providerHabanero    = 7
	providerJili        = 9
	providerJoker       = 10
	providerMicrogaming = 12
	providerNoLimitCity = 14
	providerPgSoft      = 15
	providerSlotMania   = 18
	providerSmartsoft   = 19
	providerSpadeGaming = 20
	providerCQ9         = 27
	providerSpinix      = 31
	providerIonSlot     = 33
	providerFunkyGames  = 43
	providerSpribe      = 46
	providerTangkas     = 51
)

var PragmaticGames = []Game{
	game("Gates of Olympus", "vs20olympgate", "Slot", "PP", providerPragmatic,
		Category{Name: "Top 20", SeqNo: 1}, Category{Name: "Bonus Buy", SeqNo: 4}),
	game("Sweet Bonanza", "vs20fruitsw", "Slot", "PP", providerPragmatic,
		Category{Name: "Top 20", SeqNo: 2}, Category{Name: "Video Slots", SeqNo: 9}),
	game("Gatot Kaca", "vs20gatotx", "Slot", "PP", providerPragmatic,
		Category{Name: "New", SeqNo: 3}),
	game("Starlight Princess", "vs20starlight", "Slot", "PP", providerPragmatic,
		Category{Name: "Top 20", SeqNo: 3}, Category{Name: "Bonus Buy", SeqNo: 5}),
	game("Big Bass Bonanza", "vs10bbbonanza", "Slot", "PP", providerPragmatic,
		Category{Name: "Reel kingdom", SeqNo: 1}),
	game("Wild West Gold", "vs40wildwest", "Slot", "PP", providerPragmatic),
}

var PgSoftGames = []Game{
	game("Mahjong Ways", "mahjong-ways", "Slot", "PGSOFT", providerPgSoft,
		Category{Name: "Top 20", SeqNo: 4}),
	game("Mahjong Ways 2", "mahjong-ways2", "Slot", "PGSOFT", providerPgSoft,
		Category{Name: "Top 20", SeqNo: 5}),
	game("Lucky Neko", "lucky-neko", "Slot", "PGSOFT", providerPgSoft,
		Category{Name: "New", SeqNo: 2}),
	game("Wild Bandito", "wild-bandito", "Slot", "PGSOFT", providerPgSoft),
	game("Treasures of Aztec", "treasures-aztec", "Slot", "PGSOFT", providerPgSoft,
		Category{Name: "Video Slots", SeqNo: 2}),
}

var JiliGames = []Game{
	game("Super Ace", "SuperAce", "Slot", "JILI", providerJili,
		Category{Name: "Top 20", SeqNo: 6}, Category{Name: "Bonus Buy", SeqNo: 1}),
	game("Fortune Gems", "FortuneGems", "Slot", "JILI", providerJili,
		Category{Name: "New", SeqNo: 1}),
	game("Golden Bank", "GoldenBank", "Slot", "JILI", providerJili,
		Category{Name: "Classic", SeqNo: 1}),
	game("Money Coming", "MoneyComing", "Slot", "JILI", providerJili,
		Category{Name: "Classic", SeqNo: 2}),
}

var HabaneroGames = []Game{
	game("Koi Gate", "SGKoiGate", "Slot", "HABANERO", providerHabanero,
		Category{Name: "Classic", SeqNo: 3}),
	game("Fa Cai Shen", "SGFaCaiShen", "Slot", "HABANERO", providerHabanero),
	game("5 Lucky Lions", "SG5LuckyLions", "Slot", "HABANERO", providerHabanero),
}

var JokerGames = []Game{
	game("Roma", "RomaJK", "Slot", "JOKER", providerJoker),
	game("Caishen Riches", "CaishenRiches", "Slot", "JOKER", providerJoker,
		Category{Name: "Jackpot Play Games", SeqNo: 1}),
}

var MicrogamingGames = []Game{
	game("Lucky Twins Nexus", "SMG_luckyTwinsNexus", "Slot", "MICROGAMING", providerMicrogaming),
	game("9 Masks of Fire", "SMG_9masksOfFire", "Slot", "MICROGAMING", providerMicrogaming,
		Category{Name: "Jackpot Play Games", SeqNo: 2}),
	game("Immortal Romance", "SMG_immortalRomance", "Slot", "MICROGAMING", providerMicrogaming,
		Category{Name: "Video Slots", SeqNo: 3}),
}

var NoLimitCityGames = []Game{
	game("Fire in the Hole 2", "FireInTheHole2", "Slot", "NOLIMITCITY", providerNoLimitCity,
		Category{Name: "Bonus Buy", SeqNo: 2}),
	game("Mental", "MentalNLC", "Slot", "NOLIMITCITY", providerNoLimitCity,
		Category{Name: "Bonus Buy", SeqNo: 3}),
}

var SpadeGamingGames = []Game{
	game("Sexy Vegas", "S-SV01", "Slot", "SPADEGAMING", providerSpadeGaming),
	game("Brothers Kingdom", "S-BK01", "Slot", "SPADEGAMING", providerSpadeGaming),
}

var SlotManiaGames = []Game{
	game("Mania Fruits", "SM-MF01", "Slot", "SLOTMANIA", providerSlotMania,
		Category{Name: "Classic", SeqNo: 4}),
	game("Mania Gems", "SM-MG02", "Slot", "SLOTMANIA", providerSlotMania),
}

var IonSlotGames = []Game{
	game("Dewa Naga", "ION-DN01", "Slot", "PGS", providerIonSlot),
	game("Panda Emas", "ION-PE02", "Slot", "PGS", providerIonSlot),
}

var FunkyGames = []Game{
	game("Fish Haiba", "FG-FH01", "Arcade", "SBOFUNKYGAME", providerFunkyGames),
	game("Funky Bingo", "FG-FB02", "Arcade", "SBOFUNKYGAME", providerFunkyGames),
}

var AviatorGames = []Game{
	game("Aviator", "SPB-aviator", "Crash", "SPRIBE", providerSpribe,
		Category{Name: "Top 20", SeqNo: 7}),
	game("Dice", "SPB-dice", "Crash", "SPRIBE", providerSpribe),
}

var CrashSmartsoftGames = []Game{
	game("JetX", "JetX", "Crash", "SMARTSOFT", providerSmartsoft,
		Category{Name: "Top 20", SeqNo: 8}),
	game("Cappadocia", "CappadociaSS", "Crash", "SMARTSOFT", providerSmartsoft),
}

var CrashSpinixGames = []Game{
	game("Galaxy Crash", "SPX-GC01", "Crash", "SPINIX", providerSpinix),
}

var ArcadeJiliGames = []Game{
	game("Jackpot Fishing", "JackpotFishing", "Arcade", "JILI", providerJili,
		Category{Name: "Fishing", SeqNo: 1}),
	game("Mega Fishing", "MegaFishing", "Arcade", "JILI", providerJili,
		Category{Name: "Fishing", SeqNo: 2}),
}

var ArcadeFachaiGames = []Game{
	game("Fortune King Fishing", "FC-FKF01", "Arcade", "FACHAI", providerFachai,
		Category{Name: "Fishing", SeqNo: 3}),
}

var ArcadeCQ9Games = []Game{
	game("Paradise Fishing", "AT01", "Arcade", "SBOCQ9", providerCQ9,
		Category{Name: "Fishing", SeqNo: 4}),
	game("One Shot Fishing", "AT02", "Arcade", "SBOCQ9", providerCQ9),
}

// ArcadeTangkasGames use launcher directives: the game origin serves these
// bundles itself, so the link is an openNewTab call with a relative path.
var ArcadeTangkasGames = []Game{
	{
		Name:      "MM Tangkas",
		GameCode:  "G8-MMT01",
		Category:  "Arcade",
		Provider:  providerTangkas,
		Link:      "javascript:openNewTab('/tangkas/G8-MMT01', 'MM Tangkas')",
		GameImage: imageHost + "/G8TANGKAS/G8-MMT01.png",
	},
	{
		Name:      "Bola Tangkas Klasik",
		GameCode:  "G8-BTK02",
		Category:  "Arcade",
		Provider:  providerTangkas,
		Link:      "javascript:openNewTab('/tangkas/G8-BTK02')",
		GameImage: imageHost + "/G8TANGKAS/G8-BTK02.png",
	},
}

// SlotGames is the slot-lobby catalog source.
func SlotGames() []Game {
	return concat(
		PragmaticGames,
		PgSoftGames,
		JiliGames,
		HabaneroGames,
		JokerGames,
		MicrogamingGames,
		NoLimitCityGames,
		SpadeGamingGames,
		SlotManiaGames,
		IonSlotGames,
	)
}

// ArcadeGames is the arcade-lobby catalog source.
func ArcadeGames() []Game {
	return concat(
		ArcadeJiliGames,
		ArcadeFachaiGames,
		ArcadeCQ9Games,
		ArcadeTangkasGames,
		FunkyGames,
	)
}

// AllGames is the full portal catalog: slots, arcade and crash titles.
func AllGames() []Game {
	return concat(
		SlotGames(),
		ArcadeGames(),
		AviatorGames,
		CrashSmartsoftGames,
		CrashSpinixGames,
	)
}

func concat(lists ...[]Game) []Game {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	out := make([]Game, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Partners is the provider tile strip rendered on the lobby. Slugs feed the
// provider filter; filter resolution maps some of them onto different link
// shortcut codes.
var Partners = []Partner{
	{Name: "Pragmatic Play", Slug: "pragmatic", Category: "Slots", Logo: "/images/partners/pragmatic.png", LogoColored: "/images/partners/pragmatic-colored.png"},
	{Name: "PG Soft", Slug: "pgsoft", Category: "Slots", Logo: "/images/partners/pgsoft.png", LogoColored: "/images/partners/pgsoft-colored.png"},
	{Name: "JILI", Slug: "jili", Category: "Slots", Logo: "/images/partners/jili.png", LogoColored: "/images/partners/jili-colored.png"},
	{Name: "Habanero", Slug: "habanero", Category: "Slots", Logo: "/images/partners/habanero.png", LogoColored: "/images/partners/habanero-colored.png"},
	{Name: "Joker", Slug: "joker", Category: "Slots", Logo: "/images/partners/joker.png", LogoColored: "/images/partners/joker-colored.png"},
	{Name: "Microgaming", Slug: "microgaming", Category: "Slots", Logo: "/images/partners/microgaming.png", LogoColored: "/images/partners/microgaming-colored.png"},
	{Name: "No Limit City", Slug: "nolimitcity", Category: "Slots", Logo: "/images/partners/nolimitcity.png", LogoColored: "/images/partners/nolimitcity-colored.png"},
	{Name: "Spade Gaming", Slug: "spadegaming", Category: "Slots", Logo: "/images/partners/spadegaming.png", LogoColored: "/images/partners/spadegaming-colored.png"},
	{Name: "Slot Mania", Slug: "vplus", Category: "Slots", Logo: "/images/partners/vplus.png", LogoColored: "/images/partners/vplus-colored.png"},
	{Name: "ION Slot", Slug: "ion-slot", Category: "Slots", Logo: "/images/partners/ion-slot.png", LogoColored: "/images/partners/ion-slot-colored.png"},
	{Name: "Funky Games", Slug: "funky-games", Category: "Arcade", Logo: "/images/partners/funky-games.png", LogoColored: "/images/partners/funky-games-colored.png"},
	{Name: "Fachai", Slug: "fachai", Category: "Arcade", Logo: "/images/partners/fachai.png", LogoColored: "/images/partners/fachai-colored.png"},
	{Name: "CQ9", Slug: "sbocq9", Category: "Arcade", Logo: "/images/partners/cq9.png", LogoColored: "/images/partners/cq9-colored.png"},
	{Name: "Aviator", Slug: "spribe", Category: "Crash", Logo: "/images/partners/spribe.png", LogoColored: "/images/partners/spribe-colored.png"},
	{Name: "Smartsoft", Slug: "smartsoft", Category: "Crash", Logo: "/images/partners/smartsoft.png", LogoColored: "/images/partners/smartsoft-colored.png"},
	{Name: "Spinix", Slug: "spinix", Category: "Crash", Logo: "/images/partners/spinix.png", LogoColored: "/images/partners/spinix-colored.png"},
}

// PartnerBySlug finds a partner tile by its slug, or nil.
func PartnerBySlug(slug string) *Partner {
	for i := range Partners {
		if Partners[i].Slug == slug {
			return &Partners[i]
		}
	}
	return nil
}

// providerNames maps a link shortcut code to the provider display name.
var providerNames = map[string]string{
	"PP":           "Pragmatic Play",
	"PGSOFT":       "PG Soft",
	"JILI":         "JILI",
	"HABANERO":     "Habanero",
	"JOKER":        "Joker",
	"MICROGAMING":  "Microgaming",
	"NOLIMITCITY":  "No Limit City",
	"SPADEGAMING":  "Spade Gaming",
	"SLOTMANIA":    "Slot Mania",
	"SMARTSOFT":    "Smartsoft",
	"PGS":          "ION Slot",
	"SBOFUNKYGAME": "Funky Games",
	"FACHAI":       "Fachai",
	"SPINIX":       "Spinix",
	"SBOCQ9":       "CQ9",
	"SPRIBE":       "Aviator",
	"G8TANGKAS":    "MM Tangkas",
}
