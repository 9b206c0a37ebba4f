package model

// PlantStage is the growth stage derived from cumulative points.
type PlantStage string

const (
	StageSeedling PlantStage = "seedling"
	StageSprout   PlantStage = "sprout"
	StageYoung    PlantStage = "young"
	StageMature   PlantStage = "mature"
	StageBlooming PlantStage = "blooming"
)

// StageFor maps cumulative points to a growth stage. The boundaries are a
// contract consumers rely on: >=1 sprout, >=5 young, >=15 mature, >=30 blooming.
func StageFor(points int) PlantStage {
	switch {
	case points >= 30:
		return StageBlooming
	case points >= 15:
		return StageMature
	case points >= 5:
		return StageYoung
	case points >= 1:
		return StageSprout
	default:
		return StageSeedling
	}
}

// Plant describes an adoptable plant. Artwork lives in graphical clients;
// only identity and copy travel with the catalog.
type Plant struct {
	ID          string
	Name        string
	Description string
}

// Plants is the adoptable catalog. The first entry is the starter plant
// every profile owns.
var Plants = []Plant{
	{ID: "monstera", Name: "Monstera", Description: "Split leaves with an artistic flair, a calm pick for any desk."},
	{ID: "lavender", Name: "Lavender", Description: "A soft purple fragrance straight out of Provence."},
	{ID: "rose", Name: "Red Rose", Description: "Bold and noble, every petal a little spark."},
	{ID: "sakura", Name: "Early Sakura", Description: "Blossoms like morning clouds, one fleeting moment at a time."},
	{ID: "tulip", Name: "Tulip", Description: "Understated elegance that blooms in silence."},
	{ID: "palm", Name: "Tropical Palm", Description: "A summer breeze and swaying shade for your desktop."},
	{ID: "maple", Name: "Autumn Maple", Description: "Crimson layers that mark the turning of the season."},
	{ID: "willow", Name: "Weeping Willow", Description: "Gentle trailing branches, silk-smooth and soothing."},
	{ID: "cactus", Name: "Round Cactus", Description: "Tough and plump, strength in the simplest shape."},
	{ID: "sunflower", Name: "Sunflower", Description: "Always facing the light, endless warmth for your desk."},
	{ID: "bonsai", Name: "Old Pine Bonsai", Description: "A silhouette of patient years, a quiet zen moment."},
}

// DefaultPlantID is the starter plant granted to every new profile.
const DefaultPlantID = "monstera"

// PlantByID looks a plant up in the catalog.
func PlantByID(id string) (Plant, bool) {
	for _, p := range Plants {
		if p.ID == id {
			return p, true
		}
	}
	return Plant{}, false
}

// DefaultNoteColors is the built-in sticky note palette, used when the
// profile has no custom palette.
var DefaultNoteColors = []string{
	"#F4E1E8",
	"#4F90F5",
	"#9FBEED",
	"#F3F6F2",
	"#6159A7",
	"#BBADEA",
	"#412C3C",
	"#98C3C9",
	"#433931",
	"#2D431A",
}
