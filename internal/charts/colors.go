package charts

// classColors is the official World of Warcraft class color table.
var classColors = map[string]string{
	"Death Knight": "#C41F3B",
	"Demon Hunter": "#A330C9",
	"Druid":        "#FF7D0A",
	"Evoker":       "#33937F",
	"Hunter":       "#ABD473",
	"Mage":         "#69CCF0",
	"Monk":         "#00FF96",
	"Paladin":      "#F58CBA",
	"Priest":       "#FFFFFF",
	"Rogue":        "#FFF569",
	"Shaman":       "#0070DE",
	"Warlock":      "#9482C9",
	"Warrior":      "#C79C6E",
}

// fallbackColor is used for class names outside the known roster.
const fallbackColor = "#1E1E1E"

// ClassColor returns the display color for a class name.
func ClassColor(class string) string {
	if color, ok := classColors[class]; ok {
		return color
	}
	return fallbackColor
}

// ClassNames returns the known class names in alphabetical order.
func ClassNames() []string {
	names := []string{
		"Death Knight",
		"Demon Hunter",
		"Druid",
		"Evoker",
		"Hunter",
		"Mage",
		"Monk",
		"Paladin",
		"Priest",
		"Rogue",
		"Shaman",
		"Warlock",
		"Warrior",
	}
	return names
}
