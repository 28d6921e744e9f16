package catalog

import "net/url"

const (
	defaultRepo    = "LhallTDI/RediscoverICU"
	defaultRawBase = "https://raw.githubusercontent.com/" + defaultRepo + "/refs/heads/main/"
	baselineDir    = "Baseline Scripts"
	liveDir        = "Test Scripts"
)

var defaultScripts = []struct {
	name string
	file string
}{
	{"Cohort Script", "SEPSIS_Cohort.sql"},
	{"Ingredient Script", "SEPSIS_INGREDIENT_Profile.sql"},
	{"Unmapped Drugs Script", "SEPSIS_UNMAPPED_DRUG.sql"},
	{"Mapped Drug Script", "SEPSIS_MAPPED_DRUG.sql"},
	{"Measurements Script", "SEPSIS_MEASUREMENT.sql"},
	{"Device Script", "SEPSIS_DEVICE.sql"},
	{"Condition Script", "SEPSIS_CONDITION.sql"},
}

// Default returns the sepsis script catalog: baseline scripts against their
// test-script counterparts
func Default() *Catalog {
	scripts := make([]Script, 0, len(defaultScripts))
	for _, s := range defaultScripts {
		livePath := liveDir + "/T_" + s.file
		scripts = append(scripts, Script{
			Name:     s.name,
			Baseline: rawURL(baselineDir + "/B_" + s.file),
			Live:     rawURL(livePath),
			Watch:    defaultRepo + ":" + livePath,
		})
	}

	c, err := New(scripts)
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}

func rawURL(path string) string {
	return defaultRawBase + (&url.URL{Path: path}).EscapedPath()
}
