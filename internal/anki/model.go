package anki

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field is one named field of a note model.
type Field struct {
	Name string
}

// Template is one card template of a note model.
type Template struct {
	Name           string
	QuestionFormat string
	AnswerFormat   string
}

// Model describes a note type: its fields and card templates.
type Model struct {
	ID        int64
	Name      string
	Fields    []Field
	Templates []Template
	CSS       string
}

// defaultCSS matches Anki's stock card styling.
const defaultCSS = `.card {
 font-family: arial;
 font-size: 20px;
 text-align: center;
 color: black;
 background-color: white;
}
`

// SimpleModel returns the two-field question/answer model used for
// exported flashcards.
func SimpleModel() *Model {
	return &Model{
		ID:     1607392319,
		Name:   "Simple Model",
		Fields: []Field{{Name: "Question"}, {Name: "Answer"}},
		Templates: []Template{{
			Name:           "Card 1",
			QuestionFormat: "{{Question}}",
			AnswerFormat:   `{{FrontSide}}<hr id="answer">{{Answer}}`,
		}},
		CSS: defaultCSS,
	}
}

// JSON shapes for the collection's models column. Anki stores the full
// model definition as JSON keyed by model id.
type modelJSON struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Type      int            `json:"type"`
	Mod       int64          `json:"mod"`
	USN       int            `json:"usn"`
	SortField int            `json:"sortf"`
	DeckID    int64          `json:"did"`
	Templates []templateJSON `json:"tmpls"`
	Fields    []fieldJSON    `json:"flds"`
	CSS       string         `json:"css"`
	LatexPre  string         `json:"latexPre"`
	LatexPost string         `json:"latexPost"`
	Required  [][3]any       `json:"req"`
}

type templateJSON struct {
	Name           string  `json:"name"`
	Ord            int     `json:"ord"`
	QuestionFormat string  `json:"qfmt"`
	AnswerFormat   string  `json:"afmt"`
	BrowserQFmt    string `json:"bqfmt"`
	BrowserAFmt    string `json:"bafmt"`
	DeckID         *int64 `json:"did"`
}

type fieldJSON struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

const (
	latexPre = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n" +
		"\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n" +
		"\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"
	latexPost = "\\end{document}"
)

// modelsJSON renders the models column: a JSON object keyed by model id.
func modelsJSON(m *Model, deckID int64, mod int64) (string, error) {
	fields := make([]fieldJSON, len(m.Fields))
	for i, f := range m.Fields {
		fields[i] = fieldJSON{
			Name:  f.Name,
			Ord:   i,
			Font:  "Arial",
			Size:  20,
			Media: []string{},
		}
	}

	templates := make([]templateJSON, len(m.Templates))
	required := make([][3]any, len(m.Templates))
	for i, t := range m.Templates {
		templates[i] = templateJSON{
			Name:           t.Name,
			Ord:            i,
			QuestionFormat: t.QuestionFormat,
			AnswerFormat:   t.AnswerFormat,
		}
		// Each template requires its first field to render a non-empty
		// question side.
		required[i] = [3]any{i, "all", []int{0}}
	}

	out := map[string]modelJSON{
		strconv.FormatInt(m.ID, 10): {
			ID:        m.ID,
			Name:      m.Name,
			Mod:       mod,
			DeckID:    deckID,
			Templates: templates,
			Fields:    fields,
			CSS:       m.CSS,
			LatexPre:  latexPre,
			LatexPost: latexPost,
			Required:  required,
		},
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encoding models: %w", err)
	}
	return string(data), nil
}

// deckJSON is one entry of the collection's decks column.
type deckJSON struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"desc"`
	Dyn              int      `json:"dyn"`
	Collapsed        bool     `json:"collapsed"`
	BrowserCollapsed bool     `json:"browserCollapsed"`
	USN              int      `json:"usn"`
	NewToday         [2]int   `json:"newToday"`
	RevToday         [2]int   `json:"revToday"`
	LrnToday         [2]int   `json:"lrnToday"`
	TimeToday        [2]int   `json:"timeToday"`
	ExtendNew        int      `json:"extendNew"`
	ExtendRev        int      `json:"extendRev"`
	Conf             int      `json:"conf"`
	Mod              int64    `json:"mod"`
}

// decksJSON renders the decks column: the default deck plus the exported
// deck, keyed by deck id.
func decksJSON(d *Deck, mod int64) (string, error) {
	out := map[string]deckJSON{
		"1": {
			ID:   1,
			Name: "Default",
			Conf: 1,
			Mod:  mod,
		},
		strconv.FormatInt(d.ID, 10): {
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Conf:        1,
			Mod:         mod,
		},
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encoding decks: %w", err)
	}
	return string(data), nil
}

// Static configuration columns. Anki requires both to exist with sane
// defaults; nothing in this exporter customizes them.
const (
	confJSON = `{"activeDecks":[1],"addToCur":true,"collapseTime":1200,` +
		`"curDeck":1,"curModel":null,"dueCounts":true,"estTimes":true,` +
		`"newSpread":0,"nextPos":1,"sortBackwards":false,"sortType":"noteFld",` +
		`"timeLim":0}`

	dconfJSON = `{"1":{"id":1,"name":"Default","autoplay":true,"dyn":0,` +
		`"lapse":{"delays":[10],"leechAction":0,"leechFails":8,"minInt":1,"mult":0},` +
		`"maxTaken":60,"mod":0,` +
		`"new":{"bury":true,"delays":[1,10],"initialFactor":2500,"ints":[1,4,7],` +
		`"order":1,"perDay":20,"separate":true},` +
		`"replayq":true,` +
		`"rev":{"bury":true,"ease4":1.3,"fuzz":0.05,"ivlFct":1,"maxIvl":36500,` +
		`"minSpace":1,"perDay":100},` +
		`"timer":0,"usn":0}}`
)
