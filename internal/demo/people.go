package demo

import (
	"encoding/json"
	"fmt"

	"github.com/vango-dev/weave/pkg/component"
)

// PeopleURL is the default source for StarWarsCharacters.
const PeopleURL = "https://swapi.dev/api/people/"

var peopleHeaders = []string{"Name", "Height", "Mass", "Hair Color", "Skin Color", "Eye Color", "Birth Year", "Gender"}

// StarWarsCharacters fetches characters on setup and shows them in a
// PagedTable. The "url" prop overrides PeopleURL.
var StarWarsCharacters = register(component.Define("StarWarsCharacters", func(in *component.Instance) component.Component {
	return &people{in: in}
}))

type people struct {
	in *component.Instance
}

type character struct {
	Name      string `json:"name"`
	Height    string `json:"height"`
	Mass      string `json:"mass"`
	HairColor string `json:"hair_color"`
	SkinColor string `json:"skin_color"`
	EyeColor  string `json:"eye_color"`
	BirthYear string `json:"birth_year"`
	Gender    string `json:"gender"`
}

func (c character) row() []string {
	return []string{c.Name, c.Height, c.Mass, c.HairColor, c.SkinColor, c.EyeColor, c.BirthYear, c.Gender}
}

func (p *people) Props() []string { return []string{"url"} }

func (p *people) State() []component.Field {
	return []component.Field{
		{Name: "headers", Initial: peopleHeaders},
		{Name: "rows", Initial: [][]string{{"Loading"}}},
	}
}

func (p *people) Setup() error {
	url := component.Get[string](p.in, "url")
	if url == "" {
		url = PeopleURL
	}
	p.in.Fetch(url, p.loaded)
	return nil
}

func (p *people) loaded(body string, err error) error {
	if err == nil {
		var page struct {
			Results []character `json:"results"`
		}
		if err = json.Unmarshal([]byte(body), &page); err == nil {
			rows := make([][]string, len(page.Results))
			for i, c := range page.Results {
				rows[i] = c.row()
			}
			return p.in.Set("rows", rows)
		}
		err = fmt.Errorf("decode characters: %w", err)
	}
	p.in.Logger().Warn("characters unavailable", "error", err)
	return p.in.Set("rows", [][]string{{"Unavailable", err.Error()}})
}

func (p *people) Render(b *component.Builder) error {
	b.Component(PagedTable, component.Params{
		"headers":  component.Get[[]string](p.in, "headers"),
		"rows":     component.Get[[][]string](p.in, "rows"),
		"pageSize": 10,
	})
	return nil
}
