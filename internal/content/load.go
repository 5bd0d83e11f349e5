package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// DefaultCatalogFile is the embedded catalog shipped with the binary.
const DefaultCatalogFile = "data/fractions.yaml"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Load reads a catalog from path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = dataFS.ReadFile(DefaultCatalogFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	cat, err := Parse(data)
	if err != nil {
		if path == "" {
			path = DefaultCatalogFile
		}
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes, schema-checks and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := validateSchema(generic); err != nil {
		return nil, err
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	lessons := make([]Lesson, 0, len(doc.Lessons))
	for _, l := range doc.Lessons {
		lessons = append(lessons, l.toLesson())
	}
	return NewCatalog(doc.ID, doc.Title, lessons)
}

func validateSchema(doc any) error {
	compileOnce.Do(func() {
		var def any
		def, compileErr = roundTrip(catalogSchema)
		if compileErr != nil {
			return
		}
		c := jsonschema.NewCompiler()
		if compileErr = c.AddResource("schema://catalog.json", def); compileErr != nil {
			return
		}
		compiled, compileErr = c.Compile("schema://catalog.json")
	})
	if compileErr != nil {
		return fmt.Errorf("compile catalog schema: %w", compileErr)
	}

	// YAML decodes into Go-native scalars; the validator wants JSON shapes.
	v, err := roundTrip(doc)
	if err != nil {
		return fmt.Errorf("normalize catalog: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	return nil
}

func roundTrip(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnmarshalYAML accepts numbers and strings alike.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: fraction value must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*v = ""
		return nil
	}
	*v = Value(node.Value)
	return nil
}

type catalogDoc struct {
	ID      string      `yaml:"id"`
	Title   string      `yaml:"title"`
	Lessons []lessonDoc `yaml:"lessons"`
}

type lessonDoc struct {
	ID       string        `yaml:"id"`
	Title    string        `yaml:"title"`
	Theory   []blockDoc    `yaml:"theory"`
	Practice []exerciseDoc `yaml:"practice"`
}

type fractionDoc struct {
	Numerator   Value `yaml:"numerator"`
	Denominator Value `yaml:"denominator"`
	Whole       Value `yaml:"whole"`
}

type cardDoc struct {
	Label    string      `yaml:"label"`
	Color    string      `yaml:"color"`
	Fraction fractionDoc `yaml:"fraction"`
}

type blockDoc struct {
	Type      BlockKind    `yaml:"type"`
	Content   string       `yaml:"content"`
	Label     string       `yaml:"label"`
	AudioText string       `yaml:"audio_text"`
	ImageSrc  string       `yaml:"image_src"`
	Fraction  *fractionDoc `yaml:"fraction"`
	Items     []string     `yaml:"items"`
	Cards     []cardDoc    `yaml:"cards"`
}

type exerciseDoc struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Instruction string        `yaml:"instruction"`
	DisplayMode DisplayMode   `yaml:"display_mode"`
	Questions   []questionDoc `yaml:"questions"`
}

type questionDoc struct {
	ID            string       `yaml:"id"`
	Label         string       `yaml:"label"`
	PreText       string       `yaml:"pre_text"`
	PostText      string       `yaml:"post_text"`
	Latex         string       `yaml:"latex"`
	CorrectAnswer Value        `yaml:"correct_answer"`
	Placeholder   string       `yaml:"placeholder"`
	Type          QuestionType `yaml:"type"`
	InputType     InputKind    `yaml:"input_type"`
	Options       []string     `yaml:"options"`
}

func (f fractionDoc) toFraction() Fraction {
	return Fraction{Numerator: f.Numerator, Denominator: f.Denominator, Whole: f.Whole}
}

func (l lessonDoc) toLesson() Lesson {
	out := Lesson{ID: l.ID, Title: l.Title}
	for _, b := range l.Theory {
		out.Theory = append(out.Theory, b.toBlock())
	}
	for _, e := range l.Practice {
		out.Practice = append(out.Practice, e.toExercise())
	}
	return out
}

func (b blockDoc) toBlock() Block {
	switch b.Type {
	case KindLatexBlock:
		return LatexBlock{Content: b.Content}
	case KindTip:
		return Tip{Content: b.Content}
	case KindCharacterSpeech:
		return CharacterSpeech{Speaker: b.Label, Content: b.Content, AudioText: b.AudioText}
	case KindFractionBlock:
		fb := FractionBlock{Content: b.Content}
		if b.Fraction != nil {
			f := b.Fraction.toFraction()
			fb.Fraction = &f
		}
		return fb
	case KindFractionCards:
		fc := FractionCards{Label: b.Label, Content: b.Content, Items: b.Items}
		for _, c := range b.Cards {
			fc.Cards = append(fc.Cards, Card{Label: c.Label, Color: c.Color, Fraction: c.Fraction.toFraction()})
		}
		return fc
	case KindExample:
		return Example{Label: b.Label, Content: b.Content, Items: b.Items}
	case KindImage:
		alt := b.Content
		if alt == "" {
			alt = b.Label
		}
		return Image{Src: b.ImageSrc, Alt: alt}
	default:
		return Text{Content: b.Content}
	}
}

func (e exerciseDoc) toExercise() Exercise {
	out := Exercise{
		ID:          e.ID,
		Title:       e.Title,
		Instruction: e.Instruction,
		DisplayMode: e.DisplayMode,
	}
	if out.DisplayMode == "" {
		out.DisplayMode = DisplayList
	}
	for _, q := range e.Questions {
		out.Questions = append(out.Questions, q.toQuestion())
	}
	return out
}

func (q questionDoc) toQuestion() Question {
	out := Question{
		ID:            q.ID,
		Label:         q.Label,
		PreText:       q.PreText,
		PostText:      q.PostText,
		Latex:         q.Latex,
		CorrectAnswer: string(q.CorrectAnswer),
		Placeholder:   q.Placeholder,
		Type:          q.Type,
		InputKind:     q.InputType,
		Options:       q.Options,
	}
	if out.Type == "" {
		out.Type = TypeInput
	}
	if out.Type == TypeInput && out.InputKind == "" {
		out.InputKind = InputText
	}
	return out
}
