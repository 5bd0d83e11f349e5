package content

// BlockKind identifies a theory block variant.
type BlockKind string

const (
	KindText            BlockKind = "TEXT"
	KindLatexBlock      BlockKind = "LATEX_BLOCK"
	KindTip             BlockKind = "TIP"
	KindCharacterSpeech BlockKind = "CHARACTER_SPEECH"
	KindFractionBlock   BlockKind = "FRACTION_BLOCK"
	KindFractionCards   BlockKind = "FRACTION_CARDS"
	KindExample         BlockKind = "EXAMPLE"
	KindImage           BlockKind = "IMAGE"
)

// AllBlockKinds returns every block kind in declaration order.
func AllBlockKinds() []BlockKind {
	return []BlockKind{
		KindText,
		KindLatexBlock,
		KindTip,
		KindCharacterSpeech,
		KindFractionBlock,
		KindFractionCards,
		KindExample,
		KindImage,
	}
}

// Value is one part of a fraction. Authors may write a number or a string,
// so blanks and symbolic placeholders ("?", "x") survive as-is.
type Value string

// IsZero reports whether the value was left out.
func (v Value) IsZero() bool { return v == "" }

func (v Value) String() string { return string(v) }

// Fraction is a displayed fraction with an optional whole part.
type Fraction struct {
	Numerator   Value
	Denominator Value
	Whole       Value
}

// Card is one labeled fraction in a FRACTION_CARDS block.
type Card struct {
	Label    string
	Fraction Fraction
	Color    string // display tag, e.g. "red", "blue"
}

// Block is a single unit of theory presentation. The set of variants is
// closed: every implementation lives in this package.
type Block interface {
	Kind() BlockKind
	block()
}

// Text is a paragraph that may embed $...$ math.
type Text struct {
	Content string
}

// LatexBlock is a display-mode math expression.
type LatexBlock struct {
	Content string
}

// Tip is a highlighted hint.
type Tip struct {
	Content string
}

// CharacterSpeech is a remark by a named character.
type CharacterSpeech struct {
	Speaker   string
	Content   string
	AudioText string // read aloud instead of Content when set
}

// FractionBlock illustrates a single fraction. Fraction is nil when the
// author left it out.
type FractionBlock struct {
	Fraction *Fraction
	Content  string
}

// FractionCards shows colored fraction cards, a question and answers that
// are revealed one at a time.
type FractionCards struct {
	Label   string
	Cards   []Card
	Content string
	Items   []string
}

// Example is a worked example with numbered steps.
type Example struct {
	Label   string
	Content string
	Items   []string
}

// Image references an illustration.
type Image struct {
	Src string
	Alt string
}

func (Text) Kind() BlockKind            { return KindText }
func (LatexBlock) Kind() BlockKind      { return KindLatexBlock }
func (Tip) Kind() BlockKind             { return KindTip }
func (CharacterSpeech) Kind() BlockKind { return KindCharacterSpeech }
func (FractionBlock) Kind() BlockKind   { return KindFractionBlock }
func (FractionCards) Kind() BlockKind   { return KindFractionCards }
func (Example) Kind() BlockKind         { return KindExample }
func (Image) Kind() BlockKind           { return KindImage }

func (Text) block()            {}
func (LatexBlock) block()      {}
func (Tip) block()             {}
func (CharacterSpeech) block() {}
func (FractionBlock) block()   {}
func (FractionCards) block()   {}
func (Example) block()         {}
func (Image) block()           {}

// SpeechText returns the text to read aloud.
func (c CharacterSpeech) SpeechText() string {
	if c.AudioText != "" {
		return c.AudioText
	}
	return c.Content
}

// ContentOf returns the free-text content of a block, or "" for variants
// without one.
func ContentOf(b Block) string {
	switch b := b.(type) {
	case Text:
		return b.Content
	case LatexBlock:
		return b.Content
	case Tip:
		return b.Content
	case CharacterSpeech:
		return b.Content
	case FractionBlock:
		return b.Content
	case FractionCards:
		return b.Content
	case Example:
		return b.Content
	case Image:
		return ""
	}
	return ""
}

// QuestionType selects how a question is answered.
type QuestionType string

const (
	TypeInput  QuestionType = "INPUT"
	TypeSelect QuestionType = "SELECT"
	TypeInfo   QuestionType = "INFO"
)

// InputKind refines INPUT questions.
type InputKind string

const (
	InputText     InputKind = "TEXT"
	InputFraction InputKind = "FRACTION"
)

// DisplayMode controls how an exercise lays out its questions.
type DisplayMode string

const (
	DisplayList  DisplayMode = "LIST"
	DisplayTable DisplayMode = "TABLE"
)

// Question is one checkable (or informational) unit inside an exercise.
type Question struct {
	ID            string
	Label         string
	PreText       string
	PostText      string
	Latex         string // when set, replaces PreText/PostText entirely
	CorrectAnswer string
	Placeholder   string
	Type          QuestionType
	InputKind     InputKind
	Options       []string
}

// Checkable reports whether the question takes an answer at all.
func (q Question) Checkable() bool {
	return q.Type != TypeInfo
}

// Exercise groups questions under shared instructions.
type Exercise struct {
	ID          string
	Title       string
	Instruction string
	Questions   []Question
	DisplayMode DisplayMode
}

// Lesson is a titled unit with theory and practice.
type Lesson struct {
	ID       string
	Title    string
	Theory   []Block
	Practice []Exercise
}
