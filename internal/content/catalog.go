package content

// DiagnosticLessonID is listed first and styled apart from numbered lessons.
const DiagnosticLessonID = "diagnostic"

// DefaultLessonID is the lesson a fresh session opens on.
const DefaultLessonID = "lesson-investigation"

// Catalog is the immutable, ordered set of lessons for one unit.
type Catalog struct {
	ID      string
	Title   string
	lessons []Lesson
	byID    map[string]int
}

// NewCatalog validates lessons and indexes them by ID.
func NewCatalog(id, title string, lessons []Lesson) (*Catalog, error) {
	if err := validateLessons(lessons); err != nil {
		return nil, err
	}
	c := &Catalog{
		ID:      id,
		Title:   title,
		lessons: lessons,
		byID:    make(map[string]int, len(lessons)),
	}
	for i, l := range lessons {
		c.byID[l.ID] = i
	}
	return c, nil
}

// Lessons returns all lessons in display order.
func (c *Catalog) Lessons() []Lesson {
	return c.lessons
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.lessons)
}

// Lesson looks up a lesson by ID.
func (c *Catalog) Lesson(id string) (Lesson, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i], true
}

// LessonOrFirst looks up a lesson by ID, falling back to the first lesson.
func (c *Catalog) LessonOrFirst(id string) Lesson {
	if l, ok := c.Lesson(id); ok {
		return l
	}
	return c.lessons[0]
}

// Index returns the position of the lesson, or -1.
func (c *Catalog) Index(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// Number returns the 1-based display number of a regular lesson.
// The diagnostic lesson is unnumbered and returns 0.
func (c *Catalog) Number(id string) int {
	if id == DiagnosticLessonID {
		return 0
	}
	n := 0
	for _, l := range c.lessons {
		if l.ID == DiagnosticLessonID {
			continue
		}
		n++
		if l.ID == id {
			return n
		}
	}
	return 0
}
