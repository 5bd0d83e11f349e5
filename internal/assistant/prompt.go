package assistant

import (
	"fmt"
	"strings"
)

func systemPrompt(language string) string {
	if language == "" {
		language = DefaultConfig().Language
	}
	return fmt.Sprintf(`You are a friendly and encouraging math tutor for middle school students.
Answer clearly and simply in %s unless the student asks for another language.
Use a small example when it helps. Keep it concise: a few sentences at most.
Write fractions as $a/b$ or $\frac{a}{b}$.`, language)
}

func buildUserMessage(question, snippet string) string {
	var b strings.Builder
	b.WriteString("The student is currently studying this content:\n")
	b.WriteString(fmt.Sprintf("%q\n\n", snippet))
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}
