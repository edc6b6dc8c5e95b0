package export

import (
	"bytes"
	"strings"

	"ideabox-cli/internal/model"
)

// RenderMarkdown renders one idea as a standalone Markdown document.
func RenderMarkdown(it model.Idea) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(it.Title))
	writeLn("")
	writeLn("- Category: " + strings.TrimSpace(it.Category))
	writeLn("")

	if it.IsChat() {
		writeLn("## Messages")
		writeLn("")
		if len(it.Messages) == 0 {
			writeLn("_No messages._")
			return buf.String()
		}
		for _, msg := range it.Messages {
			lines := strings.Split(msg, "\n")
			writeLn("- " + lines[0])
			for _, ln := range lines[1:] {
				writeLn("  " + ln)
			}
		}
		return buf.String()
	}

	writeLn("## Commands")
	writeLn("")
	if strings.TrimSpace(it.Commands) != "" {
		fence := "```"
		for strings.Contains(it.Commands, fence) {
			fence += "`"
		}
		writeLn(fence + "sh")
		writeLn(strings.TrimRight(it.Commands, "\n"))
		writeLn(fence)
	} else {
		writeLn("_None._")
	}
	writeLn("")
	writeLn("## Notes")
	writeLn("")
	if strings.TrimSpace(it.Notes) != "" {
		writeLn(strings.TrimRight(it.Notes, "\n"))
	} else {
		writeLn("_None._")
	}
	return buf.String()
}
