package entry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffRecords generates a unified diff between two renderings of an
// entry, used to preview an edit before asking for confirmation.
// Passwords are masked on both sides. Returns an empty string when the
// rendered records are identical.
func DiffRecords(id string, old, updated Record) string {
	oldText := renderRecord(old)
	newText := renderRecord(updated)
	if oldText == newText {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	a, b, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(oldText, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- %s (vault)\n", id))
	result.WriteString(fmt.Sprintf("+++ %s (edited)\n", id))
	result.WriteString(dmp.PatchToText(patches))

	return result.String()
}

// renderRecord renders properties as sorted "name = value" lines with
// the password masked.
func renderRecord(r Record) string {
	names := make([]string, 0, len(r.Properties))
	for name := range r.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		value := r.Properties[name]
		if name == FieldPassword {
			value = PasswordFiller
		}
		sb.WriteString(fmt.Sprintf("%s = %s\n", name, value))
	}
	return sb.String()
}
