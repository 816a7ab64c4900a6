package runlog

import "strings"

// Source is a log path with the label used when several runs are compared.
type Source struct {
	Path  string
	Label string
	// Labeled is set when the argument carried an explicit label.
	Labeled bool
}

// ParseSource splits a "path:label" argument at its last colon. Without a colon, or
// when either side would be empty, the whole argument is both path and label. A
// Windows drive prefix ("C:\runs\a.bin") is not read as a label separator.
func ParseSource(arg string) Source {
	whole := Source{Path: arg, Label: arg}
	i := strings.LastIndex(arg, ":")
	if i <= 0 || i == len(arg)-1 {
		return whole
	}
	path, label := arg[:i], arg[i+1:]
	if i == 1 && isDriveLetter(arg[0]) && (label[0] == '\\' || label[0] == '/') {
		return whole
	}
	return Source{Path: path, Label: label, Labeled: true}
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
