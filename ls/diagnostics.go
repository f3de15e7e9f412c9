package ls

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	// EBNF errors read "file:line:col: message".
	ebnfPosPattern = regexp.MustCompile(`:(\d+):(\d+): `)
	// YAML errors read "yaml: line N: message".
	yamlLinePattern = regexp.MustCompile(`line (\d+):`)
)

// diagnosticsFor converts a loader error into diagnostics, one per
// element if the error (or anything it wraps) is a multi-error slice.
func diagnosticsFor(err error) []protocol.Diagnostic {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			diagnostics := make([]protocol.Diagnostic, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if elem, ok := v.Index(i).Interface().(error); ok {
					diagnostics = append(diagnostics, diagnostic(elem))
				}
			}
			return diagnostics
		}
	}
	return []protocol.Diagnostic{diagnostic(err)}
}

func diagnostic(err error) protocol.Diagnostic {
	msg := err.Error()
	line, column := position(msg)

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: column},
			End:   protocol.Position{Line: line, Character: column + 1},
		},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}

// position extracts a zero-based line and column from an error message.
// Messages without one land on the first line.
func position(msg string) (line, column protocol.UInteger) {
	if m := ebnfPosPattern.FindStringSubmatch(msg); m != nil {
		l, _ := strconv.Atoi(m[1])
		c, _ := strconv.Atoi(m[2])
		if l > 0 {
			line = protocol.UInteger(l - 1)
		}
		if c > 0 {
			column = protocol.UInteger(c - 1)
		}
		return line, column
	}
	if m := yamlLinePattern.FindStringSubmatch(msg); m != nil {
		l, _ := strconv.Atoi(m[1])
		if l > 0 {
			line = protocol.UInteger(l - 1)
		}
		return line, 0
	}
	return 0, 0
}
