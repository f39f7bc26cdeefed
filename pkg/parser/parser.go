package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// sqlLexer tokenizes the supported SQL subset. Keywords are lexed separately
	// from identifiers so they can never be captured as table or column names.
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `'([^'\\]|\\.)*'`},
		{Name: "Keyword", Pattern: `(?i)\b(CREATE|TABLE|SELECT|FROM|WHERE|AS|INSERT|INTO|VALUES|AND|OR|TRUE|FALSE)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "Operator", Pattern: `<>|!=|<=|>=|[-+*/%=<>]`},
		{Name: "Punct", Pattern: `[(),.;]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser = participle.MustBuild[SQL](
		participle.Lexer(sqlLexer),
		participle.Elide("Comment", "MultilineComment", "Whitespace"),
		participle.CaseInsensitive("Keyword"),
		participle.UseLookahead(4),
	)

	trivia = map[lexer.TokenType]bool{}
	punct  lexer.TokenType
)

func init() {
	symbols := sqlLexer.Symbols()
	for _, name := range []string{"Comment", "MultilineComment", "Whitespace"} {
		trivia[symbols[name]] = true
	}
	punct = symbols["Punct"]
}

// SyntaxError is a statement that could not be parsed. Line is 1-based and
// Column 0-based.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Parse reads all of r and parses it with ParseString. The returned error is
// only set when r cannot be read.
func Parse(name string, r io.Reader) (*SQL, []SyntaxError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read %s", name)
	}

	sql, errs := ParseString(name, string(data))
	return sql, errs, nil
}

// ParseString parses every statement in input. Statements with syntax errors
// are left out of the result and reported instead; the remaining statements
// are returned in document order.
func ParseString(name, input string) (*SQL, []SyntaxError) {
	result := &SQL{}
	var errs []SyntaxError

	for _, chunk := range split(name, input) {
		sql, err := parser.ParseString(name, chunk.text)
		if err != nil {
			errs = append(errs, syntaxError(err, chunk.pos))
			continue
		}

		result.Statements = append(result.Statements, sql.Statements...)
	}

	return result, errs
}

// ParseStatement parses input as exactly one statement.
func ParseStatement(input string) (*Statement, error) {
	sql, err := parser.ParseString("", input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse statement")
	}

	if len(sql.Statements) != 1 {
		return nil, errors.Errorf("expected 1 statement, got %d", len(sql.Statements))
	}

	return sql.Statements[0], nil
}

type chunk struct {
	pos  lexer.Position
	text string
}

// split cuts input into statements at top-level semicolons. Each chunk is
// prefixed with enough newlines and spaces for positions reported while
// parsing it to match the original input.
func split(name, input string) []chunk {
	var chunks []chunk
	for offset := 0; offset < len(input); {
		var more []chunk
		more, offset = splitFrom(name, input, offset)
		chunks = append(chunks, more...)
	}

	return chunks
}

// splitFrom lexes input from offset until EOF or a lexing error. A statement
// that fails to lex ends at the next semicolon; the returned offset is where
// lexing resumes.
func splitFrom(name, input string, offset int) ([]chunk, int) {
	var (
		chunks []chunk
		start  *lexer.Position
		depth  int
		next   = offset
	)

	base := positionAt(input, offset)
	base.Filename = name

	emit := func(end int) {
		if start == nil {
			return
		}

		text := input[start.Offset:end]
		if strings.TrimSpace(text) != ";" {
			chunks = append(chunks, chunk{pos: *start, text: pad(*start) + text})
		}
		start = nil
		depth = 0
		next = end
	}

	lex, err := sqlLexer.LexString(name, input[offset:])
	if err != nil {
		start = &base
		emit(len(input))
		return chunks, len(input)
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			// The parser lexes the failing statement again and reports the
			// error at its real position.
			if start == nil {
				pos := positionAt(input, next)
				start = &pos
			}

			end := len(input)
			var lerr *lexer.Error
			if errors.As(err, &lerr) {
				at := offset + lerr.Pos.Offset
				if i := strings.IndexByte(input[at:], ';'); i >= 0 {
					end = at + i + 1
				}
			}

			emit(end)
			return chunks, end
		}

		if tok.EOF() {
			emit(len(input))
			return chunks, len(input)
		}

		if trivia[tok.Type] {
			continue
		}

		pos := base.Add(tok.Pos)
		if start == nil {
			start = &pos
		}

		if tok.Type == punct {
			switch tok.Value {
			case "(":
				depth++
			case ")":
				depth--
			case ";":
				if depth <= 0 {
					emit(pos.Offset + len(tok.Value))
				}
			}
		}
	}
}

func pad(pos lexer.Position) string {
	return strings.Repeat("\n", pos.Line-1) + strings.Repeat(" ", pos.Column-1)
}

// positionAt computes the position of a byte offset in input.
func positionAt(input string, offset int) lexer.Position {
	prefix := input[:offset]
	line := strings.Count(prefix, "\n") + 1
	column := utf8.RuneCountInString(prefix[strings.LastIndex(prefix, "\n")+1:]) + 1
	return lexer.Position{Offset: offset, Line: line, Column: column}
}

func syntaxError(err error, at lexer.Position) SyntaxError {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return SyntaxError{Line: pos.Line, Column: max(pos.Column-1, 0), Message: perr.Message()}
	}

	return SyntaxError{Line: at.Line, Column: max(at.Column-1, 0), Message: err.Error()}
}
