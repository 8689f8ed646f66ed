package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"lunar/internal/token"
)

// TokenOutput is one token of a JSON/msgpack dump. Value is set for INT only,
// so a literal 0 is still emitted.
type TokenOutput struct {
	Kind  string `json:"kind" msgpack:"kind"`
	Text  string `json:"text,omitempty" msgpack:"text,omitempty"`
	Value *int64 `json:"value,omitempty" msgpack:"value,omitempty"`
	Line  uint32 `json:"line" msgpack:"line"`
	Col   uint32 `json:"col" msgpack:"col"`
}

func tokenOutputs(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Line: tok.Span.Line,
			Col:  tok.Span.Col,
		}
		switch tok.Kind {
		case token.IntLit:
			v := tok.Value
			out.Value = &v
		case token.Ident, token.StringLit, token.Invalid:
			out.Text = tok.Text
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensPretty выводит токены по одному на строку:
// line:col  KIND      "text" | value
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		var err error
		switch tok.Kind {
		case token.Ident, token.StringLit:
			_, err = fmt.Fprintf(w, "%d:%d  %-8s  \"%s\"\n", tok.Span.Line, tok.Span.Col, tok.Kind, tok.Text)
		case token.IntLit:
			_, err = fmt.Fprintf(w, "%d:%d  %-8s  %d\n", tok.Span.Line, tok.Span.Col, tok.Kind, tok.Value)
		default:
			_, err = fmt.Fprintf(w, "%d:%d  %s\n", tok.Span.Line, tok.Span.Col, tok.Kind)
		}
		if err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenOutputs(tokens))
}

// FormatTokensMsgpack пишет токены одним msgpack-массивом.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token) error {
	return msgpack.NewEncoder(w).Encode(tokenOutputs(tokens))
}
