package driver

import (
	"context"
	"fmt"

	"sdl/internal/diag"
	"sdl/internal/lexer"
	"sdl/internal/source"
	"sdl/internal/token"
	"sdl/internal/trace"
)

// TokenizeResult holds the full token stream of one file, EOF included.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it to EOF.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	var fileID source.FileID
	var err error
	opts.Timer.Measure("load", func() string {
		fileID, err = fs.Load(path)
		return path
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(ctx, fs, fs.Get(fileID), opts), nil
}

// TokenizeSource lexes in-memory content registered under name.
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	return tokenizeFile(ctx, fs, file, opts)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	span, _ := trace.Start(ctx, trace.ScopePass, "lex")
	bag := opts.newBag()
	lx := lexer.New(file, lexer.Options{Reporter: reporterFor(bag)})

	var tokens []token.Token
	opts.Timer.Measure("lex", func() string {
		for {
			tok := lx.Next()
			tokens = append(tokens, tok)
			if tok.Kind == token.EOF {
				break
			}
		}
		return fmt.Sprintf("%d tokens", len(tokens))
	})
	span.WithExtra("tokens", fmt.Sprint(len(tokens))).End("")

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
