package parser

import (
	"testing"

	"sdl/internal/ast"
	"sdl/internal/diag"
	"sdl/internal/lexer"
	"sdl/internal/source"
)

// parseSource разбирает строку и возвращает теги, ошибку и собранные диагностики.
func parseSource(t *testing.T, input string) ([]*ast.Tag, *Error, *diag.Bag) {
	t.Helper()
	return parseSourceOpts(t, input, Options{})
}

func parseSourceOpts(t *testing.T, input string, opts Options) ([]*ast.Tag, *Error, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sdl", []byte(input))
	bag := diag.NewBag(16)
	opts.Reporter = diag.BagReporter{Bag: bag}
	tags, err := ParseFile(fs.Get(fileID), lexer.Options{}, opts)
	return tags, err, bag
}

// expectError проверяет, что разбор упал с заданным сообщением.
func expectError(t *testing.T, input, msg string) *Error {
	t.Helper()
	_, err, bag := parseSource(t, input)
	if err == nil {
		t.Fatalf("expected error %q for %q, got none", msg, input)
	}
	if err.Message != msg {
		t.Fatalf("expected error %q for %q, got %q", msg, input, err.Message)
	}
	if bag.Len() != 1 || bag.Items()[0].Message != msg {
		t.Fatalf("expected exactly one reported diagnostic, got %v", bag.Items())
	}
	return err
}
