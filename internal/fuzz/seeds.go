package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// builtinSeeds покрывают углы грамматики, которых может не быть в testdata.
var builtinSeeds = []string{
	"",
	"funct main() ret int { return 0; }\n",
	"funct f(a: int, b) { let mut x: int = a + b * 2; x = x - 1; return; }",
	"funct g() ret bool { return !(1 < 2) == true != false; }",
	"funct h() { print(\"a\\\"b\", 1, f(2)(3)); }",
	"/* a /* b */ c */ funct k() {}",
	"funct big() { let x = 99999999999999999999999; }",
	"funct bad() { 1 = 2; (a) = 3; }",
	"funct unterminated() { let s = \"abc",
	"funct c() { /* never closed",
	"funct ((((((((((((",
	"let x = 1; funct f() { } } } funct g() {",
	"funct f(a: int,, b: int) ret { return a +; }",
	"\xef\xbb\xbffunct bom() {}\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range builtinSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.lr файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".lr" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
