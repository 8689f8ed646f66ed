// Package fuzztests houses Go fuzz harnesses for the lunar front end
// (source -> lexer -> parser). They guard against panics, hangs and span
// corruption on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер/парсер,
// проверяя инварианты через internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
