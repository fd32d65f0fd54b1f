// Package fuzztests houses Go fuzz harnesses for the lexer and parser.
// They guard against panics, hangs and broken invariants on arbitrary input.
//
// Назначение: прогонять произвольные байты через FileSet, лексер и парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
