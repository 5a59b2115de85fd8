// Package utils — мелкие помощники, общие для сервера и агента readlist.
package utils

// Ptr возвращает указатель на значение. Удобно собирать
// PATCH-запросы к /items, где nil-поле означает «не менять».
func Ptr[T any](v T) *T {
	return &v
}

// StrPtr — то же для строк, чтобы не писать utils.Ptr[string].
func StrPtr(s string) *string {
	return &s
}
