package service

import "strings"

// FilterAll - значение фильтра, отключающее соответствующий предикат
const FilterAll = "all"

// ListFilter - единый набор фильтров списковых endpoint'ов:
// текстовый поиск + точные совпадения по выпадающим фильтрам,
// объединенные логическим AND.
type ListFilter struct {
	Query    string
	Type     string
	Category string
	Status   string
}

// matchesQuery проверяет вхождение подстроки без учета регистра
// хотя бы в одно из полей. Пустой запрос совпадает со всем.
func matchesQuery(query string, fields ...string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// matchesExact - точное совпадение; пустое значение и "all" отключают фильтр
func matchesExact(filterValue, fieldValue string) bool {
	if filterValue == "" || filterValue == FilterAll {
		return true
	}
	return filterValue == fieldValue
}
