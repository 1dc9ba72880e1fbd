package airtable

import "strings"

var (
	valueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	fieldEscaper = strings.NewReplacer(`\`, `\\`, `}`, `\}`)
)

// EqualsFormula — единственное место, где значения попадают в язык формул провайдера:
// {field} = 'value' с экранированием обратной косой черты и кавычек.
func EqualsFormula(field, value string) string {
	return "{" + fieldEscaper.Replace(field) + "} = '" + valueEscaper.Replace(value) + "'"
}
