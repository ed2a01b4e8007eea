package i18n

var DE = Messages{
	"person_not_found":      "Person %s wurde nicht gefunden",
	"fetch_failed":          "%s konnte nicht geladen werden",
	"household_members":     "%s: %d",
	"range_out_of_bounds":   "Zeitraum %d-%d liegt außerhalb der Datensätze",
	"invalid_range":         "Ungültiger Zeitraum",
	"no_records":            "Die Datenbank enthält keine Datensätze",
	"unsupported_db_driver": "Nicht unterstützter Datenbanktreiber %s",
}
