package i18n

var EN = Messages{
	"person_not_found":      "Person %s not found",
	"fetch_failed":          "Could not load %s",
	"household_members":     "%s: %d",
	"range_out_of_bounds":   "Range %d-%d is outside of the records",
	"invalid_range":         "Invalid range",
	"no_records":            "There are no records in the database",
	"unsupported_db_driver": "Unsupported database driver %s",
}
