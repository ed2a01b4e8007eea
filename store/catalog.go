package store

// Query names one statement of the catalog. Statement text is constant,
// values only ever travel as placeholders.
type Query string

const (
	RecordsMinDate                 Query = "RECORDS-MIN-DATE"
	RecordsMaxDate                 Query = "RECORDS-MAX-DATE"
	CountPersonsByHouseholdInRange Query = "COUNT-PERSONS-X-ROYALCOURT-IN-TIMERANGE"
	PersonsOfHouseholdInRange      Query = "PERSONS-OF-ROYALCOURT-IN-TIMERANGE"
	Person                         Query = "PERSON"
	Parents                        Query = "PARENTS"
	Children                       Query = "CHILDREN"
	ChildrenOfSpouse               Query = "CHILDREN-OF-SPOUSE"
	Wives                          Query = "WIVES"
	Husbands                       Query = "HUSBANDS"
	Images                         Query = "IMAGES"
	SetImageSource                 Query = "SET-IMAGE-SOURCE"
)

// relation kinds of beziehung.ART
const (
	relParent = "1"
	relSpouse = "2"
)

// serviceYear reads the year of ISO (YYYY-MM-DD, YYYY-MM, YYYY) and
// German (DD.MM.YYYY) service dates
const serviceYear = `CAST(CASE WHEN t.Dienstbeginn LIKE '__.__.____'
	THEN substr(t.Dienstbeginn, 7, 4)
	ELSE substr(t.Dienstbeginn, 1, 4) END AS INTEGER)`

const sqlPerson = `SELECT p.* FROM person p WHERE p.F41 = ?`

const sqlHouseholdMembersInRange = `SELECT h.* FROM person p
	JOIN transkriptionen t ON p.F41 = t.F41
	JOIN hofstaat h ON t.Hofherr = h.Hofherr
	WHERE ` + serviceYear + ` BETWEEN ? AND ?`

const sqlCountPersonsByHouseholdInRange = `SELECT ph.Bezeichnung AS Bezeichnung, COUNT(ph.Hofherr) AS Anzahl, ph.F41 AS F41
	FROM (` + sqlHouseholdMembersInRange + `) AS ph
	GROUP BY ph.Hofherr
	ORDER BY ph.Hofherr`

const sqlPersonsOfHouseholdInRange = `SELECT DISTINCT p.* FROM person p
	JOIN transkriptionen t ON p.F41 = t.F41
	JOIN hofstaat h ON t.Hofherr = h.Hofherr
	WHERE h.F41 = ?
	AND ` + serviceYear + ` BETWEEN ? AND ?`

const sqlParents = `SELECT parent.* FROM person p
	JOIN beziehung b ON p.F41 = b.F41Y
	JOIN person parent ON parent.F41 = b.F41X
	WHERE b.ART = ` + relParent + `
	AND p.F41 = ?`

const sqlChildren = `SELECT child.* FROM person p
	JOIN beziehung b ON p.F41 = b.F41X
	JOIN person child ON child.F41 = b.F41Y
	WHERE b.ART = ` + relParent + `
	AND p.F41 = ?`

const sqlChildrenOfSpouse = `SELECT child.* FROM person p
	JOIN beziehung b ON p.F41 = b.F41X
	JOIN person child ON child.F41 = b.F41Y
	JOIN beziehung bSpouse ON child.F41 = bSpouse.F41Y
	JOIN person spouse ON spouse.F41 = bSpouse.F41X
	WHERE b.ART = ` + relParent + `
	AND bSpouse.ART = ` + relParent + `
	AND p.F41 = ?
	AND spouse.F41 = ?`

const sqlWives = `SELECT wife.* FROM person p
	JOIN beziehung b ON p.F41 = b.F41X
	JOIN person wife ON wife.F41 = b.F41Y
	WHERE b.ART = ` + relSpouse + `
	AND p.F41 = ?`

const sqlHusbands = `SELECT husband.* FROM person p
	JOIN beziehung b ON p.F41 = b.F41Y
	JOIN person husband ON husband.F41 = b.F41X
	WHERE b.ART = ` + relSpouse + `
	AND p.F41 = ?`

const sqlRecordsMinDate = `SELECT MIN(` + serviceYear + `) AS record FROM transkriptionen t WHERE t.Dienstbeginn <> ''`

const sqlRecordsMaxDate = `SELECT MAX(` + serviceYear + `) AS record FROM transkriptionen t WHERE t.Dienstbeginn <> ''`

const sqlImages = `SELECT * FROM bild`

const sqlSetImageSource = `UPDATE bild SET Source = ? WHERE F41 = ?`

// person rows always carry the image source of the bild table
func withImage(sql string) string {
	return `SELECT pSelect.*, img.Source AS Source FROM (` + sql + `) AS pSelect LEFT JOIN bild img ON pSelect.F41 = img.F41`
}

var catalog = map[Query]string{
	RecordsMinDate:                 sqlRecordsMinDate,
	RecordsMaxDate:                 sqlRecordsMaxDate,
	CountPersonsByHouseholdInRange: sqlCountPersonsByHouseholdInRange,
	PersonsOfHouseholdInRange:      withImage(sqlPersonsOfHouseholdInRange) + ` ORDER BY pSelect.F41`,
	Person:                         withImage(sqlPerson),
	Parents:                        withImage(sqlParents),
	Children:                       withImage(sqlChildren),
	ChildrenOfSpouse:               withImage(sqlChildrenOfSpouse),
	Wives:                          withImage(sqlWives),
	Husbands:                       withImage(sqlHusbands),
	Images:                         sqlImages,
	SetImageSource:                 sqlSetImageSource,
}

func (q Query) SQL() (string, bool) {
	sql, ok := catalog[q]

	return sql, ok
}
