// Package inmemdb provides map-backed repositories used by the dev server,
// the seed fixtures and the test suites. Mutation semantics mirror the SQL
// repositories: atomic replace on success, nothing persisted on error.
// Queries return records ordered by id so list output is stable.
package inmemdb

type DB struct {
	user       *userTable
	course     *courseTable
	booking    *bookingTable
	location   *locationTable
	conditions *conditionsTable
	instructor *instructorTable
	document   *documentTable
	article    *articleTable
	entry      *entryTable
	city       *cityTable
}

func NewDB() *DB {
	return &DB{
		user:       newUserTable(),
		course:     newCourseTable(),
		booking:    newBookingTable(),
		location:   newLocationTable(),
		conditions: newConditionsTable(),
		instructor: newInstructorTable(),
		document:   newDocumentTable(),
		article:    newArticleTable(),
		entry:      newEntryTable(),
		city:       newCityTable(),
	}
}
