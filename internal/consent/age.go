package consent

import "time"

// ConsentAge is the threshold below which registration and login require a
// validated parent linkage code.
const ConsentAge = 15

// Age returns the whole years elapsed between birthdate and today,
// subtracting one if the birthday has not yet occurred this calendar year.
func Age(birthdate, today time.Time) int {
	years := today.Year() - birthdate.Year()
	if today.Month() < birthdate.Month() ||
		(today.Month() == birthdate.Month() && today.Day() < birthdate.Day()) {
		years--
	}
	return years
}
